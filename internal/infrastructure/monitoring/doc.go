/*
Package monitoring exports benchmark progress as Prometheus metrics.

# Overview

Metrics implements bench.Observer. Drivers call it after every timed
window, so long runs can be watched from a Prometheus scraper while the
chain is still relaying.

# Metrics

  - brigade_phase: 1 for the current driver phase, 0 otherwise
  - brigade_units: execution units per chain or batch
  - brigade_iterations_total / brigade_iteration_duration_seconds
  - brigade_batches_total / brigade_batch_duration_seconds
  - brigade_start_latency_seconds
  - brigade_scrapes_total

Every collector lives on a private registry, so several runs in one
process (tests) never collide.

# Usage

	metrics := monitoring.NewMetrics(prometheus.Labels{"substrate": "task"})
	srv, err := metrics.Serve(":9100")
	if err != nil {
	    return err
	}
	defer srv.Close()

	driver := bench.NewRelayDriver(bench.RelayConfig{Observer: metrics})
*/
package monitoring

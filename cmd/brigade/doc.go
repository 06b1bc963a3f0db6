// Package main is the entry point for the brigade benchmark.
//
// brigade measures what a concurrency substrate costs per hand-off. It
// builds a chain of N forwarding units, relays one payload end to end
// many times, and reports the mean and population standard deviation of
// the round trip. The spawn benchmark instead times admitting batches of
// N units and the delay before each one starts.
//
// Substrates:
//   - thread: one locked OS thread per unit (default link: fd)
//   - task: one goroutine per unit on the Go scheduler (default link: socket)
//   - inline: every unit stepped in order on the caller's goroutine (default link: fd)
//
// Configuration:
//   - Environment variables (BRIGADE_*)
//   - CLI flags (override env vars)
//
// Usage:
//
//	# 500 goroutines relaying a byte over socketpairs
//	./brigade -substrate task -units 500
//
//	# Channel chain counting hops, JSON output
//	./brigade -link chan -transform increment -format json
//
//	# Sample resident memory while every thread is alive
//	./brigade -substrate thread -command 'ps -o rss= -p {pid}'
//
//	# Spawn cost
//	./brigade -bench spawn -substrate thread
//
// The process exits as soon as the report and command are done. Units are
// never joined, so their teardown does not show up in the measurement.
package main

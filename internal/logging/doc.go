// Package logging provides structured logging using uber/zap.
//
// This package offers two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Logs are written to stderr; stdout carries only benchmark reports.
//
// Log Levels:
//   - Debug: Phase transitions and per-run detail
//   - Info: Progress lines (suppressed in quiet mode)
//   - Warn: Warning messages
//   - Error: Fatal benchmark errors before exit
//
// Example Usage:
//
//	logger, err := logging.New(logging.Config{Level: "info", Quiet: quiet})
//	if err != nil {
//	    return err
//	}
//	logger = logger.WithRun(runID.String())
//	logger.Info("Chain built", zap.Int("units", 500))
//	logger.Error("Benchmark failed", zap.Error(err))
package logging

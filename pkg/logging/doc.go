// Package logging provides structured logging configuration for compact.
//
// This package wraps log/slog so that the broker client, the verifier and
// the CLI log the same way. It supports configurable levels and output
// formats, and can tee records to a second destination such as a log file.
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//
//	logger.Info("verification finished", "interactions", 4, "failed", 0)
//
// # Integration
//
// Components accept a *slog.Logger through an option. If no logger is
// provided they use logging.Nop().
package logging

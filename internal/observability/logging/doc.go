// Package logging provides structured logging utilities with context propagation.
//
// This package wraps the standard library's log/slog package with helper functions
// for common logging patterns used by the verifier.
//
// Example usage:
//
//	logger := logging.New(os.Stdout, logging.FormatJSON, "info")
//	ctx := logging.WithLogger(context.Background(), logger)
//
//	func runCase(ctx context.Context) {
//	    logger := logging.WithRequestID(ctx, logging.FromContext(ctx))
//	    logger.Info("case started")
//	}
package logging

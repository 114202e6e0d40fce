// Package logging builds the service's slog loggers and carries request-scoped
// loggers through context.
//
// Example usage:
//
//	logger := logging.NewServiceLogger()
//	slog.SetDefault(logger)
//
//	func handle(ctx context.Context) {
//	    logging.FromContext(ctx).Info("processing document")
//	}
package logging

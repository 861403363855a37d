package log

import "context"

// Logger defines a standard interface for logging.
// Inspired by common logging library patterns.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...map[string]any)
	Info(ctx context.Context, msg string, fields ...map[string]any)
	Warn(ctx context.Context, msg string, fields ...map[string]any)
	Error(ctx context.Context, msg string, err error, fields ...map[string]any)
	Fatal(ctx context.Context, msg string, err error, fields ...map[string]any) // Typically os.Exit(1) is called by underlying logger
	With(fields map[string]any) Logger                                          // Returns a new logger with added structured fields
}

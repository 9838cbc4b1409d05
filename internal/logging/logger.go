// Package logging defines a minimal structured-logging interface for the
// module, plus the slog-backed implementation used by the CLI. Keeping the
// interface here lets packages log without caring which handler is wired in.
package logging

import "context"

// Logger is a context-aware, structured logger. The variadic args are
// key-value pairs, e.g.:
//
//	log.Info(ctx, "connected", "driver", driver, "database", name)
type Logger interface {
	// Debug logs fine-grained diagnostics (per-statement traces).
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs normal operational events.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key-value
	// pairs.
	With(args ...any) Logger
}

// Package logger provides a structured, levelled logger built on log/slog.
//
// The key extension over plain slog is WithCtx: it creates a logger with the
// request ID already attached, so every log line from a handler is
// automatically correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order placed", "order_id", 7)
//	// → time=... level=INFO msg="order placed" request_id=a1b2c3d4 order_id=7
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// L is the process-wide base logger. It starts as a debug-level text logger
// on stdout and is replaced by Setup.
var L = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

// Options configures Setup.
type Options struct {
	Production bool      // JSON at info level instead of text at debug level
	Output     io.Writer // defaults to os.Stdout

	// MongoURI, when set, also ships every record to MongoDB.
	MongoURI        string
	MongoDatabase   string
	MongoCollection string // defaults to "logs"
}

// Setup builds the base logger from opts, installs it as L and as the slog
// default, and returns a function that flushes any remote sink.
func Setup(opts Options) (func(), error) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	var handler slog.Handler
	if opts.Production {
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo}) // structured JSON for log aggregators
	} else {
		handler = slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}) // human-readable for dev
	}

	closer := func() {}
	if opts.MongoURI != "" {
		collection := opts.MongoCollection
		if collection == "" {
			collection = "logs"
		}
		mh, err := NewMongoHandler(opts.MongoURI, opts.MongoDatabase, collection)
		if err != nil {
			return closer, fmt.Errorf("logger: %w", err)
		}
		handler = NewMultiHandler(handler, mh)
		closer = mh.Close
	}

	L = slog.New(handler)
	slog.SetDefault(L)
	return closer, nil
}

// ─────────────────────────────────────────────
// Context-aware logger
// ─────────────────────────────────────────────

// ctxKey is the unexported key used to store a per-request *slog.Logger.
type ctxKey struct{}

// WithCtx returns a *slog.Logger pre-tagged with the request_id found in ctx.
// If no request ID is present the base logger is returned unchanged.
//
//	log := logger.WithCtx(r.Context())
//	log.Info("user registered", "user_id", user.ID)
func WithCtx(ctx context.Context) *slog.Logger {
	// The Logger middleware injects a logger already tagged with request_id,
	// so this package never needs to import reqid.
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a *slog.Logger (pre-tagged with request_id) into ctx.
// Called by the Logger middleware.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// ─────────────────────────────────────────────
// Short-hand helpers (use base logger)
// ─────────────────────────────────────────────

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }

// LevelForStatus maps an HTTP status to the level its access line is
// logged at: 5xx is an error, 4xx a warning, everything else info.
func LevelForStatus(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

// Package trace carries a run ID in the context so every log line of one
// report pass can be grepped together.
package trace

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
)

type ctxKey int

const runIDKey ctxKey = 0

// WithRunID returns ctx tagged with id.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunID returns the run ID stored in ctx, or "".
func RunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// NewRunID returns a fresh random ID.
func NewRunID() string {
	return uuid.NewString()
}

// Start tags ctx with a new run ID unless it already has one.
func Start(ctx context.Context) (context.Context, string) {
	if id := RunID(ctx); id != "" {
		return ctx, id
	}
	id := NewRunID()
	return WithRunID(ctx, id), id
}

// Logf logs with a RUN=<id> prefix. Callers keep the [LEVEL] tag in format.
func Logf(ctx context.Context, format string, args ...interface{}) {
	id := RunID(ctx)
	if id == "" {
		id = "-"
	} else if len(id) > 8 {
		id = id[:8]
	}
	log.Output(2, fmt.Sprintf("RUN=%s | ", id)+fmt.Sprintf(format, args...))
}

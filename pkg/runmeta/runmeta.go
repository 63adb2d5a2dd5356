package runmeta

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type contextKey string

var (
	keyRunID     contextKey = "run_id"
	keyFilename  contextKey = "filename"
	keyStartTime contextKey = "run_start_time"
)

// runTimeout bounds a full pipeline run: staging, transcription polling,
// summarization and persistence all share this deadline.
const runTimeout = 10 * time.Minute

// RunBegin derives a deadline-bounded context carrying run metadata.
// Every pipeline invocation gets its own run ID for log correlation.
func RunBegin(parent context.Context, runID uuid.UUID, filename string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, runTimeout)

	ctx = context.WithValue(ctx, keyRunID, runID)
	ctx = context.WithValue(ctx, keyFilename, filename)
	ctx = context.WithValue(ctx, keyStartTime, time.Now())

	return ctx, cancel
}

// RunID extracts the run ID from context
func RunID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(keyRunID).(uuid.UUID)
	return id, ok
}

// Filename extracts the original upload filename from context
func Filename(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(keyFilename).(string)
	return name, ok
}

// StartTime extracts the run start time from context
func StartTime(ctx context.Context) (time.Time, bool) {
	t, ok := ctx.Value(keyStartTime).(time.Time)
	return t, ok
}

// Elapsed returns time since the run started, or zero when the context
// carries no run metadata.
func Elapsed(ctx context.Context) time.Duration {
	t, ok := StartTime(ctx)
	if !ok {
		return 0
	}
	return time.Since(t)
}

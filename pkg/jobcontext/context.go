package jobcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ctxKey string

const (
	keyJobID     ctxKey = "job_id"
	keyJobType   ctxKey = "job_type"
	keySlot      ctxKey = "worker_slot"
	keyStartTime ctxKey = "job_start_time"
)

// jobTimeout bounds one analysis job. A single model call with retries fits
// well inside this; anything longer is stuck.
const jobTimeout = 5 * time.Minute

// JobBegin derives a per-job context carrying identity metadata and a
// timeout. The caller must call cancel when the job finishes.
func JobBegin(parent context.Context, jobID uuid.UUID, jobType string, slot int) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, jobTimeout)

	ctx = context.WithValue(ctx, keyJobID, jobID)
	ctx = context.WithValue(ctx, keyJobType, jobType)
	ctx = context.WithValue(ctx, keySlot, slot)
	ctx = context.WithValue(ctx, keyStartTime, time.Now())

	return ctx, cancel
}

// JobID extracts the job ID from the context.
func JobID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(keyJobID).(uuid.UUID)
	return id, ok
}

// JobType extracts the job type from the context.
func JobType(ctx context.Context) (string, bool) {
	jobType, ok := ctx.Value(keyJobType).(string)
	return jobType, ok
}

// WorkerSlot extracts the worker slot, or -1 outside a job context.
func WorkerSlot(ctx context.Context) int {
	slot, ok := ctx.Value(keySlot).(int)
	if !ok {
		return -1
	}
	return slot
}

// Elapsed reports how long the job has been running, zero outside a job
// context.
func Elapsed(ctx context.Context) time.Duration {
	start, ok := ctx.Value(keyStartTime).(time.Time)
	if !ok {
		return 0
	}
	return time.Since(start)
}

// IsRetryableError reports whether a model or infrastructure failure is worth
// retrying: timeouts, connection trouble, rate limits, and upstream 5xx. Bad
// requests and auth failures are not; the same prompt would fail again.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	msg := strings.ToLower(err.Error())

	if strings.Contains(msg, "context deadline exceeded") {
		return true
	}

	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "network unreachable") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "i/o timeout") {
		return true
	}

	// Gemini rate limiting
	if strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "status 429") {
		return true
	}

	// Upstream 5xx
	if strings.Contains(msg, "status 5") ||
		strings.Contains(msg, "internal server error") ||
		strings.Contains(msg, "service unavailable") ||
		strings.Contains(msg, "bad gateway") {
		return true
	}

	return false
}

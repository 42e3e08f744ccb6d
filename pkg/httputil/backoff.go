package httputil

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"
)

// TemporaryError marks a failure that may succeed on a later attempt.
type TemporaryError struct {
	Err error

	// After, when positive, replaces the computed wait before the next
	// attempt.
	After time.Duration
}

func (e *TemporaryError) Error() string { return e.Err.Error() }
func (e *TemporaryError) Unwrap() error { return e.Err }

// Temporary wraps err as a [TemporaryError]. A nil err stays nil.
func Temporary(err error) error {
	if err == nil {
		return nil
	}
	return &TemporaryError{Err: err}
}

// Backoff is an exponential retry schedule.
type Backoff struct {
	Attempts int           // total tries; values below 1 mean 1
	Initial  time.Duration // wait after the first failure
	Max      time.Duration // cap on any single wait; 0 means no cap
}

// DefaultBackoff tries three times, waiting 1s and then 2s.
var DefaultBackoff = Backoff{Attempts: 3, Initial: time.Second, Max: 30 * time.Second}

// Do calls fn until it succeeds, fails permanently or runs out of attempts,
// and returns the last error. Cancelling ctx during a wait returns ctx.Err().
func (b Backoff) Do(ctx context.Context, fn func(context.Context) error) error {
	attempts := max(b.Attempts, 1)
	wait := b.Initial
	for i := 1; ; i++ {
		err := fn(ctx)
		var tmp *TemporaryError
		if err == nil || !errors.As(err, &tmp) || i == attempts {
			return err
		}

		d := wait
		if tmp.After > 0 {
			d = tmp.After
		}
		if b.Max > 0 {
			d = min(d, b.Max)
		}
		t := time.NewTimer(d)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		wait *= 2
	}
}

// RetryAfter parses a Retry-After header given either as delta-seconds or
// as an HTTP date. It returns 0 when the header is missing, malformed or
// in the past.
func RetryAfter(h http.Header, now time.Time) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(max(secs, 0)) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil && t.After(now) {
		return t.Sub(now)
	}
	return 0
}

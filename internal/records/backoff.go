package records

import (
	"errors"
	"time"
)

// Backoff retries a function with exponential delays between attempts.
type Backoff struct {
	base       time.Duration
	maxRetries int
}

func NewBackoff(base time.Duration, maxRetries int) Backoff {
	return Backoff{base: base, maxRetries: maxRetries}
}

// stopError marks an error as terminal so Do returns it without retrying.
type stopError struct{ err error }

func (s stopError) Error() string { return s.err.Error() }
func (s stopError) Unwrap() error { return s.err }

func stop(err error) error { return stopError{err: err} }

func (b Backoff) Do(fn func(i int) error) error {
	var err error
	for i := 0; i <= b.maxRetries; i++ {
		err = fn(i)
		if err == nil {
			return nil
		}
		var se stopError
		if errors.As(err, &se) {
			return se.err
		}
		time.Sleep(time.Duration(1<<i) * b.base)
	}
	return err
}

package retry

import (
	"context"
	"time"
)

// Classifier separates transient errors from fatal ones.
type Classifier interface {
	IsTransient(err error) bool
}

// ClassifierFunc adapts a function to Classifier.
type ClassifierFunc func(err error) bool

func (f ClassifierFunc) IsTransient(err error) bool { return f(err) }

// Executor runs an operation, retrying transient failures with backoff.
// Safe for concurrent use; WithOnRetry returns a copy.
type Executor struct {
	classifier Classifier
	strategy   BackoffStrategy
	onRetry    func(attempt int, err error, delay time.Duration)
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewExecutor creates an Executor.
// Panics if classifier or strategy is nil.
func NewExecutor(classifier Classifier, strategy BackoffStrategy) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{
		classifier: classifier,
		strategy:   strategy,
		sleep:      sleepContext,
	}
}

// WithOnRetry returns a copy of e that calls callback before every wait.
func (e *Executor) WithOnRetry(callback func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// Execute runs operation until it succeeds, fails with a fatal error, the
// retries are used up or ctx ends. It returns the last error seen, or the
// context error when ctx ends while waiting.
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	err := operation(ctx)
	maxAttempts := e.strategy.MaxAttempts()

	for attempt := 0; err != nil && e.classifier.IsTransient(err); attempt++ {
		if maxAttempts >= 0 && attempt >= maxAttempts {
			break
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		delay := e.strategy.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, err, delay)
		}
		if sleepErr := e.sleep(ctx, delay); sleepErr != nil {
			return sleepErr
		}
		err = operation(ctx)
	}
	return err
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

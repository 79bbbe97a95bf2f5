package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = &pgconn.PgError{Code: "08006", Message: "connection failure"}

// flaky fails with errTransient until call number succeedOn.
type flaky struct {
	calls     int
	succeedOn int
	final     error
}

func (f *flaky) run(ctx context.Context) error {
	f.calls++
	if f.calls < f.succeedOn {
		return errTransient
	}
	return f.final
}

func isPgConnection(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code[:2] == "08"
}

// newTestExecutor records the delays instead of sleeping.
func newTestExecutor(maxAttempts int) (*Executor, *[]time.Duration) {
	var waits []time.Duration
	e := NewExecutor(ClassifierFunc(isPgConnection), NewExponentialBackoff(maxAttempts, WithJitter(0)))
	e.sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return ctx.Err()
	}
	return e, &waits
}

func TestExecute_SuccessOnFirstAttempt(t *testing.T) {
	e, waits := newTestExecutor(3)
	op := &flaky{succeedOn: 1}

	require.NoError(t, e.Execute(context.Background(), op.run))
	assert.Equal(t, 1, op.calls)
	assert.Empty(t, *waits)
}

func TestExecute_SuccessAfterRetries(t *testing.T) {
	e, waits := newTestExecutor(5)
	op := &flaky{succeedOn: 4}

	require.NoError(t, e.Execute(context.Background(), op.run))
	assert.Equal(t, 4, op.calls)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond}, *waits)
}

func TestExecute_FatalErrorIsNotRetried(t *testing.T) {
	e, waits := newTestExecutor(5)
	fatal := &pgconn.PgError{Code: "28P01", Message: "password authentication failed"}
	op := &flaky{succeedOn: 1, final: fatal}

	err := e.Execute(context.Background(), op.run)
	assert.Same(t, fatal, err)
	assert.Equal(t, 1, op.calls)
	assert.Empty(t, *waits)
}

func TestExecute_FatalAfterTransient(t *testing.T) {
	e, _ := newTestExecutor(5)
	fatal := errors.New("syntax error")
	op := &flaky{succeedOn: 3, final: fatal}

	assert.Equal(t, fatal, e.Execute(context.Background(), op.run))
	assert.Equal(t, 3, op.calls)
}

func TestExecute_ExhaustsAttempts(t *testing.T) {
	e, waits := newTestExecutor(2)
	op := &flaky{succeedOn: 100}

	err := e.Execute(context.Background(), op.run)
	assert.Equal(t, errTransient, err)
	assert.Equal(t, 3, op.calls, "first try plus two retries")
	assert.Len(t, *waits, 2)
}

func TestExecute_ZeroAttemptsDisablesRetry(t *testing.T) {
	e, _ := newTestExecutor(0)
	op := &flaky{succeedOn: 100}

	assert.Equal(t, errTransient, e.Execute(context.Background(), op.run))
	assert.Equal(t, 1, op.calls)
}

func TestExecute_ContextCanceled(t *testing.T) {
	e, _ := newTestExecutor(5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	op := &flaky{succeedOn: 100}

	err := e.Execute(ctx, op.run)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, op.calls)
}

func TestExecute_RealSleepHonoursContext(t *testing.T) {
	e := NewExecutor(ClassifierFunc(isPgConnection), NewExponentialBackoff(5, WithInitialDelay(time.Hour)))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := e.Execute(ctx, (&flaky{succeedOn: 100}).run)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWithOnRetry(t *testing.T) {
	base, _ := newTestExecutor(3)
	var attempts []int
	e := base.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		attempts = append(attempts, attempt)
		assert.Equal(t, errTransient, err)
	})

	require.NoError(t, e.Execute(context.Background(), (&flaky{succeedOn: 3}).run))
	assert.Equal(t, []int{0, 1}, attempts)
	assert.Nil(t, base.onRetry, "the original executor is unchanged")
}

func TestNewExecutor_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewExecutor(nil, NewExponentialBackoff(1)) })
	assert.Panics(t, func() { NewExecutor(ClassifierFunc(isPgConnection), nil) })
}

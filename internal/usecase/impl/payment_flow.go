package impl

import (
	"context"
	"sync"
	"time"

	"github.com/Benmwania/ecomart/internal/domain/entity"
	"github.com/Benmwania/ecomart/internal/usecase"
)

// reporter wraps the attempt callbacks behind a latch so every attempt
// reports its outcome at most once, no matter which flow path reaches a
// terminal state first.
type reporter struct {
	cb   usecase.Callbacks
	once sync.Once
}

func newReporter(cb usecase.Callbacks) *reporter {
	return &reporter{cb: cb}
}

func (r *reporter) success(result entity.PaymentResult) {
	r.once.Do(func() {
		if r.cb.OnSuccess != nil {
			r.cb.OnSuccess(result)
		}
	})
}

func (r *reporter) failure(err error) {
	r.once.Do(func() {
		if r.cb.OnError != nil {
			r.cb.OnError(err)
		}
	})
}

// sleeper waits for d or until ctx is done. Injectable so the poll loop
// can be driven by a fake clock in tests.
type sleeper func(ctx context.Context, d time.Duration) error

func waitSleeper(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

package limiter

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestLocalLimiterBlocksWhenFull(t *testing.T) {
	l := NewLocalLimiter(1)
	ctx := context.Background()

	if err := l.Acquire(ctx, "pdf"); err != nil {
		t.Fatalf("first acquire: %v", err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	if err := l.Acquire(waitCtx, "pdf"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}

	l.Release(ctx, "pdf")
	if err := l.Acquire(ctx, "pdf"); err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
}

func TestLocalLimiterCapsConcurrency(t *testing.T) {
	const max = 2
	l := NewLocalLimiter(max)
	ctx := context.Background()

	var running, peak int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.Acquire(ctx, "pdf"); err != nil {
				t.Error(err)
				return
			}
			defer l.Release(ctx, "pdf")

			n := atomic.AddInt32(&running, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&running, -1)
		}()
	}
	wg.Wait()

	if peak > max {
		t.Errorf("peak concurrency %d exceeds %d", peak, max)
	}
	if local := l.(*LocalLimiter); local.InUse() != 0 {
		t.Errorf("expected all slots released, %d in use", local.InUse())
	}
}

func TestLocalLimiterUsage(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLimiter(2)
	l.Acquire(ctx, "pdf")

	usage, err := l.(Reporter).Usage(ctx, "pdf")
	if err != nil || usage != (Usage{InUse: 1, Max: 2}) {
		t.Errorf("usage = %+v, %v", usage, err)
	}

	usage, _ = Unlimited{}.Usage(ctx, "pdf")
	if usage != (Usage{}) {
		t.Errorf("unlimited usage = %+v", usage)
	}
}

func TestReleaseWithoutAcquire(t *testing.T) {
	l := NewLocalLimiter(1)
	l.Release(context.Background(), "pdf")
	if l.(*LocalLimiter).InUse() != 0 {
		t.Error("release on empty limiter should be a no-op")
	}
}

func TestNonPositiveMaxIsUnlimited(t *testing.T) {
	for _, n := range []int{0, -1} {
		if _, ok := NewLocalLimiter(n).(Unlimited); !ok {
			t.Errorf("NewLocalLimiter(%d) should be Unlimited", n)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := (Unlimited{}).Acquire(ctx, "pdf"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected canceled context error, got %v", err)
	}
}

package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExecutorRunsJobsInOrder(t *testing.T) {
	e := NewExecutor()
	defer e.Stop()

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		e.Submit(func() { order = append(order, i) })
	}

	require.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestExecutorSubmitBlocksUntilDone(t *testing.T) {
	e := NewExecutor()
	defer e.Stop()

	var done atomic.Bool
	e.Submit(func() {
		time.Sleep(5 * time.Millisecond)
		done.Store(true)
	})

	require.True(t, done.Load())
}

func TestExecutorSubmitAfterStopDoesNotHang(t *testing.T) {
	e := NewExecutor()
	e.Stop()

	doneCh := make(chan struct{})
	go func() {
		e.Submit(func() {})
		close(doneCh)
	}()

	select {
	case <-doneCh:
	case <-time.After(time.Second):
		t.Fatal("Submit after Stop did not return")
	}
}

func TestDebouncerLeadingEdge(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var fired int32
	for i := 0; i < 5; i++ {
		d.Fire(func() { atomic.AddInt32(&fired, 1) })
	}

	require.EqualValues(t, 1, atomic.LoadInt32(&fired))

	time.Sleep(50 * time.Millisecond)
	d.Fire(func() { atomic.AddInt32(&fired, 1) })
	require.EqualValues(t, 2, atomic.LoadInt32(&fired))
}

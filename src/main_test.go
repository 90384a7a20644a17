package main

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSafeGo_RestartsAfterPanic(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan struct{})

	SafeGo(ctx, cancel, "flaky", func(ctx context.Context) {
		if calls.Add(1) == 1 {
			panic("first run fails")
		}
		close(done)
	})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker was not restarted")
	}

	assert.Equal(t, int32(2), calls.Load())
	assert.NoError(t, ctx.Err())
}

func TestSafeGo_NormalReturnDoesNotRestart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	SafeGo(ctx, cancel, "once", func(ctx context.Context) {
		calls.Add(1)
	})

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

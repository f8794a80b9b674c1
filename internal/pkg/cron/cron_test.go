package cron

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterIsIdempotent(t *testing.T) {
	s := New()
	var runs int32

	job := Job{
		Name:     "sweep",
		Interval: time.Hour,
		Fn: func(context.Context) error {
			atomic.AddInt32(&runs, 1)
			return nil
		},
	}
	s.Register(job)
	s.Register(job)

	assert.True(t, s.Has("sweep"))
	assert.False(t, s.Has("other"))
	assert.Len(t, s.List(), 1)
}

func TestRunTriggersJob(t *testing.T) {
	s := New()
	done := make(chan struct{})
	s.Register(Job{
		Name:     "once",
		Interval: time.Hour,
		Fn: func(context.Context) error {
			close(done)
			return nil
		},
	})

	require.NoError(t, s.Run(context.Background(), "once"))
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run")
	}
}

func TestRunUnknownJob(t *testing.T) {
	err := New().Run(context.Background(), "missing")
	assert.Error(t, err)
}

func TestFailureRecordedInList(t *testing.T) {
	s := New()
	ran := make(chan struct{})
	s.Register(Job{
		Name:     "flaky",
		Interval: time.Hour,
		Fn: func(context.Context) error {
			defer close(ran)
			return fmt.Errorf("boom")
		},
	})
	require.NoError(t, s.Run(context.Background(), "flaky"))
	<-ran

	// Run executes asynchronously; wait for the status to settle.
	deadline := time.Now().Add(2 * time.Second)
	for {
		items := s.List()
		require.Len(t, items, 1)
		if items[0].Status == StatusReject {
			assert.NotNil(t, items[0].LastRunAt)
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("status never settled, got %s", items[0].Status)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestLateRegistrationAfterStart(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	ran := make(chan struct{})
	s.Register(Job{
		Name:     "late",
		Interval: 10 * time.Millisecond,
		Fn: func(context.Context) error {
			select {
			case ran <- struct{}{}:
			default:
			}
			return nil
		},
	})

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("late-registered job never ran")
	}
}

package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_AddJobRejectsBadSpec(t *testing.T) {
	s := NewScheduler(time.UTC, time.Second, nil)
	err := s.AddJob("broken", "not a spec", func(context.Context) error { return nil })
	assert.Error(t, err)
	assert.Empty(t, s.Jobs())
}

func TestScheduler_RunOnceAppliesTimeout(t *testing.T) {
	s := NewScheduler(time.UTC, 50*time.Millisecond, nil)

	var sawDeadline bool
	calls := 0
	require.NoError(t, s.AddJob("first", "5 0 1 1 *", func(ctx context.Context) error {
		_, sawDeadline = ctx.Deadline()
		calls++
		return nil
	}))
	require.NoError(t, s.AddJob("second", "30 0 * * 2-6", func(ctx context.Context) error {
		calls++
		return errors.New("boom")
	}))

	s.RunOnce()
	assert.Equal(t, 2, calls)
	assert.True(t, sawDeadline)
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(nil, 0, nil)
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweeperRunsImmediatelyAndStops(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, repo := newMenuServiceWithClock(t, func() time.Time { return now })
	item := seedItem(t, repo, "100.00")

	_, err := svc.ApplyDiscount(context.Background(), item.ID, 20, 1)
	require.NoError(t, err)

	// Jump the clock past the window before the sweeper starts. The first
	// sweep happens on Start, not on the first tick, so a long interval
	// still reverts promptly.
	now = now.Add(48 * time.Hour)

	sweeper := NewSweeper(svc, time.Hour, testLogger())
	sweeper.now = func() time.Time { return now }

	done := make(chan error, 1)
	go func() {
		done <- sweeper.Start(context.Background())
	}()

	assert.Eventually(t, func() bool {
		got, err := repo.GetByID(context.Background(), item.ID)
		return err == nil && got.DiscountEnd == nil
	}, time.Second, 10*time.Millisecond, "first sweep should revert the expired discount")

	sweeper.Stop()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestSweeperStopsOnContextCancel(t *testing.T) {
	svc, _ := newMenuServiceWithClock(t, time.Now)
	sweeper := NewSweeper(svc, time.Hour, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- sweeper.Start(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop on context cancel")
	}
}

package screen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyAfterDispose(t *testing.T) {
	s := New(context.Background())
	ran := 0

	assert.True(t, s.Apply(func() { ran++ }))
	s.Dispose()
	s.Dispose()
	assert.False(t, s.Mounted())
	assert.False(t, s.Apply(func() { ran++ }))
	assert.Equal(t, 1, ran)
	assert.ErrorIs(t, s.Context().Err(), context.Canceled)
}

func TestApplyLatestDropsStale(t *testing.T) {
	s := New(context.Background())
	defer s.Dispose()

	first := s.Begin("listings")
	second := s.Begin("listings")
	other := s.Begin("reports")

	var got []string
	assert.False(t, s.ApplyLatest(first, func() { got = append(got, "first") }))
	assert.True(t, s.ApplyLatest(second, func() { got = append(got, "second") }))
	assert.True(t, s.ApplyLatest(other, func() { got = append(got, "other") }))
	assert.Equal(t, []string{"second", "other"}, got)
}

func TestGoCancelsOnDispose(t *testing.T) {
	s := New(context.Background())
	started := make(chan struct{})
	applied := false

	done := Go(s, "stats", func(ctx context.Context) (int, error) {
		close(started)
		<-ctx.Done()
		return 0, ctx.Err()
	}, func(v int, err error) {
		applied = true
	})

	<-started
	s.Dispose()
	<-done
	assert.False(t, applied)
}

func TestGoAppliesResult(t *testing.T) {
	s := New(context.Background())
	defer s.Dispose()

	var got int
	done := Go(s, "stats", func(ctx context.Context) (int, error) {
		return 42, nil
	}, func(v int, err error) {
		got = v
	})
	<-done
	assert.Equal(t, 42, got)
}

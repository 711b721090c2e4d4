package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"counsellor/internal/domain"
)

func TestStorage_RoundTripAndTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	s, err := NewStorage(ctx, Config{Addr: mr.Addr(), Prefix: "test", TTL: time.Minute})
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Get(ctx, "in:lawyer")
	require.NoError(t, err)
	assert.False(t, ok)

	avg := 650000.0
	require.NoError(t, s.Set(ctx, "in:lawyer", domain.MarketData{JobCount: 12, AvgSalary: &avg}))
	assert.True(t, mr.Exists("test:in:lawyer"))

	got, ok, err := s.Get(ctx, "in:lawyer")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 12, got.JobCount)
	require.NotNil(t, got.AvgSalary)
	assert.Equal(t, 650000.0, *got.AvgSalary)

	mr.FastForward(2 * time.Minute)
	_, ok, err = s.Get(ctx, "in:lawyer")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStorage_NilSalaryOmitted(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()
	s, err := NewStorage(ctx, Config{Addr: mr.Addr()})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(ctx, "in:athlete", domain.MarketData{JobCount: 3}))

	raw, err := mr.Get("market:in:athlete")
	require.NoError(t, err)
	assert.JSONEq(t, `{"job_count":3}`, raw)

	got, ok, err := s.Get(ctx, "in:athlete")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Nil(t, got.AvgSalary)
}

func TestNewStorage_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err = NewStorage(ctx, Config{Addr: addr})
	assert.Error(t, err)
}

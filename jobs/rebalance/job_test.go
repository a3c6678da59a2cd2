package rebalance

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRebalancer struct {
	calls atomic.Int32
	err   error
}

func (c *countingRebalancer) RebalanceAll(context.Context) (int, error) {
	c.calls.Add(1)
	return 2, c.err
}

func TestRunCallsRebalancer(t *testing.T) {
	r := &countingRebalancer{}
	j, err := New(context.Background(), r, "0 5 * * *")
	require.NoError(t, err)
	j.Run()
	r.err = errors.New("store down")
	j.Run()
	assert.Equal(t, int32(2), r.calls.Load())
}

func TestRunSkipsAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := &countingRebalancer{}
	j, err := New(ctx, r, "0 5 * * *")
	require.NoError(t, err)
	cancel()
	j.Run()
	assert.Equal(t, int32(0), r.calls.Load())
}

func TestInvalidCron(t *testing.T) {
	_, err := New(context.Background(), &countingRebalancer{}, "every day")
	assert.Error(t, err)
}

func TestStartStop(t *testing.T) {
	j, err := New(context.Background(), &countingRebalancer{}, "0 5 * * *")
	require.NoError(t, err)
	j.Start()
	j.Stop()
}

package clients

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/go-catalog/internal/cfg"
	"github.com/DRSN-tech/go-catalog/pkg/jitter"
	"github.com/DRSN-tech/go-catalog/pkg/logger"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastPolicy = jitter.Policy{Attempts: 3, Base: time.Millisecond, Max: 5 * time.Millisecond}

func TestRedisClientWaitReady(t *testing.T) {
	mr := miniredis.RunT(t)

	client := NewRedisClient(&cfg.RedisCfg{Addr: mr.Addr(), DialTimeout: time.Second, Timeout: time.Second})
	defer client.Close()

	require.NoError(t, client.WaitReady(context.Background(), fastPolicy, logger.Nop()))
}

func TestRedisClientWaitReadyGivesUp(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	client := NewRedisClient(&cfg.RedisCfg{Addr: addr, MaxRetries: -1, DialTimeout: 100 * time.Millisecond, Timeout: 100 * time.Millisecond})
	defer client.Close()

	assert.Error(t, client.WaitReady(context.Background(), fastPolicy, logger.Nop()))
}

func TestRedisClientWaitReadyCanceled(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	client := NewRedisClient(&cfg.RedisCfg{Addr: addr, MaxRetries: -1, DialTimeout: 100 * time.Millisecond, Timeout: 100 * time.Millisecond})
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, client.WaitReady(ctx, jitter.Policy{Attempts: 10, Base: time.Second, Max: time.Second}, logger.Nop()))
}

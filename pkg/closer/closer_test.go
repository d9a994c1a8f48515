package closer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/go-catalog/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type ioCloser struct{ closed bool }

func (c *ioCloser) Close() error {
	c.closed = true
	return nil
}

func TestCloseRunsInReverseOrder(t *testing.T) {
	c := NewCloser(0, logger.Nop())

	var order []string
	for _, name := range []string{"postgres", "kafka", "http"} {
		c.Add(name, func(context.Context) error {
			order = append(order, name)
			return nil
		})
	}
	res := &ioCloser{}
	c.AddCloser("redis", res)

	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, []string{"http", "kafka", "postgres"}, order)
	assert.True(t, res.closed)

	require.NoError(t, c.Close(context.Background()), "second call is a no-op")
	assert.Len(t, order, 3)
}

func TestCloseCollectsErrors(t *testing.T) {
	c := NewCloser(0, logger.Nop())

	var closed bool
	c.Add("postgres", func(context.Context) error {
		closed = true
		return nil
	})
	c.Add("kafka", func(context.Context) error {
		return errors.New("broker not available")
	})

	err := c.Close(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kafka: broker not available")
	assert.True(t, closed, "failure does not stop the remaining funcs")
}

func TestCloseForcesRemainingOnTimeout(t *testing.T) {
	c := NewCloser(50*time.Millisecond, logger.Nop())

	var (
		mu     sync.Mutex
		forced []string
	)
	c.Add("postgres", func(ctx context.Context) error {
		mu.Lock()
		forced = append(forced, "postgres")
		mu.Unlock()
		return nil
	})
	c.Add("http", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.Close(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shutdown interrupted after 0/2 funcs")
	assert.Contains(t, err.Error(), "[FORCED] http")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"postgres"}, forced)
}

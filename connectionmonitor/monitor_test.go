package connectionmonitor

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedClient struct {
	checkErr     error
	reconnectErr error
	checks       int64
	reconnects   int64
}

func (c *scriptedClient) CheckConnection(context.Context) error {
	atomic.AddInt64(&c.checks, 1)
	return c.checkErr
}

func (c *scriptedClient) Reconnect(context.Context) error {
	atomic.AddInt64(&c.reconnects, 1)
	return c.reconnectErr
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func TestStartStop(t *testing.T) {
	t.Run("double start rejected", func(t *testing.T) {
		monitor := NewConnectionMonitor(&scriptedClient{}, testLogger(), "ethereum")

		require.NoError(t, monitor.Start(context.Background()))
		defer monitor.Stop()

		assert.Error(t, monitor.Start(context.Background()))
	})

	t.Run("stop is idempotent", func(t *testing.T) {
		monitor := NewConnectionMonitor(&scriptedClient{}, testLogger(), "ethereum")

		require.NoError(t, monitor.Start(context.Background()))
		monitor.Stop()
		monitor.Stop()
	})

	t.Run("stop before start is a no-op", func(t *testing.T) {
		monitor := NewConnectionMonitor(&scriptedClient{}, testLogger(), "ethereum")
		monitor.Stop()
	})
}

func TestCheckAndReconnect(t *testing.T) {
	t.Run("healthy connection needs no reconnect", func(t *testing.T) {
		client := &scriptedClient{}
		monitor := &connectionMonitor{client: client, logger: testLogger(), chainName: "ethereum"}

		require.NoError(t, monitor.checkAndReconnect(context.Background()))
		assert.EqualValues(t, 1, atomic.LoadInt64(&client.checks))
		assert.Zero(t, atomic.LoadInt64(&client.reconnects))
	})

	t.Run("failed check triggers a reconnect", func(t *testing.T) {
		client := &scriptedClient{checkErr: errors.New("connection reset")}
		monitor := &connectionMonitor{client: client, logger: testLogger(), chainName: "ethereum"}

		require.NoError(t, monitor.checkAndReconnect(context.Background()))
		assert.EqualValues(t, 1, atomic.LoadInt64(&client.reconnects))
	})

	t.Run("cancelled context aborts retries", func(t *testing.T) {
		client := &scriptedClient{
			checkErr:     errors.New("connection reset"),
			reconnectErr: errors.New("still down"),
		}
		monitor := &connectionMonitor{client: client, logger: testLogger(), chainName: "ethereum"}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := monitor.checkAndReconnect(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.EqualValues(t, 1, atomic.LoadInt64(&client.reconnects))
	})
}

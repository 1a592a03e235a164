// Package connectionmonitor keeps a spoke chain's RPC connection alive:
// it pings the client on a fixed interval and drives reconnection with
// bounded retries when a ping fails.
package connectionmonitor

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// pingInterval is the time between connection health checks.
	pingInterval = 30 * time.Second
	// retryBackoff is the pause between failed reconnection attempts.
	retryBackoff = 5 * time.Second
	// maxRetries bounds reconnection attempts per failed health check.
	maxRetries = 3
)

// ConnectionMonitor supervises one chain client's connection.
type ConnectionMonitor interface {
	// Start begins monitoring in a background goroutine. It fails when the
	// monitor is already running.
	Start(ctx context.Context) error
	// Stop ends monitoring. Safe to call more than once.
	Stop()
}

// BlockchainClient is the minimal surface a chain client exposes to the
// monitor.
type BlockchainClient interface {
	// CheckConnection reports whether the connection is alive.
	CheckConnection(ctx context.Context) error
	// Reconnect re-establishes the connection to the node.
	Reconnect(ctx context.Context) error
}

type connectionMonitor struct {
	client    BlockchainClient
	logger    *logrus.Logger
	chainName string

	mu      sync.Mutex
	stop    chan struct{}
	running bool
}

// NewConnectionMonitor creates a monitor for the given client.
//
// Parameters:
// - client: the chain client to supervise.
// - logger: the logger for logging events.
// - chainName: the chain name used in log fields.
//
// Returns:
// - ConnectionMonitor: the monitor, not yet started.
func NewConnectionMonitor(client BlockchainClient, logger *logrus.Logger, chainName string) ConnectionMonitor {
	return &connectionMonitor{
		client:    client,
		logger:    logger,
		chainName: chainName,
		stop:      make(chan struct{}),
	}
}

func (m *connectionMonitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return errors.Errorf("connection monitor already running for chain %s", m.chainName)
	}
	m.running = true

	go m.run(ctx)
	return nil
}

func (m *connectionMonitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}
	close(m.stop)
	m.running = false
}

func (m *connectionMonitor) run(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.WithField("chain", m.chainName).Info("Connection monitoring stopped, context done")
			return
		case <-m.stop:
			m.logger.WithField("chain", m.chainName).Info("Connection monitoring stopped")
			return
		case <-ticker.C:
			if err := m.checkAndReconnect(ctx); err != nil {
				m.logger.WithField("chain", m.chainName).WithError(err).Error("Connection recovery failed")
			}
		}
	}
}

// checkAndReconnect pings the client and, on failure, retries reconnection
// up to maxRetries times with a fixed backoff.
func (m *connectionMonitor) checkAndReconnect(ctx context.Context) error {
	err := m.client.CheckConnection(ctx)
	if err == nil {
		return nil
	}
	m.logger.WithField("chain", m.chainName).WithError(err).Warn("Connection check failed, reconnecting")

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		lastErr = m.client.Reconnect(ctx)
		if lastErr == nil {
			m.logger.WithFields(logrus.Fields{
				"chain":   m.chainName,
				"attempt": attempt,
			}).Info("Client reconnected")
			return nil
		}

		m.logger.WithFields(logrus.Fields{
			"chain":   m.chainName,
			"attempt": attempt,
		}).WithError(lastErr).Error("Reconnection attempt failed")

		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryBackoff):
			}
		}
	}

	return errors.Wrapf(lastErr, "failed to reconnect to chain %s", m.chainName)
}

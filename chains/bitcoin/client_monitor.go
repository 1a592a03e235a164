package bitcoin

import (
	"context"
	"errors"

	"github.com/Crosslane/intent-lib/connectionmonitor"
	"github.com/btcsuite/btcd/rpcclient"
)

// bitcoinConnectionManager implements connectionmonitor.BlockchainClient interface.
type bitcoinConnectionManager struct {
	chain *bitcoin
}

func (m *bitcoinConnectionManager) CheckConnection(ctx context.Context) error {
	m.chain.clientMutex.RLock()
	client := m.chain.client
	m.chain.clientMutex.RUnlock()

	if client == nil {
		return errors.New("client not initialized")
	}

	_, err := client.GetBlockCount()
	return err
}

func (m *bitcoinConnectionManager) Reconnect(ctx context.Context) error {
	m.chain.clientMutex.Lock()
	defer m.chain.clientMutex.Unlock()

	if m.chain.client != nil {
		m.chain.client.Shutdown()
	}

	connCfg, err := connConfigFromURL(m.chain.config.RpcUrl)
	if err != nil {
		return err
	}

	client, err := rpcclient.New(connCfg, nil)
	if err != nil {
		return err
	}

	m.chain.client = client

	return nil
}

func (b *bitcoin) initMonitor(ctx context.Context) error {
	b.monitorMutex.Lock()
	defer b.monitorMutex.Unlock()

	connectionManager := &bitcoinConnectionManager{chain: b}
	b.monitor = connectionmonitor.NewConnectionMonitor(connectionManager, b.logger, b.config.Name)
	return b.monitor.Start(ctx)
}

package evm

import (
	"context"
	"sync"
	"time"

	"github.com/Crosslane/intent-lib/chainmanager"
	"github.com/Crosslane/intent-lib/chains/evm/signer"
	"github.com/Crosslane/intent-lib/common/types"
	"github.com/Crosslane/intent-lib/connectionmonitor"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// TxTypeLegacy represents the legacy transaction type.
	TxTypeLegacy = 0
	// TxTypeEIP1559 represents the EIP-1559 transaction type.
	TxTypeEIP1559 = 2
	// ZeroAddress represents the zero address.
	ZeroAddress = "0x0000000000000000000000000000000000000000"
	// receiptPollInterval is the interval between receipt polls while
	// waiting for confirmation.
	receiptPollInterval = 3 * time.Second
)

// evm represents the base EVM spoke provider implementation.
type evm struct {
	config *types.ChainConfig // Chain configuration.
	logger *logrus.Logger     // Logger for logging events.

	// Protected fields with their own mutexes.
	clientMutex sync.RWMutex      // Mutex for client.
	client      *ethclient.Client // Ethereum client.

	signerMutex sync.RWMutex  // Mutex for signer.
	signer      signer.Signer // Signer for signing transactions.

	monitorMutex sync.RWMutex                        // Mutex for connection monitor.
	monitor      connectionmonitor.ConnectionMonitor // Connection monitor.
}

// NewEvmProvider creates a new EVM spoke provider.
//
// Parameters:
// - ctx: the context for managing the request.
// - config: the chain configuration.
// - logger: the logger for logging events.
//
// Returns:
// - types.SpokeProvider: a new EVM provider instance.
// - error: an error if any issue occurs during creation.
func NewEvmProvider(ctx context.Context, config *types.ChainConfig, logger *logrus.Logger) (types.SpokeProvider, error) {
	client, err := ethclient.Dial(config.RpcUrl)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create client")
	}

	chain := &evm{
		config: config,
		logger: logger,
		client: client,
	}

	if err := chain.initMonitor(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to init connection monitor")
	}

	builder := chainmanager.NewProviderBuilder(config)

	if config.PrivateKey != "" {
		privKey, err := crypto.HexToECDSA(config.PrivateKey)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse private key")
		}

		walletSigner, err := signer.NewSigner(privKey)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create signer")
		}

		chain.signerMutex.Lock()
		chain.signer = walletSigner
		chain.signerMutex.Unlock()

		builder.WithWalletProvider(chain)
		builder.WithCallSubmitter(chain)
		builder.WithAllowanceProvider(chain)
	}

	builder.WithTransactionWatcher(chain)
	builder.WithBalanceProvider(chain)

	return builder.Build(), nil
}

// WalletAddress returns the signing wallet address, or an empty string for
// read-only providers.
func (e *evm) WalletAddress() string {
	e.signerMutex.RLock()
	defer e.signerMutex.RUnlock()

	if e.signer == nil {
		return ""
	}
	return e.signer.Address().Hex()
}

// Close should be called when the provider is no longer needed.
// It stops the connection monitor and closes the client.
func (e *evm) Close() {
	e.monitorMutex.Lock()
	if e.monitor != nil {
		e.monitor.Stop()
	}
	e.monitorMutex.Unlock()

	e.clientMutex.Lock()
	if e.client != nil {
		e.client.Close()
		e.client = nil
	}
	e.clientMutex.Unlock()
}

// GetClient returns the Ethereum client.
func (e *evm) GetClient() *ethclient.Client {
	e.clientMutex.RLock()
	defer e.clientMutex.RUnlock()
	return e.client
}

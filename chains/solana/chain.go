package solana

import (
	"context"
	"sync"
	"time"

	"github.com/Crosslane/intent-lib/chainmanager"
	"github.com/Crosslane/intent-lib/common/types"
	"github.com/Crosslane/intent-lib/connectionmonitor"
	sol "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// defaultComputeUnits is used when transaction simulation fails.
	defaultComputeUnits = 200_000
	// computeUnitBuffer is the percentage applied on top of simulated units.
	computeUnitBuffer = 120
	// defaultPriorityFee is the compute unit price in micro-lamports.
	defaultPriorityFee = 1_000

	// statusPollInterval is the interval between signature status polls.
	statusPollInterval = 2 * time.Second
)

// solana represents the base Solana chain implementation.
type solana struct {
	config *types.ChainConfig // Chain configuration.
	logger *logrus.Logger     // Logger for logging events.

	// Protected fields with their own mutexes.
	clientMutex sync.RWMutex // Mutex for client.
	client      *rpc.Client  // Solana RPC client.

	signerMutex sync.RWMutex   // Mutex for signer.
	signer      sol.PrivateKey // Ed25519 keypair for signing transactions.
	hasSigner   bool           // Whether a keypair was configured.

	monitorMutex sync.RWMutex                        // Mutex for connection monitor.
	monitor      connectionmonitor.ConnectionMonitor // Connection monitor.
}

// NewSolanaProvider creates a new Solana spoke provider.
//
// Parameters:
// - ctx: the context for managing the construction.
// - config: the configuration for the chain.
// - logger: the logger for logging purposes.
//
// Returns:
// - types.SpokeProvider: the constructed provider instance.
// - error: an error if the construction fails.
func NewSolanaProvider(ctx context.Context, config *types.ChainConfig, logger *logrus.Logger) (types.SpokeProvider, error) {
	chain := &solana{
		config: config,
		logger: logger,
		client: rpc.New(config.RpcUrl),
	}

	if err := chain.initMonitor(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to init connection monitor")
	}

	builder := chainmanager.NewProviderBuilder(config)

	if config.PrivateKey != "" {
		keypair, err := sol.PrivateKeyFromBase58(config.PrivateKey)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse keypair")
		}

		chain.signerMutex.Lock()
		chain.signer = keypair
		chain.hasSigner = true
		chain.signerMutex.Unlock()

		builder.WithWalletProvider(chain)
		builder.WithCallSubmitter(chain)
	}

	builder.WithTransactionWatcher(chain)
	builder.WithBalanceProvider(chain)

	return builder.Build(), nil
}

// WalletAddress returns the base58 address of the configured keypair.
func (s *solana) WalletAddress() string {
	s.signerMutex.RLock()
	defer s.signerMutex.RUnlock()

	if !s.hasSigner {
		return ""
	}
	return s.signer.PublicKey().String()
}

// Close should be called when the provider is no longer needed.
func (s *solana) Close() {
	s.monitorMutex.Lock()
	if s.monitor != nil {
		s.monitor.Stop()
	}
	s.monitorMutex.Unlock()

	s.clientMutex.Lock()
	s.client = nil
	s.clientMutex.Unlock()
}

// getClient returns the current RPC client.
func (s *solana) getClient() (*rpc.Client, error) {
	s.clientMutex.RLock()
	defer s.clientMutex.RUnlock()

	if s.client == nil {
		return nil, errors.New("client not initialized")
	}
	return s.client, nil
}

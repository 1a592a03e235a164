package chains

import (
	"context"
	"sync"

	"github.com/Crosslane/intent-lib/chains/bitcoin"
	"github.com/Crosslane/intent-lib/chains/evm"
	"github.com/Crosslane/intent-lib/chains/solana"
	"github.com/Crosslane/intent-lib/chains/sonic"
	commonerrors "github.com/Crosslane/intent-lib/common/errors"
	commontypes "github.com/Crosslane/intent-lib/common/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ProviderConstructor represents a function that constructs a new spoke
// provider instance.
//
// Parameters:
// - ctx: the context for managing the construction.
// - config: the configuration for the chain.
// - logger: the logger for logging purposes.
//
// Returns:
// - commontypes.SpokeProvider: the constructed provider instance.
// - error: an error if the construction fails.
type ProviderConstructor func(ctx context.Context, config *commontypes.ChainConfig, logger *logrus.Logger) (commontypes.SpokeProvider, error)

// ProviderFactory defines the interface for spoke provider creation.
// Chain families without a built-in implementation (Stellar, Sui,
// Injective, Icon, Stacks) are supported through RegisterConstructor.
type ProviderFactory interface {
	// RegisterConstructor registers a constructor for a chain family.
	RegisterConstructor(family string, constructor ProviderConstructor)

	// CreateProvider creates a provider instance from the configuration.
	CreateProvider(ctx context.Context, config *commontypes.ChainConfig, logger *logrus.Logger) (commontypes.SpokeProvider, error)
}

type providerFactory struct {
	// constructors stores the mapping of chain families to their constructors.
	constructors map[string]ProviderConstructor
	// constructorsMutex protects access to the constructors map.
	constructorsMutex sync.RWMutex
}

// NewProviderFactory creates a new provider factory with the built-in
// constructors registered.
func NewProviderFactory() ProviderFactory {
	factory := &providerFactory{
		constructors: make(map[string]ProviderConstructor),
	}

	factory.registerConstructors()

	return factory
}

// RegisterConstructor registers a new provider constructor.
func (f *providerFactory) RegisterConstructor(family string, constructor ProviderConstructor) {
	f.constructorsMutex.Lock()
	defer f.constructorsMutex.Unlock()

	f.constructors[family] = constructor
}

// CreateProvider creates a provider instance based on the configuration.
func (f *providerFactory) CreateProvider(ctx context.Context, config *commontypes.ChainConfig, logger *logrus.Logger) (commontypes.SpokeProvider, error) {
	f.constructorsMutex.RLock()
	constructor, exists := f.constructors[config.Family.String()]
	f.constructorsMutex.RUnlock()

	if !exists {
		return nil, errors.Wrapf(commonerrors.ErrInvalidChainFamily, "family %s", config.Family)
	}

	return constructor(ctx, config, logger)
}

// registerConstructors registers the built-in provider constructors.
func (f *providerFactory) registerConstructors() {
	f.RegisterConstructor(commontypes.EVM.String(), func(ctx context.Context, config *commontypes.ChainConfig, logger *logrus.Logger) (commontypes.SpokeProvider, error) {
		return evm.NewEvmProvider(ctx, config, logger)
	})

	f.RegisterConstructor(commontypes.SONIC.String(), func(ctx context.Context, config *commontypes.ChainConfig, logger *logrus.Logger) (commontypes.SpokeProvider, error) {
		return sonic.NewSonicProvider(ctx, config, logger)
	})

	f.RegisterConstructor(commontypes.SOLANA.String(), func(ctx context.Context, config *commontypes.ChainConfig, logger *logrus.Logger) (commontypes.SpokeProvider, error) {
		return solana.NewSolanaProvider(ctx, config, logger)
	})

	f.RegisterConstructor(commontypes.BITCOIN.String(), func(ctx context.Context, config *commontypes.ChainConfig, logger *logrus.Logger) (commontypes.SpokeProvider, error) {
		return bitcoin.NewBitcoinProvider(ctx, config, logger)
	})
}

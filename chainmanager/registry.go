package chainmanager

import (
	"context"
	"sync"

	commonerrors "github.com/Crosslane/intent-lib/common/errors"
	"github.com/Crosslane/intent-lib/common/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ProviderFactory creates spoke providers from configuration.
type ProviderFactory interface {
	CreateProvider(ctx context.Context, config *types.ChainConfig, logger *logrus.Logger) (types.SpokeProvider, error)
}

type spokeRegistry struct {
	logger         *logrus.Logger
	providers      map[uint64]types.SpokeProvider
	providersMutex sync.RWMutex
	factory        ProviderFactory
	factoryMutex   sync.RWMutex
}

// NewSpokeRegistry creates a provider registry backed by the given factory.
// Providers are keyed by relay chain id.
func NewSpokeRegistry(factory ProviderFactory, logger *logrus.Logger) types.SpokeRegistry {
	return &spokeRegistry{
		providers: make(map[uint64]types.SpokeProvider),
		factory:   factory,
		logger:    logger,
	}
}

func (r *spokeRegistry) Add(ctx context.Context, config *types.ChainConfig) error {
	r.factoryMutex.RLock()
	factory := r.factory
	r.factoryMutex.RUnlock()

	if factory == nil {
		return commonerrors.ErrFactoryNotProvided
	}

	r.providersMutex.RLock()
	_, exists := r.providers[config.RelayChainID]
	r.providersMutex.RUnlock()
	if exists {
		return errors.Wrapf(commonerrors.ErrChainExists, "relay chain id %d", config.RelayChainID)
	}

	provider, err := factory.CreateProvider(ctx, config, r.logger)
	if err != nil {
		return err
	}

	r.providersMutex.Lock()
	r.providers[config.RelayChainID] = provider
	r.providersMutex.Unlock()

	return nil
}

func (r *spokeRegistry) Get(relayChainID uint64) types.SpokeProvider {
	r.providersMutex.RLock()
	provider := r.providers[relayChainID]
	r.providersMutex.RUnlock()
	return provider
}

func (r *spokeRegistry) Remove(relayChainID uint64) {
	r.providersMutex.Lock()
	delete(r.providers, relayChainID)
	r.providersMutex.Unlock()
}

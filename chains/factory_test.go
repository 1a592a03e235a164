package chains

import (
	"context"
	"testing"

	"github.com/Crosslane/intent-lib/chainmanager"
	commonerrors "github.com/Crosslane/intent-lib/common/errors"
	commontypes "github.com/Crosslane/intent-lib/common/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProvider(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	t.Run("unregistered family rejected", func(t *testing.T) {
		factory := NewProviderFactory()

		_, err := factory.CreateProvider(context.Background(), &commontypes.ChainConfig{
			Name:   "stellar",
			Family: commontypes.STELLAR,
		}, logger)
		assert.ErrorIs(t, err, commonerrors.ErrInvalidChainFamily)
	})

	t.Run("registered constructor is used", func(t *testing.T) {
		factory := NewProviderFactory()
		factory.RegisterConstructor(commontypes.STELLAR.String(),
			func(_ context.Context, config *commontypes.ChainConfig, _ *logrus.Logger) (commontypes.SpokeProvider, error) {
				return chainmanager.NewProviderBuilder(config).Build(), nil
			})

		provider, err := factory.CreateProvider(context.Background(), &commontypes.ChainConfig{
			Name:         "stellar",
			Family:       commontypes.STELLAR,
			RelayChainID: commontypes.RelayIDStellar,
		}, logger)
		require.NoError(t, err)
		assert.Equal(t, commontypes.STELLAR, provider.Family())
	})

	t.Run("registration can replace a built-in", func(t *testing.T) {
		factory := NewProviderFactory()
		factory.RegisterConstructor(commontypes.EVM.String(),
			func(_ context.Context, config *commontypes.ChainConfig, _ *logrus.Logger) (commontypes.SpokeProvider, error) {
				return chainmanager.NewProviderBuilder(config).Build(), nil
			})

		provider, err := factory.CreateProvider(context.Background(), &commontypes.ChainConfig{
			Name:         "ethereum",
			Family:       commontypes.EVM,
			RelayChainID: commontypes.RelayIDEthereum,
		}, logger)
		require.NoError(t, err)
		// The stub builds without dialing an RPC endpoint.
		assert.Equal(t, commontypes.RelayIDEthereum, provider.Config().RelayChainID)
	})
}

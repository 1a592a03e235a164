package chainmanager

import (
	"context"
	"math/big"
	"testing"

	commonerrors "github.com/Crosslane/intent-lib/common/errors"
	"github.com/Crosslane/intent-lib/common/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWallet struct{ address string }

func (w stubWallet) WalletAddress() string { return w.address }

type stubBalances struct{ balance *big.Int }

func (b stubBalances) GetTokenBalance(context.Context, string, string) (*big.Int, error) {
	return b.balance, nil
}

type stubAllowances struct {
	token   string
	spender string
	amount  *big.Int
}

func (a *stubAllowances) EnsureAllowance(_ context.Context, token, spender string, amount *big.Int) error {
	a.token = token
	a.spender = spender
	a.amount = amount
	return nil
}

func evmConfig(relayID uint64) *types.ChainConfig {
	return &types.ChainConfig{
		Name:         "ethereum",
		Family:       types.EVM,
		RelayChainID: relayID,
	}
}

func TestProviderCapabilities(t *testing.T) {
	t.Run("missing capabilities return NotImplemented", func(t *testing.T) {
		provider := NewProviderBuilder(evmConfig(types.RelayIDEthereum)).Build()

		assert.Empty(t, provider.WalletAddress())

		_, err := provider.SubmitCalls(context.Background(), nil, nil)
		assert.ErrorIs(t, err, commonerrors.ErrNotImplemented)

		_, err = provider.WaitTransactionConfirmation(context.Background(), "0xabc")
		assert.ErrorIs(t, err, commonerrors.ErrNotImplemented)

		_, err = provider.GetTokenBalance(context.Background(), "0xabc", "")
		assert.ErrorIs(t, err, commonerrors.ErrNotImplemented)

		ensurer, ok := provider.(types.AllowanceProvider)
		require.True(t, ok)
		err = ensurer.EnsureAllowance(context.Background(), "0xtoken", "0xspender", big.NewInt(1))
		assert.ErrorIs(t, err, commonerrors.ErrNotImplemented)
	})

	t.Run("configured capabilities delegate", func(t *testing.T) {
		allowances := &stubAllowances{}
		provider := NewProviderBuilder(evmConfig(types.RelayIDEthereum)).
			WithWalletProvider(stubWallet{address: "0xwallet"}).
			WithBalanceProvider(stubBalances{balance: big.NewInt(42)}).
			WithAllowanceProvider(allowances).
			Build()

		assert.Equal(t, "0xwallet", provider.WalletAddress())

		balance, err := provider.GetTokenBalance(context.Background(), "0xabc", "")
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(42), balance)

		ensurer, ok := provider.(types.AllowanceProvider)
		require.True(t, ok)
		require.NoError(t, ensurer.EnsureAllowance(context.Background(), "0xtoken", "0xspender", big.NewInt(7)))
		assert.Equal(t, "0xtoken", allowances.token)
		assert.Equal(t, "0xspender", allowances.spender)
		assert.Equal(t, big.NewInt(7), allowances.amount)
	})

	t.Run("config and family pass through", func(t *testing.T) {
		provider := NewProviderBuilder(evmConfig(types.RelayIDEthereum)).Build()

		assert.Equal(t, types.EVM, provider.Family())
		assert.Equal(t, types.RelayIDEthereum, provider.Config().RelayChainID)
	})
}

type stubFactory struct {
	err error
}

func (f stubFactory) CreateProvider(_ context.Context, config *types.ChainConfig, _ *logrus.Logger) (types.SpokeProvider, error) {
	if f.err != nil {
		return nil, f.err
	}
	return NewProviderBuilder(config).Build(), nil
}

func TestSpokeRegistry(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	t.Run("add and get by relay chain id", func(t *testing.T) {
		registry := NewSpokeRegistry(stubFactory{}, logger)

		require.NoError(t, registry.Add(context.Background(), evmConfig(types.RelayIDEthereum)))

		provider := registry.Get(types.RelayIDEthereum)
		require.NotNil(t, provider)
		assert.Equal(t, types.RelayIDEthereum, provider.Config().RelayChainID)
	})

	t.Run("duplicate relay chain id rejected", func(t *testing.T) {
		registry := NewSpokeRegistry(stubFactory{}, logger)

		require.NoError(t, registry.Add(context.Background(), evmConfig(types.RelayIDEthereum)))
		err := registry.Add(context.Background(), evmConfig(types.RelayIDEthereum))
		assert.ErrorIs(t, err, commonerrors.ErrChainExists)
	})

	t.Run("unknown relay chain id yields nil", func(t *testing.T) {
		registry := NewSpokeRegistry(stubFactory{}, logger)
		assert.Nil(t, registry.Get(999))
	})

	t.Run("remove makes the chain unknown again", func(t *testing.T) {
		registry := NewSpokeRegistry(stubFactory{}, logger)

		require.NoError(t, registry.Add(context.Background(), evmConfig(types.RelayIDEthereum)))
		registry.Remove(types.RelayIDEthereum)
		assert.Nil(t, registry.Get(types.RelayIDEthereum))

		// A removed chain can be re-added.
		assert.NoError(t, registry.Add(context.Background(), evmConfig(types.RelayIDEthereum)))
	})

	t.Run("factory failure does not register", func(t *testing.T) {
		registry := NewSpokeRegistry(stubFactory{err: commonerrors.ErrInvalidConfig}, logger)

		err := registry.Add(context.Background(), evmConfig(types.RelayIDEthereum))
		assert.ErrorIs(t, err, commonerrors.ErrInvalidConfig)
		assert.Nil(t, registry.Get(types.RelayIDEthereum))
	})
}

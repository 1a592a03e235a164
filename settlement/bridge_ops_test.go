package settlement

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/Crosslane/intent-lib/assetregistry"
	"github.com/Crosslane/intent-lib/bridge"
	commonerrors "github.com/Crosslane/intent-lib/common/errors"
	"github.com/Crosslane/intent-lib/common/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	usdcVault        = "0x3333333333333333333333333333333333333333"
	usdcPool         = "0x4444444444444444444444444444444444444444"
	testAssetManager = "0x5555555555555555555555555555555555555555"
)

func newBridgedService(t *testing.T) *Service {
	t.Helper()
	registry := assetregistry.NewRegistry(types.HubRelayID, map[types.AssetKey]types.AssetDescriptor{
		{SpokeChainID: types.RelayIDEthereum, TokenAddress: spokeUSDC}: {
			HubAssetAddress:  hubUSDC,
			Decimals:         6,
			VaultAddress:     usdcVault,
			VaultDecimals:    18,
			PoolTokenAddress: usdcPool,
		},
	})

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	bridgeSvc, err := bridge.NewService(registry, testAssetManager, logger)
	require.NoError(t, err)

	svc, err := NewService(Config{
		HubConfig: &types.ChainConfig{
			Name:         "sonic",
			Family:       types.SONIC,
			RelayChainID: types.HubRelayID,
			Contracts: types.ChainContracts{
				Settlement:    settlementAddr,
				WalletFactory: factoryAddr,
			},
		},
		HubCaller:    &mockHubCaller{},
		Registry:     registry,
		Bridge:       bridgeSvc,
		Relay:        relayBackend(t, types.PacketExecuted),
		RelayTimeout: time.Second,
	}, logger)
	require.NoError(t, err)
	return svc
}

// allowanceRecord captures one EnsureAllowance call.
type allowanceRecord struct {
	token   string
	spender string
	amount  *big.Int
}

// allowanceHub is a hub provider whose wallet manages its own allowances.
type allowanceHub struct {
	*mockProvider
	ensured   []allowanceRecord
	ensureErr error
}

func (h *allowanceHub) EnsureAllowance(_ context.Context, token, spender string, amount *big.Int) error {
	if h.ensureErr != nil {
		return h.ensureErr
	}
	h.ensured = append(h.ensured, allowanceRecord{token: token, spender: spender, amount: amount})
	return nil
}

func TestDeposit(t *testing.T) {
	t.Run("wrap calls run on the hub and confirm", func(t *testing.T) {
		svc := newBridgedService(t)
		hub := hubProvider()

		result, err := svc.Deposit(context.Background(), hub, types.RelayIDEthereum,
			spokeUSDC, big.NewInt(1_000_000), usdcPool)
		require.NoError(t, err)
		assert.Equal(t, spokeTxHash, result.Hash)

		// approve vault, deposit vault, approve wrapper, deposit wrapper
		require.Len(t, hub.submitted, 1)
		assert.Len(t, hub.submitted[0], 4)
	})

	t.Run("calls go out one transaction each", func(t *testing.T) {
		svc := newBridgedService(t)
		hub := hubProvider()

		_, err := svc.Deposit(context.Background(), hub, types.RelayIDEthereum,
			spokeUSDC, big.NewInt(1_000_000), usdcPool)
		require.NoError(t, err)

		// Approves and deposits act as the wallet: an aggregation contract
		// in the middle would become msg.sender and the vault would pull
		// from an empty account, so batching must be off.
		require.Len(t, hub.submitOpts, 1)
		require.NotNil(t, hub.submitOpts[0])
		assert.True(t, hub.submitOpts[0].Sequential)
	})

	t.Run("allowance-managing hub pre-flights the approvals", func(t *testing.T) {
		svc := newBridgedService(t)
		hub := &allowanceHub{mockProvider: hubProvider()}

		result, err := svc.Deposit(context.Background(), hub, types.RelayIDEthereum,
			spokeUSDC, big.NewInt(1_000_000), usdcPool)
		require.NoError(t, err)
		assert.Equal(t, spokeTxHash, result.Hash)

		// Vault pulls the base asset, wrapper pulls the minted shares in
		// vault decimals.
		require.Len(t, hub.ensured, 2)
		assert.Equal(t, allowanceRecord{token: hubUSDC, spender: usdcVault, amount: big.NewInt(1_000_000)}, hub.ensured[0])
		assert.Equal(t, usdcVault, hub.ensured[1].token)
		assert.Equal(t, usdcPool, hub.ensured[1].spender)
		assert.Equal(t, "1000000000000000000", hub.ensured[1].amount.String())

		// Only the two deposit calls remain in the submitted batch.
		require.Len(t, hub.submitted, 1)
		require.Len(t, hub.submitted[0], 2)
		assert.Equal(t, usdcVault, hub.submitted[0][0].To)
		assert.Equal(t, usdcPool, hub.submitted[0][1].To)
	})

	t.Run("failed approval aborts before anything is submitted", func(t *testing.T) {
		svc := newBridgedService(t)
		hub := &allowanceHub{mockProvider: hubProvider(), ensureErr: commonerrors.ErrApprovalFailed}

		_, err := svc.Deposit(context.Background(), hub, types.RelayIDEthereum,
			spokeUSDC, big.NewInt(1_000_000), usdcPool)
		assert.ErrorIs(t, err, commonerrors.ErrApprovalFailed)
		assert.Empty(t, hub.submitted)
	})

	t.Run("allowance capability absent falls back to inline approves", func(t *testing.T) {
		svc := newBridgedService(t)
		hub := &allowanceHub{mockProvider: hubProvider(), ensureErr: commonerrors.ErrNotImplemented}

		_, err := svc.Deposit(context.Background(), hub, types.RelayIDEthereum,
			spokeUSDC, big.NewInt(1_000_000), usdcPool)
		require.NoError(t, err)

		require.Len(t, hub.submitted, 1)
		assert.Len(t, hub.submitted[0], 4)
	})

	t.Run("spoke provider rejected", func(t *testing.T) {
		svc := newBridgedService(t)

		_, err := svc.Deposit(context.Background(), spokeProvider(), types.RelayIDEthereum,
			spokeUSDC, big.NewInt(1), usdcPool)
		assert.ErrorIs(t, err, commonerrors.ErrInvalidSpokeProvider)
	})

	t.Run("missing bridge rejected", func(t *testing.T) {
		svc := newTestService(t, relayBackend(t, types.PacketExecuted), &mockHubCaller{}, nil)

		_, err := svc.Deposit(context.Background(), hubProvider(), types.RelayIDEthereum,
			spokeUSDC, big.NewInt(1), usdcPool)
		assert.ErrorIs(t, err, commonerrors.ErrInvalidConfig)
	})

	t.Run("reverted wrap surfaces as error", func(t *testing.T) {
		svc := newBridgedService(t)
		hub := hubProvider()
		hub.confirm = types.TxStatusFailed

		_, err := svc.Deposit(context.Background(), hub, types.RelayIDEthereum,
			spokeUSDC, big.NewInt(1_000_000), usdcPool)
		assert.Error(t, err)
	})
}

func TestWithdraw(t *testing.T) {
	t.Run("unwrap calls route to the destination chain", func(t *testing.T) {
		svc := newBridgedService(t)
		hub := hubProvider()

		result, err := svc.Withdraw(context.Background(), hub, types.RelayIDEthereum,
			spokeUSDC, big.NewInt(1_000_000_000_000_000_000), userAddr)
		require.NoError(t, err)
		assert.Equal(t, spokeTxHash, result.Hash)

		// redeem wrapper, withdraw vault, asset manager transfer
		require.Len(t, hub.submitted, 1)
		require.Len(t, hub.submitted[0], 3)
		assert.Equal(t, testAssetManager, hub.submitted[0][2].To)

		// Redeem and withdraw act on the holder's shares by msg.sender, so
		// the calls never batch through an aggregation contract.
		require.Len(t, hub.submitOpts, 1)
		require.NotNil(t, hub.submitOpts[0])
		assert.True(t, hub.submitOpts[0].Sequential)
	})

	t.Run("unknown destination chain rejected", func(t *testing.T) {
		svc := newBridgedService(t)

		_, err := svc.Withdraw(context.Background(), hubProvider(), 9999,
			spokeUSDC, big.NewInt(1), userAddr)
		assert.ErrorIs(t, err, commonerrors.ErrInvalidParams)
	})

	t.Run("recipient encodes for the destination family", func(t *testing.T) {
		svc := newBridgedService(t)

		// An EVM hex recipient is not a valid Bitcoin address.
		_, err := svc.Withdraw(context.Background(), hubProvider(), types.RelayIDBitcoin,
			spokeUSDC, big.NewInt(1), userAddr)
		require.Error(t, err)
		assert.ErrorIs(t, err, commonerrors.ErrInvalidAddress)
	})
}

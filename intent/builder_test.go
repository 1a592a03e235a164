package intent

import (
	"math/big"
	"testing"

	"github.com/Crosslane/intent-lib/assetregistry"
	commonerrors "github.com/Crosslane/intent-lib/common/errors"
	"github.com/Crosslane/intent-lib/common/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCreator      = "0x00000000000000000000000000000000000000AA"
	testFeeRecipient = "0x00000000000000000000000000000000000000Fe"
	ethUSDC          = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
	hubUSDC          = "0x1111111111111111111111111111111111111111"
	hubWETH          = "0x2222222222222222222222222222222222222222"
)

func testRegistry() *assetregistry.Registry {
	return assetregistry.NewRegistry(types.HubRelayID, map[types.AssetKey]types.AssetDescriptor{
		{SpokeChainID: types.RelayIDEthereum, TokenAddress: ethUSDC}: {
			HubAssetAddress: hubUSDC,
			Decimals:        6,
		},
	})
}

func testParams() types.IntentParams {
	return types.IntentParams{
		SrcChain:        types.RelayIDEthereum,
		DstChain:        types.HubRelayID,
		InputToken:      ethUSDC,
		OutputToken:     hubWETH,
		InputAmount:     big.NewInt(1_000_000),
		MinOutputAmount: big.NewInt(900),
		Deadline:        1_900_000_000,
		SrcAddress:      "0x71C7656EC7ab88b098defB751B7401B5f6d8976F",
		DstAddress:      "0x71C7656EC7ab88b098defB751B7401B5f6d8976F",
	}
}

func TestBuildIntent(t *testing.T) {
	registry := testRegistry()

	t.Run("fee conservation", func(t *testing.T) {
		fee := types.PartnerFeeFixed{Address: testFeeRecipient, Amount: big.NewInt(1_000)}

		built, feeAmount, feeData, err := BuildIntent(testParams(), testCreator, fee, registry)
		require.NoError(t, err)

		assert.Equal(t, big.NewInt(1_000), feeAmount)
		assert.Equal(t, big.NewInt(999_000), built.InputAmount)

		total := new(big.Int).Add(built.InputAmount, feeAmount)
		assert.Equal(t, big.NewInt(1_000_000), total)

		require.NotNil(t, feeData)
		recipient, amount, err := DecodeFeeData(feeData)
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress(testFeeRecipient), recipient)
		assert.Equal(t, big.NewInt(1_000), amount)
	})

	t.Run("no fee leaves data empty", func(t *testing.T) {
		built, feeAmount, feeData, err := BuildIntent(testParams(), testCreator, nil, registry)
		require.NoError(t, err)

		assert.Zero(t, feeAmount.Sign())
		assert.Nil(t, feeData)
		assert.Equal(t, big.NewInt(1_000_000), built.InputAmount)
	})

	t.Run("tokens resolve through the registry", func(t *testing.T) {
		built, _, _, err := BuildIntent(testParams(), testCreator, nil, registry)
		require.NoError(t, err)

		assert.Equal(t, hubUSDC, built.InputToken)
		// Destination is the hub itself: the token address passes through.
		assert.Equal(t, hubWETH, built.OutputToken)
	})

	t.Run("addresses encode to canonical bytes", func(t *testing.T) {
		built, _, _, err := BuildIntent(testParams(), testCreator, nil, registry)
		require.NoError(t, err)

		assert.Len(t, built.SrcAddress, 20)
		assert.Len(t, built.DstAddress, 20)
		assert.Equal(t, testCreator, built.Creator)
	})

	t.Run("intent ids are unique", func(t *testing.T) {
		first, _, _, err := BuildIntent(testParams(), testCreator, nil, registry)
		require.NoError(t, err)
		second, _, _, err := BuildIntent(testParams(), testCreator, nil, registry)
		require.NoError(t, err)

		assert.NotEqual(t, first.IntentID, second.IntentID)
	})

	t.Run("nil min output defaults to zero", func(t *testing.T) {
		params := testParams()
		params.MinOutputAmount = nil

		built, _, _, err := BuildIntent(params, testCreator, nil, registry)
		require.NoError(t, err)
		assert.Zero(t, built.MinOutputAmount.Sign())
	})

	t.Run("unknown relay chain id rejected", func(t *testing.T) {
		params := testParams()
		params.SrcChain = 9999

		_, _, _, err := BuildIntent(params, testCreator, nil, registry)
		assert.ErrorIs(t, err, commonerrors.ErrInvalidParams)
	})

	t.Run("unmapped token rejected", func(t *testing.T) {
		params := testParams()
		params.InputToken = "0x000000000000000000000000000000000000dEaD"

		_, _, _, err := BuildIntent(params, testCreator, nil, registry)
		assert.ErrorIs(t, err, commonerrors.ErrHubAssetNotFound)
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		params := testParams()
		params.InputAmount = big.NewInt(0)

		_, _, _, err := BuildIntent(params, testCreator, nil, registry)
		assert.ErrorIs(t, err, commonerrors.ErrInvalidAmount)
	})
}

func TestIntentHashDeterministic(t *testing.T) {
	registry := testRegistry()

	built, _, _, err := BuildIntent(testParams(), testCreator, nil, registry)
	require.NoError(t, err)

	first, err := Hash(built)
	require.NoError(t, err)
	second, err := Hash(built)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEqual(t, [32]byte{}, first)
}

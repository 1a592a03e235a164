package intent

import (
	"math/big"
	"testing"

	commonerrors "github.com/Crosslane/intent-lib/common/errors"
	"github.com/Crosslane/intent-lib/common/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateFee(t *testing.T) {
	recipient := "0x0000000000000000000000000000000000000042"

	t.Run("nil config yields zero fee", func(t *testing.T) {
		fee, err := CalculateFee(big.NewInt(1_000_000), nil)
		require.NoError(t, err)
		assert.Zero(t, fee.Sign())
	})

	t.Run("fixed fee deducted as-is", func(t *testing.T) {
		fee, err := CalculateFee(big.NewInt(1_000_000), types.PartnerFeeFixed{
			Address: recipient,
			Amount:  big.NewInt(1_000),
		})
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(1_000), fee)
	})

	t.Run("fixed fee capped at amount", func(t *testing.T) {
		fee, err := CalculateFee(big.NewInt(500), types.PartnerFeeFixed{
			Address: recipient,
			Amount:  big.NewInt(1_000),
		})
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(500), fee)
	})

	t.Run("fixed fee without amount rejected", func(t *testing.T) {
		_, err := CalculateFee(big.NewInt(500), types.PartnerFeeFixed{Address: recipient})
		assert.ErrorIs(t, err, commonerrors.ErrInvalidFee)
	})

	t.Run("percentage floors", func(t *testing.T) {
		// 25 bps of 999 is 2.4975, floored to 2.
		fee, err := CalculateFee(big.NewInt(999), types.PartnerFeePercentage{
			Address:    recipient,
			Percentage: 25,
		})
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(2), fee)
	})

	t.Run("percentage at the cap allowed", func(t *testing.T) {
		fee, err := CalculateFee(big.NewInt(10_000), types.PartnerFeePercentage{
			Address:    recipient,
			Percentage: types.MaxPartnerFeeBps,
		})
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(100), fee)
	})

	t.Run("percentage above the cap rejected, not clamped", func(t *testing.T) {
		_, err := CalculateFee(big.NewInt(10_000), types.PartnerFeePercentage{
			Address:    recipient,
			Percentage: types.MaxPartnerFeeBps + 1,
		})
		assert.ErrorIs(t, err, commonerrors.ErrInvalidFee)
	})
}

func TestFeeDataRoundTrip(t *testing.T) {
	recipient := "0x71C7656EC7ab88b098defB751B7401B5f6d8976F"
	amount := big.NewInt(123_456)

	data, err := EncodeFeeData(recipient, amount)
	require.NoError(t, err)
	assert.Len(t, data, 64) // two 32-byte ABI words

	gotRecipient, gotAmount, err := DecodeFeeData(data)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(recipient), gotRecipient)
	assert.Equal(t, amount, gotAmount)
}

func TestEncodeFeeDataRejectsBadRecipient(t *testing.T) {
	_, err := EncodeFeeData("not-an-address", big.NewInt(1))
	assert.ErrorIs(t, err, commonerrors.ErrInvalidParams)
}

package config

import (
	"math/big"
	"testing"
	"time"

	"github.com/Crosslane/intent-lib/common/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feeAddress = "0x0000000000000000000000000000000000000042"

func TestGetEnvRelayEndpoint(t *testing.T) {
	t.Run("set", func(t *testing.T) {
		t.Setenv("RELAY_ENDPOINT", "http://relay.local")
		endpoint, err := GetEnvRelayEndpoint()
		require.NoError(t, err)
		assert.Equal(t, "http://relay.local", endpoint)
	})

	t.Run("missing", func(t *testing.T) {
		t.Setenv("RELAY_ENDPOINT", "")
		_, err := GetEnvRelayEndpoint()
		assert.Error(t, err)
	})
}

func TestGetEnvRelayTimeout(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		t.Setenv("RELAY_TIMEOUT", "")
		timeout, err := GetEnvRelayTimeout()
		require.NoError(t, err)
		assert.Equal(t, time.Duration(DefaultRelayTimeout)*time.Second, timeout)
	})

	t.Run("explicit seconds", func(t *testing.T) {
		t.Setenv("RELAY_TIMEOUT", "120")
		timeout, err := GetEnvRelayTimeout()
		require.NoError(t, err)
		assert.Equal(t, 2*time.Minute, timeout)
	})

	t.Run("non-integer rejected", func(t *testing.T) {
		t.Setenv("RELAY_TIMEOUT", "2m")
		_, err := GetEnvRelayTimeout()
		assert.Error(t, err)
	})

	t.Run("non-positive rejected", func(t *testing.T) {
		t.Setenv("RELAY_TIMEOUT", "0")
		_, err := GetEnvRelayTimeout()
		assert.Error(t, err)
	})
}

func TestGetEnvPrivateKey(t *testing.T) {
	t.Setenv("PRIVATE_KEY_SONIC", "aa")
	t.Setenv("PRIVATE_KEY_BSC_TESTNET", "bb")

	assert.Equal(t, "aa", GetEnvPrivateKey("sonic"))
	// Dashes in chain names map to underscores.
	assert.Equal(t, "bb", GetEnvPrivateKey("bsc-testnet"))
	assert.Empty(t, GetEnvPrivateKey("stellar"))
}

func TestGetEnvPartnerFee(t *testing.T) {
	clear := func(t *testing.T) {
		t.Setenv("PARTNER_FEE_ADDRESS", "")
		t.Setenv("PARTNER_FEE_BPS", "")
		t.Setenv("PARTNER_FEE_AMOUNT", "")
	}

	t.Run("unset means no fee", func(t *testing.T) {
		clear(t)
		fee, err := GetEnvPartnerFee()
		require.NoError(t, err)
		assert.Nil(t, fee)
	})

	t.Run("bps selects a percentage fee", func(t *testing.T) {
		clear(t)
		t.Setenv("PARTNER_FEE_ADDRESS", feeAddress)
		t.Setenv("PARTNER_FEE_BPS", "25")

		fee, err := GetEnvPartnerFee()
		require.NoError(t, err)
		pct, ok := fee.(types.PartnerFeePercentage)
		require.True(t, ok, "expected a percentage fee, got %T", fee)
		assert.Equal(t, uint64(25), pct.Percentage)
		assert.Equal(t, feeAddress, pct.Recipient())
	})

	t.Run("amount selects a fixed fee", func(t *testing.T) {
		clear(t)
		t.Setenv("PARTNER_FEE_ADDRESS", feeAddress)
		t.Setenv("PARTNER_FEE_AMOUNT", "1000000")

		fee, err := GetEnvPartnerFee()
		require.NoError(t, err)
		fixed, ok := fee.(types.PartnerFeeFixed)
		require.True(t, ok, "expected a fixed fee, got %T", fee)
		assert.Equal(t, big.NewInt(1_000_000), fixed.Amount)
	})

	t.Run("both kinds at once rejected", func(t *testing.T) {
		clear(t)
		t.Setenv("PARTNER_FEE_ADDRESS", feeAddress)
		t.Setenv("PARTNER_FEE_BPS", "25")
		t.Setenv("PARTNER_FEE_AMOUNT", "1000000")

		_, err := GetEnvPartnerFee()
		assert.Error(t, err)
	})

	t.Run("fee without address rejected", func(t *testing.T) {
		clear(t)
		t.Setenv("PARTNER_FEE_BPS", "25")

		_, err := GetEnvPartnerFee()
		assert.Error(t, err)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		clear(t)
		t.Setenv("PARTNER_FEE_ADDRESS", feeAddress)
		t.Setenv("PARTNER_FEE_AMOUNT", "-5")

		_, err := GetEnvPartnerFee()
		assert.Error(t, err)
	})
}

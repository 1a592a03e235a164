package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainLookups(t *testing.T) {
	t.Run("by relay id", func(t *testing.T) {
		info, ok := ChainByRelayID(RelayIDEthereum)
		require.True(t, ok)
		assert.Equal(t, "ethereum", info.Name)
		assert.Equal(t, EVM, info.Family)
		assert.Equal(t, uint64(1), info.NativeID)
	})

	t.Run("by native id", func(t *testing.T) {
		info, ok := ChainByNativeID(42161)
		require.True(t, ok)
		assert.Equal(t, "arbitrum", info.Name)

		// Non-EVM chains carry native id 0, which never matches.
		_, ok = ChainByNativeID(0)
		assert.False(t, ok)
	})

	t.Run("by name", func(t *testing.T) {
		info, ok := ChainByName("solana")
		require.True(t, ok)
		assert.Equal(t, SOLANA, info.Family)

		_, ok = ChainByName("dogechain")
		assert.False(t, ok)
	})

	t.Run("family by relay id", func(t *testing.T) {
		assert.Equal(t, SONIC, FamilyByRelayID(RelayIDSonic))
		assert.Equal(t, BITCOIN, FamilyByRelayID(RelayIDBitcoin))
		assert.Equal(t, STACKS, FamilyByRelayID(RelayIDStacks))
		assert.Equal(t, UNKNOWN, FamilyByRelayID(9999))
	})

	t.Run("hub relay id is sonic", func(t *testing.T) {
		info, ok := ChainByRelayID(HubRelayID)
		require.True(t, ok)
		assert.Equal(t, SONIC, info.Family)

		config := ChainConfig{RelayChainID: HubRelayID}
		assert.True(t, config.IsHub())
		config.RelayChainID = RelayIDEthereum
		assert.False(t, config.IsHub())
	})
}

func TestParseChainFamily(t *testing.T) {
	assert.Equal(t, EVM, ParseChainFamily("EVM"))
	assert.Equal(t, STELLAR, ParseChainFamily("STELLAR"))
	assert.Equal(t, UNKNOWN, ParseChainFamily("evm"))
	assert.Equal(t, UNKNOWN, ParseChainFamily(""))
}

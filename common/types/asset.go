package types

// AssetDescriptor maps a spoke-chain token to its hub-chain representation.
// Descriptors are loaded once at startup and never mutated at runtime.
//
// Fields:
// - HubAssetAddress: hub-chain address of the wrapped representation of the token.
// - Decimals: the token's native decimals on its spoke chain.
// - VaultAddress: hub-chain address of the yield-bearing vault for the asset.
// - VaultDecimals: decimals of the vault share token; vault-share accounting
//   stays in this fixed base regardless of which spoke chain value came from.
// - PoolTokenAddress: hub address of the second-layer decimals-normalized
//   wrapper over the vault share; empty when the vault has no second layer
//   (the canonical stable-asset vault).
type AssetDescriptor struct {
	HubAssetAddress  string
	Decimals         uint8
	VaultAddress     string
	VaultDecimals    uint8
	PoolTokenAddress string
}

// AssetKey identifies a spoke-chain token: the relay chain id of the spoke
// chain plus the token address in its chain-native string form.
type AssetKey struct {
	SpokeChainID uint64
	TokenAddress string
}

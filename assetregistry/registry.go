// Package assetregistry maps spoke-chain tokens to their hub-chain asset
// descriptors. The registry is immutable after construction and safe for
// unsynchronized concurrent reads.
package assetregistry

import (
	"strings"

	commonerrors "github.com/Crosslane/intent-lib/common/errors"
	"github.com/Crosslane/intent-lib/common/types"
	"github.com/pkg/errors"
)

// Registry holds the asset descriptor table keyed by
// (spoke relay chain id, spoke token address).
type Registry struct {
	hubRelayID uint64
	assets     map[types.AssetKey]types.AssetDescriptor
}

// NewRegistry creates a registry from the given descriptor table.
// The table is copied: the caller's map is not retained.
//
// Parameters:
// - hubRelayID: the relay id of the hub settlement chain.
// - assets: descriptors keyed by spoke chain and token address.
//
// Returns:
// - *Registry: the immutable registry.
func NewRegistry(hubRelayID uint64, assets map[types.AssetKey]types.AssetDescriptor) *Registry {
	table := make(map[types.AssetKey]types.AssetDescriptor, len(assets))
	for k, v := range assets {
		k.TokenAddress = normalize(k.TokenAddress)
		table[k] = v
	}
	return &Registry{
		hubRelayID: hubRelayID,
		assets:     table,
	}
}

// Descriptor returns the asset descriptor for the given spoke token.
//
// Parameters:
// - spokeChainID: the relay chain id of the spoke chain.
// - tokenAddress: the token address in chain-native form.
//
// Returns:
// - types.AssetDescriptor: the descriptor.
// - error: ErrHubAssetNotFound if no mapping exists.
func (r *Registry) Descriptor(spokeChainID uint64, tokenAddress string) (types.AssetDescriptor, error) {
	desc, ok := r.assets[types.AssetKey{SpokeChainID: spokeChainID, TokenAddress: normalize(tokenAddress)}]
	if !ok {
		return types.AssetDescriptor{}, errors.Wrapf(commonerrors.ErrHubAssetNotFound,
			"chain %d token %s", spokeChainID, tokenAddress)
	}
	return desc, nil
}

// HubAssetAddress resolves a spoke token to its hub-chain asset address.
// Tokens on the hub chain itself need no translation: the spoke address is
// returned directly.
func (r *Registry) HubAssetAddress(spokeChainID uint64, tokenAddress string) (string, error) {
	if spokeChainID == r.hubRelayID {
		return tokenAddress, nil
	}
	desc, err := r.Descriptor(spokeChainID, tokenAddress)
	if err != nil {
		return "", err
	}
	return desc.HubAssetAddress, nil
}

// HubRelayID returns the relay id of the hub chain the registry was built for.
func (r *Registry) HubRelayID() uint64 {
	return r.hubRelayID
}

// Len returns the number of descriptors in the registry.
func (r *Registry) Len() int {
	return len(r.assets)
}

// normalize lowercases hex-style addresses so EVM checksummed and plain
// forms hit the same key. Case-sensitive encodings (base58, bech32 payload
// casing, strkey) pass through unchanged.
func normalize(address string) string {
	if strings.HasPrefix(address, "0x") || strings.HasPrefix(address, "0X") {
		return strings.ToLower(address)
	}
	return address
}

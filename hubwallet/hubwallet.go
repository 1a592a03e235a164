// Package hubwallet derives the deterministic counterfactual hub wallet
// address that custodies a spoke user's value on the hub chain.
package hubwallet

import (
	"context"
	"math/big"
	"strings"
	"sync"

	"github.com/Crosslane/intent-lib/chains/evm/generated"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// ContractCaller performs a read-only call against the hub chain.
// *ethclient.Client satisfies it.
type ContractCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Salt derives the deterministic deployment salt for a spoke user:
// keccak256(uint256(relayChainID) ‖ spokeAddressBytes). Same inputs always
// yield the same salt.
func Salt(relayChainID uint64, spokeAddress []byte) [32]byte {
	chainWord := make([]byte, 32)
	new(big.Int).SetUint64(relayChainID).FillBytes(chainWord)

	buf := make([]byte, 0, 32+len(spokeAddress))
	buf = append(buf, chainWord...)
	buf = append(buf, spokeAddress...)

	var salt [32]byte
	copy(salt[:], crypto.Keccak256(buf))
	return salt
}

// UserHubWalletAddress derives the hub wallet address for the given spoke
// user via a read-only call against the wallet factory. It never deploys
// anything: the factory returns the deployed-or-counterfactual address.
//
// A failed derivation means "unknown wallet", not "wallet has zero balance";
// the underlying RPC failure is propagated.
//
// Parameters:
// - ctx: the context for managing the request.
// - relayChainID: the relay chain id of the spoke chain.
// - spokeAddress: the canonical byte-encoded spoke address.
// - factory: the wallet factory address on the hub chain.
// - caller: the hub chain contract caller.
//
// Returns:
// - common.Address: the hub wallet address.
// - error: an error if the factory read fails.
func UserHubWalletAddress(
	ctx context.Context,
	relayChainID uint64,
	spokeAddress []byte,
	factory common.Address,
	caller ContractCaller,
) (common.Address, error) {
	factoryAbi, err := abi.JSON(strings.NewReader(generated.WalletFactoryABI))
	if err != nil {
		return common.Address{}, errors.Wrap(err, "failed to parse wallet factory ABI")
	}

	salt := Salt(relayChainID, spokeAddress)
	data, err := factoryAbi.Pack("getDeployedAddress", salt)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "failed to pack getDeployedAddress data")
	}

	result, err := caller.CallContract(ctx, ethereum.CallMsg{
		To:   &factory,
		Data: data,
	}, nil)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "failed to call wallet factory")
	}

	if len(result) < 32 {
		return common.Address{}, errors.New("short result from wallet factory")
	}

	return common.BytesToAddress(result[12:32]), nil
}

// Cache memoizes derived hub wallet addresses. Cached values are a
// convenience only: callers must not treat them as authoritative without
// re-derivation or on-chain confirmation.
type Cache struct {
	factory common.Address
	caller  ContractCaller

	mu      sync.RWMutex
	entries map[string]common.Address
}

// NewCache creates a wallet address cache bound to a factory and caller.
func NewCache(factory common.Address, caller ContractCaller) *Cache {
	return &Cache{
		factory: factory,
		caller:  caller,
		entries: make(map[string]common.Address),
	}
}

// Get returns the hub wallet address for the spoke user, deriving and
// memoizing it on first use.
func (c *Cache) Get(ctx context.Context, relayChainID uint64, spokeAddress []byte) (common.Address, error) {
	key := cacheKey(relayChainID, spokeAddress)

	c.mu.RLock()
	addr, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return addr, nil
	}

	addr, err := UserHubWalletAddress(ctx, relayChainID, spokeAddress, c.factory, c.caller)
	if err != nil {
		return common.Address{}, err
	}

	c.mu.Lock()
	c.entries[key] = addr
	c.mu.Unlock()

	return addr, nil
}

func cacheKey(relayChainID uint64, spokeAddress []byte) string {
	salt := Salt(relayChainID, spokeAddress)
	return string(salt[:])
}

package hubwallet

import (
	"context"
	"math/big"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// callerFunc adapts a function to the ContractCaller interface.
type callerFunc func(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)

func (f callerFunc) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	return f(ctx, msg, blockNumber)
}

var (
	testFactory = common.HexToAddress("0x00000000000000000000000000000000000000F0")
	testWallet  = common.HexToAddress("0x1234567890AbcdEF1234567890aBcdef12345678")
	testUser    = common.HexToAddress("0x71C7656EC7ab88b098defB751B7401B5f6d8976F").Bytes()
)

// walletWord is the factory return value: the wallet address left-padded to
// one 32-byte ABI word.
func walletWord() []byte {
	word := make([]byte, 32)
	copy(word[12:], testWallet.Bytes())
	return word
}

func TestSalt(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, Salt(2, testUser), Salt(2, testUser))
	})

	t.Run("chain id changes the salt", func(t *testing.T) {
		assert.NotEqual(t, Salt(2, testUser), Salt(3, testUser))
	})

	t.Run("address changes the salt", func(t *testing.T) {
		other := common.HexToAddress("0x0000000000000000000000000000000000000001").Bytes()
		assert.NotEqual(t, Salt(2, testUser), Salt(2, other))
	})
}

func TestUserHubWalletAddress(t *testing.T) {
	t.Run("derives from factory result word", func(t *testing.T) {
		caller := callerFunc(func(ctx context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
			require.NotNil(t, msg.To)
			assert.Equal(t, testFactory, *msg.To)
			assert.NotEmpty(t, msg.Data)
			return walletWord(), nil
		})

		addr, err := UserHubWalletAddress(context.Background(), 2, testUser, testFactory, caller)
		require.NoError(t, err)
		assert.Equal(t, testWallet, addr)
	})

	t.Run("rpc failure propagates", func(t *testing.T) {
		caller := callerFunc(func(context.Context, ethereum.CallMsg, *big.Int) ([]byte, error) {
			return nil, errors.New("connection refused")
		})

		_, err := UserHubWalletAddress(context.Background(), 2, testUser, testFactory, caller)
		assert.Error(t, err)
	})

	t.Run("short result rejected", func(t *testing.T) {
		caller := callerFunc(func(context.Context, ethereum.CallMsg, *big.Int) ([]byte, error) {
			return []byte{0x01}, nil
		})

		_, err := UserHubWalletAddress(context.Background(), 2, testUser, testFactory, caller)
		assert.Error(t, err)
	})
}

func TestCache(t *testing.T) {
	t.Run("memoizes after first derivation", func(t *testing.T) {
		var calls int64
		caller := callerFunc(func(context.Context, ethereum.CallMsg, *big.Int) ([]byte, error) {
			atomic.AddInt64(&calls, 1)
			return walletWord(), nil
		})
		cache := NewCache(testFactory, caller)

		for i := 0; i < 3; i++ {
			addr, err := cache.Get(context.Background(), 2, testUser)
			require.NoError(t, err)
			assert.Equal(t, testWallet, addr)
		}
		assert.EqualValues(t, 1, atomic.LoadInt64(&calls))
	})

	t.Run("failures are not cached", func(t *testing.T) {
		var calls int64
		caller := callerFunc(func(context.Context, ethereum.CallMsg, *big.Int) ([]byte, error) {
			if atomic.AddInt64(&calls, 1) == 1 {
				return nil, errors.New("transient")
			}
			return walletWord(), nil
		})
		cache := NewCache(testFactory, caller)

		_, err := cache.Get(context.Background(), 2, testUser)
		require.Error(t, err)

		addr, err := cache.Get(context.Background(), 2, testUser)
		require.NoError(t, err)
		assert.Equal(t, testWallet, addr)
		assert.EqualValues(t, 2, atomic.LoadInt64(&calls))
	})

	t.Run("distinct users get distinct entries", func(t *testing.T) {
		var calls int64
		caller := callerFunc(func(context.Context, ethereum.CallMsg, *big.Int) ([]byte, error) {
			atomic.AddInt64(&calls, 1)
			return walletWord(), nil
		})
		cache := NewCache(testFactory, caller)

		_, err := cache.Get(context.Background(), 2, testUser)
		require.NoError(t, err)
		other := common.HexToAddress("0x0000000000000000000000000000000000000001").Bytes()
		_, err = cache.Get(context.Background(), 2, other)
		require.NoError(t, err)

		assert.EqualValues(t, 2, atomic.LoadInt64(&calls))
	})
}

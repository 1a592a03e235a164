package types

import (
	"context"
	"math/big"
)

// ChainContracts holds the protocol contract addresses deployed on a chain.
//
// Fields:
// - AssetManager: the asset manager handling cross-chain asset transfers.
// - Connection: the relay connection endpoint intents are submitted through.
// - WalletFactory: the hub wallet factory (hub chain only).
// - Settlement: the hub settlement contract (hub chain only).
// - Multicall: the call aggregation contract, empty when the chain does not
//   support call batching.
type ChainContracts struct {
	AssetManager  string
	Connection    string
	WalletFactory string
	Settlement    string
	Multicall     string
}

// ChainConfig holds the configuration for a specific spoke chain provider.
//
// Fields:
// - Name: the name of the chain.
// - Family: the chain family of the chain.
// - ChainID: the chain's native identifier (EVM chain id; 0 for non-EVM chains).
// - RelayChainID: the canonical relay-network identifier of the chain.
// - RpcUrl: the URL for the chain's RPC endpoint.
// - TxType: the type of transactions supported by the chain.
// - WaitNBlocks: the number of blocks to wait for transaction confirmation.
// - PrivateKey: the private key for signing transactions; empty for read-only providers.
// - NativeToken: the identifier of the chain's native token.
// - Contracts: the protocol contract addresses on the chain.
type ChainConfig struct {
	Name         string
	Family       ChainFamily
	ChainID      uint64
	RelayChainID uint64
	RpcUrl       string
	TxType       uint64
	WaitNBlocks  uint64
	PrivateKey   string
	NativeToken  string
	Contracts    ChainContracts
}

// IsHub reports whether the configured chain is the hub settlement chain.
func (c *ChainConfig) IsHub() bool {
	return c.RelayChainID == HubRelayID
}

// WalletProvider exposes the wallet the provider signs with.
type WalletProvider interface {
	// WalletAddress returns the provider's wallet address in chain-native form.
	WalletAddress() string
}

// CallSubmitter signs and submits contract calls as native transactions.
type CallSubmitter interface {
	// SubmitCalls signs the given calls and broadcasts them as a native
	// transaction, batched into one transaction where the chain supports
	// call batching, otherwise as one transaction per call.
	//
	// Parameters:
	// - ctx: the context for managing the request.
	// - calls: the ordered calls to execute.
	// - opts: submit options; with Raw set the unsigned transaction is
	//   returned instead of being broadcast.
	//
	// Returns:
	// - *TxResult: the submitted hash or the unsigned payload.
	// - error: an error if building, signing or broadcasting fails.
	SubmitCalls(ctx context.Context, calls []ContractCall, opts *SubmitOptions) (*TxResult, error)
}

// TransactionWatcher waits for spoke transaction confirmation.
type TransactionWatcher interface {
	// WaitTransactionConfirmation waits until the transaction with the given
	// hash is confirmed, reverted, or the context is done.
	WaitTransactionConfirmation(ctx context.Context, txHash string) (TransactionStatus, error)
}

// BalanceProvider reads token balances on the spoke chain.
type BalanceProvider interface {
	// GetTokenBalance gets token balance for the given address. For native
	// token balances, use an empty tokenAddress.
	GetTokenBalance(ctx context.Context, address string, tokenAddress string) (*big.Int, error)
}

// AllowanceProvider manages token spending allowances for the provider's
// wallet on chains with an allowance model. Optional: callers type-assert
// for it and fall back to explicit approve calls when absent.
type AllowanceProvider interface {
	// EnsureAllowance checks the wallet's current allowance for spender on
	// token and submits a confirmed approve transaction when it is below
	// amount. A sufficient existing allowance submits nothing.
	EnsureAllowance(ctx context.Context, token, spender string, amount *big.Int) error
}

// SpokeProvider combines the per-chain-family capabilities the settlement
// service needs: wallet identity, call submission, confirmation watching and
// balance reads, plus access to the chain configuration.
//
// Wallet operations are not safe for concurrent use from the same wallet
// session on chains that enforce strict nonce ordering; callers running
// multiple intents against one wallet must serialize submissions.
type SpokeProvider interface {
	WalletProvider
	CallSubmitter
	TransactionWatcher
	BalanceProvider

	// Config returns the provider's chain configuration.
	Config() *ChainConfig
	// Family returns the provider's chain family.
	Family() ChainFamily
}

// SpokeRegistry manages spoke providers keyed by relay chain id.
type SpokeRegistry interface {
	// Add creates a provider from the configuration and registers it.
	Add(ctx context.Context, config *ChainConfig) error

	// Get retrieves a provider by its relay chain id; nil if absent.
	Get(relayChainID uint64) SpokeProvider

	// Remove removes a provider by its relay chain id.
	Remove(relayChainID uint64)
}

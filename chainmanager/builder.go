package chainmanager

import (
	"github.com/Crosslane/intent-lib/common/types"
)

// ProviderBuilder is a builder pattern implementation for spoke provider
// configuration. It allows setting the individual capabilities a chain
// family implementation carries: wallet identity, call submission,
// transaction watching, balance reads and allowance management.
type ProviderBuilder struct {
	config     *types.ChainConfig       // Chain configuration.
	wallet     types.WalletProvider     // Wallet provider implementation.
	submitter  types.CallSubmitter      // Call submitter implementation.
	watcher    types.TransactionWatcher // Transaction watcher implementation.
	balances   types.BalanceProvider    // Balance provider implementation.
	allowances types.AllowanceProvider  // Allowance provider implementation.
}

// NewProviderBuilder creates a new provider builder instance.
//
// Parameters:
// - config: the chain configuration.
//
// Returns:
// - *ProviderBuilder: a new ProviderBuilder instance.
func NewProviderBuilder(config *types.ChainConfig) *ProviderBuilder {
	return &ProviderBuilder{
		config: config,
	}
}

// WithWalletProvider sets the wallet provider implementation.
func (b *ProviderBuilder) WithWalletProvider(wallet types.WalletProvider) *ProviderBuilder {
	b.wallet = wallet
	return b
}

// WithCallSubmitter sets the call submitter implementation.
func (b *ProviderBuilder) WithCallSubmitter(submitter types.CallSubmitter) *ProviderBuilder {
	b.submitter = submitter
	return b
}

// WithTransactionWatcher sets the transaction watcher implementation.
func (b *ProviderBuilder) WithTransactionWatcher(watcher types.TransactionWatcher) *ProviderBuilder {
	b.watcher = watcher
	return b
}

// WithBalanceProvider sets the balance provider implementation.
func (b *ProviderBuilder) WithBalanceProvider(balances types.BalanceProvider) *ProviderBuilder {
	b.balances = balances
	return b
}

// WithAllowanceProvider sets the allowance provider implementation.
func (b *ProviderBuilder) WithAllowanceProvider(allowances types.AllowanceProvider) *ProviderBuilder {
	b.allowances = allowances
	return b
}

// Build creates a new spoke provider with the configured implementations.
//
// Returns:
// - types.SpokeProvider: a new provider instance.
func (b *ProviderBuilder) Build() types.SpokeProvider {
	return NewProvider(b.config, b.wallet, b.submitter, b.watcher, b.balances, b.allowances)
}

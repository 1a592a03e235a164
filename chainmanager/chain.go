package chainmanager

import (
	"context"
	"math/big"
	"sync"

	commonerrors "github.com/Crosslane/intent-lib/common/errors"
	"github.com/Crosslane/intent-lib/common/types"
)

// Provider implements the types.SpokeProvider interface with thread-safe
// access to the capability implementations. A capability the chain family
// does not carry returns ErrNotImplemented instead of panicking.
type Provider struct {
	config     *types.ChainConfig       // Chain configuration.
	wallet     types.WalletProvider     // Wallet provider implementation.
	submitter  types.CallSubmitter      // Call submitter implementation.
	watcher    types.TransactionWatcher // Transaction watcher implementation.
	balances   types.BalanceProvider    // Balance provider implementation.
	allowances types.AllowanceProvider  // Allowance provider implementation.

	// Mutexes for thread-safe access to dependencies.
	walletMutex     sync.RWMutex // Mutex for wallet provider.
	submitterMutex  sync.RWMutex // Mutex for call submitter.
	watcherMutex    sync.RWMutex // Mutex for transaction watcher.
	balancesMutex   sync.RWMutex // Mutex for balance provider.
	allowancesMutex sync.RWMutex // Mutex for allowance provider.
}

// NewProvider creates a new Provider instance.
//
// Parameters:
// - config: the chain configuration.
// - wallet: the wallet provider implementation.
// - submitter: the call submitter implementation.
// - watcher: the transaction watcher implementation.
// - balances: the balance provider implementation.
// - allowances: the allowance provider implementation.
//
// Returns:
// - *Provider: a new Provider instance.
func NewProvider(
	config *types.ChainConfig,
	wallet types.WalletProvider,
	submitter types.CallSubmitter,
	watcher types.TransactionWatcher,
	balances types.BalanceProvider,
	allowances types.AllowanceProvider,
) *Provider {
	return &Provider{
		config:     config,
		wallet:     wallet,
		submitter:  submitter,
		watcher:    watcher,
		balances:   balances,
		allowances: allowances,
	}
}

// WalletAddress returns the wallet address with thread-safe access.
// An empty string is returned when no wallet capability is configured.
func (p *Provider) WalletAddress() string {
	p.walletMutex.RLock()
	wallet := p.wallet
	p.walletMutex.RUnlock()

	if wallet == nil {
		return ""
	}
	return wallet.WalletAddress()
}

// SubmitCalls signs and submits calls with thread-safe access.
//
// Parameters:
// - ctx: context for managing the submission lifecycle.
// - calls: the ordered calls to execute.
// - opts: submit options.
//
// Returns:
// - *types.TxResult: the submitted hash or the unsigned payload.
// - error: ErrNotImplemented if the provider carries no submitter.
func (p *Provider) SubmitCalls(ctx context.Context, calls []types.ContractCall, opts *types.SubmitOptions) (*types.TxResult, error) {
	p.submitterMutex.RLock()
	submitter := p.submitter
	p.submitterMutex.RUnlock()

	if submitter == nil {
		return nil, commonerrors.ErrNotImplemented
	}
	return submitter.SubmitCalls(ctx, calls, opts)
}

// WaitTransactionConfirmation waits for confirmation with thread-safe access.
//
// Parameters:
// - ctx: context for managing the confirmation lifecycle.
// - txHash: the transaction hash to wait for.
//
// Returns:
// - types.TransactionStatus: the final status.
// - error: ErrNotImplemented if the provider carries no watcher.
func (p *Provider) WaitTransactionConfirmation(ctx context.Context, txHash string) (types.TransactionStatus, error) {
	p.watcherMutex.RLock()
	watcher := p.watcher
	p.watcherMutex.RUnlock()

	if watcher == nil {
		return types.TxStatusFailed, commonerrors.ErrNotImplemented
	}
	return watcher.WaitTransactionConfirmation(ctx, txHash)
}

// GetTokenBalance reads a token balance with thread-safe access.
func (p *Provider) GetTokenBalance(ctx context.Context, address string, tokenAddress string) (*big.Int, error) {
	p.balancesMutex.RLock()
	balances := p.balances
	p.balancesMutex.RUnlock()

	if balances == nil {
		return nil, commonerrors.ErrNotImplemented
	}
	return balances.GetTokenBalance(ctx, address, tokenAddress)
}

// EnsureAllowance delegates to the allowance capability with thread-safe
// access.
//
// Returns:
// - error: ErrNotImplemented if the provider carries no allowance provider.
func (p *Provider) EnsureAllowance(ctx context.Context, token, spender string, amount *big.Int) error {
	p.allowancesMutex.RLock()
	allowances := p.allowances
	p.allowancesMutex.RUnlock()

	if allowances == nil {
		return commonerrors.ErrNotImplemented
	}
	return allowances.EnsureAllowance(ctx, token, spender, amount)
}

// Config returns the chain configuration.
func (p *Provider) Config() *types.ChainConfig {
	return p.config
}

// Family returns the provider's chain family.
func (p *Provider) Family() types.ChainFamily {
	return p.config.Family
}

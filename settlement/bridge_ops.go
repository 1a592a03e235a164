package settlement

import (
	"context"
	"math/big"

	"github.com/Crosslane/intent-lib/addresscodec"
	commonerrors "github.com/Crosslane/intent-lib/common/errors"
	"github.com/Crosslane/intent-lib/common/types"
	"github.com/pkg/errors"
)

// Deposit wraps spoke-chain value arriving on the hub into its canonical
// hub representation. When the hub provider manages allowances, the vault
// and wrapper allowances are ensured first and only the deposit calls are
// submitted; otherwise explicit approve calls lead the deposits. Every
// transaction is confirmed before returning.
//
// Parameters:
// - ctx: the context for managing the request.
// - hub: the hub chain provider executing the calls.
// - spokeChainID: the relay chain id the deposit originated on.
// - spokeToken: the deposited token's spoke-chain address.
// - amount: the deposit amount in the token's native base units.
// - poolToken: the hub address of the final wrapped representation.
//
// Returns:
// - *types.TxResult: the confirmed deposit transaction result.
// - error: an error if an approval, building, submitting or confirming fails.
func (s *Service) Deposit(ctx context.Context, hub types.SpokeProvider, spokeChainID uint64, spokeToken string, amount *big.Int, poolToken string) (*types.TxResult, error) {
	if err := s.checkHubProvider(hub); err != nil {
		return nil, err
	}

	calls, err := s.wrapCalls(ctx, hub, spokeChainID, spokeToken, amount, poolToken)
	if err != nil {
		return nil, err
	}

	return s.submitAndConfirm(ctx, hub, calls)
}

// wrapCalls pre-flights the wrap allowances through the provider's
// allowance capability and returns the bare deposit calls; providers
// without that capability get the approve calls inline instead.
func (s *Service) wrapCalls(ctx context.Context, hub types.SpokeProvider, spokeChainID uint64, spokeToken string, amount *big.Int, poolToken string) ([]types.ContractCall, error) {
	ensurer, ok := hub.(types.AllowanceProvider)
	if !ok {
		return s.bridge.BuildWrapCalls(spokeToken, spokeChainID, amount, poolToken, hub.WalletAddress())
	}

	approvals, err := s.bridge.WrapApprovals(spokeToken, spokeChainID, amount, poolToken)
	if err != nil {
		return nil, err
	}
	for _, approval := range approvals {
		if err := ensurer.EnsureAllowance(ctx, approval.Token, approval.Spender, approval.Amount); err != nil {
			if errors.Is(err, commonerrors.ErrNotImplemented) {
				return s.bridge.BuildWrapCalls(spokeToken, spokeChainID, amount, poolToken, hub.WalletAddress())
			}
			return nil, err
		}
	}

	return s.bridge.BuildWrapDeposits(spokeToken, spokeChainID, amount, poolToken, hub.WalletAddress())
}

// Withdraw unwraps hub value back toward a spoke-chain recipient: second
// layer redeemed, vault withdrawn, and the base asset either transferred
// directly for hub recipients or handed to the asset manager for
// cross-chain delivery.
//
// Parameters:
// - ctx: the context for managing the request.
// - hub: the hub chain provider executing the calls.
// - spokeChainID: the relay chain id of the destination chain.
// - spokeToken: the destination token's spoke-chain address.
// - amount: the wrapped amount to unwrap, in wrapped base units.
// - recipient: the destination address in chain-native string form.
//
// Returns:
// - *types.TxResult: the confirmed withdrawal transaction result.
// - error: an error if building, submitting or confirming fails.
func (s *Service) Withdraw(ctx context.Context, hub types.SpokeProvider, spokeChainID uint64, spokeToken string, amount *big.Int, recipient string) (*types.TxResult, error) {
	if err := s.checkHubProvider(hub); err != nil {
		return nil, err
	}

	family := types.FamilyByRelayID(spokeChainID)
	if family == types.UNKNOWN {
		return nil, errors.Wrapf(commonerrors.ErrInvalidParams, "unknown relay chain id %d", spokeChainID)
	}

	recipientBytes, err := addresscodec.Encode(family, recipient)
	if err != nil {
		return nil, err
	}

	calls, err := s.bridge.BuildUnwrapCalls(spokeChainID, spokeToken, amount, hub.WalletAddress(), recipientBytes)
	if err != nil {
		return nil, err
	}

	return s.submitAndConfirm(ctx, hub, calls)
}

// checkHubProvider verifies the bridge collaborator is configured and the
// provider actually serves the hub chain with a signing wallet.
func (s *Service) checkHubProvider(hub types.SpokeProvider) error {
	if s.bridge == nil {
		return errors.Wrap(commonerrors.ErrInvalidConfig, "bridge service not configured")
	}
	if hub == nil || !hub.Config().IsHub() {
		return errors.Wrap(commonerrors.ErrInvalidSpokeProvider, "hub provider required")
	}
	if hub.WalletAddress() == "" {
		return errors.Wrap(commonerrors.ErrInvalidSpokeProvider, "hub provider has no wallet")
	}
	return nil
}

// submitAndConfirm submits the calls and waits for on-chain confirmation.
// Wrap and unwrap calls approve and move funds as the wallet; batched
// through an aggregation contract they would run with the aggregator as
// msg.sender, so they go out as individual transactions.
func (s *Service) submitAndConfirm(ctx context.Context, provider types.SpokeProvider, calls []types.ContractCall) (*types.TxResult, error) {
	result, err := provider.SubmitCalls(ctx, calls, &types.SubmitOptions{Sequential: true})
	if err != nil {
		return nil, errors.Wrap(commonerrors.ErrSubmitTxFailed, err.Error())
	}

	status, err := provider.WaitTransactionConfirmation(ctx, result.Hash)
	if err != nil {
		return result, errors.Wrap(err, "failed to confirm transaction")
	}
	if status != types.TxStatusConfirmed {
		return result, errors.New("transaction reverted")
	}

	return result, nil
}

package settlement

import (
	"context"

	commonerrors "github.com/Crosslane/intent-lib/common/errors"
	"github.com/Crosslane/intent-lib/common/types"
	"github.com/Crosslane/intent-lib/intent"
	"github.com/pkg/errors"
)

// CancelIntent cancels a created intent from its source chain. The hub is
// checked first: cancelling an intent the settlement contract never saw
// fails with IntentNotFound instead of burning a transaction. The provider
// must serve the intent's source chain.
//
// Remaining input escrow returns to the creator's hub wallet once the
// cancellation lands; already-filled portions are untouched.
//
// Parameters:
// - ctx: the context for managing the request.
// - in: the intent to cancel, exactly as created.
// - provider: the spoke provider for the intent's source chain.
//
// Returns:
// - *types.TxResult: the cancellation transaction result.
// - error: an error if the intent is unknown or the submission fails.
func (s *Service) CancelIntent(ctx context.Context, in *types.Intent, provider types.SpokeProvider) (*types.TxResult, error) {
	if err := checkProvider(provider, in.SrcChain); err != nil {
		return nil, err
	}

	onHub, err := s.GetIntent(ctx, in)
	if err != nil {
		return nil, err
	}
	if !onHub.Exists {
		return nil, errors.Wrapf(commonerrors.ErrIntentNotFound,
			"intent %s not found on hub", in.IntentID)
	}
	if onHub.Cancelled {
		return nil, errors.Wrapf(commonerrors.ErrInvalidState,
			"intent %s is already cancelled", in.IntentID)
	}

	data, err := intent.PackCancelIntent(in)
	if err != nil {
		return nil, err
	}

	target, err := submitTarget(provider.Config())
	if err != nil {
		return nil, err
	}

	result, err := provider.SubmitCalls(ctx, []types.ContractCall{{To: target, Data: data}}, nil)
	if err != nil {
		return nil, errors.Wrap(commonerrors.ErrSubmitTxFailed, err.Error())
	}

	s.logger.WithField("intentID", in.IntentID.String()).Info("Intent cancellation submitted")

	return result, nil
}

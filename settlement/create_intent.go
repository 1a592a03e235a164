package settlement

import (
	"context"

	"github.com/Crosslane/intent-lib/addresscodec"
	commonerrors "github.com/Crosslane/intent-lib/common/errors"
	"github.com/Crosslane/intent-lib/common/types"
	"github.com/Crosslane/intent-lib/intent"
	"github.com/Crosslane/intent-lib/metrics"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// CreateIntentOptions controls one settlement run.
//
// Fields:
// - Raw: build and return the unsigned source transaction instead of
//   submitting; the record stays in the SIGNED state.
// - NotifySolver: call the solver backend's execute endpoint once the packet
//   lands on the hub (the swap path; bridge intents carry their hub call
//   inside the relayed payload).
type CreateIntentOptions struct {
	Raw          bool
	NotifySolver bool
}

// CreateIntent runs one intent from parameters to a terminal state.
//
// The record moves BUILT → SIGNED → SUBMITTED → RELAYING → EXECUTED|FAILED;
// an intent whose source is the hub chain itself settles directly and skips
// the relay hop. A relay submit failure leaves the record in SUBMITTED so
// the caller can retry with ResumeRelay; the relay backend treats duplicate
// submits of one transaction hash as a no-op.
//
// Parameters:
// - ctx: the context bounding the whole settlement.
// - params: the user-facing intent parameters.
// - provider: the spoke provider for the intent's source chain.
// - opts: settlement options, may be nil.
//
// Returns:
// - *IntentRecord: the record, inspectable for state, hashes and packet.
// - error: an error when the outcome is unknown or a step failed hard.
func (s *Service) CreateIntent(ctx context.Context, params types.IntentParams, provider types.SpokeProvider, opts *CreateIntentOptions) (*IntentRecord, error) {
	if err := checkProvider(provider, params.SrcChain); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &CreateIntentOptions{}
	}

	srcAddressBytes, err := addresscodec.Encode(types.FamilyByRelayID(params.SrcChain), params.SrcAddress)
	if err != nil {
		return nil, err
	}

	creator, err := s.hubWallet(ctx, params.SrcChain, srcAddressBytes)
	if err != nil {
		return nil, err
	}

	built, feeAmount, _, err := intent.BuildIntent(params, creator, s.feeConfig, s.registry)
	if err != nil {
		return nil, err
	}

	rec := &IntentRecord{
		Intent:    built,
		State:     types.StateBuilt,
		FeeAmount: feeAmount,
	}

	metrics.IntentsInFlight.Inc()
	defer metrics.IntentsInFlight.Dec()

	data, err := intent.PackCreateIntent(built)
	if err != nil {
		return rec, err
	}

	target, err := submitTarget(provider.Config())
	if err != nil {
		return rec, err
	}

	calls := []types.ContractCall{{To: target, Data: data}}

	if err := s.transition(rec, types.StateSigned, nil); err != nil {
		return rec, err
	}

	if opts.Raw {
		result, err := provider.SubmitCalls(ctx, calls, &types.SubmitOptions{Raw: true})
		if err != nil {
			return rec, err
		}
		rec.Result = result
		return rec, nil
	}

	result, err := provider.SubmitCalls(ctx, calls, nil)
	if err != nil {
		// Nothing was broadcast, the record stays in SIGNED.
		return rec, errors.Wrap(commonerrors.ErrSubmitTxFailed, err.Error())
	}
	rec.Result = result
	rec.TxHash = result.Hash

	if err := s.transition(rec, types.StateSubmitted, nil); err != nil {
		return rec, err
	}

	status, err := provider.WaitTransactionConfirmation(ctx, rec.TxHash)
	if err != nil {
		return rec, errors.Wrap(err, "failed to confirm source transaction")
	}
	if status != types.TxStatusConfirmed {
		failErr := errors.New("source transaction reverted")
		_ = s.transition(rec, types.StateFailed, failErr)
		return rec, nil
	}

	// Hub-native fast path: the settlement contract saw the intent in the
	// confirmed transaction, there is nothing to relay.
	if provider.Config().IsHub() {
		if err := s.transition(rec, types.StateExecuted, nil); err != nil {
			return rec, err
		}
		s.notifySolver(ctx, rec, opts.NotifySolver)
		return rec, nil
	}

	return s.relayAndWait(ctx, rec, opts.NotifySolver)
}

// ResumeRelay retries the relay hop for a record left in SUBMITTED by an
// earlier relay submit failure. Safe to call repeatedly: the relay backend
// deduplicates by transaction hash.
func (s *Service) ResumeRelay(ctx context.Context, rec *IntentRecord) (*IntentRecord, error) {
	if rec.State != types.StateSubmitted {
		return rec, errors.Wrapf(commonerrors.ErrInvalidState,
			"cannot resume relay from state %s", rec.State)
	}
	return s.relayAndWait(ctx, rec, false)
}

// relayAndWait submits the source transaction to the relay network and
// blocks until the packet reaches a terminal status or the relay timeout
// passes.
func (s *Service) relayAndWait(ctx context.Context, rec *IntentRecord, notifySolver bool) (*IntentRecord, error) {
	if err := s.relay.Submit(ctx, rec.Intent.SrcChain, rec.TxHash, nil); err != nil {
		// Outcome unknown, state stays SUBMITTED for an idempotent retry.
		return rec, err
	}

	if err := s.transition(rec, types.StateRelaying, nil); err != nil {
		return rec, err
	}

	packet, err := s.relay.WaitUntilExecuted(ctx, rec.Intent.SrcChain, rec.TxHash, s.relayTimeout)
	if err != nil {
		// Timeout or context end: the packet may still execute later, the
		// outcome is unknown rather than failed.
		return rec, err
	}
	rec.Packet = packet

	if packet.Status == types.PacketFailed {
		failErr := errors.New("relay packet failed")
		_ = s.transition(rec, types.StateFailed, failErr)
		return rec, nil
	}

	if err := s.transition(rec, types.StateExecuted, nil); err != nil {
		return rec, err
	}

	s.notifySolver(ctx, rec, notifySolver)

	return rec, nil
}

// notifySolver tells the solver backend to start working on an executed
// swap intent. Failures are logged, not fatal: the solver also discovers
// intents on chain.
func (s *Service) notifySolver(ctx context.Context, rec *IntentRecord, notify bool) {
	if !notify || s.solver == nil {
		return
	}

	intentHash, err := s.solver.Execute(ctx, rec.TxHash)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"intentID": rec.Intent.IntentID.String(),
			"txHash":   rec.TxHash,
		}).WithError(err).Warn("Failed to notify solver")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"intentID":   rec.Intent.IntentID.String(),
		"intentHash": intentHash,
	}).Info("Solver notified")
}

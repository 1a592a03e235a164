// Package intent turns user-facing parameters into canonical intent records:
// fee accounting, token resolution, address encoding and identifier
// generation.
package intent

import (
	"math/big"

	"github.com/Crosslane/intent-lib/addresscodec"
	"github.com/Crosslane/intent-lib/assetregistry"
	commonerrors "github.com/Crosslane/intent-lib/common/errors"
	"github.com/Crosslane/intent-lib/common/types"
	"github.com/pkg/errors"
)

// BuildIntent constructs a canonical intent from user parameters.
//
// The partner fee is deducted first: the intent's InputAmount is the user
// amount minus the fee, and inputAmount + feeAmount == userAmount always
// holds. Fee recipient and amount are ABI-encoded into the intent's Data so
// the settlement contract can route payment without a second message.
//
// Parameters:
// - params: the user-facing intent parameters; chain ids are relay ids.
// - creatorHubAddress: the hub wallet address of the intent owner.
// - feeConfig: the partner fee configuration, may be nil.
// - registry: the asset registry for spoke-to-hub token resolution.
//
// Returns:
// - *types.Intent: the canonical intent.
// - *big.Int: the deducted fee amount.
// - []byte: the encoded fee-routing payload (nil when no fee applies).
// - error: a validation, fee or resolution error.
func BuildIntent(
	params types.IntentParams,
	creatorHubAddress string,
	feeConfig types.PartnerFee,
	registry *assetregistry.Registry,
) (*types.Intent, *big.Int, []byte, error) {
	if params.InputAmount == nil || params.InputAmount.Sign() <= 0 {
		return nil, nil, nil, errors.Wrap(commonerrors.ErrInvalidAmount, "input amount must be positive")
	}
	if params.SrcAddress == "" || params.DstAddress == "" {
		return nil, nil, nil, errors.Wrap(commonerrors.ErrInvalidParams, "source and destination addresses required")
	}

	srcFamily := types.FamilyByRelayID(params.SrcChain)
	dstFamily := types.FamilyByRelayID(params.DstChain)
	if srcFamily == types.UNKNOWN || dstFamily == types.UNKNOWN {
		return nil, nil, nil, errors.Wrapf(commonerrors.ErrInvalidParams,
			"unknown relay chain id %d or %d", params.SrcChain, params.DstChain)
	}

	feeAmount, err := CalculateFee(params.InputAmount, feeConfig)
	if err != nil {
		return nil, nil, nil, err
	}
	inputAmount := new(big.Int).Sub(params.InputAmount, feeAmount)

	inputToken, err := registry.HubAssetAddress(params.SrcChain, params.InputToken)
	if err != nil {
		return nil, nil, nil, err
	}
	outputToken, err := registry.HubAssetAddress(params.DstChain, params.OutputToken)
	if err != nil {
		return nil, nil, nil, err
	}

	srcAddress, err := addresscodec.Encode(srcFamily, params.SrcAddress)
	if err != nil {
		return nil, nil, nil, err
	}
	dstAddress, err := addresscodec.Encode(dstFamily, params.DstAddress)
	if err != nil {
		return nil, nil, nil, err
	}

	var feeData []byte
	if feeConfig != nil && feeAmount.Sign() > 0 {
		feeData, err = EncodeFeeData(feeConfig.Recipient(), feeAmount)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	intentID, err := NewIntentID()
	if err != nil {
		return nil, nil, nil, err
	}

	minOutput := params.MinOutputAmount
	if minOutput == nil {
		minOutput = big.NewInt(0)
	}

	built := &types.Intent{
		IntentID:         intentID,
		Creator:          creatorHubAddress,
		InputToken:       inputToken,
		OutputToken:      outputToken,
		InputAmount:      inputAmount,
		MinOutputAmount:  minOutput,
		Deadline:         params.Deadline,
		AllowPartialFill: params.AllowPartialFill,
		SrcChain:         params.SrcChain,
		DstChain:         params.DstChain,
		SrcAddress:       srcAddress,
		DstAddress:       dstAddress,
		Solver:           params.Solver,
		Data:             feeData,
	}

	return built, feeAmount, feeData, nil
}

package intent

import (
	"math/big"

	commonerrors "github.com/Crosslane/intent-lib/common/errors"
	"github.com/Crosslane/intent-lib/common/types"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// CalculateFee computes the partner fee for the given user amount.
// A fixed fee is capped at the amount; a percentage fee is
// floor(amount * bps / 10000). A percentage above the basis point cap is
// rejected, never clamped. A nil feeConfig yields a zero fee.
//
// Parameters:
// - amount: the user requested amount in hub base units.
// - feeConfig: the partner fee configuration, may be nil.
//
// Returns:
// - *big.Int: the fee amount; always 0 <= fee <= amount.
// - error: ErrInvalidFee for percentages above the cap.
func CalculateFee(amount *big.Int, feeConfig types.PartnerFee) (*big.Int, error) {
	if feeConfig == nil {
		return big.NewInt(0), nil
	}

	switch fee := feeConfig.(type) {
	case types.PartnerFeeFixed:
		if fee.Amount == nil || fee.Amount.Sign() < 0 {
			return nil, errors.Wrap(commonerrors.ErrInvalidFee, "fixed fee amount missing")
		}
		if fee.Amount.Cmp(amount) > 0 {
			return new(big.Int).Set(amount), nil
		}
		return new(big.Int).Set(fee.Amount), nil

	case types.PartnerFeePercentage:
		if fee.Percentage > types.MaxPartnerFeeBps {
			return nil, errors.Wrapf(commonerrors.ErrInvalidFee,
				"percentage %d bps exceeds cap %d", fee.Percentage, types.MaxPartnerFeeBps)
		}
		result := new(big.Int).Mul(amount, new(big.Int).SetUint64(fee.Percentage))
		return result.Div(result, big.NewInt(10000)), nil

	default:
		return nil, errors.Wrap(commonerrors.ErrInvalidFee, "unknown partner fee kind")
	}
}

// feeDataArgs is the ABI layout of the fee-routing payload carried in
// Intent.Data: (address recipient, uint256 amount).
var feeDataArgs = abi.Arguments{
	{Type: mustType("address")},
	{Type: mustType("uint256")},
}

// EncodeFeeData packs the fee recipient and amount so the settlement
// contract can route payment without a second message.
func EncodeFeeData(recipient string, amount *big.Int) ([]byte, error) {
	if !common.IsHexAddress(recipient) {
		return nil, errors.Wrapf(commonerrors.ErrInvalidParams, "fee recipient %s", recipient)
	}
	data, err := feeDataArgs.Pack(common.HexToAddress(recipient), amount)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack fee data")
	}
	return data, nil
}

// DecodeFeeData unpacks a fee-routing payload built by EncodeFeeData.
func DecodeFeeData(data []byte) (common.Address, *big.Int, error) {
	values, err := feeDataArgs.Unpack(data)
	if err != nil {
		return common.Address{}, nil, errors.Wrap(err, "failed to unpack fee data")
	}
	recipient, ok := values[0].(common.Address)
	if !ok {
		return common.Address{}, nil, errors.New("fee data recipient has wrong type")
	}
	amount, ok := values[1].(*big.Int)
	if !ok {
		return common.Address{}, nil, errors.New("fee data amount has wrong type")
	}
	return recipient, amount, nil
}

func mustType(name string) abi.Type {
	t, err := abi.NewType(name, "", nil)
	if err != nil {
		panic(err)
	}
	return t
}

package intent

import (
	"math/big"
	"strings"

	"github.com/Crosslane/intent-lib/chains/evm/generated"
	"github.com/Crosslane/intent-lib/common/types"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// abiIntent mirrors the settlement contract's intent tuple. Field order and
// types are fixed by the contract; names map to the ABI component names.
type abiIntent struct {
	IntentId         *big.Int
	Creator          common.Address
	InputToken       common.Address
	OutputToken      common.Address
	InputAmount      *big.Int
	MinOutputAmount  *big.Int
	Deadline         *big.Int
	AllowPartialFill bool
	SrcChain         *big.Int
	DstChain         *big.Int
	SrcAddress       []byte
	DstAddress       []byte
	Solver           common.Address
	Data             []byte
}

func toABI(in *types.Intent) abiIntent {
	solver := common.Address{}
	if in.Solver != "" {
		solver = common.HexToAddress(in.Solver)
	}
	return abiIntent{
		IntentId:         in.IntentID,
		Creator:          common.HexToAddress(in.Creator),
		InputToken:       common.HexToAddress(in.InputToken),
		OutputToken:      common.HexToAddress(in.OutputToken),
		InputAmount:      in.InputAmount,
		MinOutputAmount:  in.MinOutputAmount,
		Deadline:         new(big.Int).SetUint64(in.Deadline),
		AllowPartialFill: in.AllowPartialFill,
		SrcChain:         new(big.Int).SetUint64(in.SrcChain),
		DstChain:         new(big.Int).SetUint64(in.DstChain),
		SrcAddress:       in.SrcAddress,
		DstAddress:       in.DstAddress,
		Solver:           solver,
		Data:             in.Data,
	}
}

// settlementABI parses the settlement contract ABI once.
func settlementABI() (abi.ABI, error) {
	parsed, err := abi.JSON(strings.NewReader(generated.SettlementABI))
	if err != nil {
		return abi.ABI{}, errors.Wrap(err, "failed to parse settlement ABI")
	}
	return parsed, nil
}

// Hash computes the deterministic intent hash used as the hub lookup key:
// keccak256 of the ABI-encoded intent tuple.
func Hash(in *types.Intent) ([32]byte, error) {
	var hash [32]byte
	parsed, err := settlementABI()
	if err != nil {
		return hash, err
	}
	encoded, err := parsed.Methods["createIntent"].Inputs.Pack(toABI(in))
	if err != nil {
		return hash, errors.Wrap(err, "failed to encode intent tuple")
	}
	copy(hash[:], crypto.Keccak256(encoded))
	return hash, nil
}

// PackCreateIntent builds the hub createIntent call data.
func PackCreateIntent(in *types.Intent) ([]byte, error) {
	parsed, err := settlementABI()
	if err != nil {
		return nil, err
	}
	data, err := parsed.Pack("createIntent", toABI(in))
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack createIntent data")
	}
	return data, nil
}

// PackCancelIntent builds the hub cancelIntent call data.
func PackCancelIntent(in *types.Intent) ([]byte, error) {
	parsed, err := settlementABI()
	if err != nil {
		return nil, err
	}
	data, err := parsed.Pack("cancelIntent", toABI(in))
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack cancelIntent data")
	}
	return data, nil
}

// PackFillIntent builds the hub fillIntent call data.
func PackFillIntent(in *types.Intent, inputAmount, outputAmount *big.Int, externalFillID [32]byte) ([]byte, error) {
	parsed, err := settlementABI()
	if err != nil {
		return nil, err
	}
	data, err := parsed.Pack("fillIntent", toABI(in), inputAmount, outputAmount, externalFillID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack fillIntent data")
	}
	return data, nil
}

// PackGetIntent builds the hub getIntent call data for the given intent hash.
func PackGetIntent(intentHash [32]byte) ([]byte, error) {
	parsed, err := settlementABI()
	if err != nil {
		return nil, err
	}
	data, err := parsed.Pack("getIntent", intentHash)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack getIntent data")
	}
	return data, nil
}

// UnpackGetIntent decodes a getIntent call result into the hub-side view.
func UnpackGetIntent(intentHash [32]byte, result []byte) (*types.FilledIntent, error) {
	parsed, err := settlementABI()
	if err != nil {
		return nil, err
	}
	values, err := parsed.Unpack("getIntent", result)
	if err != nil {
		return nil, errors.Wrap(err, "failed to unpack getIntent result")
	}
	if len(values) != 5 {
		return nil, errors.Errorf("getIntent returned %d values, expected 5", len(values))
	}

	exists, ok := values[0].(bool)
	if !ok {
		return nil, errors.New("getIntent exists flag has wrong type")
	}
	cancelled, ok := values[1].(bool)
	if !ok {
		return nil, errors.New("getIntent cancelled flag has wrong type")
	}
	remaining, ok := values[2].(*big.Int)
	if !ok {
		return nil, errors.New("getIntent remaining input has wrong type")
	}
	received, ok := values[3].(*big.Int)
	if !ok {
		return nil, errors.New("getIntent received output has wrong type")
	}
	creator, ok := values[4].(common.Address)
	if !ok {
		return nil, errors.New("getIntent creator has wrong type")
	}

	return &types.FilledIntent{
		IntentHash:   intentHash,
		Exists:       exists,
		Cancelled:    cancelled,
		RemainingIn:  remaining,
		ReceivedOut:  received,
		PendingOwner: creator.Hex(),
	}, nil
}

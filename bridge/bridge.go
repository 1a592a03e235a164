// Package bridge builds the ordered hub-chain call lists that wrap a
// deposited token into its vault representation and unwrap it back. Calls
// are returned as data and never executed here; execution is the
// settlement service's responsibility.
package bridge

import (
	"math/big"
	"strings"

	"github.com/Crosslane/intent-lib/assetregistry"
	"github.com/Crosslane/intent-lib/chains/evm/generated"
	commonerrors "github.com/Crosslane/intent-lib/common/errors"
	"github.com/Crosslane/intent-lib/common/types"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Service builds wrap and unwrap call lists against the hub chain.
type Service struct {
	registry     *assetregistry.Registry
	logger       *logrus.Logger
	assetManager string

	erc20Abi        abi.ABI
	vaultAbi        abi.ABI
	assetManagerAbi abi.ABI
}

// NewService creates a bridge call builder.
//
// Parameters:
// - registry: the asset registry for descriptor lookups.
// - assetManager: the hub-chain asset manager address used for cross-chain
//   transfers on the unwrap path.
// - logger: the logger for logging events.
//
// Returns:
// - *Service: the bridge service.
// - error: an error if an embedded ABI fails to parse.
func NewService(registry *assetregistry.Registry, assetManager string, logger *logrus.Logger) (*Service, error) {
	erc20Abi, err := abi.JSON(strings.NewReader(generated.ERC20ABI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token ABI")
	}
	vaultAbi, err := abi.JSON(strings.NewReader(generated.VaultABI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse vault ABI")
	}
	assetManagerAbi, err := abi.JSON(strings.NewReader(generated.AssetManagerABI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse asset manager ABI")
	}

	return &Service{
		registry:        registry,
		logger:          logger,
		assetManager:    assetManager,
		erc20Abi:        erc20Abi,
		vaultAbi:        vaultAbi,
		assetManagerAbi: assetManagerAbi,
	}, nil
}

// Approval is one token allowance the wrap deposits rely on: the spender
// pulls Amount of Token from the depositing wallet.
type Approval struct {
	Token   string
	Spender string
	Amount  *big.Int
}

// WrapApprovals lists the allowances the wrap deposits built by
// BuildWrapDeposits need before they can run: the vault pulls the base
// asset, and for a second-layer pool token the wrapper pulls the freshly
// minted vault shares.
//
// Parameters:
// - spokeToken: the deposited token's spoke-chain address.
// - spokeChainID: the relay chain id the deposit originated on.
// - amount: the deposit amount in the token's native base units.
// - poolToken: the hub address of the final wrapped representation.
//
// Returns:
// - []Approval: the required allowances, in deposit order.
// - error: a registry error.
func (s *Service) WrapApprovals(
	spokeToken string,
	spokeChainID uint64,
	amount *big.Int,
	poolToken string,
) ([]Approval, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, errors.Wrap(commonerrors.ErrInvalidAmount, "wrap amount must be positive")
	}

	desc, err := s.registry.Descriptor(spokeChainID, spokeToken)
	if err != nil {
		return nil, err
	}

	approvals := []Approval{
		{Token: desc.HubAssetAddress, Spender: desc.VaultAddress, Amount: amount},
	}
	if !sameAddress(poolToken, desc.VaultAddress) {
		approvals = append(approvals, Approval{
			Token:   desc.VaultAddress,
			Spender: poolToken,
			Amount:  RescaleAmount(amount, desc.Decimals, desc.VaultDecimals),
		})
	}
	return approvals, nil
}

// BuildWrapDeposits builds the ordered deposit calls that wrap a deposited
// token into its vault representation, assuming the WrapApprovals
// allowances are already in place:
//
//  1. deposit into the vault to mint vault shares,
//  2. when the target pool token is a second-layer wrapper over the vault
//     share, rescale for decimal differences and deposit into it, crediting
//     the recipient.
//
// When poolToken equals the vault address step 2 is skipped; this is a
// short-circuit, not an error.
//
// Parameters:
// - spokeToken: the deposited token's spoke-chain address.
// - spokeChainID: the relay chain id the deposit originated on.
// - amount: the deposit amount in the token's native base units.
// - poolToken: the hub address of the final wrapped representation.
// - recipient: the hub wallet executing the calls and receiving the result.
//
// Returns:
// - []types.ContractCall: the ordered call list.
// - error: a registry or packing error.
func (s *Service) BuildWrapDeposits(
	spokeToken string,
	spokeChainID uint64,
	amount *big.Int,
	poolToken string,
	recipient string,
) ([]types.ContractCall, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, errors.Wrap(commonerrors.ErrInvalidAmount, "wrap amount must be positive")
	}

	desc, err := s.registry.Descriptor(spokeChainID, spokeToken)
	if err != nil {
		return nil, err
	}

	recipientAddr := common.HexToAddress(recipient)

	depositData, err := s.vaultAbi.Pack("deposit", amount, recipientAddr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack vault deposit data")
	}
	calls := []types.ContractCall{
		{To: desc.VaultAddress, Value: big.NewInt(0), Data: depositData},
	}

	if sameAddress(poolToken, desc.VaultAddress) {
		return calls, nil
	}

	// Second-layer wrapper: vault shares carry vault decimals, the deposit
	// amount is in native decimals.
	scaled := RescaleAmount(amount, desc.Decimals, desc.VaultDecimals)
	wrapDepositData, err := s.vaultAbi.Pack("deposit", scaled, recipientAddr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack wrapper deposit data")
	}
	calls = append(calls, types.ContractCall{
		To: poolToken, Value: big.NewInt(0), Data: wrapDepositData,
	})

	return calls, nil
}

// BuildWrapCalls interleaves WrapApprovals as explicit approve calls with
// the BuildWrapDeposits calls, for wallets that cannot pre-flight their
// allowances: approve the vault, deposit, then approve the wrapper and
// deposit into it.
//
// Returns:
// - []types.ContractCall: the ordered call list.
// - error: a registry or packing error.
func (s *Service) BuildWrapCalls(
	spokeToken string,
	spokeChainID uint64,
	amount *big.Int,
	poolToken string,
	recipient string,
) ([]types.ContractCall, error) {
	approvals, err := s.WrapApprovals(spokeToken, spokeChainID, amount, poolToken)
	if err != nil {
		return nil, err
	}
	deposits, err := s.BuildWrapDeposits(spokeToken, spokeChainID, amount, poolToken, recipient)
	if err != nil {
		return nil, err
	}

	calls := make([]types.ContractCall, 0, len(approvals)+len(deposits))
	for i, approval := range approvals {
		approveData, err := s.erc20Abi.Pack("approve", common.HexToAddress(approval.Spender), approval.Amount)
		if err != nil {
			return nil, errors.Wrap(err, "failed to pack approve data")
		}
		calls = append(calls,
			types.ContractCall{To: approval.Token, Value: big.NewInt(0), Data: approveData},
			deposits[i],
		)
	}
	return calls, nil
}

// BuildUnwrapCalls builds the mirror of BuildWrapCalls:
//
//  1. redeem second-layer shares to vault shares (skipped when the asset's
//     vault has no second layer, like the canonical stable-asset vault),
//  2. withdraw vault shares to the base asset,
//  3. move the base asset to the final recipient: a direct transfer when the
//     destination chain is the hub chain itself, otherwise a cross-chain
//     asset-manager transfer.
//
// Parameters:
// - spokeChainID: the relay chain id of the destination spoke chain.
// - spokeToken: the destination token's spoke-chain address.
// - amount: the amount of wrapped tokens to unwrap, in the wrapped
//   representation's base units.
// - holder: the hub wallet holding the wrapped tokens and executing the calls.
// - recipientBytes: the canonical byte-encoded final recipient address.
//
// Returns:
// - []types.ContractCall: the ordered call list.
// - error: a registry, decode or packing error.
func (s *Service) BuildUnwrapCalls(
	spokeChainID uint64,
	spokeToken string,
	amount *big.Int,
	holder string,
	recipientBytes []byte,
) ([]types.ContractCall, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, errors.Wrap(commonerrors.ErrInvalidAmount, "unwrap amount must be positive")
	}

	desc, err := s.registry.Descriptor(spokeChainID, spokeToken)
	if err != nil {
		return nil, err
	}

	holderAddr := common.HexToAddress(holder)

	var calls []types.ContractCall
	nativeAmount := amount

	if desc.PoolTokenAddress != "" && !sameAddress(desc.PoolTokenAddress, desc.VaultAddress) {
		redeemData, err := s.vaultAbi.Pack("redeem", amount, holderAddr, holderAddr)
		if err != nil {
			return nil, errors.Wrap(err, "failed to pack wrapper redeem data")
		}
		calls = append(calls, types.ContractCall{
			To:    desc.PoolTokenAddress,
			Value: big.NewInt(0),
			Data:  redeemData,
		})
		nativeAmount = RescaleAmount(amount, desc.VaultDecimals, desc.Decimals)
	}

	withdrawData, err := s.vaultAbi.Pack("withdraw", nativeAmount, holderAddr, holderAddr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack vault withdraw data")
	}
	calls = append(calls, types.ContractCall{
		To:    desc.VaultAddress,
		Value: big.NewInt(0),
		Data:  withdrawData,
	})

	if spokeChainID == s.registry.HubRelayID() {
		// Recipient lives on the hub: plain token transfer.
		if len(recipientBytes) != common.AddressLength {
			return nil, errors.Wrapf(commonerrors.ErrInvalidAddress,
				"hub recipient must be %d bytes, got %d", common.AddressLength, len(recipientBytes))
		}
		transferData, err := s.erc20Abi.Pack("transfer", common.BytesToAddress(recipientBytes), nativeAmount)
		if err != nil {
			return nil, errors.Wrap(err, "failed to pack transfer data")
		}
		calls = append(calls, types.ContractCall{
			To:    desc.HubAssetAddress,
			Value: big.NewInt(0),
			Data:  transferData,
		})
		return calls, nil
	}

	managerData, err := s.assetManagerAbi.Pack("transfer",
		common.HexToAddress(desc.HubAssetAddress),
		recipientBytes,
		nativeAmount,
		new(big.Int).SetUint64(spokeChainID),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack asset manager transfer data")
	}
	calls = append(calls, types.ContractCall{
		To:    s.assetManager,
		Value: big.NewInt(0),
		Data:  managerData,
	})

	return calls, nil
}

// RescaleAmount converts an amount between decimal bases using integer
// power-of-ten scaling, flooring on downscale. Floating point is never used
// on value paths.
func RescaleAmount(amount *big.Int, fromDecimals, toDecimals uint8) *big.Int {
	if fromDecimals == toDecimals {
		return new(big.Int).Set(amount)
	}
	if toDecimals > fromDecimals {
		factor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(toDecimals-fromDecimals)), nil)
		return new(big.Int).Mul(amount, factor)
	}
	factor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(fromDecimals-toDecimals)), nil)
	return new(big.Int).Div(amount, factor)
}

func sameAddress(a, b string) bool {
	return strings.EqualFold(a, b)
}

package evm

import (
	"context"
	"math/big"
	"strings"

	"github.com/Crosslane/intent-lib/chains/evm/generated"
	commonerrors "github.com/Crosslane/intent-lib/common/errors"
	"github.com/Crosslane/intent-lib/common/types"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// Allowance reads the ERC-20 allowance granted by owner to spender on the
// given token.
func (e *evm) Allowance(ctx context.Context, token, owner, spender string) (*big.Int, error) {
	e.clientMutex.RLock()
	client := e.client
	e.clientMutex.RUnlock()

	if client == nil {
		return nil, errors.New("client not initialized")
	}

	tokenAbi, err := abi.JSON(strings.NewReader(generated.ERC20ABI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse ERC20 ABI")
	}

	data, err := tokenAbi.Pack("allowance", common.HexToAddress(owner), common.HexToAddress(spender))
	if err != nil {
		return nil, errors.Wrap(commonerrors.ErrAllowanceCheckFailed, err.Error())
	}

	tokenAddr := common.HexToAddress(token)
	result, err := client.CallContract(ctx, ethereum.CallMsg{
		To:   &tokenAddr,
		Data: data,
	}, nil)
	if err != nil {
		return nil, errors.Wrap(commonerrors.ErrAllowanceCheckFailed, err.Error())
	}

	return new(big.Int).SetBytes(result), nil
}

// EnsureAllowance checks the current allowance and, if it is below the
// required amount, submits an approve transaction for the exact amount and
// waits for it to confirm. The wallet signer must be available.
//
// Parameters:
// - ctx: the context for managing the request.
// - token: the ERC-20 token contract address.
// - spender: the address being granted the allowance.
// - amount: the minimum allowance required.
//
// Returns:
// - error: an error if the check or the approval fails.
func (e *evm) EnsureAllowance(ctx context.Context, token, spender string, amount *big.Int) error {
	e.signerMutex.RLock()
	walletSigner := e.signer
	e.signerMutex.RUnlock()

	if walletSigner == nil {
		return errors.Wrap(commonerrors.ErrAllowanceCheckFailed, "signer not initialized")
	}

	current, err := e.Allowance(ctx, token, walletSigner.Address().Hex(), spender)
	if err != nil {
		return err
	}

	if current.Cmp(amount) >= 0 {
		return nil
	}

	tokenAbi, err := abi.JSON(strings.NewReader(generated.ERC20ABI))
	if err != nil {
		return errors.Wrap(err, "failed to parse ERC20 ABI")
	}

	data, err := tokenAbi.Pack("approve", common.HexToAddress(spender), amount)
	if err != nil {
		return errors.Wrap(commonerrors.ErrApprovalFailed, err.Error())
	}

	result, err := e.SubmitCalls(ctx, []types.ContractCall{{
		To:    token,
		Value: big.NewInt(0),
		Data:  data,
	}}, nil)
	if err != nil {
		return errors.Wrap(commonerrors.ErrApprovalFailed, err.Error())
	}

	status, err := e.WaitTransactionConfirmation(ctx, result.Hash)
	if err != nil {
		return errors.Wrap(commonerrors.ErrApprovalFailed, err.Error())
	}
	if status != types.TxStatusConfirmed {
		return errors.Wrap(commonerrors.ErrApprovalFailed, "approve transaction did not confirm")
	}

	e.logger.WithField("token", token).WithField("spender", spender).Info("Allowance updated")

	return nil
}

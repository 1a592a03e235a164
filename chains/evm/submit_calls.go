package evm

import (
	"context"
	"math/big"
	"strings"

	"github.com/Crosslane/intent-lib/chains/evm/generated"
	commonerrors "github.com/Crosslane/intent-lib/common/errors"
	"github.com/Crosslane/intent-lib/common/types"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

// multicallCall mirrors the Multicall3 aggregate3Value tuple.
type multicallCall struct {
	Target       common.Address
	AllowFailure bool
	Value        *big.Int
	CallData     []byte
}

// SubmitCalls signs the given calls and broadcasts them as native
// transactions. When the chain carries a multicall contract and more than
// one call is given, the calls are packed into one atomic transaction:
// either every call applies or none does. Without a multicall contract, or
// with opts.Sequential set, the calls are sent as one transaction per call,
// sequentially. Callers whose calls depend on msg.sender being the wallet
// must set Sequential: inside a multicall batch msg.sender is the multicall
// contract.
//
// With opts.Raw set, the unsigned transaction is built and returned instead
// of being signed and broadcast.
//
// Parameters:
// - ctx: the context for managing the request.
// - calls: the ordered calls to execute.
// - opts: submit options, may be nil.
//
// Returns:
// - *types.TxResult: the last broadcast hash, or the unsigned payload.
// - error: an error if building, signing or broadcasting fails.
func (e *evm) SubmitCalls(ctx context.Context, calls []types.ContractCall, opts *types.SubmitOptions) (*types.TxResult, error) {
	if len(calls) == 0 {
		return nil, errors.Wrap(commonerrors.ErrInvalidParams, "no calls to submit")
	}

	raw := opts != nil && opts.Raw

	batched := calls
	if opts == nil || !opts.Sequential {
		var err error
		batched, err = e.batchCalls(calls)
		if err != nil {
			return nil, err
		}
	}

	if raw && len(batched) > 1 {
		return nil, errors.Wrap(commonerrors.ErrInvalidParams,
			"raw mode requires a single call or a multicall contract")
	}

	e.signerMutex.RLock()
	walletSigner := e.signer
	e.signerMutex.RUnlock()

	if walletSigner == nil {
		return nil, errors.New("signer not initialized")
	}

	var lastHash string
	for _, call := range batched {
		nonce, err := e.pendingNonce(ctx, walletSigner.Address())
		if err != nil {
			return nil, err
		}

		value := call.Value
		if value == nil {
			value = big.NewInt(0)
		}

		tx, err := e.prepareTransaction(ctx, nonce, call.To, value, call.Data)
		if err != nil {
			return nil, err
		}

		if raw {
			encoded, err := tx.MarshalBinary()
			if err != nil {
				return nil, errors.Wrap(err, "failed to encode unsigned transaction")
			}
			return types.UnsignedResult(encoded), nil
		}

		signedTx, err := e.signAndSendTransaction(ctx, tx)
		if err != nil {
			return nil, err
		}
		lastHash = signedTx.Hash().Hex()
	}

	return types.SubmittedResult(lastHash), nil
}

// batchCalls folds multiple calls into one multicall invocation when the
// chain supports it; otherwise the calls pass through unchanged.
func (e *evm) batchCalls(calls []types.ContractCall) ([]types.ContractCall, error) {
	if len(calls) == 1 || e.config.Contracts.Multicall == "" {
		return calls, nil
	}

	multicallAbi, err := abi.JSON(strings.NewReader(generated.Multicall3ABI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse multicall ABI")
	}

	packed := make([]multicallCall, 0, len(calls))
	total := big.NewInt(0)
	for _, call := range calls {
		value := call.Value
		if value == nil {
			value = big.NewInt(0)
		}
		total = new(big.Int).Add(total, value)
		packed = append(packed, multicallCall{
			Target:       common.HexToAddress(call.To),
			AllowFailure: false,
			Value:        value,
			CallData:     call.Data,
		})
	}

	data, err := multicallAbi.Pack("aggregate3Value", packed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack multicall data")
	}

	return []types.ContractCall{{
		To:    e.config.Contracts.Multicall,
		Value: total,
		Data:  data,
	}}, nil
}

// pendingNonce reads the next nonce for the wallet.
func (e *evm) pendingNonce(ctx context.Context, from common.Address) (uint64, error) {
	e.clientMutex.RLock()
	client := e.client
	e.clientMutex.RUnlock()

	if client == nil {
		return 0, errors.New("client not initialized")
	}

	nonce, err := client.PendingNonceAt(ctx, from)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get nonce")
	}
	return nonce, nil
}

// prepareTransaction prepares a transaction with the given parameters.
//
// Parameters:
// - ctx: the context for managing the request.
// - nonce: the nonce for the transaction.
// - toAddress: the recipient address of the transaction.
// - value: the native value to send with the transaction.
// - data: the input data for the transaction.
//
// Returns:
// - *ethtypes.Transaction: the prepared transaction.
// - error: an error if the gas estimation or gas price retrieval fails.
func (e *evm) prepareTransaction(ctx context.Context, nonce uint64, toAddress string, value *big.Int, data []byte) (*ethtypes.Transaction, error) {
	estimatedGas, err := e.EstimateGas(ctx, toAddress, value, data)
	if err != nil {
		e.logger.WithField("chain", e.config.Name).WithError(err).Warn("Failed to estimate gas")
		return nil, errors.Wrap(err, "failed to estimate gas")
	}

	gasLimit := uint64(float64(estimatedGas) * 1.1)

	to := common.HexToAddress(toAddress)

	e.clientMutex.RLock()
	client := e.client
	e.clientMutex.RUnlock()

	if client == nil {
		return nil, errors.New("client not initialized")
	}

	if e.config.TxType == TxTypeEIP1559 {
		gasPriceData, err := e.getEIP1559GasPrice(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get EIP-1559 gas price")
		}

		return ethtypes.NewTx(&ethtypes.DynamicFeeTx{
			ChainID:   big.NewInt(0).SetUint64(e.config.ChainID),
			Nonce:     nonce,
			GasFeeCap: gasPriceData.MaxFeePerGas,
			GasTipCap: gasPriceData.MaxPriorityFeePerGas,
			Gas:       gasLimit,
			To:        &to,
			Value:     value,
			Data:      data,
		}), nil
	}

	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get gas price")
	}

	gasPrice = new(big.Int).Mul(gasPrice, big.NewInt(150))
	gasPrice = new(big.Int).Div(gasPrice, big.NewInt(100))

	return ethtypes.NewTransaction(
		nonce,
		to,
		value,
		gasLimit,
		gasPrice,
		data,
	), nil
}

// signAndSendTransaction signs and sends the prepared transaction.
func (e *evm) signAndSendTransaction(ctx context.Context, tx *ethtypes.Transaction) (*ethtypes.Transaction, error) {
	e.clientMutex.RLock()
	client := e.client
	e.clientMutex.RUnlock()

	e.signerMutex.RLock()
	walletSigner := e.signer
	e.signerMutex.RUnlock()

	if client == nil || walletSigner == nil {
		return nil, errors.New("client or signer not initialized")
	}

	chainID := big.NewInt(0).SetUint64(e.config.ChainID)

	signedTx, err := walletSigner.SignTx(tx, chainID)
	if err != nil {
		e.logger.WithError(err).Error("Failed to sign transaction")
		return nil, errors.Wrap(err, "failed to sign transaction")
	}

	if err = client.SendTransaction(ctx, signedTx); err != nil {
		e.logger.WithError(err).Error("Failed to send transaction")
		return nil, errors.Wrap(err, "failed to send transaction")
	}

	return signedTx, nil
}

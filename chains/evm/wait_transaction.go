package evm

import (
	"context"
	"math/big"
	"time"

	"github.com/Crosslane/intent-lib/common/types"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

// WaitTransactionConfirmation polls for the receipt of the given transaction
// hash and then waits until the chain has advanced WaitNBlocks past the
// block the transaction was included in. A transaction that reverted on
// chain resolves to TxStatusFailed, not an error; errors are reserved for
// the receipt never becoming observable before the context ends.
//
// Parameters:
// - ctx: the context bounding the wait.
// - txHash: the hash of the transaction to wait for.
//
// Returns:
// - types.TransactionStatus: the final status of the transaction.
// - error: an error if the receipt could not be retrieved in time.
func (e *evm) WaitTransactionConfirmation(ctx context.Context, txHash string) (types.TransactionStatus, error) {
	receipt, err := e.waitReceipt(ctx, common.HexToHash(txHash))
	if err != nil {
		return types.TxStatusFailed, err
	}

	if receipt.Status != ethtypes.ReceiptStatusSuccessful {
		e.logger.WithField("txHash", txHash).Warn("Transaction reverted")
		return types.TxStatusFailed, nil
	}

	if err := e.waitBlocksAfter(ctx, receipt.BlockNumber); err != nil {
		return types.TxNeedsRetry, err
	}

	return types.TxStatusConfirmed, nil
}

// waitReceipt polls for the transaction receipt until it shows up or the
// context ends.
func (e *evm) waitReceipt(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error) {
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		e.clientMutex.RLock()
		client := e.client
		e.clientMutex.RUnlock()

		if client == nil {
			return nil, errors.New("client not initialized")
		}

		receipt, err := client.TransactionReceipt(ctx, txHash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			e.logger.WithField("txHash", txHash.Hex()).WithError(err).Warn("Failed to get transaction receipt")
		}

		select {
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "failed to get transaction receipt")
		case <-ticker.C:
		}
	}
}

// waitBlocksAfter blocks until the head is at least WaitNBlocks beyond the
// given inclusion block.
func (e *evm) waitBlocksAfter(ctx context.Context, includedAt *big.Int) error {
	if e.config.WaitNBlocks == 0 || includedAt == nil {
		return nil
	}

	target := new(big.Int).Add(includedAt, big.NewInt(int64(e.config.WaitNBlocks)))

	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		e.clientMutex.RLock()
		client := e.client
		e.clientMutex.RUnlock()

		if client == nil {
			return errors.New("client not initialized")
		}

		head, err := client.BlockNumber(ctx)
		if err != nil {
			e.logger.WithError(err).Warn("Failed to get block number")
		} else if new(big.Int).SetUint64(head).Cmp(target) >= 0 {
			return nil
		}

		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "failed to wait for confirmations")
		case <-ticker.C:
		}
	}
}

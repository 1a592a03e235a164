package bitcoin

import (
	"context"
	"time"

	"github.com/Crosslane/intent-lib/common/types"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/pkg/errors"
)

// WaitTransactionConfirmation polls the node until the transaction has at
// least WaitNBlocks confirmations (minimum one). A transaction the node
// never reports before the context ends resolves to TxNeedsRetry with the
// context error; Bitcoin transactions do not fail after broadcast, they
// either confirm or drop out of the mempool.
func (b *bitcoin) WaitTransactionConfirmation(ctx context.Context, txHash string) (types.TransactionStatus, error) {
	hash, err := chainhash.NewHashFromStr(txHash)
	if err != nil {
		return types.TxStatusFailed, errors.Wrap(err, "failed to parse transaction hash")
	}

	required := uint64(b.config.WaitNBlocks)
	if required == 0 {
		required = 1
	}

	ticker := time.NewTicker(confirmationPollInterval)
	defer ticker.Stop()

	for {
		client, err := b.getClient()
		if err != nil {
			return types.TxNeedsRetry, err
		}

		result, err := client.GetRawTransactionVerbose(hash)
		if err != nil {
			b.logger.WithField("txHash", txHash).WithError(err).Warn("Failed to get transaction")
		} else if result.Confirmations >= required {
			return types.TxStatusConfirmed, nil
		}

		select {
		case <-ctx.Done():
			return types.TxNeedsRetry, errors.Wrap(ctx.Err(), "failed to wait for confirmations")
		case <-ticker.C:
		}
	}
}

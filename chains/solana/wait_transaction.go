package solana

import (
	"context"
	"time"

	"github.com/Crosslane/intent-lib/common/types"
	sol "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
)

// WaitTransactionConfirmation polls signature statuses until the transaction
// is finalized or the context ends. A transaction that failed on chain
// resolves to TxStatusFailed; a signature the cluster never reports before
// the context ends resolves to TxNeedsRetry with the context error.
func (s *solana) WaitTransactionConfirmation(ctx context.Context, txHash string) (types.TransactionStatus, error) {
	sig, err := sol.SignatureFromBase58(txHash)
	if err != nil {
		return types.TxStatusFailed, errors.Wrap(err, "failed to parse signature")
	}

	ticker := time.NewTicker(statusPollInterval)
	defer ticker.Stop()

	for {
		client, err := s.getClient()
		if err != nil {
			return types.TxNeedsRetry, err
		}

		result, err := client.GetSignatureStatuses(ctx, true, sig)
		if err != nil {
			s.logger.WithField("signature", txHash).WithError(err).Warn("Failed to get signature status")
		} else if len(result.Value) > 0 && result.Value[0] != nil {
			status := result.Value[0]

			if status.Err != nil {
				s.logger.WithField("signature", txHash).Warn("Transaction failed on chain")
				return types.TxStatusFailed, nil
			}

			if status.ConfirmationStatus == rpc.ConfirmationStatusFinalized {
				return types.TxStatusConfirmed, nil
			}
		}

		select {
		case <-ctx.Done():
			return types.TxNeedsRetry, errors.Wrap(ctx.Err(), "failed to wait for confirmation")
		case <-ticker.C:
		}
	}
}

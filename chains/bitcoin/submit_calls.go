package bitcoin

import (
	"bytes"
	"context"

	commonerrors "github.com/Crosslane/intent-lib/common/errors"
	"github.com/Crosslane/intent-lib/common/types"
	"github.com/btcsuite/btcd/wire"
	"github.com/pkg/errors"
)

// SubmitCalls broadcasts pre-signed transactions. Each call's Data field
// carries one serialized signed transaction; To and Value are ignored
// because the transaction itself already encodes its outputs. Bitcoin has
// no batching, so multiple calls broadcast sequentially and the last hash
// is returned.
//
// With opts.Raw set exactly one call is expected and its payload is handed
// back unsent, letting the caller route it to an external signer or
// broadcaster.
func (b *bitcoin) SubmitCalls(ctx context.Context, calls []types.ContractCall, opts *types.SubmitOptions) (*types.TxResult, error) {
	if len(calls) == 0 {
		return nil, errors.Wrap(commonerrors.ErrInvalidParams, "no calls to submit")
	}

	if opts != nil && opts.Raw {
		if len(calls) != 1 {
			return nil, errors.Wrap(commonerrors.ErrInvalidParams, "raw mode requires a single call")
		}
		return types.UnsignedResult(calls[0].Data), nil
	}

	client, err := b.getClient()
	if err != nil {
		return nil, err
	}

	var lastHash string
	for _, call := range calls {
		if len(call.Data) == 0 {
			return nil, errors.Wrap(commonerrors.ErrInvalidParams, "call carries no transaction payload")
		}

		msgTx := &wire.MsgTx{}
		if err := msgTx.Deserialize(bytes.NewReader(call.Data)); err != nil {
			return nil, errors.Wrap(err, "failed to deserialize transaction")
		}

		hash, err := client.SendRawTransaction(msgTx, false)
		if err != nil {
			return nil, errors.Wrap(commonerrors.ErrSubmitTxFailed, err.Error())
		}

		b.logger.WithField("txHash", hash.String()).Info("Transaction broadcast")
		lastHash = hash.String()
	}

	return types.SubmittedResult(lastHash), nil
}

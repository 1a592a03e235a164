package bitcoin

import (
	"context"
	"math/big"

	commonerrors "github.com/Crosslane/intent-lib/common/errors"
	"github.com/btcsuite/btcutil"
	"github.com/pkg/errors"
)

// GetTokenBalance sums the confirmed unspent outputs held by the given
// address, in satoshis. Bitcoin has no token layer, so a non-empty
// tokenAddress is rejected.
//
// Parameters:
// - ctx: the context for managing the request.
// - address: the address to check balance for.
// - tokenAddress: must be empty.
//
// Returns:
// - *big.Int: the balance in satoshis.
// - error: an error if the balance check fails.
func (b *bitcoin) GetTokenBalance(ctx context.Context, address string, tokenAddress string) (*big.Int, error) {
	if tokenAddress != "" {
		return nil, errors.Wrap(commonerrors.ErrInvalidParams, "token balances are not supported")
	}

	addr, err := btcutil.DecodeAddress(address, b.netParams)
	if err != nil {
		return nil, errors.Wrap(commonerrors.ErrInvalidAddress, err.Error())
	}

	client, err := b.getClient()
	if err != nil {
		return nil, err
	}

	unspent, err := client.ListUnspentMinMaxAddresses(1, 9999999, []btcutil.Address{addr})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list unspent outputs")
	}

	total := big.NewInt(0)
	for _, utxo := range unspent {
		amount, err := btcutil.NewAmount(utxo.Amount)
		if err != nil {
			return nil, errors.Wrap(err, "failed to convert amount")
		}
		total.Add(total, big.NewInt(int64(amount)))
	}

	return total, nil
}

package solana

import (
	"context"
	"math/big"

	"github.com/Crosslane/intent-lib/chains/solana/utils"
	sol "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
)

// GetTokenBalance gets token balance for the given address.
// For native SOL balances, use tokenAddress as empty string or the system
// program id.
//
// Parameters:
// - ctx: the context for managing the request.
// - address: the address to check balance for.
// - tokenAddress: the token mint address.
//
// Returns:
// - *big.Int: the token balance.
// - error: an error if the balance check fails.
func (s *solana) GetTokenBalance(ctx context.Context, address string, tokenAddress string) (*big.Int, error) {
	userPubKey, err := sol.PublicKeyFromBase58(address)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse address")
	}

	if tokenAddress == "" || tokenAddress == sol.SystemProgramID.String() {
		balance, err := s.getNativeBalance(ctx, userPubKey)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get native SOL balance")
		}
		return balance, nil
	}

	tokenPubKey, err := sol.PublicKeyFromBase58(tokenAddress)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse tokenAddress")
	}

	sourceATA, err := utils.GetAssociatedTokenAddress(tokenPubKey, userPubKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get associated token address")
	}

	balance, err := s.getSPLTokenBalance(ctx, sourceATA)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get token balance")
	}

	return balance, nil
}

// getNativeBalance gets native SOL balance.
func (s *solana) getNativeBalance(ctx context.Context, account sol.PublicKey) (*big.Int, error) {
	client, err := s.getClient()
	if err != nil {
		return nil, err
	}

	balance, err := client.GetBalance(ctx, account, rpc.CommitmentFinalized)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get native balance")
	}

	return new(big.Int).SetUint64(balance.Value), nil
}

// getSPLTokenBalance gets SPL token balance.
func (s *solana) getSPLTokenBalance(ctx context.Context, account sol.PublicKey) (*big.Int, error) {
	client, err := s.getClient()
	if err != nil {
		return nil, err
	}

	balance, err := client.GetTokenAccountBalance(ctx, account, rpc.CommitmentFinalized)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get token balance")
	}

	amount, ok := big.NewInt(0).SetString(balance.Value.Amount, 10)
	if !ok {
		return nil, errors.New("failed to parse token balance")
	}

	return amount, nil
}

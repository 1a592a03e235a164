package settlement

import (
	"context"

	"github.com/Crosslane/intent-lib/common/types"
	"github.com/Crosslane/intent-lib/intent"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// GetIntent reads the hub-side view of the given intent. Read-only and
// always safe: it never mutates hub state.
func (s *Service) GetIntent(ctx context.Context, in *types.Intent) (*types.FilledIntent, error) {
	hash, err := intent.Hash(in)
	if err != nil {
		return nil, err
	}
	return s.GetFilledIntent(ctx, hash)
}

// GetFilledIntent reads the hub-side view of an intent by its deterministic
// hash. Exists == false means the settlement contract never saw the intent.
func (s *Service) GetFilledIntent(ctx context.Context, intentHash [32]byte) (*types.FilledIntent, error) {
	data, err := intent.PackGetIntent(intentHash)
	if err != nil {
		return nil, err
	}

	settlementAddr := common.HexToAddress(s.hubConfig.Contracts.Settlement)
	result, err := s.hubCaller.CallContract(ctx, ethereum.CallMsg{
		To:   &settlementAddr,
		Data: data,
	}, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query settlement contract")
	}

	return intent.UnpackGetIntent(intentHash, result)
}

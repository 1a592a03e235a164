package solana

import (
	"context"

	"github.com/Crosslane/intent-lib/chains/solana/utils"
	commonerrors "github.com/Crosslane/intent-lib/common/errors"
	"github.com/Crosslane/intent-lib/common/types"
	sol "github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// SubmitCalls builds one transaction from the given calls and broadcasts it.
// Instructions are atomic on Solana, so multiple calls always land together.
//
// A call with empty Data and a positive Value is a native SOL transfer of
// Value lamports to To. A call with Data set is an SPL token transfer: To is
// the mint and Data carries the recipient and amount packed by
// utils.EncodeTokenTransfer.
//
// With opts.Raw set, the unsigned transaction is built and returned instead
// of being signed and broadcast.
func (s *solana) SubmitCalls(ctx context.Context, calls []types.ContractCall, opts *types.SubmitOptions) (*types.TxResult, error) {
	if len(calls) == 0 {
		return nil, errors.Wrap(commonerrors.ErrInvalidParams, "no calls to submit")
	}

	s.signerMutex.RLock()
	signer := s.signer
	hasSigner := s.hasSigner
	s.signerMutex.RUnlock()

	if !hasSigner {
		return nil, errors.New("signer not initialized")
	}

	client, err := s.getClient()
	if err != nil {
		return nil, err
	}

	latestBlockhashResult, err := client.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get latest blockhash")
	}
	latestBlockhash := latestBlockhashResult.Value.Blockhash

	basicInstructions, err := s.buildInstructions(ctx, calls, signer.PublicKey())
	if err != nil {
		return nil, err
	}

	instructions, err := s.withComputeBudget(ctx, basicInstructions, signer, latestBlockhash)
	if err != nil {
		return nil, err
	}

	tx, err := sol.NewTransaction(
		instructions,
		latestBlockhash,
		sol.TransactionPayer(signer.PublicKey()),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create transaction")
	}

	if opts != nil && opts.Raw {
		encoded, err := tx.MarshalBinary()
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode unsigned transaction")
		}
		return types.UnsignedResult(encoded), nil
	}

	_, err = tx.Sign(func(key sol.PublicKey) *sol.PrivateKey {
		if signer.PublicKey().Equals(key) {
			return &signer
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign transaction")
	}

	sig, err := client.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: rpc.CommitmentProcessed,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to send transaction")
	}

	return types.SubmittedResult(sig.String()), nil
}

// buildInstructions maps the calls onto Solana instructions.
func (s *solana) buildInstructions(ctx context.Context, calls []types.ContractCall, payer sol.PublicKey) ([]sol.Instruction, error) {
	instructions := make([]sol.Instruction, 0, len(calls))

	for _, call := range calls {
		toPubKey, err := sol.PublicKeyFromBase58(call.To)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse call target")
		}

		if len(call.Data) == 0 {
			if call.Value == nil || call.Value.Sign() <= 0 {
				return nil, errors.Wrap(commonerrors.ErrInvalidParams, "native transfer requires a positive value")
			}
			if !call.Value.IsUint64() {
				return nil, errors.Wrap(commonerrors.ErrInvalidAmount, "lamport amount overflows uint64")
			}

			instruction, err := utils.CreateSystemTransferInstruction(payer, toPubKey, call.Value.Uint64())
			if err != nil {
				return nil, err
			}
			instructions = append(instructions, instruction)
			continue
		}

		tokenInstructions, err := s.buildTokenTransfer(ctx, toPubKey, call.Data, payer)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, tokenInstructions...)
	}

	return instructions, nil
}

// buildTokenTransfer expands one SPL transfer call into its instruction
// sequence, creating the recipient's associated token account when missing.
func (s *solana) buildTokenTransfer(ctx context.Context, mint sol.PublicKey, data []byte, payer sol.PublicKey) ([]sol.Instruction, error) {
	recipient, amount, err := utils.DecodeTokenTransfer(data)
	if err != nil {
		return nil, err
	}

	instructions := make([]sol.Instruction, 0, 2)

	createATA, err := s.createATAInstructionIfMissing(ctx, payer, mint, recipient)
	if err != nil {
		return nil, err
	}
	if createATA != nil {
		instructions = append(instructions, createATA)
	}

	sourceATA, err := utils.GetAssociatedTokenAddress(mint, payer)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get associated token address for payer")
	}
	destATA, err := utils.GetAssociatedTokenAddress(mint, recipient)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get associated token address for recipient")
	}

	transfer, err := utils.CreateTokenTransferInstruction(sourceATA, destATA, payer, amount)
	if err != nil {
		return nil, err
	}
	instructions = append(instructions, transfer)

	return instructions, nil
}

// createATAInstructionIfMissing returns the instruction to create an
// associated token account when the account does not exist yet.
func (s *solana) createATAInstructionIfMissing(
	ctx context.Context,
	payer sol.PublicKey,
	mint sol.PublicKey,
	owner sol.PublicKey,
) (sol.Instruction, error) {
	addr, err := utils.GetAssociatedTokenAddress(mint, owner)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get associated token address")
	}

	client, err := s.getClient()
	if err != nil {
		return nil, err
	}

	acc, err := client.GetAccountInfo(ctx, addr)
	if err != nil && err.Error() != "not found" { // skip not found error
		return nil, errors.Wrap(err, "failed to get account info")
	}

	if acc == nil {
		return utils.CreateAssociatedTokenAccountInstruction(payer, addr, owner, mint), nil
	}

	return nil, nil
}

// withComputeBudget prepends compute unit limit and priority fee
// instructions, sizing the limit from a simulation of the basic
// instructions.
func (s *solana) withComputeBudget(ctx context.Context, basicInstructions []sol.Instruction, signer sol.PrivateKey, latestBlockhash sol.Hash) ([]sol.Instruction, error) {
	client, err := s.getClient()
	if err != nil {
		return nil, err
	}

	computeUnits, err := utils.SimulateTransaction(ctx, client, signer, basicInstructions, latestBlockhash)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to simulate transaction, using default compute units")
		computeUnits = defaultComputeUnits
	}

	computeUnits = (computeUnits * computeUnitBuffer) / 100
	s.logger.WithFields(logrus.Fields{
		"computeUnits": computeUnits,
		"priorityFee":  defaultPriorityFee,
	}).Debug("Compute budget prepared")

	setComputeUnitLimitIx, err := computebudget.NewSetComputeUnitLimitInstruction(uint32(computeUnits)).ValidateAndBuild()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create compute unit limit instruction")
	}

	setPriorityFeeIx, err := computebudget.NewSetComputeUnitPriceInstruction(defaultPriorityFee).ValidateAndBuild()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create priority fee instruction")
	}

	instructions := make([]sol.Instruction, 0, len(basicInstructions)+2)
	instructions = append(instructions, setComputeUnitLimitIx, setPriorityFeeIx)
	instructions = append(instructions, basicInstructions...)

	return instructions, nil
}

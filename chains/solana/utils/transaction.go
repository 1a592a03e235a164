package utils

import (
	"bytes"
	"context"
	"fmt"

	bin "github.com/gagliardetto/binary"
	sol "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
)

// tokenTransferDataLen is the packed size of a token transfer payload:
// a 32-byte recipient public key followed by a little-endian uint64 amount.
const tokenTransferDataLen = 40

// EncodeTokenTransfer packs an SPL transfer descriptor for a provider call.
func EncodeTokenTransfer(recipient sol.PublicKey, amount uint64) ([]byte, error) {
	buf := new(bytes.Buffer)
	encoder := bin.NewBinEncoder(buf)
	if err := encoder.WriteBytes(recipient.Bytes(), false); err != nil {
		return nil, errors.Wrap(err, "failed to encode recipient")
	}
	if err := encoder.WriteUint64(amount, bin.LE); err != nil {
		return nil, errors.Wrap(err, "failed to encode amount")
	}
	return buf.Bytes(), nil
}

// DecodeTokenTransfer unpacks an SPL transfer descriptor.
func DecodeTokenTransfer(data []byte) (sol.PublicKey, uint64, error) {
	if len(data) != tokenTransferDataLen {
		return sol.PublicKey{}, 0, errors.Errorf("invalid token transfer payload length %d", len(data))
	}

	decoder := bin.NewBinDecoder(data)
	recipientBytes, err := decoder.ReadNBytes(sol.PublicKeyLength)
	if err != nil {
		return sol.PublicKey{}, 0, errors.Wrap(err, "failed to decode recipient")
	}
	amount, err := decoder.ReadUint64(bin.LE)
	if err != nil {
		return sol.PublicKey{}, 0, errors.Wrap(err, "failed to decode amount")
	}

	return sol.PublicKeyFromBytes(recipientBytes), amount, nil
}

// SimulateTransaction simulates a transaction to calculate required compute
// units.
func SimulateTransaction(ctx context.Context, client *rpc.Client, signer sol.PrivateKey, instructions []sol.Instruction, latestBlockHash sol.Hash) (uint64, error) {
	tx, err := sol.NewTransaction(
		instructions,
		latestBlockHash,
		sol.TransactionPayer(signer.PublicKey()),
	)
	if err != nil {
		return 0, errors.Wrap(err, "failed to create transaction")
	}

	_, err = tx.Sign(func(key sol.PublicKey) *sol.PrivateKey {
		if signer.PublicKey().Equals(key) {
			return &signer
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to sign transaction")
	}

	sim, err := client.SimulateTransaction(ctx, tx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to simulate transaction")
	}

	if sim.Value.Err != nil {
		return 0, fmt.Errorf("simulation failed: %v", sim.Value.Err)
	}

	if sim.Value.UnitsConsumed == nil {
		return 0, errors.New("simulation returned no units consumed")
	}

	return *sim.Value.UnitsConsumed, nil
}

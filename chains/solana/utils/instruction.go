// Package utils carries instruction builders shared by the Solana provider.
package utils

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	sol "github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

const (
	// systemTransferIndex is the system program transfer instruction index.
	systemTransferIndex uint32 = 2
	// tokenTransferIndex is the SPL token program transfer instruction code.
	tokenTransferIndex uint8 = 3
)

// GetAssociatedTokenAddress returns the token account address for a given
// token and owner. This is a deterministic address that follows Solana's
// Associated Token Account Program conventions.
func GetAssociatedTokenAddress(tokenMint, owner sol.PublicKey) (sol.PublicKey, error) {
	seeds := [][]byte{
		owner.Bytes(),
		sol.TokenProgramID.Bytes(),
		tokenMint.Bytes(),
	}

	addr, _, err := sol.FindProgramAddress(
		seeds,
		sol.SPLAssociatedTokenAccountProgramID,
	)

	return addr, err
}

// CreateSystemTransferInstruction creates a native SOL transfer instruction.
func CreateSystemTransferInstruction(
	from sol.PublicKey,
	to sol.PublicKey,
	lamports uint64,
) (sol.Instruction, error) {
	buf := new(bytes.Buffer)
	encoder := bin.NewBinEncoder(buf)
	if err := encoder.WriteUint32(systemTransferIndex, bin.LE); err != nil {
		return nil, errors.Wrap(err, "failed to encode instruction index")
	}
	if err := encoder.WriteUint64(lamports, bin.LE); err != nil {
		return nil, errors.Wrap(err, "failed to encode lamports")
	}

	return sol.NewInstruction(
		sol.SystemProgramID,
		sol.AccountMetaSlice{
			{PublicKey: from, IsSigner: true, IsWritable: true},
			{PublicKey: to, IsSigner: false, IsWritable: true},
		},
		buf.Bytes(),
	), nil
}

// CreateTokenTransferInstruction creates an SPL token transfer instruction
// for the given source, destination, owner, and amount.
func CreateTokenTransferInstruction(
	source sol.PublicKey, // Source ATA account.
	destination sol.PublicKey, // Destination ATA account.
	owner sol.PublicKey, // Owner of the source ATA account.
	amount uint64,
) (sol.Instruction, error) {
	buf := new(bytes.Buffer)
	encoder := bin.NewBinEncoder(buf)
	if err := encoder.WriteUint8(tokenTransferIndex); err != nil {
		return nil, errors.Wrap(err, "failed to encode instruction code")
	}
	if err := encoder.WriteUint64(amount, bin.LE); err != nil {
		return nil, errors.Wrap(err, "failed to encode amount")
	}

	return sol.NewInstruction(
		sol.TokenProgramID,
		sol.AccountMetaSlice{
			{PublicKey: source, IsSigner: false, IsWritable: true},
			{PublicKey: destination, IsSigner: false, IsWritable: true},
			{PublicKey: owner, IsSigner: true, IsWritable: false},
		},
		buf.Bytes(),
	), nil
}

// CreateAssociatedTokenAccountInstruction creates the instruction for ATA
// creation.
func CreateAssociatedTokenAccountInstruction(
	payer sol.PublicKey,
	associatedToken sol.PublicKey,
	owner sol.PublicKey,
	mint sol.PublicKey,
) sol.Instruction {
	return sol.NewInstruction(
		sol.SPLAssociatedTokenAccountProgramID,
		sol.AccountMetaSlice{
			{PublicKey: payer, IsSigner: true, IsWritable: true},
			{PublicKey: associatedToken, IsSigner: false, IsWritable: true},
			{PublicKey: owner, IsSigner: false, IsWritable: false},
			{PublicKey: mint, IsSigner: false, IsWritable: false},
			{PublicKey: sol.SystemProgramID, IsSigner: false, IsWritable: false},
			{PublicKey: sol.TokenProgramID, IsSigner: false, IsWritable: false},
			{PublicKey: sol.SysVarRentPubkey, IsSigner: false, IsWritable: false},
		},
		[]byte{},
	)
}

// CreateMemoInstruction creates a memo instruction with the given message.
func CreateMemoInstruction(message string) sol.Instruction {
	return sol.NewInstruction(
		sol.MemoProgramID,
		sol.AccountMetaSlice{},
		[]byte(message),
	)
}

// LamportsToSol converts lamports to a float SOL value for log output only.
func LamportsToSol(lamports uint64) float64 {
	return float64(lamports) / float64(sol.LAMPORTS_PER_SOL)
}

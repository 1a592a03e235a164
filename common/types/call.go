package types

import "math/big"

// ContractCall is one logical call to be executed on a chain. Calls are
// plain data: components that build them never execute them.
//
// Fields:
// - To: the target address in chain-native string form.
// - Value: the native value to attach; nil means zero.
// - Data: the call input data.
type ContractCall struct {
	To    string
	Value *big.Int
	Data  []byte
}

// TxResultKind discriminates the two outcomes of a write operation.
type TxResultKind int

const (
	// TxUnsigned means the transaction was built but not signed or broadcast;
	// the raw payload is returned to the caller for external signing.
	TxUnsigned TxResultKind = iota
	// TxSubmitted means the transaction was signed and broadcast and the
	// result carries its hash.
	TxSubmitted
)

// TxResult is the outcome of a write operation: either a built-but-unsigned
// transaction or a submitted hash, selected by the caller's Raw flag.
type TxResult struct {
	Kind TxResultKind
	Hash string
	Raw  []byte
}

// UnsignedResult wraps a raw unsigned transaction payload.
func UnsignedResult(raw []byte) *TxResult {
	return &TxResult{Kind: TxUnsigned, Raw: raw}
}

// SubmittedResult wraps a broadcast transaction hash.
func SubmittedResult(hash string) *TxResult {
	return &TxResult{Kind: TxSubmitted, Hash: hash}
}

// SubmitOptions controls how a provider handles a batch of calls.
//
// Fields:
// - Raw: build and return the unsigned transaction instead of broadcasting.
// - Sequential: submit one transaction per call from the wallet even when
//   the chain carries a call aggregation contract. Required when a call's
//   effect binds to msg.sender, like an ERC-20 approve or a vault
//   withdrawal by owner: routed through the aggregation contract those
//   calls would act on the aggregator's account, not the wallet's.
type SubmitOptions struct {
	Raw        bool
	Sequential bool
}

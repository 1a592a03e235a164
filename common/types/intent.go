package types

import (
	"math/big"
)

// Intent represents a cross-chain intent as created on the hub settlement
// contract. Field order matches the on-chain tuple exactly and must not be
// reordered.
//
// Fields:
// - IntentID: 256-bit random identifier, unique per intent, generated client-side.
// - Creator: hub-chain address of the intent owner (the derived hub wallet, not the spoke address).
// - InputToken: hub-chain address of the asset being sold.
// - OutputToken: hub-chain address of the asset being bought.
// - InputAmount: amount in hub-asset base units, after partner fee deduction.
// - MinOutputAmount: minimum acceptable output in hub-asset base units.
// - Deadline: UNIX timestamp after which the intent expires; 0 means no deadline.
// - AllowPartialFill: if false a solver must fill 100% or not at all.
// - SrcChain: relay chain id of the origin chain.
// - DstChain: relay chain id of the destination chain.
// - SrcAddress: canonical byte-encoded source address.
// - DstAddress: canonical byte-encoded destination address.
// - Solver: specific solver hub address; the zero address means any solver may fill.
// - Data: opaque bytes carrying fee-routing instructions to the settlement contract.
type Intent struct {
	IntentID         *big.Int
	Creator          string
	InputToken       string
	OutputToken      string
	InputAmount      *big.Int
	MinOutputAmount  *big.Int
	Deadline         uint64
	AllowPartialFill bool
	SrcChain         uint64
	DstChain         uint64
	SrcAddress       []byte
	DstAddress       []byte
	Solver           string
	Data             []byte
}

// IntentParams holds the user-facing parameters an intent is built from.
// Token addresses and user addresses are in their spoke-chain native form;
// chain ids are relay ids.
type IntentParams struct {
	SrcChain         uint64
	DstChain         uint64
	InputToken       string
	OutputToken      string
	InputAmount      *big.Int
	MinOutputAmount  *big.Int
	Deadline         uint64
	AllowPartialFill bool
	SrcAddress       string
	DstAddress       string
	Solver           string
}

// FilledIntent represents the hub-side view of an intent after (partial)
// filling, as read from the settlement contract.
type FilledIntent struct {
	IntentHash   [32]byte
	Exists       bool
	Cancelled    bool
	RemainingIn  *big.Int
	ReceivedOut  *big.Int
	PendingOwner string
}

// Open reports whether the intent is still open on the hub settlement
// contract, i.e. it exists, is not cancelled and has input left to fill.
func (f *FilledIntent) Open() bool {
	return f.Exists && !f.Cancelled && f.RemainingIn != nil && f.RemainingIn.Sign() > 0
}

package types

import "math/big"

// MaxPartnerFeeBps is the hard cap for percentage partner fees: 100 basis
// points (1%). Configurations above the cap are rejected, never clamped.
const MaxPartnerFeeBps = 100

// PartnerFee is a config-time fee taken from the input amount before the
// intent is constructed. It is either a fixed amount or a percentage,
// never both.
type PartnerFee interface {
	// Recipient returns the hub-chain address the fee is routed to.
	Recipient() string
}

// PartnerFeeFixed charges a fixed amount in the input asset's hub base units.
// The charged fee is capped at the input amount.
type PartnerFeeFixed struct {
	Address string
	Amount  *big.Int
}

// Recipient returns the fee recipient address.
func (f PartnerFeeFixed) Recipient() string { return f.Address }

// PartnerFeePercentage charges a percentage of the input amount, expressed
// in basis points. Values above MaxPartnerFeeBps are invalid.
type PartnerFeePercentage struct {
	Address    string
	Percentage uint64
}

// Recipient returns the fee recipient address.
func (f PartnerFeePercentage) Recipient() string { return f.Address }

package types

// ChainFamily represents supported spoke chain families.
type ChainFamily string

const (
	// EVM represents generic Ethereum Virtual Machine based spoke chains (e.g. Ethereum, Arbitrum, Base, etc.)
	EVM ChainFamily = "EVM"
	// SONIC represents the hub-native EVM chain. Intents originating here settle without a relay hop.
	SONIC ChainFamily = "SONIC"
	// BITCOIN represents Bitcoin and Bitcoin-family chains.
	BITCOIN ChainFamily = "BITCOIN"
	// SOLANA represents Solana chain.
	SOLANA ChainFamily = "SOLANA"
	// STELLAR represents Stellar chain.
	STELLAR ChainFamily = "STELLAR"
	// SUI represents Sui chain.
	SUI ChainFamily = "SUI"
	// INJECTIVE represents Injective chain.
	INJECTIVE ChainFamily = "INJECTIVE"
	// ICON represents Icon chain.
	ICON ChainFamily = "ICON"
	// STACKS represents Stacks chain.
	STACKS ChainFamily = "STACKS"
	// UNKNOWN represents unknown or unsupported chain family in the system.
	UNKNOWN ChainFamily = "UNKNOWN"
)

// String converts ChainFamily to string representation.
func (f ChainFamily) String() string {
	return string(f)
}

// ParseChainFamily converts string to ChainFamily representation.
func ParseChainFamily(s string) ChainFamily {
	switch s {
	case EVM.String():
		return EVM
	case SONIC.String():
		return SONIC
	case BITCOIN.String():
		return BITCOIN
	case SOLANA.String():
		return SOLANA
	case STELLAR.String():
		return STELLAR
	case SUI.String():
		return SUI
	case INJECTIVE.String():
		return INJECTIVE
	case ICON.String():
		return ICON
	case STACKS.String():
		return STACKS
	default:
		return UNKNOWN
	}
}

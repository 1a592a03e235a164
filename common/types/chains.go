package types

// ChainInfo describes one chain known to the protocol.
//
// Fields:
// - Name: human readable chain name.
// - Family: the chain family the chain belongs to.
// - NativeID: the chain's own identifier (EVM chain id, Solana genesis alias, etc).
// - RelayID: the canonical identifier used in relay-network messages.
//
// NativeID and RelayID are distinct numbering spaces. Every cross-chain
// message uses the relay id; native ids never appear on the wire.
type ChainInfo struct {
	Name     string
	Family   ChainFamily
	NativeID uint64
	RelayID  uint64
}

// Relay chain identifiers for the supported chains.
const (
	RelayIDSonic     uint64 = 1
	RelayIDEthereum  uint64 = 2
	RelayIDArbitrum  uint64 = 3
	RelayIDBase      uint64 = 4
	RelayIDOptimism  uint64 = 5
	RelayIDAvalanche uint64 = 6
	RelayIDPolygon   uint64 = 7
	RelayIDBSC       uint64 = 8
	RelayIDBitcoin   uint64 = 9
	RelayIDSolana    uint64 = 10
	RelayIDStellar   uint64 = 11
	RelayIDSui       uint64 = 12
	RelayIDInjective uint64 = 13
	RelayIDIcon      uint64 = 14
	RelayIDStacks    uint64 = 15
)

// supportedChains is the static table of chains known to the protocol.
// Non-EVM chains have no meaningful native numeric id and carry NativeID 0;
// they are addressed by relay id only.
var supportedChains = []ChainInfo{
	{Name: "sonic", Family: SONIC, NativeID: 146, RelayID: RelayIDSonic},
	{Name: "ethereum", Family: EVM, NativeID: 1, RelayID: RelayIDEthereum},
	{Name: "arbitrum", Family: EVM, NativeID: 42161, RelayID: RelayIDArbitrum},
	{Name: "base", Family: EVM, NativeID: 8453, RelayID: RelayIDBase},
	{Name: "optimism", Family: EVM, NativeID: 10, RelayID: RelayIDOptimism},
	{Name: "avalanche", Family: EVM, NativeID: 43114, RelayID: RelayIDAvalanche},
	{Name: "polygon", Family: EVM, NativeID: 137, RelayID: RelayIDPolygon},
	{Name: "bsc", Family: EVM, NativeID: 56, RelayID: RelayIDBSC},
	{Name: "bitcoin", Family: BITCOIN, NativeID: 0, RelayID: RelayIDBitcoin},
	{Name: "solana", Family: SOLANA, NativeID: 0, RelayID: RelayIDSolana},
	{Name: "stellar", Family: STELLAR, NativeID: 0, RelayID: RelayIDStellar},
	{Name: "sui", Family: SUI, NativeID: 0, RelayID: RelayIDSui},
	{Name: "injective", Family: INJECTIVE, NativeID: 0, RelayID: RelayIDInjective},
	{Name: "icon", Family: ICON, NativeID: 0, RelayID: RelayIDIcon},
	{Name: "stacks", Family: STACKS, NativeID: 0, RelayID: RelayIDStacks},
}

// HubRelayID is the relay id of the hub settlement chain.
const HubRelayID = RelayIDSonic

// ChainByRelayID returns the chain info for the given relay id.
//
// Returns:
// - ChainInfo: the chain info.
// - bool: false if the relay id is unknown.
func ChainByRelayID(relayID uint64) (ChainInfo, bool) {
	for _, c := range supportedChains {
		if c.RelayID == relayID {
			return c, true
		}
	}
	return ChainInfo{}, false
}

// ChainByNativeID returns the chain info for the given native chain id.
// Only meaningful for EVM-family chains, which are the only ones with
// native numeric ids.
func ChainByNativeID(nativeID uint64) (ChainInfo, bool) {
	if nativeID == 0 {
		return ChainInfo{}, false
	}
	for _, c := range supportedChains {
		if c.NativeID == nativeID {
			return c, true
		}
	}
	return ChainInfo{}, false
}

// ChainByName returns the chain info for the given chain name.
func ChainByName(name string) (ChainInfo, bool) {
	for _, c := range supportedChains {
		if c.Name == name {
			return c, true
		}
	}
	return ChainInfo{}, false
}

// FamilyByRelayID returns the chain family for the given relay id,
// or UNKNOWN if the relay id is not in the table.
func FamilyByRelayID(relayID uint64) ChainFamily {
	if c, ok := ChainByRelayID(relayID); ok {
		return c.Family
	}
	return UNKNOWN
}

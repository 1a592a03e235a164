package types

// PacketStatus represents the relay-network status of a delivery packet.
type PacketStatus string

const (
	// PacketPending indicates the relay network has seen the source transaction
	// but has not delivered it yet.
	PacketPending PacketStatus = "pending"
	// PacketExecuted indicates the payload was delivered and executed on the
	// destination chain. Terminal.
	PacketExecuted PacketStatus = "executed"
	// PacketFailed indicates the relay network confirms the payload did not
	// execute. Terminal, and distinct from a timeout (unknown outcome).
	PacketFailed PacketStatus = "failed"
)

// Terminal reports whether the status is final. A terminal packet is never
// mutated again by the relay network.
func (s PacketStatus) Terminal() bool {
	return s == PacketExecuted || s == PacketFailed
}

// PacketData is a relay-network delivery record. It is created by the relay
// network when it observes the spoke transaction and mutated only by the
// relay network.
type PacketData struct {
	SrcChainID uint64       `json:"src_chain_id"`
	DstChainID uint64       `json:"dst_chain_id"`
	SrcTxHash  string       `json:"src_tx_hash"`
	DstTxHash  string       `json:"dst_tx_hash"`
	Status     PacketStatus `json:"status"`
	Signatures []string     `json:"signatures"`
	Payload    string       `json:"payload"`
}

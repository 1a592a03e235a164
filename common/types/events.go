package types

// SettlementEvent is emitted by the settlement service on every state
// transition of an intent's lifecycle.
//
// Fields:
// - IntentID: decimal string of the intent's 256-bit identifier.
// - From: the state the intent left.
// - To: the state the intent entered.
// - TxHash: the spoke tx hash, once known.
// - Err: the error that drove a transition into FAILED, nil otherwise.
type SettlementEvent struct {
	IntentID string
	From     IntentState
	To       IntentState
	TxHash   string
	Err      error
}

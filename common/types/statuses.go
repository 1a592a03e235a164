package types

// IntentState is the state of one intent's settlement lifecycle.
// Transitions are strictly sequential within one intent; independent
// intents advance concurrently without shared state.
type IntentState string

const (
	// StateBuilt is the initial state: the intent record exists locally.
	StateBuilt IntentState = "BUILT"
	// StateSigned means the creation transaction has been signed by the
	// spoke provider's wallet.
	StateSigned IntentState = "SIGNED"
	// StateSubmitted means the signed transaction was broadcast to the
	// spoke chain (or directly to the hub for hub-native sources).
	StateSubmitted IntentState = "SUBMITTED"
	// StateRelaying means the spoke tx hash was accepted by the relay
	// backend and delivery is being awaited.
	StateRelaying IntentState = "RELAYING"
	// StateExecuted means the relay packet executed on the hub. Terminal.
	StateExecuted IntentState = "EXECUTED"
	// StateCancelled means the intent was cancelled on the hub. Terminal.
	StateCancelled IntentState = "CANCELLED"
	// StateFailed means a terminal relay failure or timeout. Terminal.
	StateFailed IntentState = "FAILED"
)

// validTransitions encodes the settlement state machine.
var validTransitions = map[IntentState][]IntentState{
	StateBuilt:     {StateSigned},
	StateSigned:    {StateSubmitted},
	StateSubmitted: {StateRelaying, StateExecuted, StateFailed},
	StateRelaying:  {StateExecuted, StateFailed},
	StateExecuted:  {StateCancelled},
}

// CanTransition reports whether moving from one state to another is legal.
// SUBMITTED may move straight to EXECUTED for hub-native sources where the
// relay hop is skipped; EXECUTED may move to CANCELLED when the created
// intent is cancelled on the hub before being filled.
func CanTransition(from, to IntentState) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal reports whether the state admits no further transitions
// within the same state machine instance.
func (s IntentState) Terminal() bool {
	return s == StateCancelled || s == StateFailed
}

// TransactionStatus represents the confirmation status of a spoke transaction.
type TransactionStatus int

const (
	// TxStatusFailed indicates the transaction reverted or was dropped.
	TxStatusFailed TransactionStatus = iota
	// TxStatusConfirmed indicates the transaction is confirmed.
	TxStatusConfirmed
	// TxNeedsRetry indicates the confirmation could not be determined and
	// the watch should be retried.
	TxNeedsRetry
)

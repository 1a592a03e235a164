package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	t.Run("forward path", func(t *testing.T) {
		path := []IntentState{StateBuilt, StateSigned, StateSubmitted, StateRelaying, StateExecuted}
		for i := 0; i < len(path)-1; i++ {
			assert.True(t, CanTransition(path[i], path[i+1]), "%s -> %s", path[i], path[i+1])
		}
	})

	t.Run("hub fast path skips relaying", func(t *testing.T) {
		assert.True(t, CanTransition(StateSubmitted, StateExecuted))
	})

	t.Run("executed intents can still be cancelled", func(t *testing.T) {
		assert.True(t, CanTransition(StateExecuted, StateCancelled))
	})

	t.Run("failures only after broadcast", func(t *testing.T) {
		assert.True(t, CanTransition(StateSubmitted, StateFailed))
		assert.True(t, CanTransition(StateRelaying, StateFailed))
		assert.False(t, CanTransition(StateBuilt, StateFailed))
		assert.False(t, CanTransition(StateSigned, StateFailed))
	})

	t.Run("no skipping or rewinding", func(t *testing.T) {
		assert.False(t, CanTransition(StateBuilt, StateSubmitted))
		assert.False(t, CanTransition(StateSigned, StateRelaying))
		assert.False(t, CanTransition(StateRelaying, StateSubmitted))
		assert.False(t, CanTransition(StateExecuted, StateRelaying))
	})

	t.Run("terminal states are dead ends", func(t *testing.T) {
		for _, from := range []IntentState{StateCancelled, StateFailed} {
			for _, to := range []IntentState{StateBuilt, StateSigned, StateSubmitted, StateRelaying, StateExecuted, StateCancelled, StateFailed} {
				assert.False(t, CanTransition(from, to), "%s -> %s", from, to)
			}
		}
	})
}

func TestTerminal(t *testing.T) {
	assert.True(t, StateCancelled.Terminal())
	assert.True(t, StateFailed.Terminal())

	// EXECUTED still admits cancellation, so it is not terminal.
	assert.False(t, StateExecuted.Terminal())
	assert.False(t, StateBuilt.Terminal())
	assert.False(t, StateRelaying.Terminal())
}

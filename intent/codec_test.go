package intent

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackFillIntent(t *testing.T) {
	built, _, _, err := BuildIntent(testParams(), testCreator, nil, testRegistry())
	require.NoError(t, err)

	fillID := [32]byte{0x01, 0x02, 0x03}
	inputAmount := big.NewInt(500_000)
	outputAmount := big.NewInt(480)

	data, err := PackFillIntent(built, inputAmount, outputAmount, fillID)
	require.NoError(t, err)

	parsed, err := settlementABI()
	require.NoError(t, err)
	method := parsed.Methods["fillIntent"]

	require.Greater(t, len(data), 4)
	assert.Equal(t, method.ID, data[:4])

	values, err := method.Inputs.Unpack(data[4:])
	require.NoError(t, err)
	require.Len(t, values, 4)

	gotInput, ok := values[1].(*big.Int)
	require.True(t, ok)
	assert.Equal(t, inputAmount, gotInput)

	gotOutput, ok := values[2].(*big.Int)
	require.True(t, ok)
	assert.Equal(t, outputAmount, gotOutput)

	gotFillID, ok := values[3].([32]byte)
	require.True(t, ok)
	assert.Equal(t, fillID, gotFillID)
}

package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeighborsCommand(t *testing.T) {
	t.Run("corner square has two moves", func(t *testing.T) {
		out, err := executeCommand(t, "neighbors", "A1")
		require.NoError(t, err)
		assert.Equal(t, "B3 C2\n", out)
	})

	t.Run("center square has eight moves in fixed order", func(t *testing.T) {
		out, err := executeCommand(t, "neighbors", "D4")
		require.NoError(t, err)
		assert.Equal(t, "C6 E6 B5 F5 B3 F3 C2 E2\n", out)
	})

	t.Run("lowercase input is accepted", func(t *testing.T) {
		upper, err := executeCommand(t, "neighbors", "A1")
		require.NoError(t, err)

		lower, err := executeCommand(t, "neighbors", "a1")
		require.NoError(t, err)

		assert.Equal(t, upper, lower)
	})

	t.Run("json output names the square", func(t *testing.T) {
		out, err := executeCommand(t, "neighbors", "H8", "--output=json")
		require.NoError(t, err)

		var result struct {
			Square    string   `json:"square"`
			Neighbors []string `json:"neighbors"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.Equal(t, "H8", result.Square)
		assert.Equal(t, []string{"F7", "G6"}, result.Neighbors)
	})

	t.Run("invalid square is rejected", func(t *testing.T) {
		out, err := executeCommand(t, "neighbors", "J9")
		assert.Error(t, err)
		assert.Empty(t, out)
	})

	t.Run("wrong argument count is rejected", func(t *testing.T) {
		_, err := executeCommand(t, "neighbors")
		assert.Error(t, err)
	})
}

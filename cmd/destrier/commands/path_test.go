package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakmoor/destrier/internal/testutil"
)

func TestPathCommand_Solving(t *testing.T) {
	t.Run("solves a known query", func(t *testing.T) {
		out, err := executeCommand(t, "path", "D4", "G8")
		require.NoError(t, err)
		assert.Equal(t, "D4 C6 E7 G8\n", out)
	})

	t.Run("start equals goal is a zero-move path", func(t *testing.T) {
		out, err := executeCommand(t, "path", "A1", "A1")
		require.NoError(t, err)
		assert.Equal(t, "A1\n", out)
	})

	t.Run("lowercase squares are accepted", func(t *testing.T) {
		out, err := executeCommand(t, "path", "d4", "g8")
		require.NoError(t, err)
		assert.Equal(t, "D4 C6 E7 G8\n", out)
	})

	t.Run("adjacent squares take three moves", func(t *testing.T) {
		out, err := executeCommand(t, "path", "A1", "B1")
		require.NoError(t, err)

		squares := splitPathLine(out)
		require.Len(t, squares, 4)
		assert.Equal(t, "A1", squares[0])
		assert.Equal(t, "B1", squares[3])
	})

	t.Run("repeated runs give identical output", func(t *testing.T) {
		first, err := executeCommand(t, "path", "A1", "H8")
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			out, err := executeCommand(t, "path", "A1", "H8")
			require.NoError(t, err)
			assert.Equal(t, first, out)
		}
	})
}

func TestPathCommand_JSONOutput(t *testing.T) {
	out, err := executeCommand(t, "path", "D4", "G8", "--output=json")
	require.NoError(t, err)

	var result pathJSON
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "D4", result.Start)
	assert.Equal(t, "G8", result.Goal)
	assert.Equal(t, 3, result.Moves)
	assert.Equal(t, []string{"D4", "C6", "E7", "G8"}, result.Path)
}

func TestPathCommand_Failures(t *testing.T) {
	t.Run("invalid square produces no path output", func(t *testing.T) {
		out, err := executeCommand(t, "path", "Z9", "A1")
		assert.Error(t, err)
		assert.Empty(t, out)
	})

	t.Run("invalid rank produces no path output", func(t *testing.T) {
		out, err := executeCommand(t, "path", "A0", "D4")
		assert.Error(t, err)
		assert.Empty(t, out)
	})

	t.Run("wrong argument count is rejected", func(t *testing.T) {
		_, err := executeCommand(t, "path", "D4")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "accepts 2 arg(s)")
	})

	t.Run("invalid output format is rejected", func(t *testing.T) {
		out, err := executeCommand(t, "path", "D4", "G8", "--output=xml")
		assert.Error(t, err)
		assert.Empty(t, out)
	})
}

func TestPathCommand_ConfigDefaults(t *testing.T) {
	t.Run("configured json format applies without a flag", func(t *testing.T) {
		cfgPath := testutil.WriteConfig(t, t.TempDir(), "version: \"1.0\"\noutput:\n  format: json\n")

		out, err := executeCommand(t, "path", "D4", "G8", "--config", cfgPath)
		require.NoError(t, err)

		var result pathJSON
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.Equal(t, 3, result.Moves)
	})

	t.Run("explicitly named config must exist", func(t *testing.T) {
		_, err := executeCommand(t, "path", "D4", "G8", "--config", "/nonexistent/destrier.yml")
		assert.Error(t, err)
	})

	t.Run("broken config is rejected", func(t *testing.T) {
		cfgPath := testutil.WriteConfig(t, t.TempDir(), "version: \"9.9\"\n")

		_, err := executeCommand(t, "path", "D4", "G8", "--config", cfgPath)
		assert.Error(t, err)
	})
}

func TestPathCommand_Journaling(t *testing.T) {
	ctx := context.Background()

	t.Run("enabled history records the solve", func(t *testing.T) {
		store, mr := testutil.NewStore(t, "cmd-path", 0)
		cfgPath := testutil.WriteConfig(t, t.TempDir(), testutil.JournalConfigYML(mr.Addr(), "cmd-path"))

		out, err := executeCommand(t, "path", "D4", "G8", "--config", cfgPath)
		require.NoError(t, err)
		assert.Equal(t, "D4 C6 E7 G8\n", out)

		entries, err := store.Recent(ctx, 0, 0, 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "D4", entries[0].Start)
		assert.Equal(t, "G8", entries[0].Goal)
		assert.Equal(t, 3, entries[0].Moves)
	})

	t.Run("--save journals even when history is disabled", func(t *testing.T) {
		store, mr := testutil.NewStore(t, "cmd-path-save", 0)
		cfg := fmt.Sprintf("version: \"1.0\"\nhistory:\n  enabled: false\n  redis_url: \"redis://%s/0\"\n  profile: \"cmd-path-save\"\n", mr.Addr())
		cfgPath := testutil.WriteConfig(t, t.TempDir(), cfg)

		_, err := executeCommand(t, "path", "A1", "H8", "--save", "--config", cfgPath)
		require.NoError(t, err)

		entries, err := store.Recent(ctx, 0, 0, 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, 6, entries[0].Moves)
	})

	t.Run("--no-save wins over enabled history", func(t *testing.T) {
		store, mr := testutil.NewStore(t, "cmd-path-nosave", 0)
		cfgPath := testutil.WriteConfig(t, t.TempDir(), testutil.JournalConfigYML(mr.Addr(), "cmd-path-nosave"))

		out, err := executeCommand(t, "path", "D4", "G8", "--no-save", "--config", cfgPath)
		require.NoError(t, err)
		assert.Equal(t, "D4 C6 E7 G8\n", out)

		entries, err := store.Recent(ctx, 0, 0, 0)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("unreachable journal degrades to a warning", func(t *testing.T) {
		// Port 1 is never a Redis; the solve must still print.
		cfg := "version: \"1.0\"\nhistory:\n  enabled: true\n  redis_url: \"redis://127.0.0.1:1/0\"\n  profile: \"cmd-path-degraded\"\n"
		cfgPath := testutil.WriteConfig(t, t.TempDir(), cfg)

		out, err := executeCommand(t, "path", "D4", "G8", "--config", cfgPath)
		require.NoError(t, err)
		assert.Equal(t, "D4 C6 E7 G8\n", out)
	})
}

package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand_InlineProgram(t *testing.T) {
	out, err := executeCommand(t, "parse", "x * x; x <- 0..10")
	require.NoError(t, err)
	assert.Contains(t, out, `"kind": "comprehension"`)
	assert.Contains(t, out, `"kind": "generator"`)
	assert.Contains(t, out, `"op": "*"`)
}

func TestParseCommand_ProgramFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "squares.comp")
	require.NoError(t, os.WriteFile(path, []byte("x * x; x <- [1, 2]\n"), 0o644))

	out, err := executeCommand(t, "parse", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"kind": "list"`)
}

func TestParseCommand_JSONFormat(t *testing.T) {
	out, err := executeCommand(t, "--format", "json", "parse", "1;")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "comprehension", data["kind"])
}

func TestParseCommand_ParseError(t *testing.T) {
	out, err := executeCommand(t, "parse", "x; x <- ")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "E_PARSE")
}

func TestLoadProgram_TrimsFileWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.comp")
	require.NoError(t, os.WriteFile(path, []byte("  1;  \n\n"), 0o644))

	src, err := loadProgram(path)
	require.NoError(t, err)
	assert.Equal(t, "1;", src)
}

func TestParseBinding(t *testing.T) {
	testCases := []struct {
		arg      string
		wantName string
		want     any
	}{
		{"n=42", "n", int64(42)},
		{"f=2.5", "f", 2.5},
		{"b=true", "b", true},
		{"s=hello", "s", "hello"},
		{"eq=a=b", "eq", "a=b"},
	}

	for _, tc := range testCases {
		t.Run(tc.arg, func(t *testing.T) {
			name, v, err := parseBinding(tc.arg)
			require.NoError(t, err)
			assert.Equal(t, tc.wantName, name)
			assert.Equal(t, tc.want, v)
		})
	}

	_, _, err := parseBinding("novalue")
	require.Error(t, err)
	_, _, err = parseBinding("=5")
	require.Error(t, err)
}

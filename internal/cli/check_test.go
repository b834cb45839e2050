package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCommand_Valid(t *testing.T) {
	out, err := executeCommand(t, "check", "x * x; x <- 0..10")
	require.NoError(t, err)
	assert.Contains(t, out, "ok")
}

func TestCheckCommand_DeclaredSymbols(t *testing.T) {
	_, err := executeCommand(t, "check", "x * n; x <- 0..10", "--var", "n")
	require.NoError(t, err)

	_, err = executeCommand(t, "check", "1; i <- 1.., gcd(i, 2) == 1", "--func", "gcd")
	require.NoError(t, err)
}

func TestCheckCommand_UndefinedVariable(t *testing.T) {
	out, err := executeCommand(t, "check", "x * n; x <- 0..10")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, `undefined variable "n"`)
	assert.Contains(t, out, "[E101]")
}

func TestCheckCommand_ReportsAllErrors(t *testing.T) {
	out, err := executeCommand(t, "check", "a + b; ")
	require.Error(t, err)
	assert.Contains(t, out, `undefined variable "a"`)
	assert.Contains(t, out, `undefined variable "b"`)
}

func TestCheckCommand_ParseError(t *testing.T) {
	out, err := executeCommand(t, "check", "x; let = 2")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "E_PARSE")
}

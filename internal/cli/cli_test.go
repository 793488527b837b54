package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// run executes the root command with args and returns stdout, stderr and the error.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.Equal(t, "safemath", cmd.Use)

	for _, name := range []string{"eval", "kinds", "batch"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		require.Equal(t, name, sub.Name())
	}

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	require.Equal(t, "text", formatFlag.DefValue)

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	require.Equal(t, "v", verboseFlag.Shorthand)
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := run(t, "", "kinds", "--format", "yaml")
	require.ErrorContains(t, err, `invalid format "yaml"`)
	require.Equal(t, ExitCommandError, GetExitCode(err))
	require.False(t, IsReported(err))
}

func TestGetExitCode(t *testing.T) {
	require.Equal(t, ExitSuccess, GetExitCode(nil))
	require.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, "aborted")))
	require.Equal(t, ExitCommandError, GetExitCode(bytes.ErrTooLarge))
}

package ledgerdash_test

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/manifest-network/ledgerdash/cmd/ledgerdash"
	"github.com/manifest-network/ledgerdash/internal/testutil"
)

func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	_, err = root.ExecuteC()
	return buf.String(), err
}

func TestRootCmd(t *testing.T) {
	// Show help
	output, err := executeCommand(ledgerdash.RootCmd)
	assert.NoError(t, err)
	assert.Contains(t, output, "ledgerdash polls a set of ledger nodes for their chain, balance and address, and submits transfers between them.")

	// Test invalid logLevel
	_, err = executeCommand(ledgerdash.RootCmd, "version", "--logLevel", "invalid")
	assert.Error(t, err)
	assert.ErrorContains(t, err, "invalid log level: invalid. Valid log levels are: debug|error|info|warn")
}

func TestVersionCmd(t *testing.T) {
	out, err := testutil.Execute(t, ledgerdash.RootCmd, "version", "--logLevel", "error")
	assert.NoError(t, err)
	assert.Contains(t, out, "ledgerdash dev")
}

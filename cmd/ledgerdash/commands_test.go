package ledgerdash_test

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manifest-network/ledgerdash/cmd/ledgerdash"
	"github.com/manifest-network/ledgerdash/internal/output"
	"github.com/manifest-network/ledgerdash/internal/testutil"
)

// Peer URLs and the journal are passed through the environment so that flag
// state does not leak between commands run in the same process.
func setupLedger(t *testing.T) []*testutil.LedgerNode {
	t.Helper()
	nodes := testutil.NewLedger(t, "0xA", "0xB", "0xC")
	t.Setenv("LEDGERDASH_PEER_URL", testutil.PeerURLs(nodes))
	t.Setenv("LEDGERDASH_JOURNAL", "")
	return nodes
}

func TestRefreshCmd(t *testing.T) {
	setupLedger(t)

	out, err := testutil.Execute(t, ledgerdash.RootCmd, "refresh", "--logLevel", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "== Node1")
	assert.Contains(t, out, "== Node3")
	assert.Contains(t, out, "Address: 0xA")
	assert.Contains(t, out, "Address: 0xC")
	assert.Contains(t, out, "Balance:100")
	assert.Contains(t, out, "Genesis")
	assert.Contains(t, out, "- tx12345")
}

func TestRefreshCmdFailedNode(t *testing.T) {
	nodes := setupLedger(t)
	nodes[1].SetStatus(http.StatusInternalServerError)

	out, err := testutil.Execute(t, ledgerdash.RootCmd, "refresh", "--logLevel", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "Failed to fetch blockchain.")
	assert.Contains(t, out, "Failed to fetch address.")
}

func TestTransferAndJournalCmd(t *testing.T) {
	nodes := setupLedger(t)
	t.Setenv("LEDGERDASH_JOURNAL", "sqlite://"+filepath.Join(t.TempDir(), "journal.db"))

	out, err := testutil.Execute(t, ledgerdash.RootCmd, "transfer", "0", "Node3", "5", "--logLevel", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "Transaction accepted")
	assert.Equal(t, []string{"0xC/5"}, nodes[0].Transactions())

	out, err = testutil.Execute(t, ledgerdash.RootCmd, "transfer", "1", "0xA", "7", "--logLevel", "error")
	require.NoError(t, err)
	assert.Equal(t, []string{"0xA/7"}, nodes[1].Transactions())

	out, err = testutil.Execute(t, ledgerdash.RootCmd, "journal", "--logLevel", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "PAYEE")
	assert.Contains(t, out, "0xC")
	assert.Contains(t, out, "Node2")

	exportDir := filepath.Join(t.TempDir(), "export")
	_, err = testutil.Execute(t, ledgerdash.RootCmd, "journal", "export", "tsv", exportDir, "--logLevel", "error")
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(exportDir, output.TransfersTSV))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimRight(string(data), "\n"), "\n"), 3)

	_, err = testutil.Execute(t, ledgerdash.RootCmd, "journal", "export", "xml", exportDir, "--logLevel", "error")
	assert.ErrorContains(t, err, "unsupported export format")
}

func TestTransferCmdErrors(t *testing.T) {
	nodes := setupLedger(t)

	_, err := testutil.Execute(t, ledgerdash.RootCmd, "transfer", "x", "Node2", "5", "--logLevel", "error")
	assert.ErrorContains(t, err, "invalid node index")

	_, err = testutil.Execute(t, ledgerdash.RootCmd, "transfer", "9", "Node2", "5", "--logLevel", "error")
	assert.ErrorContains(t, err, "unknown peer")

	// A node never offers itself.
	_, err = testutil.Execute(t, ledgerdash.RootCmd, "transfer", "0", "Node1", "5", "--logLevel", "error")
	assert.ErrorContains(t, err, "payee is not offered")

	nodes[0].SetStatus(http.StatusInternalServerError)
	_, err = testutil.Execute(t, ledgerdash.RootCmd, "transfer", "0", "Node2", "5", "--logLevel", "error")
	assert.ErrorContains(t, err, "transfer failed with status 500")
	assert.Equal(t, []string{"0xB/5"}, nodes[0].Transactions())
}

func TestJournalCmdWithoutJournal(t *testing.T) {
	setupLedger(t)
	_, err := testutil.Execute(t, ledgerdash.RootCmd, "journal", "--logLevel", "error")
	assert.ErrorContains(t, err, "no journal configured")
}

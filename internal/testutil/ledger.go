package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// GenesisBlocks is a one-block chain as served by a ledger node.
const GenesisBlocks = `[{"hash":"aaaaaaa1","previousHash":"000000000","nonce":5,"signedTransaction":[{"transaction":{"hash":"tx1234567"}}]}]`

// LedgerNode is an in-process ledger node serving the read and transaction
// endpoints.
type LedgerNode struct {
	*httptest.Server

	mu           sync.Mutex
	blocks       string
	balance      string
	address      string
	status       int
	transactions []string
}

// NewLedgerNode starts a node with a genesis chain, a balance of 100 and the
// given address.
func NewLedgerNode(t *testing.T, address string) *LedgerNode {
	t.Helper()

	n := &LedgerNode{
		blocks:  GenesisBlocks,
		balance: "100",
		address: address,
		status:  http.StatusOK,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/blocks/", n.serve(func() string { return n.blocks }))
	mux.HandleFunc("GET /v1/balance/", n.serve(func() string { return n.balance }))
	mux.HandleFunc("GET /v1/address/", n.serve(func() string { return fmt.Sprintf("%q", n.address) }))
	mux.HandleFunc("GET /v1/transaction/{address}/{amount}", func(w http.ResponseWriter, r *http.Request) {
		n.mu.Lock()
		n.transactions = append(n.transactions, r.PathValue("address")+"/"+r.PathValue("amount"))
		status := n.status
		n.mu.Unlock()

		w.WriteHeader(status)
		_, _ = fmt.Fprint(w, "Transaction accepted")
	})

	n.Server = httptest.NewServer(mux)
	t.Cleanup(n.Close)
	return n
}

func (n *LedgerNode) serve(body func() string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		n.mu.Lock()
		defer n.mu.Unlock()
		w.WriteHeader(n.status)
		_, _ = fmt.Fprint(w, body())
	}
}

// SetStatus makes every endpoint answer with status.
func (n *LedgerNode) SetStatus(status int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.status = status
}

func (n *LedgerNode) SetBlocks(blocks string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.blocks = blocks
}

// Transactions returns the received transfers as "address/amount".
func (n *LedgerNode) Transactions() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.transactions...)
}

// NewLedger starts one node per address.
func NewLedger(t *testing.T, addresses ...string) []*LedgerNode {
	t.Helper()
	nodes := make([]*LedgerNode, len(addresses))
	for i, a := range addresses {
		nodes[i] = NewLedgerNode(t, a)
	}
	return nodes
}

// PeerURLs returns the base URLs of nodes, space separated as the
// LEDGERDASH_PEER_URL environment variable expects.
func PeerURLs(nodes []*LedgerNode) string {
	urls := make([]string, len(nodes))
	for i, n := range nodes {
		urls[i] = n.URL
	}
	return strings.Join(urls, " ")
}

// Package peers maps peer indices to ledger-node URLs and to the document
// containers bound to each peer.
package peers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	BlocksPath      = "/v1/blocks/"
	BalancePath     = "/v1/balance/"
	AddressPath     = "/v1/address/"
	TransactionPath = "/v1/transaction/"
)

// Peer is one ledger node. It is immutable for the lifetime of a registry.
type Peer struct {
	Index   int
	Port    int
	BaseURL string
}

// ID is the one-based number used in container ids and labels.
func (p Peer) ID() int {
	return p.Index + 1
}

func (p Peer) Name() string {
	return "Node" + strconv.Itoa(p.ID())
}

func (p Peer) BlocksURL() string  { return p.BaseURL + BlocksPath }
func (p Peer) BalanceURL() string { return p.BaseURL + BalancePath }
func (p Peer) AddressURL() string { return p.BaseURL + AddressPath }

// TransactionURL builds the write request for a transfer. The address and
// amount are forwarded as given; the node rejects malformed values.
func (p Peer) TransactionURL(address, amount string) string {
	return p.BaseURL + TransactionPath + url.PathEscape(address) + "/" + url.PathEscape(amount)
}

func (p Peer) BlocksID() string   { return fmt.Sprintf("blocks%d", p.ID()) }
func (p Peer) BalanceID() string  { return fmt.Sprintf("balance%d", p.ID()) }
func (p Peer) AddressID() string  { return fmt.Sprintf("address%d", p.ID()) }
func (p Peer) PayeeID() string    { return fmt.Sprintf("payee%d", p.Index) }
func (p Peer) AmountID() string   { return fmt.Sprintf("amount%d", p.Index) }
func (p Peer) TransferID() string { return fmt.Sprintf("transfer%d", p.Index) }

// Registry is the set of peers observed by the dashboard.
type Registry struct {
	peers []Peer
}

// NewRegistry creates count peers on host, with ports basePort+index.
func NewRegistry(host string, basePort, count int) (*Registry, error) {
	if count < 2 {
		return nil, fmt.Errorf("at least 2 peers are required, got %d", count)
	}
	if host == "" {
		return nil, fmt.Errorf("missing peer host")
	}
	if basePort <= 0 || basePort+count-1 > 65535 {
		return nil, fmt.Errorf("invalid base port %d for %d peers", basePort, count)
	}

	peers := make([]Peer, count)
	for i := range peers {
		port := basePort + i
		peers[i] = Peer{
			Index:   i,
			Port:    port,
			BaseURL: fmt.Sprintf("http://%s:%d", host, port),
		}
	}
	return &Registry{peers: peers}, nil
}

// NewRegistryFromURLs creates one peer per base URL, in the given order.
func NewRegistryFromURLs(urls []string) (*Registry, error) {
	if len(urls) < 2 {
		return nil, fmt.Errorf("at least 2 peers are required, got %d", len(urls))
	}

	peers := make([]Peer, len(urls))
	for i, raw := range urls {
		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid peer URL %q: %w", raw, err)
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid peer URL %q: missing scheme or host", raw)
		}

		port, err := portOf(u)
		if err != nil {
			return nil, fmt.Errorf("invalid peer URL %q: %w", raw, err)
		}

		peers[i] = Peer{
			Index:   i,
			Port:    port,
			BaseURL: strings.TrimRight(u.String(), "/"),
		}
	}
	return &Registry{peers: peers}, nil
}

func portOf(u *url.URL) (int, error) {
	if p := u.Port(); p != "" {
		return strconv.Atoi(p)
	}
	switch u.Scheme {
	case "https":
		return 443, nil
	default:
		return 80, nil
	}
}

// Peers returns the peers ordered by index.
func (r *Registry) Peers() []Peer {
	out := make([]Peer, len(r.peers))
	copy(out, r.peers)
	return out
}

func (r *Registry) Len() int {
	return len(r.peers)
}

func (r *Registry) Peer(index int) (Peer, bool) {
	if index < 0 || index >= len(r.peers) {
		return Peer{}, false
	}
	return r.peers[index], true
}

// Candidates returns every peer index other than index, ascending. These are
// the valid transfer destinations for index.
func (r *Registry) Candidates(index int) []int {
	out := make([]int, 0, len(r.peers))
	for _, p := range r.peers {
		if p.Index != index {
			out = append(out, p.Index)
		}
	}
	return out
}

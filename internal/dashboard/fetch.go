package dashboard

import (
	"context"
	"log/slog"

	"github.com/manifest-network/ledgerdash/internal/client"
	"github.com/manifest-network/ledgerdash/internal/dom"
	"github.com/manifest-network/ledgerdash/internal/peers"
	"github.com/manifest-network/ledgerdash/internal/render"
)

// FetchKind names one of the per-peer reads.
type FetchKind string

const (
	KindBlocks  FetchKind = "blocks"
	KindBalance FetchKind = "balance"
	KindAddress FetchKind = "address"
)

// FetchKinds lists the reads issued for every peer in a refresh cycle.
var FetchKinds = []FetchKind{KindBlocks, KindBalance, KindAddress}

type fetcher struct {
	kind   FetchKind
	url    func(peers.Peer) string
	render func(*Dashboard, peers.Peer, client.Result)
}

var fetchers = []fetcher{
	{kind: KindBlocks, url: peers.Peer.BlocksURL, render: (*Dashboard).renderBlocks},
	{kind: KindBalance, url: peers.Peer.BalanceURL, render: (*Dashboard).renderBalance},
	{kind: KindAddress, url: peers.Peer.AddressURL, render: (*Dashboard).renderAddress},
}

// fetch issues one read and renders its result on the loop, unless the
// peer's cycle has moved past token or ctx ended first.
func (d *Dashboard) fetch(ctx context.Context, p peers.Peer, f fetcher, token uint64) {
	res := d.client.Get(ctx, f.url(p))
	if ctx.Err() != nil {
		slog.Debug("Fetch abandoned", "peer", p.ID(), "kind", f.kind, "error", ctx.Err())
		return
	}

	// The render must not depend on ctx: a completed fetch is always either
	// rendered or discarded.
	_ = d.loop.do(context.Background(), func() {
		stale := d.state[p.Index].token != token
		for _, o := range d.observers {
			o.FetchCompleted(p, f.kind, res, stale)
		}
		if stale {
			slog.Debug("Discarding stale result", "peer", p.ID(), "kind", f.kind, "token", token, "current", d.state[p.Index].token)
			return
		}
		f.render(d, p, res)
	})
}

func (d *Dashboard) renderBlocks(p peers.Peer, res client.Result) {
	container := d.doc.MustGetElementByID(p.BlocksID())
	if !res.OK() {
		slog.Warn("Failed to fetch blockchain", "peer", p.ID(), "status", res.Status, "error", res.Err)
		dom.ReplaceOrAppend(container, render.BlocksFailed())
		return
	}

	blocks, err := render.ParseBlocks(res.Text)
	if err != nil {
		slog.Warn("Failed to decode blockchain", "peer", p.ID(), "error", err)
		dom.ReplaceOrAppend(container, render.BlocksFailed())
		return
	}

	slog.Debug("Got blocks", "peer", p.ID(), "count", len(blocks))
	dom.ReplaceOrAppend(container, render.LatestBlock(blocks))
}

func (d *Dashboard) renderBalance(p peers.Peer, res client.Result) {
	container := d.doc.MustGetElementByID(p.BalanceID())
	if !res.OK() {
		slog.Warn("Failed to fetch balance", "peer", p.ID(), "status", res.Status, "error", res.Err)
		dom.ReplaceOrAppend(container, render.BalanceFailed())
		return
	}
	dom.ReplaceOrAppend(container, render.Balance(res.Text))
}

func (d *Dashboard) renderAddress(p peers.Peer, res client.Result) {
	container := d.doc.MustGetElementByID(p.AddressID())
	previous := d.state[p.Index].address

	if res.OK() {
		address := render.Address(res.Text)
		d.state[p.Index].address = address
		dom.SetText(container, address)
	} else {
		slog.Warn("Failed to fetch address", "peer", p.ID(), "status", res.Status, "error", res.Err)
		d.state[p.Index].address = ""
		dom.SetText(container, render.AddressFailedText)
	}

	if d.state[p.Index].address != previous {
		d.loadAllOptions()
	}
}

// Package dashboard keeps the dashboard document in sync with the observed
// ledger nodes. A refresh cycle clears each peer's block view, rebuilds its
// payee options and fetches blocks, balance and address concurrently; every
// completion is rendered on a single loop goroutine, and completions from a
// superseded cycle are discarded.
package dashboard

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/manifest-network/ledgerdash/internal/client"
	"github.com/manifest-network/ledgerdash/internal/dom"
	"github.com/manifest-network/ledgerdash/internal/models"
	"github.com/manifest-network/ledgerdash/internal/peers"
	"github.com/manifest-network/ledgerdash/internal/render"
)

const (
	DefaultTitle          = "Ledger nodes"
	DefaultMaxConcurrency = 16
)

// TransferRecorder persists submitted transfers.
type TransferRecorder interface {
	Record(ctx context.Context, t *models.Transfer) error
}

type Option func(*Dashboard)

func WithObserver(o Observer) Option {
	return func(d *Dashboard) {
		d.observers = append(d.observers, o)
	}
}

func WithJournal(r TransferRecorder) Option {
	return func(d *Dashboard) {
		d.journal = r
	}
}

func WithMaxConcurrency(n int) Option {
	return func(d *Dashboard) {
		if n > 0 {
			d.maxConcurrency = n
		}
	}
}

func WithTitle(title string) Option {
	return func(d *Dashboard) {
		d.title = title
	}
}

// peerState is owned by the loop.
type peerState struct {
	token   uint64
	address string
}

type Dashboard struct {
	registry       *peers.Registry
	client         client.Getter
	doc            *dom.Document
	loop           *loop
	observers      []Observer
	journal        TransferRecorder
	maxConcurrency int
	title          string
	state          []peerState
}

// New builds the dashboard document for reg. Close must be called to stop
// the loop.
func New(reg *peers.Registry, getter client.Getter, opts ...Option) (*Dashboard, error) {
	d := &Dashboard{
		registry:       reg,
		client:         getter,
		maxConcurrency: DefaultMaxConcurrency,
		title:          DefaultTitle,
		state:          make([]peerState, reg.Len()),
	}
	for _, opt := range opts {
		opt(d)
	}

	doc, err := dom.NewDocument(d.title, reg)
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard document: %w", err)
	}
	d.doc = doc
	d.loop = newLoop()

	return d, nil
}

func (d *Dashboard) Close() {
	d.loop.close()
}

func (d *Dashboard) Registry() *peers.Registry {
	return d.registry
}

// Render writes the current document.
func (d *Dashboard) Render(ctx context.Context, w io.Writer) error {
	var renderErr error
	if err := d.loop.do(ctx, func() { renderErr = d.doc.Render(w) }); err != nil {
		return err
	}
	return renderErr
}

// Inspect runs fn against the document on the loop.
func (d *Dashboard) Inspect(ctx context.Context, fn func(doc *dom.Document)) error {
	return d.loop.do(ctx, func() { fn(d.doc) })
}

// RefreshAll runs one refresh cycle over every peer and returns once each
// fetch has been rendered or discarded. Fetch failures are rendered, not
// returned.
func (d *Dashboard) RefreshAll(ctx context.Context) error {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(d.maxConcurrency)

	for _, p := range d.registry.Peers() {
		if err := ctx.Err(); err != nil {
			_ = eg.Wait()
			return err
		}

		var token uint64
		if err := d.loop.do(ctx, func() { token = d.beginCycle(p) }); err != nil {
			_ = eg.Wait()
			return fmt.Errorf("failed to start refresh for %s: %w", p.Name(), err)
		}

		for _, f := range fetchers {
			eg.Go(func() error {
				d.fetch(egCtx, p, f, token)
				return nil
			})
		}
	}

	if err := eg.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Refresh starts RefreshAll in the background. The channel receives its
// result and is then closed.
func (d *Dashboard) Refresh(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- d.RefreshAll(ctx)
	}()
	return done
}

// beginCycle invalidates outstanding results for p, clears its block view
// and rebuilds its payee options.
func (d *Dashboard) beginCycle(p peers.Peer) uint64 {
	d.state[p.Index].token++
	token := d.state[p.Index].token

	dom.Clear(d.doc.MustGetElementByID(p.BlocksID()))
	d.loadOptions(p)

	slog.Debug("Refresh cycle started", "peer", p.ID(), "token", token)
	for _, o := range d.observers {
		o.CycleStarted(p, token)
	}
	return token
}

func (d *Dashboard) knownAddresses() map[int]string {
	out := make(map[int]string, len(d.state))
	for i, s := range d.state {
		out[i] = s.address
	}
	return out
}

func (d *Dashboard) loadOptions(p peers.Peer) {
	opts := render.PayeeOptions(p.Index, d.registry.Candidates(p.Index), d.knownAddresses())
	render.LoadOptions(d.doc.MustGetElementByID(p.PayeeID()), opts)
}

func (d *Dashboard) loadAllOptions() {
	for _, p := range d.registry.Peers() {
		d.loadOptions(p)
	}
}

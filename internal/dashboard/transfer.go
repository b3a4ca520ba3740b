package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/manifest-network/ledgerdash/internal/dom"
	"github.com/manifest-network/ledgerdash/internal/models"
	"github.com/manifest-network/ledgerdash/internal/peers"
	"github.com/manifest-network/ledgerdash/internal/render"
)

var (
	ErrUnknownPeer  = errors.New("unknown peer")
	ErrUnknownPayee = errors.New("payee is not offered")
)

// Event is the form submission that triggers a transfer.
type Event struct {
	Type             string
	defaultPrevented bool
}

func NewSubmitEvent() *Event {
	return &Event{Type: "submit"}
}

// PreventDefault stops the default form navigation.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

type transferRequest struct {
	peer   peers.Peer
	payee  string
	amount string
}

// SetForm fills the transfer form of peer index as an operator would: payee
// selects an offered option by address or label, amount is typed verbatim.
// An empty payee keeps the current selection.
func (d *Dashboard) SetForm(ctx context.Context, index int, payee, amount string) error {
	p, ok := d.registry.Peer(index)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownPeer, index)
	}

	var formErr error
	err := d.loop.do(ctx, func() {
		if payee != "" && !dom.Select(d.doc.MustGetElementByID(p.PayeeID()), payee) {
			formErr = fmt.Errorf("%w: %q", ErrUnknownPayee, payee)
			return
		}
		dom.SetInputValue(d.doc.MustGetElementByID(p.AmountID()), amount)
	})
	if err != nil {
		return err
	}
	return formErr
}

// Submit handles a transfer form submission for peer index. It reads the
// form, sends the transfer in the background and returns whether the default
// navigation should proceed, which it never should.
func (d *Dashboard) Submit(ctx context.Context, index int, ev *Event) bool {
	ev.PreventDefault()

	req, err := d.readTransferForm(ctx, index)
	if err != nil {
		slog.Error("Failed to read transfer form", "peer", index+1, "error", err)
		return !ev.DefaultPrevented()
	}

	go d.send(context.WithoutCancel(ctx), req)
	return !ev.DefaultPrevented()
}

// Transfer submits the transfer form of peer index and waits for the
// outcome.
func (d *Dashboard) Transfer(ctx context.Context, index int) (*models.Transfer, error) {
	req, err := d.readTransferForm(ctx, index)
	if err != nil {
		return nil, err
	}
	return d.send(ctx, req), nil
}

func (d *Dashboard) readTransferForm(ctx context.Context, index int) (transferRequest, error) {
	p, ok := d.registry.Peer(index)
	if !ok {
		return transferRequest{}, fmt.Errorf("%w: %d", ErrUnknownPeer, index)
	}

	req := transferRequest{peer: p}
	err := d.loop.do(ctx, func() {
		if opt := dom.SelectedOption(d.doc.MustGetElementByID(p.PayeeID())); opt != nil {
			req.payee = dom.OptionValue(opt)
		}
		req.amount = dom.InputValue(d.doc.MustGetElementByID(p.AmountID()))
	})
	return req, err
}

func (d *Dashboard) send(ctx context.Context, req transferRequest) *models.Transfer {
	p := req.peer
	t := models.NewTransfer(p.Index, req.payee, req.amount)

	if req.payee == "" {
		slog.Warn("Failed transaction: no payee selected", "peer", p.ID())
		t.Response = "no payee selected"
		d.finishTransfer(ctx, p, t)
		return t
	}

	t.URL = p.TransactionURL(req.payee, req.amount)
	res := d.client.Get(ctx, t.URL)
	t.Status = res.Status
	t.OK = res.OK()
	t.Response = res.Text
	if res.Err != nil && t.Response == "" {
		t.Response = res.Err.Error()
	}

	if t.OK {
		slog.Info("Successful transaction", "peer", p.ID(), "payee", t.Payee, "amount", t.Amount, "response", res.Text)
	} else {
		slog.Warn("Failed transaction", "peer", p.ID(), "payee", t.Payee, "amount", t.Amount, "status", res.Status, "error", res.Err)
	}

	d.finishTransfer(ctx, p, t)
	return t
}

func (d *Dashboard) finishTransfer(ctx context.Context, p peers.Peer, t *models.Transfer) {
	if d.journal != nil {
		if err := d.journal.Record(ctx, t); err != nil {
			slog.Error("Failed to record transfer", "id", t.ID, "error", err)
		}
	}

	_ = d.loop.do(context.Background(), func() {
		dom.ReplaceOrAppend(d.doc.MustGetElementByID(p.TransferID()), render.TransferOutcome(t))
		for _, o := range d.observers {
			o.TransferCompleted(t)
		}
	})
}

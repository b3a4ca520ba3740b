package dashboard

import (
	"github.com/manifest-network/ledgerdash/internal/client"
	"github.com/manifest-network/ledgerdash/internal/models"
	"github.com/manifest-network/ledgerdash/internal/peers"
)

// Observer is notified of dashboard activity. Methods run on the dashboard
// loop and must not block.
type Observer interface {
	CycleStarted(p peers.Peer, token uint64)
	FetchCompleted(p peers.Peer, kind FetchKind, res client.Result, stale bool)
	TransferCompleted(t *models.Transfer)
}

// ObserverFuncs adapts optional functions to an Observer.
type ObserverFuncs struct {
	OnCycleStarted      func(p peers.Peer, token uint64)
	OnFetchCompleted    func(p peers.Peer, kind FetchKind, res client.Result, stale bool)
	OnTransferCompleted func(t *models.Transfer)
}

func (o ObserverFuncs) CycleStarted(p peers.Peer, token uint64) {
	if o.OnCycleStarted != nil {
		o.OnCycleStarted(p, token)
	}
}

func (o ObserverFuncs) FetchCompleted(p peers.Peer, kind FetchKind, res client.Result, stale bool) {
	if o.OnFetchCompleted != nil {
		o.OnFetchCompleted(p, kind, res, stale)
	}
}

func (o ObserverFuncs) TransferCompleted(t *models.Transfer) {
	if o.OnTransferCompleted != nil {
		o.OnTransferCompleted(t)
	}
}

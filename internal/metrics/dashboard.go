package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/manifest-network/ledgerdash/internal/client"
	"github.com/manifest-network/ledgerdash/internal/dashboard"
	"github.com/manifest-network/ledgerdash/internal/models"
	"github.com/manifest-network/ledgerdash/internal/peers"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeStale   = "stale"
)

// DashboardCollector counts dashboard activity. It is both a dashboard
// observer and a Prometheus collector.
type DashboardCollector struct {
	cycles    *prometheus.CounterVec
	fetches   *prometheus.CounterVec
	transfers *prometheus.CounterVec
}

var _ dashboard.Observer = (*DashboardCollector)(nil)

func NewDashboardCollector() *DashboardCollector {
	return &DashboardCollector{
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledgerdash",
			Subsystem: "refresh",
			Name:      "cycles_total",
			Help:      "Number of refresh cycles started per peer",
		}, []string{"peer"}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledgerdash",
			Subsystem: "refresh",
			Name:      "fetches_total",
			Help:      "Number of completed peer reads by kind and outcome",
		}, []string{"peer", "kind", "outcome"}),
		transfers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledgerdash",
			Subsystem: "transfer",
			Name:      "submitted_total",
			Help:      "Number of transfers submitted per origin peer and outcome",
		}, []string{"peer", "outcome"}),
	}
}

func (c *DashboardCollector) CycleStarted(p peers.Peer, _ uint64) {
	c.cycles.WithLabelValues(peerLabel(p)).Inc()
}

func (c *DashboardCollector) FetchCompleted(p peers.Peer, kind dashboard.FetchKind, res client.Result, stale bool) {
	outcome := OutcomeFailure
	switch {
	case stale:
		outcome = OutcomeStale
	case res.OK():
		outcome = OutcomeSuccess
	}
	c.fetches.WithLabelValues(peerLabel(p), string(kind), outcome).Inc()
}

func (c *DashboardCollector) TransferCompleted(t *models.Transfer) {
	outcome := OutcomeFailure
	if t.OK {
		outcome = OutcomeSuccess
	}
	c.transfers.WithLabelValues(strconv.Itoa(t.From+1), outcome).Inc()
}

func (c *DashboardCollector) Describe(ch chan<- *prometheus.Desc) {
	c.cycles.Describe(ch)
	c.fetches.Describe(ch)
	c.transfers.Describe(ch)
}

func (c *DashboardCollector) Collect(ch chan<- prometheus.Metric) {
	c.cycles.Collect(ch)
	c.fetches.Collect(ch)
	c.transfers.Collect(ch)
}

func peerLabel(p peers.Peer) string {
	return strconv.Itoa(p.ID())
}

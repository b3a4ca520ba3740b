package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/manifest-network/ledgerdash/internal/client"
	"github.com/manifest-network/ledgerdash/internal/dashboard"
	"github.com/manifest-network/ledgerdash/internal/metrics"
	"github.com/manifest-network/ledgerdash/internal/models"
	"github.com/manifest-network/ledgerdash/internal/peers"
)

func TestDashboardCollector(t *testing.T) {
	c := metrics.NewDashboardCollector()
	p := peers.Peer{Index: 0, Port: 8080, BaseURL: "http://localhost:8080"}

	c.CycleStarted(p, 1)
	c.CycleStarted(p, 2)
	c.FetchCompleted(p, dashboard.KindBlocks, client.Result{Status: 200}, false)
	c.FetchCompleted(p, dashboard.KindBalance, client.Result{Status: 500}, false)
	c.FetchCompleted(p, dashboard.KindBlocks, client.Result{Status: 200}, true)

	tr := models.NewTransfer(0, "0xB", "5")
	tr.OK = true
	c.TransferCompleted(tr)

	// cycles: 1 series, fetches: 3 series, transfers: 1 series.
	assert.Equal(t, 5, testutil.CollectAndCount(c))
	assert.Equal(t, 3, testutil.CollectAndCount(c, "ledgerdash_refresh_fetches_total"))
}

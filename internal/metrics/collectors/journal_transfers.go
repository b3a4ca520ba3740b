package collectors

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	JournalTransferCountQuery  = `SELECT COUNT(*) FROM transfers`
	JournalFailedTransferQuery = `SELECT COUNT(*) FROM transfers WHERE NOT ok`
)

// JournalTransfersCollector reports the journaled transfer totals.
// The query syntax is shared by the PostgreSQL and SQLite journals.
type JournalTransfersCollector struct {
	db     *sql.DB
	total  *prometheus.Desc
	failed *prometheus.Desc
}

func NewJournalTransfersCollector(db *sql.DB) *JournalTransfersCollector {
	return &JournalTransfersCollector{
		db: db,
		total: prometheus.NewDesc(
			prometheus.BuildFQName("ledgerdash", "journal", "transfers_total"),
			"Total number of journaled transfers",
			nil,
			prometheus.Labels{"source": "journal"},
		),
		failed: prometheus.NewDesc(
			prometheus.BuildFQName("ledgerdash", "journal", "failed_transfers_total"),
			"Number of journaled transfers that did not succeed",
			nil,
			prometheus.Labels{"source": "journal"},
		),
	}
}

func (c *JournalTransfersCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.total
	ch <- c.failed
}

func (c *JournalTransfersCollector) Collect(ch chan<- prometheus.Metric) {
	c.collectCount(ch, c.total, JournalTransferCountQuery)
	c.collectCount(ch, c.failed, JournalFailedTransferQuery)
}

func (c *JournalTransfersCollector) collectCount(ch chan<- prometheus.Metric, desc *prometheus.Desc, query string) {
	var count int64
	err := c.db.QueryRow(query).Scan(&count)
	if err != nil {
		ch <- prometheus.NewInvalidMetric(desc, err)
		return
	}

	ch <- prometheus.MustNewConstMetric(desc, prometheus.CounterValue, float64(count))
}

func init() {
	RegisterCollectorFactory(func(db *sql.DB) (prometheus.Collector, error) {
		return NewJournalTransfersCollector(db), nil
	})
}

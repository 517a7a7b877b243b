// Package metrics provides Prometheus metric collection for Quectel modems.
package metrics

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vjt/quectel-5g-tools/quectel"
	"github.com/vjt/quectel-5g-tools/radio"
)

// Poller supplies one radio snapshot per scrape. *quectel.Modem satisfies
// this interface.
type Poller interface {
	Poll(ctx context.Context) (*quectel.Snapshot, error)
}

// Collector implements prometheus.Collector for modem signal and cell
// topology metrics. Metrics are labeled by technology ("lte" or "nr").
type Collector struct {
	poller  Poller
	timeout time.Duration
	mu      sync.Mutex

	rsrpDesc *prometheus.Desc
	rsrqDesc *prometheus.Desc
	sinrDesc *prometheus.Desc
	rssiDesc *prometheus.Desc

	pciDesc       *prometheus.Desc
	bandDesc      *prometheus.Desc
	channelDesc   *prometheus.Desc
	frequencyDesc *prometheus.Desc
	tacDesc       *prometheus.Desc
	enbDesc       *prometheus.Desc

	carriersDesc   *prometheus.Desc
	neighboursDesc *prometheus.Desc

	scrapeSuccessDesc  *prometheus.Desc
	scrapeDurationDesc *prometheus.Desc
}

// NewCollector creates a Collector polling the given source. The timeout
// bounds one scrape's worth of modem commands.
func NewCollector(poller Poller, timeout time.Duration) *Collector {
	labels := []string{"tech"}

	return &Collector{
		poller:  poller,
		timeout: timeout,

		rsrpDesc: prometheus.NewDesc(
			"quectel_signal_rsrp_dbm",
			"Reference Signal Received Power in dBm",
			labels, nil,
		),
		rsrqDesc: prometheus.NewDesc(
			"quectel_signal_rsrq_db",
			"Reference Signal Received Quality in dB",
			labels, nil,
		),
		sinrDesc: prometheus.NewDesc(
			"quectel_signal_sinr_db",
			"Signal to Interference plus Noise Ratio in dB",
			labels, nil,
		),
		rssiDesc: prometheus.NewDesc(
			"quectel_signal_rssi_dbm",
			"Received Signal Strength Indicator in dBm",
			labels, nil,
		),

		pciDesc: prometheus.NewDesc(
			"quectel_cell_pci",
			"Physical Cell ID",
			labels, nil,
		),
		bandDesc: prometheus.NewDesc(
			"quectel_cell_band",
			"Frequency band number",
			labels, nil,
		),
		channelDesc: prometheus.NewDesc(
			"quectel_cell_channel",
			"Downlink channel number (EARFCN or NR-ARFCN)",
			labels, nil,
		),
		frequencyDesc: prometheus.NewDesc(
			"quectel_cell_frequency_mhz",
			"Downlink carrier frequency in MHz",
			labels, nil,
		),
		tacDesc: prometheus.NewDesc(
			"quectel_cell_tac",
			"Tracking Area Code",
			labels, nil,
		),
		enbDesc: prometheus.NewDesc(
			"quectel_cell_enodeb",
			"eNodeB identifier",
			labels, nil,
		),

		carriersDesc: prometheus.NewDesc(
			"quectel_carrier_components",
			"Number of aggregated carrier components",
			labels, nil,
		),
		neighboursDesc: prometheus.NewDesc(
			"quectel_neighbour_cells",
			"Number of reported neighbour cells",
			nil, nil,
		),

		scrapeSuccessDesc: prometheus.NewDesc(
			"quectel_scrape_success",
			"Whether the last modem poll succeeded",
			nil, nil,
		),
		scrapeDurationDesc: prometheus.NewDesc(
			"quectel_scrape_duration_seconds",
			"Duration of the last modem poll",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.rsrpDesc
	ch <- c.rsrqDesc
	ch <- c.sinrDesc
	ch <- c.rssiDesc
	ch <- c.pciDesc
	ch <- c.bandDesc
	ch <- c.channelDesc
	ch <- c.frequencyDesc
	ch <- c.tacDesc
	ch <- c.enbDesc
	ch <- c.carriersDesc
	ch <- c.neighboursDesc
	ch <- c.scrapeSuccessDesc
	ch <- c.scrapeDurationDesc
}

// Collect implements prometheus.Collector. The modem handles one command
// at a time, so concurrent scrapes are serialized.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	start := time.Now()
	snapshot, err := c.poller.Poll(ctx)
	duration := time.Since(start).Seconds()

	ch <- prometheus.MustNewConstMetric(c.scrapeDurationDesc, prometheus.GaugeValue, duration)
	if err != nil {
		log.Printf("modem poll failed: %v", err)
		ch <- prometheus.MustNewConstMetric(c.scrapeSuccessDesc, prometheus.GaugeValue, 0)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.scrapeSuccessDesc, prometheus.GaugeValue, 1)

	if cell := snapshot.LTE; cell != nil {
		c.collectLTE(ch, cell)
	}
	if cell := snapshot.NR; cell != nil {
		c.collectNR(ch, cell)
	}

	lteCarriers, nrCarriers := 0, 0
	for _, component := range snapshot.Carriers {
		if component.Is5G() {
			nrCarriers++
		} else {
			lteCarriers++
		}
	}
	ch <- prometheus.MustNewConstMetric(c.carriersDesc, prometheus.GaugeValue, float64(lteCarriers), "lte")
	ch <- prometheus.MustNewConstMetric(c.carriersDesc, prometheus.GaugeValue, float64(nrCarriers), "nr")
	ch <- prometheus.MustNewConstMetric(c.neighboursDesc, prometheus.GaugeValue, float64(len(snapshot.Neighbours)))
}

func (c *Collector) collectLTE(ch chan<- prometheus.Metric, cell *quectel.LteServingCell) {
	const tech = "lte"
	ch <- prometheus.MustNewConstMetric(c.rsrpDesc, prometheus.GaugeValue, float64(cell.RSRP), tech)
	ch <- prometheus.MustNewConstMetric(c.rsrqDesc, prometheus.GaugeValue, float64(cell.RSRQ), tech)
	ch <- prometheus.MustNewConstMetric(c.sinrDesc, prometheus.GaugeValue, cell.SINR, tech)
	ch <- prometheus.MustNewConstMetric(c.rssiDesc, prometheus.GaugeValue, float64(cell.RSSI), tech)
	ch <- prometheus.MustNewConstMetric(c.pciDesc, prometheus.GaugeValue, float64(cell.PCI), tech)
	ch <- prometheus.MustNewConstMetric(c.bandDesc, prometheus.GaugeValue, float64(cell.Band), tech)
	ch <- prometheus.MustNewConstMetric(c.channelDesc, prometheus.GaugeValue, float64(cell.EARFCN), tech)
	ch <- prometheus.MustNewConstMetric(c.tacDesc, prometheus.GaugeValue, float64(cell.TAC), tech)
	ch <- prometheus.MustNewConstMetric(c.enbDesc, prometheus.GaugeValue, float64(cell.ENodeBID()), tech)

	if freq, _, ok := radio.EARFCNToMHz(cell.EARFCN); ok {
		ch <- prometheus.MustNewConstMetric(c.frequencyDesc, prometheus.GaugeValue, freq, tech)
	}
}

func (c *Collector) collectNR(ch chan<- prometheus.Metric, cell *quectel.Nr5gServingCell) {
	const tech = "nr"
	ch <- prometheus.MustNewConstMetric(c.rsrpDesc, prometheus.GaugeValue, float64(cell.RSRP), tech)
	ch <- prometheus.MustNewConstMetric(c.rsrqDesc, prometheus.GaugeValue, float64(cell.RSRQ), tech)
	ch <- prometheus.MustNewConstMetric(c.sinrDesc, prometheus.GaugeValue, cell.SINR, tech)
	ch <- prometheus.MustNewConstMetric(c.pciDesc, prometheus.GaugeValue, float64(cell.PCI), tech)
	ch <- prometheus.MustNewConstMetric(c.bandDesc, prometheus.GaugeValue, float64(cell.Band), tech)
	ch <- prometheus.MustNewConstMetric(c.channelDesc, prometheus.GaugeValue, float64(cell.ARFCN), tech)

	if freq, _, ok := radio.NRARFCNToMHz(cell.ARFCN); ok {
		ch <- prometheus.MustNewConstMetric(c.frequencyDesc, prometheus.GaugeValue, freq, tech)
	}
}

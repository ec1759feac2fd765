package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lixenwraith/logdw"
)

const namespace = "logdw"

// StatsSource is anything that can report transport counters
type StatsSource interface {
	Stats() logdw.Stats
}

// Collector exports the counters of one StatsSource
type Collector struct {
	source StatsSource

	framesSent *prometheus.Desc
	bytesSent  *prometheus.Desc
	dropped    *prometheus.Desc
	suppressed *prometheus.Desc
	setups     *prometheus.Desc
	reconnects *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector for source. labels are attached to every series.
func NewCollector(source StatsSource, labels prometheus.Labels) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, nil, labels)
	}

	return &Collector{
		source:     source,
		framesSent: desc("frames_sent_total", "Frames accepted by the collector socket"),
		bytesSent:  desc("payload_bytes_sent_total", "Caller payload bytes in accepted frames"),
		dropped:    desc("records_dropped_total", "Records lost to a transport error"),
		suppressed: desc("records_suppressed_total", "Records dropped because the process is the collector daemon"),
		setups:     desc("channel_setups_total", "Collector socket dial attempts"),
		reconnects: desc("reconnects_total", "Reconnects after the collector went away"),
	}
}

// Describe implements prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.framesSent
	ch <- c.bytesSent
	ch <- c.dropped
	ch <- c.suppressed
	ch <- c.setups
	ch <- c.reconnects
}

// Collect implements prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.source.Stats()
	counter := func(d *prometheus.Desc, v uint64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v))
	}

	counter(c.framesSent, s.FramesSent)
	counter(c.bytesSent, s.BytesSent)
	counter(c.dropped, s.Dropped)
	counter(c.suppressed, s.Suppressed)
	counter(c.setups, s.Setups)
	counter(c.reconnects, s.Reconnects)
}

// Handler returns the HTTP handler for the metrics gathered by g
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

package prometheus

import (
	"errors"
	"io"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/rexfs"
)

// Collector implements rexfs.MetricsCollector on Prometheus metrics.
// It is itself a prometheus.Collector, so register it once:
//
//	c := prometheus.NewCollector("rex", nil)
//	reg.MustRegister(c)
//	fsys := rexfs.Instrument(inner, rexfs.WithMetrics(c))
type Collector struct {
	opLatency *prom.HistogramVec
	ops       *prom.CounterVec
	bytes     *prom.CounterVec
	ioCalls   *prom.CounterVec
}

var (
	_ rexfs.MetricsCollector = (*Collector)(nil)
	_ prom.Collector         = (*Collector)(nil)
)

// NewCollector creates a Collector whose metric names start with namespace.
// constLabels are attached to every series (e.g. backend="memfs").
func NewCollector(namespace string, constLabels prom.Labels) *Collector {
	return &Collector{
		opLatency: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace:   namespace,
			Name:        "fs_operation_latency_seconds",
			Help:        "Latency of Open and Create",
			Buckets:     prom.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"op"}),
		ops: prom.NewCounterVec(prom.CounterOpts{
			Namespace:   namespace,
			Name:        "fs_operations_total",
			Help:        "Open and Create calls by outcome",
			ConstLabels: constLabels,
		}, []string{"op", "status"}),
		bytes: prom.NewCounterVec(prom.CounterOpts{
			Namespace:   namespace,
			Name:        "fs_bytes_total",
			Help:        "Bytes transferred through file handles",
			ConstLabels: constLabels,
		}, []string{"direction"}),
		ioCalls: prom.NewCounterVec(prom.CounterOpts{
			Namespace:   namespace,
			Name:        "fs_io_calls_total",
			Help:        "Read and Write calls by outcome",
			ConstLabels: constLabels,
		}, []string{"direction", "status"}),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prom.Desc) {
	c.opLatency.Describe(ch)
	c.ops.Describe(ch)
	c.bytes.Describe(ch)
	c.ioCalls.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prom.Metric) {
	c.opLatency.Collect(ch)
	c.ops.Collect(ch)
	c.bytes.Collect(ch)
	c.ioCalls.Collect(ch)
}

// RecordOpen implements rexfs.MetricsCollector.
func (c *Collector) RecordOpen(d time.Duration, err error) {
	c.recordOp("open", d, err)
}

// RecordCreate implements rexfs.MetricsCollector.
func (c *Collector) RecordCreate(d time.Duration, err error) {
	c.recordOp("create", d, err)
}

// RecordRead implements rexfs.MetricsCollector. io.EOF counts as success.
func (c *Collector) RecordRead(n int, err error) {
	if errors.Is(err, io.EOF) {
		err = nil
	}
	c.recordIO("read", n, err)
}

// RecordWrite implements rexfs.MetricsCollector.
func (c *Collector) RecordWrite(n int, err error) {
	c.recordIO("write", n, err)
}

func (c *Collector) recordOp(op string, d time.Duration, err error) {
	c.opLatency.WithLabelValues(op).Observe(d.Seconds())
	c.ops.WithLabelValues(op, status(err)).Inc()
}

func (c *Collector) recordIO(direction string, n int, err error) {
	if n > 0 {
		c.bytes.WithLabelValues(direction).Add(float64(n))
	}
	c.ioCalls.WithLabelValues(direction, status(err)).Inc()
}

// status buckets errors so label cardinality stays bounded.
func status(err error) string {
	switch {
	case err == nil:
		return "ok"
	case rexfs.IsNotFound(err):
		return "not_found"
	case rexfs.IsExist(err):
		return "exists"
	default:
		return "error"
	}
}

// Package metrics exposes the outcome of a run as Prometheus metrics so it
// can be picked up by a node_exporter textfile collector.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"nwbench/internal/bench"
)

// Metrics holds the collectors for one run on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	AlignmentsTotal *prometheus.CounterVec
	FailuresTotal   *prometheus.CounterVec
	WorkerSeconds   *prometheus.GaugeVec
	WorkerPinned    *prometheus.GaugeVec
	WallSeconds     prometheus.Gauge
	ReadSeconds     prometheus.Gauge
	BufferBytes     prometheus.Gauge
	Threads         prometheus.Gauge
}

// New registers the run collectors. labels are attached to every series.
func New(labels prometheus.Labels) *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(prometheus.WrapRegistererWith(labels, reg))
	return &Metrics{
		Registry: reg,

		AlignmentsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "nwbench_alignments_total",
			Help: "Alignments performed, by worker.",
		}, []string{"tid"}),
		FailuresTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "nwbench_alignment_failures_total",
			Help: "Alignment calls that returned an error, by worker.",
		}, []string{"tid"}),
		WorkerSeconds: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "nwbench_worker_seconds",
			Help: "Time each worker spent in its alignment loop.",
		}, []string{"tid"}),
		WorkerPinned: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "nwbench_worker_pinned",
			Help: "1 if the worker thread was pinned to its CPU.",
		}, []string{"tid", "cpu"}),
		WallSeconds: f.NewGauge(prometheus.GaugeOpts{
			Name: "nwbench_wall_seconds",
			Help: "Wall-clock time of the measurement phase.",
		}),
		ReadSeconds: f.NewGauge(prometheus.GaugeOpts{
			Name: "nwbench_read_seconds",
			Help: "Time spent loading the sequence file.",
		}),
		BufferBytes: f.NewGauge(prometheus.GaugeOpts{
			Name: "nwbench_buffer_bytes",
			Help: "Size of the contiguous sequence buffer.",
		}),
		Threads: f.NewGauge(prometheus.GaugeOpts{
			Name: "nwbench_threads",
			Help: "Number of worker threads.",
		}),
	}
}

// Observe records a finished run. Workers publish nothing while running;
// everything is copied here after the join.
func (m *Metrics) Observe(sum bench.Summary, readSeconds float64, bufferBytes int) {
	for _, w := range sum.Workers {
		tid := strconv.Itoa(w.TID)
		m.AlignmentsTotal.WithLabelValues(tid).Add(float64(w.Processed))
		m.FailuresTotal.WithLabelValues(tid).Add(float64(w.Failed))
		m.WorkerSeconds.WithLabelValues(tid).Set(w.Elapsed.Seconds())
		pinned := 0.0
		if w.Pinned {
			pinned = 1
		}
		m.WorkerPinned.WithLabelValues(tid, strconv.Itoa(w.CPU)).Set(pinned)
	}
	m.WallSeconds.Set(sum.Wall.Seconds())
	m.ReadSeconds.Set(readSeconds)
	m.BufferBytes.Set(float64(bufferBytes))
	m.Threads.Set(float64(sum.Threads))
}

// WriteTextfile writes the registry in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}

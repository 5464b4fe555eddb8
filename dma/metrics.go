package dma

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "slicer_dma"

// Metrics holds the collectors shared by a [ChunkPool] and an [Engine].
type Metrics struct {
	transfers   *prometheus.CounterVec
	bytes       *prometheus.CounterVec
	inflight    prometheus.Gauge
	mappedBytes prometheus.Gauge
	freeChunks  *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		transfers: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "transfers_total",
			Help:      "Total number of completed transfers.",
		}, []string{"direction", "status"}),
		bytes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "transferred_bytes_total",
			Help:      "Total number of bytes moved by transfers.",
		}, []string{"direction"}),
		inflight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "inflight_transfers",
			Help:      "Number of submitted transfers that have not completed.",
		}),
		mappedBytes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "chunk_pool_mapped_bytes",
			Help:      "Bytes of off-heap memory currently mapped by the chunk pool.",
		}),
		freeChunks: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "chunk_pool_free_chunks",
			Help:      "Number of free chunks held by the chunk pool.",
		}, []string{"size"}),
	}
}

package writeback

import (
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	sinkPrometheusMetrics sync.Once

	sinkOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "buildbarn",
			Subsystem: "writeback",
			Name:      "sink_operations_total",
			Help:      "Total number of operations performed against write-back sinks.",
		},
		[]string{"name", "operation", "outcome"})
	sinkPersistedBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "buildbarn",
			Subsystem: "writeback",
			Name:      "sink_persisted_bytes_total",
			Help:      "Total number of bytes persisted by write-back sinks.",
		},
		[]string{"name"})
	sinkWriteSequenceNumber = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "buildbarn",
			Subsystem: "writeback",
			Name:      "sink_write_sequence_number",
			Help:      "Sequence number of the last write that was successfully persisted by a write-back sink.",
		},
		[]string{"name"})
)

type metricsSink struct {
	base Sink

	createSucceeded  prometheus.Counter
	createFailed     prometheus.Counter
	persistSucceeded prometheus.Counter
	persistFailed    prometheus.Counter
	persistedBytes   prometheus.Counter
	writeSequence    prometheus.Gauge

	lastWriteSequenceNumber atomic.Uint64
}

// NewMetricsSink creates a decorator for Sink that exposes Prometheus
// metrics on the number of operations performed and the amount of data
// persisted.
//
// Every successful call to Persist() is assigned a monotonically
// increasing sequence number, starting at one. The last assigned
// sequence number is exposed as a gauge, which makes it possible to
// correlate writes with the contents of the backing store.
func NewMetricsSink(base Sink, name string) Sink {
	sinkPrometheusMetrics.Do(func() {
		prometheus.MustRegister(sinkOperations)
		prometheus.MustRegister(sinkPersistedBytes)
		prometheus.MustRegister(sinkWriteSequenceNumber)
	})

	return &metricsSink{
		base: base,

		createSucceeded:  sinkOperations.WithLabelValues(name, "Create", "Success"),
		createFailed:     sinkOperations.WithLabelValues(name, "Create", "Failure"),
		persistSucceeded: sinkOperations.WithLabelValues(name, "Persist", "Success"),
		persistFailed:    sinkOperations.WithLabelValues(name, "Persist", "Failure"),
		persistedBytes:   sinkPersistedBytes.WithLabelValues(name),
		writeSequence:    sinkWriteSequenceNumber.WithLabelValues(name),
	}
}

func (s *metricsSink) Create() error {
	if err := s.base.Create(); err != nil {
		s.createFailed.Inc()
		return err
	}
	s.createSucceeded.Inc()
	return nil
}

func (s *metricsSink) Persist(data []byte) (int, error) {
	n, err := s.base.Persist(data)
	s.persistedBytes.Add(float64(n))
	if err != nil {
		s.persistFailed.Inc()
		return n, err
	}
	s.persistSucceeded.Inc()
	s.writeSequence.Set(float64(s.lastWriteSequenceNumber.Add(1)))
	return n, nil
}

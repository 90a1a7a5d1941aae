package elf32

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	FilesDecoded     *prometheus.CounterVec
	Warnings         *prometheus.CounterVec
	SegmentsRead     *prometheus.CounterVec
	SegmentBytesRead prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FilesDecoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "elfscope_files_decoded_total",
			Help: "Total number of files decoded, by outcome",
		}, []string{"status"}),
		Warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "elfscope_decode_warnings_total",
			Help: "Total number of non-fatal problems found while decoding",
		}, []string{"warning"}),
		SegmentsRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "elfscope_segments_read_total",
			Help: "Total number of segments materialized from files",
		}, []string{"kind"}),
		SegmentBytesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "elfscope_segment_bytes_read_total",
			Help: "Total number of bytes copied into segments",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.FilesDecoded,
			m.Warnings,
			m.SegmentsRead,
			m.SegmentBytesRead,
		)
	}

	return m
}

func (m *Metrics) fileDecoded(err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.FilesDecoded.WithLabelValues(status).Inc()
}

func (m *Metrics) warning(name string) {
	if m == nil {
		return
	}
	m.Warnings.WithLabelValues(name).Inc()
}

func (m *Metrics) segmentsRead(kind string, segments ...*Segment) {
	if m == nil {
		return
	}
	var n uint64
	for _, s := range segments {
		n += s.Size
	}
	m.SegmentsRead.WithLabelValues(kind).Add(float64(len(segments)))
	m.SegmentBytesRead.Add(float64(n))
}

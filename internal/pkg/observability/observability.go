package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "riftcoach"
)

var (
	PipelineStageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "pipeline", "stage_duration_seconds"),
		Help:    "Duration of one timeline transform stage in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	}, []string{"stage"})
	GenerationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "analysis", "generation_duration_seconds"),
		Help:    "Duration of one text-generation stage in seconds",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	}, []string{"stage"})
	SpeechDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "speech", "synthesis_duration_seconds"),
		Help:    "Duration of one speech synthesis call in seconds",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	})
)

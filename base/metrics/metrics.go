package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	JobVersion = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Help:      "Decommission job deployment information",
		Namespace: "tideways",
		Subsystem: "decommission",
		Name:      "info",
	}, []string{"version"})

	// VERSION - bumped on release
	VERSION = "v1.0.0"
)

func init() {
	JobVersion.WithLabelValues(VERSION).Set(1)
}

// NewRegistry returns registry with job info and given collectors
func NewRegistry(collectors ...prometheus.Collector) *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(JobVersion)
	registry.MustRegister(collectors...)
	return registry
}

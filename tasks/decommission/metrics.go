package decommission

import (
	"decommission/base/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

var (
	expiredServersCnt = prometheus.NewCounterVec(prometheus.CounterOpts{
		Help:      "How many servers were found expired",
		Namespace: "tideways",
		Subsystem: "decommission",
		Name:      "expired_servers",
	}, []string{"application"})
	decommissionedServersCnt = prometheus.NewCounterVec(prometheus.CounterOpts{
		Help:      "How many servers were reported removed by the API",
		Namespace: "tideways",
		Subsystem: "decommission",
		Name:      "decommissioned_servers",
	}, []string{"application"})
	applicationsCnt = prometheus.NewCounterVec(prometheus.CounterOpts{
		Help:      "Processed applications by result",
		Namespace: "tideways",
		Subsystem: "decommission",
		Name:      "applications",
	}, []string{"result"})
	lastSuccessTime = prometheus.NewGauge(prometheus.GaugeOpts{
		Help:      "Unix time of the last run without failures",
		Namespace: "tideways",
		Subsystem: "decommission",
		Name:      "last_success_timestamp_seconds",
	})
)

func observeResult(res AppResult) {
	expiredServersCnt.WithLabelValues(res.Application).Add(float64(len(res.Expired)))
	decommissionedServersCnt.WithLabelValues(res.Application).Add(float64(res.Removed))
	applicationsCnt.WithLabelValues(res.resultLabel()).Inc()
}

func Metrics(pushGateway string) *push.Pusher {
	registry := metrics.NewRegistry(expiredServersCnt, decommissionedServersCnt, applicationsCnt, lastSuccessTime)

	return push.New(pushGateway, "tideways_decommission").Gatherer(registry)
}

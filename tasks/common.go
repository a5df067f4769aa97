package tasks

import (
	"decommission/base/utils"

	"github.com/prometheus/client_golang/prometheus/push"
)

// PushMetrics adds job metrics to the pushgateway. Failure is logged only, the job result does not depend on it.
func PushMetrics(pusher *push.Pusher) {
	if pusher == nil {
		return
	}
	if err := pusher.Add(); err != nil {
		utils.LogInfo("err", err.Error(), "Could not push to pushgateway")
		return
	}
	utils.LogDebug("Metrics pushed to pushgateway")
}

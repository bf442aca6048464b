package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Bridge settlement metrics. Notifier failures are counted rather than
// surfaced to callers, so operators can alert on silent outages.
var (
	NotifyFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridge_notify_failures_total",
		Help: "Coordinator notifications that failed to send.",
	})

	StatusCheckFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridge_status_check_failures_total",
		Help: "Chain status polls that returned an error.",
	})

	VolumeCreditFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridge_volume_credit_failures_total",
		Help: "Completed settlements whose monthly volume credit failed or was skipped.",
	})

	BackingViolations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridge_backing_violations_total",
		Help: "Mint attempts rejected by the backing invariant.",
	})

	ActiveTrackers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bridge_active_trackers",
		Help: "Transaction poll loops currently running.",
	})

	TransactionsByStatus = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_transactions_total",
		Help: "Bridge transactions by terminal status.",
	}, []string{"status"})
)

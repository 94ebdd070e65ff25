package behavior

import (
	"github.com/prometheus/client_golang/prometheus"
)

// FeedbackEventsTotal counts accepted feedback events by action type.
var FeedbackEventsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "feedback_events_total",
		Help: "Total accepted feedback events by action",
	},
	[]string{"action"},
)

func init() {
	prometheus.MustRegister(FeedbackEventsTotal)
}

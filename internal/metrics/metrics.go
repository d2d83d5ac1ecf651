package metrics

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

const (
	// JobName is the Pushgateway job label for a sync run.
	JobName = "afsync"
)

var (
	ServerCounter *prometheus.CounterVec

	DeploymentsSelected prometheus.Gauge
	VMsResolved         prometheus.Gauge

	RunTimeSummary *prometheus.SummaryVec

	RequestErrorCount *prometheus.CounterVec

	ErrPush = errors.New("error pushing metrics")
)

func init() {
	ServerCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "afsync_servers_reconciled",
			Help: "A counter metric to measure the total count of tagged servers reconciled, by outcome",
		},
		[]string{"outcome"}, // updated, up_to_date, skipped, would_update
	)

	DeploymentsSelected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "afsync_deployments_selected",
			Help: "A gauge metric of the deployments selected as running the AppFirst collector",
		},
	)

	VMsResolved = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "afsync_vms_resolved",
			Help: "A gauge metric of the VM canonical names resolved from the selected deployments",
		},
	)

	RunTimeSummary = promauto.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "afsync_run_duration_seconds",
			Help: "A summary metric to measure the time spent in a sync run",
		},
		[]string{"state"},
	)

	RequestErrorCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "afsync_request_error_count",
			Help: "A counter metric to measure the total count of failed API requests.",
		},
		[]string{"api"},
	)
}

// Push sends the default registry metrics to the Pushgateway at url.
//
// A sync is a short lived batch job, the metrics are pushed once when it ends
// instead of being scraped.
func Push(url string) error {
	err := push.New(url, JobName).
		Gatherer(prometheus.DefaultGatherer).
		Push()
	if err != nil {
		return errors.Wrap(ErrPush, err.Error())
	}

	return nil
}

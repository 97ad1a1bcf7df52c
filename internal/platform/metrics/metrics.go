package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the service's Prometheus collectors. A nil *Recorder
// records nothing.
type Recorder struct {
	plans        *prometheus.CounterVec
	planDuration prometheus.Histogram
	searchSteps  prometheus.Histogram
	circuits     prometheus.Histogram
	requests     *prometheus.CounterVec
}

// NewRecorder registers the collectors with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		plans: f.NewCounterVec(prometheus.CounterOpts{
			Name: "circuits_plans_total",
			Help: "Circuit plans by outcome status",
		}, []string{"status"}),
		planDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "circuits_plan_duration_seconds",
			Help:    "Circuit plan duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		}),
		searchSteps: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "circuits_search_steps",
			Help:    "Candidate placements tried per plan",
			Buckets: prometheus.ExponentialBuckets(10, 4, 10),
		}),
		circuits: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "circuits_built",
			Help:    "Circuits built per plan",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "circuits_http_requests_total",
			Help: "HTTP requests by method, path and status code",
		}, []string{"method", "path", "code"}),
	}
}

func (r *Recorder) ObservePlan(status string, circuits, steps int, dur time.Duration) {
	if r == nil {
		return
	}
	r.plans.WithLabelValues(status).Inc()
	r.planDuration.Observe(dur.Seconds())
	r.searchSteps.Observe(float64(steps))
	r.circuits.Observe(float64(circuits))
}

// ObservePlanError counts a plan that ended in an error rather than a status.
func (r *Recorder) ObservePlanError() {
	if r == nil {
		return
	}
	r.plans.WithLabelValues("error").Inc()
}

func (r *Recorder) ObserveRequest(method, path string, code int) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(method, path, strconv.Itoa(code)).Inc()
}

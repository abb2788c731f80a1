package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus exports the engine's metrics through a registry.
type Prometheus struct {
	polls        *prometheus.CounterVec
	pollDuration prometheus.Histogram
	fetched      prometheus.Counter
	applies      *prometheus.CounterVec
	remote       *prometheus.HistogramVec
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	refreshes    *prometheus.CounterVec
}

func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "merchant_poll_ticks_total",
			Help: "Poll ticks by result.",
		}, []string{"result"}),
		pollDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "merchant_poll_tick_duration_seconds",
			Help:    "Duration of one poll tick.",
			Buckets: prometheus.DefBuckets,
		}),
		fetched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "merchant_events_fetched_total",
			Help: "Events received from the polling feed.",
		}),
		applies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "merchant_events_total",
			Help: "Events by code and outcome.",
		}, []string{"code", "outcome"}),
		remote: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "merchant_remote_request_duration_seconds",
			Help:    "Merchant API calls by operation and result.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op", "result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "merchant_credential_refreshes_total",
			Help: "Credential exchanges by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(
		p.polls, p.pollDuration, p.fetched, p.applies,
		p.remote, p.httpRequests, p.httpDuration, p.refreshes,
	)
	return p
}

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}

func (p *Prometheus) ObservePoll(fetched, applied int, durMs float64, ok bool) {
	p.polls.WithLabelValues(result(ok)).Inc()
	p.pollDuration.Observe(durMs / 1000)
	p.fetched.Add(float64(fetched))
}

func (p *Prometheus) ObserveApply(code, outcome string) {
	p.applies.WithLabelValues(code, outcome).Inc()
}

func (p *Prometheus) ObserveRemote(op string, durMs float64, ok bool) {
	p.remote.WithLabelValues(op, result(ok)).Observe(durMs / 1000)
}

func (p *Prometheus) ObserveHTTP(method, route string, status int, durMs float64) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(durMs / 1000)
}

func (p *Prometheus) ObserveCredentialRefresh(ok bool) {
	p.refreshes.WithLabelValues(result(ok)).Inc()
}

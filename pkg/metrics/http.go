package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of all HTTP handlers
	HTTPRequestLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_latency_seconds",
		Help:    "Latency of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// Total number of HTTP requests by status
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	// Total number of tickets sold across all events
	TicketsSoldTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tickets_sold_total",
		Help: "Total number of event tickets sold",
	})

	// Total number of ratings submitted (stores + products)
	RatingsSubmittedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ratings_submitted_total",
		Help: "Total number of ratings submitted",
	}, []string{"entity"})
)

func Init() {
	prometheus.MustRegister(
		HTTPRequestLatency,
		HTTPRequestsTotal,
		TicketsSoldTotal,
		RatingsSubmittedTotal,
	)
}

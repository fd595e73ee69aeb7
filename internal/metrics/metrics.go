package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	CheckIns = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "transit_check_ins_total",
		Help: "Check-ins recorded in the trip ledger",
	})

	CheckOuts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "transit_check_outs_total",
		Help: "Check-outs that completed a trip",
	})

	Rejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "transit_rejected_operations_total",
		Help: "Check-ins and check-outs rejected before touching the ledger",
	}, []string{"operation", "reason"})

	TripDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "transit_trip_duration_minutes",
		Help:    "Duration of completed trips in minutes",
		Buckets: []float64{5, 10, 15, 20, 30, 45, 60, 90, 120},
	})

	PendingTrips = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "transit_pending_trips",
		Help: "Passengers currently checked in",
	})

	Stations = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "transit_stations",
		Help: "Distinct stations seen by the ledger",
	})

	AverageRows = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "transit_average_rows",
		Help: "Rows in the latest average travel time table",
	})

	ArchiveWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "transit_archive_writes_total",
		Help: "Archive writes by row kind and result (ok, failed, dropped)",
	}, []string{"kind", "result"})

	HTTPRequests = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Name:       "transit_http_request_duration_seconds",
		Help:       "Summary of HTTP request latency",
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
	}, []string{"method", "route", "status"})
)

func init() {
	prometheus.MustRegister(
		CheckIns,
		CheckOuts,
		Rejected,
		TripDuration,
		PendingTrips,
		Stations,
		AverageRows,
		ArchiveWrites,
		HTTPRequests,
	)
}

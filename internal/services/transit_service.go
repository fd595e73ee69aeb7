package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"transitlog/internal/domain"
	"transitlog/internal/domain/models"
	"transitlog/internal/metrics"
	"transitlog/internal/repositories"
	"transitlog/internal/utils"
)

// TripArchive mirrors ledger writes into durable storage.
type TripArchive interface {
	ArchiveEvent(ctx context.Context, ev models.TravelEvent) error
	ArchiveTrip(ctx context.Context, trip models.CompletedTrip) error
}

// TripInput is one validated (name, station, time) tuple from the input boundary.
type TripInput struct {
	PassengerName string
	Station       string
	Time          time.Time
}

// CheckOutResult carries everything a check-out produced, including the
// average table recomputed from it.
type CheckOutResult struct {
	Event    models.TravelEvent
	Trip     models.CompletedTrip
	Averages []models.AverageRow
}

// TransitService records check-ins/check-outs on the ledger and keeps the
// average travel time table current.
type TransitService struct {
	Ledger  *repositories.LedgerRepository
	Archive TripArchive
	// SingleActiveTrip rejects any check-in while some passenger is still checked in.
	SingleActiveTrip bool

	mu       sync.Mutex
	avgMu    sync.RWMutex
	averages []models.AverageRow
	writer   *archiveWriter
}

func NewTransitService(ledger *repositories.LedgerRepository, archive TripArchive, singleActiveTrip bool) *TransitService {
	s := &TransitService{
		Ledger:           ledger,
		Archive:          archive,
		SingleActiveTrip: singleActiveTrip,
	}
	if archive != nil {
		s.writer = newArchiveWriter(archive, archiveQueueSize)
	}
	ledger.OnTripCompleted(func(models.CompletedTrip) { s.recompute() })
	s.recompute()
	return s
}

func (s *TransitService) recompute() {
	stations, trips := s.Ledger.Snapshot()
	rows := domain.ComputeAverageTimes(stations, trips)

	s.avgMu.Lock()
	s.averages = rows
	s.avgMu.Unlock()

	metrics.AverageRows.Set(float64(len(rows)))
}

func normalizeInput(in TripInput) (TripInput, error) {
	in.PassengerName = strings.TrimSpace(in.PassengerName)
	in.Station = strings.TrimSpace(in.Station)
	switch {
	case in.PassengerName == "":
		return in, domain.ValidationError{Field: "passengerName", Msg: "is required"}
	case in.Station == "":
		return in, domain.ValidationError{Field: "station", Msg: "is required"}
	case in.Time.IsZero():
		return in, domain.ValidationError{Field: "time", Msg: "is required"}
	}
	return in, nil
}

func (s *TransitService) reject(op, reason string) {
	metrics.Rejected.WithLabelValues(op, reason).Inc()
}

func (s *TransitService) updateGauges() {
	metrics.PendingTrips.Set(float64(s.Ledger.PendingCount()))
	metrics.Stations.Set(float64(len(s.Ledger.Stations())))
}

// CheckIn opens a trip for the passenger. A passenger that is already checked
// in is rejected with a ConflictError.
func (s *TransitService) CheckIn(ctx context.Context, in TripInput) (models.TravelEvent, error) {
	reqID := utils.RequestIDFrom(ctx)
	in, err := normalizeInput(in)
	if err != nil {
		s.reject("check_in", "validation")
		return models.TravelEvent{}, err
	}

	ev, err := s.checkIn(in)
	if err != nil {
		return models.TravelEvent{}, err
	}
	utils.LogEvent(reqID, "ledger", "check_in", "station="+ev.Station+" time="+utils.FormatClock(ev.Time))

	s.archive(archiveJob{reqID: reqID, event: &ev})
	return ev, nil
}

func (s *TransitService) checkIn(in TripInput) (models.TravelEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, open := s.Ledger.PendingTrip(in.PassengerName); open {
		s.reject("check_in", "already_checked_in")
		return models.TravelEvent{}, domain.ConflictError{Resource: "trip", Msg: "passenger is already checked in"}
	}
	if s.SingleActiveTrip && s.Ledger.PendingCount() > 0 {
		s.reject("check_in", "trip_in_progress")
		return models.TravelEvent{}, domain.ConflictError{Resource: "trip", Msg: "another trip is still in progress"}
	}

	ev := s.Ledger.CheckIn(in.PassengerName, in.Station, in.Time)
	metrics.CheckIns.Inc()
	s.updateGauges()
	return ev, nil
}

// CheckOut closes the passenger's pending trip and recomputes the average table.
func (s *TransitService) CheckOut(ctx context.Context, in TripInput) (CheckOutResult, error) {
	reqID := utils.RequestIDFrom(ctx)
	in, err := normalizeInput(in)
	if err != nil {
		s.reject("check_out", "validation")
		return CheckOutResult{}, err
	}

	ev, trip, err := s.checkOut(in)
	if err != nil {
		return CheckOutResult{}, err
	}
	utils.LogEvent(reqID, "ledger", "check_out", fmt.Sprintf("in=%s out=%s minutes=%s",
		trip.InStation, trip.OutStation, utils.FormatMinutes(trip.DurationMinutes)))

	s.archive(archiveJob{reqID: reqID, event: &ev})
	s.archive(archiveJob{reqID: reqID, trip: &trip})

	return CheckOutResult{Event: ev, Trip: trip, Averages: s.AverageTimes()}, nil
}

func (s *TransitService) checkOut(in TripInput) (models.TravelEvent, models.CompletedTrip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, trip, err := s.Ledger.CheckOut(in.PassengerName, in.Station, in.Time)
	if err != nil {
		s.reject("check_out", "no_pending_trip")
		return models.TravelEvent{}, models.CompletedTrip{}, err
	}
	metrics.CheckOuts.Inc()
	metrics.TripDuration.Observe(trip.DurationMinutes)
	s.updateGauges()
	return ev, trip, nil
}

// archive queues a row for the background writer. It never blocks.
func (s *TransitService) archive(job archiveJob) {
	if s.writer == nil {
		return
	}
	s.writer.enqueue(job)
}

// Close flushes queued archive rows and stops the writer.
func (s *TransitService) Close() {
	if s.writer != nil {
		s.writer.close()
	}
}

// AverageTimes returns the latest average table.
func (s *TransitService) AverageTimes() []models.AverageRow {
	s.avgMu.RLock()
	defer s.avgMu.RUnlock()
	out := make([]models.AverageRow, len(s.averages))
	copy(out, s.averages)
	return out
}

// AverageTimesPage returns one page of the average table.
func (s *TransitService) AverageTimesPage(p domain.Pagination) ([]models.AverageRow, domain.Pagination) {
	rows := s.AverageTimes()
	p, start, end := p.Window(len(rows))
	return rows[start:end], p
}

// TravelLogPage returns one page of the travel log in append order.
func (s *TransitService) TravelLogPage(p domain.Pagination) ([]models.TravelEvent, domain.Pagination) {
	events := s.Ledger.TravelLog()
	p, start, end := p.Window(len(events))
	return events[start:end], p
}

func (s *TransitService) CompletedTrips() []models.CompletedTrip {
	return s.Ledger.CompletedTrips()
}

func (s *TransitService) Stations() []string {
	return s.Ledger.Stations()
}

// PendingTrip returns the open check-in of a passenger.
func (s *TransitService) PendingTrip(passenger string) (models.PendingTrip, error) {
	name := strings.TrimSpace(passenger)
	if name == "" {
		return models.PendingTrip{}, domain.ValidationError{Field: "passengerName", Msg: "is required"}
	}
	p, ok := s.Ledger.PendingTrip(name)
	if !ok {
		return models.PendingTrip{}, domain.NotFoundError{Resource: "pending trip for " + strconv.Quote(name)}
	}
	return p, nil
}

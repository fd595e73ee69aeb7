package repositories

import (
	"sync"
	"time"

	"transitlog/internal/domain"
	"transitlog/internal/domain/models"
	"transitlog/internal/utils"
)

// TripCompletedFunc is notified after every successful check-out.
type TripCompletedFunc func(trip models.CompletedTrip)

// LedgerRepository is the in-memory trip ledger. It owns the travel log,
// pending trips, completed trips and the station set.
type LedgerRepository struct {
	mu        sync.RWMutex
	events    []models.TravelEvent
	pending   map[string]models.PendingTrip
	completed []models.CompletedTrip
	stations  []string
	seen      map[string]struct{}
	observers []TripCompletedFunc
}

func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{
		pending: map[string]models.PendingTrip{},
		seen:    map[string]struct{}{},
	}
}

// OnTripCompleted registers fn. Observers run synchronously, outside the
// ledger lock, before CheckOut returns.
func (r *LedgerRepository) OnTripCompleted(fn TripCompletedFunc) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, fn)
}

// addStation must be called with mu held.
func (r *LedgerRepository) addStation(station string) {
	if _, ok := r.seen[station]; ok {
		return
	}
	r.seen[station] = struct{}{}
	r.stations = append(r.stations, station)
}

// CheckIn appends a check-in event and opens (or replaces) the passenger's pending trip.
func (r *LedgerRepository) CheckIn(passenger, station string, at time.Time) models.TravelEvent {
	ev := models.TravelEvent{
		PassengerName: passenger,
		Station:       station,
		Time:          at,
		Kind:          models.EventCheckIn,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, ev)
	r.pending[passenger] = models.PendingTrip{CheckInStation: station, CheckInTime: at}
	r.addStation(station)
	return ev
}

// CheckOut closes the passenger's pending trip. Nothing is mutated when the
// passenger has no pending trip.
func (r *LedgerRepository) CheckOut(passenger, station string, at time.Time) (models.TravelEvent, models.CompletedTrip, error) {
	r.mu.Lock()
	open, ok := r.pending[passenger]
	if !ok {
		r.mu.Unlock()
		return models.TravelEvent{}, models.CompletedTrip{}, domain.NoPendingTripError{Passenger: passenger}
	}

	ev := models.TravelEvent{
		PassengerName: passenger,
		Station:       station,
		Time:          at,
		Kind:          models.EventCheckOut,
	}
	trip := models.CompletedTrip{
		PassengerName:   passenger,
		InStation:       open.CheckInStation,
		OutStation:      station,
		CheckInTime:     open.CheckInTime,
		CheckOutTime:    at,
		DurationMinutes: utils.MinutesBetween(open.CheckInTime, at),
	}

	r.events = append(r.events, ev)
	r.completed = append(r.completed, trip)
	delete(r.pending, passenger)
	r.addStation(station)

	observers := make([]TripCompletedFunc, len(r.observers))
	copy(observers, r.observers)
	r.mu.Unlock()

	for _, fn := range observers {
		fn(trip)
	}
	return ev, trip, nil
}

// TravelLog returns a copy of every event in append order.
func (r *LedgerRepository) TravelLog() []models.TravelEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.TravelEvent, len(r.events))
	copy(out, r.events)
	return out
}

// CompletedTrips returns a copy of every completed trip in completion order.
func (r *LedgerRepository) CompletedTrips() []models.CompletedTrip {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.CompletedTrip, len(r.completed))
	copy(out, r.completed)
	return out
}

// Stations returns the station set in first-seen order.
func (r *LedgerRepository) Stations() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.stations))
	copy(out, r.stations)
	return out
}

// Snapshot returns stations and completed trips read under one lock.
func (r *LedgerRepository) Snapshot() ([]string, []models.CompletedTrip) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stations := make([]string, len(r.stations))
	copy(stations, r.stations)
	trips := make([]models.CompletedTrip, len(r.completed))
	copy(trips, r.completed)
	return stations, trips
}

// PendingTrip looks up the open trip of a passenger.
func (r *LedgerRepository) PendingTrip(passenger string) (models.PendingTrip, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pending[passenger]
	return p, ok
}

func (r *LedgerRepository) PendingCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pending)
}

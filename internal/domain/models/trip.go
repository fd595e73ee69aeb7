package models

import "time"

// EventKind tells whether a travel event opened or closed a trip.
type EventKind string

const (
	EventCheckIn  EventKind = "check_in"
	EventCheckOut EventKind = "check_out"
)

// TravelEvent is one row of the travel log. Time is a time-of-day on the
// shared reference day.
type TravelEvent struct {
	PassengerName string
	Station       string
	Time          time.Time
	Kind          EventKind
}

// PendingTrip is an open check-in waiting for its check-out.
type PendingTrip struct {
	CheckInStation string
	CheckInTime    time.Time
}

// CompletedTrip is a matched check-in/check-out pair.
type CompletedTrip struct {
	PassengerName   string
	InStation       string
	OutStation      string
	CheckInTime     time.Time
	CheckOutTime    time.Time
	DurationMinutes float64
}

// AverageRow is the mean observed travel time between two stations.
type AverageRow struct {
	Station1       string
	Station2       string
	AverageMinutes float64
	Samples        int
}

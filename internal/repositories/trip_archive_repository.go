package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	intdb "transitlog/internal/db"
	"transitlog/internal/domain/models"
	"transitlog/internal/utils"
)

const (
	tableTravelEvents   = "travel_events"
	tableCompletedTrips = "completed_trips"
)

var archiveSchema = []string{
	`CREATE TABLE IF NOT EXISTS travel_events (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		passenger_name VARCHAR(191) NOT NULL,
		station VARCHAR(191) NOT NULL,
		event_time CHAR(5) NOT NULL,
		kind VARCHAR(16) NOT NULL,
		recorded_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS completed_trips (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		passenger_name VARCHAR(191) NOT NULL,
		in_station VARCHAR(191) NOT NULL,
		out_station VARCHAR(191) NOT NULL,
		check_in_time CHAR(5) NOT NULL,
		check_out_time CHAR(5) NOT NULL,
		duration_minutes DOUBLE NOT NULL,
		recorded_at DATETIME NOT NULL
	)`,
}

// TripArchiveRepository mirrors ledger writes into MySQL as an audit trail.
// The ledger is never reloaded from it.
type TripArchiveRepository struct {
	DB  *sql.DB
	Now func() time.Time
}

func (r TripArchiveRepository) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now().UTC()
}

// EnsureSchema creates the archive tables when missing and checks they are
// visible. Inserts rely on it having run once at startup.
func (r TripArchiveRepository) EnsureSchema(ctx context.Context) error {
	if r.DB == nil {
		return fmt.Errorf("archive db not configured")
	}
	for _, stmt := range archiveSchema {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create archive schema: %w", err)
		}
	}
	for _, table := range []string{tableTravelEvents, tableCompletedTrips} {
		if !intdb.HasTable(ctx, r.DB, table) {
			return fmt.Errorf("table %s not available", table)
		}
	}
	return nil
}

func (r TripArchiveRepository) Ping(ctx context.Context) error {
	if r.DB == nil {
		return fmt.Errorf("archive db not configured")
	}
	return r.DB.PingContext(ctx)
}

// ArchiveEvent stores one travel log row.
func (r TripArchiveRepository) ArchiveEvent(ctx context.Context, ev models.TravelEvent) error {
	if r.DB == nil {
		return fmt.Errorf("archive db not configured")
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO travel_events (passenger_name, station, event_time, kind, recorded_at)
		VALUES (?, ?, ?, ?, ?)`,
		ev.PassengerName,
		ev.Station,
		utils.FormatClock(ev.Time),
		string(ev.Kind),
		r.now(),
	)
	if err != nil {
		return fmt.Errorf("insert travel event: %w", err)
	}
	return nil
}

// ArchiveTrip stores one completed trip.
func (r TripArchiveRepository) ArchiveTrip(ctx context.Context, trip models.CompletedTrip) error {
	if r.DB == nil {
		return fmt.Errorf("archive db not configured")
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO completed_trips (passenger_name, in_station, out_station, check_in_time, check_out_time, duration_minutes, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		trip.PassengerName,
		trip.InStation,
		trip.OutStation,
		utils.FormatClock(trip.CheckInTime),
		utils.FormatClock(trip.CheckOutTime),
		trip.DurationMinutes,
		r.now(),
	)
	if err != nil {
		return fmt.Errorf("insert completed trip: %w", err)
	}
	return nil
}

// CountCompletedTrips is used by the db-check endpoint.
func (r TripArchiveRepository) CountCompletedTrips(ctx context.Context) (int, error) {
	if r.DB == nil {
		return 0, fmt.Errorf("archive db not configured")
	}
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM completed_trips`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

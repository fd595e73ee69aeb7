package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"transitlog/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func expectTable(mock sqlmock.Sqlmock, table string, present bool) {
	rows := sqlmock.NewRows([]string{"table_name"})
	if present {
		rows.AddRow(table)
	}
	mock.ExpectQuery("information_schema\\.tables").WithArgs(table).WillReturnRows(rows)
}

func fixedNow() time.Time {
	return time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
}

func TestTripArchiveArchiveEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO travel_events").
		WithArgs("Alice", "Central", "09:00", "check_in", fixedNow()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := TripArchiveRepository{DB: db, Now: fixedNow}
	ev := models.TravelEvent{
		PassengerName: "Alice",
		Station:       "Central",
		Time:          time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
		Kind:          models.EventCheckIn,
	}
	if err := repo.ArchiveEvent(context.Background(), ev); err != nil {
		t.Fatalf("ArchiveEvent returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripArchiveArchiveTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO completed_trips").
		WithArgs("Bob", "North", "Central", "10:00", "10:10", 10.0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := TripArchiveRepository{DB: db}
	trip := models.CompletedTrip{
		PassengerName:   "Bob",
		InStation:       "North",
		OutStation:      "Central",
		CheckInTime:     time.Date(0, 1, 1, 10, 0, 0, 0, time.UTC),
		CheckOutTime:    time.Date(0, 1, 1, 10, 10, 0, 0, time.UTC),
		DurationMinutes: 10,
	}
	if err := repo.ArchiveTrip(context.Background(), trip); err != nil {
		t.Fatalf("ArchiveTrip returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripArchiveEnsureSchemaMissingTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS travel_events").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS completed_trips").WillReturnResult(sqlmock.NewResult(0, 0))
	expectTable(mock, "travel_events", true)
	expectTable(mock, "completed_trips", false)

	repo := TripArchiveRepository{DB: db}
	if err := repo.EnsureSchema(context.Background()); err == nil {
		t.Fatalf("expected error when completed_trips is missing")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripArchiveInsertFailureWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	boom := errors.New("boom")
	mock.ExpectExec("INSERT INTO travel_events").WillReturnError(boom)

	repo := TripArchiveRepository{DB: db, Now: fixedNow}
	err = repo.ArchiveEvent(context.Background(), models.TravelEvent{Kind: models.EventCheckOut})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
}

func TestTripArchiveEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS travel_events").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS completed_trips").WillReturnResult(sqlmock.NewResult(0, 0))
	expectTable(mock, "travel_events", true)
	expectTable(mock, "completed_trips", true)

	repo := TripArchiveRepository{DB: db}
	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripArchiveCountCompletedTrips(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM completed_trips").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := TripArchiveRepository{DB: db}.CountCompletedTrips(context.Background())
	if err != nil {
		t.Fatalf("CountCompletedTrips returned error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3, got %d", n)
	}
}

func TestTripArchiveWithoutDB(t *testing.T) {
	repo := TripArchiveRepository{}
	if err := repo.ArchiveEvent(context.Background(), models.TravelEvent{}); err == nil {
		t.Fatalf("expected error without db")
	}
	if err := repo.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping error without db")
	}
}

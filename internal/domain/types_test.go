package domain

import (
	"fmt"
	"testing"
)

func TestPaginationWindow(t *testing.T) {
	cases := []struct {
		in         Pagination
		total      int
		start, end int
	}{
		{Pagination{}, 25, 0, 10},
		{Pagination{Page: 3}, 25, 20, 25},
		{Pagination{Page: 4}, 25, 25, 25},
		{Pagination{Page: 2, PageSize: 5}, 7, 5, 7},
		{Pagination{Page: -1, PageSize: -1}, 0, 0, 0},
	}
	for _, tc := range cases {
		p, start, end := tc.in.Window(tc.total)
		if start != tc.start || end != tc.end {
			t.Fatalf("%+v over %d: got [%d,%d) want [%d,%d)", tc.in, tc.total, start, end, tc.start, tc.end)
		}
		if p.Total != tc.total || p.Page < 1 || p.PageSize < 1 {
			t.Fatalf("unexpected pagination %+v", p)
		}
	}
}

func TestErrorHelpers(t *testing.T) {
	wrapped := fmt.Errorf("checkout: %w", NoPendingTripError{Passenger: "Alice"})
	if !IsNoPendingTrip(wrapped) {
		t.Fatalf("expected IsNoPendingTrip through wrapping")
	}
	if IsNotFound(wrapped) || IsConflict(wrapped) || IsValidation(wrapped) {
		t.Fatalf("no pending trip must not match other kinds")
	}
	if got := (ValidationError{Field: "station", Msg: "is required"}).Error(); got != "station: is required" {
		t.Fatalf("ValidationError.Error() = %q", got)
	}
}

package domain

import (
	"math"

	"transitlog/internal/domain/models"
)

func roundMinutes(x float64) float64 {
	return math.Round(x*100) / 100
}

func samePair(trip models.CompletedTrip, a, b string) bool {
	return (trip.InStation == a && trip.OutStation == b) ||
		(trip.OutStation == a && trip.InStation == b)
}

// ComputeAverageTimes builds the average table for every observed station pair.
//
// stations must be in first-seen order. The outer loop stops at n-2 and the
// inner loop starts at i, so self pairs are evaluated for every station except
// the last one. Row direction is taken from the first matching trip.
func ComputeAverageTimes(stations []string, trips []models.CompletedTrip) []models.AverageRow {
	rows := []models.AverageRow{}
	for i := 0; i < len(stations)-1; i++ {
		for j := i; j < len(stations); j++ {
			var (
				first models.CompletedTrip
				total float64
				n     int
			)
			for _, trip := range trips {
				if !samePair(trip, stations[i], stations[j]) {
					continue
				}
				if n == 0 {
					first = trip
				}
				total += trip.DurationMinutes
				n++
			}
			if n == 0 {
				continue
			}
			rows = append(rows, models.AverageRow{
				Station1:       first.InStation,
				Station2:       first.OutStation,
				AverageMinutes: roundMinutes(total / float64(n)),
				Samples:        n,
			})
		}
	}
	return rows
}

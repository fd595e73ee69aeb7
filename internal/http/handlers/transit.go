package handlers

import (
	"net/http"
	"strings"

	"transitlog/internal/domain/models"
	"transitlog/internal/services"
	"transitlog/internal/utils"

	"github.com/gin-gonic/gin"
)

// TransitHandler serves the check-in/check-out forms and the two tables.
type TransitHandler struct {
	Transit  *services.TransitService
	PageSize int
}

type tripRequest struct {
	PassengerName string `json:"passengerName"`
	Station       string `json:"station"`
	Time          string `json:"time"`
}

type travelEventResponse struct {
	Name    string `json:"name"`
	Station string `json:"station"`
	Time    string `json:"time"`
	Kind    string `json:"kind"`
}

type completedTripResponse struct {
	PassengerName   string  `json:"passengerName"`
	InStation       string  `json:"inStation"`
	OutStation      string  `json:"outStation"`
	CheckInTime     string  `json:"checkInTime"`
	CheckOutTime    string  `json:"checkOutTime"`
	DurationMinutes float64 `json:"durationMinutes"`
}

type averageRowResponse struct {
	Station1       string  `json:"station1"`
	Station2       string  `json:"station2"`
	Time           string  `json:"time"`
	AverageMinutes float64 `json:"averageMinutes"`
	Samples        int     `json:"samples"`
}

type pendingTripResponse struct {
	PassengerName string `json:"passengerName"`
	Station       string `json:"station"`
	Time          string `json:"time"`
}

func toEventResponse(ev models.TravelEvent) travelEventResponse {
	return travelEventResponse{
		Name:    ev.PassengerName,
		Station: ev.Station,
		Time:    utils.FormatClock(ev.Time),
		Kind:    string(ev.Kind),
	}
}

func toTripResponse(t models.CompletedTrip) completedTripResponse {
	return completedTripResponse{
		PassengerName:   t.PassengerName,
		InStation:       t.InStation,
		OutStation:      t.OutStation,
		CheckInTime:     utils.FormatClock(t.CheckInTime),
		CheckOutTime:    utils.FormatClock(t.CheckOutTime),
		DurationMinutes: t.DurationMinutes,
	}
}

func toAverageResponses(rows []models.AverageRow) []averageRowResponse {
	out := make([]averageRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, averageRowResponse{
			Station1:       r.Station1,
			Station2:       r.Station2,
			Time:           utils.FormatMinutes(r.AverageMinutes),
			AverageMinutes: r.AverageMinutes,
			Samples:        r.Samples,
		})
	}
	return out
}

func bindTrip(c *gin.Context) (services.TripInput, bool) {
	var req tripRequest
	if !BindJSONSchemaOrError(c, tripSchema, &req) {
		return services.TripInput{}, false
	}
	at, err := utils.ParseClock(req.Time)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return services.TripInput{}, false
	}
	return services.TripInput{PassengerName: req.PassengerName, Station: req.Station, Time: at}, true
}

// POST /api/check-ins
func (h TransitHandler) CheckIn(c *gin.Context) {
	in, ok := bindTrip(c)
	if !ok {
		return
	}
	ev, err := h.Transit.CheckIn(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"event": toEventResponse(ev)})
}

// POST /api/check-outs
func (h TransitHandler) CheckOut(c *gin.Context) {
	in, ok := bindTrip(c)
	if !ok {
		return
	}
	res, err := h.Transit.CheckOut(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"event":    toEventResponse(res.Event),
		"trip":     toTripResponse(res.Trip),
		"averages": toAverageResponses(res.Averages),
	})
}

// GET /api/travel-log
func (h TransitHandler) TravelLog(c *gin.Context) {
	events, page := h.Transit.TravelLogPage(pageFromQuery(c, h.PageSize))
	rows := make([]travelEventResponse, 0, len(events))
	for _, ev := range events {
		rows = append(rows, toEventResponse(ev))
	}
	c.JSON(http.StatusOK, gin.H{"data": rows, "pagination": page})
}

// GET /api/average-times
func (h TransitHandler) AverageTimes(c *gin.Context) {
	rows, page := h.Transit.AverageTimesPage(pageFromQuery(c, h.PageSize))
	c.JSON(http.StatusOK, gin.H{"data": toAverageResponses(rows), "pagination": page})
}

// GET /api/trips
func (h TransitHandler) CompletedTrips(c *gin.Context) {
	trips := h.Transit.CompletedTrips()
	out := make([]completedTripResponse, 0, len(trips))
	for _, t := range trips {
		out = append(out, toTripResponse(t))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

// GET /api/stations
func (h TransitHandler) Stations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.Transit.Stations()})
}

// GET /api/passengers/:name/pending
func (h TransitHandler) PendingTrip(c *gin.Context) {
	name := c.Param("name")
	p, err := h.Transit.PendingTrip(name)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, pendingTripResponse{
		PassengerName: strings.TrimSpace(name),
		Station:       p.CheckInStation,
		Time:          utils.FormatClock(p.CheckInTime),
	})
}

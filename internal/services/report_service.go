package services

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"transitlog/internal/domain"
	"transitlog/internal/domain/models"
	"transitlog/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ReportService renders the travel log and the average table as a PDF.
type ReportService struct {
	Transit *TransitService
	Now     func() time.Time
}

func (s ReportService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// GenerateSummary returns the PDF bytes and a download filename.
func (s ReportService) GenerateSummary(ctx context.Context) ([]byte, string, error) {
	if s.Transit == nil {
		return nil, "", domain.InternalError{Msg: "transit service not configured"}
	}
	events := s.Transit.Ledger.TravelLog()
	rows := s.Transit.AverageTimes()

	utils.LogEvent(utils.RequestIDFrom(ctx), "report", "generate_summary",
		fmt.Sprintf("events=%d averages=%d", len(events), len(rows)))

	pdf, err := buildSummaryPDF(events, rows, s.now())
	if err != nil {
		return nil, "", domain.InternalError{Msg: "failed to render summary", Err: err}
	}
	filename := "TRAVEL_SUMMARY_" + s.now().Format("20060102_1504") + ".pdf"
	return pdf, filename, nil
}

func tableHeader(pdf *gofpdf.Fpdf, widths []float64, titles ...string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	for i, title := range titles {
		pdf.CellFormat(widths[i], 8, title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 11)
}

func tableRow(pdf *gofpdf.Fpdf, widths []float64, cells ...string) {
	for i, c := range cells {
		pdf.CellFormat(widths[i], 7, safe(c, "-"), "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

func buildSummaryPDF(events []models.TravelEvent, rows []models.AverageRow, generated time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Travel Summary", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRAVEL SUMMARY")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Generated: "+generated.Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Travel Log")
	pdf.Ln(9)
	logWidths := []float64{70, 70, 30}
	tableHeader(pdf, logWidths, "Name", "Station", "Time")
	for _, ev := range events {
		tableRow(pdf, logWidths, ev.PassengerName, ev.Station, utils.FormatClock(ev.Time))
	}
	if len(events) == 0 {
		pdf.Cell(0, 7, "No travel recorded yet.")
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Average Time")
	pdf.Ln(9)
	avgWidths := []float64{60, 60, 30, 20}
	tableHeader(pdf, avgWidths, "Station1", "Station2", "Time (minute)", "Trips")
	for _, r := range rows {
		tableRow(pdf, avgWidths, r.Station1, r.Station2, utils.FormatMinutes(r.AverageMinutes), strconv.Itoa(r.Samples))
	}
	if len(rows) == 0 {
		pdf.Cell(0, 7, "No completed trips yet.")
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

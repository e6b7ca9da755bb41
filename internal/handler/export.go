// export.go implements GET /sessions/{sessionId}/export.
// Returns the itinerary as a flat table, one row per scheduled activity.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).

package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_name", "destination",
	"day_number", "date", "time_slot",
	"activity_id", "activity_name", "category", "location",
	"price", "duration_hours",
}

// GetExport handles GET /sessions/{sessionId}/export.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("format must be json or csv"))
		return
	}

	rows, err := s.export.Export(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if format == "csv" {
		writeCSV(w, rows)
		return
	}
	writeJSON(w, http.StatusOK, buildJSONResponse(rows))
}

// buildJSONResponse converts domain rows to the JSON response rows.
func buildJSONResponse(rows []domain.ExportRow) []ExportRow {
	out := make([]ExportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domainRowToResponse(r))
	}
	return out
}

// writeCSV encodes domain rows as CSV with a header row.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(domainRowToCSVRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="itinerary.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(buf.Bytes())
}

// domainRowToResponse maps a domain.ExportRow to its JSON shape.
func domainRowToResponse(r domain.ExportRow) ExportRow {
	tripID, _ := uuid.Parse(r.TripID)
	activityID, _ := uuid.Parse(r.ActivityID)
	return ExportRow{
		TripId:        tripID,
		TripName:      r.TripName,
		Destination:   r.Destination,
		DayNumber:     r.DayNumber,
		Date:          toDate(r.Day),
		TimeSlot:      r.TimeSlot,
		ActivityId:    activityID,
		ActivityName:  r.ActivityName,
		Category:      r.Category,
		Location:      r.Location,
		Price:         r.Price,
		DurationHours: r.DurationHours,
	}
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// Money keeps two decimal places so spreadsheets line up.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		r.TripID,
		r.TripName,
		r.Destination,
		strconv.Itoa(r.DayNumber),
		r.Day.String(),
		r.TimeSlot,
		r.ActivityID,
		r.ActivityName,
		r.Category,
		r.Location,
		r.Price.StringFixed(2),
		strconv.FormatFloat(r.DurationHours, 'f', -1, 64),
	}
}

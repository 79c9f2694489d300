package domain

// ExportRow is a single row in the full-data export: one flat row per trip.
// Notes is the empty string when the trip has none.
type ExportRow struct {
	TripID    string `json:"trip_id"`
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Stage     string `json:"stage"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ExportHeaders are the CSV column names, in ExportRow.Record order.
var ExportHeaders = []string{
	"trip_id", "title", "start_date", "end_date",
	"stage", "notes", "created_at", "updated_at",
}

// NewExportRow flattens a trip.
func NewExportRow(t Trip) ExportRow {
	row := ExportRow{
		TripID:    t.ID,
		Title:     t.Title,
		StartDate: t.StartDate,
		EndDate:   t.EndDate,
		Stage:     string(t.Stage),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if t.Notes != nil {
		row.Notes = *t.Notes
	}
	return row
}

// Record returns the row as a CSV record matching ExportHeaders.
func (r ExportRow) Record() []string {
	return []string{
		r.TripID, r.Title, r.StartDate, r.EndDate,
		r.Stage, r.Notes, r.CreatedAt, r.UpdatedAt,
	}
}

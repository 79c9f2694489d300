package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/pkordes/wanderlist/internal/domain"
)

// GetExport handles GET /export.
// It returns every trip as a flat table.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	rows := s.export.Export(r.Context())
	if rows == nil {
		rows = []domain.ExportRow{}
	}

	if r.URL.Query().Get("format") != "csv" {
		s.writeJSON(w, http.StatusOK, rows)
		return
	}

	buf, err := buildCSV(rows)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="wanderlist.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// buildCSV encodes rows with a header line first.
func buildCSV(rows []domain.ExportRow) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write(domain.ExportHeaders); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := cw.Write(row.Record()); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	return &buf, cw.Error()
}

package service

import (
	"context"

	"github.com/pkordes/wanderlist/internal/domain"
	"github.com/pkordes/wanderlist/internal/repo"
)

// ExportService assembles a full flat export of all trips.
type ExportService struct {
	trips repo.TripRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(trips repo.TripRepo) *ExportService {
	return &ExportService{trips: trips}
}

// Export returns one ExportRow per trip, in insertion order.
func (s *ExportService) Export(ctx context.Context) []domain.ExportRow {
	trips := s.trips.ListAll()
	rows := make([]domain.ExportRow, 0, len(trips))
	for _, t := range trips {
		rows = append(rows, domain.NewExportRow(t))
	}
	return rows
}

package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/yndnr/custrack-go/internal/core/domain"
)

var exportHeader = []string{
	"id", "customer_id", "content", "next_action",
	"track_time", "next_track_time", "created_at",
}

// WriteCSV writes a filtered track listing as CSV. The listing is
// fetched fresh from the server so the export reflects the current
// filters rather than the mirrored page.
func (s *TrackStore) WriteCSV(ctx context.Context, q domain.TrackListQuery, w io.Writer) (int, error) {
	resp, err := s.List(ctx, q)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return 0, fmt.Errorf("write export header: %w", err)
	}
	for _, t := range resp.Tracks {
		next := ""
		if t.NextTrackTime != nil {
			next = t.NextTrackTime.Format(time.RFC3339)
		}
		row := []string{
			fmt.Sprintf("%d", t.ID),
			fmt.Sprintf("%d", t.CustomerID),
			t.Content,
			string(t.NextAction),
			t.TrackTime.Format(time.RFC3339),
			next,
			t.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return 0, fmt.Errorf("write export row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flush export: %w", err)
	}
	return len(resp.Tracks), nil
}

// ExportCSV writes a filtered track listing to a local CSV file.
func (s *TrackStore) ExportCSV(ctx context.Context, q domain.TrackListQuery, path string) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create export file: %w", err)
	}
	n, werr := s.WriteCSV(ctx, q, f)
	if cerr := f.Close(); werr == nil && cerr != nil {
		werr = fmt.Errorf("close export file: %w", cerr)
	}
	if werr != nil {
		return 0, werr
	}
	return n, nil
}

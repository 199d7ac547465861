package catalog

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/lehigh-university-libraries/image-selector/internal/models"
)

type stubSource struct {
	records []models.ImageRecord
	err     error
	calls   int
}

func (s *stubSource) Records(ctx context.Context) ([]models.ImageRecord, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.ImageRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func TestFetchPartitionsByStatus(t *testing.T) {
	source := &stubSource{records: []models.ImageRecord{
		{ImageID: "img-1", Status: models.StatusAvailable, Row: 2},
		{ImageID: "img-2", Status: models.StatusClaimed, Row: 3},
		{ImageID: "img-3", Status: models.StatusBad, Row: 4},
		{ImageID: "img-4", Status: models.StatusAvailable, Row: 5},
	}}
	reader := NewReader(source)

	cat, err := reader.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if len(cat.All) != 4 {
		t.Errorf("All = %d records, expected 4", len(cat.All))
	}
	var availableIDs []string
	for _, rec := range cat.Available {
		availableIDs = append(availableIDs, rec.ImageID)
	}
	if !reflect.DeepEqual(availableIDs, []string{"img-1", "img-4"}) {
		t.Errorf("Available = %v, expected storage order img-1, img-4", availableIDs)
	}
}

func TestFetchIsIdempotent(t *testing.T) {
	source := &stubSource{records: []models.ImageRecord{
		{ImageID: "img-1", Status: models.StatusAvailable, Row: 2},
		{ImageID: "img-2", Status: models.StatusClaimed, Row: 3},
	}}
	reader := NewReader(source)

	first, err := reader.Fetch(context.Background())
	if err != nil {
		t.Fatalf("first Fetch failed: %v", err)
	}
	second, err := reader.Fetch(context.Background())
	if err != nil {
		t.Fatalf("second Fetch failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated Fetch with no intervening writes returned different results")
	}
	if source.calls != 2 {
		t.Errorf("expected 2 source reads (no caching), got %d", source.calls)
	}
}

func TestFetchSurfacesSourceError(t *testing.T) {
	sourceErr := errors.New("store exploded")
	reader := NewReader(&stubSource{err: sourceErr})

	_, err := reader.Fetch(context.Background())
	if !errors.Is(err, sourceErr) {
		t.Errorf("expected source error to pass through, got %v", err)
	}
}

func TestCatalogFind(t *testing.T) {
	cat := &Catalog{All: []models.ImageRecord{
		{ImageID: "img-1", Row: 2},
		{ImageID: "img-2", Row: 3},
	}}

	rec, ok := cat.Find("img-2")
	if !ok {
		t.Fatal("expected to find img-2")
	}
	if rec.Row != 3 {
		t.Errorf("Row = %d, expected 3", rec.Row)
	}

	if _, ok := cat.Find("missing"); ok {
		t.Error("expected missing id to not be found")
	}
}

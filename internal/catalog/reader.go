package catalog

import (
	"context"

	"github.com/lehigh-university-libraries/image-selector/internal/models"
)

// RecordSource is the narrow read interface the reader needs from the
// store adapter.
type RecordSource interface {
	Records(ctx context.Context) ([]models.ImageRecord, error)
}

// Catalog is one snapshot of the image pool, partitioned by status. Both
// sequences preserve storage order.
type Catalog struct {
	All       []models.ImageRecord
	Available []models.ImageRecord
}

// Find locates a record by image id within this snapshot.
func (c *Catalog) Find(imageID string) (*models.ImageRecord, bool) {
	for i := range c.All {
		if c.All[i].ImageID == imageID {
			return &c.All[i], true
		}
	}
	return nil, false
}

// Reader fetches catalog snapshots
type Reader struct {
	source RecordSource
}

// NewReader creates a reader over the given record source.
func NewReader(source RecordSource) *Reader {
	return &Reader{source: source}
}

// Fetch retrieves the full catalog and partitions out the records still
// open for claiming. It never caches; every call is a fresh read.
func (r *Reader) Fetch(ctx context.Context) (*Catalog, error) {
	all, err := r.source.Records(ctx)
	if err != nil {
		return nil, err
	}

	available := make([]models.ImageRecord, 0, len(all))
	for _, rec := range all {
		if rec.Available() {
			available = append(available, rec)
		}
	}

	return &Catalog{All: all, Available: available}, nil
}

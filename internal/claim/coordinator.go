// Package claim implements the optimistic claim protocol over the shared
// image catalog: re-read the freshest snapshot, verify the record is
// still available, then write the transition.
package claim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lehigh-university-libraries/image-selector/internal/catalog"
	"github.com/lehigh-university-libraries/image-selector/internal/models"
)

var (
	// ErrNotFound means the image id was not present in the fresh
	// snapshot; the worker should refresh and pick again.
	ErrNotFound = errors.New("image not found in catalog")

	// ErrInvalidReason rejects a report-bad with an empty reason.
	ErrInvalidReason = errors.New("report reason must not be empty")
)

// AlreadyClaimedError reports a lost race: the record was taken between
// listing and confirmation. It carries the winning claim's timestamp for
// display.
type AlreadyClaimedError struct {
	ImageID   string
	Status    models.Status
	ClaimedAt string
}

func (e *AlreadyClaimedError) Error() string {
	return fmt.Sprintf("image %s already %s at %s", e.ImageID, e.Status, e.ClaimedAt)
}

// TransitionStore is the write side the coordinator needs from the store
// adapter. Row numbers come from the snapshot fetched inside the same
// coordinator call, never from an earlier listing.
type TransitionStore interface {
	MarkClaimed(ctx context.Context, row int, claimedAt string, claimCtx models.ClaimContext) error
	MarkBad(ctx context.Context, row int, claimedAt string, claimCtx models.ClaimContext, reason string) error
}

// Coordinator serializes claim and report-bad transitions. The mutex is
// the single-writer serialization point within this process: two claims
// racing through one server cannot both pass the availability check.
// Races across independent server instances are only narrowed by the
// fresh re-read, not eliminated; the Sheets API offers no conditional
// write to close that window.
type Coordinator struct {
	reader *catalog.Reader
	store  TransitionStore

	mu  sync.Mutex
	now func() time.Time
}

// NewCoordinator creates a coordinator over the given reader and store.
func NewCoordinator(reader *catalog.Reader, store TransitionStore) *Coordinator {
	return &Coordinator{
		reader: reader,
		store:  store,
		now:    time.Now,
	}
}

// Claim transitions an available record to Claimed for the given task and
// project. Returns the updated record, or ErrNotFound /
// AlreadyClaimedError when the fresh snapshot disagrees.
func (c *Coordinator) Claim(ctx context.Context, imageID string, claimCtx models.ClaimContext) (*models.ImageRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, err := c.locate(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if !rec.Available() {
		slog.Info("Claim lost to an earlier claim", "image_id", imageID, "claimed_at", rec.ClaimedAt)
		return nil, &AlreadyClaimedError{ImageID: imageID, Status: rec.Status, ClaimedAt: rec.ClaimedAt}
	}

	claimedAt := c.now().Format(time.RFC3339)
	if err := c.store.MarkClaimed(ctx, rec.Row, claimedAt, claimCtx); err != nil {
		return nil, err
	}

	rec.Status = models.StatusClaimed
	rec.ClaimedAt = claimedAt
	rec.TaskID = claimCtx.TaskID
	rec.ProjectID = claimCtx.ProjectID

	slog.Info("Image claimed", "image_id", imageID, "task_id", claimCtx.TaskID, "project_id", claimCtx.ProjectID, "row", rec.Row)
	return rec, nil
}

// ReportBad permanently retires a record from the pool, recording why.
// The availability check mirrors Claim so a record someone else already
// took cannot be overwritten.
func (c *Coordinator) ReportBad(ctx context.Context, imageID string, claimCtx models.ClaimContext, reason string) (*models.ImageRecord, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrInvalidReason
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	rec, err := c.locate(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if !rec.Available() {
		return nil, &AlreadyClaimedError{ImageID: imageID, Status: rec.Status, ClaimedAt: rec.ClaimedAt}
	}

	claimedAt := c.now().Format(time.RFC3339)
	if err := c.store.MarkBad(ctx, rec.Row, claimedAt, claimCtx, reason); err != nil {
		return nil, err
	}

	rec.Status = models.StatusBad
	rec.ClaimedAt = claimedAt
	rec.TaskID = claimCtx.TaskID
	rec.ProjectID = claimCtx.ProjectID
	rec.ReportReason = reason

	slog.Info("Image reported bad", "image_id", imageID, "reason", reason, "row", rec.Row)
	return rec, nil
}

// locate re-fetches the catalog and finds the record by id. Must be
// called with the mutex held so the snapshot stays the one written to.
func (c *Coordinator) locate(ctx context.Context, imageID string) (*models.ImageRecord, error) {
	cat, err := c.reader.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	rec, ok := cat.Find(imageID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, imageID)
	}
	return rec, nil
}

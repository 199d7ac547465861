package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/lehigh-university-libraries/image-selector/internal/config"
	"github.com/lehigh-university-libraries/image-selector/internal/models"
)

// ErrUnreachable wraps any failure to read or write the spreadsheet so
// callers can distinguish store trouble from claim outcomes.
var ErrUnreachable = errors.New("catalog store unreachable")

// Client is the Google Sheets adapter for the image catalog. The
// underlying service is built on first use and reused until Invalidate
// is called (the UI's refresh action).
type Client struct {
	cfg *config.Config

	mu  sync.Mutex
	svc *gsheets.Service
}

// NewClient creates a client bound to the configured spreadsheet. No
// connection is made until the first call.
func NewClient(cfg *config.Config) *Client {
	return &Client{cfg: cfg}
}

func (c *Client) service(ctx context.Context) (*gsheets.Service, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.svc != nil {
		return c.svc, nil
	}

	var opts []option.ClientOption
	if c.cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(c.cfg.CredentialsFile))
	}
	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create sheets service: %v", ErrUnreachable, err)
	}

	slog.Debug("Connected to Google Sheets", "spreadsheet_id", c.cfg.SpreadsheetID, "worksheet", c.cfg.Worksheet)
	c.svc = svc
	return svc, nil
}

// Invalidate drops the cached service handle so the next call rebuilds it.
func (c *Client) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.svc = nil
	slog.Info("Sheets connection invalidated")
}

// Records fetches every data row of the worksheet in storage order. Each
// record carries the 1-based sheet row it was read from; that mapping is
// only valid for this snapshot.
func (c *Client) Records(ctx context.Context) ([]models.ImageRecord, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	firstDataRow := c.cfg.HeaderRows + 1
	readRange := fmt.Sprintf("%s!%s%d:%s", c.cfg.Worksheet, colImageID, firstDataRow, colReportReason)
	resp, err := svc.Spreadsheets.Values.Get(c.cfg.SpreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrUnreachable, readRange, err)
	}

	records := make([]models.ImageRecord, 0, len(resp.Values))
	for i, row := range resp.Values {
		rec := decodeRow(row, c.cfg.TagDelimiter)
		if rec.ImageID == "" {
			// Blank row; row numbering stays intact because each record
			// carries its own sheet row.
			continue
		}
		rec.Row = firstDataRow + i
		records = append(records, rec)
	}

	slog.Debug("Fetched catalog rows", "rows", len(resp.Values), "records", len(records))
	return records, nil
}

// MarkClaimed transitions one row to Claimed. All fields land in a single
// contiguous range update so the store never sees a half-written claim.
func (c *Client) MarkClaimed(ctx context.Context, row int, claimedAt string, claimCtx models.ClaimContext) error {
	return c.updateTransitionRange(ctx, row, []interface{}{
		claimedCellValue, claimedAt, claimCtx.TaskID, claimCtx.ProjectID, "",
	})
}

// MarkBad transitions one row to Bad, recording the report reason.
func (c *Client) MarkBad(ctx context.Context, row int, claimedAt string, claimCtx models.ClaimContext, reason string) error {
	return c.updateTransitionRange(ctx, row, []interface{}{
		badSentinel, claimedAt, claimCtx.TaskID, claimCtx.ProjectID, reason,
	})
}

func (c *Client) updateTransitionRange(ctx context.Context, row int, values []interface{}) error {
	svc, err := c.service(ctx)
	if err != nil {
		return err
	}

	writeRange := fmt.Sprintf("%s!%s%d:%s%d", c.cfg.Worksheet, colInUse, row, colReportReason, row)
	vr := &gsheets.ValueRange{Values: [][]interface{}{values}}
	_, err = svc.Spreadsheets.Values.Update(c.cfg.SpreadsheetID, writeRange, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("%w: failed to update %s: %v", ErrUnreachable, writeRange, err)
	}

	slog.Info("Updated catalog row", "row", row, "range", writeRange)
	return nil
}

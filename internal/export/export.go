// Package export writes catalog snapshots to disk for offline analysis
// of claim throughput and pool health.
package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/lehigh-university-libraries/image-selector/internal/models"
)

// SnapshotRecord is the flattened on-disk form of one catalog row.
// Status carries the decoded state name, not the loose in_use cell.
type SnapshotRecord struct {
	ImageID      string `json:"image_id" parquet:"image_id"`
	ImageURL     string `json:"image_url" parquet:"image_url"`
	Domain       string `json:"domain" parquet:"domain"`
	ImageType    string `json:"image_type" parquet:"image_type"`
	Status       string `json:"status" parquet:"status"`
	ClaimedAt    string `json:"claimed_at" parquet:"claimed_at"`
	TaskID       string `json:"task_id" parquet:"task_id"`
	ProjectID    string `json:"project_id" parquet:"project_id"`
	ReportReason string `json:"report_reason" parquet:"report_reason"`
}

func flatten(records []models.ImageRecord, tagDelimiter string) []SnapshotRecord {
	joiner := strings.TrimSpace(tagDelimiter) + " "
	out := make([]SnapshotRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, SnapshotRecord{
			ImageID:      rec.ImageID,
			ImageURL:     rec.ImageURL,
			Domain:       strings.Join(rec.Domains, joiner),
			ImageType:    strings.Join(rec.ImageTypes, joiner),
			Status:       rec.Status.String(),
			ClaimedAt:    rec.ClaimedAt,
			TaskID:       rec.TaskID,
			ProjectID:    rec.ProjectID,
			ReportReason: rec.ReportReason,
		})
	}
	return out
}

// WriteSnapshot writes the catalog to outPath, choosing the format by
// extension (.parquet or .jsonl).
func WriteSnapshot(outPath string, records []models.ImageRecord, tagDelimiter string) error {
	rows := flatten(records, tagDelimiter)

	ext := strings.ToLower(filepath.Ext(outPath))
	switch ext {
	case ".parquet":
		return writeParquet(outPath, rows)
	case ".jsonl", ".json":
		return writeJSONL(outPath, rows)
	default:
		return fmt.Errorf("unsupported output format: %s (supported: .parquet, .jsonl)", ext)
	}
}

func writeParquet(outPath string, rows []SnapshotRecord) error {
	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[SnapshotRecord](file)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	slog.Info("Wrote catalog snapshot", "path", outPath, "records", len(rows), "format", "parquet")
	return nil
}

func writeJSONL(outPath string, rows []SnapshotRecord) error {
	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create jsonl file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("failed to write jsonl row: %w", err)
		}
	}

	slog.Info("Wrote catalog snapshot", "path", outPath, "records", len(rows), "format", "jsonl")
	return nil
}

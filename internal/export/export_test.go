package export

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"

	"github.com/lehigh-university-libraries/image-selector/internal/models"
)

func sampleRecords() []models.ImageRecord {
	return []models.ImageRecord{
		{
			ImageID:  "img-1",
			ImageURL: "https://cdn.example.com/1.jpg",
			Domains:  []string{"retail", "travel"},
			Status:   models.StatusAvailable,
		},
		{
			ImageID:      "img-2",
			ImageURL:     "https://cdn.example.com/2.jpg",
			Status:       models.StatusBad,
			ClaimedAt:    "2026-08-24T10:00:00Z",
			TaskID:       "task-1",
			ProjectID:    "proj-1",
			ReportReason: "broken link",
		},
	}
}

func TestWriteSnapshotJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.jsonl")
	if err := WriteSnapshot(path, sampleRecords(), ","); err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	var rows []SnapshotRecord
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var row SnapshotRecord
		if err := json.Unmarshal(scanner.Bytes(), &row); err != nil {
			t.Fatalf("bad jsonl line: %v", err)
		}
		rows = append(rows, row)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Domain != "retail, travel" {
		t.Errorf("Domain = %q", rows[0].Domain)
	}
	if rows[0].Status != "available" || rows[1].Status != "bad" {
		t.Errorf("statuses = %q, %q", rows[0].Status, rows[1].Status)
	}
	if rows[1].ReportReason != "broken link" {
		t.Errorf("ReportReason = %q", rows[1].ReportReason)
	}
}

func TestWriteSnapshotParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.parquet")
	if err := WriteSnapshot(path, sampleRecords(), ","); err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		t.Fatal(err)
	}
	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		t.Fatalf("failed to open parquet: %v", err)
	}
	if pf.NumRows() != 2 {
		t.Fatalf("NumRows = %d, expected 2", pf.NumRows())
	}

	reader := parquet.NewGenericReader[SnapshotRecord](pf)
	defer reader.Close()

	rows := make([]SnapshotRecord, 2)
	if _, err := reader.Read(rows); err != nil && !errors.Is(err, io.EOF) {
		t.Fatalf("read failed: %v", err)
	}
	if rows[0].ImageID != "img-1" || rows[1].ImageID != "img-2" {
		t.Errorf("ids = %q, %q", rows[0].ImageID, rows[1].ImageID)
	}
}

func TestWriteSnapshotUnsupportedFormat(t *testing.T) {
	err := WriteSnapshot(filepath.Join(t.TempDir(), "snapshot.csv"), sampleRecords(), ",")
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

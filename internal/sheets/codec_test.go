package sheets

import (
	"reflect"
	"testing"

	"github.com/lehigh-university-libraries/image-selector/internal/models"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name     string
		cell     string
		expected models.Status
	}{
		{name: "blank is available", cell: "", expected: models.StatusAvailable},
		{name: "whitespace is available", cell: "   ", expected: models.StatusAvailable},
		{name: "false string is available", cell: "false", expected: models.StatusAvailable},
		{name: "FALSE is available", cell: "FALSE", expected: models.StatusAvailable},
		{name: "zero is available", cell: "0", expected: models.StatusAvailable},
		{name: "no is available", cell: "no", expected: models.StatusAvailable},
		{name: "true is claimed", cell: "true", expected: models.StatusClaimed},
		{name: "TRUE is claimed", cell: "TRUE", expected: models.StatusClaimed},
		{name: "one is claimed", cell: "1", expected: models.StatusClaimed},
		{name: "yes is claimed", cell: "yes", expected: models.StatusClaimed},
		{name: "arbitrary truthy text is claimed", cell: "claimed", expected: models.StatusClaimed},
		{name: "BAD is bad", cell: "BAD", expected: models.StatusBad},
		{name: "bad lowercase is bad", cell: "bad", expected: models.StatusBad},
		{name: "Bad mixed case is bad", cell: "Bad", expected: models.StatusBad},
		{name: "bad with whitespace is bad", cell: " bad ", expected: models.StatusBad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseStatus(tt.cell); got != tt.expected {
				t.Errorf("ParseStatus(%q) = %v, expected %v", tt.cell, got, tt.expected)
			}
		})
	}
}

func TestCellString(t *testing.T) {
	tests := []struct {
		name     string
		row      []interface{}
		idx      int
		expected string
	}{
		{name: "string cell", row: []interface{}{"img-1"}, idx: 0, expected: "img-1"},
		{name: "native true", row: []interface{}{true}, idx: 0, expected: "TRUE"},
		{name: "native false", row: []interface{}{false}, idx: 0, expected: "FALSE"},
		{name: "number cell", row: []interface{}{float64(42)}, idx: 0, expected: "42"},
		{name: "index past end", row: []interface{}{"a"}, idx: 5, expected: ""},
		{name: "nil cell", row: []interface{}{nil}, idx: 0, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cellString(tt.row, tt.idx); got != tt.expected {
				t.Errorf("cellString = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestDecodeRow(t *testing.T) {
	row := []interface{}{
		" img-7 ", "https://cdn.example.com/7.jpg", "retail, travel", "product | hero",
		"TRUE", "2026-01-02T03:04:05Z", "task-9", "proj-3", "",
	}

	rec := decodeRow(row, ",")

	if rec.ImageID != "img-7" {
		t.Errorf("ImageID = %q", rec.ImageID)
	}
	if !reflect.DeepEqual(rec.Domains, []string{"retail", "travel"}) {
		t.Errorf("Domains = %v", rec.Domains)
	}
	// Pipe-delimited cell under a comma config stays one tag
	if !reflect.DeepEqual(rec.ImageTypes, []string{"product | hero"}) {
		t.Errorf("ImageTypes = %v", rec.ImageTypes)
	}
	if rec.Status != models.StatusClaimed {
		t.Errorf("Status = %v, expected claimed", rec.Status)
	}
	if rec.ClaimedAt != "2026-01-02T03:04:05Z" {
		t.Errorf("ClaimedAt = %q", rec.ClaimedAt)
	}
	if rec.TaskID != "task-9" || rec.ProjectID != "proj-3" {
		t.Errorf("context = %q/%q", rec.TaskID, rec.ProjectID)
	}
}

func TestDecodeRowShort(t *testing.T) {
	// Rows with trailing blank cells come back truncated from the API
	rec := decodeRow([]interface{}{"img-1", "https://example.com/1.jpg"}, ",")

	if rec.ImageID != "img-1" {
		t.Errorf("ImageID = %q", rec.ImageID)
	}
	if rec.Status != models.StatusAvailable {
		t.Errorf("Status = %v, expected available", rec.Status)
	}
	if rec.Domains != nil {
		t.Errorf("Domains = %v, expected nil", rec.Domains)
	}
}

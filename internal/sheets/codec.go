package sheets

import (
	"fmt"
	"strings"

	"github.com/lehigh-university-libraries/image-selector/internal/catalog"
	"github.com/lehigh-university-libraries/image-selector/internal/models"
)

// Worksheet column layout. Header on row 1, data from row 2.
const (
	colImageID      = "A"
	colImageURL     = "B"
	colDomain       = "C"
	colImageType    = "D"
	colInUse        = "E"
	colClaimedAt    = "F"
	colTaskID       = "G"
	colProjectID    = "H"
	colReportReason = "I"
)

// in_use cell values written on transition. Reads are looser, see
// ParseStatus.
const (
	claimedCellValue = "TRUE"
	badSentinel      = "BAD"
)

// cellString normalizes one cell to a string. The API returns whatever
// type the cell was last written with, so booleans and numbers show up
// alongside strings.
func cellString(row []interface{}, idx int) string {
	if idx >= len(row) || row[idx] == nil {
		return ""
	}
	switch v := row[idx].(type) {
	case string:
		return v
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprint(v)
	}
}

// ParseStatus decodes the tri-state in_use cell. Blank and false-like
// values mean available, the BAD sentinel (case-insensitive) means
// retired, and anything else true-like means claimed.
func ParseStatus(cell string) models.Status {
	s := strings.TrimSpace(cell)
	if s == "" {
		return models.StatusAvailable
	}
	if strings.EqualFold(s, badSentinel) {
		return models.StatusBad
	}
	switch strings.ToLower(s) {
	case "false", "0", "no", "n":
		return models.StatusAvailable
	}
	return models.StatusClaimed
}

func decodeRow(row []interface{}, tagDelimiter string) models.ImageRecord {
	return models.ImageRecord{
		ImageID:      strings.TrimSpace(cellString(row, 0)),
		ImageURL:     strings.TrimSpace(cellString(row, 1)),
		Domains:      catalog.SplitTags(cellString(row, 2), tagDelimiter),
		ImageTypes:   catalog.SplitTags(cellString(row, 3), tagDelimiter),
		Status:       ParseStatus(cellString(row, 4)),
		ClaimedAt:    strings.TrimSpace(cellString(row, 5)),
		TaskID:       strings.TrimSpace(cellString(row, 6)),
		ProjectID:    strings.TrimSpace(cellString(row, 7)),
		ReportReason: strings.TrimSpace(cellString(row, 8)),
	}
}

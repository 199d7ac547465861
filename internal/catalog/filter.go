package catalog

import (
	"sort"
	"strings"

	"github.com/lehigh-university-libraries/image-selector/internal/models"
)

// SplitTags splits a multi-value cell on the configured delimiter,
// trimming whitespace and dropping empty entries.
func SplitTags(s, delimiter string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, delimiter)
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tags = append(tags, p)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// MatchesFilter reports whether a record passes the selected domain and
// type filters. An empty filter list passes everything for that facet;
// within a facet any one tag match suffices; a record with no tags is
// excluded while that facet's filter is active.
func MatchesFilter(rec models.ImageRecord, domains, types []string) bool {
	if len(domains) > 0 && !hasAnyTag(rec.Domains, domains) {
		return false
	}
	if len(types) > 0 && !hasAnyTag(rec.ImageTypes, types) {
		return false
	}
	return true
}

func hasAnyTag(tags, selected []string) bool {
	for _, want := range selected {
		for _, tag := range tags {
			if tag == want {
				return true
			}
		}
	}
	return false
}

// FilterRecords returns the subsequence of records matching the filters,
// preserving order.
func FilterRecords(records []models.ImageRecord, domains, types []string) []models.ImageRecord {
	filtered := make([]models.ImageRecord, 0, len(records))
	for _, rec := range records {
		if MatchesFilter(rec, domains, types) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// DomainValues returns the sorted unique domain tags across all records,
// for building the filter dropdowns.
func DomainValues(records []models.ImageRecord) []string {
	return uniqueTags(records, func(r models.ImageRecord) []string { return r.Domains })
}

// TypeValues returns the sorted unique image type tags across all records.
func TypeValues(records []models.ImageRecord) []string {
	return uniqueTags(records, func(r models.ImageRecord) []string { return r.ImageTypes })
}

func uniqueTags(records []models.ImageRecord, get func(models.ImageRecord) []string) []string {
	seen := make(map[string]bool)
	for _, rec := range records {
		for _, tag := range get(rec) {
			seen[tag] = true
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

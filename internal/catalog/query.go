package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the field records are ordered by.
type SortKey string

const (
	SortByInstallCount SortKey = "installCount"
	SortByName         SortKey = "name"
	SortByInstalledAt  SortKey = "installedAt"
)

// Next advances through the fixed sort-key cycle.
func (k SortKey) Next() SortKey {
	switch k {
	case SortByInstallCount:
		return SortByName
	case SortByName:
		return SortByInstalledAt
	default:
		return SortByInstallCount
	}
}

// SortDirection orders ascending or descending.
type SortDirection string

const (
	Ascending  SortDirection = "ascending"
	Descending SortDirection = "descending"
)

// Flip reverses the direction.
func (d SortDirection) Flip() SortDirection {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// Search filters records by case-insensitive substring match against name,
// description, marketplace id, category, and tags. A record matches if any
// field matches. The empty query returns the input unfiltered.
func Search(query string, records []PluginRecord) []PluginRecord {
	if query == "" {
		return records
	}
	q := strings.ToLower(query)

	var result []PluginRecord
	for _, rec := range records {
		if matches(rec, q) {
			result = append(result, rec)
		}
	}
	return result
}

func matches(rec PluginRecord, q string) bool {
	fields := []string{rec.Name, rec.Description, rec.MarketplaceID, rec.Category}
	fields = append(fields, rec.Tags...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// nameCollator gives locale-aware ordering for plugin names. Collators are
// not goroutine-safe, but all sorting happens on the single interaction
// thread.
var nameCollator = collate.New(language.Und, collate.IgnoreCase)

// Sort returns a new slice ordered by key and direction. The sort is stable:
// records equal under the key keep their relative input order regardless of
// direction. The input is not mutated. A zero InstalledAt (never installed)
// is the lowest possible value, so ascending date order puts those first.
func Sort(records []PluginRecord, key SortKey, direction SortDirection) []PluginRecord {
	sorted := make([]PluginRecord, len(records))
	copy(sorted, records)

	less := lessFunc(key)
	sort.SliceStable(sorted, func(i, j int) bool {
		if direction == Descending {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}

func lessFunc(key SortKey) func(a, b PluginRecord) bool {
	switch key {
	case SortByName:
		return func(a, b PluginRecord) bool {
			return nameCollator.CompareString(a.Name, b.Name) < 0
		}
	case SortByInstalledAt:
		return func(a, b PluginRecord) bool {
			return a.InstalledAt.Before(b.InstalledAt)
		}
	default:
		return func(a, b PluginRecord) bool {
			return a.InstallCount < b.InstallCount
		}
	}
}

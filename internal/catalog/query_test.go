package catalog

import (
	"testing"
	"time"
)

func namedRecords(names ...string) []PluginRecord {
	records := make([]PluginRecord, len(names))
	for i, n := range names {
		records[i] = PluginRecord{ID: MakePluginID(n, "m"), Name: n}
	}
	return records
}

func TestSearchEmptyQueryReturnsInput(t *testing.T) {
	records := namedRecords("alpha", "beta")
	got := Search("", records)
	if len(got) != 2 {
		t.Fatalf("Search(empty) = %d records, want 2", len(got))
	}
}

func TestSearchMatchesFields(t *testing.T) {
	records := []PluginRecord{
		{Name: "context7", Description: "docs lookup"},
		{Name: "deploy", MarketplaceID: "enterprise"},
		{Name: "lint", Category: "tooling"},
		{Name: "fmt", Tags: []string{"format", "style"}},
		{Name: "unrelated"},
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"CONTEXT", []string{"context7"}},
		{"docs", []string{"context7"}},
		{"enterprise", []string{"deploy"}},
		{"tooling", []string{"lint"}},
		{"style", []string{"fmt"}},
		{"zzz", nil},
	}

	for _, tt := range tests {
		got := Search(tt.query, records)
		if len(got) != len(tt.want) {
			t.Errorf("Search(%q) = %d records, want %d", tt.query, len(got), len(tt.want))
			continue
		}
		for i, name := range tt.want {
			if got[i].Name != name {
				t.Errorf("Search(%q)[%d] = %q, want %q", tt.query, i, got[i].Name, name)
			}
		}
	}
}

func TestSortByName(t *testing.T) {
	records := namedRecords("charlie", "alpha", "bravo")

	got := Sort(records, SortByName, Ascending)
	want := []string{"alpha", "bravo", "charlie"}
	for i, n := range want {
		if got[i].Name != n {
			t.Fatalf("ascending[%d] = %q, want %q", i, got[i].Name, n)
		}
	}

	got = Sort(records, SortByName, Descending)
	for i, n := range []string{"charlie", "bravo", "alpha"} {
		if got[i].Name != n {
			t.Fatalf("descending[%d] = %q, want %q", i, got[i].Name, n)
		}
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	records := namedRecords("b", "a")
	Sort(records, SortByName, Ascending)
	if records[0].Name != "b" {
		t.Error("Sort mutated its input")
	}
}

func TestSortStability(t *testing.T) {
	// Four equal-count records; their input order must survive sorting in
	// both directions.
	records := []PluginRecord{
		{Name: "w", InstallCount: 5},
		{Name: "x", InstallCount: 5},
		{Name: "y", InstallCount: 5},
		{Name: "z", InstallCount: 5},
	}

	for _, direction := range []SortDirection{Ascending, Descending} {
		got := Sort(records, SortByInstallCount, direction)
		for i, n := range []string{"w", "x", "y", "z"} {
			if got[i].Name != n {
				t.Errorf("%s[%d] = %q, want %q", direction, i, got[i].Name, n)
			}
		}
	}
}

func TestSortByInstalledAtZeroIsLowest(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	records := []PluginRecord{
		{Name: "installed", InstalledAt: now},
		{Name: "never"},
	}

	got := Sort(records, SortByInstalledAt, Ascending)
	if got[0].Name != "never" {
		t.Errorf("ascending[0] = %q, want never-installed first", got[0].Name)
	}

	got = Sort(records, SortByInstalledAt, Descending)
	if got[0].Name != "installed" {
		t.Errorf("descending[0] = %q, want installed first", got[0].Name)
	}
}

func TestSortKeyCycle(t *testing.T) {
	key := SortByInstallCount
	seen := map[SortKey]bool{key: true}
	for i := 0; i < 2; i++ {
		key = key.Next()
		if seen[key] {
			t.Fatalf("cycle revisited %q early", key)
		}
		seen[key] = true
	}
	if key.Next() != SortByInstallCount {
		t.Error("cycle did not return to install count")
	}
}

func TestSortDirectionFlip(t *testing.T) {
	if Ascending.Flip() != Descending || Descending.Flip() != Ascending {
		t.Error("Flip() does not invert")
	}
}

package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"plugdeck/internal/paths"
	"plugdeck/internal/store"
)

// fixtureRoot builds an ecosystem root in a temp dir. Callers add documents
// through the helpers below.
func fixtureRoot(t *testing.T) paths.Root {
	t.Helper()
	return paths.Root(t.TempDir())
}

func writeJSON(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func writeCatalog(t *testing.T, root paths.Root, marketplaceID, content string) {
	t.Helper()
	writeJSON(t, root.MarketplaceCatalogFile(marketplaceID), content)
}

const officialCatalog = `{
  "name": "Official Plugins",
  "plugins": [
    {"name": "context7", "description": "Documentation lookup", "version": "1.2.0"},
    {"name": "deploy-tools", "description": "Deployment helpers"}
  ]
}`

func TestBuildPluginCollectionEmptyRoot(t *testing.T) {
	agg := NewAggregator(fixtureRoot(t))

	records, err := agg.BuildPluginCollection()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("empty root = %d records, want 0", len(records))
	}
}

func TestBuildPluginCollectionCatalogOnly(t *testing.T) {
	root := fixtureRoot(t)
	writeCatalog(t, root, "claude-plugins-official", officialCatalog)
	// A stale enabled entry for a plugin that is not installed must be ignored.
	writeJSON(t, root.SettingsFile(), `{"enabledPlugins": {"context7@claude-plugins-official": true}}`)

	records, err := NewAggregator(root).BuildPluginCollection()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	var rec PluginRecord
	for _, r := range records {
		if r.ID == "context7@claude-plugins-official" {
			rec = r
		}
	}
	if rec.ID == "" {
		t.Fatal("context7@claude-plugins-official not found")
	}
	if rec.Installed || rec.Enabled {
		t.Error("catalog-only record marked installed or enabled")
	}
	if rec.InstallCount != 0 {
		t.Errorf("InstallCount = %d, want 0", rec.InstallCount)
	}
	if rec.Version != "1.2.0" {
		t.Errorf("Version = %q, want 1.2.0", rec.Version)
	}
}

func TestBuildPluginCollectionVersionFallback(t *testing.T) {
	root := fixtureRoot(t)
	writeCatalog(t, root, "m", `{"name":"m","plugins":[{"name":"bare"}]}`)

	records, err := NewAggregator(root).BuildPluginCollection()
	if err != nil {
		t.Fatal(err)
	}
	if records[0].Version != "unknown" {
		t.Errorf("Version = %q, want unknown", records[0].Version)
	}
}

func TestBuildPluginCollectionMergesAllSources(t *testing.T) {
	root := fixtureRoot(t)
	writeCatalog(t, root, "claude-plugins-official", officialCatalog)
	writeJSON(t, root.InstalledPluginsFile(), `{
  "version": 2,
  "plugins": {
    "context7@claude-plugins-official": [
      {"scope": "user", "installPath": "/p/context7", "version": "1.3.0",
       "installedAt": "2025-05-01T10:00:00Z", "gitCommitSha": "abc123"}
    ]
  }
}`)
	writeJSON(t, root.InstallCountsFile(), `{
  "version": 1,
  "counts": [
    {"plugin": "context7@claude-plugins-official", "unique_installs": 900},
    {"plugin": "ghost@nowhere", "unique_installs": 50}
  ]
}`)
	writeJSON(t, root.SettingsFile(), `{"enabledPlugins": {"context7@claude-plugins-official": true}}`)

	records, err := NewAggregator(root).BuildPluginCollection()
	if err != nil {
		t.Fatal(err)
	}
	// The orphan count entry contributes no record.
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	// Count-descending puts context7 first.
	rec := records[0]
	if rec.ID != "context7@claude-plugins-official" {
		t.Fatalf("records[0] = %s, want context7", rec.ID)
	}
	if !rec.Installed || !rec.Enabled {
		t.Error("merged record not installed+enabled")
	}
	if rec.InstallCount != 900 {
		t.Errorf("InstallCount = %d, want 900", rec.InstallCount)
	}
	// The installed version overrides the catalog version.
	if rec.Version != "1.3.0" {
		t.Errorf("Version = %q, want 1.3.0", rec.Version)
	}
	if rec.SourceCommit != "abc123" {
		t.Errorf("SourceCommit = %q, want abc123", rec.SourceCommit)
	}
	if rec.InstalledAt.IsZero() {
		t.Error("InstalledAt not parsed")
	}
	if rec.InstallPath != "/p/context7" {
		t.Errorf("InstallPath = %q", rec.InstallPath)
	}
}

func TestBuildPluginCollectionFirstEntryWins(t *testing.T) {
	root := fixtureRoot(t)
	writeCatalog(t, root, "m", `{"name":"m","plugins":[{"name":"dup"}]}`)
	writeJSON(t, root.InstalledPluginsFile(), `{
  "version": 2,
  "plugins": {
    "dup@m": [
      {"scope": "user", "installPath": "/first", "version": "1.0.0", "installedAt": "2025-01-01T00:00:00Z"},
      {"scope": "project", "installPath": "/second", "version": "2.0.0", "installedAt": "2025-02-01T00:00:00Z"}
    ]
  }
}`)

	records, err := NewAggregator(root).BuildPluginCollection()
	if err != nil {
		t.Fatal(err)
	}
	if records[0].InstallPath != "/first" || records[0].Version != "1.0.0" {
		t.Errorf("record = %q v%s, want first entry", records[0].InstallPath, records[0].Version)
	}
}

func TestBuildPluginCollectionIdempotent(t *testing.T) {
	root := fixtureRoot(t)
	writeCatalog(t, root, "claude-plugins-official", officialCatalog)
	writeCatalog(t, root, "community", `{"name":"Community","plugins":[{"name":"extra"}]}`)

	agg := NewAggregator(root)
	first, err := agg.BuildPluginCollection()
	if err != nil {
		t.Fatal(err)
	}
	second, err := agg.BuildPluginCollection()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two passes over unchanged documents differ")
	}
}

func TestBuildPluginCollectionSkipsBadCatalog(t *testing.T) {
	root := fixtureRoot(t)
	writeCatalog(t, root, "good", `{"name":"good","plugins":[{"name":"ok"}]}`)
	writeCatalog(t, root, "bad", `{broken`)
	// A marketplace directory with no catalog file at all.
	if err := os.MkdirAll(root.MarketplaceDir("empty"), 0755); err != nil {
		t.Fatal(err)
	}

	records, err := NewAggregator(root).BuildPluginCollection()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].ID != "ok@good" {
		t.Errorf("records = %v, want just ok@good", records)
	}
}

func TestBuildPluginCollectionMalformedRegistryFatal(t *testing.T) {
	root := fixtureRoot(t)
	writeCatalog(t, root, "m", `{"name":"m","plugins":[{"name":"p"}]}`)
	writeJSON(t, root.InstalledPluginsFile(), `{nope`)

	_, err := NewAggregator(root).BuildPluginCollection()
	var malformed *store.MalformedDocumentError
	if !errors.As(err, &malformed) {
		t.Fatalf("malformed registry = %v, want *MalformedDocumentError", err)
	}
}

func TestBuildMarketplaceCollection(t *testing.T) {
	root := fixtureRoot(t)
	writeJSON(t, root.KnownMarketplacesFile(), `{
  "claude-plugins-official": {
    "source": {"source": "github", "repo": "anthropics/plugins"},
    "installLocation": "user",
    "lastUpdated": "2025-06-01T00:00:00Z"
  },
  "broken-checkout": {
    "source": {"source": "git", "url": "https://example.com/r.git"}
  }
}`)
	writeCatalog(t, root, "claude-plugins-official", officialCatalog)

	records, err := NewAggregator(root).BuildMarketplaceCollection()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d marketplaces, want 2", len(records))
	}

	// Count-descending: the marketplace with a readable catalog first.
	if records[0].ID != "claude-plugins-official" {
		t.Fatalf("records[0] = %s", records[0].ID)
	}
	if records[0].PluginCount != 2 {
		t.Errorf("PluginCount = %d, want 2", records[0].PluginCount)
	}
	// The catalog's display name wins over the registry id.
	if records[0].Name != "Official Plugins" {
		t.Errorf("Name = %q", records[0].Name)
	}
	if records[0].Source.Kind != SourceGitHub {
		t.Errorf("Source.Kind = %q", records[0].Source.Kind)
	}

	// The marketplace with no checkout degrades to count zero, id as name.
	if records[1].ID != "broken-checkout" || records[1].PluginCount != 0 {
		t.Errorf("records[1] = %+v", records[1])
	}
	if records[1].Name != "broken-checkout" {
		t.Errorf("fallback Name = %q", records[1].Name)
	}
}

func TestBuildMarketplaceCollectionAbsentRegistry(t *testing.T) {
	records, err := NewAggregator(fixtureRoot(t)).BuildMarketplaceCollection()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("absent registry = %d records, want 0", len(records))
	}
}

func TestBuildMarketplaceCollectionMalformedRegistryFatal(t *testing.T) {
	root := fixtureRoot(t)
	writeJSON(t, root.KnownMarketplacesFile(), `{bad`)

	_, err := NewAggregator(root).BuildMarketplaceCollection()
	if err == nil {
		t.Fatal("malformed registry succeeded, want error")
	}
}

func TestFindPluginByID(t *testing.T) {
	root := fixtureRoot(t)
	writeCatalog(t, root, "m", `{"name":"m","plugins":[{"name":"p"}]}`)

	agg := NewAggregator(root)
	rec, err := agg.FindPluginByID("p@m")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Name != "p" {
		t.Errorf("Name = %q", rec.Name)
	}

	_, err = agg.FindPluginByID("ghost@m")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing plugin = %v, want ErrNotFound", err)
	}
}

func TestLoadErrorRecords(t *testing.T) {
	root := fixtureRoot(t)
	writeJSON(t, filepath.Join(root.ErrorsDir(), "2025-06", "batch1.json"), `[
  {"pluginId": "a@m", "kind": "runtime", "message": "crashed", "timestamp": "2025-06-01T10:00:00Z"}
]`)
	writeJSON(t, filepath.Join(root.ErrorsDir(), "batch2.json"), `[
  {"pluginId": "b@m", "kind": "installation", "message": "clone failed", "timestamp": "2025-06-02T10:00:00Z"}
]`)
	writeJSON(t, filepath.Join(root.ErrorsDir(), "garbage.json"), `not json`)

	records := NewAggregator(root).LoadErrorRecords()
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	// Newest first.
	if records[0].PluginID != "b@m" || records[1].PluginID != "a@m" {
		t.Errorf("order = %s, %s", records[0].PluginID, records[1].PluginID)
	}
	if records[0].Kind != ErrorInstallation {
		t.Errorf("Kind = %q", records[0].Kind)
	}
}

func TestLoadErrorRecordsAbsentDir(t *testing.T) {
	if records := NewAggregator(fixtureRoot(t)).LoadErrorRecords(); len(records) != 0 {
		t.Errorf("absent errors dir = %d records, want 0", len(records))
	}
}

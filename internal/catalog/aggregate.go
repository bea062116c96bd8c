package catalog

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"plugdeck/internal/log"
	"plugdeck/internal/paths"
	"plugdeck/internal/settings"
	"plugdeck/internal/store"
)

// ErrNotFound is returned when a requested plugin id matches no record.
var ErrNotFound = errors.New("plugin not found")

// Aggregator builds the in-memory plugin and marketplace collections from
// the on-disk documents. Aggregation is cheap (bounded by total catalog
// size), so collections are always rebuilt wholesale rather than patched.
type Aggregator struct {
	root paths.Root
}

// NewAggregator creates an aggregator rooted at the given configuration home.
func NewAggregator(root paths.Root) *Aggregator {
	return &Aggregator{root: root}
}

// Root returns the configuration home the aggregator reads from.
func (a *Aggregator) Root() paths.Root {
	return a.root
}

// BuildPluginCollection joins the marketplace catalogs with the installed
// registry, the enabled-state map, and the install-count cache. A malformed
// registry, count cache, or settings document fails the whole pass; a
// malformed or absent individual marketplace catalog contributes zero
// records and is skipped. The result is ordered by install count descending.
func (a *Aggregator) BuildPluginCollection() ([]PluginRecord, error) {
	installed, err := a.readInstalled()
	if err != nil {
		return nil, err
	}
	counts, err := a.readCounts()
	if err != nil {
		return nil, err
	}
	doc, err := settings.Load(a.root.SettingsFile())
	if err != nil {
		return nil, err
	}
	enabled := doc.Enabled()

	var records []PluginRecord
	for _, marketplaceID := range store.ListSubdirectories(a.root.MarketplacesDir()) {
		cat, err := store.ReadDocument[marketplaceCatalog](a.root.MarketplaceCatalogFile(marketplaceID))
		if err != nil {
			log.Logger().Debug("skipping marketplace catalog",
				zap.String("marketplace", marketplaceID), zap.Error(err))
			continue
		}
		for _, entry := range cat.Plugins {
			records = append(records, buildRecord(marketplaceID, entry, installed, counts, enabled))
		}
	}

	// Stable so ties keep marketplace-dir order, then catalog order;
	// re-running the pass with unchanged documents yields an identical
	// collection.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].InstallCount > records[j].InstallCount
	})
	return records, nil
}

func buildRecord(marketplaceID string, entry catalogEntry, installed map[string]installedEntry, counts map[string]int, enabled map[string]bool) PluginRecord {
	id := MakePluginID(entry.Name, marketplaceID)

	rec := PluginRecord{
		ID:            id,
		Name:          entry.Name,
		MarketplaceID: marketplaceID,
		Description:   entry.Description,
		Version:       entry.Version,
		InstallCount:  counts[string(id)],
		Category:      entry.Category,
		Homepage:      entry.Homepage,
		Tags:          entry.Keywords,
	}
	if entry.Author != nil {
		rec.Author = *entry.Author
	}

	if inst, ok := installed[string(id)]; ok {
		rec.Installed = true
		rec.Enabled = enabled[string(id)]
		rec.InstalledAt = parseTimestamp(inst.InstalledAt)
		rec.LastUpdatedAt = parseTimestamp(inst.LastUpdated)
		rec.SourceCommit = inst.GitCommitSha
		rec.LocalDev = inst.IsLocal
		rec.InstallPath = inst.InstallPath
		if inst.Version != "" {
			rec.Version = inst.Version
		}
	}
	if rec.Version == "" {
		rec.Version = "unknown"
	}
	return rec
}

// readInstalled reads the installed-plugin registry, keeping only the first
// listed installation entry per id. Absent registry means nothing installed.
func (a *Aggregator) readInstalled() (map[string]installedEntry, error) {
	doc, err := store.ReadDocument[installedPluginsDoc](a.root.InstalledPluginsFile())
	if err != nil {
		if errors.Is(err, store.ErrNotExist) {
			return map[string]installedEntry{}, nil
		}
		return nil, err
	}
	result := make(map[string]installedEntry, len(doc.Plugins))
	for id, entries := range doc.Plugins {
		if len(entries) == 0 {
			continue
		}
		result[id] = entries[0]
	}
	return result, nil
}

// readCounts reads the install-count cache into an id -> count map. Absent
// cache means all counts are zero.
func (a *Aggregator) readCounts() (map[string]int, error) {
	doc, err := store.ReadDocument[installCountsDoc](a.root.InstallCountsFile())
	if err != nil {
		if errors.Is(err, store.ErrNotExist) {
			return map[string]int{}, nil
		}
		return nil, err
	}
	result := make(map[string]int, len(doc.Counts))
	for _, c := range doc.Counts {
		if c.UniqueInstalls > 0 {
			result[c.Plugin] = c.UniqueInstalls
		}
	}
	return result, nil
}

// BuildMarketplaceCollection reads the known-marketplaces registry and
// derives a plugin count per marketplace from its catalog. A malformed
// registry is fatal; an absent one yields an empty collection; an unreadable
// catalog yields count zero. Ordered by plugin count descending.
func (a *Aggregator) BuildMarketplaceCollection() ([]MarketplaceRecord, error) {
	registry, err := store.ReadDocument[map[string]marketplaceRegistryEntry](a.root.KnownMarketplacesFile())
	if err != nil {
		if errors.Is(err, store.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	records := make([]MarketplaceRecord, 0, len(registry))
	for id, entry := range registry {
		rec := MarketplaceRecord{
			ID:              id,
			Name:            id,
			Source:          entry.Source,
			InstallLocation: entry.InstallLocation,
			LastUpdated:     parseTimestamp(entry.LastUpdated),
		}
		if cat, err := store.ReadDocument[marketplaceCatalog](a.root.MarketplaceCatalogFile(id)); err == nil {
			rec.PluginCount = len(cat.Plugins)
			if cat.Name != "" {
				rec.Name = cat.Name
			}
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].PluginCount != records[j].PluginCount {
			return records[i].PluginCount > records[j].PluginCount
		}
		return records[i].ID < records[j].ID
	})
	return records, nil
}

// FindPluginByID re-runs a full aggregation pass and returns the record for
// id, so the lookup always reflects current disk state.
func (a *Aggregator) FindPluginByID(id PluginID) (PluginRecord, error) {
	records, err := a.BuildPluginCollection()
	if err != nil {
		return PluginRecord{}, err
	}
	for _, rec := range records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return PluginRecord{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// LoadErrorRecords reads externally produced error logs: every *.json file
// under the errors directory, any depth. Each file holds a JSON array of
// records. Unreadable or malformed files are skipped; these logs are
// diagnostic input, not primary state.
func (a *Aggregator) LoadErrorRecords() []ErrorRecord {
	matches, err := doublestar.FilepathGlob(filepath.Join(a.root.ErrorsDir(), "**", "*.json"))
	if err != nil {
		return nil
	}
	sort.Strings(matches)

	var records []ErrorRecord
	for _, path := range matches {
		batch, err := store.ReadDocument[[]ErrorRecord](path)
		if err != nil {
			log.Logger().Debug("skipping error log", zap.String("path", path), zap.Error(err))
			continue
		}
		records = append(records, batch...)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	return records
}

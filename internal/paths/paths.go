// Package paths maps logical document names to their on-disk locations under
// a fixed root directory. All methods are pure; nothing here touches the
// filesystem.
package paths

import (
	"os"
	"path/filepath"
)

// Root is the plugin ecosystem's configuration home (e.g. ~/.claude).
type Root string

// DefaultRoot resolves the root from the environment: PLUGDECK_ROOT wins,
// then CLAUDE_CONFIG_DIR, then ~/.claude.
func DefaultRoot() (Root, error) {
	if dir := os.Getenv("PLUGDECK_ROOT"); dir != "" {
		return Root(dir), nil
	}
	if dir := os.Getenv("CLAUDE_CONFIG_DIR"); dir != "" {
		return Root(dir), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return Root(filepath.Join(home, ".claude")), nil
}

// SettingsFile is the settings document holding the enabledPlugins map
// among other fields.
func (r Root) SettingsFile() string {
	return filepath.Join(string(r), "settings.json")
}

// PluginsDir is the directory holding all plugin bookkeeping documents.
func (r Root) PluginsDir() string {
	return filepath.Join(string(r), "plugins")
}

// InstalledPluginsFile is the installed-plugin registry.
func (r Root) InstalledPluginsFile() string {
	return filepath.Join(r.PluginsDir(), "installed_plugins.json")
}

// KnownMarketplacesFile is the known-marketplaces registry.
func (r Root) KnownMarketplacesFile() string {
	return filepath.Join(r.PluginsDir(), "known_marketplaces.json")
}

// InstallCountsFile is the install-count cache.
func (r Root) InstallCountsFile() string {
	return filepath.Join(r.PluginsDir(), "install-counts-cache.json")
}

// MarketplacesDir is the directory containing one subdirectory per
// marketplace.
func (r Root) MarketplacesDir() string {
	return filepath.Join(r.PluginsDir(), "marketplaces")
}

// MarketplaceDir is the checkout directory of a single marketplace.
func (r Root) MarketplaceDir(marketplaceID string) string {
	return filepath.Join(r.MarketplacesDir(), marketplaceID)
}

// MarketplaceCatalogFile is the catalog document of a single marketplace.
func (r Root) MarketplaceCatalogFile(marketplaceID string) string {
	return filepath.Join(r.MarketplaceDir(marketplaceID), ".claude-plugin", "marketplace.json")
}

// ManifestCacheFile is the cached per-version plugin manifest.
func (r Root) ManifestCacheFile(marketplaceID, pluginName, version string) string {
	return filepath.Join(r.PluginsDir(), "cache", marketplaceID, pluginName, version, "plugin.json")
}

// ErrorsDir holds externally produced plugin error logs.
func (r Root) ErrorsDir() string {
	return filepath.Join(r.PluginsDir(), "errors")
}

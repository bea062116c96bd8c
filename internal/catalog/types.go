// Package catalog joins the independently-mutable plugin ecosystem documents
// into one consistent in-memory view: a collection of plugin records and a
// collection of marketplace records, plus search and sort over them.
package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// PluginID is the composite key "<name>@<marketplaceId>", globally unique
// within one aggregation pass.
type PluginID string

// MakePluginID synthesizes the composite id for a catalog entry.
func MakePluginID(name, marketplaceID string) PluginID {
	return PluginID(name + "@" + marketplaceID)
}

// Split returns the name and marketplace id parts of the composite key.
func (id PluginID) Split() (name, marketplaceID string) {
	parts := strings.SplitN(string(id), "@", 2)
	name = parts[0]
	if len(parts) > 1 {
		marketplaceID = parts[1]
	}
	return
}

// Author identifies who wrote a plugin.
type Author struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// PluginRecord is the unit of display and action: one catalog entry merged
// with installed, enabled, and install-count state. Records are rebuilt from
// scratch on every aggregation pass; the interaction layer may optimistically
// patch Enabled between a toggle and the next rebuild.
type PluginRecord struct {
	ID            PluginID
	Name          string
	MarketplaceID string
	Description   string
	Version       string
	InstallCount  int
	Installed     bool
	Enabled       bool

	// Only set when Installed is true.
	InstalledAt   time.Time
	LastUpdatedAt time.Time
	SourceCommit  string
	LocalDev      bool

	Category string
	Tags     []string
	Author   Author
	Homepage string

	// InstallPath is the on-disk location of the installed copy, when any.
	InstallPath string
}

// MarketplaceRecord summarizes one marketplace and how many plugins its
// catalog currently lists.
type MarketplaceRecord struct {
	ID              string
	Name            string
	Source          MarketplaceSource
	InstallLocation string
	LastUpdated     time.Time
	PluginCount     int
}

// ErrorKind classifies an externally reported plugin error.
type ErrorKind string

const (
	ErrorInstallation ErrorKind = "installation"
	ErrorRuntime      ErrorKind = "runtime"
	ErrorConfig       ErrorKind = "config"
)

// ErrorRecord is an externally produced plugin error. The dashboard only
// displays and selects over these; it never generates them.
type ErrorRecord struct {
	PluginID  PluginID  `json:"pluginId"`
	Kind      ErrorKind `json:"kind"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Details   string    `json:"details,omitempty"`
}

// SourceKind discriminates marketplace source variants.
type SourceKind string

const (
	SourceGit    SourceKind = "git"
	SourceGitHub SourceKind = "github"
)

// MarketplaceSource is a tagged variant: a git source carries a clone URL,
// a github source carries an "owner/repo" slug. The tag determines which
// payload field is meaningful.
type MarketplaceSource struct {
	Kind SourceKind
	URL  string // Kind == SourceGit
	Repo string // Kind == SourceGitHub
}

// Location returns the human-readable origin for display.
func (s MarketplaceSource) Location() string {
	switch s.Kind {
	case SourceGit:
		return s.URL
	case SourceGitHub:
		return "github.com/" + s.Repo
	default:
		return string(s.Kind)
	}
}

type marketplaceSourceWire struct {
	Source string `json:"source"`
	URL    string `json:"url,omitempty"`
	Repo   string `json:"repo,omitempty"`
}

// UnmarshalJSON validates the tag and its payload shape.
func (s *MarketplaceSource) UnmarshalJSON(data []byte) error {
	var w marketplaceSourceWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch SourceKind(w.Source) {
	case SourceGit:
		if w.URL == "" {
			return fmt.Errorf("git marketplace source missing url")
		}
		*s = MarketplaceSource{Kind: SourceGit, URL: w.URL}
	case SourceGitHub:
		if w.Repo == "" {
			return fmt.Errorf("github marketplace source missing repo")
		}
		*s = MarketplaceSource{Kind: SourceGitHub, Repo: w.Repo}
	default:
		return fmt.Errorf("unknown marketplace source kind %q", w.Source)
	}
	return nil
}

// MarshalJSON writes only the payload field matching the tag.
func (s MarketplaceSource) MarshalJSON() ([]byte, error) {
	w := marketplaceSourceWire{Source: string(s.Kind)}
	switch s.Kind {
	case SourceGit:
		w.URL = s.URL
	case SourceGitHub:
		w.Repo = s.Repo
	}
	return json.Marshal(w)
}

// installedPluginsDoc is the wire form of the installed-plugin registry.
type installedPluginsDoc struct {
	Version int                         `json:"version"`
	Plugins map[string][]installedEntry `json:"plugins"`
}

// installedEntry is one installation of a plugin. The registry may list
// several per id; the first listed entry wins.
type installedEntry struct {
	Scope        string `json:"scope"`
	InstallPath  string `json:"installPath"`
	Version      string `json:"version,omitempty"`
	InstalledAt  string `json:"installedAt"`
	LastUpdated  string `json:"lastUpdated,omitempty"`
	GitCommitSha string `json:"gitCommitSha,omitempty"`
	IsLocal      bool   `json:"isLocal,omitempty"`
}

// marketplaceRegistryEntry is the wire form of one known-marketplaces entry.
type marketplaceRegistryEntry struct {
	Source          MarketplaceSource `json:"source"`
	InstallLocation string            `json:"installLocation,omitempty"`
	LastUpdated     string            `json:"lastUpdated,omitempty"`
}

// installCountsDoc is the wire form of the install-count cache.
type installCountsDoc struct {
	Version   int                 `json:"version"`
	FetchedAt string              `json:"fetchedAt,omitempty"`
	Counts    []installCountEntry `json:"counts"`
}

type installCountEntry struct {
	Plugin         string `json:"plugin"`
	UniqueInstalls int    `json:"unique_installs"`
}

// marketplaceCatalog is the wire form of a per-marketplace catalog document.
type marketplaceCatalog struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Owner       *Author        `json:"owner,omitempty"`
	Plugins     []catalogEntry `json:"plugins"`
}

type catalogEntry struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Version     string   `json:"version,omitempty"`
	Author      *Author  `json:"author,omitempty"`
	Category    string   `json:"category,omitempty"`
	Homepage    string   `json:"homepage,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

package catalog

import (
	"encoding/json"
	"testing"
)

func TestPluginID(t *testing.T) {
	id := MakePluginID("context7", "claude-plugins-official")
	if id != "context7@claude-plugins-official" {
		t.Fatalf("MakePluginID = %q", id)
	}

	name, market := id.Split()
	if name != "context7" || market != "claude-plugins-official" {
		t.Errorf("Split() = (%q, %q)", name, market)
	}

	// A bare name has no marketplace part.
	name, market = PluginID("solo").Split()
	if name != "solo" || market != "" {
		t.Errorf("Split(bare) = (%q, %q)", name, market)
	}
}

func TestMarketplaceSourceUnmarshal(t *testing.T) {
	tests := []struct {
		input   string
		want    MarketplaceSource
		wantErr bool
	}{
		{
			input: `{"source":"git","url":"https://example.com/repo.git"}`,
			want:  MarketplaceSource{Kind: SourceGit, URL: "https://example.com/repo.git"},
		},
		{
			input: `{"source":"github","repo":"owner/plugins"}`,
			want:  MarketplaceSource{Kind: SourceGitHub, Repo: "owner/plugins"},
		},
		{input: `{"source":"git"}`, wantErr: true},
		{input: `{"source":"github"}`, wantErr: true},
		{input: `{"source":"svn","url":"x"}`, wantErr: true},
	}

	for _, tt := range tests {
		var got MarketplaceSource
		err := json.Unmarshal([]byte(tt.input), &got)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Unmarshal(%s) succeeded, want error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("Unmarshal(%s) = %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Unmarshal(%s) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestMarketplaceSourceRoundTrip(t *testing.T) {
	sources := []MarketplaceSource{
		{Kind: SourceGit, URL: "https://example.com/r.git"},
		{Kind: SourceGitHub, Repo: "owner/repo"},
	}

	for _, src := range sources {
		data, err := json.Marshal(src)
		if err != nil {
			t.Fatal(err)
		}
		var got MarketplaceSource
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal(%s) = %v", data, err)
		}
		if got != src {
			t.Errorf("round trip = %+v, want %+v", got, src)
		}
	}
}

func TestMarketplaceSourceLocation(t *testing.T) {
	git := MarketplaceSource{Kind: SourceGit, URL: "https://example.com/r.git"}
	if git.Location() != "https://example.com/r.git" {
		t.Errorf("git Location() = %q", git.Location())
	}

	gh := MarketplaceSource{Kind: SourceGitHub, Repo: "owner/repo"}
	if gh.Location() != "github.com/owner/repo" {
		t.Errorf("github Location() = %q", gh.Location())
	}
}

func TestParseTimestamp(t *testing.T) {
	if ts := parseTimestamp("2025-06-01T10:00:00Z"); ts.IsZero() {
		t.Error("valid RFC3339 parsed as zero")
	}
	if ts := parseTimestamp(""); !ts.IsZero() {
		t.Error("empty timestamp not zero")
	}
	if ts := parseTimestamp("yesterday"); !ts.IsZero() {
		t.Error("garbage timestamp not zero")
	}
}

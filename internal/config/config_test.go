package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleProfile = `
linkedin:
  username: me@example.com
  password: secret
default_cover_letter: Hello [COMPANY_NAME]
personal_info:
  name: Sam Doe
  phone_number: "+44 7000 000000"
job_preferences:
  locations: [Leeds, Remote]
  experience_level: Entry
  job_type: Contract
  remote_only: true
trackers:
  neo4j:
    uri: neo4j://localhost:7687
    username: neo4j
    password: pw
`

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	return path
}

func TestLoadFromProfile(t *testing.T) {
	path := writeProfile(t, sampleProfile)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.Generated {
		t.Fatalf("existing profile reported as generated")
	}
	p := cfg.Profile
	if !p.HasLinkedInCredentials() || p.Source != SourceLinkedIn {
		t.Fatalf("unexpected source settings %+v", p)
	}
	if p.Phone() != "+44 7000 000000" {
		t.Fatalf("phone fallback to personal_info failed: %q", p.Phone())
	}
	if !p.JobPreferences.RemoteOnly || p.JobPreferences.Locations[0] != "Leeds" {
		t.Fatalf("preferences not parsed: %+v", p.JobPreferences)
	}
	if !p.Trackers.Neo4j.Enabled() || p.Trackers.Sheets.Enabled() {
		t.Fatalf("unexpected tracker switches %+v", p.Trackers)
	}
	if cfg.HTTP.Addr() != "0.0.0.0:8080" || cfg.TrackerTimeout != DefaultTrackerTimeout {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	path := writeProfile(t, sampleProfile)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("JOB_SOURCE", "adzuna")
	t.Setenv("ADZUNA_APP_ID", "id")
	t.Setenv("LINKEDIN_PASSWORD", "from-env")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("TRACKER_TIMEOUT", "2s")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.HTTP.Port != "9090" || cfg.LogFormat != "console" {
		t.Fatalf("runtime overrides not applied: %+v", cfg)
	}
	if cfg.Profile.Source != SourceAdzuna || cfg.Profile.Adzuna.AppID != "id" || cfg.Profile.Adzuna.Country != "gb" {
		t.Fatalf("adzuna overrides not applied: %+v", cfg.Profile.Adzuna)
	}
	if cfg.Profile.LinkedIn.Password != "from-env" {
		t.Fatalf("secret override not applied")
	}
	if len(cfg.HTTP.AllowOrigins) != 2 || cfg.TrackerTimeout != 2*time.Second {
		t.Fatalf("unexpected origins/timeout %v %v", cfg.HTTP.AllowOrigins, cfg.TrackerTimeout)
	}
}

func TestLoadFromWritesDefaultProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if !cfg.Generated {
		t.Fatalf("expected Generated to be set")
	}

	written, err := ReadProfile(path)
	if err != nil {
		t.Fatalf("default profile not written: %v", err)
	}
	if written.JobPreferences.ExperienceLevel != "Mid-Senior" || written.Phone() != "+1234567890" {
		t.Fatalf("unexpected default profile %+v", written)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("profile permissions = %v", info.Mode().Perm())
	}
}

func TestValidateAggregatesProblems(t *testing.T) {
	path := writeProfile(t, `
job_preferences:
  experience_level: Senior
  job_type: Gig
trackers:
  neo4j:
    uri: neo4j://localhost
  notion:
    database_id: abc
`)
	t.Setenv("JOB_SOURCE", "indeed")

	_, err := LoadFrom(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{`unknown job source "indeed"`, "experience_level", "job_type", "NEO4J_USERNAME", "NEO4J_PASSWORD", "NOTION_TOKEN"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not mention %q", err, want)
		}
	}
}

func TestInvalidTrackerTimeout(t *testing.T) {
	path := writeProfile(t, sampleProfile)
	t.Setenv("TRACKER_TIMEOUT", "soon")

	if _, err := LoadFrom(path); err == nil || !strings.Contains(err.Error(), "TRACKER_TIMEOUT") {
		t.Fatalf("expected TRACKER_TIMEOUT error, got %v", err)
	}
}

func TestMalformedProfile(t *testing.T) {
	path := writeProfile(t, "linkedin: [unterminated")
	if _, err := LoadFrom(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestHTTPAddr(t *testing.T) {
	tests := []struct {
		host, port, want string
	}{
		{host: "0.0.0.0", port: "8080", want: "0.0.0.0:8080"},
		{host: "::1", port: "9000", want: "[::1]:9000"},
		{host: "", port: "8080", want: ":8080"},
	}
	for _, tc := range tests {
		if got := (HTTP{Host: tc.host, Port: tc.port}).Addr(); got != tc.want {
			t.Fatalf("Addr(%q, %q) = %q, want %q", tc.host, tc.port, got, tc.want)
		}
	}
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/honeycarbs/jobapply-gateway/internal/domain"
)

const (
	DefaultPath           = "config.yaml"
	DefaultTrackerTimeout = 5 * time.Second

	SourceLinkedIn = "linkedin"
	SourceAdzuna   = "adzuna"
)

// Config contains runtime settings for the gateway
type Config struct {
	LogLevel  string
	LogFormat string // json (default) or console
	HTTP      HTTP

	// Path is the profile file that was read, or written when Generated is set
	Path      string
	Generated bool
	Profile   Profile

	TrackerTimeout time.Duration
}

// HTTP holds listener settings
type HTTP struct {
	Host         string // default 0.0.0.0
	Port         string // default PORT env or 8080
	AllowOrigins []string
}

// Addr returns host:port
func (h HTTP) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// Profile is the YAML file edited by the user or written by cmd/setup
type Profile struct {
	LinkedIn           LinkedIn       `yaml:"linkedin"`
	DefaultCoverLetter string         `yaml:"default_cover_letter"`
	PhoneNumber        string         `yaml:"phone_number,omitempty"`
	ResumePath         string         `yaml:"resume_path,omitempty"`
	PersonalInfo       PersonalInfo   `yaml:"personal_info,omitempty"`
	JobPreferences     JobPreferences `yaml:"job_preferences"`
	Source             string         `yaml:"source,omitempty"` // linkedin (default) or adzuna
	Adzuna             Adzuna         `yaml:"adzuna,omitempty"`
	Trackers           Trackers       `yaml:"trackers,omitempty"`
}

type LinkedIn struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type PersonalInfo struct {
	Name            string `yaml:"name,omitempty"`
	Email           string `yaml:"email,omitempty"`
	PhoneNumber     string `yaml:"phone_number,omitempty"`
	Location        string `yaml:"location,omitempty"`
	LinkedInProfile string `yaml:"linkedin_profile,omitempty"`
	GitHubProfile   string `yaml:"github_profile,omitempty"`
}

type JobPreferences struct {
	Titles          []string `yaml:"titles,omitempty"`
	Locations       []string `yaml:"locations,omitempty"`
	ExperienceLevel string   `yaml:"experience_level,omitempty"`
	JobType         string   `yaml:"job_type,omitempty"`
	RemoteOnly      bool     `yaml:"remote_only,omitempty"`
}

type Adzuna struct {
	AppID   string `yaml:"app_id,omitempty"`
	AppKey  string `yaml:"app_key,omitempty"`
	Country string `yaml:"country,omitempty"`
}

// Trackers configures where submitted applications are mirrored; empty sections are disabled
type Trackers struct {
	Neo4j  Neo4j  `yaml:"neo4j,omitempty"`
	Sheets Sheets `yaml:"sheets,omitempty"`
	Notion Notion `yaml:"notion,omitempty"`
}

type Neo4j struct {
	URI      string `yaml:"uri,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
}

func (n Neo4j) Enabled() bool { return n.URI != "" }

type Sheets struct {
	CredentialsPath string `yaml:"credentials_path,omitempty"`
	SpreadsheetID   string `yaml:"spreadsheet_id,omitempty"`
	Tab             string `yaml:"tab,omitempty"`
}

func (s Sheets) Enabled() bool { return s.SpreadsheetID != "" }

type Notion struct {
	Token      string `yaml:"token,omitempty"`
	DatabaseID string `yaml:"database_id,omitempty"`
}

func (n Notion) Enabled() bool { return n.DatabaseID != "" }

// Phone returns the top-level phone number, falling back to personal_info
func (p Profile) Phone() string {
	if p.PhoneNumber != "" {
		return p.PhoneNumber
	}
	return p.PersonalInfo.PhoneNumber
}

// HasLinkedInCredentials reports whether both LinkedIn fields are filled in
func (p Profile) HasLinkedInCredentials() bool {
	return strings.TrimSpace(p.LinkedIn.Username) != "" && strings.TrimSpace(p.LinkedIn.Password) != ""
}

// DefaultProfile is written when no profile file exists yet
func DefaultProfile() Profile {
	return Profile{
		LinkedIn: LinkedIn{
			Username: "your.email@example.com",
			Password: "your_password",
		},
		DefaultCoverLetter: "I am excited to apply for this position and believe my skills and experience make me a strong candidate.",
		PhoneNumber:        "+1234567890",
		ResumePath:         "resume.pdf",
		JobPreferences: JobPreferences{
			Titles:          []string{"DevOps Engineer", "Site Reliability Engineer", "Cloud Engineer"},
			Locations:       []string{"London", "Remote"},
			ExperienceLevel: string(domain.ExperienceMidSenior),
			JobType:         string(domain.JobTypeFullTime),
		},
	}
}

// Load reads .env, the profile at CONFIG_PATH and environment overrides
func Load() (Config, error) {
	// .env is optional
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = DefaultPath
	}
	return LoadFrom(path)
}

// LoadFrom is Load with an explicit profile path and without .env handling
func LoadFrom(path string) (Config, error) {
	cfg := Config{
		LogLevel:       "info",
		LogFormat:      "json",
		Path:           path,
		TrackerTimeout: DefaultTrackerTimeout,
		HTTP: HTTP{
			Host:         "0.0.0.0",
			Port:         "8080",
			AllowOrigins: []string{"*"},
		},
	}

	profile, err := ReadProfile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		profile = DefaultProfile()
		if err := SaveProfile(path, profile); err != nil {
			return cfg, err
		}
		cfg.Generated = true
	case err != nil:
		return cfg, err
	}
	cfg.Profile = profile

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if cfg.Profile.Source == "" {
		cfg.Profile.Source = SourceLinkedIn
	}
	if cfg.Profile.Adzuna.Country == "" {
		cfg.Profile.Adzuna.Country = "gb"
	}
	if cfg.Profile.Trackers.Sheets.Tab == "" {
		cfg.Profile.Trackers.Sheets.Tab = "Applications"
	}

	return cfg, cfg.validate()
}

// ReadProfile parses the YAML profile at path
func ReadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return p, nil
}

// SaveProfile writes p to path readable by the owner only; it holds credentials
func SaveProfile(path string, p Profile) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LogFormat, "LOG_FORMAT")
	setString(&cfg.HTTP.Host, "MCP_HOST")
	setString(&cfg.HTTP.Port, "PORT")
	if v := os.Getenv("CORS_ALLOW_ORIGINS"); v != "" {
		cfg.HTTP.AllowOrigins = strings.Split(v, ",")
	}

	p := &cfg.Profile
	setString(&p.Source, "JOB_SOURCE")
	setString(&p.LinkedIn.Username, "LINKEDIN_USERNAME")
	setString(&p.LinkedIn.Password, "LINKEDIN_PASSWORD")
	setString(&p.Adzuna.AppID, "ADZUNA_APP_ID")
	setString(&p.Adzuna.AppKey, "ADZUNA_APP_KEY")
	setString(&p.Adzuna.Country, "ADZUNA_COUNTRY")
	setString(&p.Trackers.Neo4j.URI, "NEO4J_URI")
	setString(&p.Trackers.Neo4j.Username, "NEO4J_USERNAME")
	setString(&p.Trackers.Neo4j.Password, "NEO4J_PASSWORD")
	setString(&p.Trackers.Sheets.CredentialsPath, "GOOGLE_SHEETS_CREDENTIALS_PATH")
	setString(&p.Trackers.Sheets.SpreadsheetID, "GOOGLE_SHEETS_SPREADSHEET_ID")
	setString(&p.Trackers.Sheets.Tab, "GOOGLE_SHEETS_TAB")
	setString(&p.Trackers.Notion.Token, "NOTION_TOKEN")
	setString(&p.Trackers.Notion.DatabaseID, "NOTION_DB_ID")

	if v := os.Getenv("TRACKER_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TRACKER_TIMEOUT %q: %w", v, err)
		}
		cfg.TrackerTimeout = d
	}

	return nil
}

func (c Config) validate() error {
	var problems []string
	var missing []string

	if _, err := strconv.Atoi(c.HTTP.Port); err != nil {
		problems = append(problems, fmt.Sprintf("port %q is not a number", c.HTTP.Port))
	}
	if c.TrackerTimeout <= 0 {
		problems = append(problems, "tracker timeout must be positive")
	}

	p := c.Profile
	switch p.Source {
	case SourceLinkedIn, SourceAdzuna:
	default:
		problems = append(problems, fmt.Sprintf("unknown job source %q", p.Source))
	}

	prefs := p.JobPreferences
	if prefs.ExperienceLevel != "" && !domain.ExperienceLevel(prefs.ExperienceLevel).Valid() {
		problems = append(problems, fmt.Sprintf("job_preferences.experience_level %q is not one of %v", prefs.ExperienceLevel, domain.ExperienceLevels))
	}
	if prefs.JobType != "" && !domain.JobType(prefs.JobType).Valid() {
		problems = append(problems, fmt.Sprintf("job_preferences.job_type %q is not one of %v", prefs.JobType, domain.JobTypes))
	}

	t := p.Trackers
	if t.Neo4j.Enabled() {
		if t.Neo4j.Username == "" {
			missing = append(missing, "NEO4J_USERNAME")
		}
		if t.Neo4j.Password == "" {
			missing = append(missing, "NEO4J_PASSWORD")
		}
	}
	if t.Sheets.Enabled() && t.Sheets.CredentialsPath == "" {
		missing = append(missing, "GOOGLE_SHEETS_CREDENTIALS_PATH")
	}
	if t.Notion.Enabled() && t.Notion.Token == "" {
		missing = append(missing, "NOTION_TOKEN")
	}
	if len(missing) > 0 {
		problems = append(problems, "missing required settings: "+strings.Join(missing, ", "))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

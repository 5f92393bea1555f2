package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// JobID is the opaque identifier assigned by the external job source
type JobID = string

// ExperienceLevel is the seniority bucket of a posting
type ExperienceLevel string

const (
	ExperienceEntry      ExperienceLevel = "Entry"
	ExperienceMidSenior  ExperienceLevel = "Mid-Senior"
	ExperienceDirectorUp ExperienceLevel = "Director+"
)

// ExperienceLevels lists every accepted experience level in display order
var ExperienceLevels = []ExperienceLevel{ExperienceEntry, ExperienceMidSenior, ExperienceDirectorUp}

func (l ExperienceLevel) Valid() bool {
	for _, v := range ExperienceLevels {
		if v == l {
			return true
		}
	}
	return false
}

// JobType is the employment type of a posting
type JobType string

const (
	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeContract   JobType = "Contract"
	JobTypeTemporary  JobType = "Temporary"
	JobTypeVolunteer  JobType = "Volunteer"
	JobTypeInternship JobType = "Internship"
)

// JobTypes lists every accepted job type in display order
var JobTypes = []JobType{
	JobTypeFullTime,
	JobTypePartTime,
	JobTypeContract,
	JobTypeTemporary,
	JobTypeVolunteer,
	JobTypeInternship,
}

func (t JobType) Valid() bool {
	for _, v := range JobTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ApplicationStatus is terminal; no transitions are modeled after "applied"
type ApplicationStatus string

const StatusApplied ApplicationStatus = "applied"

const dateLayout = "2006-01-02"

// Date is a calendar day serialized as YYYY-MM-DD
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day in UTC
func NewDate(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	y, m, d := t.UTC().Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// MustDate is ParseDate for literals
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		if string(b) == "null" {
			*d = Date{}
			return nil
		}
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// JobSummary is the search-time view of a posting
type JobSummary struct {
	JobID              JobID           `json:"job_id"`
	Title              string          `json:"title"`
	Company            string          `json:"company"`
	Location           string          `json:"location"`
	DescriptionSnippet string          `json:"description_snippet"`
	DatePosted         Date            `json:"date_posted"`
	ExperienceLevel    ExperienceLevel `json:"experience_level,omitempty"`
	JobType            JobType         `json:"job_type,omitempty"`
	Remote             bool            `json:"remote"`
	URL                string          `json:"url"`
}

// DetailFields are the enrichment values a source returns for a single posting
type DetailFields struct {
	FullDescription string
	SkillsRequired  []string
	SalaryRange     string
}

// JobDetail is a summary with detail fields merged in
type JobDetail struct {
	JobSummary
	FullDescription string   `json:"full_description,omitempty"`
	SkillsRequired  []string `json:"skills_required,omitempty"`
	SalaryRange     string   `json:"salary_range,omitempty"`
}

// Enriched reports whether detail fields have been merged
func (d JobDetail) Enriched() bool {
	return d.FullDescription != "" || len(d.SkillsRequired) > 0 || d.SalaryRange != ""
}

// Merge returns a copy of d with fields applied; empty fields keep the current value
func (d JobDetail) Merge(fields DetailFields) JobDetail {
	out := d
	if fields.FullDescription != "" {
		out.FullDescription = fields.FullDescription
	}
	if len(fields.SkillsRequired) > 0 {
		out.SkillsRequired = skillSet(fields.SkillsRequired)
	} else {
		out.SkillsRequired = append([]string(nil), d.SkillsRequired...)
	}
	if fields.SalaryRange != "" {
		out.SalaryRange = fields.SalaryRange
	}
	return out
}

// Clone returns a copy that shares no slices with d
func (d JobDetail) Clone() JobDetail {
	out := d
	out.SkillsRequired = append([]string(nil), d.SkillsRequired...)
	return out
}

// skillSet drops blanks and case-insensitive duplicates, keeping first-seen order
func skillSet(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

// SearchCriteria are the filters forwarded to a job source
type SearchCriteria struct {
	Title           string
	Location        string
	ExperienceLevel ExperienceLevel
	JobType         JobType
	Remote          *bool
	Limit           int
}

// ApplicationReceipt is what a source hands back after a submission
type ApplicationReceipt struct {
	ConfirmationID string
	SubmittedAt    time.Time
}

// ApplicationRecord is an immutable ledger entry
type ApplicationRecord struct {
	ApplicationID  uuid.UUID         `json:"application_id"`
	JobID          JobID             `json:"job_id"`
	JobTitle       string            `json:"job_title"`
	Company        string            `json:"company"`
	AppliedAt      time.Time         `json:"applied_at"`
	Status         ApplicationStatus `json:"status"`
	CoverLetter    string            `json:"cover_letter"`
	PhoneNumber    string            `json:"phone_number"`
	ConfirmationID string            `json:"confirmation_id,omitempty"`
}

// CoverLetterPreviewLen is the number of characters kept before the ellipsis
const CoverLetterPreviewLen = 100

// PreviewCoverLetter shortens letters longer than CoverLetterPreviewLen characters
// and appends "..."
func PreviewCoverLetter(letter string) string {
	runes := []rune(letter)
	if len(runes) <= CoverLetterPreviewLen {
		return letter
	}
	return string(runes[:CoverLetterPreviewLen]) + "..."
}

package adzuna

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/honeycarbs/jobapply-gateway/internal/domain"
	jobdomain "github.com/honeycarbs/jobapply-gateway/internal/domain/job"
	"github.com/honeycarbs/jobapply-gateway/pkg/adzuna"
)

// searchClient describes the subset of the Adzuna client used by the provider.
type searchClient interface {
	SearchJobs(ctx context.Context, query string, params adzuna.SearchParams) ([]adzuna.Job, error)
}

// Provider implements job.Source using Adzuna API
type Provider struct {
	client searchClient

	mu       sync.RWMutex
	postings map[domain.JobID]adzuna.Job
}

// NewProvider builds an Adzuna provider
func NewProvider(client searchClient) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("adzuna provider: client is required")
	}
	return &Provider{
		client:   client,
		postings: make(map[domain.JobID]adzuna.Job),
	}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return "adzuna"
}

// SearchJobs queries Adzuna and returns normalized jobs
func (p *Provider) SearchJobs(ctx context.Context, criteria domain.SearchCriteria) ([]domain.JobSummary, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("adzuna provider: client is nil")
	}

	params := adzuna.SearchParams{
		Location:       criteria.Location,
		Remote:         criteria.Remote,
		ResultsPerPage: criteria.Limit,
	}
	switch criteria.JobType {
	case domain.JobTypeFullTime:
		params.ContractTime = "full_time"
	case domain.JobTypePartTime:
		params.ContractTime = "part_time"
	case domain.JobTypeContract, domain.JobTypeTemporary:
		params.ContractType = "contract"
	}

	query := criteria.Title
	if criteria.ExperienceLevel == domain.ExperienceEntry {
		query += " junior"
	}

	respJobs, err := p.client.SearchJobs(ctx, query, params)
	if err != nil {
		return nil, err
	}

	out := make([]domain.JobSummary, 0, len(respJobs))
	p.mu.Lock()
	for _, j := range respJobs {
		p.postings[j.ID] = j
		out = append(out, toSummary(j))
	}
	p.mu.Unlock()

	return out, nil
}

// FetchDetails derives detail fields from the posting captured at search time
func (p *Provider) FetchDetails(ctx context.Context, job domain.JobSummary) (domain.DetailFields, error) {
	p.mu.RLock()
	posting, ok := p.postings[job.JobID]
	p.mu.RUnlock()
	if !ok {
		return domain.DetailFields{}, fmt.Errorf("adzuna provider: posting %s was not returned by a search", job.JobID)
	}

	return domain.DetailFields{
		FullDescription: posting.Description,
		SkillsRequired:  extractSkills(posting.Title + " " + posting.Description),
		SalaryRange:     salaryRange(posting.SalaryMin, posting.SalaryMax),
	}, nil
}

// SubmitApplication is not offered by Adzuna; applications happen on the advertiser's site
func (p *Provider) SubmitApplication(ctx context.Context, job domain.JobSummary, coverLetter, phone string) (domain.ApplicationReceipt, error) {
	return domain.ApplicationReceipt{}, fmt.Errorf("apply at %s: %w", job.URL, jobdomain.ErrUnsupported)
}

var _ jobdomain.Source = (*Provider)(nil)

func toSummary(j adzuna.Job) domain.JobSummary {
	return domain.JobSummary{
		JobID:              j.ID,
		Title:              j.Title,
		Company:            j.CompanyName,
		Location:           j.Location,
		DescriptionSnippet: snippet(j.Description, 160),
		DatePosted:         domain.NewDate(j.PostedAt),
		ExperienceLevel:    experienceFromTitle(j.Title),
		JobType:            jobTypeFromContract(j.ContractTime, j.ContractType),
		Remote:             j.Remote,
		URL:                j.URL,
	}
}

func experienceFromTitle(title string) domain.ExperienceLevel {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "director"), strings.Contains(t, "head of"), strings.Contains(t, "vp "):
		return domain.ExperienceDirectorUp
	case strings.Contains(t, "junior"), strings.Contains(t, "graduate"), strings.Contains(t, "entry"):
		return domain.ExperienceEntry
	default:
		return domain.ExperienceMidSenior
	}
}

func jobTypeFromContract(contractTime, contractType string) domain.JobType {
	switch {
	case contractType == "contract":
		return domain.JobTypeContract
	case contractTime == "part_time":
		return domain.JobTypePartTime
	case contractTime == "full_time", contractType == "permanent":
		return domain.JobTypeFullTime
	default:
		return ""
	}
}

func snippet(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n])) + "..."
}

func salaryRange(lo, hi float64) string {
	switch {
	case lo <= 0 && hi <= 0:
		return ""
	case lo <= 0 || lo == hi:
		return formatMoney(hi)
	case hi <= 0:
		return formatMoney(lo)
	default:
		return formatMoney(lo) + " - " + formatMoney(hi)
	}
}

func formatMoney(v float64) string {
	digits := fmt.Sprintf("%.0f", v)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

var skillVocabulary = []string{
	"aws", "azure", "gcp", "kubernetes", "docker", "terraform", "ansible",
	"python", "go", "golang", "java", "bash", "linux", "ci/cd", "jenkins",
	"sql", "postgresql", "kafka", "react", "typescript",
}

var wordPattern = regexp.MustCompile(`[a-z0-9/+#.]+`)

// extractSkills matches the posting text against a small vocabulary
func extractSkills(text string) []string {
	words := make(map[string]struct{})
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		words[strings.TrimRight(w, ".")] = struct{}{}
	}

	title := cases.Title(language.English)
	var skills []string
	for _, skill := range skillVocabulary {
		if _, ok := words[skill]; !ok {
			continue
		}
		switch skill {
		case "aws", "gcp", "sql", "ci/cd":
			skills = append(skills, strings.ToUpper(skill))
		case "golang":
			skills = append(skills, "Go")
		default:
			skills = append(skills, title.String(skill))
		}
	}
	return skills
}

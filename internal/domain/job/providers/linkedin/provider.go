package linkedin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/jobapply-gateway/internal/domain"
	jobdomain "github.com/honeycarbs/jobapply-gateway/internal/domain/job"
)

// Credentials are the account details held in the profile file
type Credentials struct {
	Username string
	Password string
}

// Provider serves a fixed set of postings shaped like LinkedIn search results.
// It stands in for the real network client, which is out of scope.
type Provider struct {
	postings []domain.JobSummary
	detail   domain.DetailFields
	clock    func() time.Time
}

// NewProvider validates credentials and builds the fixture source
func NewProvider(creds Credentials) (*Provider, error) {
	if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
		return nil, fmt.Errorf("linkedin provider: username and password are required")
	}
	return &Provider{
		postings: fixturePostings(),
		detail:   fixtureDetail(),
		clock:    time.Now,
	}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return "linkedin"
}

// SearchJobs returns the fixture postings narrowed by the enum and remote filters
func (p *Provider) SearchJobs(ctx context.Context, criteria domain.SearchCriteria) ([]domain.JobSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]domain.JobSummary, 0, len(p.postings))
	for _, j := range p.postings {
		if criteria.ExperienceLevel != "" && j.ExperienceLevel != criteria.ExperienceLevel {
			continue
		}
		if criteria.JobType != "" && j.JobType != criteria.JobType {
			continue
		}
		if criteria.Remote != nil && *criteria.Remote && !j.Remote {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

// FetchDetails returns the canned role description for any known posting
func (p *Provider) FetchDetails(ctx context.Context, job domain.JobSummary) (domain.DetailFields, error) {
	if err := ctx.Err(); err != nil {
		return domain.DetailFields{}, err
	}
	fields := p.detail
	fields.SkillsRequired = append([]string(nil), p.detail.SkillsRequired...)
	return fields, nil
}

// SubmitApplication acknowledges the application without contacting LinkedIn
func (p *Provider) SubmitApplication(ctx context.Context, job domain.JobSummary, coverLetter, phone string) (domain.ApplicationReceipt, error) {
	if err := ctx.Err(); err != nil {
		return domain.ApplicationReceipt{}, err
	}
	return domain.ApplicationReceipt{
		ConfirmationID: "li-" + uuid.NewString(),
		SubmittedAt:    p.clock(),
	}, nil
}

var _ jobdomain.Source = (*Provider)(nil)

func fixturePostings() []domain.JobSummary {
	return []domain.JobSummary{
		{
			JobID:              "3123456789",
			Title:              "Senior DevOps Engineer",
			Company:            "Tech Innovations Ltd",
			Location:           "London, United Kingdom",
			DescriptionSnippet: "Looking for an experienced DevOps engineer to help build and maintain our cloud infrastructure...",
			DatePosted:         domain.MustDate("2025-07-15"),
			ExperienceLevel:    domain.ExperienceMidSenior,
			JobType:            domain.JobTypeFullTime,
			Remote:             true,
			URL:                "https://www.linkedin.com/jobs/view/3123456789",
		},
		{
			JobID:              "3123456790",
			Title:              "DevOps Team Lead",
			Company:            "Global Solutions",
			Location:           "London, United Kingdom",
			DescriptionSnippet: "Seeking a DevOps Team Lead to oversee our infrastructure and CI/CD pipelines...",
			DatePosted:         domain.MustDate("2025-07-17"),
			ExperienceLevel:    domain.ExperienceMidSenior,
			JobType:            domain.JobTypeFullTime,
			Remote:             false,
			URL:                "https://www.linkedin.com/jobs/view/3123456790",
		},
		{
			JobID:              "3123456791",
			Title:              "Cloud DevOps Engineer",
			Company:            "Fintech Startup",
			Location:           "Remote",
			DescriptionSnippet: "Join our team to help build scalable cloud infrastructure using AWS and Kubernetes...",
			DatePosted:         domain.MustDate("2025-07-18"),
			ExperienceLevel:    domain.ExperienceMidSenior,
			JobType:            domain.JobTypeFullTime,
			Remote:             true,
			URL:                "https://www.linkedin.com/jobs/view/3123456791",
		},
	}
}

func fixtureDetail() domain.DetailFields {
	return domain.DetailFields{
		FullDescription: `About the role:
We are looking for a skilled DevOps Engineer to help us build and maintain our cloud infrastructure.
You will be responsible for implementing and managing CI/CD pipelines, infrastructure as code,
and ensuring the reliability and scalability of our systems.

Requirements:
- 3+ years of experience with AWS or similar cloud platforms
- Strong knowledge of Kubernetes, Docker, and containerization
- Experience with infrastructure as code tools (Terraform, CloudFormation)
- Proficiency in scripting languages (Python, Bash)
- Experience with CI/CD tools (Jenkins, GitHub Actions, GitLab CI)

Benefits:
- Competitive salary
- Remote work options
- Flexible hours
- Professional development budget
- Health insurance`,
		SkillsRequired: []string{"AWS", "Kubernetes", "Docker", "Terraform", "Python", "CI/CD", "Linux"},
		SalaryRange:    "£70,000 - £90,000",
	}
}

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/honeycarbs/jobapply-gateway/internal/config"
	"github.com/honeycarbs/jobapply-gateway/internal/domain"
)

const coverLetterTemplate = `
Dear Hiring Manager,

I am writing to express my interest in the [JOB_TITLE] position at [COMPANY_NAME]. With my background in DevOps engineering, cloud infrastructure, and automation, I believe I would be a valuable addition to your team.

My experience includes:
- Designing and implementing CI/CD pipelines
- Managing Kubernetes clusters in production environments
- Infrastructure as Code using Terraform and CloudFormation
- Monitoring and observability solutions
- Cloud security best practices

I am particularly interested in [COMPANY_NAME] because of your innovative approach to technology. I am confident that my skills and enthusiasm would make me a strong candidate for this position.

Thank you for considering my application. I look forward to the opportunity to discuss how I can contribute to your team.

Sincerely,
[YOUR_NAME]
`

func main() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = config.DefaultPath
	}

	existing, err := config.ReadProfile(path)
	found := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("failed to read existing profile: %v", err)
	}

	p := &prompter{
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		password: readPassword,
	}

	fmt.Println("Job Application MCP Gateway - Profile Setup")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("This will help you set up your profile for job applications.")
	fmt.Printf("Your information will be stored in %s.\n", path)
	fmt.Println(strings.Repeat("=", 50))
	if found {
		fmt.Println("Existing configuration found. You can update your information.")
	}

	profile, err := collect(p, existing)
	if err != nil {
		log.Fatalf("profile setup aborted: %v", err)
	}

	if err := config.SaveProfile(path, profile); err != nil {
		log.Fatalf("failed to save profile: %v", err)
	}

	fmt.Printf("\nProfile setup complete! Your information has been saved to %s.\n", path)
	fmt.Println("You can edit this file directly to make further changes.")
	fmt.Println("\nTo start the gateway, run: go run ./cmd/server")
}

var isTerminal = term.IsTerminal

// readPassword hides input on a terminal; piped input is read from in like any other answer
func readPassword(in *bufio.Reader) (string, error) {
	fd := int(os.Stdin.Fd())
	if isTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println()
		return string(b), err
	}
	return readLine(in)
}

func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

type prompter struct {
	in       *bufio.Reader
	out      io.Writer
	password func(*bufio.Reader) (string, error)
}

func (p *prompter) section(title string) {
	fmt.Fprintf(p.out, "\n%s\n%s\n", title, strings.Repeat("-", 20))
}

func (p *prompter) ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	return readLine(p.in)
}

func (p *prompter) askSecret(label string) (string, error) {
	fmt.Fprint(p.out, label)
	return p.password(p.in)
}

func (p *prompter) askList(label string) ([]string, error) {
	line, err := p.ask(label)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, item := range strings.Split(line, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out, nil
}

// askChoice repeats the prompt until the answer is blank or passes valid
func (p *prompter) askChoice(label string, valid func(string) bool) (string, error) {
	for {
		answer, err := p.ask(label)
		if err != nil {
			return "", err
		}
		if answer == "" || valid(answer) {
			return answer, nil
		}
		fmt.Fprintf(p.out, "%q is not a valid option.\n", answer)
	}
}

// collect asks for every profile field, starting from the existing profile
func collect(p *prompter, profile config.Profile) (config.Profile, error) {
	var err error
	must := func(v string, e error) string {
		if err == nil {
			err = e
		}
		return v
	}
	mustList := func(v []string, e error) []string {
		if err == nil {
			err = e
		}
		return v
	}

	p.section("LinkedIn Credentials")
	profile.LinkedIn.Username = must(p.ask("LinkedIn Email/Username: "))
	if err != nil {
		return config.Profile{}, err
	}
	profile.LinkedIn.Password = must(p.askSecret("LinkedIn Password: "))

	p.section("Personal Information")
	info := &profile.PersonalInfo
	info.Name = must(p.ask("Full Name: "))
	info.Email = must(p.ask("Email: "))
	info.PhoneNumber = must(p.ask("Phone Number: "))
	info.Location = must(p.ask("Location (e.g., London, United Kingdom): "))
	info.LinkedInProfile = must(p.ask("LinkedIn Profile URL: "))
	info.GitHubProfile = must(p.ask("GitHub Profile URL (optional): "))

	p.section("Resume")
	if resume := must(p.ask("Path to your resume PDF (leave blank to add later): ")); resume != "" {
		profile.ResumePath = resume
	}

	p.section("Job Preferences")
	prefs := &profile.JobPreferences
	fmt.Fprintln(p.out, "Enter job titles you're interested in (comma-separated):")
	prefs.Titles = mustList(p.askList("(e.g., DevOps Engineer, SRE, Cloud Engineer): "))
	fmt.Fprintln(p.out, "Enter locations you're interested in (comma-separated):")
	prefs.Locations = mustList(p.askList("(e.g., London, Remote): "))
	prefs.ExperienceLevel = must(p.askChoice(
		"Experience Level (Entry, Mid-Senior, Director+): ",
		func(s string) bool { return domain.ExperienceLevel(s).Valid() },
	))
	prefs.JobType = must(p.askChoice(
		"Job Type (Full-time, Part-time, Contract, Temporary, Volunteer, Internship): ",
		func(s string) bool { return domain.JobType(s).Valid() },
	))
	prefs.RemoteOnly = strings.EqualFold(must(p.ask("Remote Only? (yes/no): ")), "yes")

	if err != nil {
		return config.Profile{}, err
	}

	if profile.DefaultCoverLetter == "" {
		profile.DefaultCoverLetter = coverLetterTemplate
	}
	return profile, nil
}

// Package jobs analyzes job descriptions so interview prompts can be
// tailored to a specific posting. Input is either free text or a LinkedIn
// job URL; extraction goes through the LLM when one is configured and falls
// back to deterministic keyword matching otherwise.
package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/aceyai/acey-backend/internal/models"
	"github.com/aceyai/acey-backend/internal/prompts"
	"github.com/aceyai/acey-backend/internal/providers"
)

// maxDescriptionChars bounds what we send to the LLM per analysis.
const maxDescriptionChars = 8000

// truncateUTF8 cuts s to at most limit bytes without splitting a rune.
func truncateUTF8(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

type Service struct {
	provider    providers.Provider
	model       string
	temperature float64
}

// NewService creates a job analyzer. provider may be nil, in which case
// every analysis uses the keyword fallback.
func NewService(provider providers.Provider, model string) *Service {
	return &Service{
		provider:    provider,
		model:       model,
		temperature: 0.1,
	}
}

// Analyze extracts a structured JobAnalysis from free text or a LinkedIn
// URL. It always returns an analysis; LLM failures degrade to the keyword
// fallback.
func (s *Service) Analyze(ctx context.Context, input string) *models.JobAnalysis {
	description := input
	if IsLinkedInURL(input) {
		var source string
		description, source = ScrapeLinkedIn(ctx, input)
		slog.Info("Scraped LinkedIn posting", "source", source, "chars", len(description))
	}

	description = truncateUTF8(description, maxDescriptionChars)

	if s.provider == nil {
		return KeywordAnalysis(description)
	}

	text, err := s.provider.GenerateText(ctx, providers.Config{
		Model:       s.model,
		Temperature: s.temperature,
		Prompt:      prompts.JobExtraction(description),
	})
	if err != nil {
		slog.Warn("Job extraction request failed, using keyword fallback", "error", err)
		return KeywordAnalysis(description)
	}

	var analysis models.JobAnalysis
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &analysis); err != nil {
		slog.Warn("Job extraction response was not valid JSON, using keyword fallback", "error", err)
		return KeywordAnalysis(description)
	}

	return &analysis
}

func stripCodeFences(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	return strings.TrimSpace(response)
}

var roleKeywords = []string{
	"software engineer", "data scientist", "product manager", "designer",
	"frontend developer", "backend developer", "full stack developer",
	"devops engineer", "engineering manager", "data analyst",
	"marketing manager", "account executive", "project manager",
	"machine learning engineer", "qa engineer", "developer", "engineer",
	"analyst", "consultant", "manager",
}

var skillKeywords = []string{
	"python", "javascript", "typescript", "java", "go", "react", "node.js",
	"sql", "aws", "gcp", "azure", "docker", "kubernetes", "terraform",
	"machine learning", "data analysis", "agile", "scrum", "git", "rest",
	"graphql", "ci/cd", "communication", "leadership",
}

// industryTable is checked in order so a description matching several
// keywords always resolves to the same industry.
var industryTable = []struct {
	keyword  string
	industry string
}{
	{"fintech", "Financial Technology"},
	{"bank", "Finance"},
	{"health", "Healthcare"},
	{"biotech", "Biotechnology"},
	{"e-commerce", "E-commerce"},
	{"retail", "Retail"},
	{"saas", "Software / SaaS"},
	{"cloud", "Software / SaaS"},
	{"education", "Education"},
	{"gaming", "Gaming"},
	{"logistics", "Logistics"},
	{"insurance", "Insurance"},
}

var companyPattern = regexp.MustCompile(`(?i)\bat ([A-Z][\w&.]*(?: [A-Z][\w&.]*){0,3})`)

// KeywordAnalysis computes a JobAnalysis from plain substring checks. It is
// the deterministic fallback when no LLM is available or its output cannot
// be parsed.
func KeywordAnalysis(description string) *models.JobAnalysis {
	lower := strings.ToLower(description)
	analysis := &models.JobAnalysis{
		ExperienceLevel: "mid",
		Industry:        "General",
	}

	for _, role := range roleKeywords {
		if strings.Contains(lower, role) {
			analysis.Role = titleCase(role)
			break
		}
	}

	if match := companyPattern.FindStringSubmatch(description); len(match) > 1 {
		analysis.Company = strings.TrimRight(match[1], ".")
	}

	switch {
	case strings.Contains(lower, "principal") || strings.Contains(lower, "staff"):
		analysis.ExperienceLevel = "senior"
	case strings.Contains(lower, "senior") || strings.Contains(lower, "lead"):
		analysis.ExperienceLevel = "senior"
	case strings.Contains(lower, "junior") || strings.Contains(lower, "entry") || strings.Contains(lower, "intern"):
		analysis.ExperienceLevel = "entry"
	case strings.Contains(lower, "director") || strings.Contains(lower, "vp ") || strings.Contains(lower, "head of"):
		analysis.ExperienceLevel = "executive"
	}

	for _, entry := range industryTable {
		if strings.Contains(lower, entry.keyword) {
			analysis.Industry = entry.industry
			break
		}
	}

	for _, skill := range skillKeywords {
		if strings.Contains(lower, skill) {
			analysis.RequiredSkills = append(analysis.RequiredSkills, skill)
		}
	}

	for _, line := range strings.Split(description, "\n") {
		trimmed := strings.TrimSpace(strings.TrimLeft(line, "-*• \t"))
		lowerLine := strings.ToLower(trimmed)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(lowerLine, "responsible") || strings.Contains(lowerLine, "you will") {
			analysis.KeyResponsibilities = append(analysis.KeyResponsibilities, trimmed)
		}
	}

	if len(analysis.RequiredSkills) > 0 {
		analysis.InterviewFocus = append(analysis.InterviewFocus, "technical skills")
	}
	analysis.InterviewFocus = append(analysis.InterviewFocus, "behavioral questions")

	return analysis
}

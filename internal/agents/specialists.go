package agents

import (
	"fmt"
	"strings"

	"github.com/aceyai/acey-backend/internal/models"
)

// AnswerContext carries the optional metadata the client can attach to an
// answer for enhanced feedback.
type AnswerContext struct {
	QuestionContext   string   `json:"question_context,omitempty"`
	UserID            string   `json:"user_id,omitempty"`
	BodyLanguageScore *float64 `json:"body_language_score,omitempty"`
}

// BehavioralPatterns flags the behavioral signals found in an answer.
type BehavioralPatterns struct {
	STARMethod       bool
	Leadership       bool
	Teamwork         bool
	ProblemSolving   bool
	SpecificExamples bool
}

// AnalyzeBehavioral scans the answer for behavioral interview signals.
func AnalyzeBehavioral(answer string) BehavioralPatterns {
	return BehavioralPatterns{
		STARMethod:       strings.Contains(strings.ToUpper(answer), "STAR") || containsAny(answer, "situation", "task", "action", "result"),
		Leadership:       containsAny(answer, "led", "managed", "coordinated", "directed"),
		Teamwork:         containsAny(answer, "team", "collaborated", "worked with", "together"),
		ProblemSolving:   containsAny(answer, "solved", "resolved", "figured out", "addressed"),
		SpecificExamples: containsAny(answer, "when", "example", "time", "situation"),
	}
}

// BehavioralFollowUp turns a behavioral analysis into the primary follow-up
// question for the answer.
func BehavioralFollowUp(answer string) models.FollowUpQuestion {
	patterns := AnalyzeBehavioral(answer)
	switch {
	case patterns.STARMethod:
		return models.FollowUpQuestion{
			Question:      "Great use of the STAR method! Can you elaborate on the specific results you achieved?",
			Difficulty:    "medium",
			Reasoning:     "Building on demonstrated STAR method usage",
			ExpectedFocus: "quantifiable results and outcomes",
		}
	case patterns.Leadership:
		return models.FollowUpQuestion{
			Question:      "That shows strong leadership. How did you handle any resistance or challenges from your team?",
			Difficulty:    "hard",
			Reasoning:     "Exploring leadership challenges and conflict resolution",
			ExpectedFocus: "leadership under pressure",
		}
	default:
		return models.FollowUpQuestion{
			Question:      "Can you walk me through a specific example using the STAR method?",
			Difficulty:    "easy",
			Reasoning:     "Encouraging structured response format",
			ExpectedFocus: "STAR method implementation",
		}
	}
}

var technicalKeywords = []string{
	"python", "javascript", "java", "go", "react", "node.js", "sql", "aws",
	"docker", "kubernetes", "machine learning", "ai", "data analysis",
	"agile", "scrum", "git", "api", "microservices", "cloud", "devops",
	"testing", "database",
}

// ExtractTechnicalSkills returns the technical keywords mentioned in the
// answer, in dictionary order.
func ExtractTechnicalSkills(answer string) []string {
	lower := strings.ToLower(answer)
	var found []string
	for _, skill := range technicalKeywords {
		if strings.Contains(lower, skill) {
			found = append(found, skill)
		}
	}
	return found
}

// AssessTechnical builds the technical specialist's read of the answer.
func AssessTechnical(answer string) models.TechnicalInsights {
	skills := ExtractTechnicalSkills(answer)
	if len(skills) == 0 {
		return models.TechnicalInsights{
			SkillEvaluation:    "No specific technical skills mentioned",
			TechnicalQuestions: []string{"What technical skills are you most comfortable with?"},
			SkillGaps:          []string{"Technical skill demonstration needed"},
			Recommendations:    []string{"Provide specific examples of technical work"},
		}
	}

	return models.TechnicalInsights{
		SkillEvaluation: "Demonstrated skills: " + strings.Join(skills, ", "),
		TechnicalQuestions: []string{
			fmt.Sprintf("How would you approach debugging a %s application?", skills[0]),
			"What's your experience with version control systems?",
			"How do you stay updated with technology trends?",
		},
		SkillGaps:       []string{"Depth of technical knowledge needs exploration"},
		Recommendations: []string{"Provide more technical details in responses"},
	}
}

// Word-count thresholds for pacing cues.
const (
	conciseWordLimit = 50
	verboseWordLimit = 100
)

// AssessTiming derives a pacing cue from the answer's word count.
func AssessTiming(answer string) models.TimeManagementCue {
	words := len(strings.Fields(answer))
	switch {
	case words > verboseWordLimit:
		return models.TimeManagementCue{
			CueType:      "warning",
			Message:      "Try to be more concise in your responses.",
			UrgencyLevel: "medium",
		}
	case words < conciseWordLimit:
		return models.TimeManagementCue{
			CueType:      "encouragement",
			Message:      "Good pacing! You can elaborate more if needed.",
			UrgencyLevel: "low",
		}
	default:
		return models.TimeManagementCue{
			CueType:      "normal",
			Message:      "Good timing on that response.",
			UrgencyLevel: "low",
		}
	}
}

// AssessBodyLanguage interprets the client-reported presence score.
func AssessBodyLanguage(score *float64) models.BodyLanguageFeedback {
	if score == nil {
		return models.BodyLanguageFeedback{
			Analysis:        "Body language data not available",
			ConfidenceScore: 0.5,
			EngagementLevel: "unknown",
			Suggestions:     []string{"Maintain eye contact with the camera"},
		}
	}

	switch {
	case *score > 0.8:
		return models.BodyLanguageFeedback{
			Analysis:        "Excellent body language and engagement",
			ConfidenceScore: *score,
			EngagementLevel: "high",
			Suggestions:     []string{"Keep up the great energy!"},
		}
	case *score > 0.6:
		return models.BodyLanguageFeedback{
			Analysis:        "Good body language, room for improvement",
			ConfidenceScore: *score,
			EngagementLevel: "medium",
			Suggestions:     []string{"Try to maintain more consistent eye contact"},
		}
	default:
		return models.BodyLanguageFeedback{
			Analysis:        "Body language needs improvement",
			ConfidenceScore: *score,
			EngagementLevel: "low",
			Suggestions: []string{
				"Focus on maintaining eye contact",
				"Sit up straight",
				"Use hand gestures naturally",
			},
		}
	}
}

// CoordinationActions decides which specialists the answer warrants.
func CoordinationActions(answer string, ctx AnswerContext) []string {
	var actions []string
	if containsAny(answer, "code", "programming", "software", "technical") {
		actions = append(actions, "activate_technical")
	}
	if containsAny(answer, "team", "led", "managed", "worked") {
		actions = append(actions, "activate_behavioral")
	}
	if len(strings.Fields(answer)) > 80 {
		actions = append(actions, "activate_time_management")
	}
	if ctx.BodyLanguageScore != nil && *ctx.BodyLanguageScore < 0.6 {
		actions = append(actions, "activate_body_language")
	}
	return actions
}

// Aggregate runs every specialist over the answer and merges the results
// into one feedback object.
func Aggregate(answer string, ctx AnswerContext) models.EnhancedFeedback {
	primary := BehavioralFollowUp(answer)
	technical := AssessTechnical(answer)
	timing := AssessTiming(answer)
	body := AssessBodyLanguage(ctx.BodyLanguageScore)

	return models.EnhancedFeedback{
		PrimaryQuestion:        &primary,
		TechnicalInsights:      &technical,
		TimeManagementFeedback: &timing,
		BodyLanguageFeedback:   &body,
		CoordinationActions:    CoordinationActions(answer, ctx),
		OverallAssessment: map[string]any{
			"answer_length":    len(answer),
			"word_count":       len(strings.Fields(answer)),
			"skills_mentioned": len(ExtractTechnicalSkills(answer)),
		},
	}
}

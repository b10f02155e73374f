// Package agents holds the follow-up question logic. Each specialist is a
// pure function over the candidate's answer text; there is no messaging
// layer and no state between calls.
package agents

import (
	"strings"

	"github.com/aceyai/acey-backend/internal/models"
)

func containsAny(text string, words ...string) bool {
	lower := strings.ToLower(text)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// Classify picks a follow-up question for the answer based on the session
// difficulty mode. Rules are ordered; the first match wins.
func Classify(mode, answer string) models.FollowUpQuestion {
	switch mode {
	case "medium":
		return classifyMedium(answer)
	case "hard":
		return classifyHard(answer)
	default:
		return classifyEasy(answer)
	}
}

func classifyEasy(answer string) models.FollowUpQuestion {
	switch {
	case containsAny(answer, "experience", "worked"):
		return models.FollowUpQuestion{
			Question:      "That's interesting! What skills did you develop in that role?",
			Difficulty:    "easy",
			Reasoning:     "Building on experience mentioned in answer",
			ExpectedFocus: "skill development and learning",
		}
	case containsAny(answer, "strength", "good at"):
		return models.FollowUpQuestion{
			Question:      "Great! Can you give me a specific example of when you used that strength?",
			Difficulty:    "easy",
			Reasoning:     "Asking for concrete examples of strengths",
			ExpectedFocus: "specific examples and STAR method",
		}
	default:
		return models.FollowUpQuestion{
			Question:      "Thank you for sharing that. What motivates you in your work?",
			Difficulty:    "easy",
			Reasoning:     "General follow-up to keep conversation flowing",
			ExpectedFocus: "motivation and work preferences",
		}
	}
}

func classifyMedium(answer string) models.FollowUpQuestion {
	switch {
	case containsAny(answer, "challenge", "problem"):
		return models.FollowUpQuestion{
			Question:      "How did you approach solving that challenge? Walk me through your process.",
			Difficulty:    "medium",
			Reasoning:     "Asking for detailed problem-solving approach",
			ExpectedFocus: "analytical thinking and process",
		}
	case containsAny(answer, "team", "colleague"):
		return models.FollowUpQuestion{
			Question:      "What was the outcome, and what would you do differently next time?",
			Difficulty:    "medium",
			Reasoning:     "Asking for reflection and learning",
			ExpectedFocus: "outcomes and continuous improvement",
		}
	default:
		return models.FollowUpQuestion{
			Question:      "Can you provide more specific details about the situation and your actions?",
			Difficulty:    "medium",
			Reasoning:     "Encouraging STAR method structure",
			ExpectedFocus: "detailed STAR responses",
		}
	}
}

func classifyHard(answer string) models.FollowUpQuestion {
	switch {
	case containsAny(answer, "decision", "leadership"):
		return models.FollowUpQuestion{
			Question:      "What were the immediate consequences of that decision, and how did you handle any pushback?",
			Difficulty:    "hard",
			Reasoning:     "Testing leadership under pressure",
			ExpectedFocus: "consequences and conflict management",
		}
	case containsAny(answer, "conflict", "disagreement"):
		return models.FollowUpQuestion{
			Question:      "How did you ensure the resolution was fair to all parties involved?",
			Difficulty:    "hard",
			Reasoning:     "Testing fairness and diplomacy",
			ExpectedFocus: "fairness and stakeholder management",
		}
	default:
		return models.FollowUpQuestion{
			Question:      "What was the most difficult aspect of that situation, and how did you overcome it?",
			Difficulty:    "hard",
			Reasoning:     "Pushing for deeper analysis",
			ExpectedFocus: "complex problem-solving and resilience",
		}
	}
}

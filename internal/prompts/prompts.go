// Package prompts builds every system and analysis prompt the server sends
// to the LLM. Templates are fixed strings; session specifics are spliced in
// with fmt.Sprintf.
package prompts

import (
	"fmt"
	"strings"

	"github.com/aceyai/acey-backend/internal/models"
)

// Modes accepted by session bootstrap.
const (
	ModeEasy   = "easy"
	ModeMedium = "medium"
	ModeHard   = "hard"
	ModeCustom = "custom"
)

// ValidMode reports whether mode is one of the supported difficulty modes.
func ValidMode(mode string) bool {
	switch mode {
	case ModeEasy, ModeMedium, ModeHard, ModeCustom:
		return true
	}
	return false
}

var systemPrompts = map[string]string{
	ModeEasy: `You are Acey, a friendly AI mock interviewer for EASY mode.
Ask common, straightforward interview questions. Begin with a warm greeting and ask
the candidate to introduce themselves. Speak clearly and with confidence. Keep responses
natural, under 10 words, and ask one question at a time. Focus on basic questions about
experience, skills, and background. Be encouraging and supportive.`,

	ModeMedium: `You are Acey, a professional AI mock interviewer for MEDIUM mode.
Ask behavioral and situational questions. Begin with a brief greeting, then dive into
structured behavioral questions. Give candidates 15 seconds to answer each question.
If they exceed 15 seconds, politely interrupt and move to the next question. Ask
follow-up questions to get specific examples. Focus on STAR method responses and
problem-solving scenarios.`,

	ModeHard: `You are Acey, a challenging AI mock interviewer for HARD mode.
Ask complex behavioral and situational questions with strict timing. Give candidates
only 5 seconds to begin their answer. If they don't start within 5 seconds, skip
the question and ask for clarification on why they hesitated. Then ask a follow-up
question. Be direct and professional. Focus on leadership, conflict resolution, and
high-pressure scenarios.`,
}

var firstMessages = map[string]string{
	ModeEasy:   "Hi there! I'm Acey, and I'll be your interviewer today. Let's start easy: tell me a little about yourself.",
	ModeMedium: "Hello, I'm Acey. We'll work through some behavioral questions today. To begin, tell me about a recent challenge you faced at work.",
	ModeHard:   "I'm Acey. We'll move fast today, so answer promptly. First question: describe a time you had to make an unpopular decision.",
}

var curveballInstructions = map[string]string{
	"clarification": "Occasionally ask the candidate to clarify or restate part of their answer in a different way.",
	"roleplay":      "At least once, switch into a role-play scenario and ask the candidate to respond in character.",
	"stress":        "Periodically apply polite pressure: question an assumption in the candidate's answer or ask them to defend a choice.",
}

// SystemPrompt builds the interviewer system prompt for the session,
// appending job-description context when an analysis is attached.
func SystemPrompt(session *models.InterviewSession) string {
	var prompt string
	if session.Mode == ModeCustom && session.Custom != nil {
		prompt = customSystemPrompt(session.Custom)
	} else {
		prompt = systemPrompts[session.Mode]
		if prompt == "" {
			prompt = systemPrompts[ModeEasy]
		}
	}

	if session.JobAnalysis != nil {
		prompt += "\n\n" + jobContext(session.JobAnalysis)
	}

	return prompt
}

func customSystemPrompt(custom *models.CustomConfig) string {
	var b strings.Builder
	b.WriteString(`You are Acey, an AI mock interviewer running a CUSTOM session.
Ask one question at a time, keep your own responses short, and stay professional.`)

	if custom.QuestionType != "" {
		fmt.Fprintf(&b, "\nFocus your questions on %s topics.", custom.QuestionType)
	}
	if custom.TimeLimit > 0 {
		fmt.Fprintf(&b, "\nGive candidates %d seconds to answer each question. If they run over, politely interrupt and move on.", custom.TimeLimit)
	}
	if instruction, ok := curveballInstructions[strings.ToLower(custom.Curveball)]; ok {
		b.WriteString("\n" + instruction)
	}

	return b.String()
}

// FirstMessage picks the assistant's opening utterance. Custom sessions get
// an opener keyed off the configured question type.
func FirstMessage(session *models.InterviewSession) string {
	if session.Mode == ModeCustom && session.Custom != nil {
		qt := strings.ToLower(session.Custom.QuestionType)
		switch {
		case strings.Contains(qt, "technical"):
			return "Hi, I'm Acey. Today we'll dig into your technical background. What technologies have you worked with most?"
		case strings.Contains(qt, "behavioral"):
			return "Hi, I'm Acey. We'll focus on behavioral questions today. Tell me about a project you're proud of."
		case strings.Contains(qt, "leadership"):
			return "Hi, I'm Acey. Let's talk leadership. Tell me about a team you've led."
		}
		return "Hi, I'm Acey, your interviewer for this custom session. Let's start: tell me about yourself."
	}

	if msg, ok := firstMessages[session.Mode]; ok {
		return msg
	}
	return firstMessages[ModeEasy]
}

func jobContext(analysis *models.JobAnalysis) string {
	return fmt.Sprintf(`JOB CONTEXT:
The candidate is preparing for this specific position. Tailor your questions to it.
- Role: %s
- Company: %s
- Key responsibilities: %s
- Required skills: %s
- Experience level: %s
- Industry: %s
- Interview focus areas: %s
Ask at least one question grounded in the required skills and one grounded in the responsibilities.`,
		analysis.Role,
		analysis.Company,
		strings.Join(analysis.KeyResponsibilities, "; "),
		strings.Join(analysis.RequiredSkills, ", "),
		analysis.ExperienceLevel,
		analysis.Industry,
		strings.Join(analysis.InterviewFocus, ", "),
	)
}

// FrameAnalysis is the fixed prompt sent with every camera frame.
const FrameAnalysis = `You are observing one snapshot of a candidate in a mock job interview.
In two sentences or fewer, comment on their body language: posture, eye contact,
facial expression, and hand placement. Be specific and constructive. Do not
comment on the room, clothing brands, or anything unrelated to interview presence.`

// Review builds the end-of-interview scoring prompt from the transcript and
// the accumulated body-language notes.
func Review(transcript, mode string, frameNotes []string) string {
	notes := "No body language observations were recorded."
	if len(frameNotes) > 0 {
		notes = "- " + strings.Join(frameNotes, "\n- ")
	}

	return fmt.Sprintf(`You are an experienced interview coach. Review the following mock interview
(difficulty mode: %s) and produce structured feedback.

TRANSCRIPT:
%s

BODY LANGUAGE OBSERVATIONS:
%s

SCORING RULES:
1. Start from a base score of 100.
2. Deduct 2 points per filler word ("um", "uh", "like", "you know"), but ONLY
   when the same filler is used repeatedly as a sentence transition. Scattered,
   occasional fillers cost nothing.
3. Mode adjustments:
   - easy: +5 bonus for clear self-introduction and complete answers; -5 for
     one-word answers.
   - medium: +10 bonus for answers structured with the STAR method
     (Situation, Task, Action, Result); -10 for answers with no concrete example.
   - hard: +10 bonus for staying composed under pressure and answering promptly;
     -10 for long hesitations or dodged questions.
   - custom: apply medium rules.
4. Deduct up to 10 points for poor body language according to the observations.
5. The final score is baseScore + bonuses - deductions, clamped to 0-100.

Respond with ONLY a JSON object, no markdown fences, in exactly this shape:
{
  "whatYouDidWell": ["..."],
  "areasForImprovement": ["..."],
  "overallScore": 0,
  "scoreExplanation": "...",
  "scoringBreakdown": {"baseScore": 100, "bonuses": 0, "deductions": 0, "finalScore": 0},
  "summary": "..."
}`, mode, transcript, notes)
}

// JobExtraction builds the structured-extraction prompt for a job
// description.
func JobExtraction(description string) string {
	return fmt.Sprintf(`Extract structured information from the following job description.

JOB DESCRIPTION:
%s

Respond with ONLY a JSON object, no markdown fences, in exactly this shape:
{
  "role": "...",
  "company": "...",
  "keyResponsibilities": ["..."],
  "requiredSkills": ["..."],
  "experienceLevel": "entry|mid|senior|executive",
  "industry": "...",
  "interviewFocus": ["..."]
}
If a field cannot be determined, use an empty string or empty array.`, description)
}

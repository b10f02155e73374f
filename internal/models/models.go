package models

import "time"

// InterviewSession holds the per-call state for one mock interview.
// Sessions are keyed by the assistant id issued by the voice platform so
// concurrent interviews cannot interleave each other's frame notes.
type InterviewSession struct {
	ID          string        `json:"id"`
	Mode        string        `json:"mode"`
	SessionName string        `json:"session_name,omitempty"`
	Custom      *CustomConfig `json:"custom,omitempty"`
	JobAnalysis *JobAnalysis  `json:"job_analysis,omitempty"`
	FrameNotes  []string      `json:"frame_notes"`
	RateLimited bool          `json:"rate_limited"`
	CreatedAt   time.Time     `json:"created_at"`
	StartedAt   time.Time     `json:"started_at,omitempty"`
}

// CustomConfig carries the options for a custom-difficulty session.
type CustomConfig struct {
	QuestionType string `json:"questionType"`
	TimeLimit    int    `json:"timeLimit"` // seconds per answer, 0 = none
	Curveball    string `json:"curveballs"`
}

// JobAnalysis is the structured extraction of a job description.
type JobAnalysis struct {
	Role                string   `json:"role"`
	Company             string   `json:"company"`
	KeyResponsibilities []string `json:"keyResponsibilities"`
	RequiredSkills      []string `json:"requiredSkills"`
	ExperienceLevel     string   `json:"experienceLevel"`
	Industry            string   `json:"industry"`
	InterviewFocus      []string `json:"interviewFocus"`
}

// ScoringBreakdown itemizes how the overall score was reached.
type ScoringBreakdown struct {
	BaseScore  int `json:"baseScore"`
	Bonuses    int `json:"bonuses"`
	Deductions int `json:"deductions"`
	FinalScore int `json:"finalScore"`
}

// Review is the end-of-interview feedback returned to the client.
type Review struct {
	WhatYouDidWell      []string         `json:"whatYouDidWell"`
	AreasForImprovement []string         `json:"areasForImprovement"`
	OverallScore        int              `json:"overallScore"`
	ScoreExplanation    string           `json:"scoreExplanation"`
	ScoringBreakdown    ScoringBreakdown `json:"scoringBreakdown"`
	Summary             string           `json:"summary"`
}

// FollowUpQuestion is one suggested interviewer follow-up.
type FollowUpQuestion struct {
	Question      string `json:"question"`
	Difficulty    string `json:"difficulty"`
	Reasoning     string `json:"reasoning,omitempty"`
	ExpectedFocus string `json:"expected_focus,omitempty"`
}

// TechnicalInsights summarizes the technical content of an answer.
type TechnicalInsights struct {
	SkillEvaluation    string   `json:"skill_evaluation"`
	TechnicalQuestions []string `json:"technical_questions"`
	SkillGaps          []string `json:"skill_gaps"`
	Recommendations    []string `json:"recommendations"`
}

// TimeManagementCue is pacing feedback derived from answer length.
type TimeManagementCue struct {
	CueType      string `json:"cue_type"` // "warning", "encouragement", "normal"
	Message      string `json:"message"`
	UrgencyLevel string `json:"urgency_level"` // "low", "medium", "high"
}

// BodyLanguageFeedback interprets a client-supplied presence score.
type BodyLanguageFeedback struct {
	Analysis        string   `json:"analysis"`
	ConfidenceScore float64  `json:"confidence_score"`
	EngagementLevel string   `json:"engagement_level"`
	Suggestions     []string `json:"improvement_suggestions"`
}

// EnhancedFeedback aggregates every specialist's read of one answer.
type EnhancedFeedback struct {
	PrimaryQuestion        *FollowUpQuestion     `json:"primary_question"`
	TechnicalInsights      *TechnicalInsights    `json:"technical_insights"`
	TimeManagementFeedback *TimeManagementCue    `json:"time_management_feedback"`
	BodyLanguageFeedback   *BodyLanguageFeedback `json:"body_language_feedback"`
	CoordinationActions    []string              `json:"coordination_actions"`
	OverallAssessment      map[string]any        `json:"overall_assessment"`
}

// Package review turns an interview transcript and the accumulated body
// language notes into structured feedback via the LLM, with a fixed
// fallback when the model's output cannot be parsed.
package review

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/aceyai/acey-backend/internal/models"
	"github.com/aceyai/acey-backend/internal/prompts"
	"github.com/aceyai/acey-backend/internal/providers"
)

// ErrNoMaterial is returned when there is neither a transcript nor any
// frame notes to review.
var ErrNoMaterial = errors.New("nothing to review: empty transcript and no frame notes")

// ErrUnparseable is returned alongside the fallback review when the model's
// response is not valid JSON.
var ErrUnparseable = errors.New("review response was not valid JSON")

type Service struct {
	provider    providers.Provider
	model       string
	temperature float64
}

func NewService(provider providers.Provider, model string) *Service {
	return &Service{
		provider:    provider,
		model:       model,
		temperature: 0.3,
	}
}

// Fallback is the fixed review returned when the model's output cannot be
// parsed. Callers must treat it as a 500-equivalent.
func Fallback() models.Review {
	return models.Review{
		WhatYouDidWell:      []string{"You completed the interview."},
		AreasForImprovement: []string{"We could not generate detailed feedback this time. Please try again."},
		OverallScore:        0,
		ScoreExplanation:    "Feedback generation failed, so no score was assigned.",
		ScoringBreakdown:    models.ScoringBreakdown{BaseScore: 0, Bonuses: 0, Deductions: 0, FinalScore: 0},
		Summary:             "The review could not be generated from the interview data.",
	}
}

// Generate produces the end-of-interview review. On an unparseable model
// response it returns Fallback() together with ErrUnparseable.
func (s *Service) Generate(ctx context.Context, transcript, mode string, frameNotes []string) (models.Review, error) {
	if strings.TrimSpace(transcript) == "" && len(frameNotes) == 0 {
		return models.Review{}, ErrNoMaterial
	}

	prompt := prompts.Review(transcript, mode, frameNotes)

	text, err := s.provider.GenerateText(ctx, providers.Config{
		Model:       s.model,
		Temperature: s.temperature,
		Prompt:      prompt,
	})
	if err != nil {
		return models.Review{}, err
	}

	var parsed models.Review
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &parsed); err != nil {
		slog.Warn("Failed to parse review response", "error", err, "response_len", len(text))
		return Fallback(), ErrUnparseable
	}

	reconcileScore(&parsed)
	return parsed, nil
}

// stripCodeFences removes markdown code block delimiters the model tends to
// wrap JSON in despite instructions.
func stripCodeFences(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	return strings.TrimSpace(response)
}

// reconcileScore recomputes the final score from the breakdown instead of
// trusting the model's arithmetic, and clamps it to 0-100.
func reconcileScore(r *models.Review) {
	b := &r.ScoringBreakdown
	if b.BaseScore == 0 && b.Bonuses == 0 && b.Deductions == 0 {
		// No breakdown supplied; keep overallScore as-is.
		return
	}

	final := b.BaseScore + b.Bonuses - b.Deductions
	if final < 0 {
		final = 0
	}
	if final > 100 {
		final = 100
	}

	if final != b.FinalScore || final != r.OverallScore {
		slog.Info("Reconciled review score", "model_final", b.FinalScore, "model_overall", r.OverallScore, "computed", final)
	}
	b.FinalScore = final
	r.OverallScore = final
}

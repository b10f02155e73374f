// Package metrics scores the follow-up classifier against labeled answers.
package metrics

import (
	"sort"
	"strings"
)

// EvaluationResult is the outcome for one labeled answer.
type EvaluationResult struct {
	ID                  string
	Mode                string
	Answer              string
	PredictedQuestion   string
	PredictedFocus      string
	PredictedDifficulty string
	ExpectedFocus       string
	ExpectedDifficulty  string
	FocusMatch          bool
	DifficultyMatch     bool
	Error               string
}

// ModeSummary aggregates accuracy for one difficulty mode.
type ModeSummary struct {
	Mode               string
	Total              int
	FocusMatches       int
	DifficultyMatches  int
	FocusAccuracy      float64
	DifficultyAccuracy float64
}

// Summary aggregates accuracy over the whole run.
type Summary struct {
	Total              int
	Failed             int
	FocusAccuracy      float64
	DifficultyAccuracy float64
	PerMode            []ModeSummary
}

// FocusMatches reports whether the predicted focus covers the expectation.
// Labels are free text, so matching is containment either way after
// normalization.
func FocusMatches(predicted, expected string) bool {
	p := normalize(predicted)
	e := normalize(expected)
	if p == "" || e == "" {
		return p == e
	}
	return strings.Contains(p, e) || strings.Contains(e, p)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Aggregate computes the run summary from per-answer results.
func Aggregate(results []EvaluationResult) Summary {
	summary := Summary{Total: len(results)}
	perMode := make(map[string]*ModeSummary)

	focusMatches := 0
	difficultyMatches := 0

	for _, r := range results {
		if r.Error != "" {
			summary.Failed++
			continue
		}

		ms, ok := perMode[r.Mode]
		if !ok {
			ms = &ModeSummary{Mode: r.Mode}
			perMode[r.Mode] = ms
		}
		ms.Total++

		if r.FocusMatch {
			focusMatches++
			ms.FocusMatches++
		}
		if r.DifficultyMatch {
			difficultyMatches++
			ms.DifficultyMatches++
		}
	}

	scored := summary.Total - summary.Failed
	if scored > 0 {
		summary.FocusAccuracy = float64(focusMatches) / float64(scored)
		summary.DifficultyAccuracy = float64(difficultyMatches) / float64(scored)
	}

	for _, ms := range perMode {
		if ms.Total > 0 {
			ms.FocusAccuracy = float64(ms.FocusMatches) / float64(ms.Total)
			ms.DifficultyAccuracy = float64(ms.DifficultyMatches) / float64(ms.Total)
		}
		summary.PerMode = append(summary.PerMode, *ms)
	}
	sort.Slice(summary.PerMode, func(i, j int) bool {
		return summary.PerMode[i].Mode < summary.PerMode[j].Mode
	})

	return summary
}

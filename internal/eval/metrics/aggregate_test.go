package metrics

import "testing"

func TestFocusMatches(t *testing.T) {
	tests := []struct {
		name      string
		predicted string
		expected  string
		want      bool
	}{
		{name: "exact", predicted: "skill development", expected: "skill development", want: true},
		{name: "predicted contains expected", predicted: "skill development and learning", expected: "skill development", want: true},
		{name: "expected contains predicted", predicted: "fairness", expected: "fairness and stakeholder management", want: true},
		{name: "case and whitespace insensitive", predicted: "  Skill Development ", expected: "skill development", want: true},
		{name: "no overlap", predicted: "motivation", expected: "conflict management", want: false},
		{name: "both empty", predicted: "", expected: "", want: true},
		{name: "one empty", predicted: "motivation", expected: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FocusMatches(tt.predicted, tt.expected); got != tt.want {
				t.Errorf("FocusMatches(%q, %q) = %v, want %v", tt.predicted, tt.expected, got, tt.want)
			}
		})
	}
}

func TestAggregate(t *testing.T) {
	results := []EvaluationResult{
		{ID: "1", Mode: "easy", FocusMatch: true, DifficultyMatch: true},
		{ID: "2", Mode: "easy", FocusMatch: false, DifficultyMatch: true},
		{ID: "3", Mode: "hard", FocusMatch: true, DifficultyMatch: false},
		{ID: "4", Mode: "hard", Error: "dataset row unreadable"},
	}

	summary := Aggregate(results)

	if summary.Total != 4 {
		t.Errorf("Expected Total=4, got %d", summary.Total)
	}
	if summary.Failed != 1 {
		t.Errorf("Expected Failed=1, got %d", summary.Failed)
	}

	// 2 of 3 scored results matched focus, 2 of 3 matched difficulty.
	wantFocus := 2.0 / 3.0
	if diff := summary.FocusAccuracy - wantFocus; diff > 0.001 || diff < -0.001 {
		t.Errorf("Expected FocusAccuracy=%.3f, got %.3f", wantFocus, summary.FocusAccuracy)
	}
	wantDifficulty := 2.0 / 3.0
	if diff := summary.DifficultyAccuracy - wantDifficulty; diff > 0.001 || diff < -0.001 {
		t.Errorf("Expected DifficultyAccuracy=%.3f, got %.3f", wantDifficulty, summary.DifficultyAccuracy)
	}

	if len(summary.PerMode) != 2 {
		t.Fatalf("Expected 2 mode summaries, got %d", len(summary.PerMode))
	}
	// Sorted by mode name.
	if summary.PerMode[0].Mode != "easy" || summary.PerMode[1].Mode != "hard" {
		t.Errorf("Expected modes sorted [easy hard], got [%s %s]", summary.PerMode[0].Mode, summary.PerMode[1].Mode)
	}

	easy := summary.PerMode[0]
	if easy.Total != 2 || easy.FocusMatches != 1 || easy.DifficultyMatches != 2 {
		t.Errorf("Unexpected easy summary: %+v", easy)
	}
	if easy.FocusAccuracy != 0.5 {
		t.Errorf("Expected easy FocusAccuracy=0.5, got %.2f", easy.FocusAccuracy)
	}

	hard := summary.PerMode[1]
	if hard.Total != 1 || hard.FocusMatches != 1 || hard.DifficultyMatches != 0 {
		t.Errorf("Unexpected hard summary: %+v", hard)
	}
}

func TestAggregateEmpty(t *testing.T) {
	summary := Aggregate(nil)
	if summary.Total != 0 || summary.Failed != 0 {
		t.Errorf("Expected zeroed summary, got %+v", summary)
	}
	if summary.FocusAccuracy != 0 || summary.DifficultyAccuracy != 0 {
		t.Error("Expected zero accuracy for an empty run")
	}
}

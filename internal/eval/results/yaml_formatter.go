package results

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aceyai/acey-backend/internal/eval/metrics"
	"gopkg.in/yaml.v3"
)

// EvalConfig records how the evaluation was run.
type EvalConfig struct {
	DatasetPath string `yaml:"datasetpath"`
	SampleSize  int    `yaml:"samplesize"`
	Timestamp   string `yaml:"timestamp"`
}

// EvalResult is one answer's row in the report.
type EvalResult struct {
	Identifier          string `yaml:"identifier"`
	Mode                string `yaml:"mode"`
	Answer              string `yaml:"answer"`
	PredictedQuestion   string `yaml:"predictedquestion"`
	PredictedFocus      string `yaml:"predictedfocus"`
	PredictedDifficulty string `yaml:"predicteddifficulty"`
	ExpectedFocus       string `yaml:"expectedfocus"`
	ExpectedDifficulty  string `yaml:"expecteddifficulty"`
	FocusMatch          bool   `yaml:"focusmatch"`
	DifficultyMatch     bool   `yaml:"difficultymatch"`
}

// EvalSummary mirrors metrics.Summary for the YAML report.
type EvalSummary struct {
	Total              int     `yaml:"total"`
	Failed             int     `yaml:"failed"`
	FocusAccuracy      float64 `yaml:"focusaccuracy"`
	DifficultyAccuracy float64 `yaml:"difficultyaccuracy"`
}

// EvalSpec represents the complete evaluation report
type EvalSpec struct {
	Config  EvalConfig   `yaml:"config"`
	Summary EvalSummary  `yaml:"summary"`
	Results []EvalResult `yaml:"results"`
}

// SaveToYAML writes the evaluation report to outputDir.
func SaveToYAML(outputDir, datasetPath string, sampleSize int, summary metrics.Summary, results []metrics.EvaluationResult) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")

	spec := EvalSpec{
		Config: EvalConfig{
			DatasetPath: datasetPath,
			SampleSize:  sampleSize,
			Timestamp:   timestamp,
		},
		Summary: EvalSummary{
			Total:              summary.Total,
			Failed:             summary.Failed,
			FocusAccuracy:      summary.FocusAccuracy,
			DifficultyAccuracy: summary.DifficultyAccuracy,
		},
		Results: make([]EvalResult, 0, len(results)),
	}

	for _, r := range results {
		if r.Error != "" {
			continue // Skip failed evaluations
		}
		spec.Results = append(spec.Results, EvalResult{
			Identifier:          r.ID,
			Mode:                r.Mode,
			Answer:              r.Answer,
			PredictedQuestion:   r.PredictedQuestion,
			PredictedFocus:      r.PredictedFocus,
			PredictedDifficulty: r.PredictedDifficulty,
			ExpectedFocus:       r.ExpectedFocus,
			ExpectedDifficulty:  r.ExpectedDifficulty,
			FocusMatch:          r.FocusMatch,
			DifficultyMatch:     r.DifficultyMatch,
		})
	}

	filename := filepath.Join(outputDir, fmt.Sprintf("followup-%s.yaml", timestamp))

	data, err := yaml.Marshal(&spec)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write YAML file: %w", err)
	}

	return filename, nil
}

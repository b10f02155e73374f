package evalcmd

import (
	"fmt"
	"log/slog"

	"github.com/aceyai/acey-backend/internal/agents"
	"github.com/aceyai/acey-backend/internal/eval/dataset"
	"github.com/aceyai/acey-backend/internal/eval/metrics"
	"github.com/aceyai/acey-backend/internal/eval/results"
	"github.com/spf13/cobra"
)

// NewRunCmd evaluates the follow-up classifier against a labeled dataset.
func NewRunCmd() *cobra.Command {
	var (
		datasetPath string
		sampleSize  int
		outputDir   string
		modeFilter  string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run follow-up classifier evaluation",
		Long: `Runs the follow-up question classifier over a labeled answer dataset and
reports how often the predicted focus area and difficulty match the labels.`,
		Example: `  # Evaluate against a jsonl dataset
  acey eval run --dataset ./answers.jsonl

  # Evaluate a 100-answer sample from a parquet dataset
  acey eval run --dataset ./answers.parquet --sample 100

  # Hard-mode answers only
  acey eval run --dataset ./answers.jsonl --mode hard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeRun(datasetPath, sampleSize, modeFilter, outputDir)
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to parquet or jsonl dataset file (required)")
	cmd.Flags().IntVar(&sampleSize, "sample", 0, "Evaluate at most this many answers (0 = all)")
	cmd.Flags().StringVar(&modeFilter, "mode", "", "Only evaluate answers labeled with this mode")
	cmd.Flags().StringVar(&outputDir, "output", "evals", "Directory for the YAML report")
	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}

func executeRun(datasetPath string, sampleSize int, modeFilter, outputDir string) error {
	slog.Info("Starting evaluation run", "dataset", datasetPath, "sample", sampleSize, "mode", modeFilter)

	loader := dataset.NewLoader(datasetPath)
	records, err := loader.LoadSample(sampleSize)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	slog.Info("Dataset loaded", "records", len(records))

	evalResults := make([]metrics.EvaluationResult, 0, len(records))
	for _, record := range records {
		if modeFilter != "" && record.EffectiveMode() != modeFilter {
			continue
		}
		evalResults = append(evalResults, evaluateRecord(record))
	}

	summary := metrics.Aggregate(evalResults)
	printSummary(summary)

	reportPath, err := results.SaveToYAML(outputDir, datasetPath, sampleSize, summary, evalResults)
	if err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	fmt.Printf("\nResults saved to: %s\n", reportPath)
	return nil
}

func evaluateRecord(record dataset.LabeledAnswer) metrics.EvaluationResult {
	result := metrics.EvaluationResult{
		ID:                 record.ID,
		Mode:               record.EffectiveMode(),
		Answer:             record.Answer,
		ExpectedFocus:      record.ExpectedFocus,
		ExpectedDifficulty: record.ExpectedDifficulty,
	}

	if record.Answer == "" {
		result.Error = "empty answer"
		return result
	}

	prediction := agents.Classify(result.Mode, record.Answer)
	result.PredictedQuestion = prediction.Question
	result.PredictedFocus = prediction.ExpectedFocus
	result.PredictedDifficulty = prediction.Difficulty
	result.FocusMatch = metrics.FocusMatches(prediction.ExpectedFocus, record.ExpectedFocus)
	result.DifficultyMatch = record.ExpectedDifficulty == "" || prediction.Difficulty == record.ExpectedDifficulty

	return result
}

func printSummary(summary metrics.Summary) {
	fmt.Printf("\nEvaluation summary\n")
	fmt.Printf("  answers:             %d (%d failed)\n", summary.Total, summary.Failed)
	fmt.Printf("  focus accuracy:      %.1f%%\n", summary.FocusAccuracy*100)
	fmt.Printf("  difficulty accuracy: %.1f%%\n", summary.DifficultyAccuracy*100)
	for _, ms := range summary.PerMode {
		fmt.Printf("  [%s] %d answers, focus %.1f%%, difficulty %.1f%%\n",
			ms.Mode, ms.Total, ms.FocusAccuracy*100, ms.DifficultyAccuracy*100)
	}
}

package evalcmd

import (
	"fmt"

	"github.com/aceyai/acey-backend/internal/eval/dataset"
	"github.com/spf13/cobra"
)

// NewInspectCmd prints records from a labeled answer dataset.
func NewInspectCmd() *cobra.Command {
	var (
		datasetPath string
		limit       int
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect records from a labeled answer dataset",
		Long: `Inspect records from a parquet or jsonl dataset file.

Useful for checking labels before an evaluation run.`,
		Example: `  acey eval inspect --dataset ./answers.jsonl --limit 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := dataset.NewLoader(datasetPath)
			records, err := loader.LoadSample(limit)
			if err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}

			for i, record := range records {
				fmt.Printf("--- record %d ---\n", i+1)
				fmt.Printf("id:                  %s\n", record.ID)
				fmt.Printf("mode:                %s\n", record.EffectiveMode())
				fmt.Printf("answer:              %s\n", record.Answer)
				fmt.Printf("expected focus:      %s\n", record.ExpectedFocus)
				fmt.Printf("expected difficulty: %s\n\n", record.ExpectedDifficulty)
			}

			fmt.Printf("%d records shown\n", len(records))
			return nil
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to parquet or jsonl dataset file (required)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum records to print (0 = all)")
	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}

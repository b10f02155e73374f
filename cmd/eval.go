package cmd

import (
	"github.com/aceyai/acey-backend/internal/evalcmd"
	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate the follow-up classifier against labeled answers",
		Long: `Runs the follow-up classifier over a labeled answer dataset and
reports focus and difficulty accuracy per interview mode.`,
	}

	cmd.AddCommand(evalcmd.NewRunCmd())
	cmd.AddCommand(evalcmd.NewInspectCmd())

	return cmd
}

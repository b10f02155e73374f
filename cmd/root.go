package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "acey",
		Short: "AI mock-interview backend",
		Long: `Acey is the backend for an AI mock-interview web application.

It bootstraps voice-assistant interview sessions, analyzes camera frames for
body language commentary, and synthesizes an end-of-interview review from the
transcript. It also ships evaluation tools for the follow-up question
classifier.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newEvalCmd())

	return cmd
}

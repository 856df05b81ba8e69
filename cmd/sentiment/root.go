package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for sentiment.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sentiment",
		Short: "Classify the sentiment of text and export a PDF report",
		Long: `sentiment predicts whether a text is positive, negative or neutral using
one of four pre-trained models: Logistic Regression, SVM, Random Forest and
Decision Tree. Each prediction can be exported as a PDF report.

Models are read from JSON files in the model directory. Run
"sentiment init --models ." to write a small demo model set.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .sentiment in current or home directory)")

	// Add subcommands
	cmd.AddCommand(NewPredictCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewModelsCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/sentiment/internal/classifier"
)

//go:embed templates/sentiment.yaml
var configTemplate embed.FS

// configFileName is the default configuration file name.
const configFileName = ".sentiment"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new sentiment configuration file",
		Long: `Initialize creates a new .sentiment configuration file in the current directory.

The generated file includes:
- The model directory and model file names
- Report location and compression
- Web UI address and limits

With --models, a small demo model set (vectorizer and all four models) is
written to the given directory as well, so predict and serve work without
trained models.

Examples:
  # Create .sentiment in current directory
  sentiment init

  # Create config file at a specific path
  sentiment init -o myconfig.yaml

  # Also write demo models into ./models
  sentiment init --models ./models

  # Force overwrite existing files
  sentiment init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", configFileName,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing files")
	cmd.Flags().String("models", "",
		"Write the demo model set into this directory")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	modelDir, err := cmd.Flags().GetString("models")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile("templates/sentiment.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)

	if modelDir != "" {
		written, err := classifier.WriteDemoFiles(modelDir, force)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nWrote demo models to %s:\n", modelDir)
		for _, path := range written {
			fmt.Fprintf(out, "  %s\n", path)
		}
		fmt.Fprintln(out, "\nThe demo models only know a handful of words. Replace them with")
		fmt.Fprintln(out, "exported models for real predictions.")
		return nil
	}

	fmt.Fprintln(out, "\nEdit this file to configure settings such as:")
	fmt.Fprintln(out, "  - The directory holding the model files")
	fmt.Fprintln(out, "  - Where the PDF report is written")
	fmt.Fprintln(out, "  - The web UI address")

	return nil
}

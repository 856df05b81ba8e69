package main

import (
	"fmt"
	"io"
	"os"

	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"

	"github.com/nao1215/sentiment/internal/classifier"
	"github.com/nao1215/sentiment/internal/config"
	"github.com/nao1215/sentiment/internal/model"
)

// NewModelsCmd creates the models command.
func NewModelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the available models and their files",
		Long: `Models lists the four supported models, the file each one is loaded from
and whether that file exists.

Examples:
  # List models in the configured model directory
  sentiment models

  # List models in another directory as a Markdown table
  sentiment models -d ./trained --markdown`,
		Args: cobra.NoArgs,
		RunE: runModelsCmd,
	}

	cmd.Flags().StringP("model-dir", "d", "",
		"Directory holding vectorizer.json and the model files")
	cmd.Flags().Bool("markdown", false,
		"Output a Markdown table")

	return cmd
}

// modelEntry is one row of the models listing.
type modelEntry struct {
	Name   string
	Slug   string
	Type   string
	Path   string
	Exists bool
}

// runModelsCmd executes the models command.
func runModelsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	modelDir, err := cmd.Flags().GetString("model-dir")
	if err != nil {
		return err
	}
	if modelDir != "" {
		cfg.ModelDir = modelDir
	}

	asMarkdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}

	entries := listModels(cfg)
	if asMarkdown {
		return writeModelsMarkdown(cmd.OutOrStdout(), cfg, entries)
	}
	writeModelsText(cmd.OutOrStdout(), cfg, entries)
	return nil
}

// listModels collects the file information of every model kind.
func listModels(cfg *config.Config) []modelEntry {
	entries := make([]modelEntry, 0, len(model.AllModelKinds()))
	for _, k := range model.AllModelKinds() {
		path := cfg.ModelPath(k)
		_, err := os.Stat(path)
		entries = append(entries, modelEntry{
			Name:   k.String(),
			Slug:   k.Slug(),
			Type:   classifier.ExpectedType(k),
			Path:   path,
			Exists: err == nil,
		})
	}
	return entries
}

// fileState renders whether a file exists.
func fileState(exists bool) string {
	if exists {
		return "ok"
	}
	return "missing"
}

// vectorizerExists reports whether the vectorizer file is present.
func vectorizerExists(cfg *config.Config) bool {
	_, err := os.Stat(cfg.VectorizerPath())
	return err == nil
}

// writeModelsText prints the models as aligned columns.
func writeModelsText(w io.Writer, cfg *config.Config, entries []modelEntry) {
	fmt.Fprintf(w, "%-20s %-20s %-14s %-8s %s\n", "MODEL", "SLUG", "TYPE", "STATUS", "FILE")
	for _, e := range entries {
		fmt.Fprintf(w, "%-20s %-20s %-14s %-8s %s\n", e.Name, e.Slug, e.Type, fileState(e.Exists), e.Path)
	}
	fmt.Fprintf(w, "\nvectorizer: %s (%s)\n", cfg.VectorizerPath(), fileState(vectorizerExists(cfg)))
	if cfg.UseRemoteInference() {
		fmt.Fprintf(w, "inference:  %s (model files are not used)\n", cfg.InferenceEndpoint)
	}
}

// writeModelsMarkdown prints the models as a Markdown table.
func writeModelsMarkdown(w io.Writer, cfg *config.Config, entries []modelEntry) error {
	rows := make([][]string, 0, len(entries)+1)
	for _, e := range entries {
		rows = append(rows, []string{e.Name, "`" + e.Slug + "`", e.Type, fileState(e.Exists), "`" + e.Path + "`"})
	}
	rows = append(rows, []string{"Vectorizer", "-", "-", fileState(vectorizerExists(cfg)), "`" + cfg.VectorizerPath() + "`"})

	md := markdown.NewMarkdown(w)
	md.H2("Models")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Model", "Slug", "Type", "Status", "File"},
		Rows:   rows,
	})
	return md.Build()
}

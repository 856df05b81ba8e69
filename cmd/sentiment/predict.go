package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/sentiment/internal/config"
	"github.com/nao1215/sentiment/internal/model"
	"github.com/nao1215/sentiment/internal/report"
)

// NewPredictCmd creates the predict command.
func NewPredictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict [text]",
		Short: "Predict the sentiment of a text and write a PDF report",
		Long: `Predict classifies the given text with the selected model, prints the
predicted sentiment with a bar chart and writes a PDF report.

The text is taken from the arguments (joined with spaces) or from a file.
Use --file - to read from standard input; line breaks are kept in the
report.

Examples:
  # Classify with the default model (Logistic Regression)
  sentiment predict "The service was excellent"

  # Choose a model
  sentiment predict -m "Random Forest" "I did not like the ending"

  # Read a multi-line review from a file and name the report
  sentiment predict -m svm --file review.txt -o reports/review.pdf

  # Print JSON and skip the PDF
  sentiment predict --json --no-pdf "not bad at all"`,
		Args: cobra.ArbitraryArgs,
		RunE: runPredictCmd,
	}

	cmd.Flags().StringP("model", "m", "",
		"Model to use: Logistic Regression, SVM, Random Forest or Decision Tree (default: Logistic Regression)")
	cmd.Flags().StringP("file", "i", "",
		"Read the text from a file (- for standard input)")
	cmd.Flags().StringP("model-dir", "d", "",
		"Directory holding vectorizer.json and the model files")

	// Report flags
	cmd.Flags().StringP("output", "o", "",
		"PDF report path (default: "+model.DefaultReportName+")")
	cmd.Flags().Bool("no-pdf", false,
		"Do not write the PDF report")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().Bool("markdown", false,
		"Output Markdown (mutually exclusive with --json)")

	return cmd
}

// runPredictCmd executes the predict command.
func runPredictCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildPredictConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg, false)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runPredict(ctx, cmd, cfg, logger)
}

// buildPredictConfig creates a Config from the config file and cobra flags.
// Flags override the file.
func buildPredictConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	modelName, err := cmd.Flags().GetString("model")
	if err != nil {
		return nil, err
	}
	if modelName != "" {
		cfg.Model = modelName
	}

	cfg.InputFile, err = cmd.Flags().GetString("file")
	if err != nil {
		return nil, err
	}

	modelDir, err := cmd.Flags().GetString("model-dir")
	if err != nil {
		return nil, err
	}
	if modelDir != "" {
		cfg.ModelDir = modelDir
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}
	if output != "" {
		dir, name := filepath.Split(output)
		if dir != "" {
			cfg.ReportDir = filepath.Clean(dir)
		}
		cfg.ReportName = name
	}

	cfg.NoPDF, err = cmd.Flags().GetBool("no-pdf")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.Text = strings.Join(args, " ")

	return cfg, nil
}

// readText returns the text to classify from the arguments or the input file.
func readText(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if cfg.InputFile == "" {
		if cfg.Text == "" {
			return "", errors.New("no text provided (pass the text as arguments or use --file)")
		}
		return cfg.Text, nil
	}

	var r io.Reader
	if cfg.InputFile == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(cfg.InputFile)
		if err != nil {
			return "", fmt.Errorf("failed to open input file: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, cfg.MaxTextBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	if int64(len(data)) > cfg.MaxTextBytes {
		return "", fmt.Errorf("input exceeds %d bytes", cfg.MaxTextBytes)
	}
	return string(data), nil
}

// runPredict classifies the text, writes the PDF report and prints the result.
func runPredict(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	kind := model.LogisticRegression
	if cfg.Model != "" {
		var err error
		kind, err = model.ParseModelKind(cfg.Model)
		if err != nil {
			return err
		}
	}

	text, err := readText(cmd, cfg)
	if err != nil {
		return err
	}

	predictor, err := newPredictor(ctx, cfg, []model.ModelKind{kind}, logger)
	if err != nil {
		return err
	}

	prediction, err := predictor.Predict(ctx, kind, text)
	if err != nil {
		return fmt.Errorf("prediction failed: %w", err)
	}

	var artifact *model.Artifact
	if !cfg.NoPDF {
		generator := report.NewGenerator(
			report.WithOutputDir(cfg.ReportDir),
			report.WithCompression(cfg.CompressPDF),
			report.WithCreator(config.AppName+" "+getVersion()),
		)
		artifact, err = generator.Generate(prediction.ReportRequest(text), cfg.ReportName)
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("report written", "path", artifact.Path, "pages", artifact.Pages)
	}

	return outputResult(cmd.OutOrStdout(), cfg, report.NewResult(prediction, text, artifact))
}

// outputResult prints the result in the requested format.
func outputResult(w io.Writer, cfg *config.Config, result *report.Result) error {
	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(w, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(w)
	default:
		writer = report.NewSimpleWriter(w, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(result)
	return err
}

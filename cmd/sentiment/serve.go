package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/nao1215/sentiment/internal/config"
	"github.com/nao1215/sentiment/internal/model"
	"github.com/nao1215/sentiment/internal/report"
	"github.com/nao1215/sentiment/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI and JSON API",
		Long: `Serve starts an HTTP server with a browser UI for sentiment prediction.

Open the address in a browser, choose a model, enter text and press
Predict. The result page shows the predicted sentiment, a bar chart and a
button that downloads the PDF report.

The same functionality is available as a JSON API:
  POST /api/v1/predict   {"model": "SVM", "text": "..."}
  POST /api/v1/report    {"model": "SVM", "text": "..."}  (returns result.pdf)
  GET  /api/v1/models
  GET  /health, GET /ready

Examples:
  # Serve on the default address
  sentiment serve

  # Listen on all interfaces with JSON logs
  sentiment serve --addr :8501 --log-json`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("addr", "a", config.DefaultListenAddress,
		"Address to listen on")
	cmd.Flags().StringP("model-dir", "d", "",
		"Directory holding vectorizer.json and the model files")
	cmd.Flags().Bool("log-json", false,
		"Write logs as JSON")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("addr") || cfg.ListenAddress == "" {
		cfg.ListenAddress, err = cmd.Flags().GetString("addr")
		if err != nil {
			return err
		}
	}

	modelDir, err := cmd.Flags().GetString("model-dir")
	if err != nil {
		return err
	}
	if modelDir != "" {
		cfg.ModelDir = modelDir
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logJSON, err := cmd.Flags().GetBool("log-json")
	if err != nil {
		return err
	}
	logger := setupLogger(cmd, cfg, logJSON)

	if cfg.Verbose {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var kinds []model.ModelKind
	if !cfg.UseRemoteInference() {
		kinds = availableKinds(cfg)
		if len(kinds) == 0 {
			return errors.New("no model files found in " + cfg.ModelDir +
				" (run \"sentiment init --models " + cfg.ModelDir + "\" to create demo models)")
		}
	}

	predictor, err := newPredictor(ctx, cfg, kinds, logger)
	if err != nil {
		return err
	}

	generator := report.NewGenerator(
		report.WithCompression(cfg.CompressPDF),
		report.WithCreator(config.AppName+" "+getVersion()),
	)

	srv := server.New(predictor, generator,
		server.WithLogger(logger),
		server.WithMaxTextBytes(cfg.MaxTextBytes),
	)

	fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s (press Ctrl+C to stop)\n", cfg.ListenAddress)
	return srv.ListenAndServe(ctx, cfg.ListenAddress, cfg.ShutdownTimeout)
}

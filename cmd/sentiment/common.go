package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/sentiment/internal/classifier"
	"github.com/nao1215/sentiment/internal/config"
	seclog "github.com/nao1215/sentiment/internal/log"
	"github.com/nao1215/sentiment/internal/model"
)

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// getConfigFlag retrieves the config flag from the command or its parent.
func getConfigFlag(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		path, err = cmd.Root().PersistentFlags().GetString("config")
		if err != nil {
			return ""
		}
	}
	return path
}

// loadConfig creates a Config from defaults and the configuration file.
// If the user explicitly named a config file, it must exist; otherwise a
// missing file is not an error.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)
	cfg.ConfigFilePath = getConfigFlag(cmd)

	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath == "" {
		if explicitConfigPath {
			return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
		}
		return cfg, nil
	}

	file, err := config.LoadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}
	if err := cfg.ApplyFile(file); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return cfg, nil
}

// setupLogger creates the secure structured logger for cfg and installs it
// as the default logger.
func setupLogger(cmd *cobra.Command, cfg *config.Config, jsonFormat bool) *slog.Logger {
	var logger *slog.Logger
	if jsonFormat {
		logger = seclog.NewSecureJSONLogger(cmd.ErrOrStderr(), cfg.Verbose)
	} else {
		logger = seclog.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)
	}
	slog.SetDefault(logger)
	return logger
}

// newPredictor returns the predictor selected by cfg: a client of the
// remote inference service when an endpoint is configured, otherwise a
// registry holding the given model kinds loaded from disk.
func newPredictor(ctx context.Context, cfg *config.Config, kinds []model.ModelKind, logger *slog.Logger) (classifier.Predictor, error) {
	if cfg.UseRemoteInference() {
		logger.Info("using remote inference", "endpoint", cfg.InferenceEndpoint)
		var opts []classifier.RemoteOption
		if cfg.InferenceAPIKey != "" {
			opts = append(opts, classifier.WithAPIKey(cfg.InferenceAPIKey))
		}
		return classifier.NewRemoteClient(cfg.InferenceEndpoint, cfg.InferenceTimeout, opts...), nil
	}

	paths := classifier.Paths{
		Vectorizer: cfg.VectorizerPath(),
		Models:     make(map[model.ModelKind]string, len(kinds)),
	}
	for _, k := range kinds {
		paths.Models[k] = cfg.ModelPath(k)
	}

	registry, err := classifier.LoadRegistry(ctx, paths, classifier.WithLogger(logger))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w (run \"sentiment init --models %s\" to create demo models)", err, cfg.ModelDir)
		}
		return nil, fmt.Errorf("failed to load models: %w", err)
	}

	logger.Info("models loaded", "dir", cfg.ModelDir, "count", len(registry.Kinds()))
	return registry, nil
}

// availableKinds returns the kinds whose model file exists.
func availableKinds(cfg *config.Config) []model.ModelKind {
	var kinds []model.ModelKind
	for _, k := range model.AllModelKinds() {
		if _, err := os.Stat(cfg.ModelPath(k)); err == nil {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/sentiment/internal/model"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default ModelDir is current directory", func(t *testing.T) {
		t.Parallel()
		if cfg.ModelDir != "." {
			t.Errorf("expected ModelDir to be '.', got '%s'", cfg.ModelDir)
		}
	})

	t.Run("default VectorizerFile is vectorizer.json", func(t *testing.T) {
		t.Parallel()
		if cfg.VectorizerFile != "vectorizer.json" {
			t.Errorf("expected VectorizerFile to be 'vectorizer.json', got '%s'", cfg.VectorizerFile)
		}
	})

	t.Run("default ReportName is result.pdf", func(t *testing.T) {
		t.Parallel()
		if cfg.ReportName != "result.pdf" {
			t.Errorf("expected ReportName to be 'result.pdf', got '%s'", cfg.ReportName)
		}
	})

	t.Run("default InferenceTimeout is 30 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.InferenceTimeout != 30*time.Second {
			t.Errorf("expected InferenceTimeout to be 30s, got %v", cfg.InferenceTimeout)
		}
	})

	t.Run("default ListenAddress", func(t *testing.T) {
		t.Parallel()
		if cfg.ListenAddress != DefaultListenAddress {
			t.Errorf("expected ListenAddress to be %q, got %q", DefaultListenAddress, cfg.ListenAddress)
		}
	})

	t.Run("PDF compression is on by default", func(t *testing.T) {
		t.Parallel()
		if !cfg.CompressPDF {
			t.Error("expected CompressPDF to be true")
		}
	})

	t.Run("remote inference is off by default", func(t *testing.T) {
		t.Parallel()
		if cfg.UseRemoteInference() {
			t.Error("expected UseRemoteInference to be false")
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{"valid config returns nil", func(*Config) {}, nil},
		{"json and markdown conflict", func(c *Config) {
			c.JSONReport = true
			c.MarkdownReport = true
		}, ErrConflictingReportFormats},
		{"empty model dir", func(c *Config) { c.ModelDir = "" }, ErrEmptyModelDir},
		{"empty report name", func(c *Config) { c.ReportName = "" }, ErrInvalidReportName},
		{"report name with slash", func(c *Config) { c.ReportName = "out/result.pdf" }, ErrInvalidReportName},
		{"report name with backslash", func(c *Config) { c.ReportName = `out\result.pdf` }, ErrInvalidReportName},
		{"zero timeout", func(c *Config) { c.InferenceTimeout = 0 }, ErrInvalidTimeout},
		{"negative max text", func(c *Config) { c.MaxTextBytes = -1 }, ErrInvalidMaxTextBytes},
		{"empty listen address", func(c *Config) { c.ListenAddress = "" }, ErrEmptyListenAddress},
		{"text and file", func(c *Config) {
			c.Text = "hello"
			c.InputFile = "input.txt"
		}, ErrInputConflict},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tc.modify(cfg)

			err := cfg.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("expected nil, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

// TestConfigPaths tests resolving model and report paths.
func TestConfigPaths(t *testing.T) {
	t.Parallel()

	t.Run("relative names join ModelDir", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.ModelDir = "models"

		if got := cfg.VectorizerPath(); got != filepath.Join("models", "vectorizer.json") {
			t.Errorf("unexpected vectorizer path %q", got)
		}
		if got := cfg.ModelPath(model.SVM); got != filepath.Join("models", "SVM_model.json") {
			t.Errorf("unexpected model path %q", got)
		}
	})

	t.Run("override file name", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.ModelDir = "models"
		cfg.ModelFiles[model.RandomForest] = "rf.json"

		if got := cfg.ModelPath(model.RandomForest); got != filepath.Join("models", "rf.json") {
			t.Errorf("unexpected model path %q", got)
		}
	})

	t.Run("absolute paths are kept", func(t *testing.T) {
		t.Parallel()

		abs := filepath.Join(t.TempDir(), "vec.json")
		cfg := NewConfig()
		cfg.ModelDir = "models"
		cfg.VectorizerFile = abs

		if got := cfg.VectorizerPath(); got != abs {
			t.Errorf("expected %q, got %q", abs, got)
		}
	})

	t.Run("report path", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.ReportDir = "out"
		if got := cfg.ReportPath(); got != filepath.Join("out", "result.pdf") {
			t.Errorf("unexpected report path %q", got)
		}
	})
}

// TestApplyFile tests merging config file values.
func TestApplyFile(t *testing.T) {
	t.Parallel()

	t.Run("nil file is a no-op", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		if err := cfg.ApplyFile(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.ModelDir != DefaultModelDir {
			t.Errorf("ModelDir changed to %q", cfg.ModelDir)
		}
	})

	t.Run("overrides non-zero values", func(t *testing.T) {
		t.Parallel()

		compress := false
		cfg := NewConfig()
		err := cfg.ApplyFile(&File{
			Models: ModelsSection{
				Dir:        "/srv/models",
				Vectorizer: "tfidf.json",
				Files:      map[string]string{"svm": "linear_svc.json", "Random Forest": "forest.json"},
				Default:    "SVM",
			},
			Report:    ReportSection{Dir: "/tmp/out", Name: "report.pdf", Compress: &compress},
			Server:    ServerSection{Address: ":9000", ShutdownTimeout: 5 * time.Second, MaxTextBytes: 1024},
			Inference: InferenceSection{Endpoint: "http://ml:8000/", APIKey: "k", Timeout: time.Second},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.ModelDir != "/srv/models" || cfg.VectorizerFile != "tfidf.json" {
			t.Errorf("models section not applied: %+v", cfg)
		}
		if cfg.ModelFiles[model.SVM] != "linear_svc.json" || cfg.ModelFiles[model.RandomForest] != "forest.json" {
			t.Errorf("model files not applied: %v", cfg.ModelFiles)
		}
		if cfg.Model != "SVM" {
			t.Errorf("expected default model SVM, got %q", cfg.Model)
		}
		if cfg.ReportDir != "/tmp/out" || cfg.ReportName != "report.pdf" || cfg.CompressPDF {
			t.Errorf("report section not applied: %+v", cfg)
		}
		if cfg.ListenAddress != ":9000" || cfg.ShutdownTimeout != 5*time.Second || cfg.MaxTextBytes != 1024 {
			t.Errorf("server section not applied: %+v", cfg)
		}
		if cfg.InferenceEndpoint != "http://ml:8000" {
			t.Errorf("expected trailing slash trimmed, got %q", cfg.InferenceEndpoint)
		}
		if !cfg.UseRemoteInference() {
			t.Error("expected remote inference to be enabled")
		}
	})

	t.Run("unknown model name is an error", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		err := cfg.ApplyFile(&File{Models: ModelsSection{Files: map[string]string{"bayes": "nb.json"}}})
		if !errors.Is(err, model.ErrUnknownModel) {
			t.Errorf("expected ErrUnknownModel, got %v", err)
		}
	})
}

// TestLoadConfigFile tests loading YAML configuration files.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads all sections", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".sentiment")
		content := `models:
  dir: ./models
  vectorizer: vec.json
  files:
    decision_tree: tree.json
report:
  name: out.pdf
  compress: false
server:
  address: 0.0.0.0:8080
  shutdownTimeout: 3s
inference:
  endpoint: http://localhost:9000
  timeout: 2s
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cf.Models.Dir != "./models" {
			t.Errorf("unexpected models.dir %q", cf.Models.Dir)
		}
		if cf.Models.Files["decision_tree"] != "tree.json" {
			t.Errorf("unexpected models.files %v", cf.Models.Files)
		}
		if cf.Report.Compress == nil || *cf.Report.Compress {
			t.Error("expected report.compress to be explicitly false")
		}
		if cf.Server.ShutdownTimeout != 3*time.Second {
			t.Errorf("unexpected shutdown timeout %v", cf.Server.ShutdownTimeout)
		}
		if cf.Inference.Timeout != 2*time.Second {
			t.Errorf("unexpected inference timeout %v", cf.Inference.Timeout)
		}
	})

	t.Run("empty file initializes maps", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".sentiment")
		if err := os.WriteFile(path, []byte(""), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cf.Models.Files == nil {
			t.Error("expected Files map to be initialized")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".sentiment")
		if err := os.WriteFile(path, []byte("models: [unclosed"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}

// TestFindConfigFile tests config file discovery.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("{}"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("explicit missing path", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile(filepath.Join(t.TempDir(), "nope.yaml")); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})
}

// TestXDGConfigDir tests the XDG config directory helper.
func TestXDGConfigDir(t *testing.T) {
	t.Parallel()

	dir := XDGConfigDir()
	if !strings.HasSuffix(dir, AppName) {
		t.Errorf("expected %q to end with %q", dir, AppName)
	}
}

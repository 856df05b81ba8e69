package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/nao1215/sentiment/internal/model"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "sentiment"

	// DefaultModelDir is where the vectorizer and model files are looked up
	// when no directory is configured.
	DefaultModelDir = "."

	// DefaultVectorizerFile is the file name of the serialized vectorizer.
	DefaultVectorizerFile = "vectorizer.json"

	// DefaultReportDir is the directory reports are written to.
	DefaultReportDir = "."

	// DefaultReportName is the report file name.
	DefaultReportName = model.DefaultReportName

	// DefaultListenAddress is the address the HTTP UI listens on.
	DefaultListenAddress = "127.0.0.1:8501"

	// DefaultInferenceTimeout bounds a single request to a remote
	// inference service.
	DefaultInferenceTimeout = 30 * time.Second

	// DefaultMaxTextBytes limits the size of submitted text.
	DefaultMaxTextBytes = 1 << 20 // 1MB

	// DefaultShutdownTimeout is how long the server waits for in-flight
	// requests on shutdown.
	DefaultShutdownTimeout = 10 * time.Second
)

// Config holds all configuration options for sentiment.
// It is populated from defaults, the optional config file and CLI flags,
// in that order, and passed explicitly to every component.
type Config struct {
	// ModelDir is the directory holding the vectorizer and model files.
	// Relative file names below are resolved against it.
	ModelDir string

	// VectorizerFile is the vectorizer file name or path.
	VectorizerFile string

	// ModelFiles overrides the file name of individual models.
	// Kinds missing from the map use ModelKind.DefaultFileName().
	ModelFiles map[model.ModelKind]string

	// Model is the model name selected on the command line.
	Model string

	// Text is the text passed as positional arguments.
	Text string

	// InputFile is a file to read the text from. "-" means stdin.
	InputFile string

	// ReportDir is the directory the PDF report is written to.
	ReportDir string

	// ReportName is the PDF file name. It must not contain a path separator.
	ReportName string

	// NoPDF disables writing the PDF report in the predict command.
	NoPDF bool

	// CompressPDF enables stream compression in generated PDFs.
	CompressPDF bool

	// JSONReport prints the prediction as JSON.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport prints the prediction as Markdown.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ListenAddress is the host:port the HTTP UI binds to.
	ListenAddress string

	// InferenceEndpoint is the base URL of a remote inference service.
	// When empty, models are loaded from ModelDir and run in process.
	InferenceEndpoint string

	// InferenceAPIKey is sent as a bearer token to the remote service.
	InferenceAPIKey string

	// InferenceTimeout bounds one remote inference request.
	InferenceTimeout time.Duration

	// MaxTextBytes is the largest text accepted for classification.
	MaxTextBytes int64

	// ShutdownTimeout is the graceful shutdown window of the server.
	ShutdownTimeout time.Duration

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the explicit config file path, if any.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		ModelDir:         DefaultModelDir,
		VectorizerFile:   DefaultVectorizerFile,
		ModelFiles:       make(map[model.ModelKind]string),
		ReportDir:        DefaultReportDir,
		ReportName:       DefaultReportName,
		CompressPDF:      true,
		ListenAddress:    DefaultListenAddress,
		InferenceTimeout: DefaultInferenceTimeout,
		MaxTextBytes:     DefaultMaxTextBytes,
		ShutdownTimeout:  DefaultShutdownTimeout,
	}
}

// XDGConfigDir returns the XDG config directory for sentiment.
// On Linux: ~/.config/sentiment
// On macOS: ~/Library/Application Support/sentiment
// On Windows: %APPDATA%\sentiment
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// VectorizerPath returns the resolved path of the vectorizer file.
func (c *Config) VectorizerPath() string {
	return c.resolve(c.VectorizerFile)
}

// ModelPath returns the resolved path of the model file for kind.
func (c *Config) ModelPath(kind model.ModelKind) string {
	name := c.ModelFiles[kind]
	if name == "" {
		name = kind.DefaultFileName()
	}
	return c.resolve(name)
}

// ReportPath returns the full path of the PDF report.
func (c *Config) ReportPath() string {
	return filepath.Join(c.ReportDir, c.ReportName)
}

// UseRemoteInference reports whether predictions go to a remote service.
func (c *Config) UseRemoteInference() bool {
	return c.InferenceEndpoint != ""
}

// resolve joins relative names with ModelDir and leaves absolute paths alone.
func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.ModelDir, name)
}

// ApplyFile merges the values set in a config file into c.
// Zero values in the file leave the current setting untouched.
func (c *Config) ApplyFile(f *File) error {
	if f == nil {
		return nil
	}

	if f.Models.Dir != "" {
		c.ModelDir = f.Models.Dir
	}
	if f.Models.Vectorizer != "" {
		c.VectorizerFile = f.Models.Vectorizer
	}
	for name, file := range f.Models.Files {
		kind, err := model.ParseModelKind(name)
		if err != nil {
			return fmt.Errorf("models.files: %w", err)
		}
		if c.ModelFiles == nil {
			c.ModelFiles = make(map[model.ModelKind]string)
		}
		c.ModelFiles[kind] = file
	}
	if f.Models.Default != "" {
		c.Model = f.Models.Default
	}

	if f.Report.Dir != "" {
		c.ReportDir = f.Report.Dir
	}
	if f.Report.Name != "" {
		c.ReportName = f.Report.Name
	}
	if f.Report.Compress != nil {
		c.CompressPDF = *f.Report.Compress
	}

	if f.Server.Address != "" {
		c.ListenAddress = f.Server.Address
	}
	if f.Server.ShutdownTimeout > 0 {
		c.ShutdownTimeout = f.Server.ShutdownTimeout
	}
	if f.Server.MaxTextBytes > 0 {
		c.MaxTextBytes = f.Server.MaxTextBytes
	}

	if f.Inference.Endpoint != "" {
		c.InferenceEndpoint = strings.TrimRight(f.Inference.Endpoint, "/")
	}
	if f.Inference.APIKey != "" {
		c.InferenceAPIKey = f.Inference.APIKey
	}
	if f.Inference.Timeout > 0 {
		c.InferenceTimeout = f.Inference.Timeout
	}

	return nil
}

// Validate checks if the configuration is valid.
// It returns the first problem found as one of the sentinel errors.
func (c *Config) Validate() error {
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.ModelDir == "" {
		return ErrEmptyModelDir
	}

	if c.ReportName == "" || strings.ContainsAny(c.ReportName, `/\`) {
		return ErrInvalidReportName
	}

	if c.InferenceTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.MaxTextBytes <= 0 {
		return ErrInvalidMaxTextBytes
	}

	if c.ListenAddress == "" {
		return ErrEmptyListenAddress
	}

	if c.Text != "" && c.InputFile != "" {
		return ErrInputConflict
	}

	return nil
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".sentiment"

// xdgConfigFile is the file name looked up inside XDGConfigDir.
const xdgConfigFile = "config.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .sentiment configuration file.
type File struct {
	Models    ModelsSection    `yaml:"models,omitempty"`
	Report    ReportSection    `yaml:"report,omitempty"`
	Server    ServerSection    `yaml:"server,omitempty"`
	Inference InferenceSection `yaml:"inference,omitempty"`
}

// ModelsSection locates the serialized vectorizer and models.
type ModelsSection struct {
	// Dir is the directory relative file names are resolved against.
	Dir string `yaml:"dir,omitempty"`

	// Vectorizer is the vectorizer file name or path.
	Vectorizer string `yaml:"vectorizer,omitempty"`

	// Files maps a model name (display name or slug) to its file.
	Files map[string]string `yaml:"files,omitempty"`

	// Default is the model used when --model is not given.
	Default string `yaml:"default,omitempty"`
}

// ReportSection configures the PDF report.
type ReportSection struct {
	Dir  string `yaml:"dir,omitempty"`
	Name string `yaml:"name,omitempty"`

	// Compress is a pointer so that an explicit false can be told apart
	// from an absent key.
	Compress *bool `yaml:"compress,omitempty"`
}

// ServerSection configures the HTTP UI.
type ServerSection struct {
	Address         string        `yaml:"address,omitempty"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout,omitempty"`
	MaxTextBytes    int64         `yaml:"maxTextBytes,omitempty"`
}

// InferenceSection configures a remote inference service.
type InferenceSection struct {
	Endpoint string        `yaml:"endpoint,omitempty"`
	APIKey   string        `yaml:"apiKey,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`
}

// LoadConfigFile loads a configuration file in YAML format.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	if cf.Models.Files == nil {
		cf.Models.Files = make(map[string]string)
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .sentiment in the current directory
// 3. Look for config.yaml in the XDG config directory
// 4. Look for .sentiment in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), xdgConfigFile))
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

// Package config provides configuration structures and utilities for sentiment.
// It defines where the vectorizer and model files live, how reports are
// written, how the HTTP server listens and whether inference runs locally
// or against a remote service.
package config

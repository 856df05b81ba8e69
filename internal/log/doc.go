// Package log provides slog-based logging that keeps secrets and user text
// out of log output.
//
// The SecureHandler wraps any slog.Handler and rewrites attributes before
// they reach it:
//   - Credentials (Authorization headers, API keys, tokens) are replaced
//     with MaskValue.
//   - Submitted text (attribute keys such as "text" or "raw_text") is
//     replaced with a short summary holding only its length.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Info("prediction done", "model", "SVM", "text", userText)
//	// text=[42 chars]
//	slog.SetDefault(logger)
package log

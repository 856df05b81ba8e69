package classifier

import "errors"

var (
	// ErrModelNotLoaded is returned when a prediction asks for a model
	// kind the registry was not loaded with.
	ErrModelNotLoaded = errors.New("model not loaded")

	// ErrInvalidModelFile is returned when a vectorizer or model file is
	// malformed or does not fit the kind it was loaded for.
	ErrInvalidModelFile = errors.New("invalid model file")

	// ErrFeatureMismatch is returned when a model expects a different
	// number of features than the vectorizer produces.
	ErrFeatureMismatch = errors.New("feature count mismatch between vectorizer and model")
)

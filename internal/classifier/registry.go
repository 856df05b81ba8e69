package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/sentiment/internal/model"
)

// Predictor classifies text with a chosen model.
type Predictor interface {
	// Predict returns the prediction of model kind for text.
	Predict(ctx context.Context, kind model.ModelKind, text string) (*model.Prediction, error)

	// Ready reports whether the predictor can serve requests.
	Ready(ctx context.Context) error
}

// Paths locates the files a Registry is loaded from.
type Paths struct {
	// Vectorizer is the vectorizer file.
	Vectorizer string

	// Models maps each kind to load to its file.
	Models map[model.ModelKind]string
}

// Registry holds a vectorizer and a set of loaded models.
// It is immutable after construction and safe for concurrent use.
type Registry struct {
	vectorizer *Vectorizer
	models     map[model.ModelKind]Model
	logger     *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates a Registry from already loaded parts.
// Every model must expect as many features as the vectorizer produces.
func NewRegistry(v *Vectorizer, models map[model.ModelKind]Model, opts ...RegistryOption) (*Registry, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: no vectorizer", ErrInvalidModelFile)
	}

	r := &Registry{
		vectorizer: v,
		models:     make(map[model.ModelKind]Model, len(models)),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}

	for kind, m := range models {
		if m.NumFeatures() != v.NumFeatures() {
			return nil, fmt.Errorf("%w: %s expects %d, vectorizer produces %d",
				ErrFeatureMismatch, kind, m.NumFeatures(), v.NumFeatures())
		}
		r.models[kind] = m
	}

	return r, nil
}

// LoadRegistry reads the vectorizer and every model in paths concurrently.
// The first failure cancels the rest and is returned.
func LoadRegistry(ctx context.Context, paths Paths, opts ...RegistryOption) (*Registry, error) {
	var (
		vectorizer *Vectorizer
		mu         sync.Mutex
		models     = make(map[model.ModelKind]Model, len(paths.Models))
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		v, err := LoadVectorizer(paths.Vectorizer)
		if err != nil {
			return err
		}
		vectorizer = v
		return nil
	})

	for kind, path := range paths.Models {
		kind, path := kind, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			m, err := LoadModel(kind, path)
			if err != nil {
				return err
			}

			mu.Lock()
			models[kind] = m
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return NewRegistry(vectorizer, models, opts...)
}

// Kinds returns the loaded model kinds in selection order.
func (r *Registry) Kinds() []model.ModelKind {
	kinds := make([]model.ModelKind, 0, len(r.models))
	for _, k := range model.AllModelKinds() {
		if _, ok := r.models[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Vectorizer returns the shared vectorizer.
func (r *Registry) Vectorizer() *Vectorizer {
	return r.vectorizer
}

// Predict vectorizes text and runs model kind on it.
func (r *Registry) Predict(ctx context.Context, kind model.ModelKind, text string) (*model.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m, ok := r.models[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModelNotLoaded, kind)
	}

	features := r.vectorizer.Transform(text)
	label := m.Predict(features)

	r.logger.Debug("prediction",
		"model", kind.String(),
		"text", text,
		"features", len(features),
		"label", label,
	)

	return model.NewPrediction(kind, label), nil
}

// Ready always succeeds: a constructed Registry has everything in memory.
func (r *Registry) Ready(context.Context) error {
	return nil
}

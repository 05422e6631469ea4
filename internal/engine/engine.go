package engine

import (
	"errors"
	"fmt"
	"slices"

	"github.com/crimson-sun/airq/internal/feature"
)

// ErrDimension is returned when an artifact or an input vector does not have
// one column per registered feature.
var ErrDimension = errors.New("feature count mismatch")

// Scaler normalizes raw feature rows.
type Scaler interface {
	Transform(x [][]float64) ([][]float64, error)
	NumFeatures() int
}

// Classifier predicts one class index per scaled row.
type Classifier interface {
	Predict(x [][]float64) ([]int64, error)
	NumFeatures() int
}

// Decoder maps class indices back to category labels.
type Decoder interface {
	Decode(classes []int64) ([]string, error)
}

// namedColumns is implemented by artifacts that recorded their training
// column names.
type namedColumns interface {
	FeatureNames() []string
}

// Prediction is the outcome of one pipeline run.
type Prediction struct {
	Class    int64
	Category string
	Scaled   []float64
}

// Engine runs the scale → classify → decode pipeline against immutable
// artifacts. Safe for concurrent use if the artifacts are.
type Engine struct {
	registry   *feature.Registry
	scaler     Scaler
	classifier Classifier
	decoder    Decoder
}

// New creates an Engine and checks that every artifact agrees with the
// registry on the number (and, when recorded, the names) of its columns.
func New(reg *feature.Registry, s Scaler, c Classifier, d Decoder) (*Engine, error) {
	n := reg.Len()
	if got := s.NumFeatures(); got != n {
		return nil, fmt.Errorf("engine: scaler expects %d features, registry has %d: %w", got, n, ErrDimension)
	}
	if got := c.NumFeatures(); got != n {
		return nil, fmt.Errorf("engine: classifier expects %d features, registry has %d: %w", got, n, ErrDimension)
	}
	for _, a := range []any{s, c} {
		nc, ok := a.(namedColumns)
		if !ok {
			continue
		}
		if names := nc.FeatureNames(); len(names) > 0 && !slices.Equal(names, reg.Names()) {
			return nil, fmt.Errorf("engine: artifact column order %v does not match registry %v", names, reg.Names())
		}
	}
	return &Engine{registry: reg, scaler: s, classifier: c, decoder: d}, nil
}

// Registry returns the schema the engine was built for.
func (e *Engine) Registry() *feature.Registry {
	return e.registry
}

// PredictCategory returns the decoded category label for vec.
func (e *Engine) PredictCategory(vec feature.Vector) (string, error) {
	p, err := e.Predict(vec)
	if err != nil {
		return "", err
	}
	return p.Category, nil
}

// Predict runs vec through the pipeline as a single-row batch.
func (e *Engine) Predict(vec feature.Vector) (Prediction, error) {
	if len(vec) != e.registry.Len() {
		return Prediction{}, fmt.Errorf("engine: got %d values, want %d: %w", len(vec), e.registry.Len(), ErrDimension)
	}

	row := make([]float64, len(vec))
	copy(row, vec)

	scaled, err := e.scaler.Transform([][]float64{row})
	if err != nil {
		return Prediction{}, fmt.Errorf("engine: scale: %w", err)
	}

	classes, err := e.classifier.Predict(scaled)
	if err != nil {
		return Prediction{}, fmt.Errorf("engine: classify: %w", err)
	}
	if len(classes) != 1 {
		return Prediction{}, fmt.Errorf("engine: classify: got %d predictions for 1 row", len(classes))
	}

	labels, err := e.decoder.Decode(classes)
	if err != nil {
		return Prediction{}, fmt.Errorf("engine: decode: %w", err)
	}
	if len(labels) != 1 {
		return Prediction{}, fmt.Errorf("engine: decode: got %d labels for 1 class", len(labels))
	}

	return Prediction{Class: classes[0], Category: labels[0], Scaled: scaled[0]}, nil
}

// Close releases classifier resources, if any.
func (e *Engine) Close() error {
	if c, ok := e.classifier.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

package engine

import (
	"errors"
	"fmt"
	"io"

	"github.com/crimson-sun/airq/internal/engine/classifier"
	"github.com/crimson-sun/airq/internal/engine/decoder"
	"github.com/crimson-sun/airq/internal/engine/scaler"
	"github.com/crimson-sun/airq/internal/feature"
)

// Artifacts locates the trained pipeline on disk.
type Artifacts struct {
	ScalerPath     string
	ClassifierPath string
	DecoderPath    string
	// ORTLibPath is the ONNX Runtime shared library, needed only for .onnx
	// classifiers. Empty means libonnxruntime.so next to the model.
	ORTLibPath string
}

// Load reads all three artifacts and builds an Engine. Any failure is
// returned; callers treat it as fatal.
func Load(reg *feature.Registry, a Artifacts) (*Engine, error) {
	s, err := scaler.Load(a.ScalerPath)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	d, err := decoder.Load(a.DecoderPath)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	c, err := classifier.Open(a.ClassifierPath, a.ORTLibPath)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	eng, err := New(reg, s, c, d)
	if err != nil {
		return nil, closeOnError(err, c)
	}
	return eng, nil
}

// closeOnError closes c after a failed construction and joins any close
// error to err.
func closeOnError(err error, c io.Closer) error {
	if cerr := c.Close(); cerr != nil {
		return errors.Join(err, fmt.Errorf("engine: close classifier: %w", cerr))
	}
	return err
}

package airq

import (
	"fmt"

	"github.com/crimson-sun/airq/internal/collector"
	"github.com/crimson-sun/airq/internal/engine"
	"github.com/crimson-sun/airq/internal/feature"
	"github.com/crimson-sun/airq/internal/i18n"
	"github.com/crimson-sun/airq/internal/model"
	"github.com/crimson-sun/airq/internal/pipeline"
	"github.com/crimson-sun/airq/internal/presentation"
)

// Predictor runs the trained scaler, classifier and label decoder.
// Safe for concurrent use.
type Predictor struct {
	engine   *engine.Engine
	pipeline *pipeline.Pipeline
	renderer *presentation.Renderer
}

// New loads the artifacts and checks them against the feature schema.
// Create once, reuse across requests.
func New(opts ...Option) (*Predictor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	reg := feature.Default()
	c, err := collector.New(collector.Kind(o.input), reg)
	if err != nil {
		return nil, fmt.Errorf("airq: %w", err)
	}

	scalerPath, classifierPath, decoderPath := resolvePaths(o)
	eng, err := engine.Load(reg, engine.Artifacts{
		ScalerPath:     scalerPath,
		ClassifierPath: classifierPath,
		DecoderPath:    decoderPath,
		ORTLibPath:     o.ortLibPath,
	})
	if err != nil {
		return nil, fmt.Errorf("airq: %w", err)
	}

	r := presentation.NewRenderer(presentation.DefaultTable(), i18n.NewPrinter(o.language))
	return &Predictor{
		engine:   eng,
		pipeline: pipeline.New(c, eng, r),
		renderer: r,
	}, nil
}

// Features lists the model inputs in order.
func (p *Predictor) Features() []Feature {
	fs := p.engine.Registry().Features()
	out := make([]Feature, len(fs))
	for i, f := range fs {
		out[i] = Feature{Name: f.Name, Default: f.Default}
	}
	return out
}

// PredictCategory returns the label for a full feature vector in registry
// order.
func (p *Predictor) PredictCategory(vec []float64) (string, error) {
	return p.engine.PredictCategory(vec)
}

// Predict predicts from named values. Missing features use their defaults;
// unknown names are ignored.
func (p *Predictor) Predict(values map[string]float64) (Result, error) {
	raw := make(map[string]string, len(values))
	for k, v := range values {
		raw[k] = feature.FormatValue(v)
	}
	return p.PredictStrings(raw)
}

// PredictStrings predicts from raw form input. Unparsable values are
// reported in Result.FieldErrors and replaced by the default.
func (p *Predictor) PredictStrings(values map[string]string) (Result, error) {
	r, err := p.pipeline.Evaluate(values)
	if err != nil {
		return Result{}, fmt.Errorf("airq: %w", err)
	}
	return resultFromModel(r), nil
}

// Render returns the presentation for a category label without predicting.
func (p *Predictor) Render(category string) Result {
	v := p.renderer.Render(category)
	return Result{
		Category:       v.Category,
		Color:          v.Color,
		Emoji:          v.Emoji,
		Recommendation: v.Recommendation,
		Improvement:    v.Improvement,
		Known:          v.Known,
	}
}

// Close releases the classifier (the ONNX session, if any).
func (p *Predictor) Close() error {
	return p.engine.Close()
}

func resultFromModel(r model.Result) Result {
	out := Result{
		Category:       r.View.Category,
		Color:          r.View.Color,
		Emoji:          r.View.Emoji,
		Recommendation: r.View.Recommendation,
		Improvement:    r.View.Improvement,
		Known:          r.View.Known,
		Timestamp:      r.Timestamp,
		Values:         make([]Value, len(r.Values)),
	}
	for i, v := range r.Values {
		out.Values[i] = Value{Name: v.Name, Value: v.Value}
	}
	for _, fe := range r.FieldErrors {
		out.FieldErrors = append(out.FieldErrors, FieldError{Feature: fe.Feature, Input: fe.Input, Default: fe.Default})
	}
	return out
}

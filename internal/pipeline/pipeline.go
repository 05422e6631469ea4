package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/crimson-sun/airq/internal/collector"
	"github.com/crimson-sun/airq/internal/engine"
	"github.com/crimson-sun/airq/internal/feature"
	"github.com/crimson-sun/airq/internal/model"
	"github.com/crimson-sun/airq/internal/output"
	"github.com/crimson-sun/airq/internal/presentation"
)

// Predictor is the inference step. *engine.Engine satisfies it.
type Predictor interface {
	Predict(vec feature.Vector) (engine.Prediction, error)
}

// Pipeline connects a collector, predictor and renderer: raw form values in,
// rendered result out.
type Pipeline struct {
	collector collector.Collector
	predictor Predictor
	renderer  *presentation.Renderer
	now       func() time.Time
}

// New creates a Pipeline from the given components.
func New(c collector.Collector, p Predictor, r *presentation.Renderer) *Pipeline {
	return &Pipeline{
		collector: c,
		predictor: p,
		renderer:  r,
		now:       time.Now,
	}
}

// Collector returns the input collector.
func (p *Pipeline) Collector() collector.Collector {
	return p.collector
}

// Renderer returns the presentation renderer.
func (p *Pipeline) Renderer() *presentation.Renderer {
	return p.renderer
}

// Evaluate collects raw, predicts and renders. Field errors are part of the
// result; only inference failures are returned as errors.
func (p *Pipeline) Evaluate(raw map[string]string) (model.Result, error) {
	vec, fieldErrs := p.collector.Collect(raw)
	for _, fe := range fieldErrs {
		slog.Warn("invalid field value, using default",
			"feature", fe.Feature, "input", fe.Input, "default", fe.Default)
	}

	pred, err := p.predictor.Predict(vec)
	if err != nil {
		return model.Result{}, fmt.Errorf("pipeline predict: %w", err)
	}

	reg := p.collector.Registry()
	values := make([]model.Value, 0, len(vec))
	for i, name := range reg.Names() {
		values = append(values, model.Value{Name: name, Value: vec[i]})
	}

	view := p.renderer.Render(pred.Category)
	if !view.Known {
		slog.Warn("unrecognized category, using fallback presentation", "category", pred.Category)
	}
	slog.Debug("prediction", "category", pred.Category, "class", pred.Class)

	return model.Result{
		Timestamp:   p.now(),
		Class:       pred.Class,
		Values:      values,
		FieldErrors: fieldErrs,
		View:        view,
	}, nil
}

// Run evaluates raw and writes the result to out.
func (p *Pipeline) Run(ctx context.Context, raw map[string]string, out output.Output) (model.Result, error) {
	r, err := p.Evaluate(raw)
	if err != nil {
		return model.Result{}, err
	}
	if err := out.Write(ctx, r); err != nil {
		return r, fmt.Errorf("pipeline output: %w", err)
	}
	return r, nil
}

package engine

import (
	"errors"
	"testing"

	"github.com/crimson-sun/airq/internal/feature"
)

const testModelDir = "../../models"

func testArtifacts() Artifacts {
	return Artifacts{
		ScalerPath:     testModelDir + "/scaler.yaml",
		ClassifierPath: testModelDir + "/forest.json",
		DecoderPath:    testModelDir + "/labels.json",
	}
}

type fakeScaler struct {
	n    int
	rows [][]float64
	err  error
}

func (s *fakeScaler) Transform(x [][]float64) ([][]float64, error) {
	s.rows = x
	return x, s.err
}

func (s *fakeScaler) NumFeatures() int { return s.n }

type fakeClassifier struct {
	n        int
	class    int64
	err      error
	closeErr error
	closed   bool
}

func (c *fakeClassifier) Predict(x [][]float64) ([]int64, error) {
	if c.err != nil {
		return nil, c.err
	}
	out := make([]int64, len(x))
	for i := range out {
		out[i] = c.class
	}
	return out, nil
}

func (c *fakeClassifier) NumFeatures() int { return c.n }

func (c *fakeClassifier) Close() error {
	c.closed = true
	return c.closeErr
}

type fakeDecoder struct{ labels []string }

func (d fakeDecoder) Decode(classes []int64) ([]string, error) {
	out := make([]string, len(classes))
	for i, c := range classes {
		if int(c) >= len(d.labels) {
			return nil, errors.New("out of range")
		}
		out[i] = d.labels[c]
	}
	return out, nil
}

type namedScaler struct {
	fakeScaler
	names []string
}

func (s *namedScaler) FeatureNames() []string { return s.names }

func TestPredictCategoryWithFakes(t *testing.T) {
	reg := feature.Default()
	s := &fakeScaler{n: 8}
	c := &fakeClassifier{n: 8, class: 1}
	d := fakeDecoder{labels: []string{"Good", "Hazardous"}}

	eng, err := New(reg, s, c, d)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got, err := eng.PredictCategory(reg.Defaults())
	if err != nil {
		t.Fatalf("PredictCategory: %v", err)
	}
	if got != "Hazardous" {
		t.Fatalf("got %q, want Hazardous", got)
	}
	if len(s.rows) != 1 || len(s.rows[0]) != 8 {
		t.Fatalf("scaler saw %v, want a single row of 8", s.rows)
	}
}

func TestNewRejectsDimensionMismatch(t *testing.T) {
	reg := feature.Default()
	d := fakeDecoder{labels: []string{"Good"}}

	if _, err := New(reg, &fakeScaler{n: 7}, &fakeClassifier{n: 8}, d); !errors.Is(err, ErrDimension) {
		t.Fatalf("scaler mismatch: got %v, want ErrDimension", err)
	}
	if _, err := New(reg, &fakeScaler{n: 8}, &fakeClassifier{n: 9}, d); !errors.Is(err, ErrDimension) {
		t.Fatalf("classifier mismatch: got %v, want ErrDimension", err)
	}
}

func TestNewRejectsReorderedColumns(t *testing.T) {
	reg := feature.Default()
	names := reg.Names()
	names[0], names[1] = names[1], names[0]

	s := &namedScaler{fakeScaler: fakeScaler{n: 8}, names: names}
	_, err := New(reg, s, &fakeClassifier{n: 8}, fakeDecoder{})
	if err == nil {
		t.Fatal("expected error for reordered column names")
	}
}

func TestPredictWrongLength(t *testing.T) {
	reg := feature.Default()
	eng, err := New(reg, &fakeScaler{n: 8}, &fakeClassifier{n: 8}, fakeDecoder{labels: []string{"Good"}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := eng.PredictCategory(feature.Vector{1, 2, 3}); !errors.Is(err, ErrDimension) {
		t.Fatalf("got %v, want ErrDimension", err)
	}
}

func TestPredictPropagatesErrors(t *testing.T) {
	reg := feature.Default()
	boom := errors.New("boom")

	eng, _ := New(reg, &fakeScaler{n: 8, err: boom}, &fakeClassifier{n: 8}, fakeDecoder{labels: []string{"Good"}})
	if _, err := eng.PredictCategory(reg.Defaults()); !errors.Is(err, boom) {
		t.Fatalf("scaler error not propagated: %v", err)
	}

	eng, _ = New(reg, &fakeScaler{n: 8}, &fakeClassifier{n: 8, err: boom}, fakeDecoder{labels: []string{"Good"}})
	if _, err := eng.PredictCategory(reg.Defaults()); !errors.Is(err, boom) {
		t.Fatalf("classifier error not propagated: %v", err)
	}

	eng, _ = New(reg, &fakeScaler{n: 8}, &fakeClassifier{n: 8, class: 5}, fakeDecoder{labels: []string{"Good"}})
	if _, err := eng.PredictCategory(reg.Defaults()); err == nil {
		t.Fatal("decoder error not propagated")
	}
}

func TestClose(t *testing.T) {
	c := &fakeClassifier{n: 8}
	eng, err := New(feature.Default(), &fakeScaler{n: 8}, c, fakeDecoder{})
	if err != nil {
		t.Fatal(err)
	}
	if err := eng.Close(); err != nil {
		t.Fatal(err)
	}
	if !c.closed {
		t.Fatal("Close did not close the classifier")
	}
}

func TestLoadBundledArtifacts(t *testing.T) {
	eng, err := Load(feature.Default(), testArtifacts())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer eng.Close()

	tests := []struct {
		name   string
		values map[string]float64
		want   string
	}{
		{"defaults", nil, "Moderate"},
		{"clean air", map[string]float64{"CO": 0.8, "Proximity_to_Industrial_Areas": 20, "PM10": 5}, "Good"},
		{"smog", map[string]float64{"CO": 3.5, "PM10": 200, "NO2": 60}, "Hazardous"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vec := eng.Registry().Defaults()
			for name, v := range tt.values {
				i, ok := eng.Registry().Index(name)
				if !ok {
					t.Fatalf("unknown feature %s", name)
				}
				vec[i] = v
			}
			got, err := eng.PredictCategory(vec)
			if err != nil {
				t.Fatalf("PredictCategory: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultsAreDeterministic(t *testing.T) {
	eng, err := Load(feature.Default(), testArtifacts())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer eng.Close()

	first, err := eng.PredictCategory(eng.Registry().Defaults())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		got, err := eng.PredictCategory(eng.Registry().Defaults())
		if err != nil {
			t.Fatal(err)
		}
		if got != first {
			t.Fatalf("run %d: got %q, want %q", i, got, first)
		}
	}
}

func TestLoadFailsFast(t *testing.T) {
	reg := feature.Default()

	a := testArtifacts()
	a.ScalerPath = "/nonexistent/scaler.yaml"
	if _, err := Load(reg, a); err == nil {
		t.Fatal("expected error for missing scaler")
	}

	a = testArtifacts()
	a.DecoderPath = "/nonexistent/labels.json"
	if _, err := Load(reg, a); err == nil {
		t.Fatal("expected error for missing decoder")
	}

	a = testArtifacts()
	a.ClassifierPath = "/nonexistent/model.json"
	if _, err := Load(reg, a); err == nil {
		t.Fatal("expected error for missing classifier")
	}

	short, err := feature.NewRegistry([]feature.Feature{{Name: "Temperature", Default: 30}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Load(short, testArtifacts()); !errors.Is(err, ErrDimension) {
		t.Fatalf("got %v, want ErrDimension for a registry/artifact mismatch", err)
	}
}

func TestCloseOnError(t *testing.T) {
	c := &fakeClassifier{}
	if err := closeOnError(ErrDimension, c); err != ErrDimension || !c.closed {
		t.Fatalf("clean close: got %v, closed=%v", err, c.closed)
	}

	closeErr := errors.New("session busy")
	c = &fakeClassifier{closeErr: closeErr}
	err := closeOnError(ErrDimension, c)
	if !errors.Is(err, ErrDimension) || !errors.Is(err, closeErr) {
		t.Fatalf("got %v, want both the construction and the close error", err)
	}
}

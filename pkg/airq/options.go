package airq

import "path/filepath"

type options struct {
	artifactDir    string
	scalerPath     string
	classifierPath string
	decoderPath    string
	ortLibPath     string
	language       string
	input          string
}

// Option configures a Predictor.
type Option func(*options)

// WithArtifactDir sets the directory containing the trained pipeline.
// Expects: scaler.yaml, forest.json, labels.json.
func WithArtifactDir(dir string) Option {
	return func(o *options) {
		o.artifactDir = dir
	}
}

// WithArtifactPaths sets explicit paths for each artifact.
// Use this for an .onnx classifier or a non-default layout.
func WithArtifactPaths(scaler, classifier, decoder string) Option {
	return func(o *options) {
		o.scalerPath = scaler
		o.classifierPath = classifier
		o.decoderPath = decoder
	}
}

// WithORTLib sets the ONNX Runtime shared library used for .onnx classifiers.
func WithORTLib(path string) Option {
	return func(o *options) {
		o.ortLibPath = path
	}
}

// WithLanguage sets the language of rendered text, as a BCP 47 tag or
// Accept-Language value. Default: "en".
func WithLanguage(lang string) Option {
	return func(o *options) {
		o.language = lang
	}
}

// WithInput selects how string values are collected: "text" reports parse
// errors per field, "slider" clamps into [0, 2×default]. Default: "text".
func WithInput(kind string) Option {
	return func(o *options) {
		o.input = kind
	}
}

func defaultOptions() options {
	return options{
		language: "en",
		input:    "text",
	}
}

// resolvePaths determines the artifact paths from the configured options.
// Explicit paths take precedence over artifactDir.
func resolvePaths(o options) (scaler, classifier, decoder string) {
	if o.scalerPath != "" {
		return o.scalerPath, o.classifierPath, o.decoderPath
	}
	dir := o.artifactDir
	if dir == "" {
		dir = "models"
	}
	return filepath.Join(dir, "scaler.yaml"),
		filepath.Join(dir, "forest.json"),
		filepath.Join(dir, "labels.json")
}

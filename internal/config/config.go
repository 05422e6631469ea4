package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all airq configuration.
type Config struct {
	Artifacts ArtifactConfig `yaml:"artifacts"`
	Server    ServerConfig   `yaml:"server"`
	Form      FormConfig     `yaml:"form"`
	Output    OutputConfig   `yaml:"output"`
	Log       LogConfig      `yaml:"log"`
}

// ArtifactConfig locates the trained pipeline. Relative file names are
// resolved against Dir.
type ArtifactConfig struct {
	Dir        string `yaml:"dir"`
	Scaler     string `yaml:"scaler"`
	Classifier string `yaml:"classifier"`
	Decoder    string `yaml:"decoder"`
	ORTLib     string `yaml:"ort_lib"`
}

// ServerConfig holds web server settings.
type ServerConfig struct {
	Addr      string `yaml:"addr"`
	ImagePath string `yaml:"image_path"`

	// Authors and Footer are the credit lines shown on the page. Empty
	// values hide them.
	Authors string   `yaml:"authors"`
	Footer  []string `yaml:"footer"`
}

// FormConfig controls how inputs are collected and labelled.
type FormConfig struct {
	Input string `yaml:"input"` // "slider" or "text"

	// Language pins the UI language. Empty lets the web page follow
	// Accept-Language; the terminal surfaces then use English.
	Language string `yaml:"language"`
}

// OutputConfig holds settings for the predict command.
type OutputConfig struct {
	Format    string `yaml:"format"` // "terminal" or "json"
	Verbosity string `yaml:"verbosity"`
	Pretty    bool   `yaml:"pretty"`
}

// LogConfig holds slog settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Artifacts: ArtifactConfig{
			Dir:        "models",
			Scaler:     "scaler.yaml",
			Classifier: "forest.json",
			Decoder:    "labels.json",
		},
		Server: ServerConfig{
			Addr:    ":8501",
			Authors: "Johan Rodriguez, Stefania Reyes",
			Footer:  []string{"Ingeniería Industrial", "Unab 2025®"},
		},
		Form:   FormConfig{Input: "slider"},
		Output: OutputConfig{Format: "terminal", Verbosity: "standard"},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// Load starts from Default, overlays the YAML file named by AIRQ_CONFIG (if
// set) and then environment variables.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv("AIRQ_CONFIG"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	envOverride(&cfg.Artifacts.Dir, "AIRQ_ARTIFACT_DIR")
	envOverride(&cfg.Artifacts.Scaler, "AIRQ_SCALER_PATH")
	envOverride(&cfg.Artifacts.Classifier, "AIRQ_CLASSIFIER_PATH")
	envOverride(&cfg.Artifacts.Decoder, "AIRQ_DECODER_PATH")
	envOverride(&cfg.Artifacts.ORTLib, "AIRQ_ORT_LIB")
	envOverride(&cfg.Server.Addr, "AIRQ_ADDR")
	envOverride(&cfg.Server.ImagePath, "AIRQ_IMAGE_PATH")
	envOverride(&cfg.Server.Authors, "AIRQ_AUTHORS")
	envOverride(&cfg.Form.Input, "AIRQ_INPUT")
	envOverride(&cfg.Form.Language, "AIRQ_LANG")
	envOverride(&cfg.Output.Format, "AIRQ_OUTPUT")
	envOverride(&cfg.Output.Verbosity, "AIRQ_VERBOSITY")
	cfg.Output.Pretty = getenv("AIRQ_OUTPUT_PRETTY", boolString(cfg.Output.Pretty)) == "true"
	envOverride(&cfg.Log.Level, "AIRQ_LOG_LEVEL")
	envOverride(&cfg.Log.Format, "AIRQ_LOG_FORMAT")
}

func envOverride(dst *string, key string) {
	*dst = getenv(key, *dst)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// ScalerPath returns the resolved scaler file.
func (a ArtifactConfig) ScalerPath() string { return a.resolve(a.Scaler) }

// ClassifierPath returns the resolved classifier file.
func (a ArtifactConfig) ClassifierPath() string { return a.resolve(a.Classifier) }

// DecoderPath returns the resolved label decoder file.
func (a ArtifactConfig) DecoderPath() string { return a.resolve(a.Decoder) }

func (a ArtifactConfig) resolve(name string) string {
	if name == "" || filepath.IsAbs(name) || a.Dir == "" {
		return name
	}
	return filepath.Join(a.Dir, name)
}

// Validate checks enum fields and that the artifact files exist.
// Returns all errors joined, not just the first.
func (c Config) Validate() error {
	var errs []error

	for _, f := range []struct{ what, path string }{
		{"scaler", c.Artifacts.ScalerPath()},
		{"classifier", c.Artifacts.ClassifierPath()},
		{"decoder", c.Artifacts.DecoderPath()},
	} {
		if f.path == "" {
			errs = append(errs, fmt.Errorf("%s path is empty", f.what))
			continue
		}
		if _, err := os.Stat(f.path); err != nil {
			errs = append(errs, fmt.Errorf("%s file: %w", f.what, err))
		}
	}
	if c.Artifacts.ORTLib != "" {
		if _, err := os.Stat(c.Artifacts.ORTLib); err != nil {
			errs = append(errs, fmt.Errorf("onnx runtime library: %w", err))
		}
	}

	if !oneOf(c.Form.Input, "slider", "text") {
		errs = append(errs, fmt.Errorf("form input must be slider or text, got %q", c.Form.Input))
	}
	if !oneOf(c.Output.Format, "terminal", "json") {
		errs = append(errs, fmt.Errorf("output format must be terminal or json, got %q", c.Output.Format))
	}
	if !oneOf(c.Output.Verbosity, "minimal", "standard", "full") {
		errs = append(errs, fmt.Errorf("verbosity must be minimal, standard or full, got %q", c.Output.Verbosity))
	}
	if !oneOf(strings.ToLower(c.Log.Level), "debug", "info", "warn", "warning", "error") {
		errs = append(errs, fmt.Errorf("log level %q is not recognized", c.Log.Level))
	}
	if !oneOf(c.Log.Format, "text", "json") {
		errs = append(errs, fmt.Errorf("log format must be text or json, got %q", c.Log.Format))
	}
	if c.Server.ImagePath != "" {
		if _, err := os.Stat(c.Server.ImagePath); err != nil {
			errs = append(errs, fmt.Errorf("image file: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

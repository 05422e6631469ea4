package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/airq/internal/collector"
	"github.com/crimson-sun/airq/internal/config"
	"github.com/crimson-sun/airq/internal/engine"
	"github.com/crimson-sun/airq/internal/feature"
	"github.com/crimson-sun/airq/internal/i18n"
	"github.com/crimson-sun/airq/internal/logging"
	"github.com/crimson-sun/airq/internal/pipeline"
	"github.com/crimson-sun/airq/internal/presentation"
)

// version is set at build time via -ldflags.
var version = "dev"

var globalFlags struct {
	artifactDir string
	classifier  string
	ortLib      string
	lang        string
	logLevel    string
	logFormat   string
}

var rootCmd = &cobra.Command{
	Use:   "airq",
	Short: "Air-quality category prediction",
	Long: "airq feeds eight environmental measurements through a trained scaler,\n" +
		"classifier and label decoder and shows the predicted air-quality\n" +
		"category with a recommendation.",
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&globalFlags.artifactDir, "artifacts", "", "Directory with the trained pipeline (overrides AIRQ_ARTIFACT_DIR)")
	f.StringVar(&globalFlags.classifier, "classifier", "", "Classifier file, .onnx or .json/.yaml forest")
	f.StringVar(&globalFlags.ortLib, "ort-lib", "", "ONNX Runtime shared library")
	f.StringVar(&globalFlags.lang, "lang", "", "UI language: en or es")
	f.StringVar(&globalFlags.logLevel, "log-level", "", "debug, info, warn or error")
	f.StringVar(&globalFlags.logFormat, "log-format", "", "text or json")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(formCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(featuresCmd)
	rootCmd.Version = version
}

// loadConfig resolves defaults, the config file, the environment, the
// global flags and then the command's own flags (applied by cmdFlags). The
// result is validated once, after every layer, and logging is initialized.
func loadConfig(cmdFlags ...func(*config.Config)) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	override(&cfg.Artifacts.Dir, globalFlags.artifactDir)
	override(&cfg.Artifacts.Classifier, globalFlags.classifier)
	override(&cfg.Artifacts.ORTLib, globalFlags.ortLib)
	override(&cfg.Form.Language, globalFlags.lang)
	override(&cfg.Log.Level, globalFlags.logLevel)
	override(&cfg.Log.Format, globalFlags.logFormat)
	for _, apply := range cmdFlags {
		apply(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	logging.Init(cfg.Log.Format, logging.ParseLevel(cfg.Log.Level))
	return cfg, nil
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// loadEngine loads the artifacts named by cfg. A failure here is fatal.
func loadEngine(cfg config.Config) (*engine.Engine, error) {
	eng, err := engine.Load(feature.Default(), engine.Artifacts{
		ScalerPath:     cfg.Artifacts.ScalerPath(),
		ClassifierPath: cfg.Artifacts.ClassifierPath(),
		DecoderPath:    cfg.Artifacts.DecoderPath(),
		ORTLibPath:     cfg.Artifacts.ORTLib,
	})
	if err != nil {
		return nil, fmt.Errorf("load artifacts: %w", err)
	}
	slog.Info("artifacts loaded",
		"scaler", cfg.Artifacts.ScalerPath(),
		"classifier", cfg.Artifacts.ClassifierPath(),
		"decoder", cfg.Artifacts.DecoderPath())
	return eng, nil
}

// newPipeline builds a text or slider pipeline over eng for cfg's language.
func newPipeline(cfg config.Config, eng *engine.Engine, kind collector.Kind) (*pipeline.Pipeline, error) {
	c, err := collector.New(kind, eng.Registry())
	if err != nil {
		return nil, err
	}
	r := presentation.NewRenderer(presentation.DefaultTable(), i18n.NewPrinter(cfg.Form.Language))
	return pipeline.New(c, eng, r), nil
}

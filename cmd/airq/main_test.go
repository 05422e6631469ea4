package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/crimson-sun/airq/internal/feature"
	"github.com/crimson-sun/airq/internal/output"
)

const testArtifacts = "../../models"

var envKeys = []string{
	"AIRQ_CONFIG", "AIRQ_ARTIFACT_DIR", "AIRQ_CLASSIFIER_PATH", "AIRQ_ADDR",
	"AIRQ_INPUT", "AIRQ_LANG", "AIRQ_OUTPUT", "AIRQ_VERBOSITY", "AIRQ_OUTPUT_PRETTY",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

// execute runs the root command in-process with fresh flag values.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeContext(t, context.Background(), args...)
}

func executeContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	globalFlags.artifactDir, globalFlags.classifier, globalFlags.ortLib = "", "", ""
	globalFlags.lang, globalFlags.logLevel, globalFlags.logFormat = "", "", ""
	serveFlags.addr, serveFlags.input, serveFlags.image = "", "", ""
	predictFlags.json, predictFlags.pretty, predictFlags.quiet = false, false, false
	predictFlags.verbosity = ""
	featuresFlags.json = false

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	return buf.String(), err
}

func TestPredictJSON(t *testing.T) {
	clearEnv(t)
	out, err := execute(t, "predict", "--artifacts", testArtifacts, "--log-level", "error",
		"--json", "CO=3.5", "PM10=200", "NO2=60")
	if err != nil {
		t.Fatalf("predict: %v\n%s", err, out)
	}

	var rec output.Record
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if rec.Category != "Hazardous" || rec.Color != "#8B0000" {
		t.Errorf("got %+v, want Hazardous", rec)
	}
	if rec.Recommendation == "" || rec.Improvement == "" {
		t.Error("standard verbosity should include advice")
	}
}

func TestPredictFieldError(t *testing.T) {
	clearEnv(t)
	out, err := execute(t, "predict", "--artifacts", testArtifacts, "--log-level", "error",
		"--json", "Humidity=wet")
	if err != nil {
		t.Fatalf("predict: %v\n%s", err, out)
	}

	var rec struct {
		Category    string `json:"category"`
		FieldErrors []struct {
			Feature string  `json:"feature"`
			Input   string  `json:"input"`
			Default float64 `json:"default"`
		} `json:"field_errors"`
	}
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(rec.FieldErrors) != 1 || rec.FieldErrors[0].Feature != "Humidity" || rec.FieldErrors[0].Default != 70.03624 {
		t.Errorf("field errors = %+v", rec.FieldErrors)
	}
	if rec.Category != "Moderate" {
		t.Errorf("category = %q, want Moderate for defaults", rec.Category)
	}
}

func TestPredictTerminal(t *testing.T) {
	clearEnv(t)
	out, err := execute(t, "predict", "--artifacts", testArtifacts, "--log-level", "error",
		"-q", "CO=0.8", "Proximity_to_Industrial_Areas=20", "PM10=5")
	if err != nil {
		t.Fatalf("predict: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Good") {
		t.Errorf("terminal output missing category:\n%s", out)
	}
	if strings.Contains(out, "How to improve") {
		t.Errorf("Good should have no improvement section:\n%s", out)
	}
}

func TestPredictBadArtifacts(t *testing.T) {
	clearEnv(t)
	_, err := execute(t, "predict", "--artifacts", t.TempDir(), "CO=1")
	if err == nil {
		t.Fatal("expected error for missing artifacts")
	}
}

func TestParseAssignments(t *testing.T) {
	reg := feature.Default()

	got, err := parseAssignments(reg, []string{"CO=3.5", " PM10 = 200", "NO2=abc"})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"CO": "3.5", "PM10": " 200", "NO2": "abc"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"CO", "Ozone=3"} {
		if _, err := parseAssignments(reg, []string{bad}); err == nil {
			t.Errorf("parseAssignments(%q) should fail", bad)
		}
	}
}

func TestFeaturesJSON(t *testing.T) {
	clearEnv(t)
	out, err := execute(t, "features", "--json")
	if err != nil {
		t.Fatal(err)
	}

	var infos []featureInfo
	if err := json.Unmarshal([]byte(out), &infos); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(infos) != 8 {
		t.Fatalf("got %d features, want 8", len(infos))
	}
	if infos[0].Name != "Temperature" || infos[0].Min != 0 || infos[0].Max != 2*29.9773 {
		t.Errorf("first feature = %+v", infos[0])
	}
}

func TestFeaturesTable(t *testing.T) {
	clearEnv(t)
	out, err := execute(t, "features")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "NAME") || !strings.Contains(out, "Population_Density") {
		t.Errorf("unexpected table:\n%s", out)
	}
}

func TestPredictVerbosityFlagOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("AIRQ_VERBOSITY", "bogus")

	out, err := execute(t, "predict", "--artifacts", testArtifacts, "--log-level", "error",
		"--json", "--verbosity", "minimal", "CO=3.5")
	if err != nil {
		t.Fatalf("flag should replace the bad env value: %v\n%s", err, out)
	}

	var rec output.Record
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if rec.Category == "" || rec.Recommendation != "" {
		t.Errorf("minimal verbosity should carry only the category, got %+v", rec)
	}
}

func TestPredictRejectsBadVerbosityFlag(t *testing.T) {
	clearEnv(t)

	_, err := execute(t, "predict", "--artifacts", testArtifacts, "--json", "--verbosity", "bogus", "CO=3.5")
	if err == nil || !strings.Contains(err.Error(), "verbosity") {
		t.Fatalf("got %v, want a verbosity validation error", err)
	}
}

func TestServeFlagOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("AIRQ_INPUT", "bogus")

	// A cancelled context makes serve start and shut down straight away.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := executeContext(t, ctx, "serve", "--artifacts", testArtifacts, "--log-level", "error",
		"--input", "text", "--addr", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("flag should replace the bad env value: %v\n%s", err, out)
	}
}

func TestServeRejectsBadEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("AIRQ_INPUT", "bogus")

	_, err := execute(t, "serve", "--artifacts", testArtifacts, "--addr", "127.0.0.1:0")
	if err == nil || !strings.Contains(err.Error(), "form input") {
		t.Fatalf("got %v, want a form input validation error", err)
	}
}

func TestPredictLanguageFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("AIRQ_LANG", "es")

	out, err := execute(t, "predict", "--artifacts", testArtifacts, "--log-level", "error", "-q", "CO=3.5")
	if err != nil {
		t.Fatalf("predict: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Recomendación") {
		t.Errorf("expected Spanish headings:\n%s", out)
	}
}

package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"aiintegration/internal/outliers"
	"aiintegration/internal/services"
)

const positionalDetection = `{"points":[
{"isOutlier":false,"anomalyScore":0.05,"explanation":"steady"},
{"isOutlier":false,"anomalyScore":0.08,"explanation":"steady"},
{"isOutlier":true,"anomalyScore":0.97,"explanation":"sudden spike"},
{"isOutlier":false,"anomalyScore":0.06,"explanation":"steady"}
],"summary":"One spike in the third hour."}`

func TestDetectSampleTable(t *testing.T) {
	env := setupCLITestEnv(t, positionalDetection)

	out, stderr, err := runCLI(t, []string{"detect"}, env.configPath)
	if err != nil {
		t.Fatalf("detect: %v (stderr %s)", err, stderr)
	}
	requireContains(t, out, "sudden spike")
	requireContains(t, out, "0.97")
	requireContains(t, out, "[OK] Model")
	requireContains(t, out, "One spike in the third hour.")
	requireContains(t, out, "1 outlier(s)")
	requireContains(t, out, "Saved as run ")
	requireContains(t, stderr, "outlier detection completed")

	prompts := env.model.Prompts()
	if len(prompts) != 1 {
		t.Fatalf("expected one prompt, got %d", len(prompts))
	}
	requireContains(t, prompts[0], "sensitivityThreshold: 0.95")
	requireContains(t, prompts[0], "Value: 150\n")
}

func TestDetectFallbackJSON(t *testing.T) {
	env := setupCLITestEnv(t, "The third reading is clearly anomalous.")

	out, _, err := runCLI(t, []string{"detect", "--json", "--no-history"}, env.configPath)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	var result outliers.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if result.Source != services.SourceFallback {
		t.Fatalf("source = %q", result.Source)
	}
	if result.Summary != "Basic statistical analysis performed" {
		t.Fatalf("summary = %q", result.Summary)
	}
	if len(result.Points) != 4 || result.SchemaVersion != services.SchemaVersion {
		t.Fatalf("unexpected result %+v", result)
	}
	for _, p := range result.Points {
		if p.AnomalyScore < 0 || p.AnomalyScore > 1 {
			t.Fatalf("score out of range: %+v", p)
		}
	}

	list, _, err := runCLI(t, []string{"history", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, list, "No runs recorded in "+env.cfg.History.Path)
}

func TestDetectInputFileAndParams(t *testing.T) {
	env := setupCLITestEnv(t, `{"points":[{"timestamp":"b","isOutlier":true,"anomalyScore":0.8,"explanation":"jump"}]}`)
	input := writeInput(t, env.baseDir, "series.csv", "timestamp,value\na,1\nb,40\nc,2\n")

	out, _, err := runCLI(t, []string{"detect", "--input", input, "--param", "window=3", "--param", "unit=celsius", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	var result outliers.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if result.Merge != "timestamp" || !result.Points[1].IsOutlier || result.Points[0].IsOutlier {
		t.Fatalf("unexpected merge %+v", result)
	}
	prompt := env.model.Prompts()[0]
	requireContains(t, prompt, "Timestamp: b, Value: 40")
	requireContains(t, prompt, "Parameters:\nunit: celsius\nwindow: 3\n")
	if strings.Contains(prompt, "sensitivityThreshold") {
		t.Fatal("sample parameters should not be sent with file input")
	}
}

func TestDetectTransportFailure(t *testing.T) {
	env := setupCLITestEnv(t, "")
	env.model.FailWith(http.StatusInternalServerError)

	out, _, err := runCLI(t, []string{"detect"}, env.configPath)
	if err == nil {
		t.Fatal("expected detect to fail")
	}
	requireContains(t, err.Error(), "outlier detection failed")
	if out != "" {
		t.Fatalf("expected no output on failure, got %q", out)
	}
}

func TestDetectRejectsBadParam(t *testing.T) {
	env := setupCLITestEnv(t, positionalDetection)

	_, _, err := runCLI(t, []string{"detect", "--param", "oops"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for malformed param")
	}
	requireContains(t, err.Error(), "key=value")
	if len(env.model.Prompts()) != 0 {
		t.Fatal("model should not be called when input is invalid")
	}
}

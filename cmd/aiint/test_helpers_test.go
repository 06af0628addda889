package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"aiintegration/internal/config"
	"aiintegration/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	model      *testsupport.ModelServer
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, response string, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("OLLAMA_HOST", "")
	t.Setenv("OLLAMA_MODEL", "")

	model := testsupport.NewModelServer(t, response)
	cfg := testsupport.NewConfig(t, append([]testsupport.ConfigOption{testsupport.WithModelServer(model.URL)}, opts...)...)
	configPath := testsupport.WriteConfig(t, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		model:      model,
		configPath: configPath,
		baseDir:    base,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

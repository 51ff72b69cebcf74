package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/vk/apiconfig/internal/app"
)

// HarnessResult holds the outcomes of an application run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// RunApp writes files to a temporary directory, points cfg.InputPath at
// input inside it and runs the application. An empty input uses the
// directory itself.
func RunApp(t *testing.T, files map[string]string, input string, cfg app.Config) *HarnessResult {
	t.Helper()

	dir := WriteFiles(t, files)
	cfg.InputPath = dir
	if input != "" {
		cfg.InputPath = filepath.Join(dir, filepath.FromSlash(input))
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	appConfig, err := app.NewConfig(cfg)
	if err != nil {
		return &HarnessResult{Err: err}
	}

	out := &bytes.Buffer{}
	logBuffer := &SafeBuffer{}
	testApp := app.NewApp(out, logBuffer, appConfig)
	runErr := testApp.Run(context.Background())

	if os.Getenv("APICONFIG_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
}

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xanthalas/consoleui/internal/config"
	"github.com/xanthalas/consoleui/internal/logging"
	"github.com/xanthalas/consoleui/internal/perf"
)

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.HomeEnv, t.TempDir())
	t.Cleanup(func() { _ = logging.Close() })

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRunHeadlessPrintsFinalFrame(t *testing.T) {
	out, err := executeRoot(t, "--device", "headless")
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, out)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 24 {
		t.Fatalf("expected 24 rows, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "┌") {
		t.Fatalf("first row %q", lines[0])
	}
	if !strings.Contains(lines[3], "ntNow write ") {
		t.Fatalf("row 3 %q", lines[3])
	}
}

func TestRunKeepsProfilingEnabledFromEnvironment(t *testing.T) {
	restore := perf.EnableForTest()
	defer restore()

	if out, err := executeRoot(t, "--device", "headless"); err != nil {
		t.Fatalf("run failed: %v\n%s", err, out)
	}
	if !perf.Enabled() {
		t.Fatalf("profiling was switched off by a config without profile set")
	}
}

func TestRunProfileFromConfig(t *testing.T) {
	restore := perf.EnableForTest()
	defer restore()
	perf.Configure(false, 0)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("device = \"headless\"\nprofile = true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if out, err := executeRoot(t, "--config", path); err != nil {
		t.Fatalf("run failed: %v\n%s", err, out)
	}
	if !perf.Enabled() {
		t.Fatalf("profile = true in config did not enable profiling")
	}
}

func TestRunUnknownDevice(t *testing.T) {
	if _, err := executeRoot(t, "--device", "teletype"); err == nil {
		t.Fatalf("expected an error for an unknown device")
	}
}

func TestRunRejectsNegativeStepDelay(t *testing.T) {
	if _, err := executeRoot(t, "--device", "headless", "--step-delay=-1s"); err == nil {
		t.Fatalf("expected an error for a negative delay")
	}
}

func TestRunUsesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "device = \"headless\"\n\n[theme]\nwindow_border = \"double\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	out, err := executeRoot(t, "--config", path)
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, out)
	}
	if !strings.HasPrefix(out, "╔") {
		t.Fatalf("expected a double window border, got %q", strings.SplitN(out, "\n", 2)[0])
	}
}

func TestRunRejectsBadTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "device = \"headless\"\n\n[theme]\naccent = \"plaid\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := executeRoot(t, "--config", path); err == nil {
		t.Fatalf("expected an error for an invalid theme color")
	}
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	out, err := executeRoot(t, "init-config", "--config", path)
	if err != nil {
		t.Fatalf("init-config failed: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Fatalf("output %q does not name %s", out, path)
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Theme != config.DefaultTheme() || cfg.Device != "ansi" {
		t.Fatalf("unexpected config %+v", cfg)
	}

	if _, err := executeRoot(t, "init-config", "--config", path); err == nil {
		t.Fatalf("expected init-config to refuse an existing file")
	}
	if _, err := executeRoot(t, "init-config", "--config", path, "--force"); err != nil {
		t.Fatalf("init-config --force failed: %v", err)
	}
}

func TestDebugFlagRaisesLogLevel(t *testing.T) {
	cmd := newRootCmd()
	cfg, err := config.DefaultConfig()
	if err != nil {
		t.Fatalf("DefaultConfig failed: %v", err)
	}
	opts := options{debug: true}
	if err := opts.apply(cmd, cfg); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level = %q", cfg.LogLevel)
	}
}

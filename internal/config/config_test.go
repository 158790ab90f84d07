package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("Load = %#v, want defaults %#v", cfg, Default())
	}
}

func TestLoad_DefaultPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "logpipe")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[augment]\nexclude_orphans = true\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.Augment.ExcludeOrphans {
		t.Fatalf("ExcludeOrphans = false, want true from default config path")
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	path := writeConfig(t, `
log_level = "  debug "

[augment]
append_hostname = true
append_instance_id = true

[pretty]
output_format = " json "
use_colors = "never"
filter = "  timeout  "
head = 2
lag = 3
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if !cfg.Augment.AppendHostname || !cfg.Augment.AppendInstanceID || cfg.Augment.ExcludeOrphans {
		t.Fatalf("Augment = %#v, want hostname+instance id only", cfg.Augment)
	}
	want := PrettyConfig{OutputFormat: "json", UseColors: "never", Filter: "timeout", Head: 2, Lag: 3}
	if cfg.Pretty != want {
		t.Fatalf("Pretty = %#v, want %#v", cfg.Pretty, want)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	path := writeConfig(t, `
log_level = "   "

[pretty]
output_format = ""
use_colors = " "
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("Load = %#v, want defaults %#v", cfg, Default())
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[augment]
append_hostname = true

[pretty]
use_colors = "always"
head = 1
`)
	t.Setenv("LOGPIPE_APPEND_HOSTNAME", "false")
	t.Setenv("LOGPIPE_EXCLUDE_ORPHANS", "true")
	t.Setenv("LOGPIPE_USE_COLORS", "never")
	t.Setenv("LOGPIPE_LAG", "4")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Augment.AppendHostname {
		t.Fatalf("AppendHostname = true, want env override false")
	}
	if !cfg.Augment.ExcludeOrphans {
		t.Fatalf("ExcludeOrphans = false, want env override true")
	}
	if cfg.Pretty.UseColors != "never" {
		t.Fatalf("UseColors = %q, want never", cfg.Pretty.UseColors)
	}
	if cfg.Pretty.Head != 1 || cfg.Pretty.Lag != 4 {
		t.Fatalf("Head/Lag = %d/%d, want 1/4", cfg.Pretty.Head, cfg.Pretty.Lag)
	}
}

func TestLoad_InvalidEnvironmentValueFails(t *testing.T) {
	t.Setenv("LOGPIPE_HEAD", "many")

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatalf("Load returned nil error, want environment error")
	}
	if !strings.Contains(err.Error(), "read environment") {
		t.Fatalf("Load error = %q, want it to mention read environment", err.Error())
	}
}

func TestLoad_NegativeWindowFails(t *testing.T) {
	path := writeConfig(t, "[pretty]\nlag = -1\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("Load returned nil error, want validation error")
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := writeConfig(t, `log_level = [`)
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kojioka/kojioka-go/pkg/config"
	kerrors "github.com/kojioka/kojioka-go/pkg/errors"
)

func TestConfigShow(t *testing.T) {
	isolate(t)
	t.Setenv("KOJIOKA_RETRY_ATTEMPTS", "4")

	out, _, err := execute(t, "--base-url", "http://localhost:9000", "config", "show")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, want := range []string{
		`base-url = "http://localhost:9000"`,
		"attempts = 4",
		`registry = "goproxy"`,
		"enabled = false",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}
}

func TestConfigInit(t *testing.T) {
	isolate(t)

	home := os.Getenv("XDG_CONFIG_HOME")
	out, _, err := execute(t, "config", "init")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	want := filepath.Join(home, "kojioka", "config.toml")
	if !strings.Contains(out, want) {
		t.Errorf("output = %q, want path %q", out, want)
	}
	if _, err := config.Load(config.WithFile(want)); err != nil {
		t.Fatalf("written file does not load: %v", err)
	}

	if _, _, err := execute(t, "config", "init"); ExitCode(err) != ExitUsage {
		t.Errorf("second init should refuse to overwrite, got %v", err)
	}
	if _, _, err := execute(t, "config", "init", "--force"); err != nil {
		t.Errorf("init --force: %v", err)
	}
}

func TestConfigInitExplicitPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "kojioka.toml")

	if _, _, err := execute(t, "--config", path, "config", "init"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	cfg, err := config.Load(config.WithFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.File != path {
		t.Errorf("File = %q, want %q", cfg.File, path)
	}
}

func TestMissingExplicitConfig(t *testing.T) {
	isolate(t)
	missing := filepath.Join(t.TempDir(), "missing.toml")

	_, _, err := execute(t, "--config", missing, "status")
	if !kerrors.Is(err, kerrors.ErrCodeInvalidConfig) {
		t.Fatalf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestConfigPath(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "config", "path")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "kojioka", "config.toml")) {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "using defaults") {
		t.Errorf("output = %q, want defaults note", out)
	}
}

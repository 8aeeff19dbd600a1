package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"dxspv/internal/trace"
)

func testCommand(configPath string) *cobra.Command {
	root := &cobra.Command{Use: "dxspv"}
	root.PersistentFlags().String("config", configPath, "")
	root.PersistentFlags().String("log-level", "", "")
	return root
}

func TestLoadConfigExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	body := `
log_level = "info"
dump_path = "/tmp/dumps"
entry_point = "cs_main"
jobs = 4
cache = true
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := loadConfig(testCommand(path))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.LogLevel != "info" || cfg.DumpPath != "/tmp/dumps" ||
		cfg.EntryPoint != "cs_main" || cfg.Jobs != 4 || !cfg.Cache {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadConfigMissingExplicitFileFails(t *testing.T) {
	if _, err := loadConfig(testCommand(filepath.Join(t.TempDir(), "absent.toml"))); err == nil {
		t.Fatal("expected an error for an explicitly named missing config")
	}
}

func TestLoadConfigMissingDefaultIsFine(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
	cfg, err := loadConfig(testCommand(""))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg != (fileConfig{}) {
		t.Fatalf("cfg = %+v, want zero value", cfg)
	}
}

func TestRunOptionsFlagOverridesConfigLevel(t *testing.T) {
	cmd := testCommand("")
	if err := cmd.PersistentFlags().Set("log-level", "warn"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	opts, err := runOptions(cmd, fileConfig{LogLevel: "trace"})
	if err != nil {
		t.Fatalf("runOptions: %v", err)
	}
	if opts.Tracer == nil || opts.Tracer.Level() != trace.LevelWarn {
		t.Fatalf("tracer level = %v, want warn", opts.Tracer)
	}
}

func TestRunOptionsRejectsBadLevel(t *testing.T) {
	if _, err := runOptions(testCommand(""), fileConfig{LogLevel: "loud"}); err == nil {
		t.Fatal("expected an error for an unknown trace level")
	}
}

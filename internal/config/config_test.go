package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAndResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"texture": "shirt.png",
		"segments": 16,
		"handle_weight": 500
	}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Resolve(Flags{})

	if cfg.Texture != "shirt.png" {
		t.Errorf("texture = %q", cfg.Texture)
	}
	if cfg.Segments != 16 {
		t.Errorf("segments = %d, want 16 (from file)", cfg.Segments)
	}
	if cfg.HandleWeight != 500 {
		t.Errorf("handle weight = %v, want 500 (from file)", cfg.HandleWeight)
	}
	if cfg.Supersample != 2 {
		t.Errorf("supersample = %d, want default 2", cfg.Supersample)
	}
	if cfg.Workers <= 0 {
		t.Errorf("workers = %d, want > 0", cfg.Workers)
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	cfg := Config{Segments: 16, HandleWeight: 500}
	cfg.Resolve(Flags{Segments: 32, Weight: 2000, OutputDir: "out"})

	if cfg.Segments != 32 {
		t.Errorf("segments = %d, want flag override 32", cfg.Segments)
	}
	if cfg.HandleWeight != 2000 {
		t.Errorf("handle weight = %v, want flag override 2000", cfg.HandleWeight)
	}
	if cfg.OutputDir != "out" {
		t.Errorf("output dir = %q, want \"out\"", cfg.OutputDir)
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load("does-not-exist.json"); err == nil {
		t.Fatal("missing config accepted")
	}
}

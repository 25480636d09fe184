package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "isomesh.toml")
	content := `
isovalue = 0.5
resolution = 128
workers = 4
output = "shell.stl"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Isovalue != 0.5 {
		t.Errorf("Isovalue = %g, want 0.5", cfg.Isovalue)
	}
	if cfg.Resolution != 128 {
		t.Errorf("Resolution = %d, want 128", cfg.Resolution)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.Output != "shell.stl" {
		t.Errorf("Output = %q, want shell.stl", cfg.Output)
	}
	if cfg.Serial {
		t.Error("Serial should default to false")
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.toml")
	if err := os.WriteFile(path, []byte(`isovalue = 1.5`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.Resolution != def.Resolution {
		t.Errorf("Resolution = %d, want default %d", cfg.Resolution, def.Resolution)
	}
	if cfg.Output != def.Output {
		t.Errorf("Output = %q, want default %q", cfg.Output, def.Output)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})
	t.Run("bad toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		os.WriteFile(path, []byte("isovalue = = 1"), 0o644)
		if _, err := Load(path); err == nil {
			t.Error("expected parse error")
		}
	})
	t.Run("bad resolution", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "res.toml")
		os.WriteFile(path, []byte("resolution = 1"), 0o644)
		if _, err := Load(path); err == nil {
			t.Error("expected resolution error")
		}
	})
}

func TestSaveRoundtrip(t *testing.T) {
	cfg := Config{
		Isovalue:   -0.25,
		Resolution: 96,
		Workers:    2,
		Serial:     true,
		Output:     "a.stl",
	}
	path := filepath.Join(t.TempDir(), "rt.toml")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", got, cfg)
	}
}

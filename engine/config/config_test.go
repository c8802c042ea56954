package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipeline.toml")
	content := `
hdr = false
enable_shading_scale = true
shading_scale = 0.5

[shadow]
enabled = true
shadow_map_size = 2048
max_spot_shadow_maps = 4

[bloom]
enabled = true
iterations = 5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if s.HDR {
		t.Errorf("expected hdr override to false")
	}
	if !s.EnableShadingScale || s.ShadingScale != 0.5 {
		t.Errorf("shading scale = (%v, %f), want (true, 0.5)", s.EnableShadingScale, s.ShadingScale)
	}
	if s.Shadow.ShadowMapSize != 2048 {
		t.Errorf("shadow map size = %d, want 2048", s.Shadow.ShadowMapSize)
	}
	if s.Shadow.MaxSpotShadowMaps != 4 {
		t.Errorf("max spot shadow maps = %d, want 4", s.Shadow.MaxSpotShadowMaps)
	}
	if s.Bloom.Iterations != 5 {
		t.Errorf("bloom iterations = %d, want 5", s.Bloom.Iterations)
	}
	// Untouched keys keep their defaults.
	if !s.EnablePostProcess {
		t.Errorf("expected enable_post_process default true")
	}
	if s.Shadow.CSMLevel != 4 {
		t.Errorf("csm level = %d, want default 4", s.Shadow.CSMLevel)
	}
}

func TestLoadRejectsZeroShadingScale(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipeline.toml")
	if err := os.WriteFile(path, []byte("shading_scale = 0.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.ShadingScale != 1.0 {
		t.Errorf("shading scale = %f, want fallback 1.0", s.ShadingScale)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

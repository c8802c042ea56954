package pipeline

import (
	"testing"

	"github.com/spaghettifunk/aurora/engine/config"
	"github.com/spaghettifunk/aurora/engine/scene"
)

func TestRefreshConfigsFloatOutput(t *testing.T) {
	tests := []struct {
		name       string
		supports   bool
		hdr        bool
		wantOutput bool
	}{
		{"supported and requested", true, true, true},
		{"unsupported device", false, true, false},
		{"not requested", true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps := desktopCaps()
			caps.SupportsFloatOutput = tt.supports
			s := config.Default()
			s.HDR = tt.hdr
			p, _, _ := newTestPipeline(t, caps, s)
			if p.configs.UseFloatOutput != tt.wantOutput {
				t.Errorf("UseFloatOutput = %v, want %v", p.configs.UseFloatOutput, tt.wantOutput)
			}
		})
	}
}

func TestRefreshConfigsShadowDefaults(t *testing.T) {
	s := config.Default()
	s.Shadow.ShadowMapSize = 0
	p, _, _ := newTestPipeline(t, desktopCaps(), s)
	if p.configs.ShadowMapSize != 1024 {
		t.Errorf("ShadowMapSize = %d, want fallback 1024", p.configs.ShadowMapSize)
	}
}

func TestCameraConfigsFailSafe(t *testing.T) {
	p, _, camera := newTestPipeline(t, desktopCaps(), nil)
	camera.Settings = nil

	p.updateCameraConfigs(camera)
	cc := p.cameraConfigs
	if cc.EnableShadow || cc.EnablePostProcess || cc.EnableProfiler || cc.EnableShadingScale {
		t.Errorf("fail-safe policy should disable every feature, got %+v", cc)
	}
	if cc.ShadingScale != 1.0 {
		t.Errorf("fail-safe ShadingScale = %f, want 1.0", cc.ShadingScale)
	}
}

func TestCameraConfigsPostProcessGating(t *testing.T) {
	s := config.Default()
	p, _, camera := newTestPipeline(t, desktopCaps(), s)

	camera.Usage = scene.CAMERA_USAGE_GAME
	p.updateCameraConfigs(camera)
	if !p.cameraConfigs.EnablePostProcess {
		t.Error("main game view with HDR and post enabled should post-process")
	}

	s.EnablePostProcess = false
	p.updateCameraConfigs(camera)
	if p.cameraConfigs.EnablePostProcess {
		t.Error("post-process disabled in settings must gate the policy off")
	}
}

func TestCameraConfigsProfilerMainViewOnly(t *testing.T) {
	s := config.Default()
	s.Profiler = true
	p, _, camera := newTestPipeline(t, desktopCaps(), s)

	camera.Usage = scene.CAMERA_USAGE_GAME
	p.updateCameraConfigs(camera)
	if !p.cameraConfigs.EnableProfiler {
		t.Error("profiler should be enabled for the main game view")
	}

	camera.Usage = scene.CAMERA_USAGE_PREVIEW
	p.updateCameraConfigs(camera)
	if p.cameraConfigs.EnableProfiler {
		t.Error("profiler must stay off for non-game views")
	}
}

func TestCameraConfigsEditorOverride(t *testing.T) {
	p, _, camera := newTestPipeline(t, desktopCaps(), config.Default())

	override := config.Default()
	override.EnableShadingScale = true
	override.ShadingScale = 0.5
	editorCam := &scene.Camera{Usage: scene.CAMERA_USAGE_GAME}
	p.SetEditorOverride(override, editorCam)

	camera.Usage = scene.CAMERA_USAGE_SCENE_VIEW
	p.updateCameraConfigs(camera)
	if p.cameraConfigs.Settings != override {
		t.Fatal("editor view should resolve the override settings")
	}
	if p.cameraConfigs.ShadingScale != 0.5 {
		t.Errorf("ShadingScale = %f, want 0.5 from override", p.cameraConfigs.ShadingScale)
	}

	// Non-editor cameras are unaffected by the override.
	camera.Usage = scene.CAMERA_USAGE_GAME
	p.updateCameraConfigs(camera)
	if p.cameraConfigs.Settings == override {
		t.Error("game view must not resolve the editor override")
	}
}

func TestCameraConfigsShadingScaleFallback(t *testing.T) {
	s := config.Default()
	s.EnableShadingScale = true
	s.ShadingScale = 0
	p, _, camera := newTestPipeline(t, desktopCaps(), s)

	p.updateCameraConfigs(camera)
	if p.cameraConfigs.ShadingScale != 1.0 {
		t.Errorf("non-positive scale must fall back to 1.0, got %f", p.cameraConfigs.ShadingScale)
	}
}

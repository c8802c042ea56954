package pipeline

import (
	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/aurora/engine/config"
	"github.com/spaghettifunk/aurora/engine/scene"
)

/**
 * @brief The capability snapshot the composition branches on. Written only
 * by refreshConfigs (resize time, plus a defensive refresh before first
 * use); read-only for the rest of the session.
 */
type PipelineConfigs struct {
	IsMobile             bool
	UseFloatOutput       bool
	SupportsFloatTexture bool
	SupportsDepthSample  bool
	ShadowFormat         vk.Format
	ScreenSpaceSignY     float32
	ShadowMapSize        uint32
	MaxSpotShadowMaps    uint32
}

/**
 * @brief Per-camera policy, recomputed every frame before pass composition.
 * Downstream builders read it for the whole of that camera's plan; callers
 * must not interleave two cameras against a partially updated record.
 */
type CameraConfigs struct {
	EnableShadow       bool
	EnablePostProcess  bool
	EnableProfiler     bool
	EnableShadingScale bool
	ShadingScale       float32

	/** @brief The resolved settings source, nil when none resolves. */
	Settings *config.PipelineSettings
}

func (p *ForwardPipeline) refreshConfigs() {
	caps := p.caps
	s := p.settings

	p.configs.IsMobile = caps.Mobile
	p.configs.UseFloatOutput = caps.SupportsFloatOutput && s != nil && s.HDR
	p.configs.SupportsFloatTexture = caps.SupportsFloatTexture
	p.configs.SupportsDepthSample = caps.SupportsDepthSample
	p.configs.ShadowFormat = caps.ShadowFormat
	p.configs.ScreenSpaceSignY = caps.ScreenSpaceSignY

	p.configs.ShadowMapSize = 1024
	p.configs.MaxSpotShadowMaps = 1
	if s != nil {
		if s.Shadow.ShadowMapSize > 0 {
			p.configs.ShadowMapSize = s.Shadow.ShadowMapSize
		}
		p.configs.MaxSpotShadowMaps = s.Shadow.MaxSpotShadowMaps
	}

	p.configsInitialized = true
}

// resolveSettings picks the settings source and policy camera for a
// renderable camera: the camera's own override first, the editor override
// for editor-hosted views, the pipeline defaults otherwise. Resource
// declaration and pass composition must resolve through this same path or
// passes end up referring to names the planner never declared.
func (p *ForwardPipeline) resolveSettings(camera *scene.Camera) (*config.PipelineSettings, *scene.Camera) {
	settings := camera.Settings
	policyCamera := camera
	if camera.Usage.IsEditorView() && p.editorSettings != nil {
		settings = p.editorSettings
		if p.editorCamera != nil {
			policyCamera = p.editorCamera
		}
	}
	if settings == nil {
		settings = p.settings
	}
	return settings, policyCamera
}

// resolvedScale returns the effective shading scale for a settings source.
func resolvedScale(s *config.PipelineSettings) float32 {
	if s == nil || !s.EnableShadingScale || s.ShadingScale <= 0 {
		return 1.0
	}
	return s.ShadingScale
}

// updateCameraConfigs derives the per-camera policy. Editor-hosted views
// resolve against the editor override settings and camera; a camera without
// any settings source falls back to the cheapest path.
func (p *ForwardPipeline) updateCameraConfigs(camera *scene.Camera) {
	cc := &p.cameraConfigs

	settings, policyCamera := p.resolveSettings(camera)

	if settings == nil {
		// Fail safe: no settings source at all, force the cheapest path.
		cc.Settings = nil
		cc.EnableShadow = false
		cc.EnablePostProcess = false
		cc.EnableProfiler = false
		cc.EnableShadingScale = false
		cc.ShadingScale = 1.0
		return
	}

	cc.Settings = settings
	cc.EnableShadow = settings.Shadow.Enabled

	usage := policyCamera.Usage
	cc.EnablePostProcess = p.configs.UseFloatOutput &&
		settings.EnablePostProcess &&
		(usage.IsMainGameView() || usage.IsEditorView())

	cc.EnableProfiler = settings.Profiler && usage.IsMainGameView()

	cc.EnableShadingScale = settings.EnableShadingScale
	cc.ShadingScale = resolvedScale(settings)
}

// SetEditorOverride installs the editor-provided settings and override
// camera used by scene/editor/preview views.
func (p *ForwardPipeline) SetEditorOverride(settings *config.PipelineSettings, camera *scene.Camera) {
	p.editorSettings = settings
	p.editorCamera = camera
}

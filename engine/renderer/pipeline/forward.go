package pipeline

import (
	"github.com/spaghettifunk/aurora/engine/assets"
	"github.com/spaghettifunk/aurora/engine/config"
	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/hud"
	"github.com/spaghettifunk/aurora/engine/math"
	"github.com/spaghettifunk/aurora/engine/renderer/graph"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
	"github.com/spaghettifunk/aurora/engine/scene"
)

/**
 * @brief Per-frame pass composer for the forward renderer. Owns no GPU
 * state: it culls lights, derives the per-camera policy and records pass
 * descriptions into the frame graph for the execution engine to consume.
 */
type ForwardPipeline struct {
	graph     *graph.Graph
	materials *assets.MaterialManager
	caps      metadata.DeviceCaps
	settings  *config.PipelineSettings

	configs            PipelineConfigs
	configsInitialized bool
	cameraConfigs      CameraConfigs
	lighting           *ForwardLighting

	editorSettings *config.PipelineSettings
	editorCamera   *scene.Camera

	overlay *hud.ProfilerOverlay

	// scratch reused across frames
	bloomWidths  []uint32
	bloomHeights []uint32
}

func NewForwardPipeline(g *graph.Graph, caps metadata.DeviceCaps, settings *config.PipelineSettings, materials *assets.MaterialManager) (*ForwardPipeline, error) {
	p := &ForwardPipeline{
		graph:     g,
		materials: materials,
		caps:      caps,
		settings:  settings,
	}
	p.lighting = NewForwardLighting(&p.configs)
	p.refreshConfigs()
	return p, nil
}

// ApplySettings swaps the pipeline defaults (after a hot reload). The host
// must follow up with WindowResize so declarations match the new settings.
func (p *ForwardPipeline) ApplySettings(settings *config.PipelineSettings) {
	p.settings = settings
	p.configsInitialized = false
}

// SetProfilerOverlay attaches the HUD overlay drawn by the profiler queue.
func (p *ForwardPipeline) SetProfilerOverlay(overlay *hud.ProfilerOverlay) {
	p.overlay = overlay
}

func (p *ForwardPipeline) Lighting() *ForwardLighting { return p.lighting }

/**
 * @brief Setup records the frame's passes for every renderable camera.
 * Until the required post-process materials finish loading nothing is
 * recorded at all, keeping frames where assets are still streaming cheap.
 */
func (p *ForwardPipeline) Setup(cameras []*scene.Camera) {
	if !p.configsInitialized {
		p.refreshConfigs()
	}
	if !p.materials.Ready() {
		core.LogDebug("pipeline materials not ready, skipping frame")
		return
	}

	for _, camera := range cameras {
		if camera == nil || camera.Scene == nil || camera.Window == nil {
			continue
		}
		p.updateCameraConfigs(camera)
		if p.configs.IsMobile {
			p.buildMobileForwardPipeline(camera)
		} else {
			p.buildForwardPipeline(camera)
		}
	}
}

// colorLoadOp maps the camera clear flags onto attachment load semantics.
func colorLoadOp(camera *scene.Camera) metadata.LoadOp {
	if camera.ClearFlags&scene.CLEAR_FLAG_COLOR != 0 {
		return metadata.LOAD_OP_CLEAR
	}
	return metadata.LOAD_OP_LOAD
}

func depthLoadOp(camera *scene.Camera) metadata.LoadOp {
	if camera.ClearFlags&(scene.CLEAR_FLAG_DEPTH|scene.CLEAR_FLAG_STENCIL) != 0 {
		return metadata.LOAD_OP_CLEAR
	}
	return metadata.LOAD_OP_LOAD
}

// addForwardPass opens the main lighting pass with the camera clear state,
// the opaque queues and, when a shadow map was rendered, its binding.
func (p *ForwardPipeline) addForwardPass(camera *scene.Camera, id, width, height uint32, radiance string, present, shadowed bool) *graph.PassBuilder {
	g := p.graph
	var pass *graph.PassBuilder
	if present {
		pass = g.AddRenderWindow("ForwardPass", width, height, "default")
	} else {
		pass = g.AddRenderPass("ForwardPass", width, height, "default")
	}

	pass.AddRenderTarget(radiance, colorLoadOp(camera), metadata.STORE_OP_STORE, camera.ClearColor)
	pass.AddDepthStencil(depthStencilName(id), depthLoadOp(camera), metadata.STORE_OP_STORE, camera.ClearDepth, camera.ClearStencil)
	if shadowed {
		pass.AddTexture(shadowMapName(id), slotShadowMap)
	}

	var mainLight scene.Light
	if camera.Scene.MainLight != nil {
		mainLight = camera.Scene.MainLight
	}
	pass.AddQueue(metadata.QUEUE_HINT_OPAQUE, "opaque").
		AddScene(camera, metadata.SCENE_FLAG_OPAQUE|metadata.SCENE_FLAG_MASK, mainLight)

	return pass
}

// addTransparentQueue draws blended scene geometry after all lighting
// queues.
func (p *ForwardPipeline) addTransparentQueue(pass *graph.PassBuilder, camera *scene.Camera) {
	var mainLight scene.Light
	if camera.Scene.MainLight != nil {
		mainLight = camera.Scene.MainLight
	}
	pass.AddQueue(metadata.QUEUE_HINT_BLEND, "transparent").
		AddScene(camera, metadata.SCENE_FLAG_BLEND, mainLight)
}

// addUiPass draws the UI overlay (and the profiler HUD when enabled) on top
// of the final window image at native resolution.
func (p *ForwardPipeline) addUiPass(camera *scene.Camera, id, width, height uint32) {
	pass := p.graph.AddRenderWindow("UiPass", width, height, "ui")
	pass.AddRenderTarget(colorName(id), metadata.LOAD_OP_LOAD, metadata.STORE_OP_STORE, math.Vec4{})

	flags := metadata.SCENE_FLAG_UI
	if p.cameraConfigs.EnableProfiler {
		flags |= metadata.SCENE_FLAG_PROFILER
		if p.overlay != nil {
			p.overlay.Refresh()
		}
	}
	pass.AddQueue(metadata.QUEUE_HINT_BLEND, "ui").AddScene(camera, flags, nil)
}

/**
 * @brief Desktop composition: cull, CSM, forward lighting, chained per-spot
 * shadow and lighting passes, the branching post-process chain, then UI.
 */
func (p *ForwardPipeline) buildForwardPipeline(camera *scene.Camera) {
	g := p.graph
	cc := &p.cameraConfigs
	id := camera.Window.ID
	nativeW, nativeH := camera.Window.Width, camera.Window.Height
	workingW := math.ScaledExtent(nativeW, cc.ShadingScale)
	workingH := math.ScaledExtent(nativeH, cc.ShadingScale)
	scaled := workingW != nativeW || workingH != nativeH

	elided := !p.configs.UseFloatOutput && !scaled
	radiance := radianceName(id)
	if elided {
		radiance = colorName(id)
	}

	p.lighting.CullLights(camera.Scene, &camera.Frustum, nil, cc.EnableShadow)

	shadowed := false
	if cc.EnableShadow {
		shadowed = p.addCsmPass(g, camera, id)
	}

	last := p.addForwardPass(camera, id, workingW, workingH, radiance, elided, shadowed)
	last = p.lighting.AddLightPasses(g, camera, id, workingW, workingH, radiance, depthStencilName(id), last)
	p.addTransparentQueue(last, camera)

	s := cc.Settings
	switch {
	case p.configs.UseFloatOutput && cc.EnablePostProcess && s != nil:
		if s.DepthOfField.Enabled && p.configs.SupportsDepthSample {
			p.addDofPasses(g, camera, id, workingW, workingH, radiance)
		}
		if s.Bloom.Enabled {
			p.addBloomPasses(g, id, workingW, workingH, radiance)
		}
		if s.FXAA.Enabled {
			p.addTonemapPass(g, camera, workingW, workingH, false, ldrColorName(id), radiance)
			if scaled {
				p.addFxaaPass(g, workingW, workingH, false, aaColorName(id), ldrColorName(id))
				p.addScreenPass(g, "CopyPass", nativeW, nativeH, true, colorName(id), aaColorName(id), p.materials.Get("tonemap"), techCopy)
			} else {
				p.addFxaaPass(g, nativeW, nativeH, true, colorName(id), ldrColorName(id))
			}
		} else {
			p.addTonemapPass(g, camera, nativeW, nativeH, true, colorName(id), radiance)
		}
	case !elided:
		// Float output without post-processing, or an LDR image rendered at
		// a scaled resolution: still needs resolving to the window target.
		p.addTonemapPass(g, camera, nativeW, nativeH, true, colorName(id), radiance)
	}

	p.addUiPass(camera, id, nativeW, nativeH)
}

/**
 * @brief Mobile composition: one shared forward pass carries every light
 * queue, so all spot shadow maps render up front and bind through the one
 * shared slot. Distance-sorted culling caps the set to the nearest casters;
 * within that set the slot holds whichever map was bound last.
 */
func (p *ForwardPipeline) buildMobileForwardPipeline(camera *scene.Camera) {
	g := p.graph
	cc := &p.cameraConfigs
	id := camera.Window.ID
	nativeW, nativeH := camera.Window.Width, camera.Window.Height
	workingW := math.ScaledExtent(nativeW, cc.ShadingScale)
	workingH := math.ScaledExtent(nativeH, cc.ShadingScale)
	scaled := workingW != nativeW || workingH != nativeH

	elided := !p.configs.UseFloatOutput && !scaled
	radiance := radianceName(id)
	if elided {
		radiance = colorName(id)
	}

	p.lighting.CullLights(camera.Scene, &camera.Frustum, &camera.Position, cc.EnableShadow)

	shadowed := false
	if cc.EnableShadow {
		shadowed = p.addCsmPass(g, camera, id)
		p.lighting.AddMobileShadowPasses(g, camera, id)
	}

	pass := p.addForwardPass(camera, id, workingW, workingH, radiance, elided, shadowed)
	p.lighting.AddMobileLightQueues(pass, camera, id)
	p.addTransparentQueue(pass, camera)

	if !elided {
		p.addTonemapPass(g, camera, nativeW, nativeH, true, colorName(id), radiance)
	}

	p.addUiPass(camera, id, nativeW, nativeH)
}

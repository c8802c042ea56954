package pipeline

import (
	"github.com/spaghettifunk/aurora/engine/math"
	"github.com/spaghettifunk/aurora/engine/renderer/graph"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
	"github.com/spaghettifunk/aurora/engine/scene"
)

/**
 * @brief Cascade viewports partition the shadow map atlas. One cascade (or
 * fixed-area mode) owns the whole map; otherwise each of up to four cascades
 * takes a 2x2 quadrant. The vertical order follows the screen-space y sign
 * so cascade rows match the shader's sampling convention.
 */
func getCsmMainLightViewport(light *scene.DirectionalLight, level, width, height uint32, signY float32) metadata.Viewport {
	if light.FixedArea || light.CSMLevel <= 1 {
		return metadata.Viewport{Left: 0, Top: 0, Width: width, Height: height}
	}

	halfW := width / 2
	halfH := height / 2
	row := level / 2
	if signY <= 0 {
		row = 1 - row
	}
	return metadata.Viewport{
		Left:   (level % 2) * halfW,
		Top:    row * halfH,
		Width:  halfW,
		Height: halfH,
	}
}

// addCsmPass emits the main-light cascaded shadow pass: one clear of the
// whole map, then one shadow-caster queue per cascade restricted to its
// quadrant. Returns false when the scene has no shadow-enabled main light.
func (p *ForwardPipeline) addCsmPass(g *graph.Graph, camera *scene.Camera, id uint32) bool {
	sc := camera.Scene
	if sc == nil || sc.MainLight == nil {
		return false
	}
	light := sc.MainLight
	if !light.ShadowEnabled || light.Baked {
		return false
	}

	size := p.configs.ShadowMapSize
	pass := g.AddRenderPass("CsmPass", size, size, "shadow-caster")
	pass.AddRenderTarget(shadowMapName(id), metadata.LOAD_OP_CLEAR, metadata.STORE_OP_STORE, math.NewVec4(1, 1, 1, 1))
	pass.AddDepthStencil(shadowDepthName(id), metadata.LOAD_OP_CLEAR, metadata.STORE_OP_DISCARD, 1.0, 0)

	levels := light.CSMLevel
	if light.FixedArea || levels < 1 {
		levels = 1
	}
	for level := uint32(0); level < levels; level++ {
		pass.AddQueue(metadata.QUEUE_HINT_NONE, "shadow-caster").
			UseLightFrustum(light, level).
			SetViewport(getCsmMainLightViewport(light, level, size, size, p.configs.ScreenSpaceSignY)).
			AddScene(camera, metadata.SCENE_FLAG_OPAQUE|metadata.SCENE_FLAG_MASK|metadata.SCENE_FLAG_SHADOW_CASTER, light)
	}
	return true
}

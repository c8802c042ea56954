package pipeline

import (
	"github.com/spaghettifunk/aurora/engine/math"
	"github.com/spaghettifunk/aurora/engine/renderer/graph"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
	"github.com/spaghettifunk/aurora/engine/scene"
)

// addScreenPass opens a full-screen pass with a single cleared color target
// and the given primary input, drawing one quad with the material technique.
func (p *ForwardPipeline) addScreenPass(g *graph.Graph, name string, width, height uint32, present bool, target, input string, material *metadata.Material, technique int) *graph.PassBuilder {
	var pass *graph.PassBuilder
	if present {
		pass = g.AddRenderWindow(name, width, height, "post-process")
	} else {
		pass = g.AddRenderPass(name, width, height, "post-process")
	}
	pass.AddRenderTarget(target, metadata.LOAD_OP_CLEAR, metadata.STORE_OP_STORE, math.Vec4{})
	pass.AddTexture(input, slotScreen)
	pass.AddQueue(metadata.QUEUE_HINT_NONE, "").AddFullscreenQuad(material, technique)
	return pass
}

// addTonemapPass resolves the lighting output into an LDR target. With float
// output the tonemap technique applies exposure; otherwise a plain copy,
// used when a scaled LDR image still needs resolving to the window size.
func (p *ForwardPipeline) addTonemapPass(g *graph.Graph, camera *scene.Camera, width, height uint32, present bool, target, input string) {
	technique := techCopy
	if p.configs.UseFloatOutput {
		technique = techTonemap
	}
	pass := p.addScreenPass(g, "TonemapPass", width, height, present, target, input, p.materials.Get("tonemap"), technique)
	pass.SetVec4("tonemapParams", math.NewVec4(camera.Exposure, 0, 0, 0))
}

/**
 * @brief Depth of field, five sub-passes at half the working resolution:
 * circle-of-confusion from depth, prefilter, bokeh gather, a smoothing
 * filter, then a blended combine back into the lighting target. The combine
 * loads the existing radiance and alpha-blends by CoC, so only the in-focus
 * region survives untouched.
 */
func (p *ForwardPipeline) addDofPasses(g *graph.Graph, camera *scene.Camera, id, width, height uint32, radiance string) {
	s := p.cameraConfigs.Settings
	dof := p.materials.Get("dof")
	params := math.NewVec4(s.DepthOfField.FocusDistance, s.DepthOfField.FocusRange, s.DepthOfField.BokehRadius, 0)

	halfW := math.ScaledExtent(width, 0.5)
	halfH := math.ScaledExtent(height, 0.5)

	coc := p.addScreenPass(g, "DofCocPass", halfW, halfH, false, dofCocName(id), radiance, dof, techDofCoc)
	coc.AddTexture(depthStencilName(id), slotDepth)
	coc.SetVec4("cocParams", params)

	pre := p.addScreenPass(g, "DofPrefilterPass", halfW, halfH, false, dofPrefilterName(id), radiance, dof, techDofPrefilter)
	pre.AddTexture(dofCocName(id), slotSecondary)

	bokeh := p.addScreenPass(g, "DofBokehPass", halfW, halfH, false, dofBokehName(id), dofPrefilterName(id), dof, techDofBokeh)
	bokeh.SetVec4("dofParams", params)

	p.addScreenPass(g, "DofFilterPass", halfW, halfH, false, dofFilterName(id), dofBokehName(id), dof, techDofFilter)

	combine := g.AddRenderPass("DofCombinePass", width, height, "post-process")
	combine.AddRenderTarget(radiance, metadata.LOAD_OP_LOAD, metadata.STORE_OP_STORE, math.Vec4{})
	combine.AddTexture(dofFilterName(id), slotScreen)
	combine.AddTexture(dofCocName(id), slotSecondary)
	combine.SetVec4("dofParams", params)
	combine.AddQueue(metadata.QUEUE_HINT_BLEND, "").AddFullscreenQuad(dof, techDofCombine)
}

/**
 * @brief Dual-filter bloom: a thresholded prefilter into the half-resolution
 * base level, N downsamples, N upsamples back, then an additive combine into
 * the lighting target. 2N+2 passes in total.
 */
func (p *ForwardPipeline) addBloomPasses(g *graph.Graph, id, width, height uint32, radiance string) {
	s := p.cameraConfigs.Settings
	bloom := p.materials.Get("bloom")
	iterations := s.Bloom.Iterations

	p.computeBloomExtents(width, height, iterations)

	// First component reserved for a sample-scale knob the shader no longer
	// reads; keep it zero.
	params := math.NewVec4(0, s.Bloom.Threshold, 0, s.Bloom.Intensity)

	pre := p.addScreenPass(g, "BloomPrefilterPass", p.bloomWidths[0], p.bloomHeights[0], false,
		bloomTexName(id, 0), radiance, bloom, techBloomPrefilter)
	pre.SetVec4("bloomParams", params)

	for i := uint32(1); i <= iterations; i++ {
		pass := p.addScreenPass(g, "BloomDownsamplePass", p.bloomWidths[i], p.bloomHeights[i], false,
			bloomTexName(id, i), bloomTexName(id, i-1), bloom, techBloomDownsample)
		pass.SetVec4("bloomParams", params)
	}

	for i := iterations; i >= 1; i-- {
		pass := p.addScreenPass(g, "BloomUpsamplePass", p.bloomWidths[i-1], p.bloomHeights[i-1], false,
			bloomTexName(id, i-1), bloomTexName(id, i), bloom, techBloomUpsample)
		pass.SetVec4("bloomParams", params)
	}

	combine := g.AddRenderPass("BloomCombinePass", width, height, "post-process")
	combine.AddRenderTarget(radiance, metadata.LOAD_OP_LOAD, metadata.STORE_OP_STORE, math.Vec4{})
	combine.AddTexture(bloomTexName(id, 0), slotScreen)
	combine.SetVec4("bloomParams", params)
	combine.AddQueue(metadata.QUEUE_HINT_BLEND, "").AddFullscreenQuad(bloom, techBloomCombine)
}

// addFxaaPass runs anti-aliasing over an LDR input.
func (p *ForwardPipeline) addFxaaPass(g *graph.Graph, width, height uint32, present bool, target, input string) {
	p.addScreenPass(g, "FxaaPass", width, height, present, target, input, p.materials.Get("fxaa"), techFxaa)
}

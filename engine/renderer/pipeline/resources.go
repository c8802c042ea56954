package pipeline

import (
	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/math"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
	"github.com/spaghettifunk/aurora/engine/scene"
)

/**
 * @brief WindowResize re-derives the capability snapshot and re-declares
 * every per-window resource the camera's resolved settings can require.
 * Declarations are sized here once; frames only record passes against the
 * names. Settings resolve through the same path Setup uses, so camera and
 * editor overrides declare the chains their composition will reference.
 */
func (p *ForwardPipeline) WindowResize(camera *scene.Camera, width, height uint32) {
	p.refreshConfigs()

	window := camera.Window
	window.Width = width
	window.Height = height

	p.declareWindowResources(camera)
	core.LogDebug("pipeline resources declared for window %d at %dx%d", window.ID, width, height)
}

func (p *ForwardPipeline) radianceFormat() vk.Format {
	if p.configs.UseFloatOutput {
		return metadata.FORMAT_HDR_COLOR
	}
	return metadata.FORMAT_LDR_COLOR
}

// shadowMapFormat picks the color-encoded shadow map format. Devices without
// float texture sampling fall back to packed LDR depth.
func (p *ForwardPipeline) shadowMapFormat() vk.Format {
	if p.configs.SupportsFloatTexture {
		return metadata.FORMAT_HDR_COLOR
	}
	return metadata.FORMAT_LDR_COLOR
}

func (p *ForwardPipeline) declareColor(name string, width, height uint32, format vk.Format, present bool) {
	p.graph.DeclareResource(metadata.ResourceDesc{
		Name:    name,
		Type:    metadata.RESOURCE_TYPE_COLOR_TARGET,
		Width:   width,
		Height:  height,
		Format:  format,
		Present: present,
	})
}

func (p *ForwardPipeline) declareDepth(name string, width, height uint32, format vk.Format) {
	p.graph.DeclareResource(metadata.ResourceDesc{
		Name:   name,
		Type:   metadata.RESOURCE_TYPE_DEPTH_STENCIL_TARGET,
		Width:  width,
		Height: height,
		Format: format,
	})
}

func (p *ForwardPipeline) declareShadowMap(name string, size uint32) {
	p.graph.DeclareResource(metadata.ResourceDesc{
		Name:   name,
		Type:   metadata.RESOURCE_TYPE_SHADOW_MAP,
		Width:  size,
		Height: size,
		Format: p.shadowMapFormat(),
	})
}

// declareWindowResources declares the full resource set the camera's
// resolved settings can reach for its window. Declaring a resource no pass
// uses in a given frame is fine; failing to declare one a pass reads is a
// Validate error.
func (p *ForwardPipeline) declareWindowResources(camera *scene.Camera) {
	window := camera.Window
	id := window.ID
	s, _ := p.resolveSettings(camera)

	scale := resolvedScale(s)
	working := math.ScaledExtent(window.Width, scale)
	workingH := math.ScaledExtent(window.Height, scale)
	scaled := working != window.Width || workingH != window.Height

	p.declareColor(colorName(id), window.Width, window.Height, metadata.FORMAT_LDR_COLOR, true)
	p.declareDepth(depthStencilName(id), working, workingH, metadata.FORMAT_DEPTH_STENCIL)

	if p.configs.UseFloatOutput || scaled {
		p.declareColor(radianceName(id), working, workingH, p.radianceFormat(), false)
	}

	if s == nil {
		return
	}

	if s.Shadow.Enabled {
		size := p.configs.ShadowMapSize
		p.declareShadowMap(shadowMapName(id), size)
		p.declareDepth(shadowDepthName(id), size, size, p.configs.ShadowFormat)

		if p.configs.IsMobile {
			for i := uint32(0); i < p.configs.MaxSpotShadowMaps; i++ {
				p.declareShadowMap(spotShadowMapName(id, i), size)
			}
		}
	}

	if !p.configs.UseFloatOutput || !s.EnablePostProcess {
		return
	}

	dofEnabled := s.DepthOfField.Enabled && p.configs.SupportsDepthSample

	if s.FXAA.Enabled || dofEnabled {
		p.declareColor(ldrColorName(id), working, workingH, metadata.FORMAT_LDR_COLOR, false)
	}
	if s.FXAA.Enabled && scaled {
		p.declareColor(aaColorName(id), working, workingH, metadata.FORMAT_LDR_COLOR, false)
	}

	if dofEnabled {
		halfW := math.ScaledExtent(working, 0.5)
		halfH := math.ScaledExtent(workingH, 0.5)
		p.declareColor(dofCocName(id), halfW, halfH, p.radianceFormat(), false)
		p.declareColor(dofPrefilterName(id), halfW, halfH, p.radianceFormat(), false)
		p.declareColor(dofBokehName(id), halfW, halfH, p.radianceFormat(), false)
		p.declareColor(dofFilterName(id), halfW, halfH, p.radianceFormat(), false)
	}

	if s.Bloom.Enabled {
		p.computeBloomExtents(working, workingH, s.Bloom.Iterations)
		for i := range p.bloomWidths {
			p.declareColor(bloomTexName(id, uint32(i)), p.bloomWidths[i], p.bloomHeights[i], p.radianceFormat(), false)
		}
	}
}

// computeBloomExtents fills the scratch mip extents for the bloom chain:
// level 0 at half the working resolution, each further level halved again,
// never below one texel. Levels = iterations + 1.
func (p *ForwardPipeline) computeBloomExtents(width, height uint32, iterations uint32) {
	levels := int(iterations) + 1
	p.bloomWidths = p.bloomWidths[:0]
	p.bloomHeights = p.bloomHeights[:0]

	w := math.ScaledExtent(width, 0.5)
	h := math.ScaledExtent(height, 0.5)
	for i := 0; i < levels; i++ {
		p.bloomWidths = append(p.bloomWidths, w)
		p.bloomHeights = append(p.bloomHeights, h)
		w = math.ScaledExtent(w, 0.5)
		h = math.ScaledExtent(h, 0.5)
	}
}

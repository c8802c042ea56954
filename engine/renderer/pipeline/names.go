package pipeline

import "fmt"

// Resource names are string keys scoped by the window id. The resource
// planner declares them; pass builders agree on them by convention. The
// graph validator turns that convention into a checked invariant.

func colorName(id uint32) string        { return fmt.Sprintf("Color%d", id) }
func radianceName(id uint32) string     { return fmt.Sprintf("Radiance%d", id) }
func depthStencilName(id uint32) string { return fmt.Sprintf("DepthStencil%d", id) }
func shadowMapName(id uint32) string    { return fmt.Sprintf("ShadowMap%d", id) }
func shadowDepthName(id uint32) string  { return fmt.Sprintf("ShadowDepth%d", id) }
func ldrColorName(id uint32) string     { return fmt.Sprintf("LdrColor%d", id) }
func aaColorName(id uint32) string      { return fmt.Sprintf("AaColor%d", id) }
func dofCocName(id uint32) string       { return fmt.Sprintf("DofCoc%d", id) }
func dofPrefilterName(id uint32) string { return fmt.Sprintf("DofPrefilter%d", id) }
func dofBokehName(id uint32) string     { return fmt.Sprintf("DofBokeh%d", id) }
func dofFilterName(id uint32) string    { return fmt.Sprintf("DofFilter%d", id) }

func spotShadowMapName(id uint32, slot uint32) string {
	return fmt.Sprintf("SpotShadowMap%d_%d", id, slot)
}

func bloomTexName(id uint32, level uint32) string {
	return fmt.Sprintf("BloomTex%d_%d", id, level)
}

// Texture binding slots shared with the shader layouts.
const (
	slotScreen     uint32 = 0 // primary full-screen input
	slotSecondary  uint32 = 1 // secondary full-screen input (e.g. CoC)
	slotDepth      uint32 = 2
	slotShadowMap  uint32 = 3 // main-light shadow map
	slotSpotShadow uint32 = 4 // shared spot shadow slot (one live bind at a time)
)

// Technique pass indices within the shared post-process materials.
const (
	techTonemap = 0
	techCopy    = 1

	techDofCoc       = 0
	techDofPrefilter = 1
	techDofBokeh     = 2
	techDofFilter    = 3
	techDofCombine   = 4

	techBloomPrefilter  = 0
	techBloomDownsample = 1
	techBloomUpsample   = 2
	techBloomCombine    = 3

	techFxaa = 0
)

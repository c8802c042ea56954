package pipeline

import (
	"testing"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/aurora/engine/assets"
	"github.com/spaghettifunk/aurora/engine/config"
	"github.com/spaghettifunk/aurora/engine/math"
	"github.com/spaghettifunk/aurora/engine/renderer/graph"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
	"github.com/spaghettifunk/aurora/engine/scene"
)

func desktopCaps() metadata.DeviceCaps {
	return metadata.DeviceCaps{
		Mobile:               false,
		SupportsFloatOutput:  true,
		SupportsFloatTexture: true,
		SupportsDepthSample:  true,
		ShadowFormat:         vk.FormatD32Sfloat,
		ScreenSpaceSignY:     1.0,
	}
}

func mobileCaps() metadata.DeviceCaps {
	return metadata.DeviceCaps{
		Mobile:               true,
		SupportsFloatOutput:  false,
		SupportsFloatTexture: true,
		SupportsDepthSample:  false,
		ShadowFormat:         vk.FormatD16Unorm,
		ScreenSpaceSignY:     -1.0,
	}
}

func readyMaterials(t *testing.T) *assets.MaterialManager {
	t.Helper()
	mm, err := assets.NewMaterialManager()
	if err != nil {
		t.Fatalf("material manager: %s", err)
	}
	mm.Register(metadata.NewMaterial("m-tonemap", "tonemap", 2))
	mm.Register(metadata.NewMaterial("m-dof", "dof", 5))
	mm.Register(metadata.NewMaterial("m-bloom", "bloom", 4))
	mm.Register(metadata.NewMaterial("m-fxaa", "fxaa", 1))
	return mm
}

// wideFrustum encloses everything within 100 units of the origin.
func wideFrustum() math.Frustum {
	return math.NewFrustumFromAABB(math.AABB{
		Min: math.Vec3{X: -100, Y: -100, Z: -100},
		Max: math.Vec3{X: 100, Y: 100, Z: 100},
	})
}

func testCamera(window *scene.RenderWindow, sc *scene.RenderScene) *scene.Camera {
	return &scene.Camera{
		Name:       "main",
		Usage:      scene.CAMERA_USAGE_GAME,
		ClearFlags: scene.CLEAR_FLAG_COLOR | scene.CLEAR_FLAG_DEPTH,
		ClearColor: math.NewVec4(0, 0, 0, 1),
		ClearDepth: 1.0,
		Frustum:    wideFrustum(),
		Exposure:   1.0,
		Window:     window,
		Scene:      sc,
	}
}

// newTestPipeline wires a pipeline against an in-memory graph, a registered
// material set and a single 1280x720 window with an empty scene.
func newTestPipeline(t *testing.T, caps metadata.DeviceCaps, settings *config.PipelineSettings) (*ForwardPipeline, *graph.Graph, *scene.Camera) {
	t.Helper()
	g := graph.New()
	p, err := NewForwardPipeline(g, caps, settings, readyMaterials(t))
	if err != nil {
		t.Fatalf("pipeline: %s", err)
	}
	window := scene.NewRenderWindow(1280, 720)
	t.Cleanup(window.Destroy)
	camera := testCamera(window, &scene.RenderScene{})
	p.WindowResize(camera, 1280, 720)
	return p, g, camera
}

// composeFrame runs one Setup over the single camera and validates the graph.
func composeFrame(t *testing.T, p *ForwardPipeline, g *graph.Graph, camera *scene.Camera) {
	t.Helper()
	g.Reset()
	p.Setup([]*scene.Camera{camera})
	if err := g.Validate(); err != nil {
		t.Fatalf("graph validation: %s", err)
	}
}

func passNames(g *graph.Graph) []string {
	names := make([]string, 0, len(g.Passes))
	for _, pass := range g.Passes {
		names = append(names, pass.Name)
	}
	return names
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

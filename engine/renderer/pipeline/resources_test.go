package pipeline

import (
	"fmt"
	"testing"

	"github.com/spaghettifunk/aurora/engine/config"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
	"github.com/spaghettifunk/aurora/engine/scene"
)

func TestRadianceElision(t *testing.T) {
	s := config.Default()
	s.HDR = false
	p, g, camera := newTestPipeline(t, desktopCaps(), s)
	id := camera.Window.ID

	if _, ok := g.Resource(radianceName(id)); ok {
		t.Error("LDR at native resolution must not declare a Radiance intermediate")
	}
	if _, ok := g.Resource(colorName(id)); !ok {
		t.Fatal("window color target missing")
	}

	// Scaling forces the intermediate back even in LDR.
	s.EnableShadingScale = true
	s.ShadingScale = 0.5
	p.ApplySettings(s)
	p.WindowResize(camera, 1280, 720)
	if _, ok := g.Resource(radianceName(id)); !ok {
		t.Error("scaled LDR rendering needs the Radiance intermediate")
	}
}

func TestRadianceFormatTracksFloatOutput(t *testing.T) {
	_, g, camera := newTestPipeline(t, desktopCaps(), config.Default())
	desc, ok := g.Resource(radianceName(camera.Window.ID))
	if !ok {
		t.Fatal("HDR rendering must declare the Radiance intermediate")
	}
	if desc.Format != metadata.FORMAT_HDR_COLOR {
		t.Errorf("radiance format = %v, want HDR", desc.Format)
	}
}

func TestShadingScaleShrinksWorkingTargets(t *testing.T) {
	s := config.Default()
	s.EnableShadingScale = true
	s.ShadingScale = 0.5
	_, g, camera := newTestPipeline(t, desktopCaps(), s)
	id := camera.Window.ID

	color, _ := g.Resource(colorName(id))
	if color.Width != 1280 || color.Height != 720 {
		t.Errorf("window target must stay native, got %dx%d", color.Width, color.Height)
	}
	radiance, _ := g.Resource(radianceName(id))
	if radiance.Width != 640 || radiance.Height != 360 {
		t.Errorf("radiance = %dx%d, want 640x360", radiance.Width, radiance.Height)
	}
	depth, _ := g.Resource(depthStencilName(id))
	if depth.Width != 640 || depth.Height != 360 {
		t.Errorf("depth = %dx%d, want 640x360", depth.Width, depth.Height)
	}
}

func TestBloomExtentsClampToOneTexel(t *testing.T) {
	p, _, _ := newTestPipeline(t, desktopCaps(), config.Default())
	p.computeBloomExtents(4, 4, 6)
	for i, w := range p.bloomWidths {
		if w < 1 || p.bloomHeights[i] < 1 {
			t.Fatalf("bloom level %d collapsed to zero texels", i)
		}
	}
	if last := p.bloomWidths[len(p.bloomWidths)-1]; last != 1 {
		t.Errorf("deep bloom chain should bottom out at one texel, got %d", last)
	}
}

func TestDeclarationsFollowCameraOverride(t *testing.T) {
	s := config.Default()
	s.Bloom.Enabled = false
	p, g, camera := newTestPipeline(t, desktopCaps(), s)
	id := camera.Window.ID

	if _, ok := g.Resource(bloomTexName(id, 0)); ok {
		t.Fatal("bloom disabled in the defaults must not declare the chain")
	}

	// The camera brings its own settings; declarations must follow them.
	override := config.Default()
	override.Bloom.Enabled = true
	camera.Settings = override
	p.WindowResize(camera, 1280, 720)

	if _, ok := g.Resource(bloomTexName(id, 0)); !ok {
		t.Fatal("camera override enables bloom, its chain must be declared")
	}

	composeFrame(t, p, g, camera)
	found := false
	for _, pass := range g.Passes {
		if pass.Name == "BloomPrefilterPass" {
			found = true
		}
	}
	if !found {
		t.Error("composition should honor the same override the planner declared for")
	}
}

func TestDeclarationsFollowEditorOverride(t *testing.T) {
	p, g, camera := newTestPipeline(t, desktopCaps(), config.Default())
	id := camera.Window.ID

	override := config.Default()
	override.EnableShadingScale = true
	override.ShadingScale = 0.5
	p.SetEditorOverride(override, nil)
	camera.Usage = scene.CAMERA_USAGE_SCENE_VIEW
	p.WindowResize(camera, 1280, 720)

	radiance, ok := g.Resource(radianceName(id))
	if !ok {
		t.Fatal("radiance intermediate missing")
	}
	if radiance.Width != 640 || radiance.Height != 360 {
		t.Errorf("radiance = %dx%d, want the editor override's 640x360", radiance.Width, radiance.Height)
	}
	composeFrame(t, p, g, camera)
}

func TestDofDeclaresLdrIntermediate(t *testing.T) {
	s := config.Default()
	s.FXAA.Enabled = false
	s.DepthOfField.Enabled = true
	_, g, camera := newTestPipeline(t, desktopCaps(), s)

	if _, ok := g.Resource(ldrColorName(camera.Window.ID)); !ok {
		t.Error("depth of field alone should declare the LDR color target")
	}
}

// Every feature combination must compose a graph whose reads are all backed
// by declarations or earlier writes.
func TestDeclarationCompleteness(t *testing.T) {
	bools := []bool{false, true}
	for _, mobile := range bools {
		for _, hdr := range bools {
			for _, dof := range bools {
				for _, bloom := range bools {
					for _, fxaa := range bools {
						for _, scaled := range bools {
							name := fmt.Sprintf("mobile=%v hdr=%v dof=%v bloom=%v fxaa=%v scaled=%v",
								mobile, hdr, dof, bloom, fxaa, scaled)
							t.Run(name, func(t *testing.T) {
								s := config.Default()
								s.HDR = hdr
								s.DepthOfField.Enabled = dof
								s.Bloom.Enabled = bloom
								s.FXAA.Enabled = fxaa
								s.EnableShadingScale = scaled
								s.ShadingScale = 0.75

								caps := desktopCaps()
								if mobile {
									caps = mobileCaps()
								}
								p, g, camera := newTestPipeline(t, caps, s)
								camera.Scene.MainLight = mainLight(4, false)
								camera.Scene.Lights = []scene.Light{
									spotAt(1, 0, 0, true),
									spotAt(2, 0, 0, false),
									&scene.PointLight{LightCommon: scene.LightCommon{Range: 3}},
								}

								composeFrame(t, p, g, camera)
								if len(g.Passes) == 0 {
									t.Fatal("no passes recorded")
								}
								last := g.Passes[len(g.Passes)-1]
								if last.Name != "UiPass" || !last.Present {
									t.Errorf("frame must end with the presentable UI pass, got %s", last.Name)
								}
							})
						}
					}
				}
			}
		}
	}
}

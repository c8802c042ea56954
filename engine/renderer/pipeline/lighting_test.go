package pipeline

import (
	"testing"

	"github.com/spaghettifunk/aurora/engine/config"
	"github.com/spaghettifunk/aurora/engine/math"
	"github.com/spaghettifunk/aurora/engine/renderer/graph"
	"github.com/spaghettifunk/aurora/engine/scene"
)

func spotAt(x, y, z float32, shadow bool) *scene.SpotLight {
	return &scene.SpotLight{
		LightCommon: scene.LightCommon{
			Position:      math.Vec3{X: x, Y: y, Z: z},
			Range:         5,
			ShadowEnabled: shadow,
		},
		Direction: math.Vec3{Z: -1},
		SpotAngle: math.K_PI / 4,
	}
}

func TestCullLightsPartition(t *testing.T) {
	baked := &scene.PointLight{LightCommon: scene.LightCommon{Range: 5, Baked: true}}
	outside := &scene.PointLight{LightCommon: scene.LightCommon{
		Position: math.Vec3{X: 500}, Range: 5,
	}}
	inside := &scene.PointLight{LightCommon: scene.LightCommon{Range: 5}}
	sphere := &scene.SphereLight{LightCommon: scene.LightCommon{Range: 5}, Size: 0.5}
	ranged := &scene.RangedDirectionalLight{
		LightCommon: scene.LightCommon{Range: 10},
		Transform:   math.NewMat4Identity(),
	}
	plainSpot := spotAt(1, 0, 0, false)
	shadowSpot := spotAt(2, 0, 0, true)
	// A directional light placed in the general list must be ignored; the
	// main light goes through the CSM path only.
	stray := &scene.DirectionalLight{LightCommon: scene.LightCommon{ShadowEnabled: true}}

	sc := &scene.RenderScene{Lights: []scene.Light{
		baked, outside, inside, sphere, ranged, plainSpot, shadowSpot, stray,
	}}

	fl := NewForwardLighting(&PipelineConfigs{MaxSpotShadowMaps: 4})
	frustum := wideFrustum()
	fl.CullLights(sc, &frustum, nil, true)

	if got := len(fl.ActiveLights()); got != 4 {
		t.Fatalf("active lights = %d, want 4 (point, sphere, ranged, plain spot)", got)
	}
	if got := len(fl.ShadowCastingSpotLights()); got != 1 {
		t.Fatalf("shadow-casting spots = %d, want 1", got)
	}
	if fl.ShadowCastingSpotLights()[0] != shadowSpot {
		t.Error("the shadow-enabled spot should land in the shadow sequence")
	}
}

func TestCullLightsShadowsDisabled(t *testing.T) {
	sc := &scene.RenderScene{Lights: []scene.Light{spotAt(0, 0, 0, true)}}
	fl := NewForwardLighting(&PipelineConfigs{MaxSpotShadowMaps: 1})
	frustum := wideFrustum()
	fl.CullLights(sc, &frustum, nil, false)

	if len(fl.ShadowCastingSpotLights()) != 0 {
		t.Error("with shadows disabled no spot should be classified as shadow-casting")
	}
	if len(fl.ActiveLights()) != 1 {
		t.Error("the spot should degrade to a plain additive light")
	}
}

func TestCullLightsDistanceSort(t *testing.T) {
	far := spotAt(50, 0, 0, true)
	near := spotAt(2, 0, 0, true)
	mid := spotAt(10, 0, 0, true)
	sc := &scene.RenderScene{Lights: []scene.Light{far, near, mid}}

	fl := NewForwardLighting(&PipelineConfigs{MaxSpotShadowMaps: 4})
	frustum := wideFrustum()
	cameraPos := math.Vec3{}
	fl.CullLights(sc, &frustum, &cameraPos, true)

	got := fl.ShadowCastingSpotLights()
	if got[0] != near || got[1] != mid || got[2] != far {
		t.Errorf("spots not sorted by camera distance: %v", got)
	}
}

func TestCullLightsReusesSlices(t *testing.T) {
	sc := &scene.RenderScene{Lights: []scene.Light{spotAt(0, 0, 0, false)}}
	fl := NewForwardLighting(&PipelineConfigs{})
	frustum := wideFrustum()
	fl.CullLights(sc, &frustum, nil, true)
	fl.CullLights(sc, &frustum, nil, true)

	if got := len(fl.ActiveLights()); got != 1 {
		t.Errorf("re-culling must rebuild, not accumulate: got %d lights", got)
	}
}

func TestLightQueueName(t *testing.T) {
	tests := []struct {
		light scene.Light
		want  string
	}{
		{&scene.SphereLight{}, "sphere-light"},
		{&scene.SpotLight{}, "spot-light"},
		{&scene.PointLight{}, "point-light"},
		{&scene.RangedDirectionalLight{}, "ranged-directional-light"},
		{&scene.DirectionalLight{}, "unknown-light"},
	}
	for _, tt := range tests {
		if got := lightQueueName(tt.light); got != tt.want {
			t.Errorf("lightQueueName(%T) = %q, want %q", tt.light, got, tt.want)
		}
	}
}

func TestAddLightPassesCapsSpotShadows(t *testing.T) {
	p, g, camera := newTestPipeline(t, desktopCaps(), config.Default())
	camera.Scene.Lights = []scene.Light{
		spotAt(1, 0, 0, true),
		spotAt(2, 0, 0, true),
		spotAt(3, 0, 0, true),
	}

	composeFrame(t, p, g, camera)

	shadowPasses := 0
	lightingPasses := 0
	for _, pass := range g.Passes {
		switch pass.Name {
		case "SpotShadowPass":
			shadowPasses++
		case "SpotLightingPass":
			lightingPasses++
		}
	}
	// MaxSpotShadowMaps defaults to 1; the two extra casters are dropped.
	if shadowPasses != 1 || lightingPasses != 1 {
		t.Errorf("got %d shadow / %d lighting passes, want 1 / 1", shadowPasses, lightingPasses)
	}
}

func TestMobileSharedShadowSlot(t *testing.T) {
	s := config.Default()
	s.Shadow.MaxSpotShadowMaps = 2
	p, g, camera := newTestPipeline(t, mobileCaps(), s)
	near := spotAt(1, 0, 0, true)
	far := spotAt(30, 0, 0, true)
	camera.Scene.Lights = []scene.Light{far, near}

	composeFrame(t, p, g, camera)

	var forward *graph.PassDesc
	for _, pass := range g.Passes {
		if pass.Name == "ForwardPass" {
			forward = pass
		}
	}
	if forward == nil {
		t.Fatal("no forward pass recorded")
	}

	// Both maps bind through the shared slot; only the last bind survives,
	// which after distance sorting is the farther light's map.
	bound := ""
	for _, in := range forward.Inputs {
		if in.Slot == slotSpotShadow {
			bound = in.Name
		}
	}
	id := camera.Window.ID
	if bound != spotShadowMapName(id, 1) {
		t.Errorf("shared slot binds %q, want %q", bound, spotShadowMapName(id, 1))
	}
}

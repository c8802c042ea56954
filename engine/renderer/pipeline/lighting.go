package pipeline

import (
	"sort"

	"github.com/spaghettifunk/aurora/engine/math"
	"github.com/spaghettifunk/aurora/engine/renderer/graph"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
	"github.com/spaghettifunk/aurora/engine/scene"
)

/**
 * @brief Culls and classifies the scene lights for one frame. Every culled
 * light lands in exactly one of the two sequences; baked lights in neither.
 *
 * NOTE: no light limit is enforced. Every active light becomes its own
 * additive draw queue, so large light counts degrade linearly; scenes that
 * need hundreds of lights want a clustered pipeline, not this one.
 */
type ForwardLighting struct {
	configs *PipelineConfigs

	/** @brief Non-shadow-casting additive lights, scene iteration order. */
	activeLights []scene.Light
	/** @brief Shadow-casting spot lights, sorted by camera distance when one is supplied. */
	shadowCastingSpotLights []*scene.SpotLight
}

func NewForwardLighting(configs *PipelineConfigs) *ForwardLighting {
	return &ForwardLighting{configs: configs}
}

// CullLights rebuilds both sequences from the scene. Sphere, spot and point
// lights are tested as bounding spheres; ranged directional lights as
// transformed boxes. When cameraPos is non-nil the shadow-casting spot
// lights are sorted by ascending squared distance to it. With shadows
// disabled every spot light degrades to a plain additive light.
func (fl *ForwardLighting) CullLights(sc *scene.RenderScene, frustum *math.Frustum, cameraPos *math.Vec3, shadowsEnabled bool) {
	fl.activeLights = fl.activeLights[:0]
	fl.shadowCastingSpotLights = fl.shadowCastingSpotLights[:0]

	for _, light := range sc.Lights {
		c := light.Common()
		if c.Baked {
			continue
		}

		visible := false
		switch l := light.(type) {
		case *scene.SphereLight, *scene.SpotLight, *scene.PointLight:
			visible = frustum.IntersectsSphere(scene.BoundingSphere(c))
		case *scene.RangedDirectionalLight:
			visible = frustum.IntersectsAABB(l.BoundingBox())
		case *scene.DirectionalLight:
			// The main light is handled by the CSM pass, never as an
			// additive queue.
			continue
		}
		if !visible {
			continue
		}

		if spot, ok := light.(*scene.SpotLight); ok && spot.ShadowEnabled && shadowsEnabled {
			fl.shadowCastingSpotLights = append(fl.shadowCastingSpotLights, spot)
		} else {
			fl.activeLights = append(fl.activeLights, light)
		}
	}

	if cameraPos != nil {
		pos := *cameraPos
		sort.Slice(fl.shadowCastingSpotLights, func(i, j int) bool {
			di := fl.shadowCastingSpotLights[i].Position.DistanceSquared(pos)
			dj := fl.shadowCastingSpotLights[j].Position.DistanceSquared(pos)
			return di < dj
		})
	}
}

func (fl *ForwardLighting) ActiveLights() []scene.Light {
	return fl.activeLights
}

func (fl *ForwardLighting) ShadowCastingSpotLights() []*scene.SpotLight {
	return fl.shadowCastingSpotLights
}

func lightQueueName(light scene.Light) string {
	switch light.(type) {
	case *scene.SphereLight:
		return "sphere-light"
	case *scene.SpotLight:
		return "spot-light"
	case *scene.PointLight:
		return "point-light"
	case *scene.RangedDirectionalLight:
		return "ranged-directional-light"
	default:
		return "unknown-light"
	}
}

// addSpotShadowPass emits one shadow-caster pass rendering the spot light's
// depth into the given shadow map.
func (fl *ForwardLighting) addSpotShadowPass(g *graph.Graph, camera *scene.Camera, spot *scene.SpotLight, mapName, depthName string) {
	size := fl.configs.ShadowMapSize
	pass := g.AddRenderPass("SpotShadowPass", size, size, "shadow-caster")
	pass.AddRenderTarget(mapName, metadata.LOAD_OP_CLEAR, metadata.STORE_OP_STORE, math.NewVec4(1, 1, 1, 1))
	pass.AddDepthStencil(depthName, metadata.LOAD_OP_CLEAR, metadata.STORE_OP_DISCARD, 1.0, 0)

	pass.AddQueue(metadata.QUEUE_HINT_NONE, "shadow-caster").
		UseLightFrustum(spot, 0).
		AddScene(camera, metadata.SCENE_FLAG_OPAQUE|metadata.SCENE_FLAG_MASK|metadata.SCENE_FLAG_SHADOW_CASTER, spot)
}

// addLightQueues appends one additive blend queue per active light to the
// given pass.
func (fl *ForwardLighting) addLightQueues(pass *graph.PassBuilder, camera *scene.Camera) {
	for _, light := range fl.activeLights {
		pass.AddQueue(metadata.QUEUE_HINT_BLEND, lightQueueName(light)).
			AddScene(camera, metadata.SCENE_FLAG_BLEND, light)
	}
}

/**
 * @brief Desktop path. Each shadow-casting spot light (up to the configured
 * cap, extras silently dropped) gets its own shadow pass into the shared
 * shadow-map target followed by a new lighting pass chained from the
 * previous output with LOAD semantics. More passes, but every light samples
 * its own shadow map. Returns the last pass opened, which also receives the
 * additive queues for the remaining lights.
 */
func (fl *ForwardLighting) AddLightPasses(g *graph.Graph, camera *scene.Camera, id, width, height uint32, radiance, depth string, last *graph.PassBuilder) *graph.PassBuilder {
	count := len(fl.shadowCastingSpotLights)
	if max := int(fl.configs.MaxSpotShadowMaps); count > max {
		count = max
	}

	for i := 0; i < count; i++ {
		spot := fl.shadowCastingSpotLights[i]
		fl.addSpotShadowPass(g, camera, spot, shadowMapName(id), shadowDepthName(id))

		pass := g.AddRenderPass("SpotLightingPass", width, height, "default")
		pass.AddRenderTarget(radiance, metadata.LOAD_OP_LOAD, metadata.STORE_OP_STORE, math.Vec4{})
		pass.AddDepthStencil(depth, metadata.LOAD_OP_LOAD, metadata.STORE_OP_STORE, 1.0, 0)
		pass.AddTexture(shadowMapName(id), slotShadowMap)
		pass.AddQueue(metadata.QUEUE_HINT_BLEND, lightQueueName(spot)).
			AddScene(camera, metadata.SCENE_FLAG_BLEND, spot)
		last = pass
	}

	fl.addLightQueues(last, camera)
	return last
}

/**
 * @brief Mobile path, part one: one shadow pass per shadow-casting spot
 * light (capped), each into its own declared per-slot map. Must run before
 * the shared forward pass that samples them.
 */
func (fl *ForwardLighting) AddMobileShadowPasses(g *graph.Graph, camera *scene.Camera, id uint32) {
	count := len(fl.shadowCastingSpotLights)
	if max := int(fl.configs.MaxSpotShadowMaps); count > max {
		count = max
	}
	for i := 0; i < count; i++ {
		spot := fl.shadowCastingSpotLights[i]
		fl.addSpotShadowPass(g, camera, spot, spotShadowMapName(id, uint32(i)), shadowDepthName(id))
	}
}

/**
 * @brief Mobile path, part two: binds each spot shadow map and appends that
 * light's blend queue to the single shared forward pass, then the additive
 * queues for everything else.
 *
 * All shadow maps go through one shared texture slot, so queues only see the
 * map bound last. This is the documented single-spot-shadow limitation on
 * mobile, not a defect; keep it as is.
 */
func (fl *ForwardLighting) AddMobileLightQueues(pass *graph.PassBuilder, camera *scene.Camera, id uint32) {
	count := len(fl.shadowCastingSpotLights)
	if max := int(fl.configs.MaxSpotShadowMaps); count > max {
		count = max
	}
	for i := 0; i < count; i++ {
		spot := fl.shadowCastingSpotLights[i]
		pass.AddTexture(spotShadowMapName(id, uint32(i)), slotSpotShadow)
		pass.AddQueue(metadata.QUEUE_HINT_BLEND, lightQueueName(spot)).
			AddScene(camera, metadata.SCENE_FLAG_BLEND, spot)
	}

	fl.addLightQueues(pass, camera)
}

package scene

import (
	"github.com/spaghettifunk/aurora/engine/math"
)

/**
 * @brief Common state shared by every light variant. Variants embed this and
 * the planner reads it through Common(), so classification never needs
 * per-variant accessors.
 */
type LightCommon struct {
	/** @brief The world position of the light. */
	Position math.Vec3
	/** @brief The range (radius of influence) of the light. */
	Range float32
	/** @brief Whether this light casts shadows. */
	ShadowEnabled bool
	/** @brief Baked lights are excluded from dynamic culling entirely. */
	Baked bool
}

func (c *LightCommon) Common() *LightCommon { return c }

/**
 * @brief The closed set of light variants. Only the five concrete types in
 * this package implement it; pass composition type-switches exhaustively.
 */
type Light interface {
	Common() *LightCommon
	isLight()
}

type SphereLight struct {
	LightCommon
	/** @brief The emitter radius, distinct from the influence Range. */
	Size float32
}

type SpotLight struct {
	LightCommon
	Direction math.Vec3
	/** @brief Full cone angle, radians. */
	SpotAngle float32
}

type PointLight struct {
	LightCommon
}

type RangedDirectionalLight struct {
	LightCommon
	/** @brief Local-to-world transform of the unit influence box. */
	Transform math.Mat4
}

type DirectionalLight struct {
	LightCommon
	Direction math.Vec3
	/** @brief Number of shadow cascades, 1 or 4. */
	CSMLevel uint32
	/** @brief Fixed-area shadows use a single viewport regardless of CSMLevel. */
	FixedArea bool
	ShadowDistance float32
}

func (*SphereLight) isLight()            {}
func (*SpotLight) isLight()              {}
func (*PointLight) isLight()             {}
func (*RangedDirectionalLight) isLight() {}
func (*DirectionalLight) isLight()       {}

// BoundingSphere returns the influence sphere used for frustum culling of
// sphere, spot and point lights.
func BoundingSphere(c *LightCommon) math.Sphere {
	return math.Sphere{Center: c.Position, Radius: c.Range}
}

// unit box centered on the origin; ranged directional lights scale and
// orient it through their transform.
var rangedDirUnitBox = math.AABB{
	Min: math.Vec3{X: -0.5, Y: -0.5, Z: -0.5},
	Max: math.Vec3{X: 0.5, Y: 0.5, Z: 0.5},
}

// BoundingBox returns the world-space bounds of a ranged directional light.
func (l *RangedDirectionalLight) BoundingBox() math.AABB {
	return rangedDirUnitBox.Transform(l.Transform)
}

package math

/** @brief A plane in Hessian normal form: Normal·x + D = 0. */
type Plane struct {
	Normal Vec3
	D      float32
}

// SignedDistance is positive on the side the normal points to.
func (p Plane) SignedDistance(point Vec3) float32 {
	return p.Normal.Dot(point) + p.D
}

/**
 * @brief A view frustum described by six inward-facing planes
 * (left, right, bottom, top, near, far).
 */
type Frustum struct {
	Planes [6]Plane
}

type Sphere struct {
	Center Vec3
	Radius float32
}

type AABB struct {
	Min Vec3
	Max Vec3
}

// NewFrustumFromViewProj extracts the six clip planes from a combined
// view-projection matrix (Gribb/Hartmann). The planes are normalized so
// signed distances are in world units.
func NewFrustumFromViewProj(vp Mat4) Frustum {
	d := vp.Data
	row := func(i int) Vec4 {
		return Vec4{d[0+i], d[4+i], d[8+i], d[12+i]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	add := func(a, b Vec4) Vec4 { return Vec4{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W + b.W} }
	sub := func(a, b Vec4) Vec4 { return Vec4{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W - b.W} }

	raw := [6]Vec4{
		add(r3, r0), // left
		sub(r3, r0), // right
		add(r3, r1), // bottom
		sub(r3, r1), // top
		add(r3, r2), // near
		sub(r3, r2), // far
	}

	var f Frustum
	for i, p := range raw {
		n := Vec3{p.X, p.Y, p.Z}
		invLen := float32(1.0)
		if l := n.Length(); l > K_FLOAT_EPSILON {
			invLen = 1.0 / l
		}
		f.Planes[i] = Plane{Normal: n.MulScalar(invLen), D: p.W * invLen}
	}
	return f
}

// NewFrustumFromAABB builds an axis-aligned box frustum. Mostly useful for
// orthographic light frusta and tests.
func NewFrustumFromAABB(box AABB) Frustum {
	return Frustum{Planes: [6]Plane{
		{Normal: Vec3{X: 1}, D: -box.Min.X},
		{Normal: Vec3{X: -1}, D: box.Max.X},
		{Normal: Vec3{Y: 1}, D: -box.Min.Y},
		{Normal: Vec3{Y: -1}, D: box.Max.Y},
		{Normal: Vec3{Z: 1}, D: -box.Min.Z},
		{Normal: Vec3{Z: -1}, D: box.Max.Z},
	}}
}

// IntersectsSphere performs an exact sphere-frustum test: the sphere is
// outside only if its center is farther than its radius behind any plane.
func (f *Frustum) IntersectsSphere(s Sphere) bool {
	for i := range f.Planes {
		if f.Planes[i].SignedDistance(s.Center) < -s.Radius {
			return false
		}
	}
	return true
}

// IntersectsAABB tests the box against each plane using the vertex of the
// box most aligned with the plane normal (p-vertex test).
func (f *Frustum) IntersectsAABB(b AABB) bool {
	for i := range f.Planes {
		n := f.Planes[i].Normal
		p := b.Max
		if n.X < 0 {
			p.X = b.Min.X
		}
		if n.Y < 0 {
			p.Y = b.Min.Y
		}
		if n.Z < 0 {
			p.Z = b.Min.Z
		}
		if f.Planes[i].SignedDistance(p) < 0 {
			return false
		}
	}
	return true
}

// Transform returns the axis-aligned bounds of the box after applying the
// matrix, by transforming all eight corners.
func (b AABB) Transform(m Mat4) AABB {
	corners := [8]Vec3{
		{b.Min.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z},
		{b.Max.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z},
		{b.Max.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z},
		{b.Max.X, b.Max.Y, b.Max.Z},
	}
	out := AABB{
		Min: Vec3{K_INFINITY, K_INFINITY, K_INFINITY},
		Max: Vec3{-K_INFINITY, -K_INFINITY, -K_INFINITY},
	}
	for _, c := range corners {
		t := m.TransformPoint(c)
		out.Min.X = Min(out.Min.X, t.X)
		out.Min.Y = Min(out.Min.Y, t.Y)
		out.Min.Z = Min(out.Min.Z, t.Z)
		out.Max.X = Max(out.Max.X, t.X)
		out.Max.Y = Max(out.Max.Y, t.Y)
		out.Max.Z = Max(out.Max.Z, t.Z)
	}
	return out
}

package math

import "testing"

func boxFrustum() Frustum {
	return NewFrustumFromAABB(AABB{
		Min: Vec3{-10, -10, -10},
		Max: Vec3{10, 10, 10},
	})
}

func TestFrustumIntersectsSphere(t *testing.T) {
	f := boxFrustum()

	tests := []struct {
		name   string
		sphere Sphere
		want   bool
	}{
		{"inside", Sphere{Center: Vec3{0, 0, 0}, Radius: 1}, true},
		{"straddling a plane", Sphere{Center: Vec3{10.5, 0, 0}, Radius: 1}, true},
		{"touching from outside", Sphere{Center: Vec3{11, 0, 0}, Radius: 1}, true},
		{"fully outside", Sphere{Center: Vec3{15, 0, 0}, Radius: 1}, false},
		{"outside a corner plane pair", Sphere{Center: Vec3{-20, -20, 0}, Radius: 2}, false},
	}
	for _, tc := range tests {
		if got := f.IntersectsSphere(tc.sphere); got != tc.want {
			t.Errorf("%s: IntersectsSphere = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFrustumIntersectsAABB(t *testing.T) {
	f := boxFrustum()

	tests := []struct {
		name string
		box  AABB
		want bool
	}{
		{"inside", AABB{Min: Vec3{-1, -1, -1}, Max: Vec3{1, 1, 1}}, true},
		{"overlapping", AABB{Min: Vec3{9, 9, 9}, Max: Vec3{12, 12, 12}}, true},
		{"outside positive x", AABB{Min: Vec3{11, -1, -1}, Max: Vec3{13, 1, 1}}, false},
		{"outside negative z", AABB{Min: Vec3{-1, -1, -14}, Max: Vec3{1, 1, -11}}, false},
	}
	for _, tc := range tests {
		if got := f.IntersectsAABB(tc.box); got != tc.want {
			t.Errorf("%s: IntersectsAABB = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFrustumFromViewProjContainsOrigin(t *testing.T) {
	// A camera at z=5 looking down -z has the origin well inside its frustum.
	proj := NewMat4Perspective(DegToRad(60), 16.0/9.0, 0.1, 100.0)
	view := NewMat4Identity()
	view.Data[14] = -5 // translate world by -5 on z

	f := NewFrustumFromViewProj(proj.Mul(view))

	if !f.IntersectsSphere(Sphere{Center: Vec3{0, 0, 0}, Radius: 0.5}) {
		t.Errorf("expected origin sphere inside frustum")
	}
	if f.IntersectsSphere(Sphere{Center: Vec3{0, 0, 50}, Radius: 0.5}) {
		t.Errorf("expected sphere behind camera outside frustum")
	}
}

func TestAABBTransform(t *testing.T) {
	box := AABB{Min: Vec3{-1, -1, -1}, Max: Vec3{1, 1, 1}}

	m := NewMat4Identity()
	m.Data[12] = 3 // translate x
	out := box.Transform(m)

	if out.Min.X != 2 || out.Max.X != 4 {
		t.Errorf("translated box x = [%f, %f], want [2, 4]", out.Min.X, out.Max.X)
	}
	if out.Min.Y != -1 || out.Max.Y != 1 {
		t.Errorf("translated box y = [%f, %f], want [-1, 1]", out.Min.Y, out.Max.Y)
	}
}

package math

import (
	gomath "math"
	"testing"
)

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-5
}

func vec3Near(a, b Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func TestMat4IdentityTransform(t *testing.T) {
	p := Vec3{X: 1, Y: 2, Z: 3}
	if have := p.Transform(NewMat4Identity()); !vec3Near(have, p) {
		t.Fatalf("identity transform moved %+v to %+v", p, have)
	}
}

func TestMat4MulAppliesLeftFirst(t *testing.T) {
	// Scaling after translating differs from translating after scaling;
	// Mul applies the receiver first.
	scale := NewMat4Scale(Vec3{X: 2, Y: 2, Z: 2})
	translate := NewMat4Translation(Vec3{X: 1, Y: 0, Z: 0})

	p := Vec3{X: 1, Y: 0, Z: 0}
	if have := p.Transform(scale.Mul(translate)); !vec3Near(have, Vec3{X: 3, Y: 0, Z: 0}) {
		t.Fatalf("scale then translate: want (3 0 0), have %+v", have)
	}
	if have := p.Transform(translate.Mul(scale)); !vec3Near(have, Vec3{X: 4, Y: 0, Z: 0}) {
		t.Fatalf("translate then scale: want (4 0 0), have %+v", have)
	}
}

func TestQuaternionToMat4(t *testing.T) {
	// 90 degrees about Z maps +X onto +Y.
	s := float32(gomath.Sqrt(0.5))
	q := Quaternion{X: 0, Y: 0, Z: s, W: s}
	have := Vec3{X: 1, Y: 0, Z: 0}.Transform(q.ToMat4())
	if !vec3Near(have, Vec3{X: 0, Y: 1, Z: 0}) {
		t.Fatalf("rotation: want (0 1 0), have %+v", have)
	}
}

func TestQuaternionIdentity(t *testing.T) {
	p := Vec3{X: 4, Y: 5, Z: 6}
	if have := p.Transform(NewQuatIdentity().ToMat4()); !vec3Near(have, p) {
		t.Fatalf("identity rotation moved %+v to %+v", p, have)
	}
}

func TestQuaternionNormalize(t *testing.T) {
	q := Quaternion{X: 0, Y: 0, Z: 2, W: 0}
	n := q.Normalize()
	if !near(n.Normal(), 1) {
		t.Fatalf("normalized quaternion has normal %f", n.Normal())
	}
}

func TestNewMat4FromArray(t *testing.T) {
	// Column-major array with translation in the last column.
	m := NewMat4FromArray([16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		7, 8, 9, 1,
	})
	have := Vec3{}.Transform(m)
	if !vec3Near(have, Vec3{X: 7, Y: 8, Z: 9}) {
		t.Fatalf("want (7 8 9), have %+v", have)
	}
}

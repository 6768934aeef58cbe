// 指示: miu200521358
package mmath

import (
	"errors"
	"math"
	"testing"

	"github.com/miu200521358/mu_rigtools/pkg/domain/model/merrors"
)

func TestAxisFrameIsOrthonormal(t *testing.T) {
	triples := [][3]Vec3{
		{NewVec3(0, 1, 0), NewVec3(0, 0, 0), NewVec3(1, 3, 0)},
		{NewVec3(0.3, -2, 5), NewVec3(1, 1, 1), NewVec3(-4, 0.5, 2)},
		{NewVec3(10, 0, 0), NewVec3(0, 10, 0), NewVec3(0, 0, 10)},
	}
	for _, triple := range triples {
		normal, tangent, bitangent, err := AxisFrame(triple[0], triple[1], triple[2])
		if err != nil {
			t.Fatalf("axis frame failed: %v", err)
		}
		for _, axis := range []Vec3{normal, tangent, bitangent} {
			if math.Abs(axis.Length()-1.0) > 1e-9 {
				t.Fatalf("axis should be unit: axis=%v length=%f", axis, axis.Length())
			}
		}
		if math.Abs(normal.Dot(tangent)) > 1e-9 ||
			math.Abs(normal.Dot(bitangent)) > 1e-9 ||
			math.Abs(tangent.Dot(bitangent)) > 1e-9 {
			t.Fatalf("axes should be orthogonal: n=%v t=%v b=%v", normal, tangent, bitangent)
		}
	}
}

func TestAxisFrameRejectsCollinearPoints(t *testing.T) {
	_, _, _, err := AxisFrame(NewVec3(0, 1, 0), NewVec3(0, 0, 0), NewVec3(0, 3, 0))
	if !errors.Is(err, merrors.ErrDegenerateGeometry) {
		t.Fatalf("expected degenerate geometry, got %v", err)
	}
	if merrors.ExtractErrorID(err) != merrors.ErrorIDDegenerateGeometry {
		t.Fatalf("expected error id %s, got %s", merrors.ErrorIDDegenerateGeometry, merrors.ExtractErrorID(err))
	}
}

func TestProjectOntoPlaneRemovesNormalComponent(t *testing.T) {
	p1 := NewVec3(0, 0, 0)
	p2 := NewVec3(1, 0, 0)
	p3 := NewVec3(0, 1, 0)

	projected, err := ProjectOntoPlane(NewVec3(2, 3, 7), p1, p2, p3)
	if err != nil {
		t.Fatalf("projection failed: %v", err)
	}
	if !projected.NearEquals(NewVec3(2, 3, 0), 1e-12) {
		t.Fatalf("projection mismatch: %v", projected)
	}

	onPlane := NewVec3(-4, 5, 0)
	again, err := ProjectOntoPlane(onPlane, p1, p2, p3)
	if err != nil {
		t.Fatalf("projection failed: %v", err)
	}
	if !again.NearEquals(onPlane, 1e-12) {
		t.Fatalf("point on plane should not move: %v", again)
	}
}

func TestPlaneNormalRejectsCoincidentPoints(t *testing.T) {
	p := NewVec3(1, 2, 3)
	if _, err := PlaneNormal(p, p, NewVec3(4, 5, 6)); !errors.Is(err, merrors.ErrDegenerateGeometry) {
		t.Fatalf("expected degenerate geometry, got %v", err)
	}
	if _, err := NewPlane(p, p, p); err == nil {
		t.Fatalf("expected error")
	}
}

func TestPerpendicularOfIsOrthogonalUnit(t *testing.T) {
	for _, v := range []Vec3{NewVec3(0, 3, 0), NewVec3(1, 1, 1), NewVec3(0, 0, -2), {}} {
		perp := PerpendicularOf(v)
		if math.Abs(perp.Length()-1.0) > 1e-9 {
			t.Fatalf("perpendicular should be unit: v=%v perp=%v", v, perp)
		}
		if math.Abs(perp.Dot(v)) > 1e-9 {
			t.Fatalf("perpendicular should be orthogonal: v=%v perp=%v", v, perp)
		}
	}
}

func TestNormalizedZeroVectorStaysZero(t *testing.T) {
	zero := Vec3{}.Normalized()
	if !zero.IsZero() || math.IsNaN(zero.X) {
		t.Fatalf("zero vector should stay zero: %v", zero)
	}
	if !IsParallel(NewVec3(0, 2, 0), NewVec3(0, -5, 0), 1e-12) {
		t.Fatalf("opposite vectors should be parallel")
	}
}

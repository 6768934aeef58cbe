// 指示: miu200521358
package mmath

import (
	"math"

	"github.com/miu200521358/mu_rigtools/pkg/domain/model/merrors"
)

// AxisFrame は3点から法線・接線・従法線の軸を求める。
// q, r, s が共線または一致する場合は DegenerateGeometry を返す。
func AxisFrame(q, r, s Vec3) (normal Vec3, tangent Vec3, bitangent Vec3, err error) {
	cross := r.Subed(q).Cross(s.Subed(q))
	if cross.IsZero() {
		return Vec3{}, Vec3{}, Vec3{}, merrors.New(
			merrors.KindDegenerateGeometry,
			"軸算出点が共線です: q=%v r=%v s=%v", q, r, s,
		)
	}
	edge := s.Subed(r)
	if edge.IsZero() {
		return Vec3{}, Vec3{}, Vec3{}, merrors.New(
			merrors.KindDegenerateGeometry,
			"接線算出点が一致しています: r=%v s=%v", r, s,
		)
	}
	normal = cross.Normalized()
	tangent = edge.Normalized()
	bitangent = tangent.Cross(normal)
	return normal, tangent, bitangent, nil
}

// PlaneNormal は3点が張る平面の単位法線を返す。
func PlaneNormal(p1, p2, p3 Vec3) (Vec3, error) {
	cross := p2.Subed(p1).Cross(p3.Subed(p1))
	if cross.IsZero() {
		return Vec3{}, merrors.New(
			merrors.KindDegenerateGeometry,
			"平面算出点が共線です: p1=%v p2=%v p3=%v", p1, p2, p3,
		)
	}
	return cross.Normalized(), nil
}

// ProjectOntoPlane は点を3点が張る平面へ正射影する。
func ProjectOntoPlane(point, p1, p2, p3 Vec3) (Vec3, error) {
	normal, err := PlaneNormal(p1, p2, p3)
	if err != nil {
		return Vec3{}, err
	}
	return projectOntoNormalPlane(point, p1, normal), nil
}

// projectOntoNormalPlane は原点と単位法線で表す平面へ点を正射影する。
func projectOntoNormalPlane(point, origin, normal Vec3) Vec3 {
	distance := point.Subed(origin).Dot(normal)
	return point.Subed(normal.MuledScalar(distance))
}

// Plane は原点と単位法線で表す平面。
type Plane struct {
	Origin Vec3
	Normal Vec3
}

// NewPlane は3点から平面を生成する。
func NewPlane(p1, p2, p3 Vec3) (Plane, error) {
	normal, err := PlaneNormal(p1, p2, p3)
	if err != nil {
		return Plane{}, err
	}
	return Plane{Origin: p1, Normal: normal}, nil
}

// Project は点を平面へ正射影する。
func (p Plane) Project(point Vec3) Vec3 {
	return projectOntoNormalPlane(point, p.Origin, p.Normal)
}

// PerpendicularOf はvと直交する単位ベクトルを返す。
// vと最も平行でないワールド軸との外積から求める。vがゼロの場合はX軸を返す。
func PerpendicularOf(v Vec3) Vec3 {
	unit := v.Normalized()
	if unit.IsZero() {
		return NewVec3(1, 0, 0)
	}
	axis := NewVec3(1, 0, 0)
	minAbs := math.Abs(unit.X)
	if abs := math.Abs(unit.Y); abs < minAbs {
		axis = NewVec3(0, 1, 0)
		minAbs = abs
	}
	if abs := math.Abs(unit.Z); abs < minAbs {
		axis = NewVec3(0, 0, 1)
	}
	return unit.Cross(axis).Normalized()
}

// IsParallel は2ベクトルが平行(外積がほぼ0)か判定する。
func IsParallel(a, b Vec3, epsilon float64) bool {
	return a.Cross(b).Length() <= epsilon
}

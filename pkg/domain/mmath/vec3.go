// 指示: miu200521358
// Package mmath はリグ構築で使う3次元ベクトル演算を提供する。
package mmath

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Epsilon は幾何判定の許容誤差。
const Epsilon = 1e-8

// Vec3 は3次元ベクトルを表す。
type Vec3 struct {
	r3.Vec
}

// NewVec3 は成分からVec3を生成する。
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{Vec: r3.Vec{X: x, Y: y, Z: z}}
}

// Added は加算結果を返す。
func (v Vec3) Added(other Vec3) Vec3 {
	return Vec3{Vec: r3.Add(v.Vec, other.Vec)}
}

// Subed は減算結果を返す。
func (v Vec3) Subed(other Vec3) Vec3 {
	return Vec3{Vec: r3.Sub(v.Vec, other.Vec)}
}

// MuledScalar はスカラー倍を返す。
func (v Vec3) MuledScalar(s float64) Vec3 {
	return Vec3{Vec: r3.Scale(s, v.Vec)}
}

// Dot は内積を返す。
func (v Vec3) Dot(other Vec3) float64 {
	return r3.Dot(v.Vec, other.Vec)
}

// Cross は外積を返す。
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{Vec: r3.Cross(v.Vec, other.Vec)}
}

// Length はベクトル長を返す。
func (v Vec3) Length() float64 {
	return r3.Norm(v.Vec)
}

// Normalized は単位ベクトルを返す。長さがほぼ0の場合はゼロベクトルを返す。
func (v Vec3) Normalized() Vec3 {
	if v.Length() <= Epsilon {
		return Vec3{}
	}
	return Vec3{Vec: r3.Unit(v.Vec)}
}

// IsZero は長さがほぼ0か判定する。
func (v Vec3) IsZero() bool {
	return v.Length() <= Epsilon
}

// NearEquals は各成分が許容誤差内で一致するか判定する。
func (v Vec3) NearEquals(other Vec3, epsilon float64) bool {
	return math.Abs(v.X-other.X) <= epsilon &&
		math.Abs(v.Y-other.Y) <= epsilon &&
		math.Abs(v.Z-other.Z) <= epsilon
}

// Lerp はtで線形補間した点を返す。
func (v Vec3) Lerp(other Vec3, t float64) Vec3 {
	return v.Added(other.Subed(v).MuledScalar(t))
}

// Array は成分を配列で返す。
func (v Vec3) Array() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// Vec3FromArray は配列からVec3を生成する。
func Vec3FromArray(values [3]float64) Vec3 {
	return NewVec3(values[0], values[1], values[2])
}

// String は表示用文字列を返す。
func (v Vec3) String() string {
	return fmt.Sprintf("[x=%.5f, y=%.5f, z=%.5f]", v.X, v.Y, v.Z)
}

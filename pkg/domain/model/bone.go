// 指示: miu200521358
// Package model はアーマチュアとボーンのドメインモデルを提供する。
package model

import (
	"slices"

	"github.com/miu200521358/mu_rigtools/pkg/domain/mmath"
)

// ViewMode はボーン表現のビューを表す。
type ViewMode int

const (
	// VIEW_MODE_EDIT は頭・尾・親を編集できるトポロジービュー。
	VIEW_MODE_EDIT ViewMode = iota
	// VIEW_MODE_POSE はコンストレイントを付与するポーズビュー。
	VIEW_MODE_POSE
)

// String はビュー名を返す。
func (m ViewMode) String() string {
	switch m {
	case VIEW_MODE_EDIT:
		return "EDIT"
	case VIEW_MODE_POSE:
		return "POSE"
	default:
		return "UNKNOWN"
	}
}

const (
	// MaxBoneNameLength はボーン名の最大バイト長。
	MaxBoneNameLength = 63
	// BoneLayerCount はボーンレイヤー数。
	BoneLayerCount = 32
)

// RestTopology はボーンの編集ビュー側の情報を表す。
type RestTopology struct {
	Head       mmath.Vec3
	Tail       mmath.Vec3
	Roll       float64
	Parent     string
	UseConnect bool
	UseDeform  bool
	Layers     []int
}

// Length はボーン長を返す。
func (r RestTopology) Length() float64 {
	return r.Tail.Subed(r.Head).Length()
}

// Direction はhead→tailの単位方向を返す。
func (r RestTopology) Direction() mmath.Vec3 {
	return r.Tail.Subed(r.Head).Normalized()
}

// Vector はhead→tailのベクトルを返す。
func (r RestTopology) Vector() mmath.Vec3 {
	return r.Tail.Subed(r.Head)
}

// HasParent は親ボーンを持つか判定する。
func (r RestTopology) HasParent() bool {
	return r.Parent != ""
}

// PoseTransform はボーンのポーズビュー側の情報を表す。
type PoseTransform struct {
	Constraints []Constraint
}

// BoneRecord は1ボーンの2ビュー分の情報を保持する。
type BoneRecord struct {
	Name string
	Rest RestTopology
	Pose PoseTransform
}

// EditBone は編集ビューで参照するボーンの値コピー。
type EditBone struct {
	Name string
	RestTopology
}

// PoseBone はポーズビューで参照するボーンの値コピー。
type PoseBone struct {
	Name        string
	Head        mmath.Vec3
	Tail        mmath.Vec3
	Constraints []Constraint
}

// newBoneRecord はホスト既定値でボーンを生成する。
func newBoneRecord(name string) BoneRecord {
	return BoneRecord{
		Name: name,
		Rest: RestTopology{
			Head:      mmath.NewVec3(0, 0, 0),
			Tail:      mmath.NewVec3(0, 1, 0),
			Roll:      0,
			UseDeform: true,
			Layers:    []int{0},
		},
	}
}

// editBone は編集ビュー用の値コピーを返す。
func (b *BoneRecord) editBone() EditBone {
	rest := b.Rest
	rest.Layers = slices.Clone(b.Rest.Layers)
	return EditBone{Name: b.Name, RestTopology: rest}
}

// poseBone はポーズビュー用の値コピーを返す。
func (b *BoneRecord) poseBone() PoseBone {
	return PoseBone{
		Name:        b.Name,
		Head:        b.Rest.Head,
		Tail:        b.Rest.Tail,
		Constraints: slices.Clone(b.Pose.Constraints),
	}
}

// 指示: miu200521358
package moutput

import (
	"github.com/miu200521358/mu_rigtools/pkg/domain/mmath"
	"github.com/miu200521358/mu_rigtools/pkg/domain/model"
)

// IArmature はリグ構築処理が利用するアーマチュア操作の契約を表す。
// 構造編集は編集ビュー、コンストレイント操作はポーズビューでのみ有効。
type IArmature interface {
	Name() string
	Mode() model.ViewMode
	SwitchView(mode model.ViewMode) error
	// SwitchCount はビュー切替回数を返す。
	SwitchCount() int
	BoneNames() []string
	HasBone(name string) bool
	Snapshot() (*model.Snapshot, error)

	EditBone(name string) (model.EditBone, error)
	CreateOrUpdateBone(name string) (string, error)
	SetBoneSpan(name string, head mmath.Vec3, tail mmath.Vec3) error
	SetBoneRoll(name string, roll float64) error
	SetBoneParent(name string, parent string, connect bool) error
	SetBoneConnect(name string, connect bool) error
	SetBoneDeform(name string, deform bool) error
	SetBoneLayers(name string, layers []int) error
	AssignLayerName(layerName string) (int, bool)

	PoseBone(name string) (model.PoseBone, error)
	AppendConstraint(name string, constraint model.Constraint) (int, error)
	ClearConstraints(name string) (int, error)
}

// IRigHost はアクティブアーマチュアと選択状態を提供するホストの契約を表す。
type IRigHost interface {
	// ActiveArmature は名前指定、または空の場合はアクティブなアーマチュアを返す。
	ActiveArmature(name string) (IArmature, error)
	// SelectedBoneNames は選択中のボーン名を選択順で返す。
	SelectedBoneNames(armature IArmature) []string
	// SelectBones はボーンを選択状態にする。
	SelectBones(armature IArmature, names []string, clearExisting bool)
}

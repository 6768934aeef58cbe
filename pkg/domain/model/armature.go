// 指示: miu200521358
package model

import (
	"slices"

	"github.com/google/uuid"
	"github.com/miu200521358/mu_rigtools/pkg/domain/mmath"
	"github.com/miu200521358/mu_rigtools/pkg/domain/model/merrors"
)

// Armature はボーン集合と現在のビュー状態を保持するアーマチュアを表す。
// 構造編集は編集ビュー、コンストレイント編集はポーズビューでのみ受け付ける。
type Armature struct {
	name         string
	mode         ViewMode
	bones        []BoneRecord
	indexes      map[string]int
	layerEnabled [BoneLayerCount]bool
	layerNames   map[int]string
	switchCount  int
}

// NewArmature は空のアーマチュアを編集ビューで生成する。
func NewArmature(name string) *Armature {
	a := &Armature{
		name:       name,
		mode:       VIEW_MODE_EDIT,
		indexes:    map[string]int{},
		layerNames: map[int]string{},
	}
	a.layerEnabled[0] = true
	return a
}

// NewArmatureFromRecords はボーンレコード一覧からアーマチュアを生成する。
// 親の存在と循環を検証する。
func NewArmatureFromRecords(name string, records []BoneRecord) (*Armature, error) {
	a := NewArmature(name)
	for _, record := range records {
		if err := validateBoneName(record.Name); err != nil {
			return nil, err
		}
		if _, exists := a.indexes[record.Name]; exists {
			return nil, merrors.New(merrors.KindInvalidBoneName, "ボーン名が重複しています: %s", record.Name)
		}
		copied := record
		copied.Rest.Layers = slices.Clone(record.Rest.Layers)
		copied.Pose.Constraints = slices.Clone(record.Pose.Constraints)
		a.indexes[record.Name] = len(a.bones)
		a.bones = append(a.bones, copied)
		for _, layer := range copied.Rest.Layers {
			if layer >= 0 && layer < BoneLayerCount {
				a.layerEnabled[layer] = true
			}
		}
	}
	for _, record := range a.bones {
		if !record.Rest.HasParent() {
			continue
		}
		if _, exists := a.indexes[record.Rest.Parent]; !exists {
			return nil, merrors.New(merrors.KindMissingBone, "親ボーンが存在しません: bone=%s parent=%s", record.Name, record.Rest.Parent)
		}
		if a.createsCycle(record.Name, record.Rest.Parent) {
			return nil, merrors.New(merrors.KindCycleDetected, "親子関係が循環しています: bone=%s parent=%s", record.Name, record.Rest.Parent)
		}
	}
	return a, nil
}

// Name はアーマチュア名を返す。
func (a *Armature) Name() string {
	return a.name
}

// Mode は現在のビューを返す。
func (a *Armature) Mode() ViewMode {
	return a.mode
}

// SwitchView はビューを切り替える。
func (a *Armature) SwitchView(mode ViewMode) error {
	if mode != VIEW_MODE_EDIT && mode != VIEW_MODE_POSE {
		return merrors.New(merrors.KindWrongView, "未対応のビューです: %d", int(mode))
	}
	if a.mode != mode {
		a.mode = mode
		a.switchCount++
	}
	return nil
}

// SwitchCount はビュー切替回数を返す。
func (a *Armature) SwitchCount() int {
	return a.switchCount
}

// BoneNames は登録順のボーン名一覧を返す。
func (a *Armature) BoneNames() []string {
	names := make([]string, 0, len(a.bones))
	for _, bone := range a.bones {
		names = append(names, bone.Name)
	}
	return names
}

// HasBone はボーンの存在を判定する。
func (a *Armature) HasBone(name string) bool {
	_, exists := a.indexes[name]
	return exists
}

// Len はボーン数を返す。
func (a *Armature) Len() int {
	return len(a.bones)
}

// EditBone は編集ビューのボーンを返す。
func (a *Armature) EditBone(name string) (EditBone, error) {
	bone, err := a.editRecord(name)
	if err != nil {
		return EditBone{}, err
	}
	return bone.editBone(), nil
}

// PoseBone はポーズビューのボーンを返す。
func (a *Armature) PoseBone(name string) (PoseBone, error) {
	bone, err := a.poseRecord(name)
	if err != nil {
		return PoseBone{}, err
	}
	return bone.poseBone(), nil
}

// CreateOrUpdateBone は同名ボーンがあればそれを、無ければ新規ボーンを返す。
// 名前が空の場合はUUIDから名前を生成する。
func (a *Armature) CreateOrUpdateBone(name string) (string, error) {
	if err := a.requireMode(VIEW_MODE_EDIT, "ボーン作成"); err != nil {
		return "", err
	}
	if name == "" {
		name = uuid.NewString()
	}
	if err := validateBoneName(name); err != nil {
		return "", err
	}
	if _, exists := a.indexes[name]; exists {
		return name, nil
	}
	a.indexes[name] = len(a.bones)
	a.bones = append(a.bones, newBoneRecord(name))
	return name, nil
}

// SetBoneSpan はボーンの頭と尾を設定する。接続された子ボーンの頭は新しい尾へ追従する。
func (a *Armature) SetBoneSpan(name string, head mmath.Vec3, tail mmath.Vec3) error {
	bone, err := a.editRecord(name)
	if err != nil {
		return err
	}
	bone.Rest.Head = head
	bone.Rest.Tail = tail
	for i := range a.bones {
		child := &a.bones[i]
		if child.Rest.Parent == name && child.Rest.UseConnect {
			child.Rest.Head = tail
		}
	}
	return nil
}

// SetBoneRoll はボーンのロールを設定する。
func (a *Armature) SetBoneRoll(name string, roll float64) error {
	bone, err := a.editRecord(name)
	if err != nil {
		return err
	}
	bone.Rest.Roll = roll
	return nil
}

// SetBoneParent はボーンの親と接続フラグを設定する。parentが空の場合は親を外す。
// 接続する場合はボーンの頭を親の尾へ移す。
func (a *Armature) SetBoneParent(name string, parent string, connect bool) error {
	bone, err := a.editRecord(name)
	if err != nil {
		return err
	}
	if parent == "" {
		bone.Rest.Parent = ""
		bone.Rest.UseConnect = false
		return nil
	}
	if _, exists := a.indexes[parent]; !exists {
		return merrors.New(merrors.KindMissingBone, "親ボーンが存在しません: %s", parent)
	}
	if a.createsCycle(name, parent) {
		return merrors.New(merrors.KindCycleDetected, "親子関係が循環します: bone=%s parent=%s", name, parent)
	}
	bone.Rest.Parent = parent
	bone.Rest.UseConnect = connect
	if connect {
		bone.Rest.Head = a.bones[a.indexes[parent]].Rest.Tail
	}
	return nil
}

// SetBoneConnect は接続フラグを設定する。
func (a *Armature) SetBoneConnect(name string, connect bool) error {
	bone, err := a.editRecord(name)
	if err != nil {
		return err
	}
	bone.Rest.UseConnect = connect && bone.Rest.HasParent()
	return nil
}

// SetBoneDeform は変形フラグを設定する。
func (a *Armature) SetBoneDeform(name string, deform bool) error {
	bone, err := a.editRecord(name)
	if err != nil {
		return err
	}
	bone.Rest.UseDeform = deform
	return nil
}

// SetBoneLayers は所属レイヤーを設定する。
func (a *Armature) SetBoneLayers(name string, layers []int) error {
	bone, err := a.editRecord(name)
	if err != nil {
		return err
	}
	for _, layer := range layers {
		if layer < 0 || layer >= BoneLayerCount {
			return merrors.New(merrors.KindInvalidLayer, "レイヤー番号が範囲外です: %d", layer)
		}
	}
	bone.Rest.Layers = slices.Clone(layers)
	return nil
}

// AppendConstraint はポーズボーンへコンストレイントを追加し、その番号を返す。
func (a *Armature) AppendConstraint(name string, constraint Constraint) (int, error) {
	bone, err := a.poseRecord(name)
	if err != nil {
		return -1, err
	}
	bone.Pose.Constraints = append(bone.Pose.Constraints, constraint)
	return len(bone.Pose.Constraints) - 1, nil
}

// ClearConstraints はポーズボーンのコンストレイントを全て削除し、削除数を返す。
func (a *Armature) ClearConstraints(name string) (int, error) {
	bone, err := a.poseRecord(name)
	if err != nil {
		return 0, err
	}
	removed := len(bone.Pose.Constraints)
	bone.Pose.Constraints = nil
	return removed, nil
}

// LayerName はレイヤー名を返す。
func (a *Armature) LayerName(layer int) (string, bool) {
	name, ok := a.layerNames[layer]
	return name, ok
}

// IsLayerEnabled はレイヤーが有効か判定する。
func (a *Armature) IsLayerEnabled(layer int) bool {
	if layer < 0 || layer >= BoneLayerCount {
		return false
	}
	return a.layerEnabled[layer]
}

// AssignLayerName は最初の空きレイヤーへ名前を割り当てて番号を返す。
// 無効なレイヤー、またはボーンが所属しない有効レイヤーを空きとみなす。
// 同名のレイヤーが既にあればそれを返す。
func (a *Armature) AssignLayerName(layerName string) (int, bool) {
	for layer := 0; layer < BoneLayerCount; layer++ {
		if name, ok := a.layerNames[layer]; ok && name == layerName {
			return layer, true
		}
	}
	for layer := 0; layer < BoneLayerCount; layer++ {
		if _, named := a.layerNames[layer]; named {
			continue
		}
		if !a.layerEnabled[layer] || !a.layerHasBones(layer) {
			a.layerEnabled[layer] = true
			a.layerNames[layer] = layerName
			return layer, true
		}
	}
	return -1, false
}

// RestoreLayer は保存済みのレイヤー状態を復元する。nameが空の場合は名前を外す。
func (a *Armature) RestoreLayer(layer int, enabled bool, name string) error {
	if layer < 0 || layer >= BoneLayerCount {
		return merrors.New(merrors.KindInvalidLayer, "レイヤー番号が範囲外です: %d", layer)
	}
	a.layerEnabled[layer] = enabled
	if name == "" {
		delete(a.layerNames, layer)
		return nil
	}
	a.layerNames[layer] = name
	return nil
}

// Snapshot は現在のボーン集合の不変スナップショットを返す。
func (a *Armature) Snapshot() (*Snapshot, error) {
	return newSnapshot(a.name, a.bones)
}

// layerHasBones はレイヤーに所属ボーンがあるか判定する。
func (a *Armature) layerHasBones(layer int) bool {
	for _, bone := range a.bones {
		if slices.Contains(bone.Rest.Layers, layer) {
			return true
		}
	}
	return false
}

// createsCycle はchildの親をparentにすると循環するか判定する。
func (a *Armature) createsCycle(child string, parent string) bool {
	current := parent
	for visited := 0; current != "" && visited <= len(a.bones); visited++ {
		if current == child {
			return true
		}
		index, exists := a.indexes[current]
		if !exists {
			return false
		}
		current = a.bones[index].Rest.Parent
	}
	return current != ""
}

// requireMode は現在のビューを検証する。
func (a *Armature) requireMode(mode ViewMode, operation string) error {
	if a.mode != mode {
		return merrors.New(
			merrors.KindWrongView,
			"%sは%sビューでのみ実行できます: armature=%s current=%s",
			operation, mode, a.name, a.mode,
		)
	}
	return nil
}

// editRecord は編集ビューのボーンレコードを返す。
func (a *Armature) editRecord(name string) (*BoneRecord, error) {
	if err := a.requireMode(VIEW_MODE_EDIT, "ボーン編集"); err != nil {
		return nil, err
	}
	return a.record(name)
}

// poseRecord はポーズビューのボーンレコードを返す。
func (a *Armature) poseRecord(name string) (*BoneRecord, error) {
	if err := a.requireMode(VIEW_MODE_POSE, "コンストレイント編集"); err != nil {
		return nil, err
	}
	return a.record(name)
}

// record は名前からボーンレコードを返す。
func (a *Armature) record(name string) (*BoneRecord, error) {
	index, exists := a.indexes[name]
	if !exists {
		return nil, merrors.New(merrors.KindMissingBone, "ボーンが存在しません: armature=%s bone=%s", a.name, name)
	}
	return &a.bones[index], nil
}

// validateBoneName はボーン名を検証する。
func validateBoneName(name string) error {
	if name == "" {
		return merrors.New(merrors.KindInvalidBoneName, "ボーン名が空です")
	}
	if len(name) > MaxBoneNameLength {
		return merrors.New(merrors.KindInvalidBoneName, "ボーン名が長すぎます: %s (%d > %d)", name, len(name), MaxBoneNameLength)
	}
	return nil
}

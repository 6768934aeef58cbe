// 指示: miu200521358
package minteractor

import (
	"slices"

	"github.com/miu200521358/mu_rigtools/pkg/domain/mchain"
	"github.com/miu200521358/mu_rigtools/pkg/domain/mmath"
	"github.com/miu200521358/mu_rigtools/pkg/domain/model"
	"github.com/miu200521358/mu_rigtools/pkg/domain/model/merrors"
)

// boneRepository はボーンの作成・更新とビュー別参照をまとめる。
// 参照・編集の前に必要なビューへ切り替える。
type boneRepository struct {
	armature        Armature
	constraintCount int
}

// newBoneRepository はboneRepositoryを生成する。
func newBoneRepository(armature Armature) *boneRepository {
	return &boneRepository{armature: armature}
}

// useEditView は編集ビューへ切り替える。
func (r *boneRepository) useEditView() error {
	if r.armature.Mode() == model.VIEW_MODE_EDIT {
		return nil
	}
	return r.armature.SwitchView(model.VIEW_MODE_EDIT)
}

// usePoseView はポーズビューへ切り替える。
func (r *boneRepository) usePoseView() error {
	if r.armature.Mode() == model.VIEW_MODE_POSE {
		return nil
	}
	return r.armature.SwitchView(model.VIEW_MODE_POSE)
}

// snapshot は現在のボーン集合のスナップショットを返す。
func (r *boneRepository) snapshot() (*model.Snapshot, error) {
	return r.armature.Snapshot()
}

// resolveChain はスナップショット上で2ボーン間のチェーンを解決する。
func (r *boneRepository) resolveChain(first string, second string) ([]string, error) {
	snapshot, err := r.snapshot()
	if err != nil {
		return nil, err
	}
	return mchain.FindChain(snapshot, first, second)
}

// editBone は編集ビューのボーンを返す。
func (r *boneRepository) editBone(name string) (model.EditBone, error) {
	if err := r.useEditView(); err != nil {
		return model.EditBone{}, err
	}
	return r.armature.EditBone(name)
}

// editBones は名前順に編集ビューのボーンを返す。
func (r *boneRepository) editBones(names []string) ([]model.EditBone, error) {
	bones := make([]model.EditBone, 0, len(names))
	for _, name := range names {
		bone, err := r.editBone(name)
		if err != nil {
			return nil, err
		}
		bones = append(bones, bone)
	}
	return bones, nil
}

// ensureBone は同名ボーンを作成または取得して名前を返す。
func (r *boneRepository) ensureBone(name string) (string, error) {
	if err := r.useEditView(); err != nil {
		return "", err
	}
	return r.armature.CreateOrUpdateBone(name)
}

// existsBone はボーンの存在を判定する。
func (r *boneRepository) existsBone(name string) bool {
	return r.armature.HasBone(name)
}

// placeBone はボーンを作成または取得して頭と尾を設定する。
func (r *boneRepository) placeBone(name string, head mmath.Vec3, tail mmath.Vec3) (string, error) {
	boneName, err := r.ensureBone(name)
	if err != nil {
		return "", err
	}
	if err := r.armature.SetBoneSpan(boneName, head, tail); err != nil {
		return "", err
	}
	return boneName, nil
}

// setSpan は既存ボーンの頭と尾を設定する。
func (r *boneRepository) setSpan(name string, head mmath.Vec3, tail mmath.Vec3) error {
	if err := r.useEditView(); err != nil {
		return err
	}
	return r.armature.SetBoneSpan(name, head, tail)
}

// setRoll は既存ボーンのロールを設定する。
func (r *boneRepository) setRoll(name string, roll float64) error {
	if err := r.useEditView(); err != nil {
		return err
	}
	return r.armature.SetBoneRoll(name, roll)
}

// reparentBone はボーンの親と接続フラグを設定する。
func (r *boneRepository) reparentBone(child string, parent string, connect bool) error {
	if err := r.useEditView(); err != nil {
		return err
	}
	return r.armature.SetBoneParent(child, parent, connect)
}

// setConnect は接続フラグを設定する。
func (r *boneRepository) setConnect(name string, connect bool) error {
	if err := r.useEditView(); err != nil {
		return err
	}
	return r.armature.SetBoneConnect(name, connect)
}

// setDeform は変形フラグを設定する。
func (r *boneRepository) setDeform(name string, deform bool) error {
	if err := r.useEditView(); err != nil {
		return err
	}
	return r.armature.SetBoneDeform(name, deform)
}

// moveToLayer はボーンを名前付きレイヤーへ移動してレイヤー番号を返す。
func (r *boneRepository) moveToLayer(names []string, layerName string) (int, error) {
	if err := r.useEditView(); err != nil {
		return -1, err
	}
	layer, ok := r.armature.AssignLayerName(layerName)
	if !ok {
		return -1, merrors.New(merrors.KindInvalidLayer, "空きレイヤーがありません: %s", layerName)
	}
	for _, name := range names {
		if err := r.armature.SetBoneLayers(name, []int{layer}); err != nil {
			return -1, err
		}
	}
	return layer, nil
}

// appendConstraint はポーズボーンへ同一アーマチュアを対象とするコンストレイントを追加する。
func (r *boneRepository) appendConstraint(owner string, constraint model.Constraint) error {
	if err := r.usePoseView(); err != nil {
		return err
	}
	if constraint.TargetArmature == "" {
		constraint.TargetArmature = r.armature.Name()
	}
	if _, err := r.armature.AppendConstraint(owner, constraint); err != nil {
		return err
	}
	r.constraintCount++
	return nil
}

// clearConstraints はポーズボーンのコンストレイントを全て削除する。
func (r *boneRepository) clearConstraints(owner string) (int, error) {
	if err := r.usePoseView(); err != nil {
		return 0, err
	}
	return r.armature.ClearConstraints(owner)
}

// requireBones は全ボーンの存在を検証する。
func (r *boneRepository) requireBones(names []string) error {
	for _, name := range names {
		if !r.existsBone(name) {
			return merrors.New(merrors.KindMissingBone, "ボーンが存在しません: armature=%s bone=%s", r.armature.Name(), name)
		}
	}
	return nil
}

// uniqueNames は重複と空文字を除いた名前一覧を順序を保って返す。
func uniqueNames(names []string) []string {
	unique := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" || slices.Contains(unique, name) {
			continue
		}
		unique = append(unique, name)
	}
	return unique
}

// stripGeneratedBones は再実行時にチェーンへ混入した生成済み制御ボーンを除外する。
func (uc *RigUsecase) stripGeneratedBones(chain []string) []string {
	stripped := make([]string, 0, len(chain))
	for _, name := range chain {
		if uc.namer.IsGeneratedName(name) {
			logRigDebug("生成済みボーンをチェーンから除外: %s", name)
			continue
		}
		stripped = append(stripped, name)
	}
	return stripped
}

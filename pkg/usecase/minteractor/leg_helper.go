// 指示: miu200521358
package minteractor

import (
	"fmt"

	"github.com/miu200521358/mu_rigtools/pkg/domain/mmath"
	"github.com/miu200521358/mu_rigtools/pkg/domain/model"
	"github.com/miu200521358/mu_rigtools/pkg/domain/model/merrors"
)

const (
	// toeHelperOvershoot はつま先ヘルパーをつま先の先へ伸ばす長さ。
	toeHelperOvershoot = 0.05
	legBoneCount       = 4
	legEndpointCount   = 2
)

// legBones は脚ヘルパーの元になる4ボーンを表す。
type legBones struct {
	Upper model.EditBone
	Lower model.EditBone
	Foot  model.EditBone
	Toes  model.EditBone
}

// legHelpers は脚ヘルパーの名前を表す。
type legHelpers struct {
	Upper string
	Lower string
	Foot  string
}

// CreateLegHelper は獣脚用に平行四辺形を成すヘルパーボーンを作成する。
// 2本選択時は両端を結ぶチェーン、4本選択時は選択順を太もも・すね・足首・つま先として扱う。
// 作成したヘルパー名を太もも・すね・足首の順で返す。
func (uc *RigUsecase) CreateLegHelper(armature Armature, selected []string) ([]string, error) {
	selected = uniqueNames(selected)
	if len(selected) != legEndpointCount && len(selected) != legBoneCount {
		return nil, merrors.New(merrors.KindInvalidSelectionCount, "脚ヘルパーには2本または4本のボーンを選択してください: selected=%d", len(selected))
	}
	uc.reportProgress(RigProgressEvent{Type: RigProgressEventTypeStarted, Procedure: ProcedureKindLegHelper, BoneCount: len(selected)})

	repo := newBoneRepository(armature)
	names, err := resolveLegBoneNames(repo, selected)
	if err != nil {
		return nil, err
	}
	uc.reportProgress(RigProgressEvent{Type: RigProgressEventTypeChainResolved, Procedure: ProcedureKindLegHelper, ChainLength: len(names)})

	bones, err := flattenLegBones(repo, names)
	if err != nil {
		return nil, fmt.Errorf("脚ヘルパー作成に失敗しました: %w", err)
	}
	helpers, err := uc.placeLegHelpers(repo, bones)
	if err != nil {
		return nil, fmt.Errorf("脚ヘルパー作成に失敗しました: %w", err)
	}
	if err := wireLegHelperParents(repo, bones, helpers); err != nil {
		return nil, fmt.Errorf("脚ヘルパー作成に失敗しました: %w", err)
	}
	touched := []string{helpers.Upper, helpers.Lower, helpers.Foot}
	if err := uc.moveControlsToLayer(repo, touched); err != nil {
		return nil, fmt.Errorf("脚ヘルパー作成に失敗しました: %w", err)
	}
	uc.reportProgress(RigProgressEvent{Type: RigProgressEventTypeTopologyCommitted, Procedure: ProcedureKindLegHelper, BoneCount: len(touched)})

	if err := declareLegHelperConstraints(repo, armature.Name(), bones, helpers); err != nil {
		return nil, fmt.Errorf("脚ヘルパー作成に失敗しました: %w", err)
	}
	uc.reportProgress(RigProgressEvent{Type: RigProgressEventTypeConstraintsDeclared, Procedure: ProcedureKindLegHelper, ConstraintCount: repo.constraintCount})

	if err := repo.useEditView(); err != nil {
		return nil, err
	}
	logRigInfo("脚ヘルパー作成完了: armature=%s helpers=%v", armature.Name(), touched)
	uc.reportProgress(RigProgressEvent{Type: RigProgressEventTypeCompleted, Procedure: ProcedureKindLegHelper, BoneCount: len(touched)})
	return touched, nil
}

// resolveLegBoneNames は選択から太もも・すね・足首・つま先の4ボーン名を決める。
func resolveLegBoneNames(repo *boneRepository, selected []string) ([]string, error) {
	if len(selected) == legBoneCount {
		if err := repo.requireBones(selected); err != nil {
			return nil, fmt.Errorf("脚ヘルパー作成に失敗しました: %w", err)
		}
		return selected, nil
	}
	chain, err := repo.resolveChain(selected[0], selected[1])
	if err != nil {
		return nil, fmt.Errorf("脚の両端を結ぶ経路がありません: %w", err)
	}
	if len(chain) != legBoneCount {
		return nil, merrors.New(merrors.KindInvalidSelectionCount, "脚のチェーンは4本である必要があります: chain=%v", chain)
	}
	return chain, nil
}

// flattenLegBones は太もも・すね先端が張る平面へ4ボーンを射影し、足首を太ももと平行にする。
func flattenLegBones(repo *boneRepository, names []string) (legBones, error) {
	edits, err := repo.editBones(names)
	if err != nil {
		return legBones{}, err
	}
	upper := edits[0]
	plane, err := mmath.NewPlane(upper.Head, upper.Tail, edits[1].Tail)
	if err != nil {
		return legBones{}, err
	}
	for i := range edits {
		edits[i].Head = plane.Project(edits[i].Head)
		edits[i].Tail = plane.Project(edits[i].Tail)
	}

	bones := legBones{Upper: edits[0], Lower: edits[1], Foot: edits[2], Toes: edits[3]}
	upperDir := bones.Upper.Direction()
	bones.Foot.Tail = bones.Foot.Head.Added(upperDir.MuledScalar(bones.Foot.Length()))
	if bones.Toes.UseConnect && bones.Toes.Parent == bones.Foot.Name {
		bones.Toes.Head = bones.Foot.Tail
	}
	if bones.Toes.Length() <= mmath.Epsilon {
		return legBones{}, merrors.New(merrors.KindDegenerateGeometry, "つま先ボーンの長さが0です: %s", bones.Toes.Name)
	}

	for _, bone := range []model.EditBone{bones.Upper, bones.Lower, bones.Foot, bones.Toes} {
		if err := repo.setSpan(bone.Name, bone.Head, bone.Tail); err != nil {
			return legBones{}, err
		}
	}
	logRigDebug("脚ボーンを平面へ射影: normal=%v", plane.Normal)

	// 接続された子の頭が追従するため書き戻した値を読み直す。
	edits, err = repo.editBones(names)
	if err != nil {
		return legBones{}, err
	}
	return legBones{Upper: edits[0], Lower: edits[1], Foot: edits[2], Toes: edits[3]}, nil
}

// placeLegHelpers は平行四辺形を閉じる3本のヘルパーボーンを配置する。
func (uc *RigUsecase) placeLegHelpers(repo *boneRepository, bones legBones) (legHelpers, error) {
	helpers := legHelpers{
		Upper: uc.namer.DeriveName(model.GENERATED_HELPER, bones.Upper.Name),
		Lower: uc.namer.DeriveName(model.GENERATED_HELPER, bones.Lower.Name),
		Foot:  uc.namer.DeriveName(model.GENERATED_HELPER, bones.Foot.Name),
	}
	upperDir := bones.Upper.Direction()
	upperHelperTail := bones.Upper.Tail.Added(upperDir.MuledScalar(bones.Foot.Length()))
	toesTail := bones.Toes.Tail.Added(bones.Toes.Direction().MuledScalar(toeHelperOvershoot))

	if _, err := repo.placeBone(helpers.Upper, bones.Upper.Head, upperHelperTail); err != nil {
		return legHelpers{}, err
	}
	if _, err := repo.placeBone(helpers.Lower, upperHelperTail, bones.Foot.Tail); err != nil {
		return legHelpers{}, err
	}
	if _, err := repo.placeBone(helpers.Foot, bones.Toes.Head, toesTail); err != nil {
		return legHelpers{}, err
	}
	for _, name := range []string{helpers.Upper, helpers.Lower, helpers.Foot} {
		if err := repo.setDeform(name, false); err != nil {
			return legHelpers{}, err
		}
	}
	return helpers, nil
}

// wireLegHelperParents はヘルパーの親子関係を設定する。
// 太ももヘルパーは太ももの元の親と接続フラグを引き継ぐ。
func wireLegHelperParents(repo *boneRepository, bones legBones, helpers legHelpers) error {
	if err := repo.reparentBone(helpers.Upper, bones.Upper.Parent, bones.Upper.UseConnect); err != nil {
		return err
	}
	if err := repo.reparentBone(helpers.Lower, helpers.Upper, false); err != nil {
		return err
	}
	return repo.reparentBone(helpers.Foot, helpers.Lower, true)
}

// declareLegHelperConstraints は脚ボーンがヘルパーへ追従するコンストレイントを付与する。
// 足首は太ももヘルパーの回転をコピーして接地を保つ。
func declareLegHelperConstraints(repo *boneRepository, armatureName string, bones legBones, helpers legHelpers) error {
	declarations := []struct {
		owner      string
		constraint model.Constraint
	}{
		{bones.Upper.Name, model.NewConstraint(model.CONSTRAINT_COPY_ROTATION, armatureName, helpers.Upper)},
		{bones.Lower.Name, model.NewConstraint(model.CONSTRAINT_COPY_ROTATION, armatureName, helpers.Lower)},
		{bones.Foot.Name, model.NewConstraint(model.CONSTRAINT_COPY_ROTATION, armatureName, helpers.Upper)},
		{bones.Toes.Name, model.NewConstraint(model.CONSTRAINT_CHILD_OF, armatureName, helpers.Foot)},
	}
	for _, declaration := range declarations {
		if err := repo.appendConstraint(declaration.owner, declaration.constraint); err != nil {
			return err
		}
	}
	return nil
}

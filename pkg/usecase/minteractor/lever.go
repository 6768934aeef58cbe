// 指示: miu200521358
package minteractor

import (
	"errors"
	"fmt"

	"github.com/miu200521358/mu_rigtools/pkg/domain/mmath"
	"github.com/miu200521358/mu_rigtools/pkg/domain/model"
	"github.com/miu200521358/mu_rigtools/pkg/domain/model/merrors"
)

const (
	// leverRootControlLength はルート制御ボーンの長さ。
	leverRootControlLength = 1.0
	leverMinimumSelection  = 2
)

// leverControls はレバー機構の制御ボーン名を表す。
type leverControls struct {
	Root   string
	Bottom string
	Top    string
}

// CreateLeverMechanism は選択の先頭と末尾を結ぶチェーンにレバー機構を作成する。
// 上ピボットを回すとチェーン2本目以降がローカル回転をコピーする。
// 上ピボット・下ピボット・ルート制御の順で名前を返す。
func (uc *RigUsecase) CreateLeverMechanism(armature Armature, selected []string) ([]string, error) {
	selected = uniqueNames(selected)
	if len(selected) < leverMinimumSelection {
		return nil, merrors.New(merrors.KindSelection, "先頭と末尾のボーンを選択してください: selected=%d", len(selected))
	}
	uc.reportProgress(RigProgressEvent{Type: RigProgressEventTypeStarted, Procedure: ProcedureKindLeverMechanism, BoneCount: len(selected)})

	repo := newBoneRepository(armature)
	chain, err := repo.resolveChain(selected[0], selected[len(selected)-1])
	if err != nil {
		return nil, fmt.Errorf("先頭と末尾のボーンを結ぶ経路がありません: %w", err)
	}
	chain = uc.stripGeneratedBones(chain)
	if len(chain) < leverMinimumSelection {
		return nil, merrors.New(merrors.KindInvalidSelectionCount, "レバー機構には2本以上のチェーンが必要です: chain=%v", chain)
	}
	uc.reportProgress(RigProgressEvent{Type: RigProgressEventTypeChainResolved, Procedure: ProcedureKindLeverMechanism, ChainLength: len(chain)})

	controls, err := uc.placeLeverControls(repo, chain)
	if err != nil {
		return nil, fmt.Errorf("レバー機構作成に失敗しました: %w", err)
	}
	if err := wireLeverParents(repo, chain, controls); err != nil {
		return nil, fmt.Errorf("レバー機構作成に失敗しました: %w", err)
	}
	names := []string{controls.Top, controls.Bottom, controls.Root}
	if err := uc.moveControlsToLayer(repo, names); err != nil {
		return nil, fmt.Errorf("レバー機構作成に失敗しました: %w", err)
	}
	uc.reportProgress(RigProgressEvent{Type: RigProgressEventTypeTopologyCommitted, Procedure: ProcedureKindLeverMechanism, BoneCount: len(names)})

	for _, boneName := range chain[1:] {
		constraint := model.NewConstraint(model.CONSTRAINT_COPY_ROTATION, armature.Name(), controls.Top).
			WithSpaces(model.SPACE_LOCAL, model.SPACE_LOCAL)
		if err := repo.appendConstraint(boneName, constraint); err != nil {
			return nil, fmt.Errorf("レバー機構作成に失敗しました: %w", err)
		}
	}
	uc.reportProgress(RigProgressEvent{Type: RigProgressEventTypeConstraintsDeclared, Procedure: ProcedureKindLeverMechanism, ConstraintCount: repo.constraintCount})

	if err := repo.useEditView(); err != nil {
		return nil, err
	}
	logRigInfo("レバー機構作成完了: armature=%s chain=%v", armature.Name(), chain)
	uc.reportProgress(RigProgressEvent{Type: RigProgressEventTypeCompleted, Procedure: ProcedureKindLeverMechanism, BoneCount: len(names)})
	return names, nil
}

// placeLeverControls はチェーン先頭の尾を起点に3本の制御ボーンを配置する。
func (uc *RigUsecase) placeLeverControls(repo *boneRepository, chain []string) (leverControls, error) {
	first, err := repo.editBone(chain[0])
	if err != nil {
		return leverControls{}, err
	}
	last, err := repo.editBone(chain[len(chain)-1])
	if err != nil {
		return leverControls{}, err
	}

	bitangent := leverBitangent(first, last)
	controls := leverControls{
		Root:   uc.namer.DeriveName(model.GENERATED_LEVER_ROOT, first.Name),
		Bottom: uc.namer.DeriveName(model.GENERATED_LEVER_PIVOT, first.Name),
		Top:    uc.namer.DeriveName(model.GENERATED_LEVER_PIVOT, last.Name),
	}

	if _, err := repo.placeBone(controls.Root, first.Tail, first.Tail.Added(bitangent.MuledScalar(leverRootControlLength))); err != nil {
		return leverControls{}, err
	}
	if _, err := repo.placeBone(controls.Bottom, first.Tail, first.Head); err != nil {
		return leverControls{}, err
	}
	if _, err := repo.placeBone(controls.Top, first.Tail, last.Tail); err != nil {
		return leverControls{}, err
	}
	for _, name := range []string{controls.Root, controls.Bottom, controls.Top} {
		if err := repo.setDeform(name, false); err != nil {
			return leverControls{}, err
		}
	}
	return controls, nil
}

// leverBitangent はルート制御ボーンの向きを求める。
// チェーンが直線で軸が求まらない場合は上ピボット方向と直交する向きを使う。
func leverBitangent(first model.EditBone, last model.EditBone) mmath.Vec3 {
	_, _, bitangent, err := mmath.AxisFrame(first.Tail, first.Head, last.Tail)
	if err == nil {
		return bitangent
	}
	if !errors.Is(err, merrors.ErrDegenerateGeometry) {
		logRigWarn("レバー軸算出に失敗しました: %v", err)
	}
	fallback := mmath.PerpendicularOf(last.Tail.Subed(first.Tail))
	logRigWarn("チェーンが直線のためルート制御の向きを直交軸で代用します: first=%s last=%s axis=%v", first.Name, last.Name, fallback)
	return fallback
}

// wireLeverParents はレバー機構の親子関係を設定する。全て非接続。
func wireLeverParents(repo *boneRepository, chain []string, controls leverControls) error {
	if err := repo.reparentBone(controls.Top, controls.Root, false); err != nil {
		return err
	}
	if err := repo.reparentBone(controls.Bottom, controls.Root, false); err != nil {
		return err
	}
	if err := repo.reparentBone(chain[0], controls.Bottom, false); err != nil {
		return err
	}
	return repo.reparentBone(chain[1], controls.Root, false)
}

// moveControlsToLayer は設定がある場合に制御ボーンを制御レイヤーへ移動する。
func (uc *RigUsecase) moveControlsToLayer(repo *boneRepository, names []string) error {
	if uc.controlLayerName == "" || len(names) == 0 {
		return nil
	}
	layer, err := repo.moveToLayer(names, uc.controlLayerName)
	if err != nil {
		return err
	}
	logRigDebug("制御ボーンをレイヤーへ移動: layer=%d name=%s bones=%v", layer, uc.controlLayerName, names)
	return nil
}

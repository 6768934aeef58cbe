// 指示: miu200521358
package minteractor

import (
	"fmt"
	"slices"

	"github.com/miu200521358/mu_rigtools/pkg/domain/mmath"
	"github.com/miu200521358/mu_rigtools/pkg/domain/model"
	"github.com/miu200521358/mu_rigtools/pkg/domain/model/merrors"
)

const (
	// tailControlScale は制御ボーンの尾を置く元ボーン上の比率。
	tailControlScale = 0.5
	// tailTerminalScale は終端制御ボーンの長さの元ボーン長に対する比率。
	tailTerminalScale    = 0.5
	tailMinimumSelection = 2
)

// tailPair は元ボーンと対応する制御ボーンを表す。終端制御ボーンは Bone が空。
type tailPair struct {
	Bone    string
	Control string
}

// CreateTailMechanism は選択の先頭と末尾を結ぶチェーンにテール制御を作成する。
// 各ボーンは次の制御ボーンへ回転追従する。
// 元ボーンと制御ボーンを組ごとの順で返す。
func (uc *RigUsecase) CreateTailMechanism(armature Armature, selected []string) ([]string, error) {
	selected = uniqueNames(selected)
	if len(selected) < tailMinimumSelection {
		return nil, merrors.New(merrors.KindSelection, "先頭と末尾のボーンを選択してください: selected=%d", len(selected))
	}
	uc.reportProgress(RigProgressEvent{Type: RigProgressEventTypeStarted, Procedure: ProcedureKindTailMechanism, BoneCount: len(selected)})

	repo := newBoneRepository(armature)
	chain, err := repo.resolveChain(selected[0], selected[len(selected)-1])
	if err != nil {
		return nil, fmt.Errorf("先頭と末尾のボーンを結ぶ経路がありません: %w", err)
	}
	chain = uc.stripGeneratedBones(chain)
	if len(chain) < tailMinimumSelection {
		return nil, merrors.New(merrors.KindInvalidSelectionCount, "テール制御には2本以上のチェーンが必要です: chain=%v", chain)
	}
	uc.reportProgress(RigProgressEvent{Type: RigProgressEventTypeChainResolved, Procedure: ProcedureKindTailMechanism, ChainLength: len(chain)})

	pairs, err := uc.placeTailControls(repo, chain)
	if err != nil {
		return nil, fmt.Errorf("テール制御作成に失敗しました: %w", err)
	}
	anchor, err := uc.tailAnchorParent(repo, chain, pairs)
	if err != nil {
		return nil, fmt.Errorf("テール制御作成に失敗しました: %w", err)
	}
	if err := wireTailParents(repo, pairs, anchor); err != nil {
		return nil, fmt.Errorf("テール制御作成に失敗しました: %w", err)
	}

	names := make([]string, 0, len(pairs)*2)
	controls := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		if pair.Bone != "" {
			names = append(names, pair.Bone)
		}
		names = append(names, pair.Control)
		controls = append(controls, pair.Control)
	}
	if err := uc.moveControlsToLayer(repo, controls); err != nil {
		return nil, fmt.Errorf("テール制御作成に失敗しました: %w", err)
	}
	uc.reportProgress(RigProgressEvent{Type: RigProgressEventTypeTopologyCommitted, Procedure: ProcedureKindTailMechanism, BoneCount: len(controls)})

	for i := 0; i < len(pairs)-1; i++ {
		if err := declareTailConstraints(repo, armature.Name(), pairs[i].Bone, pairs[i+1].Control); err != nil {
			return nil, fmt.Errorf("テール制御作成に失敗しました: %w", err)
		}
	}
	uc.reportProgress(RigProgressEvent{Type: RigProgressEventTypeConstraintsDeclared, Procedure: ProcedureKindTailMechanism, ConstraintCount: repo.constraintCount})

	if err := repo.useEditView(); err != nil {
		return nil, err
	}
	logRigInfo("テール制御作成完了: armature=%s chain=%v", armature.Name(), chain)
	uc.reportProgress(RigProgressEvent{Type: RigProgressEventTypeCompleted, Procedure: ProcedureKindTailMechanism, BoneCount: len(names)})
	return names, nil
}

// placeTailControls はチェーン各ボーンの制御ボーンと終端制御ボーンを配置する。
// 元ボーンは接続を外す。
func (uc *RigUsecase) placeTailControls(repo *boneRepository, chain []string) ([]tailPair, error) {
	bones, err := repo.editBones(chain)
	if err != nil {
		return nil, err
	}
	last := bones[len(bones)-1]
	if last.Length() <= mmath.Epsilon {
		return nil, merrors.New(merrors.KindDegenerateGeometry, "末尾ボーンの長さが0のため終端制御ボーンを作成できません: %s", last.Name)
	}
	pairs := make([]tailPair, 0, len(bones)+1)
	for _, bone := range bones {
		if err := repo.setConnect(bone.Name, false); err != nil {
			return nil, err
		}
		controlName := uc.namer.DeriveName(model.GENERATED_CONTROL, bone.Name)
		if _, err := repo.placeBone(controlName, bone.Head, bone.Head.Lerp(bone.Tail, tailControlScale)); err != nil {
			return nil, err
		}
		if err := repo.setDeform(controlName, false); err != nil {
			return nil, err
		}
		pairs = append(pairs, tailPair{Bone: bone.Name, Control: controlName})
	}

	endName := uc.namer.DeriveName(model.GENERATED_CONTROL_END, last.Name)
	endTail := last.Tail.Added(last.Direction().MuledScalar(last.Length() * tailTerminalScale))
	if _, err := repo.placeBone(endName, last.Tail, endTail); err != nil {
		return nil, err
	}
	if err := repo.setDeform(endName, false); err != nil {
		return nil, err
	}
	return append(pairs, tailPair{Control: endName}), nil
}

// tailAnchorParent は先頭制御ボーンの親を決める。
// 再実行時は既存制御ボーンをたどり、チェーン内のボーンは親にしない。
func (uc *RigUsecase) tailAnchorParent(repo *boneRepository, chain []string, pairs []tailPair) (string, error) {
	first, err := repo.editBone(chain[0])
	if err != nil {
		return "", err
	}
	parent := first.Parent
	for parent != "" && slices.ContainsFunc(pairs, func(pair tailPair) bool { return pair.Control == parent }) {
		control, err := repo.editBone(parent)
		if err != nil {
			return "", err
		}
		parent = control.Parent
	}
	if slices.Contains(chain, parent) {
		logRigWarn("先頭ボーンの親がチェーン内にあるため制御ボーンを親無しにします: first=%s parent=%s", first.Name, parent)
		return "", nil
	}
	return parent, nil
}

// wireTailParents は制御ボーン同士を数珠つなぎにし、各ボーンを対応する制御ボーンの子にする。全て非接続。
func wireTailParents(repo *boneRepository, pairs []tailPair, anchor string) error {
	parent := anchor
	for _, pair := range pairs {
		if err := repo.reparentBone(pair.Control, parent, false); err != nil {
			return err
		}
		parent = pair.Control
	}
	for _, pair := range pairs {
		if pair.Bone == "" {
			continue
		}
		if err := repo.reparentBone(pair.Bone, pair.Control, false); err != nil {
			return err
		}
	}
	return nil
}

// declareTailConstraints はボーンへ次の制御ボーンを対象とする追従コンストレイントを付与する。
// STRETCH_TO は無効状態で付与する。
func declareTailConstraints(repo *boneRepository, armatureName string, owner string, target string) error {
	constraints := []model.Constraint{
		model.NewConstraint(model.CONSTRAINT_COPY_ROTATION, armatureName, target),
		model.NewConstraint(model.CONSTRAINT_DAMPED_TRACK, armatureName, target),
		model.NewConstraint(model.CONSTRAINT_STRETCH_TO, armatureName, target).Disabled(),
	}
	for _, constraint := range constraints {
		if err := repo.appendConstraint(owner, constraint); err != nil {
			return err
		}
	}
	return nil
}

// 指示: miu200521358
package minteractor

import (
	"fmt"

	"github.com/miu200521358/mu_rigtools/pkg/domain/model"
)

// targetMapping は元ボーンとターゲットボーンの対応を表す。
type targetMapping struct {
	SourceName     string
	TargetName     string
	TransferDeform bool
}

// CreateTargetArmature は選択ボーンごとにターゲットボーンを作成し、
// 元ボーンがターゲットの動きに追従するようコンストレイントを付与する。
// 処理した元ボーン名を返す。空入力は何もしない。
func (uc *RigUsecase) CreateTargetArmature(armature Armature, selected []string) ([]string, error) {
	sources := uc.filterTargetSources(uniqueNames(selected))
	if len(sources) == 0 {
		return []string{}, nil
	}
	uc.reportProgress(RigProgressEvent{Type: RigProgressEventTypeStarted, Procedure: ProcedureKindTargetArmature, BoneCount: len(sources)})

	repo := newBoneRepository(armature)
	if err := repo.requireBones(sources); err != nil {
		return nil, fmt.Errorf("ターゲットアーマチュア作成に失敗しました: %w", err)
	}

	mappings, err := uc.placeTargetBones(repo, sources)
	if err != nil {
		return nil, fmt.Errorf("ターゲットアーマチュア作成に失敗しました: %w", err)
	}
	if err := applyTargetParents(repo, mappings); err != nil {
		return nil, fmt.Errorf("ターゲットアーマチュア作成に失敗しました: %w", err)
	}
	uc.reportProgress(RigProgressEvent{Type: RigProgressEventTypeTopologyCommitted, Procedure: ProcedureKindTargetArmature, BoneCount: len(mappings)})

	for _, mapping := range mappings {
		constraint := model.NewConstraint(model.CONSTRAINT_COPY_TRANSFORMS, armature.Name(), mapping.TargetName)
		if err := repo.appendConstraint(mapping.SourceName, constraint); err != nil {
			return nil, fmt.Errorf("ターゲットアーマチュア作成に失敗しました: %w", err)
		}
	}
	uc.reportProgress(RigProgressEvent{Type: RigProgressEventTypeConstraintsDeclared, Procedure: ProcedureKindTargetArmature, ConstraintCount: repo.constraintCount})

	if err := repo.useEditView(); err != nil {
		return nil, err
	}

	touched := make([]string, 0, len(mappings))
	for _, mapping := range mappings {
		touched = append(touched, mapping.SourceName)
	}
	logRigInfo("ターゲットアーマチュア作成完了: armature=%s bones=%d", armature.Name(), len(touched))
	uc.reportProgress(RigProgressEvent{Type: RigProgressEventTypeCompleted, Procedure: ProcedureKindTargetArmature, BoneCount: len(touched)})
	return touched, nil
}

// filterTargetSources はターゲット接頭辞付きのボーンを除外する。
func (uc *RigUsecase) filterTargetSources(names []string) []string {
	sources := make([]string, 0, len(names))
	for _, name := range names {
		if uc.namer.IsTargetName(name) {
			logRigDebug("ターゲットボーンは元ボーンとして扱いません: %s", name)
			continue
		}
		sources = append(sources, name)
	}
	return sources
}

// placeTargetBones はターゲットボーンへ頭・尾・ロールを写し、元ボーンの変形を外す。
func (uc *RigUsecase) placeTargetBones(repo *boneRepository, sources []string) ([]targetMapping, error) {
	mappings := make([]targetMapping, 0, len(sources))
	for _, sourceName := range sources {
		source, err := repo.editBone(sourceName)
		if err != nil {
			return nil, err
		}
		targetName := uc.namer.DeriveName(model.GENERATED_TARGET, sourceName)
		transferDeform := source.UseDeform
		if repo.existsBone(targetName) {
			existing, err := repo.editBone(targetName)
			if err != nil {
				return nil, err
			}
			transferDeform = transferDeform || existing.UseDeform
		}

		if _, err := repo.placeBone(targetName, source.Head, source.Tail); err != nil {
			return nil, err
		}
		if err := repo.setRoll(targetName, source.Roll); err != nil {
			return nil, err
		}
		if err := repo.setDeform(sourceName, false); err != nil {
			return nil, err
		}
		mappings = append(mappings, targetMapping{
			SourceName:     sourceName,
			TargetName:     targetName,
			TransferDeform: transferDeform,
		})
		logRigDebug("ターゲットボーン配置: %s -> %s", sourceName, targetName)
	}
	return mappings, nil
}

// applyTargetParents は元ボーンの親が対応表にある場合、ターゲット同士を同じ親子関係にする。
func applyTargetParents(repo *boneRepository, mappings []targetMapping) error {
	targetBySource := make(map[string]string, len(mappings))
	for _, mapping := range mappings {
		targetBySource[mapping.SourceName] = mapping.TargetName
	}
	for _, mapping := range mappings {
		source, err := repo.editBone(mapping.SourceName)
		if err != nil {
			return err
		}
		parentTarget, mapped := targetBySource[source.Parent]
		if !source.HasParent() || !mapped {
			continue
		}
		if err := repo.reparentBone(mapping.TargetName, parentTarget, source.UseConnect); err != nil {
			return err
		}
		if err := repo.setDeform(mapping.TargetName, mapping.TransferDeform); err != nil {
			return err
		}
		logRigDebug("ターゲット親子設定: %s -> %s", mapping.TargetName, parentTarget)
	}
	return nil
}

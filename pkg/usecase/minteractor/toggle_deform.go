// 指示: miu200521358
package minteractor

import "fmt"

// ToggleDeformation は選択ボーンの変形フラグを反転し、処理したボーン名を返す。
func (uc *RigUsecase) ToggleDeformation(armature Armature, selected []string) ([]string, error) {
	selected = uniqueNames(selected)
	if len(selected) == 0 {
		return []string{}, nil
	}
	repo := newBoneRepository(armature)
	if err := repo.requireBones(selected); err != nil {
		return nil, fmt.Errorf("変形フラグ切替に失敗しました: %w", err)
	}
	uc.reportProgress(RigProgressEvent{Type: RigProgressEventTypeStarted, Procedure: ProcedureKindToggleDeformation, BoneCount: len(selected)})

	for _, name := range selected {
		bone, err := repo.editBone(name)
		if err != nil {
			return nil, err
		}
		if err := repo.setDeform(name, !bone.UseDeform); err != nil {
			return nil, err
		}
		logRigDebug("変形フラグ切替: %s %t -> %t", name, bone.UseDeform, !bone.UseDeform)
	}
	logRigInfo("変形フラグ切替完了: armature=%s bones=%d", armature.Name(), len(selected))
	uc.reportProgress(RigProgressEvent{Type: RigProgressEventTypeCompleted, Procedure: ProcedureKindToggleDeformation, BoneCount: len(selected)})
	return selected, nil
}

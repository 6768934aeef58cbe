// 指示: miu200521358
package minteractor

// ClearConstraints は選択したポーズボーンのコンストレイントを全て削除する。
// 存在しないボーンは Missing に数え、処理を続ける。
func (uc *RigUsecase) ClearConstraints(armature Armature, selected []string) (ClearConstraintsResult, error) {
	selected = uniqueNames(selected)
	result := ClearConstraintsResult{Cleared: []string{}, Missing: []string{}}
	if len(selected) == 0 {
		return result, nil
	}
	uc.reportProgress(RigProgressEvent{Type: RigProgressEventTypeStarted, Procedure: ProcedureKindClearConstraints, BoneCount: len(selected)})

	repo := newBoneRepository(armature)
	for _, name := range selected {
		if !repo.existsBone(name) {
			result.Missing = append(result.Missing, name)
			continue
		}
		removed, err := repo.clearConstraints(name)
		if err != nil {
			return result, err
		}
		result.Removed += removed
		result.Cleared = append(result.Cleared, name)
	}
	if err := repo.useEditView(); err != nil {
		return result, err
	}
	logRigInfo("コンストレイント削除完了: armature=%s bones=%d removed=%d missing=%d",
		armature.Name(), len(result.Cleared), result.Removed, len(result.Missing))
	uc.reportProgress(RigProgressEvent{Type: RigProgressEventTypeCompleted, Procedure: ProcedureKindClearConstraints, BoneCount: len(result.Cleared)})
	return result, nil
}

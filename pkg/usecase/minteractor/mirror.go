// 指示: miu200521358
package minteractor

import (
	"slices"
	"strings"
)

// mirrorSideSuffixes は左右対称ボーン名の接尾辞。
var mirrorSideSuffixes = []string{".L", ".R"}

// MirrorBones は選択ボーンの尾を頭を中心に反転する。
// 左右の対となるボーンはどちらか先に現れた一方のみ反転する。存在しないボーンは Missing に数える。
func (uc *RigUsecase) MirrorBones(armature Armature, selected []string) (MirrorResult, error) {
	selected = uniqueNames(selected)
	result := MirrorResult{Mirrored: []string{}, Skipped: []string{}, Missing: []string{}}
	if len(selected) == 0 {
		return result, nil
	}
	uc.reportProgress(RigProgressEvent{Type: RigProgressEventTypeStarted, Procedure: ProcedureKindMirrorBones, BoneCount: len(selected)})

	repo := newBoneRepository(armature)
	mirrored := make([]string, 0, len(selected))
	for _, name := range selected {
		if !repo.existsBone(name) {
			result.Missing = append(result.Missing, name)
			continue
		}
		stripped := stripMirrorSide(name)
		if slices.Contains(mirrored, stripped) {
			result.Skipped = append(result.Skipped, name)
			continue
		}
		bone, err := repo.editBone(name)
		if err != nil {
			return result, err
		}
		if err := repo.setSpan(name, bone.Head, bone.Head.Subed(bone.Vector())); err != nil {
			return result, err
		}
		mirrored = append(mirrored, stripped)
		result.Mirrored = append(result.Mirrored, name)
	}
	logRigInfo("ボーン反転完了: armature=%s mirrored=%d skipped=%d missing=%d",
		armature.Name(), len(result.Mirrored), len(result.Skipped), len(result.Missing))
	uc.reportProgress(RigProgressEvent{Type: RigProgressEventTypeCompleted, Procedure: ProcedureKindMirrorBones, BoneCount: len(result.Mirrored)})
	return result, nil
}

// stripMirrorSide はボーン名から左右の接尾辞を取り除く。
func stripMirrorSide(name string) string {
	for _, suffix := range mirrorSideSuffixes {
		name = strings.ReplaceAll(name, suffix, "")
	}
	return name
}

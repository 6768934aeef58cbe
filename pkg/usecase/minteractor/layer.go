// 指示: miu200521358
package minteractor

import (
	"fmt"
	"strings"

	"github.com/miu200521358/mu_rigtools/pkg/domain/model/merrors"
)

// MoveBonesToLayer はボーンを名前付きレイヤーへ移動し、そのレイヤー番号を返す。
// 同名レイヤーが無い場合は最初の空きレイヤーへ名前を割り当てる。
func (uc *RigUsecase) MoveBonesToLayer(armature Armature, names []string, layerName string) (int, error) {
	layerName = strings.TrimSpace(layerName)
	if layerName == "" {
		return -1, merrors.New(merrors.KindInvalidLayer, "レイヤー名が空です")
	}
	names = uniqueNames(names)
	repo := newBoneRepository(armature)
	if err := repo.requireBones(names); err != nil {
		return -1, fmt.Errorf("レイヤー移動に失敗しました: %w", err)
	}
	layer, err := repo.moveToLayer(names, layerName)
	if err != nil {
		return -1, fmt.Errorf("レイヤー移動に失敗しました: %w", err)
	}
	logRigInfo("レイヤー移動完了: armature=%s layer=%d name=%s bones=%d", armature.Name(), layer, layerName, len(names))
	return layer, nil
}

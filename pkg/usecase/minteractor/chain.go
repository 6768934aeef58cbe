// 指示: miu200521358
package minteractor

import (
	"fmt"

	"github.com/miu200521358/mu_rigtools/pkg/domain/model/merrors"
)

// ResolveChain は2ボーンを結ぶチェーンを浅い側から順に返す。アーマチュアは変更しない。
func (uc *RigUsecase) ResolveChain(armature Armature, first string, second string) ([]string, error) {
	if first == "" || second == "" {
		return nil, merrors.New(merrors.KindSelection, "チェーンの両端を指定してください: first=%q second=%q", first, second)
	}
	repo := newBoneRepository(armature)
	chain, err := repo.resolveChain(first, second)
	if err != nil {
		return nil, fmt.Errorf("チェーン解決に失敗しました: %w", err)
	}
	logRigDebug("チェーン解決: armature=%s chain=%v", armature.Name(), chain)
	return chain, nil
}

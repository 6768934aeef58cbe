// 指示: miu200521358
// Package mchain は2ボーン間のボーンチェーン解決を提供する。
package mchain

import (
	"slices"

	"github.com/miu200521358/mu_rigtools/pkg/domain/model"
	"github.com/miu200521358/mu_rigtools/pkg/domain/model/merrors"
)

// FindChain は2ボーンを共通祖先経由で結ぶボーン名の並びを返す。
// 浅い方のボーンから始まり、最下位共通祖先を1度だけ通って他方で終わる。
// 深さが同じ場合は引数順を保つ。
func FindChain(snapshot *model.Snapshot, first string, second string) ([]string, error) {
	if snapshot == nil {
		return nil, merrors.New(merrors.KindNoPathFound, "スナップショットがありません")
	}
	firstIndex, err := requireBone(snapshot, first, second)
	if err != nil {
		return nil, err
	}
	secondIndex, err := requireBone(snapshot, second, first)
	if err != nil {
		return nil, err
	}

	rootIndex := findRoot(snapshot, firstIndex)
	if rootIndex != findRoot(snapshot, secondIndex) {
		return nil, merrors.New(
			merrors.KindNoCommonRoot,
			"ボーン %s と %s は同じ親チェーンに属していません", first, second,
		)
	}

	firstPath, firstFound := findPath(snapshot, rootIndex, firstIndex)
	secondPath, secondFound := findPath(snapshot, rootIndex, secondIndex)
	if !firstFound || !secondFound {
		return nil, merrors.New(
			merrors.KindNoPathFound,
			"ボーン %s と %s を結ぶ経路が見つかりません", first, second,
		)
	}

	if len(firstPath) > len(secondPath) {
		firstPath, secondPath = secondPath, firstPath
	}

	shared := sharedPrefixLength(firstPath, secondPath)
	if shared == 0 {
		return nil, merrors.New(
			merrors.KindNoPathFound,
			"ボーン %s と %s の共通祖先が見つかりません", first, second,
		)
	}

	chainIndexes := make([]int, 0, len(firstPath)+len(secondPath)-2*shared+1)
	for i := len(firstPath) - 1; i >= shared; i-- {
		chainIndexes = append(chainIndexes, firstPath[i])
	}
	chainIndexes = append(chainIndexes, firstPath[shared-1])
	chainIndexes = append(chainIndexes, secondPath[shared:]...)

	chain := make([]string, 0, len(chainIndexes))
	for _, index := range chainIndexes {
		chain = append(chain, snapshot.NameAt(index))
	}
	return chain, nil
}

// requireBone はボーンのindexを返す。存在しない場合はMissingBoneを原因とするNoPathFoundを返す。
func requireBone(snapshot *model.Snapshot, name string, other string) (int, error) {
	index, exists := snapshot.IndexOf(name)
	if !exists {
		return -1, merrors.Wrap(
			merrors.KindNoPathFound,
			merrors.New(merrors.KindMissingBone, "ボーンが存在しません: %s", name),
			"ボーン %s と %s を結ぶ経路が見つかりません", name, other,
		)
	}
	return index, nil
}

// findRoot は親をたどって最上位ボーンのindexを返す。
func findRoot(snapshot *model.Snapshot, index int) int {
	current := index
	for steps := 0; steps < snapshot.Len(); steps++ {
		parent := snapshot.ParentIndex(current)
		if parent < 0 {
			return current
		}
		current = parent
	}
	return current
}

// findPath はルートから対象までのindex経路を深さ優先探索で求める。
// 経路スライスを探索スタックとして使い、戻るときに末尾を取り除く。
func findPath(snapshot *model.Snapshot, rootIndex int, targetIndex int) ([]int, bool) {
	path := make([]int, 0, 8)
	var visit func(index int) bool
	visit = func(index int) bool {
		path = append(path, index)
		if index == targetIndex {
			return true
		}
		for _, child := range snapshot.ChildIndexes(index) {
			if visit(child) {
				return true
			}
		}
		path = path[:len(path)-1]
		return false
	}
	if !visit(rootIndex) {
		return nil, false
	}
	return slices.Clip(path), true
}

// sharedPrefixLength は2経路の共通接頭部の長さを返す。
func sharedPrefixLength(a []int, b []int) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

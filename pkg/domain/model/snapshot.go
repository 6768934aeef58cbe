// 指示: miu200521358
package model

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"
)

// Snapshot はボーン集合の不変スナップショット。
// 親子関係は整数indexで保持し、チェーン解決はこれに対して行う。
type Snapshot struct {
	armatureName  string
	bones         []BoneRecord
	indexes       map[string]int
	parentIndexes []int
	children      [][]int
}

// newSnapshot はボーンレコードを深いコピーしてスナップショットを生成する。
func newSnapshot(armatureName string, records []BoneRecord) (*Snapshot, error) {
	bones := make([]BoneRecord, 0, len(records))
	if err := deepcopy.Copy(&bones, &records); err != nil {
		return nil, fmt.Errorf("スナップショットの複製に失敗しました: %w", err)
	}

	s := &Snapshot{
		armatureName:  armatureName,
		bones:         bones,
		indexes:       make(map[string]int, len(bones)),
		parentIndexes: make([]int, len(bones)),
		children:      make([][]int, len(bones)),
	}
	for index, bone := range bones {
		s.indexes[bone.Name] = index
	}
	for index, bone := range bones {
		s.parentIndexes[index] = -1
		if !bone.Rest.HasParent() {
			continue
		}
		parentIndex, exists := s.indexes[bone.Rest.Parent]
		if !exists {
			continue
		}
		s.parentIndexes[index] = parentIndex
		s.children[parentIndex] = append(s.children[parentIndex], index)
	}
	return s, nil
}

// NewSnapshotFromRecords はレコード一覧から直接スナップショットを生成する。
func NewSnapshotFromRecords(armatureName string, records []BoneRecord) (*Snapshot, error) {
	return newSnapshot(armatureName, records)
}

// ArmatureName は元アーマチュア名を返す。
func (s *Snapshot) ArmatureName() string {
	return s.armatureName
}

// Len はボーン数を返す。
func (s *Snapshot) Len() int {
	return len(s.bones)
}

// IndexOf はボーン名のindexを返す。
func (s *Snapshot) IndexOf(name string) (int, bool) {
	index, exists := s.indexes[name]
	return index, exists
}

// NameAt はindexのボーン名を返す。
func (s *Snapshot) NameAt(index int) string {
	return s.bones[index].Name
}

// ParentIndex は親indexを返す。親が無い場合は-1を返す。
func (s *Snapshot) ParentIndex(index int) int {
	return s.parentIndexes[index]
}

// ChildIndexes は子index一覧を登録順で返す。
func (s *Snapshot) ChildIndexes(index int) []int {
	return s.children[index]
}

// Bone は名前からボーンレコードを返す。
func (s *Snapshot) Bone(name string) (BoneRecord, bool) {
	index, exists := s.indexes[name]
	if !exists {
		return BoneRecord{}, false
	}
	return s.bones[index], true
}

// Records はレコード一覧のコピーを返す。
func (s *Snapshot) Records() ([]BoneRecord, error) {
	records := make([]BoneRecord, 0, len(s.bones))
	if err := deepcopy.Copy(&records, &s.bones); err != nil {
		return nil, fmt.Errorf("スナップショットの複製に失敗しました: %w", err)
	}
	return records, nil
}

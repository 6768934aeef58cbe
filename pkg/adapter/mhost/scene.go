// 指示: miu200521358
// Package mhost はリグ構築処理へアーマチュアと選択状態を提供するメモリ上のホストを提供する。
package mhost

import (
	"slices"

	"github.com/miu200521358/mu_rigtools/pkg/domain/model"
	"github.com/miu200521358/mu_rigtools/pkg/domain/model/merrors"
	"github.com/miu200521358/mu_rigtools/pkg/usecase/port/moutput"
)

var (
	_ moutput.IArmature = (*model.Armature)(nil)
	_ moutput.IRigHost  = (*Scene)(nil)
)

// Scene は複数アーマチュアとボーン選択状態を保持する。
type Scene struct {
	armatures  []*model.Armature
	active     string
	selections map[string][]string
}

// NewScene は空のシーンを生成する。
func NewScene() *Scene {
	return &Scene{selections: map[string][]string{}}
}

// AddArmature はアーマチュアを追加する。最初に追加したアーマチュアがアクティブになる。
func (s *Scene) AddArmature(armature *model.Armature) error {
	if armature == nil {
		return merrors.New(merrors.KindMissingArmature, "アーマチュアがnilです")
	}
	if s.findArmature(armature.Name()) != nil {
		return merrors.New(merrors.KindInvalidBoneName, "アーマチュア名が重複しています: %s", armature.Name())
	}
	s.armatures = append(s.armatures, armature)
	if s.active == "" {
		s.active = armature.Name()
	}
	return nil
}

// Armatures は追加順のアーマチュア一覧を返す。
func (s *Scene) Armatures() []*model.Armature {
	return slices.Clone(s.armatures)
}

// Armature は名前でアーマチュアを返す。
func (s *Scene) Armature(name string) (*model.Armature, bool) {
	armature := s.findArmature(name)
	return armature, armature != nil
}

// ActiveName はアクティブなアーマチュア名を返す。
func (s *Scene) ActiveName() string {
	return s.active
}

// SetActive はアクティブなアーマチュアを切り替える。
func (s *Scene) SetActive(name string) error {
	if s.findArmature(name) == nil {
		return merrors.New(merrors.KindMissingArmature, "アーマチュアが存在しません: %s", name)
	}
	s.active = name
	return nil
}

// ActiveArmature は名前指定、または空の場合はアクティブなアーマチュアを返す。
func (s *Scene) ActiveArmature(name string) (moutput.IArmature, error) {
	if name == "" {
		name = s.active
	}
	armature := s.findArmature(name)
	if armature == nil {
		return nil, merrors.New(merrors.KindMissingArmature, "アーマチュアが存在しません: %q", name)
	}
	return armature, nil
}

// SelectedBoneNames は選択中のボーン名を選択順で返す。
func (s *Scene) SelectedBoneNames(armature moutput.IArmature) []string {
	if armature == nil {
		return []string{}
	}
	return slices.Clone(s.selections[armature.Name()])
}

// SelectBones はボーンを選択状態にする。存在しないボーンは無視する。
func (s *Scene) SelectBones(armature moutput.IArmature, names []string, clearExisting bool) {
	if armature == nil {
		return
	}
	selection := s.selections[armature.Name()]
	if clearExisting {
		selection = nil
	}
	for _, name := range names {
		if !armature.HasBone(name) || slices.Contains(selection, name) {
			continue
		}
		selection = append(selection, name)
	}
	s.selections[armature.Name()] = selection
}

// findArmature は名前でアーマチュアを探す。
func (s *Scene) findArmature(name string) *model.Armature {
	for _, armature := range s.armatures {
		if armature.Name() == name {
			return armature
		}
	}
	return nil
}

// 指示: miu200521358
package model

import "strings"

// GeneratedBoneKind は生成ボーンの命名種別を表す。
type GeneratedBoneKind int

const (
	// GENERATED_TARGET はターゲットアーマチュアのボーン。
	GENERATED_TARGET GeneratedBoneKind = iota
	// GENERATED_CONTROL はテールチェーンの制御ボーン。
	GENERATED_CONTROL
	// GENERATED_CONTROL_END はテールチェーン終端の制御ボーン。
	GENERATED_CONTROL_END
	// GENERATED_LEVER_ROOT はレバー機構のルート制御ボーン。
	GENERATED_LEVER_ROOT
	// GENERATED_LEVER_PIVOT はレバー機構のピボット制御ボーン。
	GENERATED_LEVER_PIVOT
	// GENERATED_HELPER は脚ヘルパーボーン。
	GENERATED_HELPER
)

const (
	// DefaultTargetPrefix はターゲットボーンの既定接頭辞。
	DefaultTargetPrefix = "TGT"
	// ControlPrefix は制御ボーンの接頭辞。
	ControlPrefix = "CTRL"
	// HelperSegment はヘルパーボーン名へ差し込む区切り。
	HelperSegment = "helper"

	boneNameSeparator    = "-"
	boneSegmentSeparator = "."
)

// BoneNamer は生成ボーン名を決定する。生成と検索の双方で同じ名前を使う。
type BoneNamer struct {
	targetPrefix string
}

// NewBoneNamer はターゲット接頭辞を指定してBoneNamerを生成する。空の場合は既定値を使う。
func NewBoneNamer(targetPrefix string) BoneNamer {
	targetPrefix = strings.TrimSpace(targetPrefix)
	if targetPrefix == "" {
		targetPrefix = DefaultTargetPrefix
	}
	return BoneNamer{targetPrefix: targetPrefix}
}

// TargetPrefix はターゲット接頭辞を返す。
func (n BoneNamer) TargetPrefix() string {
	if n.targetPrefix == "" {
		return DefaultTargetPrefix
	}
	return n.targetPrefix
}

// DeriveName は種別と元ボーン名から生成ボーン名を返す。
func (n BoneNamer) DeriveName(kind GeneratedBoneKind, sourceName string) string {
	switch kind {
	case GENERATED_TARGET:
		return n.TargetPrefix() + boneNameSeparator + sourceName
	case GENERATED_CONTROL:
		return ControlPrefix + boneNameSeparator + sourceName
	case GENERATED_CONTROL_END:
		return ControlPrefix + boneNameSeparator + "END" + boneNameSeparator + sourceName
	case GENERATED_LEVER_ROOT:
		return ControlPrefix + boneNameSeparator + "ROOT" + boneNameSeparator + sourceName
	case GENERATED_LEVER_PIVOT:
		return ControlPrefix + boneNameSeparator + "PIVOT" + boneNameSeparator + sourceName
	case GENERATED_HELPER:
		return helperBoneName(sourceName)
	default:
		return sourceName
	}
}

// IsTargetName はターゲット接頭辞付きの名前か判定する。
func (n BoneNamer) IsTargetName(name string) bool {
	return strings.HasPrefix(name, n.TargetPrefix()+boneNameSeparator)
}

// IsControlName は制御ボーン接頭辞付きの名前か判定する。
func (n BoneNamer) IsControlName(name string) bool {
	return strings.HasPrefix(name, ControlPrefix+boneNameSeparator)
}

// IsGeneratedName は本ツールが生成する制御・ターゲットボーン名か判定する。
func (n BoneNamer) IsGeneratedName(name string) bool {
	return n.IsControlName(name) || n.IsTargetName(name)
}

// helperBoneName は最初の区切りの後ろにhelperを差し込む。
// 例: thigh.L -> thigh.helper.L、thigh -> thigh.helper
func helperBoneName(sourceName string) string {
	segment, rest, found := strings.Cut(sourceName, boneSegmentSeparator)
	if !found {
		return sourceName + boneSegmentSeparator + HelperSegment
	}
	return segment + boneSegmentSeparator + HelperSegment + boneSegmentSeparator + rest
}

// 指示: miu200521358
package minteractor

import (
	"github.com/miu200521358/mu_rigtools/pkg/domain/model"
	"github.com/miu200521358/mu_rigtools/pkg/usecase/port/moutput"
)

// RigUsecaseDeps はリグ構築ユースケースの依存を表す。
type RigUsecaseDeps struct {
	Host             moutput.IRigHost
	ProgressReporter IRigProgressReporter
	// TargetPrefix はターゲットボーン名の接頭辞。空の場合は TGT。
	TargetPrefix string
	// ControlLayerName が指定された場合、生成した制御ボーンをその名前のレイヤーへ移動する。
	ControlLayerName string
}

// RigUsecase はリグ構築処理をまとめたユースケースを表す。
type RigUsecase struct {
	host             moutput.IRigHost
	progressReporter IRigProgressReporter
	namer            model.BoneNamer
	controlLayerName string
}

// NewRigUsecase はリグ構築ユースケースを生成する。
func NewRigUsecase(deps RigUsecaseDeps) *RigUsecase {
	return &RigUsecase{
		host:             deps.Host,
		progressReporter: deps.ProgressReporter,
		namer:            model.NewBoneNamer(deps.TargetPrefix),
		controlLayerName: deps.ControlLayerName,
	}
}

// Namer は生成ボーン名の決定器を返す。
func (uc *RigUsecase) Namer() model.BoneNamer {
	return uc.namer
}

// reportProgress は進捗イベントを通知する。
func (uc *RigUsecase) reportProgress(event RigProgressEvent) {
	if uc == nil || uc.progressReporter == nil {
		return
	}
	uc.progressReporter.ReportRigProgress(event)
}

// 指示: miu200521358
package minteractor

import (
	"github.com/miu200521358/mu_rigtools/pkg/domain/model"
	"github.com/miu200521358/mu_rigtools/pkg/usecase/port/moutput"
)

// Armature はリグ構築対象のアーマチュア契約を表す。
type Armature = moutput.IArmature

// Constraint はコンストレイント宣言を表す。
type Constraint = model.Constraint

// ProcedureKind はリグ構築処理の種別を表す。
type ProcedureKind string

const (
	// ProcedureKindTargetArmature はターゲットアーマチュア作成。
	ProcedureKindTargetArmature ProcedureKind = "target"
	// ProcedureKindLeverMechanism はレバー機構作成。
	ProcedureKindLeverMechanism ProcedureKind = "lever"
	// ProcedureKindTailMechanism はテールチェーン作成。
	ProcedureKindTailMechanism ProcedureKind = "tail"
	// ProcedureKindLegHelper は脚ヘルパー作成。
	ProcedureKindLegHelper ProcedureKind = "leg-helper"
	// ProcedureKindMirrorBones はボーン反転。
	ProcedureKindMirrorBones ProcedureKind = "mirror"
	// ProcedureKindClearConstraints はコンストレイント全削除。
	ProcedureKindClearConstraints ProcedureKind = "clear-constraints"
	// ProcedureKindToggleDeformation は変形フラグ反転。
	ProcedureKindToggleDeformation ProcedureKind = "toggle-deform"
)

// ProcedureKinds は全処理種別を表示順で返す。
func ProcedureKinds() []ProcedureKind {
	return []ProcedureKind{
		ProcedureKindTargetArmature,
		ProcedureKindToggleDeformation,
		ProcedureKindLeverMechanism,
		ProcedureKindTailMechanism,
		ProcedureKindLegHelper,
		ProcedureKindMirrorBones,
		ProcedureKindClearConstraints,
	}
}

// RigProgressEventType はリグ構築の進捗イベント種別を表す。
type RigProgressEventType string

const (
	// RigProgressEventTypeStarted は処理開始イベントを表す。
	RigProgressEventTypeStarted RigProgressEventType = "procedure_started"
	// RigProgressEventTypeChainResolved はチェーン解決完了イベントを表す。
	RigProgressEventTypeChainResolved RigProgressEventType = "chain_resolved"
	// RigProgressEventTypeTopologyCommitted はボーン構造編集完了イベントを表す。
	RigProgressEventTypeTopologyCommitted RigProgressEventType = "topology_committed"
	// RigProgressEventTypeConstraintsDeclared はコンストレイント付与完了イベントを表す。
	RigProgressEventTypeConstraintsDeclared RigProgressEventType = "constraints_declared"
	// RigProgressEventTypeCompleted は処理完了イベントを表す。
	RigProgressEventTypeCompleted RigProgressEventType = "procedure_completed"
)

// RigProgressEvent はリグ構築の進捗イベントを表す。
type RigProgressEvent struct {
	Type            RigProgressEventType
	Procedure       ProcedureKind
	ChainLength     int
	BoneCount       int
	ConstraintCount int
}

// IRigProgressReporter はリグ構築の進捗通知契約を表す。
type IRigProgressReporter interface {
	// ReportRigProgress はリグ構築進捗を通知する。
	ReportRigProgress(event RigProgressEvent)
}

// ReportLevel は操作結果の通知区分を表す。
type ReportLevel string

const (
	// ReportLevelInfo は成功通知。
	ReportLevelInfo ReportLevel = "INFO"
	// ReportLevelWarning は一部失敗の通知。
	ReportLevelWarning ReportLevel = "WARNING"
	// ReportLevelError は失敗通知。
	ReportLevelError ReportLevel = "ERROR"
)

// OperatorRequest は操作実行要求を表す。
type OperatorRequest struct {
	Procedure    ProcedureKind
	ArmatureName string
	// BoneNames が空の場合はホストの選択状態を使う。
	BoneNames []string
}

// OperatorReport は操作実行結果を表す。
type OperatorReport struct {
	Procedure    ProcedureKind
	Level        ReportLevel
	ArmatureName string
	Touched      []string
	// SelectedCount は処理に渡した選択ボーン数。選択が空で失敗した場合は0。
	SelectedCount int
	// FailedCount は存在しないなどで処理できなかったボーン数。
	FailedCount int
	Err         error
}

// Succeeded はエラー無しで完了したか判定する。
func (r OperatorReport) Succeeded() bool {
	return r.Err == nil && r.Level != ReportLevelError
}

// MirrorResult はボーン反転結果を表す。
type MirrorResult struct {
	Mirrored []string
	Skipped  []string
	Missing  []string
}

// ClearConstraintsResult はコンストレイント削除結果を表す。
type ClearConstraintsResult struct {
	Cleared []string
	Removed int
	Missing []string
}

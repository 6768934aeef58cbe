// 指示: miu200521358
package minteractor

import (
	"fmt"

	"github.com/miu200521358/mu_rigtools/pkg/domain/model/merrors"
)

// ExecuteOperator はホストのアクティブアーマチュアと選択に対して処理を実行し、結果を分類して返す。
// 構築処理で触れたボーンは選択し直す。
func (uc *RigUsecase) ExecuteOperator(request OperatorRequest) OperatorReport {
	report := OperatorReport{Procedure: request.Procedure, ArmatureName: request.ArmatureName}
	if uc.host == nil {
		return report.failed(merrors.New(merrors.KindMissingArmature, "ホストが未設定です"))
	}
	armature, err := uc.host.ActiveArmature(request.ArmatureName)
	if err != nil {
		return report.failed(fmt.Errorf("アーマチュア取得に失敗しました: %w", err))
	}
	report.ArmatureName = armature.Name()

	selected := uniqueNames(request.BoneNames)
	if len(selected) == 0 {
		selected = uniqueNames(uc.host.SelectedBoneNames(armature))
	}
	if len(selected) == 0 {
		return report.failed(merrors.New(merrors.KindSelection, "ボーンが選択されていません"))
	}
	report.SelectedCount = len(selected)

	switches := armature.SwitchCount()
	touched, failedCount, err := uc.runProcedure(request.Procedure, armature, selected)
	if err != nil {
		kind, _ := merrors.ExtractKind(err)
		if merrors.IsContractViolation(err) {
			logRigError("契約違反: procedure=%s armature=%s kind=%s err=%v", request.Procedure, report.ArmatureName, kind, err)
		} else {
			logRigWarn("処理失敗: procedure=%s armature=%s kind=%s err=%v", request.Procedure, report.ArmatureName, kind, err)
		}
		return report.failed(err)
	}
	logRigDebug("処理完了: procedure=%s armature=%s views=%d", request.Procedure, report.ArmatureName, armature.SwitchCount()-switches)
	if request.Procedure.selectsTouched() {
		uc.host.SelectBones(armature, touched, true)
	}

	report.Touched = touched
	report.FailedCount = failedCount
	report.Level = ReportLevelInfo
	if failedCount > 0 {
		report.Level = ReportLevelWarning
	}
	return report
}

// runProcedure は処理種別に応じた処理を実行し、触れたボーンと失敗数を返す。
func (uc *RigUsecase) runProcedure(procedure ProcedureKind, armature Armature, selected []string) ([]string, int, error) {
	switch procedure {
	case ProcedureKindTargetArmature:
		touched, err := uc.CreateTargetArmature(armature, selected)
		return touched, 0, err
	case ProcedureKindLeverMechanism:
		touched, err := uc.CreateLeverMechanism(armature, selected)
		return touched, 0, err
	case ProcedureKindTailMechanism:
		touched, err := uc.CreateTailMechanism(armature, selected)
		return touched, 0, err
	case ProcedureKindLegHelper:
		touched, err := uc.CreateLegHelper(armature, selected)
		return touched, 0, err
	case ProcedureKindToggleDeformation:
		touched, err := uc.ToggleDeformation(armature, selected)
		return touched, 0, err
	case ProcedureKindMirrorBones:
		result, err := uc.MirrorBones(armature, selected)
		return append(result.Mirrored, result.Skipped...), len(result.Missing), err
	case ProcedureKindClearConstraints:
		result, err := uc.ClearConstraints(armature, selected)
		return result.Cleared, len(result.Missing), err
	default:
		return nil, 0, merrors.New(merrors.KindUnsupportedProcedure, "未対応の処理です: %s", procedure)
	}
}

// selectsTouched は処理後に触れたボーンを選択し直す処理か判定する。
func (k ProcedureKind) selectsTouched() bool {
	switch k {
	case ProcedureKindTargetArmature, ProcedureKindLeverMechanism, ProcedureKindTailMechanism, ProcedureKindLegHelper:
		return true
	default:
		return false
	}
}

// failed はエラー通知へ変換する。
func (r OperatorReport) failed(err error) OperatorReport {
	r.Level = ReportLevelError
	r.Err = err
	return r
}

// 指示: miu200521358
package messages

import (
	"errors"

	"github.com/miu200521358/mu_rigtools/pkg/domain/model/merrors"
	"github.com/miu200521358/mu_rigtools/pkg/usecase/minteractor"
	"golang.org/x/text/message"
)

// FormatReport は操作結果を表示用メッセージへ変換する。
func FormatReport(printer *message.Printer, report minteractor.OperatorReport) string {
	if report.Level == minteractor.ReportLevelError {
		if errors.Is(report.Err, merrors.ErrSelection) {
			if report.SelectedCount > 0 {
				return printer.Sprintf(MessageSelectEndpoints)
			}
			return printer.Sprintf(MessageNoSelection)
		}
		return printer.Sprintf(MessageOperationFailed, report.Err)
	}
	count := len(report.Touched)
	switch report.Procedure {
	case minteractor.ProcedureKindMirrorBones:
		if report.FailedCount > 0 {
			return printer.Sprintf(MessageBonesMirroredFailed, count, report.FailedCount)
		}
		return printer.Sprintf(MessageBonesMirrored, count)
	case minteractor.ProcedureKindClearConstraints:
		if report.FailedCount > 0 {
			return printer.Sprintf(MessageConstraintsFailed, count, report.FailedCount)
		}
		return printer.Sprintf(MessageConstraintsCleared, count)
	case minteractor.ProcedureKindToggleDeformation:
		return printer.Sprintf(MessageDeformToggled, count)
	default:
		return printer.Sprintf(MessageBonesCreated, count)
	}
}

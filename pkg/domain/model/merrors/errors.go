// 指示: miu200521358
// Package merrors はリグ構築処理のエラー種別を提供する。
package merrors

import (
	"errors"
	"fmt"
)

// ErrorKind はエラー種別を表す。
type ErrorKind string

const (
	// KindSelection はボーン未選択または選択数不足を表す。
	KindSelection ErrorKind = "SelectionError"
	// KindInvalidSelectionCount は選択数が要求と一致しないことを表す。
	KindInvalidSelectionCount ErrorKind = "InvalidSelectionCount"
	// KindNoCommonRoot は2ボーンのルートが異なることを表す。
	KindNoCommonRoot ErrorKind = "NoCommonRoot"
	// KindNoPathFound はチェーン解決に失敗したことを表す。
	KindNoPathFound ErrorKind = "NoPathFound"
	// KindMissingBone は参照ボーンが存在しないことを表す。
	KindMissingBone ErrorKind = "MissingBone"
	// KindMissingArmature は対象アーマチュアが見つからないことを表す。
	KindMissingArmature ErrorKind = "MissingArmature"
	// KindUnsupportedProcedure は未対応の処理種別を表す。
	KindUnsupportedProcedure ErrorKind = "UnsupportedProcedure"
	// KindInvalidBoneName はボーン名が不正であることを表す。
	KindInvalidBoneName ErrorKind = "InvalidBoneName"
	// KindInvalidLayer はレイヤー番号が範囲外であることを表す。
	KindInvalidLayer ErrorKind = "InvalidLayer"
	// KindDegenerateGeometry は共線・一致点など退化した幾何を表す。
	KindDegenerateGeometry ErrorKind = "DegenerateGeometry"
	// KindWrongView は要求と異なるビューでの操作を表す。
	KindWrongView ErrorKind = "WrongView"
	// KindCycleDetected は親子関係の循環を表す。
	KindCycleDetected ErrorKind = "CycleDetected"
	// KindIoExtInvalid は未対応の拡張子を表す。
	KindIoExtInvalid ErrorKind = "IoExtInvalid"
	// KindIoFileNotFound は入力ファイルが存在しないことを表す。
	KindIoFileNotFound ErrorKind = "IoFileNotFound"
	// KindIoParseFailed は入力の解析失敗を表す。
	KindIoParseFailed ErrorKind = "IoParseFailed"
	// KindIoSaveFailed は出力の保存失敗を表す。
	KindIoSaveFailed ErrorKind = "IoSaveFailed"
)

// エラーID一覧。
const (
	ErrorIDSelection             = "21001"
	ErrorIDInvalidSelectionCount = "21002"
	ErrorIDNoCommonRoot          = "22001"
	ErrorIDNoPathFound           = "22002"
	ErrorIDMissingBone           = "23001"
	ErrorIDInvalidBoneName       = "23002"
	ErrorIDMissingArmature       = "23004"
	ErrorIDUnsupportedProcedure  = "21003"
	ErrorIDInvalidLayer          = "23003"
	ErrorIDDegenerateGeometry    = "24001"
	ErrorIDWrongView             = "25001"
	ErrorIDCycleDetected         = "25002"
	ErrorIDIoExtInvalid          = "31001"
	ErrorIDIoFileNotFound        = "31002"
	ErrorIDIoParseFailed         = "31003"
	ErrorIDIoSaveFailed          = "31004"
)

var kindErrorIDs = map[ErrorKind]string{
	KindSelection:             ErrorIDSelection,
	KindInvalidSelectionCount: ErrorIDInvalidSelectionCount,
	KindNoCommonRoot:          ErrorIDNoCommonRoot,
	KindNoPathFound:           ErrorIDNoPathFound,
	KindMissingBone:           ErrorIDMissingBone,
	KindInvalidBoneName:       ErrorIDInvalidBoneName,
	KindMissingArmature:       ErrorIDMissingArmature,
	KindUnsupportedProcedure:  ErrorIDUnsupportedProcedure,
	KindInvalidLayer:          ErrorIDInvalidLayer,
	KindDegenerateGeometry:    ErrorIDDegenerateGeometry,
	KindWrongView:             ErrorIDWrongView,
	KindCycleDetected:         ErrorIDCycleDetected,
	KindIoExtInvalid:          ErrorIDIoExtInvalid,
	KindIoFileNotFound:        ErrorIDIoFileNotFound,
	KindIoParseFailed:         ErrorIDIoParseFailed,
	KindIoSaveFailed:          ErrorIDIoSaveFailed,
}

// 種別判定用の番兵エラー。errors.Is で種別一致を判定する。
var (
	ErrSelection             = &RigError{Kind: KindSelection}
	ErrInvalidSelectionCount = &RigError{Kind: KindInvalidSelectionCount}
	ErrNoCommonRoot          = &RigError{Kind: KindNoCommonRoot}
	ErrNoPathFound           = &RigError{Kind: KindNoPathFound}
	ErrMissingBone           = &RigError{Kind: KindMissingBone}
	ErrInvalidBoneName       = &RigError{Kind: KindInvalidBoneName}
	ErrMissingArmature       = &RigError{Kind: KindMissingArmature}
	ErrUnsupportedProcedure  = &RigError{Kind: KindUnsupportedProcedure}
	ErrInvalidLayer          = &RigError{Kind: KindInvalidLayer}
	ErrDegenerateGeometry    = &RigError{Kind: KindDegenerateGeometry}
	ErrWrongView             = &RigError{Kind: KindWrongView}
	ErrCycleDetected         = &RigError{Kind: KindCycleDetected}
	ErrIoExtInvalid          = &RigError{Kind: KindIoExtInvalid}
	ErrIoFileNotFound        = &RigError{Kind: KindIoFileNotFound}
	ErrIoParseFailed         = &RigError{Kind: KindIoParseFailed}
	ErrIoSaveFailed          = &RigError{Kind: KindIoSaveFailed}
)

// RigError はID付きのリグ構築エラーを表す。
type RigError struct {
	ID      string
	Kind    ErrorKind
	Message string
	Cause   error
}

// Error はエラーメッセージを返す。
func (e *RigError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.ID, msg, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.ID, msg)
}

// Unwrap は原因エラーを返す。
func (e *RigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is は種別一致で判定する。
func (e *RigError) Is(target error) bool {
	t, ok := target.(*RigError)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// New は種別とメッセージからエラーを生成する。
func New(kind ErrorKind, format string, params ...any) error {
	return &RigError{
		ID:      kindErrorIDs[kind],
		Kind:    kind,
		Message: fmt.Sprintf(format, params...),
	}
}

// Wrap は原因エラー付きでエラーを生成する。
func Wrap(kind ErrorKind, cause error, format string, params ...any) error {
	return &RigError{
		ID:      kindErrorIDs[kind],
		Kind:    kind,
		Message: fmt.Sprintf(format, params...),
		Cause:   cause,
	}
}

// ExtractErrorID は最外のRigErrorのIDを返す。見つからない場合は空文字を返す。
func ExtractErrorID(err error) string {
	var rigErr *RigError
	if errors.As(err, &rigErr) {
		return rigErr.ID
	}
	return ""
}

// ExtractKind は最外のRigErrorの種別を返す。
func ExtractKind(err error) (ErrorKind, bool) {
	var rigErr *RigError
	if errors.As(err, &rigErr) {
		return rigErr.Kind, true
	}
	return "", false
}

// IsContractViolation はビュー違反や循環など呼び出し側の契約違反か判定する。
func IsContractViolation(err error) bool {
	return errors.Is(err, ErrWrongView) || errors.Is(err, ErrCycleDetected)
}

// 指示: miu200521358
// Package messages は操作結果の表示に使うメッセージキーと翻訳を提供する。
package messages

// メッセージキー一覧。キーは日本語メッセージを兼ねる。
const (
	HelpUsage = "シーンYAMLのアーマチュアへリグ構築処理を適用します"

	LabelInput        = "入力シーンYAML"
	LabelOutput       = "出力シーンYAML(省略時は入力名_rig.yaml)"
	LabelArmature     = "対象アーマチュア名(省略時はアクティブ)"
	LabelBones        = "対象ボーン名(カンマ区切り、省略時は選択状態)"
	LabelPrefix       = "ターゲットボーンの接頭辞"
	LabelControlLayer = "制御ボーンを移動するレイヤー名"
	LabelLang         = "表示言語(ja|en)"
	LabelLogLevel     = "ログレベル(debug|info|warn|error)"

	MessageNoSelection         = "操作できません。ボーンが選択されていません"
	MessageSelectEndpoints     = "先頭と末尾のボーンを選択してください"
	MessageBonesCreated        = "%d本のボーンを作成・更新しました"
	MessageBonesMirrored       = "%d本のボーンを反転しました"
	MessageBonesMirroredFailed = "%d本のボーンを反転しました。%d本は失敗しました"
	MessageConstraintsCleared  = "%d本のボーンのコンストレイントを削除しました"
	MessageConstraintsFailed   = "%d本のボーンのコンストレイントを削除しました。%d本は削除できませんでした"
	MessageDeformToggled       = "%d本のボーンの変形を切り替えました"
	MessageOperationFailed     = "操作に失敗しました: %v"
	MessageChainResolved       = "チェーン: %s"
	MessageInputRequired       = "入力シーンYAMLを指定してください"
	MessageChainEndpoints      = "チェーンの両端となる2本のボーンを指定してください"

	LogLoadSuccess = "シーン読込成功: %s"
	LogSaveSuccess = "シーン保存成功: %s"
)

// translationsEn は英語の翻訳。
var translationsEn = map[string]string{
	HelpUsage:                  "Apply rig construction procedures to an armature in a scene YAML",
	LabelInput:                 "input scene YAML",
	LabelOutput:                "output scene YAML (default: <input>_rig.yaml)",
	LabelArmature:              "target armature name (default: active)",
	LabelBones:                 "bone names, comma separated (default: selection)",
	LabelPrefix:                "target bone prefix",
	LabelControlLayer:          "layer name for generated control bones",
	LabelLang:                  "display language (ja|en)",
	LabelLogLevel:              "log level (debug|info|warn|error)",
	MessageNoSelection:         "Cannot perform operation, no bones selected",
	MessageSelectEndpoints:     "Select the first and last bone of the chain",
	MessageBonesCreated:        "%d bones had been created or updated.",
	MessageBonesMirrored:       "%d bones had been mirrored.",
	MessageBonesMirroredFailed: "%d bones had been mirrored. %d bones failed.",
	MessageConstraintsCleared:  "%d bones had been cleared.",
	MessageConstraintsFailed:   "%d bones had been cleared. %d bones could not be cleared.",
	MessageDeformToggled:       "%d bones had their deformation toggled.",
	MessageOperationFailed:     "Operation failed: %v",
	MessageChainResolved:       "chain: %s",
	MessageInputRequired:       "specify an input scene YAML",
	MessageChainEndpoints:      "specify exactly two bones as chain endpoints",
	LogLoadSuccess:             "scene loaded: %s",
	LogSaveSuccess:             "scene saved: %s",
}

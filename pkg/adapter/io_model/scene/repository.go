// 指示: miu200521358
// Package scene はシーンYAMLの読み書きを提供する。
package scene

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/miu200521358/mu_rigtools/pkg/adapter/mhost"
	"github.com/miu200521358/mu_rigtools/pkg/domain/mmath"
	"github.com/miu200521358/mu_rigtools/pkg/domain/model"
	"github.com/miu200521358/mu_rigtools/pkg/domain/model/merrors"
	"gopkg.in/yaml.v3"
)

// SceneRepository はシーンYAMLの読み書きを行う。
type SceneRepository struct{}

// NewSceneRepository はSceneRepositoryを生成する。
func NewSceneRepository() *SceneRepository {
	return &SceneRepository{}
}

// CanLoad は拡張子に応じて読み込み可否を判定する。
func (r *SceneRepository) CanLoad(path string) bool {
	ext := filepath.Ext(path)
	return strings.EqualFold(ext, ".yaml") || strings.EqualFold(ext, ".yml")
}

// InferName はパスから表示名を推定する。
func (r *SceneRepository) InferName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load はシーンYAMLを読み込む。
func (r *SceneRepository) Load(path string) (*mhost.Scene, error) {
	if !r.CanLoad(path) {
		return nil, merrors.New(merrors.KindIoExtInvalid, "未対応の拡張子です: %s", path)
	}
	logSceneInfo("シーン読込開始: file=%s", filepath.Base(path))

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, merrors.Wrap(merrors.KindIoFileNotFound, err, "ファイルが存在しません: %s", path)
		}
		return nil, merrors.Wrap(merrors.KindIoParseFailed, err, "シーンファイルの読み取りに失敗しました")
	}

	doc := sceneDocument{}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, merrors.Wrap(merrors.KindIoParseFailed, err, "シーンYAMLの解析に失敗しました")
	}
	scene, err := buildScene(doc)
	if err != nil {
		return nil, merrors.Wrap(merrors.KindIoParseFailed, err, "シーンの構築に失敗しました: %s", path)
	}
	logSceneInfo("シーン読込完了: file=%s armatures=%d", filepath.Base(path), len(doc.Armatures))
	return scene, nil
}

// Save はシーンをYAMLとして保存する。
func (r *SceneRepository) Save(path string, scene *mhost.Scene) error {
	if scene == nil {
		return merrors.New(merrors.KindIoSaveFailed, "保存対象のシーンがありません")
	}
	doc, err := buildDocument(scene)
	if err != nil {
		return merrors.Wrap(merrors.KindIoSaveFailed, err, "シーンの変換に失敗しました")
	}
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return merrors.Wrap(merrors.KindIoSaveFailed, err, "シーンYAMLの生成に失敗しました")
	}
	if err := encoder.Close(); err != nil {
		return merrors.Wrap(merrors.KindIoSaveFailed, err, "シーンYAMLの生成に失敗しました")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return merrors.Wrap(merrors.KindIoSaveFailed, err, "出力フォルダの作成に失敗しました: %s", dir)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return merrors.Wrap(merrors.KindIoSaveFailed, err, "シーンファイルの書き込みに失敗しました: %s", path)
	}
	logSceneInfo("シーン保存完了: file=%s bytes=%d", filepath.Base(path), buf.Len())
	return nil
}

// buildScene は文書からシーンを構築する。
func buildScene(doc sceneDocument) (*mhost.Scene, error) {
	scene := mhost.NewScene()
	for _, armatureDoc := range doc.Armatures {
		armature, err := buildArmature(armatureDoc)
		if err != nil {
			return nil, err
		}
		if err := scene.AddArmature(armature); err != nil {
			return nil, err
		}
		scene.SelectBones(armature, armatureDoc.Selected, true)
	}
	if doc.Active != "" {
		if err := scene.SetActive(doc.Active); err != nil {
			return nil, err
		}
	}
	return scene, nil
}

// buildArmature は文書からアーマチュアを構築する。
func buildArmature(doc armatureDocument) (*model.Armature, error) {
	records := make([]model.BoneRecord, 0, len(doc.Bones))
	for _, boneDoc := range doc.Bones {
		record, err := buildBoneRecord(boneDoc)
		if err != nil {
			return nil, fmt.Errorf("armature=%s: %w", doc.Name, err)
		}
		records = append(records, record)
	}
	armature, err := model.NewArmatureFromRecords(doc.Name, records)
	if err != nil {
		return nil, fmt.Errorf("armature=%s: %w", doc.Name, err)
	}
	for _, layer := range doc.Layers {
		if err := armature.RestoreLayer(layer.Index, layer.Enabled, layer.Name); err != nil {
			return nil, fmt.Errorf("armature=%s: %w", doc.Name, err)
		}
	}
	return armature, nil
}

// buildBoneRecord は文書からボーンレコードを構築する。変形フラグ省略時は有効とする。
func buildBoneRecord(doc boneDocument) (model.BoneRecord, error) {
	layers := doc.Layers
	if len(layers) == 0 {
		layers = []int{0}
	}
	record := model.BoneRecord{
		Name: doc.Name,
		Rest: model.RestTopology{
			Head:       mmath.Vec3FromArray(doc.Head),
			Tail:       mmath.Vec3FromArray(doc.Tail),
			Roll:       doc.Roll,
			Parent:     doc.Parent,
			UseConnect: doc.Connect && doc.Parent != "",
			UseDeform:  boolOrDefault(doc.Deform, true),
			Layers:     layers,
		},
	}
	for _, constraintDoc := range doc.Constraints {
		kind := model.ConstraintKind(strings.ToUpper(constraintDoc.Kind))
		if !kind.IsValid() {
			return model.BoneRecord{}, fmt.Errorf("bone=%s: 未対応のコンストレイント種別です: %s", doc.Name, constraintDoc.Kind)
		}
		constraint := model.NewConstraint(kind, constraintDoc.TargetArmature, constraintDoc.TargetBone).
			WithSpaces(parseSpace(constraintDoc.OwnerSpace), parseSpace(constraintDoc.TargetSpace))
		if constraintDoc.Name != "" {
			constraint.Name = constraintDoc.Name
		}
		constraint.Enabled = boolOrDefault(constraintDoc.Enabled, true)
		record.Pose.Constraints = append(record.Pose.Constraints, constraint)
	}
	return record, nil
}

// buildDocument はシーンを文書へ変換する。
func buildDocument(scene *mhost.Scene) (sceneDocument, error) {
	doc := sceneDocument{Active: scene.ActiveName()}
	for _, armature := range scene.Armatures() {
		snapshot, err := armature.Snapshot()
		if err != nil {
			return sceneDocument{}, err
		}
		records, err := snapshot.Records()
		if err != nil {
			return sceneDocument{}, err
		}
		armatureDoc := armatureDocument{
			Name:     armature.Name(),
			Selected: scene.SelectedBoneNames(armature),
			Layers:   buildLayerDocuments(armature),
			Bones:    make([]boneDocument, 0, len(records)),
		}
		for _, record := range records {
			armatureDoc.Bones = append(armatureDoc.Bones, buildBoneDocument(record))
		}
		doc.Armatures = append(doc.Armatures, armatureDoc)
	}
	return doc, nil
}

// buildLayerDocuments は有効または命名済みのレイヤーだけを出力する。
func buildLayerDocuments(armature *model.Armature) []layerDocument {
	layers := make([]layerDocument, 0)
	for index := 0; index < model.BoneLayerCount; index++ {
		name, named := armature.LayerName(index)
		enabled := armature.IsLayerEnabled(index)
		if !named && !enabled {
			continue
		}
		layers = append(layers, layerDocument{Index: index, Name: name, Enabled: enabled})
	}
	return layers
}

// buildBoneDocument はボーンレコードを文書へ変換する。
func buildBoneDocument(record model.BoneRecord) boneDocument {
	deform := record.Rest.UseDeform
	doc := boneDocument{
		Name:    record.Name,
		Head:    record.Rest.Head.Array(),
		Tail:    record.Rest.Tail.Array(),
		Roll:    record.Rest.Roll,
		Parent:  record.Rest.Parent,
		Connect: record.Rest.UseConnect,
		Deform:  &deform,
		Layers:  record.Rest.Layers,
	}
	for _, constraint := range record.Pose.Constraints {
		enabled := constraint.Enabled
		doc.Constraints = append(doc.Constraints, constraintDocument{
			Name:           constraint.Name,
			Kind:           string(constraint.Kind),
			TargetArmature: constraint.TargetArmature,
			TargetBone:     constraint.TargetBone,
			OwnerSpace:     string(constraint.OwnerSpace),
			TargetSpace:    string(constraint.TargetSpace),
			Enabled:        &enabled,
		})
	}
	return doc
}

// parseSpace は評価空間名を解析する。未指定・不明はワールド空間とする。
func parseSpace(value string) model.ConstraintSpace {
	if strings.EqualFold(value, string(model.SPACE_LOCAL)) {
		return model.SPACE_LOCAL
	}
	return model.SPACE_WORLD
}

func boolOrDefault(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

// logSceneInfo はシーン入出力のINFOログを出力する。
func logSceneInfo(format string, params ...any) {
	logger := slog.Default()
	if logger == nil {
		return
	}
	logger.Info(fmt.Sprintf(format, params...))
}

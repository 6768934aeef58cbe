// 指示: miu200521358
package model

// ConstraintKind はコンストレイント種別を表す。
type ConstraintKind string

const (
	// CONSTRAINT_COPY_TRANSFORMS はターゲットのトランスフォームを全てコピーする。
	CONSTRAINT_COPY_TRANSFORMS ConstraintKind = "COPY_TRANSFORMS"
	// CONSTRAINT_COPY_ROTATION はターゲットの回転をコピーする。
	CONSTRAINT_COPY_ROTATION ConstraintKind = "COPY_ROTATION"
	// CONSTRAINT_DAMPED_TRACK はターゲット方向へ向ける。
	CONSTRAINT_DAMPED_TRACK ConstraintKind = "DAMPED_TRACK"
	// CONSTRAINT_STRETCH_TO はターゲットまで伸縮する。
	CONSTRAINT_STRETCH_TO ConstraintKind = "STRETCH_TO"
	// CONSTRAINT_CHILD_OF はターゲットの子として振る舞う。
	CONSTRAINT_CHILD_OF ConstraintKind = "CHILD_OF"
)

// constraintDisplayNames はホスト既定のコンストレイント表示名。
var constraintDisplayNames = map[ConstraintKind]string{
	CONSTRAINT_COPY_TRANSFORMS: "Copy Transforms",
	CONSTRAINT_COPY_ROTATION:   "Copy Rotation",
	CONSTRAINT_DAMPED_TRACK:    "Damped Track",
	CONSTRAINT_STRETCH_TO:      "Stretch To",
	CONSTRAINT_CHILD_OF:        "Child Of",
}

// IsValid は既知のコンストレイント種別か判定する。
func (k ConstraintKind) IsValid() bool {
	_, ok := constraintDisplayNames[k]
	return ok
}

// DisplayName は表示名を返す。
func (k ConstraintKind) DisplayName() string {
	if name, ok := constraintDisplayNames[k]; ok {
		return name
	}
	return string(k)
}

// ConstraintSpace はコンストレイント評価空間を表す。
type ConstraintSpace string

const (
	// SPACE_WORLD はワールド空間。
	SPACE_WORLD ConstraintSpace = "WORLD"
	// SPACE_LOCAL はローカル空間。
	SPACE_LOCAL ConstraintSpace = "LOCAL"
)

// Constraint はポーズボーンに付与するコンストレイント宣言を表す。
// 評価はホスト側で行う。
type Constraint struct {
	Name           string
	Kind           ConstraintKind
	TargetArmature string
	TargetBone     string
	OwnerSpace     ConstraintSpace
	TargetSpace    ConstraintSpace
	Enabled        bool
}

// NewConstraint はワールド空間・有効状態のコンストレイントを生成する。
func NewConstraint(kind ConstraintKind, targetArmature string, targetBone string) Constraint {
	return Constraint{
		Name:           kind.DisplayName(),
		Kind:           kind,
		TargetArmature: targetArmature,
		TargetBone:     targetBone,
		OwnerSpace:     SPACE_WORLD,
		TargetSpace:    SPACE_WORLD,
		Enabled:        true,
	}
}

// WithSpaces は評価空間を差し替えたコピーを返す。
func (c Constraint) WithSpaces(owner ConstraintSpace, target ConstraintSpace) Constraint {
	c.OwnerSpace = owner
	c.TargetSpace = target
	return c
}

// Disabled は無効化したコピーを返す。
func (c Constraint) Disabled() Constraint {
	c.Enabled = false
	return c
}

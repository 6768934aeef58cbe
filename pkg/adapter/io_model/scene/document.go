// 指示: miu200521358
package scene

// sceneDocument はシーンYAMLのトップレベルを表す。
type sceneDocument struct {
	Active    string             `yaml:"active,omitempty"`
	Armatures []armatureDocument `yaml:"armatures"`
}

// armatureDocument はアーマチュア1件を表す。
type armatureDocument struct {
	Name     string          `yaml:"name"`
	Selected []string        `yaml:"selected,omitempty"`
	Layers   []layerDocument `yaml:"layers,omitempty"`
	Bones    []boneDocument  `yaml:"bones"`
}

// layerDocument は有効化・命名済みレイヤーを表す。
type layerDocument struct {
	Index   int    `yaml:"index"`
	Name    string `yaml:"name,omitempty"`
	Enabled bool   `yaml:"enabled"`
}

// boneDocument はボーン1件を表す。
type boneDocument struct {
	Name        string               `yaml:"name"`
	Head        [3]float64           `yaml:"head,flow"`
	Tail        [3]float64           `yaml:"tail,flow"`
	Roll        float64              `yaml:"roll,omitempty"`
	Parent      string               `yaml:"parent,omitempty"`
	Connect     bool                 `yaml:"connect,omitempty"`
	Deform      *bool                `yaml:"deform,omitempty"`
	Layers      []int                `yaml:"layers,flow,omitempty"`
	Constraints []constraintDocument `yaml:"constraints,omitempty"`
}

// constraintDocument はコンストレイント1件を表す。
type constraintDocument struct {
	Name           string `yaml:"name,omitempty"`
	Kind           string `yaml:"kind"`
	TargetArmature string `yaml:"target_armature,omitempty"`
	TargetBone     string `yaml:"target_bone"`
	OwnerSpace     string `yaml:"owner_space,omitempty"`
	TargetSpace    string `yaml:"target_space,omitempty"`
	Enabled        *bool  `yaml:"enabled,omitempty"`
}

// 指示: miu200521358
package minteractor

import (
	"errors"
	"testing"

	"github.com/miu200521358/mu_rigtools/pkg/domain/mmath"
	"github.com/miu200521358/mu_rigtools/pkg/domain/model"
	"github.com/miu200521358/mu_rigtools/pkg/domain/model/merrors"
)

func TestCreateTailMechanismTwoBoneChain(t *testing.T) {
	armature := newStraightChainArmature(t)
	uc := NewRigUsecase(RigUsecaseDeps{})

	names, err := uc.CreateTailMechanism(armature, []string{"Root", "Mid"})
	if err != nil {
		t.Fatalf("tail failed: %v", err)
	}
	assertNames(t, names, []string{"Root", "CTRL-Root", "Mid", "CTRL-Mid", "CTRL-END-Mid"})

	terminal := requireEditBone(t, armature, "CTRL-END-Mid")
	assertSpan(t, terminal, mmath.NewVec3(0, 2, 0), mmath.NewVec3(0, 2.5, 0))
	assertSpan(t, requireEditBone(t, armature, "CTRL-Root"), mmath.NewVec3(0, 0, 0), mmath.NewVec3(0, 0.5, 0))
	assertSpan(t, requireEditBone(t, armature, "CTRL-Mid"), mmath.NewVec3(0, 1, 0), mmath.NewVec3(0, 1.5, 0))

	wantParents := map[string]string{
		"CTRL-Root":    "",
		"CTRL-Mid":     "CTRL-Root",
		"CTRL-END-Mid": "CTRL-Mid",
		"Root":         "CTRL-Root",
		"Mid":          "CTRL-Mid",
		"Tip":          "Mid",
	}
	for name, parent := range wantParents {
		bone := requireEditBone(t, armature, name)
		if bone.Parent != parent {
			t.Fatalf("parent mismatch: bone=%s got=%s want=%s", name, bone.Parent, parent)
		}
		if name != "Tip" && bone.UseConnect {
			t.Fatalf("tail bones should be unconnected: %s", name)
		}
	}
	for _, control := range []string{"CTRL-Root", "CTRL-Mid", "CTRL-END-Mid"} {
		if requireEditBone(t, armature, control).UseDeform {
			t.Fatalf("control should not deform: %s", control)
		}
	}

	wantTargets := map[string]string{"Root": "CTRL-Mid", "Mid": "CTRL-END-Mid"}
	for owner, target := range wantTargets {
		pose := requirePoseBone(t, armature, owner)
		if len(pose.Constraints) != 3 {
			t.Fatalf("constraint count mismatch: bone=%s got=%d", owner, len(pose.Constraints))
		}
		kinds := []model.ConstraintKind{model.CONSTRAINT_COPY_ROTATION, model.CONSTRAINT_DAMPED_TRACK, model.CONSTRAINT_STRETCH_TO}
		for i, kind := range kinds {
			constraint := pose.Constraints[i]
			if constraint.Kind != kind || constraint.TargetBone != target {
				t.Fatalf("constraint mismatch: bone=%s index=%d got=%+v", owner, i, constraint)
			}
		}
		if !pose.Constraints[0].Enabled || pose.Constraints[2].Enabled {
			t.Fatalf("stretch-to should be the only disabled constraint: %+v", pose.Constraints)
		}
	}
}

func TestCreateTailMechanismKeepsOriginalParent(t *testing.T) {
	armature := newStraightChainArmature(t)
	uc := NewRigUsecase(RigUsecaseDeps{})
	if _, err := uc.CreateTailMechanism(armature, []string{"Mid", "Tip"}); err != nil {
		t.Fatalf("tail failed: %v", err)
	}
	if bone := requireEditBone(t, armature, "CTRL-Mid"); bone.Parent != "Root" || bone.UseConnect {
		t.Fatalf("first control should take original parent: parent=%s connect=%t", bone.Parent, bone.UseConnect)
	}
}

func TestCreateTailMechanismRerunConverges(t *testing.T) {
	armature := newStraightChainArmature(t)
	uc := NewRigUsecase(RigUsecaseDeps{})
	first, err := uc.CreateTailMechanism(armature, []string{"Root", "Mid"})
	if err != nil {
		t.Fatalf("first tail failed: %v", err)
	}
	second, err := uc.CreateTailMechanism(armature, []string{"Root", "Mid"})
	if err != nil {
		t.Fatalf("second tail failed: %v", err)
	}
	assertNames(t, second, first)
	if armature.Len() != 6 {
		t.Fatalf("rerun should not create extra bones: len=%d", armature.Len())
	}
	if bone := requireEditBone(t, armature, "CTRL-Root"); bone.Parent != "" {
		t.Fatalf("first control should stay unparented: %s", bone.Parent)
	}
}

func TestCreateTailMechanismRejectsSingleBone(t *testing.T) {
	armature := newStraightChainArmature(t)
	uc := NewRigUsecase(RigUsecaseDeps{})
	if _, err := uc.CreateTailMechanism(armature, []string{"Root", "Root"}); !errors.Is(err, merrors.ErrSelection) {
		t.Fatalf("duplicate selection should fail with selection error: %v", err)
	}
	if _, err := uc.CreateTailMechanism(armature, nil); merrors.ExtractErrorID(err) != merrors.ErrorIDSelection {
		t.Fatalf("empty selection error id mismatch: %v", err)
	}
}

func TestCreateTailMechanismRejectsZeroLengthLastBone(t *testing.T) {
	armature, err := model.NewArmatureFromRecords("Armature", []model.BoneRecord{
		newTestBone("A", mmath.NewVec3(0, 0, 0), mmath.NewVec3(0, 1, 0), ""),
		newTestBone("B", mmath.NewVec3(0, 1, 0), mmath.NewVec3(0, 1, 0), "A"),
	})
	if err != nil {
		t.Fatalf("armature build failed: %v", err)
	}
	uc := NewRigUsecase(RigUsecaseDeps{})
	if _, err := uc.CreateTailMechanism(armature, []string{"A", "B"}); !errors.Is(err, merrors.ErrDegenerateGeometry) {
		t.Fatalf("zero length last bone should fail with degenerate geometry: %v", err)
	}
	if armature.HasBone("CTRL-END-B") || armature.Len() != 2 {
		t.Fatalf("degenerate tail should not create controls: len=%d", armature.Len())
	}
}

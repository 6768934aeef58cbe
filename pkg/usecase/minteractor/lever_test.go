// 指示: miu200521358
package minteractor

import (
	"errors"
	"testing"

	"github.com/miu200521358/mu_rigtools/pkg/domain/mmath"
	"github.com/miu200521358/mu_rigtools/pkg/domain/model"
	"github.com/miu200521358/mu_rigtools/pkg/domain/model/merrors"
)

func TestCreateLeverMechanismOnStraightChain(t *testing.T) {
	armature := newStraightChainArmature(t)
	reporter := &recordingReporter{}
	uc := NewRigUsecase(RigUsecaseDeps{ProgressReporter: reporter})

	names, err := uc.CreateLeverMechanism(armature, []string{"Root", "Tip"})
	if err != nil {
		t.Fatalf("lever failed: %v", err)
	}
	assertNames(t, names, []string{"CTRL-PIVOT-Tip", "CTRL-PIVOT-Root", "CTRL-ROOT-Root"})
	if armature.Len() != 6 {
		t.Fatalf("exactly three controls should be created: len=%d", armature.Len())
	}
	if armature.Mode() != model.VIEW_MODE_EDIT {
		t.Fatalf("procedure should end in edit view: %s", armature.Mode())
	}

	assertSpan(t, requireEditBone(t, armature, "CTRL-PIVOT-Root"), mmath.NewVec3(0, 1, 0), mmath.NewVec3(0, 0, 0))
	assertSpan(t, requireEditBone(t, armature, "CTRL-PIVOT-Tip"), mmath.NewVec3(0, 1, 0), mmath.NewVec3(0, 3, 0))

	root := requireEditBone(t, armature, "CTRL-ROOT-Root")
	if !root.Head.NearEquals(mmath.NewVec3(0, 1, 0), testEpsilon) {
		t.Fatalf("root control head mismatch: %v", root.Head)
	}
	if diff := root.Length() - leverRootControlLength; diff > testEpsilon || diff < -testEpsilon {
		t.Fatalf("root control length mismatch: %v", root.Length())
	}
	if dot := root.Direction().Dot(mmath.NewVec3(0, 1, 0)); dot > testEpsilon || dot < -testEpsilon {
		t.Fatalf("root control should be perpendicular to straight chain: dot=%v", dot)
	}
	if root.UseDeform {
		t.Fatalf("controls should not deform")
	}

	if bone := requireEditBone(t, armature, "Root"); bone.Parent != "CTRL-PIVOT-Root" || bone.UseConnect {
		t.Fatalf("first bone parent mismatch: parent=%s connect=%t", bone.Parent, bone.UseConnect)
	}
	if bone := requireEditBone(t, armature, "Mid"); bone.Parent != "CTRL-ROOT-Root" || bone.UseConnect {
		t.Fatalf("second bone parent mismatch: parent=%s connect=%t", bone.Parent, bone.UseConnect)
	}
	for _, pivot := range []string{"CTRL-PIVOT-Root", "CTRL-PIVOT-Tip"} {
		if bone := requireEditBone(t, armature, pivot); bone.Parent != "CTRL-ROOT-Root" {
			t.Fatalf("pivot parent mismatch: bone=%s parent=%s", pivot, bone.Parent)
		}
	}

	mid := requirePoseBone(t, armature, "Mid")
	if len(mid.Constraints) != 1 {
		t.Fatalf("mid constraint count mismatch: %d", len(mid.Constraints))
	}
	constraint := mid.Constraints[0]
	if constraint.Kind != model.CONSTRAINT_COPY_ROTATION || constraint.TargetBone != "CTRL-PIVOT-Tip" || constraint.TargetArmature != "Armature" {
		t.Fatalf("mid constraint mismatch: %+v", constraint)
	}
	if constraint.OwnerSpace != model.SPACE_LOCAL || constraint.TargetSpace != model.SPACE_LOCAL {
		t.Fatalf("constraint spaces should be local: %+v", constraint)
	}
	if tip := requirePoseBone(t, armature, "Tip"); len(tip.Constraints) != 1 {
		t.Fatalf("tip constraint count mismatch: %d", len(tip.Constraints))
	}
	if root := requirePoseBone(t, armature, "Root"); len(root.Constraints) != 0 {
		t.Fatalf("first bone should not be constrained: %d", len(root.Constraints))
	}

	wantEvents := []RigProgressEventType{
		RigProgressEventTypeStarted,
		RigProgressEventTypeChainResolved,
		RigProgressEventTypeTopologyCommitted,
		RigProgressEventTypeConstraintsDeclared,
		RigProgressEventTypeCompleted,
	}
	if len(reporter.events) != len(wantEvents) {
		t.Fatalf("event count mismatch: got=%d want=%d", len(reporter.events), len(wantEvents))
	}
	for i, want := range wantEvents {
		if reporter.events[i].Type != want || reporter.events[i].Procedure != ProcedureKindLeverMechanism {
			t.Fatalf("event mismatch: index=%d got=%+v want=%s", i, reporter.events[i], want)
		}
	}
	if reporter.events[1].ChainLength != 3 || reporter.events[3].ConstraintCount != 2 {
		t.Fatalf("event payload mismatch: %+v", reporter.events)
	}
}

func TestCreateLeverMechanismRerunConverges(t *testing.T) {
	armature := newStraightChainArmature(t)
	uc := NewRigUsecase(RigUsecaseDeps{})

	first, err := uc.CreateLeverMechanism(armature, []string{"Root", "Tip"})
	if err != nil {
		t.Fatalf("first lever failed: %v", err)
	}
	second, err := uc.CreateLeverMechanism(armature, []string{"Root", "Tip"})
	if err != nil {
		t.Fatalf("second lever failed: %v", err)
	}
	assertNames(t, second, first)
	if armature.Len() != 6 {
		t.Fatalf("rerun should not create extra bones: len=%d", armature.Len())
	}
	assertSpan(t, requireEditBone(t, armature, "CTRL-PIVOT-Tip"), mmath.NewVec3(0, 1, 0), mmath.NewVec3(0, 3, 0))
}

func TestCreateLeverMechanismBentChainUsesAxisFrame(t *testing.T) {
	armature, err := model.NewArmatureFromRecords("Armature", []model.BoneRecord{
		newTestBone("Root", mmath.NewVec3(0, 0, 0), mmath.NewVec3(0, 1, 0), ""),
		newTestBone("Mid", mmath.NewVec3(0, 1, 0), mmath.NewVec3(0, 2, 1), "Root"),
	})
	if err != nil {
		t.Fatalf("armature build failed: %v", err)
	}
	uc := NewRigUsecase(RigUsecaseDeps{})
	if _, err := uc.CreateLeverMechanism(armature, []string{"Root", "Mid"}); err != nil {
		t.Fatalf("lever failed: %v", err)
	}
	_, _, bitangent, err := mmath.AxisFrame(mmath.NewVec3(0, 1, 0), mmath.NewVec3(0, 0, 0), mmath.NewVec3(0, 2, 1))
	if err != nil {
		t.Fatalf("axis frame failed: %v", err)
	}
	root := requireEditBone(t, armature, "CTRL-ROOT-Root")
	assertSpan(t, root, mmath.NewVec3(0, 1, 0), mmath.NewVec3(0, 1, 0).Added(bitangent))
}

func TestCreateLeverMechanismMovesControlsToLayer(t *testing.T) {
	armature := newStraightChainArmature(t)
	uc := NewRigUsecase(RigUsecaseDeps{ControlLayerName: "Controls"})
	names, err := uc.CreateLeverMechanism(armature, []string{"Root", "Tip"})
	if err != nil {
		t.Fatalf("lever failed: %v", err)
	}
	for _, name := range names {
		bone := requireEditBone(t, armature, name)
		if len(bone.Layers) != 1 || bone.Layers[0] != 1 {
			t.Fatalf("control layer mismatch: bone=%s layers=%v", name, bone.Layers)
		}
	}
	if layerName, ok := armature.LayerName(1); !ok || layerName != "Controls" {
		t.Fatalf("layer name mismatch: %s", layerName)
	}
	if bone := requireEditBone(t, armature, "Mid"); len(bone.Layers) != 1 || bone.Layers[0] != 0 {
		t.Fatalf("source bone layer should be kept: %v", bone.Layers)
	}
}

func TestCreateLeverMechanismRejectsInvalidSelection(t *testing.T) {
	armature := newStraightChainArmature(t)
	uc := NewRigUsecase(RigUsecaseDeps{})

	if _, err := uc.CreateLeverMechanism(armature, []string{"Root"}); !errors.Is(err, merrors.ErrSelection) {
		t.Fatalf("single selection should fail with selection error: %v", err)
	}
	if _, err := uc.CreateLeverMechanism(armature, []string{"Root", "Missing"}); !errors.Is(err, merrors.ErrNoPathFound) {
		t.Fatalf("missing bone should fail with no path: %v", err)
	}
	if armature.Len() != 3 {
		t.Fatalf("failed validation should not create bones: len=%d", armature.Len())
	}
}

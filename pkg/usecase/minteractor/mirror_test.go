// 指示: miu200521358
package minteractor

import (
	"errors"
	"testing"

	"github.com/miu200521358/mu_rigtools/pkg/domain/mmath"
	"github.com/miu200521358/mu_rigtools/pkg/domain/model"
	"github.com/miu200521358/mu_rigtools/pkg/domain/model/merrors"
)

func newSymmetricArmature(t *testing.T) *model.Armature {
	t.Helper()
	armature, err := model.NewArmatureFromRecords("Armature", []model.BoneRecord{
		newTestBone("spine", mmath.NewVec3(0, 1, 0), mmath.NewVec3(0, 2, 0), ""),
		newTestBone("arm.L", mmath.NewVec3(0.2, 2, 0), mmath.NewVec3(1, 2, 0), "spine"),
		newTestBone("arm.R", mmath.NewVec3(-0.2, 2, 0), mmath.NewVec3(-1, 2, 0), "spine"),
	})
	if err != nil {
		t.Fatalf("armature build failed: %v", err)
	}
	return armature
}

func TestMirrorBonesFlipsOncePerSide(t *testing.T) {
	armature := newSymmetricArmature(t)
	uc := NewRigUsecase(RigUsecaseDeps{})

	result, err := uc.MirrorBones(armature, []string{"arm.L", "arm.R", "missing"})
	if err != nil {
		t.Fatalf("mirror failed: %v", err)
	}
	assertNames(t, result.Mirrored, []string{"arm.L"})
	assertNames(t, result.Skipped, []string{"arm.R"})
	assertNames(t, result.Missing, []string{"missing"})

	assertSpan(t, requireEditBone(t, armature, "arm.L"), mmath.NewVec3(0.2, 2, 0), mmath.NewVec3(-0.6, 2, 0))
	assertSpan(t, requireEditBone(t, armature, "arm.R"), mmath.NewVec3(-0.2, 2, 0), mmath.NewVec3(-1, 2, 0))
}

func TestClearConstraintsCountsMissingBones(t *testing.T) {
	armature := newStraightChainArmature(t)
	uc := NewRigUsecase(RigUsecaseDeps{})
	if _, err := uc.CreateTargetArmature(armature, []string{"Root", "Mid"}); err != nil {
		t.Fatalf("target failed: %v", err)
	}
	if _, err := uc.CreateTargetArmature(armature, []string{"Root"}); err != nil {
		t.Fatalf("target rerun failed: %v", err)
	}

	result, err := uc.ClearConstraints(armature, []string{"Root", "Mid", "Tip", "missing"})
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	assertNames(t, result.Cleared, []string{"Root", "Mid", "Tip"})
	assertNames(t, result.Missing, []string{"missing"})
	if result.Removed != 3 {
		t.Fatalf("removed count mismatch: %d", result.Removed)
	}
	if pose := requirePoseBone(t, armature, "Root"); len(pose.Constraints) != 0 {
		t.Fatalf("constraints should be cleared: %+v", pose.Constraints)
	}
}

func TestToggleDeformationFlipsFlag(t *testing.T) {
	armature := newStraightChainArmature(t)
	uc := NewRigUsecase(RigUsecaseDeps{})

	toggled, err := uc.ToggleDeformation(armature, []string{"Root", "Mid"})
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	assertNames(t, toggled, []string{"Root", "Mid"})
	if requireEditBone(t, armature, "Root").UseDeform || !requireEditBone(t, armature, "Tip").UseDeform {
		t.Fatalf("deform flags mismatch after toggle")
	}
	if _, err := uc.ToggleDeformation(armature, []string{"Root"}); err != nil {
		t.Fatalf("toggle back failed: %v", err)
	}
	if !requireEditBone(t, armature, "Root").UseDeform {
		t.Fatalf("second toggle should restore deform")
	}
	if _, err := uc.ToggleDeformation(armature, []string{"missing"}); !errors.Is(err, merrors.ErrMissingBone) {
		t.Fatalf("missing bone should fail: %v", err)
	}
}

func TestMoveBonesToLayerReusesNamedLayer(t *testing.T) {
	armature := newStraightChainArmature(t)
	uc := NewRigUsecase(RigUsecaseDeps{})

	layer, err := uc.MoveBonesToLayer(armature, []string{"Tip"}, "Controls")
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}
	again, err := uc.MoveBonesToLayer(armature, []string{"Mid"}, "Controls")
	if err != nil {
		t.Fatalf("move again failed: %v", err)
	}
	if layer != 1 || again != layer {
		t.Fatalf("layer mismatch: first=%d second=%d", layer, again)
	}
	if bone := requireEditBone(t, armature, "Mid"); len(bone.Layers) != 1 || bone.Layers[0] != layer {
		t.Fatalf("bone layers mismatch: %v", bone.Layers)
	}
	if _, err := uc.MoveBonesToLayer(armature, []string{"Mid"}, " "); !errors.Is(err, merrors.ErrInvalidLayer) {
		t.Fatalf("blank layer name should fail: %v", err)
	}
}

func TestResolveChainDoesNotModifyArmature(t *testing.T) {
	armature := newStraightChainArmature(t)
	uc := NewRigUsecase(RigUsecaseDeps{})
	chain, err := uc.ResolveChain(armature, "Tip", "Root")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	assertNames(t, chain, []string{"Root", "Mid", "Tip"})
	if armature.SwitchCount() != 0 || armature.Len() != 3 {
		t.Fatalf("resolve should not touch armature: switches=%d len=%d", armature.SwitchCount(), armature.Len())
	}
	if _, err := uc.ResolveChain(armature, "Root", ""); !errors.Is(err, merrors.ErrSelection) {
		t.Fatalf("empty endpoint should fail: %v", err)
	}
}

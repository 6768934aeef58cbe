// 指示: miu200521358
package mchain

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/miu200521358/mu_rigtools/pkg/domain/mmath"
	"github.com/miu200521358/mu_rigtools/pkg/domain/model"
	"github.com/miu200521358/mu_rigtools/pkg/domain/model/merrors"
)

// newChainTestSnapshot は name:parent 形式の定義からスナップショットを生成する。
func newChainTestSnapshot(t *testing.T, defs [][2]string) *model.Snapshot {
	t.Helper()
	records := make([]model.BoneRecord, 0, len(defs))
	for i, def := range defs {
		records = append(records, model.BoneRecord{
			Name: def[0],
			Rest: model.RestTopology{
				Head:   mmath.NewVec3(0, float64(i), 0),
				Tail:   mmath.NewVec3(0, float64(i+1), 0),
				Parent: def[1],
			},
		})
	}
	snapshot, err := model.NewSnapshotFromRecords("Armature", records)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	return snapshot
}

func humanoidDefs() [][2]string {
	return [][2]string{
		{"hips", ""},
		{"spine", "hips"},
		{"chest", "spine"},
		{"neck", "chest"},
		{"shoulder.L", "chest"},
		{"arm.L", "shoulder.L"},
		{"thigh.L", "hips"},
		{"shin.L", "thigh.L"},
		{"foot.L", "shin.L"},
		{"toe.L", "foot.L"},
		{"thigh.R", "hips"},
		{"shin.R", "thigh.R"},
		{"prop", ""},
	}
}

func TestFindChainAncestorToDescendant(t *testing.T) {
	snapshot := newChainTestSnapshot(t, humanoidDefs())

	chain, err := FindChain(snapshot, "thigh.L", "toe.L")
	if err != nil {
		t.Fatalf("find chain failed: %v", err)
	}
	want := []string{"thigh.L", "shin.L", "foot.L", "toe.L"}
	if !slices.Equal(chain, want) {
		t.Fatalf("chain mismatch: got=%v want=%v", chain, want)
	}

	reversed, err := FindChain(snapshot, "toe.L", "thigh.L")
	if err != nil {
		t.Fatalf("find chain failed: %v", err)
	}
	if !slices.Equal(reversed, want) {
		t.Fatalf("deeper first input should be canonicalized: got=%v want=%v", reversed, want)
	}
}

func TestFindChainThroughCommonAncestor(t *testing.T) {
	snapshot := newChainTestSnapshot(t, humanoidDefs())

	chain, err := FindChain(snapshot, "arm.L", "shin.R")
	if err != nil {
		t.Fatalf("find chain failed: %v", err)
	}
	want := []string{"shin.R", "thigh.R", "hips", "spine", "chest", "shoulder.L", "arm.L"}
	if !slices.Equal(chain, want) {
		t.Fatalf("chain mismatch: got=%v want=%v", chain, want)
	}
}

func TestFindChainEqualDepthReversesWithInput(t *testing.T) {
	snapshot := newChainTestSnapshot(t, humanoidDefs())

	forward, err := FindChain(snapshot, "shin.L", "shin.R")
	if err != nil {
		t.Fatalf("find chain failed: %v", err)
	}
	want := []string{"shin.L", "thigh.L", "hips", "thigh.R", "shin.R"}
	if !slices.Equal(forward, want) {
		t.Fatalf("chain mismatch: got=%v want=%v", forward, want)
	}

	backward, err := FindChain(snapshot, "shin.R", "shin.L")
	if err != nil {
		t.Fatalf("find chain failed: %v", err)
	}
	slices.Reverse(backward)
	if !slices.Equal(backward, forward) {
		t.Fatalf("reversed input should reverse chain: got=%v want=%v", backward, forward)
	}
}

func TestFindChainSameBone(t *testing.T) {
	snapshot := newChainTestSnapshot(t, humanoidDefs())
	chain, err := FindChain(snapshot, "spine", "spine")
	if err != nil {
		t.Fatalf("find chain failed: %v", err)
	}
	if !slices.Equal(chain, []string{"spine"}) {
		t.Fatalf("chain mismatch: %v", chain)
	}
}

func TestFindChainNoCommonRoot(t *testing.T) {
	snapshot := newChainTestSnapshot(t, humanoidDefs())

	chain, err := FindChain(snapshot, "prop", "toe.L")
	if !errors.Is(err, merrors.ErrNoCommonRoot) {
		t.Fatalf("expected no common root, got %v", err)
	}
	if chain != nil {
		t.Fatalf("chain should be nil on failure: %v", chain)
	}
	if merrors.ExtractErrorID(err) != merrors.ErrorIDNoCommonRoot {
		t.Fatalf("expected error id %s, got %s", merrors.ErrorIDNoCommonRoot, merrors.ExtractErrorID(err))
	}
}

func TestFindChainMissingBone(t *testing.T) {
	snapshot := newChainTestSnapshot(t, humanoidDefs())

	_, err := FindChain(snapshot, "hips", "tail")
	if !errors.Is(err, merrors.ErrNoPathFound) {
		t.Fatalf("expected no path found, got %v", err)
	}
	if !errors.Is(err, merrors.ErrMissingBone) {
		t.Fatalf("expected missing bone cause, got %v", err)
	}
}

func TestFindChainPropertiesOnRandomTrees(t *testing.T) {
	rng := rand.New(rand.NewSource(20260101))
	for trial := 0; trial < 20; trial++ {
		count := 2 + rng.Intn(24)
		defs := make([][2]string, 0, count)
		for i := 0; i < count; i++ {
			parent := ""
			if i > 0 {
				parent = fmt.Sprintf("b%02d", rng.Intn(i))
			}
			defs = append(defs, [2]string{fmt.Sprintf("b%02d", i), parent})
		}
		snapshot := newChainTestSnapshot(t, defs)

		for a := 0; a < count; a++ {
			for b := 0; b < count; b++ {
				nameA := defs[a][0]
				nameB := defs[b][0]
				chain, err := FindChain(snapshot, nameA, nameB)
				if err != nil {
					t.Fatalf("find chain failed: trial=%d a=%s b=%s err=%v", trial, nameA, nameB, err)
				}
				assertChainProperties(t, snapshot, chain, nameA, nameB)

				other, err := FindChain(snapshot, nameB, nameA)
				if err != nil {
					t.Fatalf("find chain failed: trial=%d a=%s b=%s err=%v", trial, nameB, nameA, err)
				}
				if !slices.Equal(other, chain) {
					slices.Reverse(other)
					if !slices.Equal(other, chain) {
						t.Fatalf("swapped input should give same or reversed chain: a=%v b=%v", chain, other)
					}
				}
			}
		}
	}
}

// assertChainProperties はチェーンの端点・隣接関係・共通祖先の一意性を検証する。
func assertChainProperties(t *testing.T, snapshot *model.Snapshot, chain []string, a string, b string) {
	t.Helper()
	if len(chain) == 0 {
		t.Fatalf("chain should not be empty: a=%s b=%s", a, b)
	}
	ends := []string{chain[0], chain[len(chain)-1]}
	if !(ends[0] == a && ends[1] == b) && !(ends[0] == b && ends[1] == a) {
		t.Fatalf("chain endpoints mismatch: chain=%v a=%s b=%s", chain, a, b)
	}
	depthOf := func(name string) int {
		index, _ := snapshot.IndexOf(name)
		depth := 0
		for snapshot.ParentIndex(index) >= 0 {
			index = snapshot.ParentIndex(index)
			depth++
		}
		return depth
	}
	if depthOf(chain[0]) > depthOf(chain[len(chain)-1]) {
		t.Fatalf("chain should start at the shallower bone: %v", chain)
	}
	if !isLinkedChain(snapshot, chain) {
		t.Fatalf("consecutive bones should be parent and child: %v", chain)
	}
	seen := map[string]struct{}{}
	shallowest := chain[0]
	for _, name := range chain {
		if _, exists := seen[name]; exists {
			t.Fatalf("bone appears twice in chain: %v", chain)
		}
		seen[name] = struct{}{}
		if depthOf(name) < depthOf(shallowest) {
			shallowest = name
		}
	}
	count := 0
	for _, name := range chain {
		if depthOf(name) == depthOf(shallowest) {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("common ancestor should appear exactly once: %v", chain)
	}
}

// isLinkedChain は隣接ボーンが全て親子関係にあるか判定する。
func isLinkedChain(snapshot *model.Snapshot, chain []string) bool {
	for i := 0; i+1 < len(chain); i++ {
		a, aOK := snapshot.IndexOf(chain[i])
		b, bOK := snapshot.IndexOf(chain[i+1])
		if !aOK || !bOK {
			return false
		}
		if snapshot.ParentIndex(a) != b && snapshot.ParentIndex(b) != a {
			return false
		}
	}
	return true
}

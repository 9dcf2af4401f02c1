package flock

import (
	"math/rand/v2"
	"testing"
)

func buildPursuit(n int, seed uint64) *PursuitTree {
	rng := rand.New(rand.NewPCG(seed, seed))
	p := NewPursuitTree(n)
	for i := 1; i < n; i++ {
		p.Insert(i, rng)
	}
	return p
}

func TestPursuitTreeShape(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 50, 1000} {
		p := buildPursuit(n, 42)
		if p.Len() != n {
			t.Fatalf("n=%d: Len() = %d", n, p.Len())
		}
		if n > 0 && p.Parent(0) != NoNode {
			t.Errorf("n=%d: root has parent %d", n, p.Parent(0))
		}

		visits := make([]int, n)
		depths := make([]int, n)
		p.Walk(func(node, depth int) {
			visits[node]++
			depths[node] = depth
		})
		for i, v := range visits {
			if v != 1 {
				t.Errorf("n=%d: node %d visited %d times", n, i, v)
			}
		}

		for i := 1; i < n; i++ {
			parent := p.Parent(i)
			if parent == NoNode {
				t.Errorf("n=%d: follower %d is detached", n, i)
				continue
			}
			if p.Left(parent) != i && p.Right(parent) != i {
				t.Errorf("n=%d: node %d is not a child of its parent %d", n, i, parent)
			}
			if depths[i] != depths[parent]+1 {
				t.Errorf("n=%d: node %d at depth %d under parent at depth %d", n, i, depths[i], depths[parent])
			}
		}
		if got := len(p.Order()); got != max(n-1, 0) {
			t.Errorf("n=%d: Order() has %d followers", n, got)
		}
	}
}

func TestPursuitTreeFillsLeftThenRight(t *testing.T) {
	p := buildPursuit(3, 1)
	if p.Left(0) != 1 || p.Right(0) != 2 {
		t.Errorf("root children = %d, %d, want 1, 2", p.Left(0), p.Right(0))
	}
	if p.Left(1) != NoNode || p.Right(2) != NoNode {
		t.Errorf("followers should be leaves")
	}
}

func TestPursuitTreeDeterministic(t *testing.T) {
	a := buildPursuit(300, 7)
	b := buildPursuit(300, 7)
	for i := 0; i < 300; i++ {
		if a.Parent(i) != b.Parent(i) || a.Left(i) != b.Left(i) || a.Right(i) != b.Right(i) {
			t.Fatalf("node %d differs between two builds with the same seed", i)
		}
	}
}

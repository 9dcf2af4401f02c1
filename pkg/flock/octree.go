package flock

import (
	"math/bits"

	"github.com/lao-tseu-is-alive/go-flock-octree/pkg/geometry"
)

// Hit is a directed proximity violation: Neighbour stands closer to Target
// than Target's minimum separation. Force points from Neighbour to Target.
type Hit struct {
	Target    int
	Neighbour int
	Force     geometry.Vector3D
}

// NodeInfo is a read-only view of one octree node, handed out by Walk.
type NodeInfo struct {
	ID        int
	Parent    int // -1 for the root
	Depth     int
	Region    geometry.Box
	Residents int   // boids kept by this node, not pushed into a child
	Populated uint8 // bit i is set when octant i has a child
}

// IsLeaf reports whether the node has no children.
func (n NodeInfo) IsLeaf() bool {
	return n.Populated == 0
}

type octNode struct {
	region    geometry.Box
	residents []int
	children  [8]int // 0 means empty, the root is never a child
	populated uint8
	parent    int
	depth     int
}

// Octree is an adaptive 8-way partition of a region over a snapshot of boid
// indices. Nodes live in one arena slice and reference each other by index.
//
// Membership is decided at build time; distances are read from the boid
// slice at query time, so a boid moved after the build is still found in the
// node it was assigned to.
//
// Sibling subtrees are never scanned against each other; pairs across them
// are only found through the boids an ancestor kept. A boid closer to an
// octant face than its own separation is kept by the parent, so every pair
// that was close at build time shares a node. A boid that moves after the
// build can reach a sibling subtree unnoticed. When the separation is not
// smaller than half the octant size no boid fits a child and the node
// degrades to pairwise checks.
type Octree struct {
	nodes        []octNode
	boids        []Boid
	leafCapacity int
	minSize      float64
}

// BuildOctree partitions region over every boid of the slice.
// A node becomes a leaf when it holds at most leafCapacity boids or when any
// of its dimensions is below minSize.
func BuildOctree(region geometry.Box, boids []Boid, leafCapacity int, minSize float64) *Octree {
	all := make([]int, len(boids))
	for i := range all {
		all[i] = i
	}
	return buildOctree(region, boids, all, leafCapacity, minSize)
}

// BuildOctreeOf partitions region over the boids listed in members only.
// Hits and residents still carry indices into boids. members is not modified.
func BuildOctreeOf(region geometry.Box, boids []Boid, members []int, leafCapacity int, minSize float64) *Octree {
	return buildOctree(region, boids, append([]int(nil), members...), leafCapacity, minSize)
}

func buildOctree(region geometry.Box, boids []Boid, residents []int, leafCapacity int, minSize float64) *Octree {
	if minSize <= 0 {
		minSize = DefaultMinOctantSize
	}
	t := &Octree{
		nodes:        make([]octNode, 0, 1+len(residents)/2),
		boids:        boids,
		leafCapacity: leafCapacity,
		minSize:      minSize,
	}
	t.build(region, residents, -1, 0)
	return t
}

// build appends the node for region and recursively its children, it returns the node id.
// residents is owned by the call and is filtered in place.
func (t *Octree) build(region geometry.Box, residents []int, parent, depth int) int {
	id := len(t.nodes)
	t.nodes = append(t.nodes, octNode{region: region, parent: parent, depth: depth})

	if len(residents) <= t.leafCapacity || region.MinDimension() < t.minSize {
		t.nodes[id].residents = residents
		return id
	}

	var octants [8]geometry.Box
	for o := range octants {
		octants[o] = region.Octant(o)
	}

	// first matching octant wins, boids matching none stay here
	var buckets [8][]int
	kept := residents[:0]
	for _, i := range residents {
		b := &t.boids[i]
		placed := false
		for o := range octants {
			if octants[o].ContainsInset(b.Position, b.minimumSeparation) {
				buckets[o] = append(buckets[o], i)
				placed = true
				break
			}
		}
		if !placed {
			kept = append(kept, i)
		}
	}
	t.nodes[id].residents = kept

	for o := range buckets {
		if len(buckets[o]) == 0 {
			continue
		}
		// t.nodes may grow during the recursion: index it again afterwards
		child := t.build(octants[o], buckets[o], id, depth+1)
		t.nodes[id].children[o] = child
		t.nodes[id].populated |= 1 << o
	}
	return id
}

// FindCollisions returns every hit discovered by walking the tree and
// carrying the boids of the ancestors down to each node.
func (t *Octree) FindCollisions() []Hit {
	if len(t.nodes) == 0 {
		return nil
	}
	return t.findCollisions(0, nil, nil)
}

func (t *Octree) findCollisions(id int, carried []int, hits []Hit) []Hit {
	n := &t.nodes[id]

	for _, a := range carried {
		for _, r := range n.residents {
			hits = t.check(a, r, hits)
			hits = t.check(r, a, hits)
		}
	}
	for _, a := range n.residents {
		for _, b := range n.residents {
			if a != b {
				hits = t.check(a, b, hits)
			}
		}
	}

	if n.populated == 0 {
		return hits
	}
	// full slice expression: siblings must not share the appended tail
	next := append(carried[:len(carried):len(carried)], n.residents...)
	for o := 0; o < 8; o++ {
		if n.populated&(1<<o) != 0 {
			hits = t.findCollisions(n.children[o], next, hits)
		}
	}
	return hits
}

func (t *Octree) check(target, neighbour int, hits []Hit) []Hit {
	tb := &t.boids[target]
	f := tb.Position.Sub(t.boids[neighbour].Position)
	if f.Len() < tb.minimumSeparation {
		hits = append(hits, Hit{Target: target, Neighbour: neighbour, Force: f})
	}
	return hits
}

// Walk visits the nodes in pre-order. Returning false from fn skips the
// children of the visited node. The tree is not modified.
func (t *Octree) Walk(fn func(NodeInfo) bool) {
	if len(t.nodes) == 0 {
		return
	}
	t.walk(0, fn)
}

func (t *Octree) walk(id int, fn func(NodeInfo) bool) {
	n := &t.nodes[id]
	if !fn(t.info(id)) {
		return
	}
	for o := 0; o < 8; o++ {
		if n.populated&(1<<o) != 0 {
			t.walk(n.children[o], fn)
		}
	}
}

func (t *Octree) info(id int) NodeInfo {
	n := &t.nodes[id]
	return NodeInfo{
		ID:        id,
		Parent:    n.parent,
		Depth:     n.depth,
		Region:    n.region,
		Residents: len(n.residents),
		Populated: n.populated,
	}
}

// Node returns the view of node id, the root being 0.
func (t *Octree) Node(id int) (NodeInfo, bool) {
	if id < 0 || id >= len(t.nodes) {
		return NodeInfo{}, false
	}
	return t.info(id), true
}

// Children returns the ids of the populated children of node id, in octant order.
func (t *Octree) Children(id int) []int {
	if id < 0 || id >= len(t.nodes) {
		return nil
	}
	n := &t.nodes[id]
	out := make([]int, 0, bits.OnesCount8(n.populated))
	for o := 0; o < 8; o++ {
		if n.populated&(1<<o) != 0 {
			out = append(out, n.children[o])
		}
	}
	return out
}

// Residents returns a copy of the boid indices kept by node id.
func (t *Octree) Residents(id int) []int {
	if id < 0 || id >= len(t.nodes) {
		return nil
	}
	return append([]int(nil), t.nodes[id].residents...)
}

// Collect returns every boid index stored in the subtree rooted at id.
func (t *Octree) Collect(id int) []int {
	if id < 0 || id >= len(t.nodes) {
		return nil
	}
	var out []int
	var collect func(int)
	collect = func(id int) {
		n := &t.nodes[id]
		out = append(out, n.residents...)
		for o := 0; o < 8; o++ {
			if n.populated&(1<<o) != 0 {
				collect(n.children[o])
			}
		}
	}
	collect(id)
	return out
}

// NodeCount returns the number of nodes in the arena.
func (t *Octree) NodeCount() int {
	return len(t.nodes)
}

// Depth returns the depth of the deepest node, 0 for a lone root.
func (t *Octree) Depth() int {
	depth := 0
	for i := range t.nodes {
		depth = max(depth, t.nodes[i].depth)
	}
	return depth
}

// Leaves returns the number of nodes without children.
func (t *Octree) Leaves() int {
	leaves := 0
	for i := range t.nodes {
		if t.nodes[i].populated == 0 {
			leaves++
		}
	}
	return leaves
}

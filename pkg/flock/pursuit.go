package flock

import "math/rand/v2"

// NoNode marks a missing link in the pursuit tree.
const NoNode = -1

type pursuitNode struct {
	left, right, parent int
}

// PursuitTree is an unbalanced binary tree over the boids of a flock, stored
// as an arena indexed like the flock's boid slice. Node 0 is the leader.
// Every follower pursues its parent.
type PursuitTree struct {
	nodes []pursuitNode
	order []int
}

// NewPursuitTree creates a tree of size detached nodes rooted at node 0.
func NewPursuitTree(size int) *PursuitTree {
	nodes := make([]pursuitNode, size)
	for i := range nodes {
		nodes[i] = pursuitNode{left: NoNode, right: NoNode, parent: NoNode}
	}
	return &PursuitTree{nodes: nodes, order: make([]int, 0, max(size-1, 0))}
}

// Insert attaches child below the root: it takes the first free slot,
// left before right, descending into a random child while both are taken.
func (p *PursuitTree) Insert(child int, rng *rand.Rand) {
	node := 0
	for {
		n := &p.nodes[node]
		if n.left == NoNode {
			n.left = child
			break
		}
		if n.right == NoNode {
			n.right = child
			break
		}
		if rng.IntN(2) == 1 {
			node = n.left
		} else {
			node = n.right
		}
	}
	p.nodes[child].parent = node
	p.order = append(p.order, child)
}

// Len returns the number of nodes, root included.
func (p *PursuitTree) Len() int {
	return len(p.nodes)
}

// Parent returns the node pursued by i, or NoNode for the root.
func (p *PursuitTree) Parent(i int) int {
	return p.nodes[i].parent
}

// Left returns the left child of i, or NoNode.
func (p *PursuitTree) Left(i int) int {
	return p.nodes[i].left
}

// Right returns the right child of i, or NoNode.
func (p *PursuitTree) Right(i int) int {
	return p.nodes[i].right
}

// Order returns the followers in insertion order, which is the order they
// are steered in.
func (p *PursuitTree) Order() []int {
	return p.order
}

// Walk visits the tree depth first from the root, left before right.
// Each node is visited at most once even if the links were corrupted.
func (p *PursuitTree) Walk(fn func(node, depth int)) {
	if len(p.nodes) == 0 {
		return
	}
	type frame struct{ node, depth int }
	seen := make([]bool, len(p.nodes))
	stack := []frame{{0, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[f.node] {
			continue
		}
		seen[f.node] = true
		fn(f.node, f.depth)
		n := p.nodes[f.node]
		if n.right != NoNode {
			stack = append(stack, frame{n.right, f.depth + 1})
		}
		if n.left != NoNode {
			stack = append(stack, frame{n.left, f.depth + 1})
		}
	}
}

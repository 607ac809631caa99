package tokens

import "github.com/hellenic-development/figma-tokens/pkg/figma"

// Walk visits every node of the tree exactly once in depth-first pre-order,
// node before children. Absent children are treated as empty; the tree is
// acyclic by construction upstream, so no revisit guard is kept. The visitor
// decides what, if anything, to accumulate per node.
func Walk(root *figma.Node, visit func(n *figma.Node)) {
	if root == nil {
		return
	}
	visit(root)
	for i := range root.Children {
		Walk(&root.Children[i], visit)
	}
}

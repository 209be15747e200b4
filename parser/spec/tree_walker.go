package spec

// Visitor is called once per node and once per leaf. parent is the node that
// owns c; it is nil when c is the root of the traversal and has no parent.
// Returning false stops the traversal.
type Visitor interface {
	Visit(parent *Node, c Content) bool
}

type VisitorFunc func(parent *Node, c Content) bool

func (f VisitorFunc) Visit(parent *Node, c Content) bool {
	return f(parent, c)
}

// Traverse walks the subtree rooted at n depth-first, pre-order. The visitor
// may mutate the tree: each child list is copied before it is walked, so
// children added during a visit are not seen in this pass, and a node that
// detaches itself while being visited has its subtree skipped.
func (n *Node) Traverse(v Visitor) {
	if v == nil {
		return
	}
	n.traverse(v)
}

func (n *Node) traverse(v Visitor) bool {
	hadParent := n.parentNode != nil
	if !v.Visit(n.parentNode, n) {
		return false
	}
	if hadParent && n.parentNode == nil {
		return true
	}

	for _, c := range n.Children() {
		var toContinue bool
		switch child := c.(type) {
		case *Node:
			// removed by an earlier visit
			if child.parentNode != n {
				continue
			}
			toContinue = child.traverse(v)
		default:
			toContinue = v.Visit(n, c)
		}
		if !toContinue {
			return false
		}
	}
	return true
}

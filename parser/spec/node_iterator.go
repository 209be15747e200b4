package spec

// NodeIterator walks the elements below root in document order and returns
// the ones accepted by its filter. It follows the live tree, so elements
// added after the reference node are still returned. The reference node must
// stay attached while iterating.
type NodeIterator struct {
	root          *Node
	referenceNode *Node
	filter        Condition
}

// NewNodeIterator returns an iterator positioned before the first element
// below root. A nil filter accepts everything.
func NewNodeIterator(root *Node, filter Condition) *NodeIterator {
	return &NodeIterator{
		root:          root,
		referenceNode: root,
		filter:        filter,
	}
}

func (it *NodeIterator) Root() *Node {
	return it.root
}

// NextNode returns the next accepted element, or nil once the subtree is
// exhausted.
func (it *NodeIterator) NextNode() *Node {
	for {
		next := it.following(it.referenceNode)
		if next == nil {
			return nil
		}
		it.referenceNode = next
		if it.filter == nil || it.filter.Satisfy(next) {
			return next
		}
	}
}

func (it *NodeIterator) Reset() {
	it.referenceNode = it.root
}

func (it *NodeIterator) following(n *Node) *Node {
	if n == nil {
		return nil
	}
	if c := firstChildTag(n); c != nil {
		return c
	}
	for cur := n; cur != nil && cur != it.root; cur = cur.parentNode {
		if s := nextSiblingTag(cur); s != nil {
			return s
		}
	}
	return nil
}

func firstChildTag(n *Node) *Node {
	for _, c := range n.childNodes {
		if child, ok := c.(*Node); ok {
			return child
		}
	}
	return nil
}

func nextSiblingTag(n *Node) *Node {
	parent := n.parentNode
	if parent == nil {
		return nil
	}
	i := parent.childNodes.Contains(n)
	for _, c := range parent.childNodes[i+1:] {
		if sibling, ok := c.(*Node); ok {
			return sibling
		}
	}
	return nil
}

package parser

import (
	"github.com/heathj/tagsoup/parser/spec"
)

// prune removes, in one post-order pass, every element matching the prune
// rules of the config. Children are handled before their parent so emptiness
// sees the already pruned subtree.
func (c *TreeConstructor) prune() {
	c.pruneChildren(c.document)
}

func (c *TreeConstructor) pruneChildren(n *spec.Node) {
	for _, child := range n.ChildTags() {
		c.pruneChildren(child)
		if !c.shouldPrune(child) {
			continue
		}
		child.SetPruned(true)
		c.log.WithField("tag", child.Name()).Debug("pruned element")
		c.excise(n, child)
	}
}

func (c *TreeConstructor) shouldPrune(n *spec.Node) bool {
	if c.config.shouldPruneTag(n) {
		return true
	}
	// a reopened copy that never received content
	if n.IsAutoGenerated() && !n.HasChildren() {
		return true
	}
	return c.config.PruneEmpty && !n.HasAttributes() && !c.model.IsEmptyTag(n.Name()) && n.IsEmpty()
}

func (c *TreeConstructor) excise(parent, child *spec.Node) {
	if c.config.MoveContentsUp {
		decls := child.NamespaceDeclarations()
		for _, gc := range child.Children() {
			if moved, ok := gc.(*spec.Node); ok && c.config.CarryNamespacesOnMove {
				carryNamespaces(moved, decls)
			}
			parent.InsertBefore(child, gc)
		}
	}
	parent.RemoveChild(child)
	child.RemoveAllChildren()
}

func carryNamespaces(n *spec.Node, decls map[string]string) {
	own := n.NamespaceDeclarations()
	for prefix, uri := range decls {
		if _, ok := own[prefix]; !ok {
			n.AddNamespaceDeclaration(prefix, uri)
		}
	}
}

package spec

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

type NodeType uint16

const (
	ElementNode NodeType = iota + 1
	TextNode
	CommentNode
	DocumentTypeNode
)

// Content is an entry of a Node's child list. Only *Node, *Text, *Comment and
// *DocumentType implement it, and a *DocumentType is only ever stored on the
// document root.
type Content interface {
	NodeType() NodeType
	content()
}

// NewDOMElement returns a detached element named name. The name is kept as
// given; Name lower-cases it unless the node is classified as foreign markup.
func NewDOMElement(name string) *Node {
	return &Node{
		name:       name,
		attributes: NewNamedNodeMap(),
	}
}

// NewDocumentNode returns the unnamed node used as the root of a repaired
// tree.
func NewDocumentNode() *Node {
	return NewDOMElement("")
}

// Node is an element of the repaired tree.
type Node struct {
	name           string
	attributes     *NamedNodeMap
	childNodes     NodeList
	parentNode     *Node
	docType        *DocumentType
	nsDeclarations map[string]string

	// autoGenerated marks a start tag synthesized by the tree constructor,
	// e.g. the second <i> in <b><i>foo</b>bar.
	autoGenerated bool
	// foreignMarkupKnown is false until the node has been classified as
	// either HTML or foreign markup.
	foreignMarkupKnown bool
	isForeignMarkup    bool
	pruned             bool
	formed             bool
	isCopy             bool
	rawData            bool
}

func (n *Node) NodeType() NodeType { return ElementNode }
func (n *Node) content()           {}

// Name returns the tag name, lower-cased unless the node is foreign markup.
func (n *Node) Name() string {
	if n.isForeignMarkup {
		return n.name
	}
	return strings.ToLower(n.name)
}

// RawName returns the tag name exactly as it was created.
func (n *Node) RawName() string {
	return n.name
}

func (n *Node) Parent() *Node {
	return n.parentNode
}

func (n *Node) IsDocument() bool {
	return n.name == "" && n.parentNode == nil
}

func (n *Node) DocType() *DocumentType {
	return n.docType
}

func (n *Node) SetDocType(d *DocumentType) {
	n.docType = d
}

func (n *Node) exposedAttrName(stored string) string {
	if n.foreignMarkupKnown && !n.isForeignMarkup {
		return strings.ToLower(stored)
	}
	return stored
}

// Attributes returns a snapshot of the attributes in insertion order. Names
// are lower-cased once the node is classified as HTML and keep their stored
// casing on foreign nodes. An unclassified node, one not yet placed by the
// tree constructor, also reports the stored casing, while Name already
// lower-cases.
func (n *Node) Attributes() []Attr {
	attrs := make([]Attr, 0, n.attributes.Length())
	for i := 0; i < n.attributes.Length(); i++ {
		a := n.attributes.Item(i)
		attrs = append(attrs, Attr{Name: n.exposedAttrName(a.Name), Value: a.Value})
	}
	return attrs
}

func (n *Node) HasAttributes() bool {
	return n.attributes.Length() > 0
}

func (n *Node) GetAttribute(qualifiedName string) string {
	if a := n.attributes.GetNamedItem(qualifiedName); a != nil {
		return a.Value
	}
	return ""
}

func (n *Node) HasAttribute(qualifiedName string) bool {
	return n.attributes.GetNamedItem(qualifiedName) != nil
}

// SetAttribute adds or overwrites an attribute. Matching is case-insensitive
// and an existing entry keeps its original name. Blank names are ignored.
func (n *Node) SetAttribute(qualifiedName, value string) {
	n.attributes.SetNamedItem(qualifiedName, value)
}

func (n *Node) RemoveAttribute(qualifiedName string) {
	n.attributes.RemoveNamedItem(qualifiedName)
}

// Children returns a snapshot of the child list.
func (n *Node) Children() []Content {
	c := make([]Content, len(n.childNodes))
	copy(c, n.childNodes)
	return c
}

// ChildTags returns the element children only.
func (n *Node) ChildTags() []*Node {
	var tags []*Node
	for _, c := range n.childNodes {
		if child, ok := c.(*Node); ok {
			tags = append(tags, child)
		}
	}
	return tags
}

func (n *Node) HasChildren() bool {
	return len(n.childNodes) > 0
}

// ChildIndex returns the position of c among the children, or -1.
func (n *Node) ChildIndex(c Content) int {
	return n.childNodes.Contains(c)
}

// Text returns the concatenated text of every text leaf below n.
func (n *Node) Text() string {
	var sb strings.Builder
	n.collectText(&sb)
	return sb.String()
}

func (n *Node) collectText(sb *strings.Builder) {
	for _, c := range n.childNodes {
		switch child := c.(type) {
		case *Text:
			sb.WriteString(child.Data)
		case *Node:
			child.collectText(sb)
		}
	}
}

func isNilContent(c Content) bool {
	switch v := c.(type) {
	case nil:
		return true
	case *Node:
		return v == nil
	case *Text:
		return v == nil
	case *Comment:
		return v == nil
	case *DocumentType:
		return v == nil
	}
	return false
}

func (n *Node) checkChild(c Content) {
	switch child := c.(type) {
	case *Node:
		for p := n; p != nil; p = p.parentNode {
			if p == child {
				panic(errors.Wrapf(ErrInvalidChild, "<%s> cannot contain itself", child.Name()))
			}
		}
	case *Text, *Comment:
	default:
		panic(errors.Wrapf(ErrInvalidChild, "%T cannot be a child", c))
	}
}

// adopt detaches c from wherever it currently lives so it can be placed
// under n.
func (n *Node) adopt(c Content) {
	if child, ok := c.(*Node); ok {
		if child.parentNode != nil {
			child.parentNode.RemoveChild(child)
		}
		child.parentNode = n
		return
	}
	if i := n.childNodes.Contains(c); i >= 0 {
		n.childNodes.Remove(i)
	}
}

// AddChild appends c. A nil child is ignored; a *DocumentType, or a node that
// would create a cycle, panics with ErrInvalidChild.
func (n *Node) AddChild(c Content) {
	if isNilContent(c) {
		return
	}
	n.checkChild(c)
	n.adopt(c)
	n.childNodes = append(n.childNodes, c)
}

func (n *Node) AddChildren(cs ...Content) {
	for _, c := range cs {
		n.AddChild(c)
	}
}

// InsertChildAt places c so that it ends up at index i. It panics with
// ErrIndexOutOfRange unless 0 <= i <= len(children).
func (n *Node) InsertChildAt(i int, c Content) {
	if isNilContent(c) {
		return
	}
	if i < 0 || i > len(n.childNodes) {
		panic(errors.Wrapf(ErrIndexOutOfRange, "index %d, %d children", i, len(n.childNodes)))
	}
	n.checkChild(c)
	if j := n.childNodes.Contains(c); j >= 0 && j < i {
		i--
	}
	n.adopt(c)
	n.childNodes.WedgeIn(i, c)
}

// InsertBefore inserts c right before sibling, which must be a child of n.
func (n *Node) InsertBefore(sibling, c Content) {
	i := n.childNodes.Contains(sibling)
	if i == -1 {
		panic(errors.Wrapf(ErrNotChild, "insert before %T", sibling))
	}
	n.InsertChildAt(i, c)
}

// InsertAfter inserts c right after sibling, which must be a child of n.
func (n *Node) InsertAfter(sibling, c Content) {
	i := n.childNodes.Contains(sibling)
	if i == -1 {
		panic(errors.Wrapf(ErrNotChild, "insert after %T", sibling))
	}
	n.InsertChildAt(i+1, c)
}

// RemoveChild reports whether c was a child of n.
func (n *Node) RemoveChild(c Content) bool {
	i := n.childNodes.Contains(c)
	if i == -1 {
		return false
	}
	n.childNodes.Remove(i)
	if child, ok := c.(*Node); ok {
		child.parentNode = nil
	}
	return true
}

// RemoveFromTree detaches n from its parent. It returns false for a root.
func (n *Node) RemoveFromTree() bool {
	if n.parentNode == nil {
		return false
	}
	return n.parentNode.RemoveChild(n)
}

func (n *Node) RemoveAllChildren() {
	for _, c := range n.childNodes {
		if child, ok := c.(*Node); ok {
			child.parentNode = nil
		}
	}
	n.childNodes = nil
}

// MakeCopy returns a childless node with the same name and a copy of the
// attributes, flagged as a copy.
func (n *Node) MakeCopy() *Node {
	return &Node{
		name:       n.name,
		attributes: n.attributes.Clone(),
		isCopy:     true,
	}
}

func (n *Node) IsCopy() bool {
	return n.isCopy
}

func (n *Node) IsAutoGenerated() bool {
	return n.autoGenerated
}

func (n *Node) SetAutoGenerated(autoGenerated bool) {
	n.autoGenerated = autoGenerated
}

func (n *Node) IsPruned() bool {
	return n.pruned
}

func (n *Node) SetPruned(pruned bool) {
	n.pruned = pruned
}

func (n *Node) IsFormed() bool {
	return n.formed
}

func (n *Node) SetFormed() {
	n.formed = true
}

// IsRawData reports whether the text of this node should be written as a
// CDATA section.
func (n *Node) IsRawData() bool {
	return n.rawData
}

func (n *Node) SetRawData(rawData bool) {
	n.rawData = rawData
}

func (n *Node) IsForeignMarkup() bool {
	return n.isForeignMarkup
}

func (n *Node) IsForeignMarkupKnown() bool {
	return n.foreignMarkupKnown
}

// SetForeignMarkup classifies the node. Only the first call has an effect.
func (n *Node) SetForeignMarkup(isForeignMarkup bool) {
	if n.foreignMarkupKnown {
		return
	}
	n.foreignMarkupKnown = true
	n.isForeignMarkup = isForeignMarkup
}

// IsEmpty reports whether the node carries no content: it is pruned, or every
// child is a pruned node or blank text. Comments count as content. Pruning
// runs children first, so an empty subtree is already pruned when its parent
// is asked.
func (n *Node) IsEmpty() bool {
	if n.pruned {
		return true
	}
	for _, c := range n.childNodes {
		switch child := c.(type) {
		case *Node:
			if !child.pruned {
				return false
			}
		case *Text:
			if !child.IsBlank() {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func serializeNodeType(sb *strings.Builder, c Content, ident int) {
	switch node := c.(type) {
	case *Node:
		if node.IsDocument() {
			sb.WriteString("#document")
			return
		}
		sb.WriteString("<" + node.Name() + ">")
		attrs := node.Attributes()
		sort.Slice(attrs, func(i, j int) bool { return attrs[i].Name < attrs[j].Name })
		spaces := indent(ident + 1)
		for _, attr := range attrs {
			sb.WriteString("\n" + spaces + attr.Name + "=\"" + attr.Value + "\"")
		}
	case *Text:
		sb.WriteString("\"" + node.Data + "\"")
	case *Comment:
		sb.WriteString("<!-- " + node.Data + " -->")
	case *DocumentType:
		sb.WriteString("<!DOCTYPE " + node.Name + ">")
	}
}

func indent(ident int) string {
	return "| " + strings.Repeat("  ", max(ident-1, 0))
}

func writeLine(sb *strings.Builder, c Content, ident int) {
	sb.WriteString(indent(ident))
	serializeNodeType(sb, c, ident)
	sb.WriteString("\n")
}

func (n *Node) serialize(sb *strings.Builder, ident int) {
	if n.IsDocument() {
		sb.WriteString("#document\n")
		if n.docType != nil {
			writeLine(sb, n.docType, ident+1)
		}
	} else {
		writeLine(sb, n, ident)
	}
	for _, c := range n.childNodes {
		if child, ok := c.(*Node); ok {
			child.serialize(sb, ident+1)
			continue
		}
		writeLine(sb, c, ident+1)
	}
}

// String renders the tree in the "| <tag>" dump format used by the tree
// construction tests.
func (n *Node) String() string {
	ident := 0
	if !n.IsDocument() {
		ident = 1
	}
	var sb strings.Builder
	n.serialize(&sb, ident)
	return strings.TrimRight(sb.String(), "\n")
}

package parser

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/heathj/tagsoup/parser/spec"
)

// TreeConstructor balances a token stream into a tree. It holds the state of
// a single document and must not be shared between goroutines.
type TreeConstructor struct {
	config              *Config
	model               *ContentModel
	log                 logrus.FieldLogger
	document            *spec.Node
	stackOfOpenElements spec.StackOfOpenElements
	finished            bool
}

// NewTreeConstructor creates a TreeConstructor. A nil config means
// DefaultConfig.
func NewTreeConstructor(cfg *Config) *TreeConstructor {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	doc := spec.NewDocumentNode()
	doc.SetForeignMarkup(false)
	c := &TreeConstructor{
		config:   cfg,
		model:    cfg.contentModel(),
		log:      cfg.logger().WithField("component", "tree"),
		document: doc,
	}
	c.stackOfOpenElements.Push(doc)
	return c
}

// Document returns the root of the tree being built.
func (c *TreeConstructor) Document() *spec.Node {
	return c.document
}

func (c *TreeConstructor) getCurrentNode() *spec.Node {
	return c.stackOfOpenElements.Top()
}

// Process consumes every token in order and returns the finished tree.
func (c *TreeConstructor) Process(tokens []*Token) *spec.Node {
	for _, t := range tokens {
		c.ProcessToken(t)
	}
	return c.Finish()
}

// ProcessToken applies one token. Tokens arriving after Finish are ignored.
func (c *TreeConstructor) ProcessToken(t *Token) {
	if t == nil || c.finished {
		return
	}
	switch t.TokenType {
	case StartTagToken:
		c.processStartTag(t)
	case EndTagToken:
		c.processEndTag(t)
	case CharacterToken:
		c.insertCharacter(t)
	case CommentToken:
		c.getCurrentNode().AddChild(spec.NewComment(t.Data))
	case DocTypeToken:
		if c.document.DocType() != nil {
			c.log.WithField("doctype", t.TagName).Debug("ignoring second doctype")
			return
		}
		c.document.SetDocType(spec.NewDocTypeNode(t.TagName, t.PublicIdentifier, t.SystemIdentifier))
	}
}

// Finish closes every element still open and runs the pruning pass. It is
// safe to call more than once.
func (c *TreeConstructor) Finish() *spec.Node {
	if c.finished {
		return c.document
	}
	for len(c.stackOfOpenElements) > 1 {
		c.popCurrentNode()
	}
	c.document.SetFormed()
	c.prune()
	c.finished = true
	return c.document
}

func (c *TreeConstructor) insertCharacter(t *Token) {
	if t.Data == "" {
		return
	}
	cur := c.getCurrentNode()
	children := cur.Children()
	if len(children) > 0 {
		if last, ok := children[len(children)-1].(*spec.Text); ok {
			last.AppendData(t.Data)
			return
		}
	}
	cur.AddChild(spec.NewText(t.Data))
}

func (c *TreeConstructor) popCurrentNode() *spec.Node {
	if len(c.stackOfOpenElements) <= 1 {
		return nil
	}
	n := c.stackOfOpenElements.Pop()
	n.SetFormed()
	return n
}

func (c *TreeConstructor) inForeignContent() bool {
	if !c.config.ForeignMarkup {
		return false
	}
	cur := c.getCurrentNode()
	return cur.IsForeignMarkup() && !isIntegrationPoint(cur)
}

func (c *TreeConstructor) processStartTag(t *Token) {
	var reopen []*spec.Node
	if !c.inForeignContent() {
		reopen = c.closeImpliedElements(t.TagName)
	}

	elem := c.createElementForToken(t)
	c.getCurrentNode().AddChild(elem)
	c.stackOfOpenElements.Push(elem)
	c.classify(elem)

	if (!elem.IsForeignMarkup() && c.model.IsEmptyTag(elem.Name())) ||
		(elem.IsForeignMarkup() && t.SelfClosing) {
		c.popCurrentNode()
	}
	c.reopenElements(reopen)
}

// closeImpliedElements pops the run of open elements at the top of the stack
// that opening name implicitly closes, innermost first, stopping at the
// first element it does not close. It returns the popped elements that have
// to be reopened, outermost first: those that continue after an element
// further out in the same run.
func (c *TreeConstructor) closeImpliedElements(name string) []*spec.Node {
	info := c.model.TagInfo(name)
	var popped []*spec.Node
	for len(c.stackOfOpenElements) > 1 {
		cur := c.getCurrentNode()
		if cur.IsForeignMarkup() || !info.Closes(cur.Name()) {
			break
		}
		popped = append(popped, c.popCurrentNode())
	}
	if len(popped) > 0 {
		c.log.WithFields(logrus.Fields{
			"tag":    name,
			"closed": len(popped),
		}).Debug("implicitly closed open elements")
	}

	var reopen []*spec.Node
	for i := len(popped) - 1; i >= 0; i-- {
		for j := i + 1; j < len(popped); j++ {
			if c.model.IsContinuable(popped[i].Name(), popped[j].Name()) {
				reopen = append(reopen, popped[i])
				break
			}
		}
	}
	return reopen
}

func matchesEndTag(n *spec.Node, name string) bool {
	if n.IsForeignMarkup() {
		return n.Name() == name
	}
	return strings.EqualFold(n.Name(), name)
}

func (c *TreeConstructor) processEndTag(t *Token) {
	name := t.TagName
	d := c.stackOfOpenElements.LastIndexFunc(func(n *spec.Node) bool {
		return matchesEndTag(n, name)
	}, true)
	if d == -1 {
		c.log.WithField("tag", name).Debug("discarding end tag without open element")
		return
	}

	closed := c.stackOfOpenElements[d].Name()
	var reopen []*spec.Node
	for len(c.stackOfOpenElements)-1 > d {
		forced := c.popCurrentNode()
		if !forced.IsForeignMarkup() && c.model.IsContinuable(forced.Name(), closed) {
			reopen = append([]*spec.Node{forced}, reopen...)
		}
	}
	c.popCurrentNode()
	c.reopenElements(reopen)
}

// reopenElements opens a copy of every element in order, each nested in the
// previous one, so the innermost copy becomes the insertion point.
func (c *TreeConstructor) reopenElements(elems []*spec.Node) {
	for _, orig := range elems {
		cp := orig.MakeCopy()
		cp.SetAutoGenerated(true)
		c.getCurrentNode().AddChild(cp)
		c.stackOfOpenElements.Push(cp)
		cp.SetForeignMarkup(orig.IsForeignMarkup())
		c.log.WithField("tag", cp.Name()).Debug("reopened element")
	}
}

// createElementForToken creates an element from a token. Under
// NamespacesAware, xmlns attributes are also recorded as namespace
// declarations.
func (c *TreeConstructor) createElementForToken(t *Token) *spec.Node {
	elem := spec.NewDOMElement(t.TagName)
	for _, a := range t.Attributes {
		if c.config.NamespacesAware {
			if prefix, ok := namespaceDeclarationPrefix(a.Name); ok {
				elem.AddNamespaceDeclaration(prefix, strings.TrimSpace(a.Value))
			}
		}
		elem.SetAttribute(a.Name, a.Value)
	}
	return elem
}

func namespaceDeclarationPrefix(attr string) (string, bool) {
	attr = strings.TrimSpace(attr)
	switch {
	case strings.EqualFold(attr, "xmlns"):
		return "", true
	case len(attr) > len("xmlns:") && strings.EqualFold(attr[:len("xmlns:")], "xmlns:"):
		return attr[len("xmlns:"):], true
	}
	return "", false
}

func isIntegrationPoint(n *spec.Node) bool {
	return strings.EqualFold(n.RawName(), "foreignObject") || strings.EqualFold(n.RawName(), "annotation-xml")
}

// classify decides once whether elem is HTML or foreign markup. It must run
// after elem is attached so that its ancestors are visible.
func (c *TreeConstructor) classify(elem *spec.Node) {
	foreign := c.config.ForeignMarkup && c.isForeign(elem)
	elem.SetForeignMarkup(foreign)
	if !foreign && c.config.CDATAPolicy == CDATAForScriptAndStyle && c.model.IsRawText(elem.Name()) {
		elem.SetRawData(true)
	}
}

func (c *TreeConstructor) isForeign(elem *spec.Node) bool {
	if c.config.NamespacesAware {
		prefix := elem.Prefix()
		_, ownDefault := elem.NamespaceDeclarations()[""]
		if prefix != "" || ownDefault {
			if uri, ok := elem.NamespaceURIOnPath(prefix); ok && uri != "" {
				return uri != spec.Htmlns
			}
		}
	}
	if c.model.IsForeignTag(elem.RawName()) {
		return true
	}
	parent := elem.Parent()
	return parent != nil && parent.IsForeignMarkup() && !isIntegrationPoint(parent)
}

package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamespaceScoping(t *testing.T) {
	t.Parallel()
	root := NewDOMElement("root")
	root.AddNamespaceDeclaration("a", "urn:outer")
	root.AddNamespaceDeclaration("", Htmlns)
	mid := NewDOMElement("a:mid")
	mid.AddNamespaceDeclaration("a", "urn:inner")
	leaf := NewDOMElement("a:leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)

	uri, ok := leaf.NamespaceURIOnPath("a")
	assert.True(t, ok)
	assert.Equal(t, "urn:inner", uri)

	uri, ok = root.NamespaceURIOnPath("a")
	assert.True(t, ok)
	assert.Equal(t, "urn:outer", uri)

	_, ok = leaf.NamespaceURIOnPath("b")
	assert.False(t, ok)

	assert.Equal(t, []string{"", "a"}, leaf.NamespacePrefixesOnPath())
	assert.Equal(t, "a", leaf.Prefix())
	assert.Equal(t, "leaf", leaf.LocalName())
	assert.Equal(t, "urn:inner", leaf.NamespaceURI())
	assert.Equal(t, Htmlns, root.NamespaceURI())

	leaf.RemoveFromTree()
	assert.Equal(t, "", leaf.NamespaceURI())
}

func TestNamespaceDeclarationsCopy(t *testing.T) {
	t.Parallel()
	n := NewDOMElement("x")
	assert.Nil(t, n.NamespaceDeclarations())

	n.AddNamespaceDeclaration("svg", Svgns)
	decls := n.NamespaceDeclarations()
	decls["svg"] = "changed"
	assert.Equal(t, map[string]string{"svg": Svgns}, n.NamespaceDeclarations())
}

package spec

import (
	"sort"
	"strings"
)

const (
	Htmlns   = "http://www.w3.org/1999/xhtml"
	Mathmlns = "http://www.w3.org/1998/Math/MathML"
	Svgns    = "http://www.w3.org/2000/svg"
	Xlinkns  = "http://www.w3.org/1999/xlink"
	Xmlns    = "http://www.w3.org/XML/1998/namespace"
	Xmlnsns  = "http://www.w3.org/2000/xmlns/"
)

// AddNamespaceDeclaration binds prefix to uri on this node. The empty prefix
// is the default namespace.
func (n *Node) AddNamespaceDeclaration(prefix, uri string) {
	if n.nsDeclarations == nil {
		n.nsDeclarations = map[string]string{}
	}
	n.nsDeclarations[prefix] = uri
}

// NamespaceDeclarations returns a copy of the declarations made on this node,
// or nil if there are none.
func (n *Node) NamespaceDeclarations() map[string]string {
	if n.nsDeclarations == nil {
		return nil
	}
	decls := make(map[string]string, len(n.nsDeclarations))
	for k, v := range n.nsDeclarations {
		decls[k] = v
	}
	return decls
}

// NamespaceURIOnPath resolves prefix by walking up from n. The nearest
// declaration wins.
func (n *Node) NamespaceURIOnPath(prefix string) (string, bool) {
	for cur := n; cur != nil; cur = cur.parentNode {
		if uri, ok := cur.nsDeclarations[prefix]; ok {
			return uri, true
		}
	}
	return "", false
}

// NamespacePrefixesOnPath lists every prefix declared on n or one of its
// ancestors, sorted.
func (n *Node) NamespacePrefixesOnPath() []string {
	seen := map[string]struct{}{}
	for cur := n; cur != nil; cur = cur.parentNode {
		for prefix := range cur.nsDeclarations {
			seen[prefix] = struct{}{}
		}
	}
	prefixes := make([]string, 0, len(seen))
	for prefix := range seen {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)
	return prefixes
}

// Prefix returns the part of the raw name before the first colon.
func (n *Node) Prefix() string {
	if i := strings.IndexByte(n.name, ':'); i > 0 {
		return n.name[:i]
	}
	return ""
}

// LocalName returns the name without its prefix.
func (n *Node) LocalName() string {
	name := n.Name()
	if i := strings.IndexByte(name, ':'); i > 0 {
		return name[i+1:]
	}
	return name
}

// NamespaceURI resolves the node's own prefix, falling back to the default
// namespace in scope.
func (n *Node) NamespaceURI() string {
	uri, _ := n.NamespaceURIOnPath(n.Prefix())
	return uri
}

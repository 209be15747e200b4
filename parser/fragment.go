package parser

import (
	"strings"

	"github.com/heathj/tagsoup/parser/spec"
)

// https://html.spec.whatwg.org/#escapingString
func escapeString(s string, attrVal bool) string {
	s = strings.Replace(s, "&", "&amp;", -1)
	s = strings.Replace(s, "\u00A0", "&nbsp;", -1)
	if attrVal {
		s = strings.Replace(s, "\"", "&quot;", -1)
	} else {
		s = strings.Replace(s, "<", "&lt;", -1)
		s = strings.Replace(s, ">", "&gt;", -1)
	}

	return s
}

// isRawTextParent mirrors the tokenizer, which reads these elements as raw
// text whatever namespace they are in.
func isRawTextParent(n *spec.Node) bool {
	switch strings.ToLower(n.Name()) {
	case "style", "script", "xmp", "iframe", "noembed", "noframes", "noscript", "plaintext":
		return true
	}
	return false
}

// SerializeHTML writes a repaired tree back out as markup. Attributes keep
// their stored order, void elements get no end tag and childless foreign
// elements are written as <name/>.
func SerializeHTML(n *spec.Node) string {
	var sb strings.Builder
	if n.IsDocument() {
		if dt := n.DocType(); dt != nil {
			sb.WriteString("<!DOCTYPE " + dt.Name + ">")
		}
		serializeChildren(&sb, n)
	} else {
		serializeElement(&sb, n)
	}
	return sb.String()
}

func serializeChildren(sb *strings.Builder, n *spec.Node) {
	for _, c := range n.Children() {
		switch child := c.(type) {
		case *spec.Node:
			serializeElement(sb, child)
		case *spec.Text:
			switch {
			case n.IsRawData():
				sb.WriteString("<![CDATA[" + child.Data + "]]>")
			case isRawTextParent(n):
				sb.WriteString(child.Data)
			default:
				sb.WriteString(escapeString(child.Data, false))
			}
		case *spec.Comment:
			sb.WriteString("<!--" + child.Data + "-->")
		}
	}
}

func serializeElement(sb *strings.Builder, n *spec.Node) {
	name := n.Name()
	if name == "" {
		serializeChildren(sb, n)
		return
	}

	sb.WriteString("<" + name)
	for _, a := range n.Attributes() {
		sb.WriteString(" " + a.Name + "=\"" + escapeString(a.Value, true) + "\"")
	}
	if !n.HasChildren() {
		if n.IsForeignMarkup() {
			sb.WriteString("/>")
			return
		}
		if DefaultContentModel.IsEmptyTag(name) {
			sb.WriteString(">")
			return
		}
	}
	sb.WriteString(">")
	serializeChildren(sb, n)
	sb.WriteString("</" + name + ">")
}

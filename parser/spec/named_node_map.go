package spec

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

var controlToSpace = runes.Map(func(r rune) rune {
	if unicode.IsControl(r) {
		return ' '
	}
	return r
})

func normalizeAttrValue(v string) string {
	s, _, err := transform.String(controlToSpace, v)
	if err != nil {
		s = v
	}
	return strings.TrimSpace(s)
}

// NewNamedNodeMap returns an empty attribute map.
func NewNamedNodeMap() *NamedNodeMap {
	return &NamedNodeMap{index: map[string]int{}}
}

// NamedNodeMap is an insertion ordered attribute set. Lookups ignore case;
// the stored name is whichever casing was seen first.
type NamedNodeMap struct {
	attrs []*Attr
	index map[string]int
}

func (n *NamedNodeMap) Length() int {
	return len(n.attrs)
}

func (n *NamedNodeMap) Item(i int) *Attr {
	if i < 0 || i >= len(n.attrs) {
		return nil
	}
	return n.attrs[i]
}

func (n *NamedNodeMap) GetNamedItem(qn string) *Attr {
	if i, ok := n.index[strings.ToLower(strings.TrimSpace(qn))]; ok {
		return n.attrs[i]
	}
	return nil
}

// SetNamedItem adds or overwrites an attribute. The name is trimmed and a
// blank name is ignored (nil is returned). The value is trimmed and control
// characters become spaces.
func (n *NamedNodeMap) SetNamedItem(qn, value string) *Attr {
	qn = strings.TrimSpace(qn)
	if qn == "" {
		return nil
	}
	value = normalizeAttrValue(value)
	key := strings.ToLower(qn)
	if i, ok := n.index[key]; ok {
		n.attrs[i].Value = value
		return n.attrs[i]
	}

	a := &Attr{Name: qn, Value: value}
	n.index[key] = len(n.attrs)
	n.attrs = append(n.attrs, a)
	return a
}

func (n *NamedNodeMap) RemoveNamedItem(qn string) *Attr {
	key := strings.ToLower(strings.TrimSpace(qn))
	i, ok := n.index[key]
	if !ok {
		return nil
	}
	removed := n.attrs[i]
	n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
	delete(n.index, key)
	for j := i; j < len(n.attrs); j++ {
		n.index[strings.ToLower(n.attrs[j].Name)] = j
	}
	return removed
}

// Clone returns a deep copy so the two maps can be mutated independently.
func (n *NamedNodeMap) Clone() *NamedNodeMap {
	c := &NamedNodeMap{
		attrs: make([]*Attr, len(n.attrs)),
		index: make(map[string]int, len(n.index)),
	}
	for i, a := range n.attrs {
		cp := *a
		c.attrs[i] = &cp
		c.index[strings.ToLower(a.Name)] = i
	}
	return c
}

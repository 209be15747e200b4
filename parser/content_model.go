package parser

import (
	"sort"
	"strings"

	"golang.org/x/net/html/atom"
)

type nameSet map[string]struct{}

func newNameSet(names ...string) nameSet {
	s := nameSet{}
	for _, name := range names {
		s[strings.ToLower(name)] = struct{}{}
	}
	return s
}

func (s nameSet) has(name string) bool {
	_, ok := s[strings.ToLower(name)]
	return ok
}

func (s nameSet) sorted() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TagInfo is the content model of one tag name.
type TagInfo struct {
	Name string
	// Empty tags never have content and are closed as soon as they open.
	Empty bool
	// Foreign tags start a non-HTML subtree, like svg or math.
	Foreign bool
	// RawText tags hold script-like content that may be written as CDATA.
	RawText bool

	closeOnOpen   nameSet
	continueAfter nameSet
}

// CloseOnOpen adds the names of open elements that are implicitly closed
// when this tag opens.
func (t *TagInfo) CloseOnOpen(names ...string) *TagInfo {
	if t.closeOnOpen == nil {
		t.closeOnOpen = nameSet{}
	}
	for name := range newNameSet(names...) {
		t.closeOnOpen[name] = struct{}{}
	}
	return t
}

// ContinueAfter adds the names whose end tag, when it force-closes this
// element, causes a copy of it to be reopened.
func (t *TagInfo) ContinueAfter(names ...string) *TagInfo {
	if t.continueAfter == nil {
		t.continueAfter = nameSet{}
	}
	for name := range newNameSet(names...) {
		t.continueAfter[name] = struct{}{}
	}
	return t
}

// Closes reports whether opening this tag closes an open ancestor named
// ancestor.
func (t TagInfo) Closes(ancestor string) bool {
	return t.closeOnOpen.has(ancestor)
}

// ContinuesAfter reports whether this tag is reopened after closed ends.
func (t TagInfo) ContinuesAfter(closed string) bool {
	return t.continueAfter.has(closed)
}

func (t *TagInfo) clone() *TagInfo {
	c := &TagInfo{
		Name:    strings.ToLower(t.Name),
		Empty:   t.Empty,
		Foreign: t.Foreign,
		RawText: t.RawText,
	}
	c.CloseOnOpen(t.closeOnOpen.sorted()...)
	c.ContinueAfter(t.continueAfter.sorted()...)
	return c
}

// ContentModel is the registry of tag rules. It is read-only once built and
// may be shared between goroutines.
type ContentModel struct {
	tags map[string]*TagInfo
	// closed tag name -> names reopened after it
	continuesAfter map[string]nameSet
}

// NewContentModel builds a registry. A later TagInfo with the same name
// replaces an earlier one. The infos are copied.
func NewContentModel(infos ...*TagInfo) *ContentModel {
	m := &ContentModel{
		tags:           make(map[string]*TagInfo, len(infos)),
		continuesAfter: map[string]nameSet{},
	}
	for _, info := range infos {
		c := info.clone()
		m.tags[c.Name] = c
	}
	for name, info := range m.tags {
		for closed := range info.continueAfter {
			if m.continuesAfter[closed] == nil {
				m.continuesAfter[closed] = nameSet{}
			}
			m.continuesAfter[closed][name] = struct{}{}
		}
	}
	return m
}

// TagInfo returns the rules for name. Unknown names get a permissive
// default: no implicit closes, never reopened, not empty.
func (m *ContentModel) TagInfo(name string) TagInfo {
	if info, ok := m.tags[strings.ToLower(name)]; ok {
		return *info
	}
	return TagInfo{Name: strings.ToLower(name)}
}

// IsEmptyTag reports whether name is a void element that never has content.
func (m *ContentModel) IsEmptyTag(name string) bool {
	return m.TagInfo(name).Empty
}

// IsForeignTag reports whether name opens foreign (SVG or MathML) markup.
func (m *ContentModel) IsForeignTag(name string) bool {
	return m.TagInfo(name).Foreign
}

// IsRawText reports whether the content of name is kept as raw text.
func (m *ContentModel) IsRawText(name string) bool {
	return m.TagInfo(name).RawText
}

// ClosesOnOpenOf lists the ancestor names implicitly closed when opened
// opens.
func (m *ContentModel) ClosesOnOpenOf(opened string) []string {
	return m.TagInfo(opened).closeOnOpen.sorted()
}

// Closes reports whether opening opened implicitly closes an open ancestor.
func (m *ContentModel) Closes(opened, ancestor string) bool {
	return m.TagInfo(opened).Closes(ancestor)
}

// ContinuesAfter lists the names reopened after closed closes.
func (m *ContentModel) ContinuesAfter(closed string) []string {
	return m.continuesAfter[strings.ToLower(closed)].sorted()
}

// IsContinuable reports whether name is reopened after closed closes.
func (m *ContentModel) IsContinuable(name, closed string) bool {
	return m.continuesAfter[strings.ToLower(closed)].has(name)
}

// IsKnownTag reports whether name has rules here or is a standard HTML
// element.
func (m *ContentModel) IsKnownTag(name string) bool {
	lower := strings.ToLower(name)
	if _, ok := m.tags[lower]; ok {
		return true
	}
	return atom.Lookup([]byte(lower)) != 0
}

var (
	formattingTags = []string{
		"abbr", "acronym", "b", "big", "cite", "code", "dfn", "em", "font", "i", "kbd",
		"s", "samp", "small", "strike", "strong", "sub", "sup", "tt", "u", "var",
	}
	voidTags = []string{
		"area", "base", "basefont", "bgsound", "br", "col", "embed", "frame", "img",
		"input", "keygen", "link", "meta", "param", "source", "track", "wbr",
	}
	// opening one of these closes an open paragraph
	blockTags = []string{
		"address", "article", "aside", "blockquote", "center", "details", "dialog", "dir",
		"div", "dl", "fieldset", "figcaption", "figure", "footer", "form", "header",
		"hgroup", "listing", "main", "menu", "nav", "ol", "p", "pre", "section",
		"summary", "table", "ul", "xmp",
	}
	headingTags = []string{"h1", "h2", "h3", "h4", "h5", "h6"}
	tableParts  = []string{"caption", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr"}
)

func without(names []string, name string) []string {
	var out []string
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}

func defaultTagInfos() []*TagInfo {
	var infos []*TagInfo
	for _, name := range formattingTags {
		infos = append(infos, (&TagInfo{Name: name}).ContinueAfter(without(formattingTags, name)...))
	}
	for _, name := range voidTags {
		infos = append(infos, &TagInfo{Name: name, Empty: true})
	}
	infos = append(infos, (&TagInfo{Name: "hr", Empty: true}).CloseOnOpen("p"))
	for _, name := range blockTags {
		infos = append(infos, (&TagInfo{Name: name}).CloseOnOpen("p"))
	}
	for _, name := range headingTags {
		infos = append(infos, (&TagInfo{Name: name}).CloseOnOpen(append([]string{"p"}, headingTags...)...))
	}
	infos = append(infos,
		(&TagInfo{Name: "a"}).CloseOnOpen("a"),
		(&TagInfo{Name: "li"}).CloseOnOpen("li", "p"),
		(&TagInfo{Name: "dt"}).CloseOnOpen("dt", "dd", "p"),
		(&TagInfo{Name: "dd"}).CloseOnOpen("dt", "dd", "p"),
		(&TagInfo{Name: "option"}).CloseOnOpen("option"),
		(&TagInfo{Name: "optgroup"}).CloseOnOpen("option", "optgroup"),
		(&TagInfo{Name: "tr"}).CloseOnOpen("tr", "td", "th", "p"),
		(&TagInfo{Name: "td"}).CloseOnOpen("td", "th", "p"),
		(&TagInfo{Name: "th"}).CloseOnOpen("td", "th", "p"),
		(&TagInfo{Name: "caption"}).CloseOnOpen("caption", "colgroup"),
		(&TagInfo{Name: "colgroup"}).CloseOnOpen("caption", "colgroup"),
		(&TagInfo{Name: "script", RawText: true}),
		(&TagInfo{Name: "style", RawText: true}),
		(&TagInfo{Name: "svg", Foreign: true}),
		(&TagInfo{Name: "math", Foreign: true}),
	)
	for _, name := range []string{"thead", "tbody", "tfoot"} {
		infos = append(infos, (&TagInfo{Name: name}).CloseOnOpen(append([]string{"p"}, tableParts...)...))
	}
	return infos
}

// DefaultContentModel holds the HTML rules used when a Config does not name
// its own registry.
var DefaultContentModel = NewContentModel(defaultTagInfos()...)

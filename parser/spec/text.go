package spec

import "strings"

// Text is a run of character data inside a Node.
type Text struct {
	CharacterData
}

func NewText(data string) *Text {
	return &Text{CharacterData: CharacterData{Data: data}}
}

func (t *Text) NodeType() NodeType { return TextNode }
func (t *Text) content()           {}

// IsBlank reports whether the text holds nothing but whitespace.
func (t *Text) IsBlank() bool {
	return strings.TrimSpace(t.Data) == ""
}

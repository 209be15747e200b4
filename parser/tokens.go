package parser

import (
	"fmt"

	"github.com/heathj/tagsoup/parser/spec"
)

type TokenType uint

const (
	CharacterToken TokenType = iota
	StartTagToken
	EndTagToken
	CommentToken
	DocTypeToken
)

func (t TokenType) String() string {
	switch t {
	case CharacterToken:
		return "character"
	case StartTagToken:
		return "start tag"
	case EndTagToken:
		return "end tag"
	case CommentToken:
		return "comment"
	case DocTypeToken:
		return "doctype"
	}
	return fmt.Sprintf("TokenType(%d)", uint(t))
}

// Token is a concrete token that is ready to be handed to the tree
// constructor.
type Token struct {
	TokenType        TokenType
	Attributes       []spec.Attr
	TagName          string
	PublicIdentifier string
	SystemIdentifier string
	SelfClosing      bool
	Data             string
}

// NewStartTagToken creates a start tag token. Attributes keep the given order.
func NewStartTagToken(name string, attrs ...spec.Attr) *Token {
	return &Token{
		TokenType:  StartTagToken,
		TagName:    name,
		Attributes: attrs,
	}
}

// NewSelfClosingTagToken creates a start tag token written as <name/>.
func NewSelfClosingTagToken(name string, attrs ...spec.Attr) *Token {
	t := NewStartTagToken(name, attrs...)
	t.SelfClosing = true
	return t
}

func NewEndTagToken(name string) *Token {
	return &Token{
		TokenType: EndTagToken,
		TagName:   name,
	}
}

func NewCharacterToken(data string) *Token {
	return &Token{
		TokenType: CharacterToken,
		Data:      data,
	}
}

func NewCommentToken(data string) *Token {
	return &Token{
		TokenType: CommentToken,
		Data:      data,
	}
}

func NewDocTypeToken(name, pub, sys string) *Token {
	return &Token{
		TokenType:        DocTypeToken,
		TagName:          name,
		PublicIdentifier: pub,
		SystemIdentifier: sys,
	}
}

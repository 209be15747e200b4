package parser

import (
	"io"
	"strings"

	"github.com/heathj/tagsoup/parser/spec"
)

type Parser struct {
	Tokenizer       *HTMLTokenizer
	TreeConstructor *TreeConstructor
}

// NewParser wires a tokenizer reading htmlIn to a tree constructor using cfg.
// A nil cfg means DefaultConfig.
func NewParser(htmlIn io.Reader, cfg *Config) *Parser {
	return &Parser{
		Tokenizer:       NewHTMLTokenizer(htmlIn),
		TreeConstructor: NewTreeConstructor(cfg),
	}
}

// Start runs the whole pipeline and returns the repaired tree. Malformed
// markup never fails; only read errors are returned.
func (p *Parser) Start() (*spec.Node, error) {
	for p.Tokenizer.Next() {
		p.TreeConstructor.ProcessToken(p.Tokenizer.Token())
	}
	if err := p.Tokenizer.Err(); err != nil {
		return nil, err
	}
	return p.TreeConstructor.Finish(), nil
}

// Clean repairs an HTML string.
func Clean(htmlIn string, cfg *Config) (*spec.Node, error) {
	return NewParser(strings.NewReader(htmlIn), cfg).Start()
}

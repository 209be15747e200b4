package parser

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heathj/tagsoup/parser/spec"
)

type tokenizerAttributeAccuracyTestcase struct {
	inHTML string            // snippet of HTML to tokenize (should only be one element)
	attrs  map[string]string // expected attributes to collected from the first token that is produced
}

var tokenizerAttributeAccuracyTests = []tokenizerAttributeAccuracyTestcase{
	{"<head></head>", map[string]string{}},
	{"<script src='123' onload='test'></script>", map[string]string{
		"src":    "123",
		"onload": "test",
	}},
	{"<a href='https://google.com' onclick='alert(1)'>Click this</a>", map[string]string{
		"href":    "https://google.com",
		"onclick": "alert(1)",
	}},
	{"<script src='123' src='456'></script>", map[string]string{
		"src": "123",
	}},
	{"<script src=123 onload=test></script>", map[string]string{
		"src":    "123",
		"onload": "test",
	}},
	{"<script src='123' onload='test' ></script>", map[string]string{
		"src":    "123",
		"onload": "test",
	}},
	{"<script src></script>", map[string]string{
		"src": "",
	}},
	{"<script src test></script>", map[string]string{
		"src":  "",
		"test": "",
	}},
	{"<script ABC=123></script>", map[string]string{
		"ABC": "123",
	}},
	{"<script abc=></script>", map[string]string{
		"abc": "",
	}},
	{"<script\tabc=123></script>", map[string]string{
		"abc": "123",
	}},
	{"<svg viewBox='0 0 1 1' VIEWBOX='2'>", map[string]string{
		"viewBox": "0 0 1 1",
	}},
	{"<p title='title' Title='x' id=1>", map[string]string{
		"title": "title",
		"id":    "1",
	}},
	{`<path d="ID" id="x"/>`, map[string]string{
		"d":  "ID",
		"id": "x",
	}},
	{`<rect foo="viewBox" viewbox="1" Width=ID height='a=B'>`, map[string]string{
		"foo":     "viewBox",
		"viewbox": "1",
		"Width":   "ID",
		"height":  "a=B",
	}},
}

// TestTokenizerAttributeAccuracy just makes sure that we have the
// correct number attribute names and values
func TestTokenizerAttributeAccuracy(t *testing.T) {
	for _, tt := range tokenizerAttributeAccuracyTests {
		runTestTokenizerAttributeAccuracy(tt, t)
	}
}

// helper function to parallelize the above test case.
func runTestTokenizerAttributeAccuracy(tt tokenizerAttributeAccuracyTestcase, t *testing.T) {
	t.Run(tt.inHTML, func(t *testing.T) {
		t.Parallel()
		p := NewHTMLTokenizer(strings.NewReader(tt.inHTML))
		require.True(t, p.Next())
		token := p.Token()
		require.Equal(t, StartTagToken, token.TokenType)

		attrs := map[string]string{}
		for _, a := range token.Attributes {
			attrs[a.Name] = a.Value
		}
		assert.Equal(t, tt.attrs, attrs)
	})
}

func TestTokenizerTagCase(t *testing.T) {
	t.Parallel()
	tokens, err := Tokenize(strings.NewReader(`<svg><linearGradient gradientUnits="x"/></LinearGradient><DIV>a</div>`))
	require.NoError(t, err)

	type tok struct {
		typ  TokenType
		name string
		self bool
	}
	var got []tok
	for _, token := range tokens {
		got = append(got, tok{token.TokenType, token.TagName, token.SelfClosing})
	}
	assert.Equal(t, []tok{
		{StartTagToken, "svg", false},
		{StartTagToken, "linearGradient", true},
		{EndTagToken, "LinearGradient", false},
		{StartTagToken, "DIV", false},
		{CharacterToken, "", false},
		{EndTagToken, "div", false},
	}, got)
	assert.Equal(t, "gradientUnits", tokens[1].Attributes[0].Name)
	assert.Equal(t, "a", tokens[4].Data)
}

func TestForeignAttributeCaseFromNamesOnly(t *testing.T) {
	t.Parallel()
	doc, err := Clean(`<svg><path d="ID" id="x"/><rect foo="viewBox" viewbox="1"/></svg>`, quietConfig())
	require.NoError(t, err)

	path := doc.FindElementByName("path", true)
	require.NotNil(t, path)
	assert.Equal(t, []spec.Attr{{Name: "d", Value: "ID"}, {Name: "id", Value: "x"}}, path.Attributes())

	rect := doc.FindElementByName("rect", true)
	require.NotNil(t, rect)
	assert.Equal(t, []spec.Attr{{Name: "foo", Value: "viewBox"}, {Name: "viewbox", Value: "1"}}, rect.Attributes())
}

func TestScanRawTag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		raw  string
		name string
		keys []string
	}{
		{"<DIV>", "DIV", nil},
		{"</LinearGradient >", "LinearGradient", nil},
		{`<a HREF = "x>y" Title='it' data-X=1 />`, "a", []string{"HREF", "Title", "data-X"}},
		{`<b =odd="1">`, "b", []string{"=odd"}},
		{"<p\tA\nB=c/D>", "p", []string{"A", "B"}},
		{`<x k="unterminated>`, "x", []string{"k"}},
	}
	for _, tt := range tests {
		name, keys := scanRawTag(tt.raw)
		assert.Equal(t, tt.name, name, tt.raw)
		assert.Equal(t, tt.keys, keys, tt.raw)
	}
}

func TestTokenizerLeaves(t *testing.T) {
	t.Parallel()
	tokens, err := Tokenize(strings.NewReader(
		`<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01//EN" "http://www.w3.org/TR/html4/strict.dtd"><!-- hi -->a &amp; b`))
	require.NoError(t, err)
	require.Len(t, tokens, 3)

	assert.Equal(t, DocTypeToken, tokens[0].TokenType)
	assert.Equal(t, "html", tokens[0].TagName)
	assert.Equal(t, "-//W3C//DTD HTML 4.01//EN", tokens[0].PublicIdentifier)
	assert.Equal(t, "http://www.w3.org/TR/html4/strict.dtd", tokens[0].SystemIdentifier)

	assert.Equal(t, CommentToken, tokens[1].TokenType)
	assert.Equal(t, " hi ", tokens[1].Data)

	assert.Equal(t, CharacterToken, tokens[2].TokenType)
	assert.Equal(t, "a & b", tokens[2].Data)
}

func TestDoctypeToken(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in       string
		name     string
		pub, sys string
	}{
		{"", "", "", ""},
		{"html", "html", "", ""},
		{`html SYSTEM 'about:legacy-compat'`, "html", "", "about:legacy-compat"},
		{`HTML public "pub"`, "HTML", "pub", ""},
		{`html PUBLIC "pub" 'sys`, "html", "pub", "sys"},
	}
	for _, tt := range tests {
		tok := doctypeToken(tt.in)
		assert.Equal(t, tt.name, tok.TagName, tt.in)
		assert.Equal(t, tt.pub, tok.PublicIdentifier, tt.in)
		assert.Equal(t, tt.sys, tok.SystemIdentifier, tt.in)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestTokenizerReadError(t *testing.T) {
	t.Parallel()
	_, err := Tokenize(failingReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")

	_, err = NewParser(failingReader{}, quietConfig()).Start()
	assert.Error(t, err)
}

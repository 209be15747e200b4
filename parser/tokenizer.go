package parser

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"

	"github.com/heathj/tagsoup/parser/spec"
)

// HTMLTokenizer turns raw HTML into the tokens consumed by the tree
// constructor. Lexing is done by golang.org/x/net/html; tag and attribute
// names get their source casing back so foreign markup keeps it.
type HTMLTokenizer struct {
	z     *html.Tokenizer
	token *Token
	err   error
}

// NewHTMLTokenizer creates a tokenizer reading from r.
func NewHTMLTokenizer(r io.Reader) *HTMLTokenizer {
	return &HTMLTokenizer{
		z: html.NewTokenizer(r),
	}
}

// Next advances to the next token. It returns false at the end of the input
// or on a read error, which Err then reports.
func (p *HTMLTokenizer) Next() bool {
	if p.err != nil {
		return false
	}
	tt := p.z.Next()
	switch tt {
	case html.ErrorToken:
		if err := p.z.Err(); err != io.EOF {
			p.err = errors.Wrap(err, "failed to tokenize")
		}
		return false
	case html.StartTagToken, html.SelfClosingTagToken:
		// Token lower-cases the buffer in place, so take the raw copy first.
		raw := string(p.z.Raw())
		p.token = startTagFromRaw(p.z.Token(), raw, tt == html.SelfClosingTagToken)
	case html.EndTagToken:
		raw := string(p.z.Raw())
		name, _ := scanRawTag(raw)
		p.token = NewEndTagToken(withCase(name, p.z.Token().Data))
	case html.TextToken:
		p.token = NewCharacterToken(p.z.Token().Data)
	case html.CommentToken:
		p.token = NewCommentToken(p.z.Token().Data)
	case html.DoctypeToken:
		p.token = doctypeToken(p.z.Token().Data)
	}
	return true
}

// Token returns the token produced by the last call to Next.
func (p *HTMLTokenizer) Token() *Token {
	return p.token
}

func (p *HTMLTokenizer) Err() error {
	return p.err
}

// Tokenize reads r to the end and returns every token.
func Tokenize(r io.Reader) ([]*Token, error) {
	var tokens []*Token
	p := NewHTMLTokenizer(r)
	for p.Next() {
		tokens = append(tokens, p.Token())
	}
	return tokens, p.Err()
}

func startTagFromRaw(tok html.Token, raw string, selfClosing bool) *Token {
	rawName, rawKeys := scanRawTag(raw)
	t := NewStartTagToken(withCase(rawName, tok.Data))
	t.SelfClosing = selfClosing

	// both follow the same tag grammar; if they ever disagree keep the
	// lower-cased keys
	if len(rawKeys) != len(tok.Attr) {
		rawKeys = nil
	}
	seen := map[string]struct{}{}
	for i, a := range tok.Attr {
		key := a.Key
		if rawKeys != nil {
			key = withCase(rawKeys[i], a.Key)
		}
		// the first of two duplicate attributes wins
		lower := strings.ToLower(key)
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		t.Attributes = append(t.Attributes, spec.Attr{Name: key, Value: a.Val})
	}
	return t
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

// withCase returns raw when it is the source spelling of the lower-cased
// name, and name otherwise.
func withCase(raw, name string) string {
	if asciiLower(raw) == name {
		return raw
	}
	return name
}

func isTagSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t' || c == '\f'
}

// scanRawTag reads the tag name and the attribute names of a raw start or
// end tag in their source casing. Attribute values are skipped so a value
// can never be taken for a name.
func scanRawTag(raw string) (string, []string) {
	i := strings.IndexByte(raw, '<') + 1
	if i < len(raw) && raw[i] == '/' {
		i++
	}
	start := i
	for i < len(raw) && !isTagSpace(raw[i]) && raw[i] != '/' && raw[i] != '>' {
		i++
	}
	name := raw[start:i]

	var keys []string
	for i < len(raw) {
		for i < len(raw) && (isTagSpace(raw[i]) || raw[i] == '/') {
			i++
		}
		if i >= len(raw) || raw[i] == '>' {
			break
		}

		start = i
		// a leading '=' belongs to the name
		if raw[i] == '=' {
			i++
		}
		for i < len(raw) && !isTagSpace(raw[i]) && raw[i] != '/' && raw[i] != '>' && raw[i] != '=' {
			i++
		}
		keys = append(keys, raw[start:i])

		j := i
		for j < len(raw) && isTagSpace(raw[j]) {
			j++
		}
		if j >= len(raw) || raw[j] != '=' {
			continue
		}
		i = j + 1
		for i < len(raw) && isTagSpace(raw[i]) {
			i++
		}
		if i < len(raw) && (raw[i] == '"' || raw[i] == '\'') {
			quote := raw[i]
			end := strings.IndexByte(raw[i+1:], quote)
			if end < 0 {
				break
			}
			i += end + 2
			continue
		}
		for i < len(raw) && !isTagSpace(raw[i]) && raw[i] != '>' {
			i++
		}
	}
	return name, keys
}

// doctypeToken splits `html PUBLIC "pub" "sys"` into its parts.
func doctypeToken(data string) *Token {
	fields := strings.Fields(data)
	if len(fields) == 0 {
		return NewDocTypeToken("", "", "")
	}
	name := fields[0]
	rest := strings.TrimSpace(data[strings.Index(data, name)+len(name):])
	var quoted []string
	for {
		start := strings.IndexAny(rest, `"'`)
		if start < 0 {
			break
		}
		end := strings.IndexByte(rest[start+1:], rest[start])
		if end < 0 {
			quoted = append(quoted, rest[start+1:])
			break
		}
		quoted = append(quoted, rest[start+1:start+1+end])
		rest = rest[start+end+2:]
	}

	var pub, sys string
	switch {
	case len(fields) > 1 && strings.EqualFold(fields[1], "public"):
		if len(quoted) > 0 {
			pub = quoted[0]
		}
		if len(quoted) > 1 {
			sys = quoted[1]
		}
	case len(fields) > 1 && strings.EqualFold(fields[1], "system"):
		if len(quoted) > 0 {
			sys = quoted[0]
		}
	}
	return NewDocTypeToken(name, pub, sys)
}

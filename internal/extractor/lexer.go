package extractor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/untoldecay/modelscore/internal/types"
)

// Arrow is one spelling of a relationship arrow.
// Reverse is set when the decoration sits on the left endpoint, i.e. the
// semantic source is written on the right.
type Arrow struct {
	Token   string
	Kind    types.RelationKind
	Reverse bool
}

// arrowLexicon is ordered longest spelling first; the lexer takes the first
// entry that matches, so "--" never shadows a decorated arrow.
var arrowLexicon = []Arrow{
	{Token: "<|--", Kind: types.Inheritance, Reverse: true},
	{Token: "--|>", Kind: types.Inheritance},
	{Token: "<|..", Kind: types.Realization, Reverse: true},
	{Token: "..|>", Kind: types.Realization},
	{Token: "*--", Kind: types.Composition, Reverse: true},
	{Token: "--*", Kind: types.Composition},
	{Token: "o--", Kind: types.Aggregation, Reverse: true},
	{Token: "--o", Kind: types.Aggregation},
	{Token: "<--", Kind: types.Association, Reverse: true},
	{Token: "-->", Kind: types.Association},
	{Token: "<..", Kind: types.Dependency, Reverse: true},
	{Token: "..>", Kind: types.Dependency},
	{Token: "--", Kind: types.Association},
}

// Arrows returns a copy of the recognized arrow lexicon.
func Arrows() []Arrow {
	out := make([]Arrow, len(arrowLexicon))
	copy(out, arrowLexicon)
	return out
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNewline
	tokIdent
	tokString
	tokArrow
	tokColon
	tokLBrace
	tokRBrace
	tokOther
)

type token struct {
	kind  tokenKind
	text  string // identifier text, string contents or arrow spelling
	arrow Arrow
	pos   int // byte offset of the token start
}

func (t token) isName() bool {
	return t.kind == tokIdent || t.kind == tokString
}

// lexer splits comment-free diagram text into tokens. Tokens handed back
// with unread are returned again, most recently unread first.
type lexer struct {
	src    string
	pos    int
	unread []token
}

func newLexer(src string) *lexer {
	return &lexer{src: src}
}

func (l *lexer) next() token {
	if n := len(l.unread); n > 0 {
		t := l.unread[n-1]
		l.unread = l.unread[:n-1]
		return t
	}
	return l.scan()
}

// back pushes toks back so that the following next calls return them in
// order.
func (l *lexer) back(toks ...token) {
	for i := len(toks) - 1; i >= 0; i-- {
		l.unread = append(l.unread, toks[i])
	}
}

// body returns the raw text after an already consumed '{' up to its
// matching '}', and advances past it. Nested braces are balanced. When the
// brace is never closed the lexer position is left unchanged and ok is
// false.
func (l *lexer) body() (text string, ok bool) {
	if n := len(l.unread); n > 0 {
		l.pos = l.unread[n-1].pos
		l.unread = l.unread[:0]
	}
	depth := 1
	for i := l.pos; i < len(l.src); i++ {
		switch l.src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				text = l.src[l.pos:i]
				l.pos = i + 1
				return text, true
			}
		}
	}
	return "", false
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func (l *lexer) runeAt(i int) rune {
	if i >= len(l.src) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(l.src[i:])
	return r
}

func (l *lexer) scan() token {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c != ' ' && c != '\t' && c != '\r' && c != '\f' && c != '\v' {
			break
		}
		l.pos++
	}
	start := l.pos
	if start >= len(l.src) {
		return token{kind: tokEOF, pos: start}
	}

	switch c := l.src[start]; c {
	case '\n':
		l.pos++
		return token{kind: tokNewline, pos: start}
	case ':':
		l.pos++
		return token{kind: tokColon, text: ":", pos: start}
	case '{':
		l.pos++
		return token{kind: tokLBrace, text: "{", pos: start}
	case '}':
		l.pos++
		return token{kind: tokRBrace, text: "}", pos: start}
	case '"':
		rest := l.src[start+1:]
		if end := strings.IndexAny(rest, "\"\n"); end >= 0 && rest[end] == '"' {
			l.pos = start + 1 + end + 1
			return token{kind: tokString, text: rest[:end], pos: start}
		}
		l.pos++
		return token{kind: tokOther, text: `"`, pos: start}
	}

	if a, ok := l.matchArrow(start); ok {
		l.pos = start + len(a.Token)
		return token{kind: tokArrow, text: a.Token, arrow: a, pos: start}
	}

	r, size := utf8.DecodeRuneInString(l.src[start:])
	if !isIdentRune(r) {
		l.pos += size
		return token{kind: tokOther, text: string(r), pos: start}
	}
	return l.scanIdent(start)
}

// scanIdent reads letters, numbers and underscores, plus any '.' that sits
// between two identifier runes, so qualified names are a single token while
// "A..>B" still yields A, ..>, B.
func (l *lexer) scanIdent(start int) token {
	i := start
	for i < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[i:])
		if isIdentRune(r) {
			i += size
			continue
		}
		if r == '.' && i > start && isIdentRune(l.runeAt(i+1)) {
			i += size
			continue
		}
		break
	}
	l.pos = i
	return token{kind: tokIdent, text: l.src[start:i], pos: start}
}

func (l *lexer) matchArrow(start int) (Arrow, bool) {
	rest := l.src[start:]
	for _, a := range arrowLexicon {
		if !strings.HasPrefix(rest, a.Token) {
			continue
		}
		// "--o" must not swallow the first letter of a name: "A -- order".
		if a.Token == "--o" && isIdentRune(l.runeAt(start+len(a.Token))) {
			continue
		}
		return a, true
	}
	return Arrow{}, false
}

package extractor

import (
	"strings"
)

// Event is one structural fact found in a diagram, before normalization.
// The concrete types are EntityDeclared, RelationshipFound and
// AttributeLine.
type Event interface {
	event()
}

// EntityDeclared is a class, abstract class, interface or enum declaration.
// Name is the raw declared name (quoted contents or bare, possibly
// qualified). Alias is empty unless an "as Alias" clause was present.
type EntityDeclared struct {
	Keyword string
	Name    string
	Quoted  bool
	Alias   string
	HasBody bool
}

// RelationshipFound is an arrow with its two endpoints in textual order.
type RelationshipFound struct {
	Left  string
	Right string
	Arrow Arrow
}

// AttributeLine is one raw line of a class or interface body. Owner is the
// alias of the declaring entity when it has one, its name otherwise.
type AttributeLine struct {
	Owner string
	Line  string
}

func (EntityDeclared) event()    {}
func (RelationshipFound) event() {}
func (AttributeLine) event()     {}

// Orient returns the semantic source and target of r. Reverse arrows such
// as "<|--" carry their source on the right, so the endpoints are swapped.
func Orient(r RelationshipFound) (source, target string) {
	if r.Arrow.Reverse {
		return r.Right, r.Left
	}
	return r.Left, r.Right
}

// Scan tokenizes document and returns its events in document order.
// Comments are removed first. Text that matches no construct is skipped.
func Scan(document string) []Event {
	s := &scanner{lx: newLexer(stripComments(document))}
	s.run()
	return s.events
}

type scanner struct {
	lx     *lexer
	events []Event
}

func (s *scanner) emit(ev Event) {
	s.events = append(s.events, ev)
}

func (s *scanner) run() {
	// Names seen since the last line break or separator; only the last
	// two are ever needed to find a left endpoint.
	var line []token

	for {
		tok := s.lx.next()
		switch tok.kind {
		case tokEOF:
			return

		case tokIdent:
			if s.declaration(tok) {
				line = line[:0]
				continue
			}
			line = append(line, tok)

		case tokString:
			line = append(line, tok)

		case tokArrow:
			left, ok := leftEndpoint(line)
			line = line[:0]
			if !ok {
				continue
			}
			right, ok := s.rightEndpoint()
			if !ok {
				continue
			}
			s.emit(RelationshipFound{Left: left.text, Right: right.text, Arrow: tok.arrow})
			line = append(line, right)

			if nxt := s.lx.next(); nxt.kind == tokColon {
				s.skipLine()
				line = line[:0]
			} else {
				s.lx.back(nxt)
			}

		default:
			line = line[:0]
		}
	}
}

// leftEndpoint picks the name before an arrow. A quoted string directly
// before the arrow is a cardinality when another name precedes it.
func leftEndpoint(line []token) (token, bool) {
	n := len(line)
	if n == 0 {
		return token{}, false
	}
	last := line[n-1]
	if last.kind == tokString && n >= 2 && line[n-2].isName() {
		return line[n-2], true
	}
	return last, true
}

// rightEndpoint reads the name after an arrow, skipping an optional quoted
// cardinality. Nothing is consumed when no endpoint follows.
func (s *scanner) rightEndpoint() (token, bool) {
	first := s.lx.next()
	switch first.kind {
	case tokIdent:
		return first, true
	case tokString:
		second := s.lx.next()
		if second.isName() {
			return second, true
		}
		s.lx.back(second)
		return first, true
	default:
		s.lx.back(first)
		return token{}, false
	}
}

// skipLine drops tokens up to and including the next line break.
func (s *scanner) skipLine() {
	for {
		t := s.lx.next()
		if t.kind == tokNewline || t.kind == tokEOF {
			return
		}
	}
}

// declaration recognizes an entity declaration starting at kw and emits
// its events. When kw does not start a declaration every token read ahead
// is pushed back and false is returned.
func (s *scanner) declaration(kw token) bool {
	keyword := strings.ToLower(kw.text)
	var ahead []token

	switch keyword {
	case "class", "interface", "enum":
	case "abstract":
		t := s.lx.next()
		ahead = append(ahead, t)
		if t.kind != tokIdent || !strings.EqualFold(t.text, "class") {
			s.lx.back(ahead...)
			return false
		}
		keyword = "abstract class"
	default:
		return false
	}

	name := s.lx.next()
	ahead = append(ahead, name)
	if !name.isName() {
		s.lx.back(ahead...)
		return false
	}

	decl := EntityDeclared{
		Keyword: keyword,
		Name:    name.text,
		Quoted:  name.kind == tokString,
	}

	t := s.lx.next()
	if t.kind == tokIdent && strings.EqualFold(t.text, "as") {
		if alias := s.lx.next(); alias.kind == tokIdent {
			decl.Alias = alias.text
			t = s.lx.next()
		} else {
			t = alias
		}
	}

	// Stereotypes, generics and extends clauses may sit between the
	// header and its body.
	for t.kind != tokLBrace && t.kind != tokNewline && t.kind != tokEOF {
		t = s.lx.next()
	}
	if t.kind == tokNewline {
		t = s.braceOnNextLine(t)
	}

	var body string
	if t.kind == tokLBrace {
		body, decl.HasBody = s.lx.body()
	} else {
		s.lx.back(t)
	}

	s.emit(decl)
	if decl.HasBody && keyword != "enum" {
		owner := decl.Name
		if decl.Alias != "" {
			owner = decl.Alias
		}
		for _, line := range strings.Split(body, "\n") {
			s.emit(AttributeLine{Owner: owner, Line: line})
		}
	}
	return true
}

// braceOnNextLine looks past the line break nl for a body brace opening a
// following line, as in "class A\n{". It returns that brace, or pushes
// everything back and returns nl.
func (s *scanner) braceOnNextLine(nl token) token {
	ahead := []token{nl}
	for {
		t := s.lx.next()
		switch t.kind {
		case tokLBrace:
			return t
		case tokNewline:
			ahead = append(ahead, t)
		default:
			s.lx.back(append(ahead[1:], t)...)
			return nl
		}
	}
}

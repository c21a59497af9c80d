package extractor

import "strings"

// stripComments removes PlantUML comments from src.
//
// Block comments (/' ... '/ and /* ... */) are dropped first, keeping the
// line breaks they span so line structure is preserved. A ' outside a quoted
// string then comments out the rest of its line. Quoted strings never span
// lines, so an unbalanced " only protects the rest of its own line.
func stripComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))

	inString := false
	for i := 0; i < len(src); i++ {
		c := src[i]

		if inString {
			b.WriteByte(c)
			if c == '"' || c == '\n' {
				inString = false
			}
			continue
		}

		switch {
		case c == '"':
			inString = true
			b.WriteByte(c)
		case c == '/' && i+1 < len(src) && (src[i+1] == '\'' || src[i+1] == '*'):
			end := "'/"
			if src[i+1] == '*' {
				end = "*/"
			}
			j := strings.Index(src[i+2:], end)
			var body string
			if j < 0 {
				body = src[i+2:]
				i = len(src)
			} else {
				body = src[i+2 : i+2+j]
				i += 2 + j + len(end) - 1
			}
			b.WriteString(strings.Repeat("\n", strings.Count(body, "\n")))
		case c == '\'':
			j := strings.IndexByte(src[i:], '\n')
			if j < 0 {
				i = len(src)
			} else {
				i += j - 1
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

package extractor

import (
	"regexp"
	"strings"
)

var (
	stereotypeLine = regexp.MustCompile(`^\{.*\}$`)
	separatorLine  = regexp.MustCompile(`^[-=]+$`)
	modifierGroup  = regexp.MustCompile(`\{[^}]+\}\s*`)

	// [visibility] name [: type] [= default]; only the name is captured.
	attributeLine = regexp.MustCompile(`^[+\-#~]?\s*([\p{L}\p{N}_]+)\s*(?::\s*.+)?(?:\s*=\s*.+)?$`)
)

// reservedModifiers are keywords that can stand alone on a body line but
// never name an attribute.
var reservedModifiers = map[string]bool{
	"static":   true,
	"abstract": true,
	"final":    true,
	"const":    true,
	"readonly": true,
	"virtual":  true,
	"override": true,
}

// AttributeName returns the raw attribute name declared by one class body
// line, or false when the line declares no attribute (blank lines,
// stereotypes, annotations, separators, methods, bare modifiers).
func AttributeName(line string) (string, bool) {
	if i := strings.IndexByte(line, '\''); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return "", false
	case stereotypeLine.MatchString(line):
		return "", false
	case strings.HasPrefix(line, "@"):
		return "", false
	case separatorLine.MatchString(line):
		return "", false
	}

	line = strings.TrimSpace(modifierGroup.ReplaceAllString(line, ""))
	if line == "" || strings.Contains(line, "(") {
		return "", false
	}

	m := attributeLine.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	if reservedModifiers[strings.ToLower(m[1])] {
		return "", false
	}
	return m[1], true
}

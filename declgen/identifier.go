package declgen

import (
	"regexp"
	"strconv"
	"strings"
)

var validIdentifier = regexp.MustCompile(`(?i)^[$A-Z_][0-9A-Z_$]*$`)

// reservedWords are names that must be emitted quoted even though they match
// the identifier pattern.
var reservedWords = map[string]bool{}

// Identifier turns a documented member or parameter name into a declaration
// name: the trailing varargs `*` is dropped and anything that is not a plain
// identifier is quoted.
func Identifier(raw string) string {
	name := strings.TrimSuffix(raw, "*")
	if !validIdentifier.MatchString(name) || reservedWords[name] {
		return strconv.Quote(name)
	}
	return name
}

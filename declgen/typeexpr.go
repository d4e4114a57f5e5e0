package declgen

import (
	"regexp"
	"slices"
	"strings"

	"github.com/teranos/dtsgen/dts"
)

// FallbackMode decides what a type name outside the keyword table becomes.
type FallbackMode string

const (
	// FallbackPermissive emits a named reference for identifier-shaped names.
	FallbackPermissive FallbackMode = "permissive"
	// FallbackConservative emits `any` for every unrecognized name.
	FallbackConservative FallbackMode = "conservative"
)

// Valid reports whether m is a known mode.
func (m FallbackMode) Valid() bool {
	return m == FallbackPermissive || m == FallbackConservative
}

var (
	unionSeparator = regexp.MustCompile(`\s*\|\s*|\s+or\s+`)
	qualifiedName  = regexp.MustCompile(`^[$A-Za-z_][$\w]*(\.[$A-Za-z_][$\w]*)*$`)
	genericType    = regexp.MustCompile(`^([$A-Za-z_][$\w]*(?:\.[$A-Za-z_][$\w]*)*)\s*<(.*)>$`)
)

// keywordTypes maps YUIDoc primitive names to predefined types. Matching is case-sensitive.
var keywordTypes = map[string]dts.Keyword{
	"Object":  dts.AnyKeyword,
	"Any":     dts.AnyKeyword,
	"*":       dts.AnyKeyword,
	"Void":    dts.VoidKeyword,
	"String":  dts.StringKeyword,
	"Number":  dts.NumberKeyword,
	"Boolean": dts.BooleanKeyword,
}

// reservedTypeWords cannot appear as a segment of a type reference.
var reservedTypeWords = strings.Fields(`
	break case catch class const continue debugger default delete do else enum
	export extends false finally for function if implements import in instanceof
	interface let new null package private protected public return static super
	switch this throw true try typeof var void while with yield`)

// TypeParser translates YUIDoc type strings into type nodes.
type TypeParser struct {
	Fallback FallbackMode
}

// ParseType parses raw with the permissive fallback.
func ParseType(raw string, varargs bool) dts.Type {
	return TypeParser{Fallback: FallbackPermissive}.Parse(raw, varargs)
}

// Parse never fails: anything it cannot make sense of becomes `any`.
// With varargs set the result is wrapped exactly once as an array, the
// element type of a rest parameter.
func (tp TypeParser) Parse(raw string, varargs bool) dts.Type {
	if varargs {
		return dts.NewArray(tp.Parse(raw, false))
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return anyType()
	}

	// Union members may carry their own ellipsis markers, so split first.
	if parts := splitUnion(raw); len(parts) > 1 {
		types := make([]dts.Type, 0, len(parts))
		for _, part := range parts {
			types = append(types, tp.Parse(part, false))
		}
		return dts.NewUnion(types...)
	}

	raw = trimEllipsis(raw)
	if raw == "" {
		return anyType()
	}
	if kw, ok := keywordTypes[raw]; ok {
		return dts.NewKeyword(kw)
	}
	return tp.fallback(raw)
}

func (tp TypeParser) fallback(raw string) dts.Type {
	if tp.Fallback == FallbackConservative {
		return anyType()
	}

	if elem, ok := strings.CutSuffix(raw, "[]"); ok {
		return dts.NewArray(tp.Parse(elem, false))
	}

	// Lowercase spellings YUIDoc authors use for a callback or no result
	switch raw {
	case "function":
		return dts.NewReference("Function")
	case "void":
		return dts.NewKeyword(dts.VoidKeyword)
	}

	if m := genericType.FindStringSubmatch(raw); m != nil {
		if hasReservedSegment(m[1]) {
			return anyType()
		}
		var args []dts.Type
		for _, arg := range splitTypeArguments(m[2]) {
			args = append(args, tp.Parse(arg, false))
		}
		return dts.NewReference(m[1], args...)
	}

	if qualifiedName.MatchString(raw) && !hasReservedSegment(raw) {
		return dts.NewReference(raw)
	}
	return anyType()
}

// hasReservedSegment reports whether any dotted segment of name is a reserved word.
func hasReservedSegment(name string) bool {
	for _, segment := range strings.Split(name, ".") {
		if slices.Contains(reservedTypeWords, segment) {
			return true
		}
	}
	return false
}

// trimEllipsis drops the `...T` / `T...` array markers. Varargs-ness is
// decided by the caller, so the markers carry no further meaning here.
func trimEllipsis(raw string) string {
	raw = strings.TrimPrefix(raw, "...")
	raw = strings.TrimSuffix(raw, "...")
	return strings.TrimSpace(raw)
}

// splitUnion splits on union separators outside of <> type arguments, so
// Promise<String|Number> stays one generic type.
func splitUnion(raw string) []string {
	var parts []string
	start := 0
	for _, loc := range unionSeparator.FindAllStringIndex(raw, -1) {
		if depth := strings.Count(raw[:loc[0]], "<") - strings.Count(raw[:loc[0]], ">"); depth > 0 {
			continue
		}
		parts = append(parts, raw[start:loc[0]])
		start = loc[1]
	}
	return append(parts, raw[start:])
}

// splitTypeArguments splits on commas that are not nested inside <>.
func splitTypeArguments(s string) []string {
	var args []string
	depth, start := 0, 0
	for i, ch := range s {
		switch ch {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, s[start:i])
				start = i + 1
			}
		}
	}
	return append(args, s[start:])
}

func anyType() dts.Type {
	return dts.NewKeyword(dts.AnyKeyword)
}

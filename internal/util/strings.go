// Package util holds small string helpers shared by dtsgen packages.
package util

import "strings"

// HasPrefixOrSuffix reports whether s starts or ends with affix. An empty
// affix never matches.
func HasPrefixOrSuffix(s, affix string) bool {
	if affix == "" {
		return false
	}
	return strings.HasPrefix(s, affix) || strings.HasSuffix(s, affix)
}

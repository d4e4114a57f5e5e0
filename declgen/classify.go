package declgen

import (
	"strings"

	"github.com/teranos/dtsgen/dts"
	"github.com/teranos/dtsgen/internal/util"
	"github.com/teranos/dtsgen/yuidoc"
)

// MemberKind is the rendering shape chosen for a class item.
type MemberKind int

const (
	Excluded MemberKind = iota
	CallableMember
	FieldMember
)

func (k MemberKind) String() string {
	switch k {
	case CallableMember:
		return "callable"
	case FieldMember:
		return "field"
	default:
		return "excluded"
	}
}

// Classify maps methods and events to callable members and properties to fields.
func Classify(item yuidoc.ClassItemDoc) MemberKind {
	switch item.ItemType {
	case yuidoc.ItemMethod, yuidoc.ItemEvent:
		return CallableMember
	case yuidoc.ItemProperty:
		return FieldMember
	default:
		return Excluded
	}
}

// Modifiers returns the visibility keywords for access. Public and unset
// access produce none.
func Modifiers(access yuidoc.Access) []dts.Modifier {
	switch access {
	case yuidoc.AccessPrivate:
		return []dts.Modifier{dts.ModifierPrivate}
	case yuidoc.AccessProtected:
		return []dts.Modifier{dts.ModifierProtected}
	default:
		return nil
	}
}

// IsVarargs reports whether a parameter is variadic. Any one of the three
// YUIDoc conventions is enough: `name*`, `...Type` / `Type...`, or multiple.
func IsVarargs(param yuidoc.ParamDoc) bool {
	return strings.HasSuffix(param.Name, "*") ||
		util.HasPrefixOrSuffix(param.Type, "...") ||
		param.Multiple
}

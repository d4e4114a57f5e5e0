package declgen

import (
	"sort"
	"strings"

	"github.com/teranos/dtsgen/dts"
	"github.com/teranos/dtsgen/logger"
	"github.com/teranos/dtsgen/yuidoc"
	"go.uber.org/zap"
)

// DefaultNamespace holds classes that name neither a namespace nor a qualifier.
const DefaultNamespace = "Ember"

type builder struct {
	types            TypeParser
	defaultNamespace string
	includePrivate   bool
	log              *zap.SugaredLogger
}

// BareName strips everything up to the last dot: Ember.ApplicationInstance.BootOptions -> BootOptions.
func BareName(fqn string) string {
	if i := strings.LastIndex(fqn, "."); i >= 0 {
		return fqn[i+1:]
	}
	return fqn
}

// NamespaceFor picks the explicit namespace, then the qualifier of the class
// name, then fallback.
func NamespaceFor(class yuidoc.ClassDoc, fallback string) string {
	if class.Namespace != "" {
		return class.Namespace
	}
	if i := strings.LastIndex(class.Name, "."); i > 0 {
		return class.Name[:i]
	}
	return fallback
}

// buildClass wraps one class and its members in an ambient namespace.
// items may contain members of other classes; only exact owner matches are used.
func (b *builder) buildClass(class yuidoc.ClassDoc, items []yuidoc.ClassItemDoc) *dts.Namespace {
	var owned []yuidoc.ClassItemDoc
	for _, item := range items {
		if item.Class != class.Name {
			continue
		}
		if item.Access == yuidoc.AccessPrivate && !b.includePrivate {
			continue
		}
		owned = append(owned, item)
	}
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].Line < owned[j].Line
	})

	members := make([]dts.Member, 0, len(owned))
	for _, item := range owned {
		m, ok := b.buildMember(item)
		if !ok {
			continue
		}
		b.log.Debugw("Built member",
			logger.FieldClass, class.Name,
			logger.FieldItem, dts.MemberName(m),
			logger.FieldLine, item.Line)
		members = append(members, m)
	}

	decl := &dts.Class{
		Modifiers: Modifiers(class.Access),
		Name:      BareName(class.Name),
		Members:   members,
	}
	addComment(&decl.Commented, class.Description)

	ns := &dts.Namespace{
		Modifiers: []dts.Modifier{dts.ModifierDeclare},
		Name:      NamespaceFor(class, b.defaultNamespace),
		Body:      []*dts.Class{decl},
	}
	if class.File != "" {
		ns.AddLeadingComment(dts.SingleLineComment, class.File)
	}
	return ns
}

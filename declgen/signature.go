package declgen

import (
	"github.com/teranos/dtsgen/dts"
	"github.com/teranos/dtsgen/logger"
	"github.com/teranos/dtsgen/yuidoc"
)

// buildMember returns false for items that are not rendered.
func (b *builder) buildMember(item yuidoc.ClassItemDoc) (dts.Member, bool) {
	switch Classify(item) {
	case CallableMember:
		return b.buildMethod(item), true
	case FieldMember:
		return b.buildProperty(item), true
	default:
		b.log.Warnw("Skipping class item with unsupported itemtype",
			logger.FieldClass, item.Class,
			logger.FieldItem, item.Name,
			logger.FieldItemType, string(item.ItemType),
			logger.FieldFile, item.File,
			logger.FieldLine, item.Line)
		return nil, false
	}
}

func (b *builder) buildMethod(item yuidoc.ClassItemDoc) *dts.Method {
	params := make([]*dts.Parameter, 0, len(item.Params))
	for _, p := range item.Params {
		params = append(params, b.buildParameter(p))
	}

	var returnType string
	if item.Return != nil {
		returnType = item.Return.Type
	}

	method := &dts.Method{
		Modifiers:  Modifiers(item.Access),
		Name:       Identifier(item.Name),
		Parameters: params,
		ReturnType: b.types.Parse(returnType, false),
	}
	// TODO: attach @param and @return descriptions as JSDoc tags
	addComment(&method.Commented, item.Description)
	return method
}

func (b *builder) buildProperty(item yuidoc.ClassItemDoc) *dts.Property {
	prop := &dts.Property{
		Modifiers: Modifiers(item.Access),
		Name:      Identifier(item.Name),
		Type:      b.types.Parse(item.Type, false),
	}
	addComment(&prop.Commented, item.Description)
	return prop
}

func (b *builder) buildParameter(p yuidoc.ParamDoc) *dts.Parameter {
	varargs := IsVarargs(p)
	return &dts.Parameter{
		Name: Identifier(p.Name),
		Rest: varargs,
		Type: b.types.Parse(p.Type, varargs),
	}
}

// addComment attaches description verbatim as a block comment opening and
// closing on its own line.
func addComment(node *dts.Commented, description string) {
	if description == "" {
		return
	}
	node.AddLeadingComment(dts.MultiLineComment, "\n"+description+"\n")
}

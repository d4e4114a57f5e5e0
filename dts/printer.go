package dts

import (
	"bytes"
	"io"
	"strings"
)

// NewLineKind selects the line terminator written by the Printer.
type NewLineKind int

const (
	LineFeed NewLineKind = iota
	CarriageReturnLineFeed
)

// PrinterOptions configures output formatting.
type PrinterOptions struct {
	NewLine        NewLineKind
	RemoveComments bool
}

// Printer renders a SourceFile as declaration text.
type Printer struct {
	opts PrinterOptions
}

func NewPrinter(opts PrinterOptions) *Printer {
	return &Printer{opts: opts}
}

// PrintFile returns the text of f.
func (p *Printer) PrintFile(f *SourceFile) string {
	var buf bytes.Buffer
	p.Fprint(&buf, f)
	return buf.String()
}

// Fprint writes the text of f to w.
func (p *Printer) Fprint(w io.Writer, f *SourceFile) error {
	dp := p.newDeclPrinter(w)
	for _, ns := range f.Statements {
		dp.printNamespace(ns)
	}
	return dp.err
}

// PrintType returns the text of a single type node.
func (p *Printer) PrintType(t Type) string {
	var buf bytes.Buffer
	dp := p.newDeclPrinter(&buf)
	dp.printType(t)
	return buf.String()
}

type declPrinter struct {
	w              io.Writer
	err            error
	indent         int
	indentStr      string
	newLine        string
	removeComments bool
	atLineStart    bool
}

func (p *Printer) newDeclPrinter(w io.Writer) *declPrinter {
	nl := "\n"
	if p.opts.NewLine == CarriageReturnLineFeed {
		nl = "\r\n"
	}
	return &declPrinter{
		w:              w,
		indentStr:      "    ",
		newLine:        nl,
		removeComments: p.opts.RemoveComments,
		atLineStart:    true,
	}
}

func (p *declPrinter) write(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *declPrinter) writeIndent() {
	if !p.atLineStart {
		return
	}
	for i := 0; i < p.indent; i++ {
		p.write(p.indentStr)
	}
	p.atLineStart = false
}

func (p *declPrinter) newline() {
	p.write(p.newLine)
	p.atLineStart = true
}

func (p *declPrinter) printModifiers(mods []Modifier) {
	for _, m := range mods {
		if s := m.String(); s != "" {
			p.write(s)
			p.write(" ")
		}
	}
}

func (p *declPrinter) printComments(comments []Comment) {
	if p.removeComments {
		return
	}
	for _, c := range comments {
		p.writeIndent()
		switch c.Kind {
		case SingleLineComment:
			p.write("//")
			p.write(strings.TrimRight(strings.ReplaceAll(c.Text, "\n", " "), "\r "))
		default:
			p.write("/*")
			// Every continuation line is re-indented to the owning node.
			lines := strings.Split(strings.ReplaceAll(c.Text, "*/", "*\\/"), "\n")
			for i, line := range lines {
				if i > 0 {
					p.newline()
					p.writeIndent()
				}
				p.write(strings.TrimSuffix(line, "\r"))
			}
			p.write("*/")
		}
		p.newline()
	}
}

func (p *declPrinter) printNamespace(ns *Namespace) {
	p.printComments(ns.LeadingComments())
	p.writeIndent()
	p.printModifiers(ns.Modifiers)
	p.write("namespace ")
	p.write(ns.Name)
	p.write(" {")
	p.newline()
	p.indent++
	for _, c := range ns.Body {
		p.printClass(c)
	}
	p.indent--
	p.writeIndent()
	p.write("}")
	p.newline()
}

func (p *declPrinter) printClass(c *Class) {
	p.printComments(c.LeadingComments())
	p.writeIndent()
	p.printModifiers(c.Modifiers)
	p.write("class ")
	p.write(c.Name)
	p.write(" {")
	p.newline()
	p.indent++
	for _, m := range c.Members {
		switch m := m.(type) {
		case *Method:
			p.printMethod(m)
		case *Property:
			p.printProperty(m)
		}
	}
	p.indent--
	p.writeIndent()
	p.write("}")
	p.newline()
}

func (p *declPrinter) printMethod(m *Method) {
	p.printComments(m.LeadingComments())
	p.writeIndent()
	p.printModifiers(m.Modifiers)
	p.write(m.Name)
	p.write("(")
	for i, param := range m.Parameters {
		if i > 0 {
			p.write(", ")
		}
		p.printParameter(param)
	}
	p.write(")")
	if m.ReturnType != nil {
		p.write(": ")
		p.printType(m.ReturnType)
	}
	p.write(";")
	p.newline()
}

func (p *declPrinter) printProperty(prop *Property) {
	p.printComments(prop.LeadingComments())
	p.writeIndent()
	p.printModifiers(prop.Modifiers)
	p.write(prop.Name)
	if prop.Type != nil {
		p.write(": ")
		p.printType(prop.Type)
	}
	p.write(";")
	p.newline()
}

func (p *declPrinter) printParameter(param *Parameter) {
	if param.Rest {
		p.write("...")
	}
	p.write(param.Name)
	if param.Type != nil {
		p.write(": ")
		p.printType(param.Type)
	}
}

func (p *declPrinter) printType(t Type) {
	switch t := t.(type) {
	case *KeywordType:
		p.write(string(t.Keyword))
	case *ReferenceType:
		p.write(t.Name)
		if len(t.TypeArguments) > 0 {
			p.write("<")
			for i, arg := range t.TypeArguments {
				if i > 0 {
					p.write(", ")
				}
				p.printType(arg)
			}
			p.write(">")
		}
	case *ArrayType:
		if _, ok := t.Elem.(*UnionType); ok {
			p.write("(")
			p.printType(t.Elem)
			p.write(")")
		} else {
			p.printType(t.Elem)
		}
		p.write("[]")
	case *UnionType:
		for i, member := range t.Types {
			if i > 0 {
				p.write(" | ")
			}
			p.printType(member)
		}
	default:
		p.write(string(AnyKeyword))
	}
}

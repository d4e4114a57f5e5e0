// Package dts models a TypeScript declaration file as a small syntax tree and prints it.
//
// Only the node kinds a generated ambient declaration needs are represented:
// namespaces, classes, methods, properties, parameters, type nodes and comments.
// Nodes are plain values built by the caller; the Printer is the only consumer.
package dts

// Modifier is a keyword placed before a declaration.
type Modifier int

const (
	ModifierDeclare Modifier = iota + 1
	ModifierPrivate
	ModifierProtected
)

func (m Modifier) String() string {
	switch m {
	case ModifierDeclare:
		return "declare"
	case ModifierPrivate:
		return "private"
	case ModifierProtected:
		return "protected"
	default:
		return ""
	}
}

// CommentKind selects between `/* */` and `//` trivia.
type CommentKind int

const (
	MultiLineComment CommentKind = iota
	SingleLineComment
)

// Comment is synthetic leading trivia attached to a node.
type Comment struct {
	Kind CommentKind
	Text string
}

// Commented is embedded by every node that can carry leading comments.
type Commented struct {
	Leading []Comment
}

// AddLeadingComment appends a comment printed before the node.
func (c *Commented) AddLeadingComment(kind CommentKind, text string) {
	c.Leading = append(c.Leading, Comment{Kind: kind, Text: text})
}

// LeadingComments returns the comments printed before the node.
func (c *Commented) LeadingComments() []Comment {
	return c.Leading
}

// SourceFile is the root of a printed declaration file.
type SourceFile struct {
	Statements []*Namespace
}

// Namespace is a `namespace A.B { ... }` statement.
type Namespace struct {
	Commented
	Modifiers []Modifier
	Name      string
	Body      []*Class
}

// Class is a class declaration inside a namespace.
type Class struct {
	Commented
	Modifiers []Modifier
	Name      string
	Members   []Member
}

// Member is a class element: *Method or *Property.
type Member interface {
	LeadingComments() []Comment
	memberName() string
}

// Method is a body-less method signature.
type Method struct {
	Commented
	Modifiers  []Modifier
	Name       string
	Parameters []*Parameter
	ReturnType Type
}

func (m *Method) memberName() string { return m.Name }

// Property is a typed field without initializer.
type Property struct {
	Commented
	Modifiers []Modifier
	Name      string
	Type      Type
}

func (p *Property) memberName() string { return p.Name }

// Parameter is one method parameter; Rest marks a `...name` parameter.
type Parameter struct {
	Name string
	Rest bool
	Type Type
}

// MemberName returns the printed name of a class member.
func MemberName(m Member) string {
	return m.memberName()
}

package model

// Location points at a source anchor for a definition (1-based line).
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// SourceFile represents a single parsed source file with its top-level
// class definitions. Immutable once built.
type SourceFile struct {
	Name        string             // File base name
	Path        string             // File path or URL as inspected
	Fingerprint uint64             // Content fingerprint
	Classes     []*ClassDefinition // Classes in source order
}

// ClassDefinition represents a top-level class with its base names as
// written in source (unresolved) and its methods in declaration order.
type ClassDefinition struct {
	Name     string
	Bases    []string
	Methods  []*MethodDefinition
	File     *SourceFile // owning file (back-reference)
	Location Location
}

// AddClass appends a class and wires its back-reference.
func (f *SourceFile) AddClass(class *ClassDefinition) {
	class.File = f
	f.Classes = append(f.Classes, class)
}

// LookupMethod retrieves a method by name, or nil when undefined.
func (c *ClassDefinition) LookupMethod(name string) *MethodDefinition {
	for _, method := range c.Methods {
		if method.Name == name {
			return method
		}
	}
	return nil
}

// HasMethod checks if a method with the given name is defined on the class.
func (c *ClassDefinition) HasMethod(name string) bool {
	return c.LookupMethod(name) != nil
}

// AddMethod appends a method and wires its back-reference.
func (c *ClassDefinition) AddMethod(method *MethodDefinition) {
	method.Class = c
	c.Methods = append(c.Methods, method)
}

// MethodDefinition represents a method body reduced to the statements the
// conformance rules care about. SelfName holds the literal first parameter
// name; receiver-qualified statements are matched against it by string
// equality, never by object inspection.
type MethodDefinition struct {
	Name       string
	SelfName   string
	Statements []*Statement
	Class      *ClassDefinition // owning class (back-reference)
	Location   Location
}

// AddStatement appends a statement and wires its back-reference.
func (m *MethodDefinition) AddStatement(statement *Statement) {
	statement.Method = m
	m.Statements = append(m.Statements, statement)
}

// StatementKind discriminates the statement variants relevant to rules.
type StatementKind int

const (
	// KindOther marks statements no rule inspects.
	KindOther StatementKind = iota
	// KindAssignment marks `<receiver>.<attribute> = <value>`.
	KindAssignment
	// KindCall marks `<expr>.<name>(...)` regardless of arguments.
	KindCall
)

// Statement is a tagged variant owned by exactly one method.
type Statement struct {
	Kind StatementKind

	// Assignment fields
	Receiver  string // literal receiver token, e.g. "self"
	Attribute string // assigned attribute name
	IsNone    bool   // value is the null literal

	// Call fields
	ReceiverPath string // full receiver expression as written, e.g. "self.app"
	ReceiverRoot string // leftmost identifier of the receiver path
	CallName     string // called attribute or method name

	Method   *MethodDefinition // owning method (back-reference)
	Location Location
}

// SelfAssignment reports whether the statement assigns an attribute via the
// owning method's self receiver.
func (s *Statement) SelfAssignment() bool {
	return s.Kind == KindAssignment && s.Method != nil &&
		s.Method.SelfName != "" && s.Receiver == s.Method.SelfName
}

// SelfCall reports whether the statement is a call rooted at the owning
// method's self receiver, e.g. self.stop() or self.app.stop().
func (s *Statement) SelfCall() bool {
	return s.Kind == KindCall && s.Method != nil &&
		s.Method.SelfName != "" && s.ReceiverRoot == s.Method.SelfName
}

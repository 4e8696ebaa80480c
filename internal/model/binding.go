package model

import "fmt"

// Span is a half-open byte range [Start, End) into a source file.
type Span struct {
	Start uint32 `yaml:"start"`
	End   uint32 `yaml:"end"`
}

// IsZero reports whether the span is empty and anchored at offset zero.
func (s Span) IsZero() bool {
	return s.Start == 0 && s.End == 0
}

// Contains reports whether o lies entirely inside s.
func (s Span) Contains(o Span) bool {
	return s.Start <= o.Start && o.End <= s.End
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// BindingID identifies a binding inside one parsed program.
type BindingID int

// NoBinding marks a context whose target is not a plain identifier.
const NoBinding BindingID = -1

// BindingKind describes how a binding was introduced.
type BindingKind string

const (
	// BindingImportDefault is `import D from "m"`.
	BindingImportDefault BindingKind = "import-default"
	// BindingImportNamed is `import { a as b } from "m"`.
	BindingImportNamed BindingKind = "import-named"
	// BindingImportNamespace is `import * as N from "m"`.
	BindingImportNamespace BindingKind = "import-namespace"
	// BindingVariable is a var, let or const declaration.
	BindingVariable BindingKind = "variable"
	// BindingParameter is a function or catch parameter.
	BindingParameter BindingKind = "parameter"
	// BindingFunction is a function name.
	BindingFunction BindingKind = "function"
	// BindingClass is a class name.
	BindingClass BindingKind = "class"
)

// Binding is a named variable in a lexical scope.
type Binding struct {
	ID         BindingID
	Name       string
	Kind       BindingKind
	Span       Span // declaring identifier
	Line       int
	Declarator *Declarator // set only for `name = init` declarators with a plain identifier
}

// Declarator describes where a variable declarator sits, so it can be removed
// or have its initializer rewritten.
type Declarator struct {
	Span Span
	// Value is the initializer. Zero when the declarator has none.
	Value Span
	// Removal is the range to delete to drop this declarator, including the
	// separating comma when it shares a declaration with others.
	Removal Span
	// RemovesStatement is set when Removal covers the whole statement.
	RemovesStatement bool
	// InList is set when the enclosing statement sits in a statement list.
	InList bool
	// Exported declarators are visible to other modules and are never deleted.
	Exported bool
	// Enclosing is the full declaration statement (including `export`).
	Enclosing Span
	// Siblings are the spans of every declarator in the declaration, in order,
	// when there is more than one.
	Siblings []Span
}

// ContextKind tags the syntactic position a reference appears in.
type ContextKind int

const (
	// ContextOther covers every position not listed below.
	ContextOther ContextKind = iota
	// ContextDeclarator is `let x = ref`.
	ContextDeclarator
	// ContextAssignment is `x = ref`.
	ContextAssignment
	// ContextMember is `ref.name` or `ref["name"]` or `ref[expr]`.
	ContextMember
	// ContextCall is `ref(...)`.
	ContextCall
)

func (k ContextKind) String() string {
	switch k {
	case ContextDeclarator:
		return "declarator"
	case ContextAssignment:
		return "assignment"
	case ContextMember:
		return "member"
	case ContextCall:
		return "call"
	default:
		return "other"
	}
}

// Use describes what the surrounding code does with an expression's value.
type Use int

const (
	// UseValue means the value feeds a larger expression.
	UseValue Use = iota
	// UseStatement means the expression is a bare statement.
	UseStatement
	// UseDeclarator means the expression initializes a declarator.
	UseDeclarator
	// UseInvokedStatement means the value is called and that call is a bare statement.
	UseInvokedStatement
	// UseInvokedValue means the value is called and that call's result is consumed.
	UseInvokedValue
	// UseAssignTarget means the expression is the left side of an assignment.
	UseAssignTarget
	// UseMemberObject means a property of the value is read, or the value's
	// result when called.
	UseMemberObject
)

// Consumer locates the expression whose fate is decided for a reference and
// the statement around it.
type Consumer struct {
	Use Use
	// Node is the expression to replace. For invoked uses it is the outer call.
	Node Span
	// Statement is the enclosing expression statement for statement uses.
	Statement Span
	InList    bool
	// Declared is the binding initialized by Node for UseDeclarator.
	Declared BindingID
	// Wrap is set when a replacement for Node must be parenthesized.
	Wrap bool
}

// UsageContext is the syntactic role of a reference. Only the fields that
// belong to Kind are meaningful.
type UsageContext struct {
	Kind ContextKind
	// Declared is the binding introduced by a declarator context, or NoBinding
	// when the declarator name is a pattern.
	Declared BindingID
	// Target is the assigned binding for an assignment context, or NoBinding
	// when the left side is not a resolvable identifier.
	Target BindingID
	// Member is the accessed property name when Resolved.
	Member   string
	Resolved bool
	// Invoked is set when the member access is the callee of a call.
	Invoked bool
	// Consumer describes the member access (or its call) or the call.
	Consumer Consumer
}

// Reference is one occurrence of a binding in the source.
type Reference struct {
	Binding BindingID
	Span    Span
	Line    int
	Column  int
	Context UsageContext
}

// SiteForm is the syntactic shape of an import site.
type SiteForm string

const (
	// SiteImportDefault is `import D from "m"`, optionally with named specifiers.
	SiteImportDefault SiteForm = "import-default"
	// SiteImportSideEffect is `import "m"`.
	SiteImportSideEffect SiteForm = "import-side-effect"
	// SiteImportNamed is `import { a } from "m"`.
	SiteImportNamed SiteForm = "import-named"
	// SiteImportNamespace is `import * as N from "m"`.
	SiteImportNamespace SiteForm = "import-namespace"
	// SiteRequire is `const D = require("m")`.
	SiteRequire SiteForm = "require"
	// SiteRequireLogger is `const d = require("m")("ns")`.
	SiteRequireLogger SiteForm = "require-logger"
	// SiteRequireBare is `require("m");` or `require("m")("ns");`.
	SiteRequireBare SiteForm = "require-bare"
)

// NamedImport is one `{ imported as local }` specifier.
type NamedImport struct {
	Imported string
	Binding  BindingID
}

// ImportSite is one statement that brings a module into the file.
type ImportSite struct {
	Module string
	Form   SiteForm
	// Span is the statement to delete or replace.
	Span   Span
	InList bool
	Line   int
	// Primary is the default, namespace, require or logger binding.
	Primary BindingID
	Named   []NamedImport
	// Declarator is set for require forms.
	Declarator *Declarator
}

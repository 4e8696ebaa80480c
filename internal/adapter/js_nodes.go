package adapter

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	m "nodebug.dev/pkg/nodebug/internal/model"
)

// tree-sitter-javascript node kinds.
const (
	nodeProgram                  = "program"
	nodeIdentifier               = "identifier"
	nodeShorthandProperty        = "shorthand_property_identifier"
	nodeShorthandPropertyPattern = "shorthand_property_identifier_pattern"
	nodePropertyIdentifier       = "property_identifier"
	nodeString                   = "string"
	nodeImportStatement          = "import_statement"
	nodeImportClause             = "import_clause"
	nodeNamespaceImport          = "namespace_import"
	nodeNamedImports             = "named_imports"
	nodeImportSpecifier          = "import_specifier"
	nodeExportStatement          = "export_statement"
	nodeExportSpecifier          = "export_specifier"
	nodeLexicalDeclaration       = "lexical_declaration"
	nodeVariableDeclaration      = "variable_declaration"
	nodeVariableDeclarator       = "variable_declarator"
	nodeExpressionStatement      = "expression_statement"
	nodeParenthesized            = "parenthesized_expression"
	nodeCall                     = "call_expression"
	nodeMember                   = "member_expression"
	nodeSubscript                = "subscript_expression"
	nodeAssignment               = "assignment_expression"
	nodeAugmentedAssignment      = "augmented_assignment_expression"
	nodeUpdate                   = "update_expression"
	nodeFunctionDeclaration      = "function_declaration"
	nodeGeneratorDeclaration     = "generator_function_declaration"
	nodeFunction                 = "function"
	nodeFunctionExpression       = "function_expression"
	nodeGeneratorFunction        = "generator_function"
	nodeArrowFunction            = "arrow_function"
	nodeMethodDefinition         = "method_definition"
	nodeComputedPropertyName     = "computed_property_name"
	nodeClassDeclaration         = "class_declaration"
	nodeClass                    = "class"
	nodeStatementBlock           = "statement_block"
	nodeSwitchBody               = "switch_body"
	nodeSwitchCase               = "switch_case"
	nodeSwitchDefault            = "switch_default"
	nodeForStatement             = "for_statement"
	nodeForInStatement           = "for_in_statement"
	nodeCatchClause              = "catch_clause"
	nodeObjectPattern            = "object_pattern"
	nodeArrayPattern             = "array_pattern"
	nodePairPattern              = "pair_pattern"
	nodeRestPattern              = "rest_pattern"
	nodeAssignmentPattern        = "assignment_pattern"
	nodeObjectAssignmentPattern  = "object_assignment_pattern"
	nodeTernary                  = "ternary_expression"
	nodeError                    = "ERROR"
)

func spanOf(n *sitter.Node) m.Span {
	return m.Span{Start: n.StartByte(), End: n.EndByte()}
}

func sameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return false
	}

	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

func lineOf(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}

func columnOf(n *sitter.Node) int {
	return int(n.StartPoint().Column) + 1
}

func isStatementList(kind string) bool {
	switch kind {
	case nodeProgram, nodeStatementBlock, nodeSwitchCase, nodeSwitchDefault:
		return true
	default:
		return false
	}
}

// stringValue returns the contents of a string literal without its quotes.
func stringValue(n *sitter.Node, src []byte) string {
	if n.Type() != nodeString {
		return n.Content(src)
	}

	var b strings.Builder
	for i := 0; i < int(n.NamedChildCount()); i++ {
		b.WriteString(n.NamedChild(i).Content(src))
	}

	return b.String()
}

// needsWrap reports whether an expression replacing child must be
// parenthesized to keep parsing the same way under parent.
func needsWrap(parent, child *sitter.Node) bool {
	switch parent.Type() {
	case nodeVariableDeclarator, "arguments", "return_statement", nodeParenthesized, "array",
		"spread_element", "template_substitution", "sequence_expression", nodeArrowFunction,
		nodeExpressionStatement, nodeExportStatement, "jsx_expression", nodeComputedPropertyName:
		return false
	case "pair":
		return !sameNode(parent.ChildByFieldName("value"), child)
	case nodeAssignment, nodeAugmentedAssignment:
		return !sameNode(parent.ChildByFieldName("right"), child)
	case nodeTernary:
		return sameNode(parent.ChildByFieldName("condition"), child)
	default:
		return true
	}
}

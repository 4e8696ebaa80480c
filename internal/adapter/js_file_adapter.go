package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	m "nodebug.dev/pkg/nodebug/internal/model"
)

// ErrParse reports a source file that does not parse cleanly. Such files are
// never rewritten.
var ErrParse = errors.New("parse error")

// ScopeIndex answers binding questions about one parsed program.
type ScopeIndex interface {
	// Binding returns the binding with the given identity.
	Binding(id m.BindingID) (m.Binding, bool)
	// References returns every read of the binding in source order.
	References(id m.BindingID) []m.Reference
	// ConstantViolations returns every write of the binding after its declaration.
	ConstantViolations(id m.BindingID) []m.Reference
}

// JSFileAdapter parses JavaScript files into scope-indexed programs.
type JSFileAdapter interface {
	Parse(ctx context.Context, path m.Path, src []byte) (*Program, error)
}

// Program is a parsed JavaScript file with its scope index.
type Program struct {
	Path   m.Path
	Source []byte
	index  *scopeIndex
}

var _ ScopeIndex = (*Program)(nil)

// LocalJSFileAdapter parses with tree-sitter's JavaScript grammar.
type LocalJSFileAdapter struct{}

// NewLocalJSFileAdapter creates a new LocalJSFileAdapter.
func NewLocalJSFileAdapter() *LocalJSFileAdapter {
	return &LocalJSFileAdapter{}
}

// Parse builds the scope index for src. Files with syntax errors fail with ErrParse.
func (a *LocalJSFileAdapter) Parse(ctx context.Context, path m.Path, src []byte) (*Program, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		line := firstErrorLine(root)
		slog.Debug("source does not parse cleanly", "path", path, "line", line)

		return nil, fmt.Errorf("%s:%d: %w", path, line, ErrParse)
	}

	return &Program{Path: path, Source: src, index: buildScopeIndex(root, src)}, nil
}

// Sites returns the import sites whose module name satisfies match, in source order.
func (p *Program) Sites(match func(module string) bool) []m.ImportSite {
	var sites []m.ImportSite

	for _, site := range p.index.sites {
		if match(site.Module) {
			sites = append(sites, site)
		}
	}

	return sites
}

// Binding returns the binding with the given identity.
func (p *Program) Binding(id m.BindingID) (m.Binding, bool) {
	if id < 0 || int(id) >= len(p.index.bindings) {
		return m.Binding{}, false
	}

	return p.index.bindings[id], true
}

// Lookup returns every binding declared with name.
func (p *Program) Lookup(name string) []m.Binding {
	var out []m.Binding

	for _, b := range p.index.bindings {
		if b.Name == name {
			out = append(out, b)
		}
	}

	return out
}

// References returns every read of the binding in source order.
func (p *Program) References(id m.BindingID) []m.Reference {
	return append([]m.Reference(nil), p.index.refs[id]...)
}

// ConstantViolations returns every write of the binding in source order.
func (p *Program) ConstantViolations(id m.BindingID) []m.Reference {
	return append([]m.Reference(nil), p.index.violations[id]...)
}

func firstErrorLine(n *sitter.Node) int {
	if n.Type() == nodeError || n.IsMissing() {
		return lineOf(n)
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.HasError() || child.IsMissing() {
			return firstErrorLine(child)
		}
	}

	return lineOf(n)
}

package adapter

import (
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
	m "nodebug.dev/pkg/nodebug/internal/model"
)

// scopeIndex is the resolved binding table of one program.
type scopeIndex struct {
	bindings   []m.Binding
	refs       map[m.BindingID][]m.Reference
	violations map[m.BindingID][]m.Reference
	sites      []m.ImportSite
}

type scope struct {
	parent *scope
	names  map[string]m.BindingID
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, names: map[string]m.BindingID{}}
}

func (s *scope) lookup(name string) (m.BindingID, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if id, ok := cur.names[name]; ok {
			return id, true
		}
	}

	return m.NoBinding, false
}

// pendingUse is an identifier occurrence resolved once every declaration
// (including hoisted ones) is known.
type pendingUse struct {
	name  string
	scope *scope
	write bool
	chain []*sitter.Node // root first, ending with the identifier
}

type pendingImport struct {
	node      *sitter.Node
	module    string
	inList    bool
	hasClause bool
	def       m.BindingID
	namespace m.BindingID
	named     []m.NamedImport
}

type pendingRequire struct {
	module string
	scope  *scope
	chain  []*sitter.Node // ending with the require call
}

// declarationSite describes a var/let/const declaration holding declarators.
type declarationSite struct {
	declarators []*sitter.Node
	statement   m.Span
	exported    bool
	inList      bool
}

// indexBuilder walks the tree once, declaring bindings into lexical scopes
// and recording identifier uses for later resolution.
type indexBuilder struct {
	src      []byte
	stack    []*sitter.Node
	bindings []m.Binding
	uses     []pendingUse
	imports  []pendingImport
	requires []pendingRequire
	declAt   map[m.Span]m.BindingID
}

func buildScopeIndex(root *sitter.Node, src []byte) *scopeIndex {
	b := &indexBuilder{src: src, declAt: map[m.Span]m.BindingID{}}

	program := newScope(nil)
	b.visit(root, program, program)

	return b.finish()
}

func (b *indexBuilder) push(n *sitter.Node) {
	b.stack = append(b.stack, n)
}

func (b *indexBuilder) pop() {
	b.stack = b.stack[:len(b.stack)-1]
}

// parent returns the k-th ancestor of the node about to be visited.
func (b *indexBuilder) parent(k int) *sitter.Node {
	i := len(b.stack) - 1 - k
	if i < 0 {
		return nil
	}

	return b.stack[i]
}

func (b *indexBuilder) snapshot(n *sitter.Node) []*sitter.Node {
	chain := make([]*sitter.Node, len(b.stack)+1)
	copy(chain, b.stack)
	chain[len(b.stack)] = n

	return chain
}

func (b *indexBuilder) use(n *sitter.Node, sc *scope, write bool) {
	b.uses = append(b.uses, pendingUse{name: n.Content(b.src), scope: sc, write: write, chain: b.snapshot(n)})
}

// declare adds a binding to target. Declaring a name twice in one scope
// records the second declaration as a write of the first binding.
func (b *indexBuilder) declare(n *sitter.Node, target *scope, kind m.BindingKind, decl *m.Declarator) m.BindingID {
	name := n.Content(b.src)
	if id, ok := target.names[name]; ok {
		b.uses = append(b.uses, pendingUse{name: name, scope: target, write: true, chain: b.snapshot(n)})
		b.declAt[spanOf(n)] = id

		return id
	}

	id := m.BindingID(len(b.bindings))
	b.bindings = append(b.bindings, m.Binding{
		ID:         id,
		Name:       name,
		Kind:       kind,
		Span:       spanOf(n),
		Line:       lineOf(n),
		Declarator: decl,
	})
	target.names[name] = id
	b.declAt[spanOf(n)] = id

	return id
}

func (b *indexBuilder) visitChildren(n *sitter.Node, sc, fn *scope) {
	b.push(n)
	for i := 0; i < int(n.NamedChildCount()); i++ {
		b.visit(n.NamedChild(i), sc, fn)
	}
	b.pop()
}

// visit walks n with sc as the innermost block scope and fn as the nearest
// function scope (the target of var declarations).
//
//nolint:cyclop,funlen // One case per binding-relevant node kind.
func (b *indexBuilder) visit(n *sitter.Node, sc, fn *scope) {
	switch n.Type() {
	case nodeIdentifier, nodeShorthandProperty:
		b.use(n, sc, false)
		return

	case nodeImportStatement:
		b.importStatement(n, sc)
		return

	case nodeExportStatement:
		if n.ChildByFieldName("source") != nil {
			return
		}

	case nodeExportSpecifier:
		if name := n.ChildByFieldName("name"); name != nil && name.Type() == nodeIdentifier {
			b.push(n)
			b.use(name, sc, false)
			b.pop()
		}

		return

	case nodeLexicalDeclaration, nodeVariableDeclaration:
		target := sc
		if n.Type() == nodeVariableDeclaration {
			target = fn
		}

		b.declaration(n, target, sc, fn)

		return

	case nodeFunctionDeclaration, nodeGeneratorDeclaration:
		if name := n.ChildByFieldName("name"); name != nil {
			b.declare(name, sc, m.BindingFunction, nil)
		}

		b.function(n, sc, fn, true)

		return

	case nodeFunction, nodeFunctionExpression, nodeGeneratorFunction, nodeArrowFunction, nodeMethodDefinition:
		b.function(n, sc, fn, false)
		return

	case nodeClassDeclaration, nodeClass:
		b.class(n, sc, fn)
		return

	case nodeStatementBlock, nodeSwitchBody, nodeForStatement:
		b.visitChildren(n, newScope(sc), fn)
		return

	case nodeForInStatement:
		b.forIn(n, sc, fn)
		return

	case nodeCatchClause:
		inner := newScope(sc)
		b.push(n)

		if param := n.ChildByFieldName("parameter"); param != nil {
			b.pattern(param, inner, fn, func(id *sitter.Node) { b.declare(id, inner, m.BindingParameter, nil) })
		}

		if body := n.ChildByFieldName("body"); body != nil {
			b.visit(body, inner, fn)
		}

		b.pop()

		return

	case nodeAssignment:
		b.push(n)

		if left := n.ChildByFieldName("left"); left != nil {
			b.assignTarget(left, sc, fn)
		}

		if right := n.ChildByFieldName("right"); right != nil {
			b.visit(right, sc, fn)
		}

		b.pop()

		return

	case nodeAugmentedAssignment:
		b.push(n)

		if left := n.ChildByFieldName("left"); left != nil {
			b.assignTarget(left, sc, fn)
		}

		if right := n.ChildByFieldName("right"); right != nil {
			b.visit(right, sc, fn)
		}

		b.pop()

		return

	case nodeUpdate:
		if arg := n.ChildByFieldName("argument"); arg != nil {
			b.push(n)
			b.assignTarget(arg, sc, fn)
			b.pop()

			return
		}

	case nodeCall:
		b.requireCandidate(n, sc)
	}

	b.visitChildren(n, sc, fn)
}

func (b *indexBuilder) importStatement(n *sitter.Node, sc *scope) {
	imp := pendingImport{node: n, def: m.NoBinding, namespace: m.NoBinding}
	if parent := b.parent(0); parent != nil {
		imp.inList = isStatementList(parent.Type())
	}

	if source := n.ChildByFieldName("source"); source != nil {
		imp.module = stringValue(source, b.src)
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		clause := n.NamedChild(i)
		if clause.Type() != nodeImportClause {
			continue
		}

		imp.hasClause = true

		for j := 0; j < int(clause.NamedChildCount()); j++ {
			part := clause.NamedChild(j)

			switch part.Type() {
			case nodeIdentifier:
				imp.def = b.declare(part, sc, m.BindingImportDefault, nil)
			case nodeNamespaceImport:
				for k := 0; k < int(part.NamedChildCount()); k++ {
					if id := part.NamedChild(k); id.Type() == nodeIdentifier {
						imp.namespace = b.declare(id, sc, m.BindingImportNamespace, nil)
					}
				}
			case nodeNamedImports:
				imp.named = append(imp.named, b.namedImports(part, sc)...)
			}
		}
	}

	b.imports = append(b.imports, imp)
}

func (b *indexBuilder) namedImports(n *sitter.Node, sc *scope) []m.NamedImport {
	var named []m.NamedImport

	for i := 0; i < int(n.NamedChildCount()); i++ {
		spec := n.NamedChild(i)
		if spec.Type() != nodeImportSpecifier {
			continue
		}

		name := spec.ChildByFieldName("name")
		if name == nil {
			continue
		}

		local := name
		if alias := spec.ChildByFieldName("alias"); alias != nil {
			local = alias
		}

		if local.Type() != nodeIdentifier {
			continue
		}

		named = append(named, m.NamedImport{
			Imported: stringValue(name, b.src),
			Binding:  b.declare(local, sc, m.BindingImportNamed, nil),
		})
	}

	return named
}

func (b *indexBuilder) declaration(n *sitter.Node, target, sc, fn *scope) {
	site := declarationSite{statement: spanOf(n)}

	parent := b.parent(0)
	if parent != nil && parent.Type() == nodeExportStatement {
		site.exported = true
		site.statement = spanOf(parent)
		parent = b.parent(1)
	}

	site.inList = parent != nil && isStatementList(parent.Type())

	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() == nodeVariableDeclarator {
			site.declarators = append(site.declarators, c)
		}
	}

	b.push(n)
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() == nodeVariableDeclarator {
			b.declarator(c, site, target, sc, fn)
			continue
		}

		b.visit(c, sc, fn)
	}
	b.pop()
}

func (b *indexBuilder) declarator(c *sitter.Node, site declarationSite, target, sc, fn *scope) {
	b.push(c)

	name := c.ChildByFieldName("name")
	value := c.ChildByFieldName("value")

	if name != nil {
		if name.Type() == nodeIdentifier {
			b.declare(name, target, m.BindingVariable, site.declaratorFor(c, value))
		} else {
			b.pattern(name, sc, fn, func(id *sitter.Node) { b.declare(id, target, m.BindingVariable, nil) })
		}
	}

	if value != nil {
		b.visit(value, sc, fn)
	}

	b.pop()
}

func (s declarationSite) declaratorFor(c, value *sitter.Node) *m.Declarator {
	d := &m.Declarator{
		Span:      spanOf(c),
		Enclosing: s.statement,
		Exported:  s.exported,
		InList:    s.inList,
	}

	if value != nil {
		d.Value = spanOf(value)
	}

	if len(s.declarators) == 1 {
		d.Removal = s.statement
		d.RemovesStatement = true

		return d
	}

	idx := 0
	for i, other := range s.declarators {
		if sameNode(other, c) {
			idx = i
		}

		d.Siblings = append(d.Siblings, spanOf(other))
	}

	if idx < len(s.declarators)-1 {
		d.Removal = m.Span{Start: c.StartByte(), End: s.declarators[idx+1].StartByte()}
	} else {
		d.Removal = m.Span{Start: s.declarators[idx-1].EndByte(), End: c.EndByte()}
	}

	return d
}

// function declares parameters (and a function expression's own name) into a
// fresh function scope, then walks the body inside it.
func (b *indexBuilder) function(n *sitter.Node, sc, fn *scope, declared bool) {
	fs := newScope(sc)
	name := n.ChildByFieldName("name")
	params := n.ChildByFieldName("parameters")
	param := n.ChildByFieldName("parameter")
	body := n.ChildByFieldName("body")

	b.push(n)

	if name != nil && name.Type() == nodeIdentifier && !declared {
		b.declare(name, fs, m.BindingFunction, nil)
	}

	declareParam := func(id *sitter.Node) { b.declare(id, fs, m.BindingParameter, nil) }

	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)

		switch {
		case sameNode(c, body):
			continue
		case sameNode(c, name):
			if c.Type() == nodeComputedPropertyName {
				b.visit(c, sc, fn)
			}
		case sameNode(c, params):
			b.push(c)
			for j := 0; j < int(c.NamedChildCount()); j++ {
				b.pattern(c.NamedChild(j), fs, fs, declareParam)
			}
			b.pop()
		case sameNode(c, param):
			b.pattern(c, fs, fs, declareParam)
		default:
			b.visit(c, sc, fn)
		}
	}

	if body != nil {
		b.visit(body, fs, fs)
	}

	b.pop()
}

func (b *indexBuilder) class(n *sitter.Node, sc, fn *scope) {
	inner := sc
	name := n.ChildByFieldName("name")

	if name != nil && name.Type() == nodeIdentifier {
		if n.Type() == nodeClassDeclaration {
			b.declare(name, sc, m.BindingClass, nil)
		} else {
			inner = newScope(sc)
			b.declare(name, inner, m.BindingClass, nil)
		}
	}

	b.push(n)
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); !sameNode(c, name) {
			b.visit(c, inner, fn)
		}
	}
	b.pop()
}

// forIn handles `for (x of y)` and `for (const x in y)`. A declaration keyword
// before the left side declares it; otherwise the left side is assigned.
func (b *indexBuilder) forIn(n *sitter.Node, sc, fn *scope) {
	inner := newScope(sc)
	left := n.ChildByFieldName("left")

	kind := ""
	for i := 0; i < int(n.ChildCount()); i++ {
		switch t := n.Child(i).Type(); t {
		case "var", "let", "const":
			kind = t
		}
	}

	b.push(n)
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if !sameNode(c, left) {
			b.visit(c, inner, fn)
			continue
		}

		switch kind {
		case "":
			b.assignTarget(c, inner, fn)
		case "var":
			b.pattern(c, inner, fn, func(id *sitter.Node) { b.declare(id, fn, m.BindingVariable, nil) })
		default:
			b.pattern(c, inner, fn, func(id *sitter.Node) { b.declare(id, inner, m.BindingVariable, nil) })
		}
	}
	b.pop()
}

// pattern walks a binding or assignment pattern, calling bind for every bound
// identifier and visiting default values and computed keys as expressions.
func (b *indexBuilder) pattern(n *sitter.Node, sc, fn *scope, bind func(*sitter.Node)) {
	switch n.Type() {
	case nodeIdentifier, nodeShorthandPropertyPattern:
		bind(n)
	case nodeObjectPattern, nodeArrayPattern, nodeRestPattern, nodeParenthesized:
		b.push(n)
		for i := 0; i < int(n.NamedChildCount()); i++ {
			b.pattern(n.NamedChild(i), sc, fn, bind)
		}
		b.pop()
	case nodePairPattern:
		b.push(n)

		if key := n.ChildByFieldName("key"); key != nil && key.Type() == nodeComputedPropertyName {
			b.visit(key, sc, fn)
		}

		if value := n.ChildByFieldName("value"); value != nil {
			b.pattern(value, sc, fn, bind)
		}

		b.pop()
	case nodeAssignmentPattern, nodeObjectAssignmentPattern:
		b.push(n)

		if left := n.ChildByFieldName("left"); left != nil {
			b.pattern(left, sc, fn, bind)
		}

		if right := n.ChildByFieldName("right"); right != nil {
			b.visit(right, sc, fn)
		}

		b.pop()
	default:
		b.visit(n, sc, fn)
	}
}

func (b *indexBuilder) assignTarget(n *sitter.Node, sc, fn *scope) {
	b.pattern(n, sc, fn, func(id *sitter.Node) { b.use(id, sc, true) })
}

// requireCandidate records `require("m")` calls; whether `require` is the
// global one is decided after resolution.
func (b *indexBuilder) requireCandidate(n *sitter.Node, sc *scope) {
	callee := n.ChildByFieldName("function")
	args := n.ChildByFieldName("arguments")

	if callee == nil || args == nil || callee.Type() != nodeIdentifier || callee.Content(b.src) != "require" {
		return
	}

	if args.NamedChildCount() != 1 || args.NamedChild(0).Type() != nodeString {
		return
	}

	b.requires = append(b.requires, pendingRequire{
		module: stringValue(args.NamedChild(0), b.src),
		scope:  sc,
		chain:  b.snapshot(n),
	})
}

func (b *indexBuilder) finish() *scopeIndex {
	ix := &scopeIndex{
		bindings:   b.bindings,
		refs:       map[m.BindingID][]m.Reference{},
		violations: map[m.BindingID][]m.Reference{},
	}

	r := &resolver{src: b.src, bindings: b.bindings, declAt: b.declAt, resolved: map[m.Span]m.BindingID{}}

	for _, u := range b.uses {
		if id, ok := u.scope.lookup(u.name); ok {
			r.resolved[spanOf(u.chain[len(u.chain)-1])] = id
		}
	}

	for _, u := range b.uses {
		node := u.chain[len(u.chain)-1]

		id, ok := r.resolved[spanOf(node)]
		if !ok {
			continue
		}

		ref := m.Reference{Binding: id, Span: spanOf(node), Line: lineOf(node), Column: columnOf(node)}
		if u.write {
			ref.Context = m.UsageContext{Kind: m.ContextOther, Declared: m.NoBinding, Target: m.NoBinding}
			ix.violations[id] = append(ix.violations[id], ref)

			continue
		}

		ref.Context = r.context(u.chain)
		ix.refs[id] = append(ix.refs[id], ref)
	}

	ix.sites = append(r.importSites(b.imports), r.requireSites(b.requires)...)
	sort.SliceStable(ix.sites, func(i, j int) bool {
		return ix.sites[i].Span.Start < ix.sites[j].Span.Start
	})

	return ix
}

package adapter

import (
	sitter "github.com/smacker/go-tree-sitter"
	m "nodebug.dev/pkg/nodebug/internal/model"
)

// resolver derives usage contexts from ancestor chains once every identifier
// has been resolved to its binding.
type resolver struct {
	src      []byte
	bindings []m.Binding
	declAt   map[m.Span]m.BindingID
	resolved map[m.Span]m.BindingID
}

// up skips parenthesized ancestors of chain[k]. It returns the index of the
// first real parent and the node standing for chain[k] under it.
func up(chain []*sitter.Node, k int) (int, *sitter.Node) {
	j := k - 1
	for j >= 0 && chain[j].Type() == nodeParenthesized {
		j--
	}

	if j < 0 {
		return -1, nil
	}

	return j, chain[j+1]
}

func (r *resolver) context(chain []*sitter.Node) m.UsageContext {
	ctx := m.UsageContext{Kind: m.ContextOther, Declared: m.NoBinding, Target: m.NoBinding}

	j, child := up(chain, len(chain)-1)
	if j < 0 {
		return ctx
	}

	parent := chain[j]

	switch parent.Type() {
	case nodeVariableDeclarator:
		if sameNode(parent.ChildByFieldName("value"), child) {
			ctx.Kind = m.ContextDeclarator
			ctx.Declared = r.declaredBy(parent)
		}
	case nodeAssignment:
		if sameNode(parent.ChildByFieldName("right"), child) {
			ctx.Kind = m.ContextAssignment
			ctx.Target = r.assignedBy(parent)
		}
	case nodeMember:
		if sameNode(parent.ChildByFieldName("object"), child) {
			ctx.Kind = m.ContextMember

			if prop := parent.ChildByFieldName("property"); prop != nil && prop.Type() == nodePropertyIdentifier {
				ctx.Member = prop.Content(r.src)
				ctx.Resolved = true
			}

			r.member(&ctx, chain, j)
		}
	case nodeSubscript:
		if sameNode(parent.ChildByFieldName("object"), child) {
			ctx.Kind = m.ContextMember

			if index := parent.ChildByFieldName("index"); index != nil && index.Type() == nodeString {
				ctx.Member = stringValue(index, r.src)
				ctx.Resolved = true
			}

			r.member(&ctx, chain, j)
		}
	case nodeCall:
		if sameNode(parent.ChildByFieldName("function"), child) {
			ctx.Kind = m.ContextCall
			ctx.Consumer = r.consumer(chain, j)
		}
	}

	return ctx
}

// member fills in whether the access at chain[j] is invoked and who consumes it.
func (r *resolver) member(ctx *m.UsageContext, chain []*sitter.Node, j int) {
	p, child := up(chain, j)
	if p >= 0 && chain[p].Type() == nodeCall && sameNode(chain[p].ChildByFieldName("function"), child) {
		ctx.Invoked = true
		ctx.Consumer = r.consumer(chain, p)

		return
	}

	ctx.Consumer = r.consumer(chain, j)
}

// consumer describes what the code around chain[k] does with its value.
func (r *resolver) consumer(chain []*sitter.Node, k int) m.Consumer {
	c := m.Consumer{Use: m.UseValue, Node: spanOf(chain[k]), Declared: m.NoBinding}

	j, child := up(chain, k)
	if j < 0 {
		return c
	}

	parent := chain[j]

	switch parent.Type() {
	case nodeExpressionStatement:
		c.Use = m.UseStatement
		c.Statement = spanOf(parent)
		c.InList = j > 0 && isStatementList(chain[j-1].Type())

		return c
	case nodeVariableDeclarator:
		if sameNode(parent.ChildByFieldName("value"), child) {
			c.Use = m.UseDeclarator
			c.Declared = r.declaredBy(parent)

			return c
		}
	case nodeCall:
		if sameNode(parent.ChildByFieldName("function"), child) {
			outer := r.consumer(chain, j)

			switch outer.Use {
			case m.UseMemberObject:
				c.Use = m.UseMemberObject
			case m.UseStatement, m.UseInvokedStatement:
				c.Use = m.UseInvokedStatement
				c.Statement = outer.Statement
				c.InList = outer.InList
			case m.UseInvokedValue:
				c.Use = m.UseInvokedValue
				c.Node = outer.Node
				c.Wrap = outer.Wrap
			default:
				c.Use = m.UseInvokedValue
				c.Node = spanOf(parent)
				c.Wrap = outer.Wrap
			}

			return c
		}
	case nodeAssignment, nodeAugmentedAssignment:
		if sameNode(parent.ChildByFieldName("left"), child) {
			c.Use = m.UseAssignTarget
			return c
		}
	case nodeMember, nodeSubscript:
		if sameNode(parent.ChildByFieldName("object"), child) {
			c.Use = m.UseMemberObject
			return c
		}
	}

	c.Wrap = needsWrap(parent, child)

	return c
}

// declaredBy returns the binding a declarator introduces, or NoBinding when
// its name is a pattern.
func (r *resolver) declaredBy(declarator *sitter.Node) m.BindingID {
	name := declarator.ChildByFieldName("name")
	if name == nil || name.Type() != nodeIdentifier {
		return m.NoBinding
	}

	if id, ok := r.declAt[spanOf(name)]; ok {
		return id
	}

	return m.NoBinding
}

func (r *resolver) assignedBy(assignment *sitter.Node) m.BindingID {
	left := assignment.ChildByFieldName("left")
	for left != nil && left.Type() == nodeParenthesized && left.NamedChildCount() == 1 {
		left = left.NamedChild(0)
	}

	if left == nil || left.Type() != nodeIdentifier {
		return m.NoBinding
	}

	if id, ok := r.resolved[spanOf(left)]; ok {
		return id
	}

	return m.NoBinding
}

func (r *resolver) declarator(id m.BindingID) *m.Declarator {
	if id < 0 || int(id) >= len(r.bindings) {
		return nil
	}

	return r.bindings[id].Declarator
}

func (r *resolver) importSites(imports []pendingImport) []m.ImportSite {
	sites := make([]m.ImportSite, 0, len(imports))

	for _, imp := range imports {
		site := m.ImportSite{
			Module:  imp.module,
			Span:    spanOf(imp.node),
			InList:  imp.inList,
			Line:    lineOf(imp.node),
			Primary: m.NoBinding,
		}

		switch {
		case !imp.hasClause:
			site.Form = m.SiteImportSideEffect
		case imp.def != m.NoBinding && imp.namespace != m.NoBinding:
			// `import D, * as N` is left alone.
			continue
		case imp.def != m.NoBinding:
			site.Form = m.SiteImportDefault
			site.Primary = imp.def
			site.Named = imp.named
		case imp.namespace != m.NoBinding:
			site.Form = m.SiteImportNamespace
			site.Primary = imp.namespace
		default:
			site.Form = m.SiteImportNamed
			site.Named = imp.named
		}

		sites = append(sites, site)
	}

	return sites
}

// requireSites keeps the require calls of the global `require` that appear
// as a bare statement or initialize a plain declarator, directly or through
// one immediate invocation.
func (r *resolver) requireSites(requires []pendingRequire) []m.ImportSite {
	var sites []m.ImportSite

	for _, req := range requires {
		if _, shadowed := req.scope.lookup("require"); shadowed {
			continue
		}

		k := len(req.chain) - 1
		call := req.chain[k]
		site := m.ImportSite{Module: req.module, Line: lineOf(call), Primary: m.NoBinding}

		c := r.consumer(req.chain, k)

		switch c.Use {
		case m.UseStatement, m.UseInvokedStatement:
			site.Form = m.SiteRequireBare
			site.Span = c.Statement
			site.InList = c.InList
		case m.UseDeclarator:
			decl := r.declarator(c.Declared)
			if decl == nil || !decl.Value.Contains(c.Node) {
				continue
			}

			site.Form = m.SiteRequire
			site.Primary = c.Declared
			site.Declarator = decl
			site.Span = decl.Enclosing
			site.InList = decl.InList
		case m.UseInvokedValue:
			j, _ := up(req.chain, k)
			if j < 0 || !sameNode(req.chain[j].ChildByFieldName("function"), req.chain[j+1]) {
				continue
			}

			outer := r.consumer(req.chain, j)
			decl := r.declarator(outer.Declared)

			if outer.Use != m.UseDeclarator || decl == nil || !decl.Value.Contains(outer.Node) {
				continue
			}

			site.Form = m.SiteRequireLogger
			site.Primary = outer.Declared
			site.Declarator = decl
			site.Span = decl.Enclosing
			site.InList = decl.InList
		default:
			continue
		}

		sites = append(sites, site)
	}

	return sites
}

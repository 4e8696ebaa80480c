package domain

import (
	"fmt"
	"log/slog"

	"nodebug.dev/pkg/nodebug/internal/adapter"
	m "nodebug.dev/pkg/nodebug/internal/model"
)

// Planner decides how one import site is retired and which directives carry
// the decision out.
type Planner interface {
	Plan(index adapter.ScopeIndex, site m.ImportSite) m.Retirement
}

type planner struct{}

// NewPlanner creates the default Planner.
func NewPlanner() Planner {
	return &planner{}
}

// Plan classifies every reference reachable from the site and returns a single
// FULL_REMOVAL or PARTIAL_KEEP decision with its directives.
func (p *planner) Plan(index adapter.ScopeIndex, site m.ImportSite) m.Retirement {
	ret := m.Retirement{Module: site.Module, Form: site.Form, Line: site.Line}

	switch site.Form {
	case m.SiteImportSideEffect, m.SiteRequireBare:
		ret.Plan = m.RewritePlan{Kind: m.FullRemoval}
		ret.Directives = []m.Directive{deleteStatement(site.Span, site.InList)}
	case m.SiteImportNamed:
		p.planNamed(index, site, &ret)
	case m.SiteRequireLogger:
		p.planLogger(index, site, &ret)
	default:
		p.planConstructor(index, site, &ret)
	}

	slog.Debug("planned import site",
		"module", site.Module,
		"form", site.Form,
		"binding", ret.Binding,
		"line", site.Line,
		"plan", ret.Plan.Kind,
		"directives", len(ret.Directives))

	return ret
}

func (p *planner) planNamed(index adapter.ScopeIndex, site m.ImportSite, ret *m.Retirement) {
	stubs, entries := namedStubs(index, site.Named)
	if len(stubs) == 0 {
		ret.Plan = m.RewritePlan{Kind: m.FullRemoval}
		ret.Directives = []m.Directive{deleteStatement(site.Span, site.InList)}

		return
	}

	ret.Plan = m.RewritePlan{Kind: m.PartialKeep, Mocks: entries, Reasons: namedReasons(entries)}
	ret.Directives = []m.Directive{{Op: m.OpDeclare, Span: site.Span, InList: site.InList, Stubs: stubs}}
}

func (p *planner) planConstructor(index adapter.ScopeIndex, site m.ImportSite, ret *m.Retirement) {
	target, ok := index.Binding(site.Primary)
	if !ok {
		ret.Plan = m.RewritePlan{Kind: m.PartialKeep, Reasons: []string{"unresolved binding"}}
		return
	}

	namespace := site.Form == m.SiteImportNamespace
	a := newAnalysis(index, target, namespace)

	if site.Declarator != nil && site.Declarator.Exported {
		a.forceKeep(fmt.Sprintf("%s is exported", target.Name))
	}

	a.run()

	ret.Binding = target.Name
	stubs, named := namedStubs(index, site.Named)

	ctor := m.NoopFactory()
	if namespace {
		ctor = m.Object()
	}

	if a.untouched {
		ret.Plan = m.RewritePlan{Kind: m.PartialKeep, Reasons: a.reasons}
		ret.Findings = a.allFindings()
		ret.Secondaries = a.tracer.results()

		return
	}

	var siteDirectives []m.Directive

	if !a.keep {
		ret.Plan = m.RewritePlan{Kind: m.FullRemoval, Reasons: namedReasons(named)}

		switch {
		case site.Declarator != nil:
			siteDirectives = append(siteDirectives, removeDeclarator(site.Declarator))
		case len(stubs) > 0:
			siteDirectives = append(siteDirectives, m.Directive{Op: m.OpDeclare, Span: site.Span, InList: site.InList, Stubs: stubs})
		default:
			siteDirectives = append(siteDirectives, deleteStatement(site.Span, site.InList))
		}
	} else {
		mocks := a.mocks.Entries()
		ret.Plan = m.RewritePlan{
			Kind:        m.PartialKeep,
			Constructor: &ctor,
			Mocks:       mocks,
			Reasons:     append(a.reasons, namedReasons(named)...),
		}

		switch {
		case site.Declarator == nil:
			stub := m.Stub{Name: target.Name, Value: &ctor, Members: mocks}
			siteDirectives = append(siteDirectives, m.Directive{
				Op:     m.OpDeclare,
				Span:   site.Span,
				InList: site.InList,
				Stubs:  append([]m.Stub{stub}, stubs...),
			})
		case len(mocks) > 0 && !site.InList:
			// Member stubs need a statement list to live in.
			ret.Plan.Reasons = append(ret.Plan.Reasons, "declaration not in a statement list")
			ret.Findings = a.allFindings()
			ret.Secondaries = a.tracer.results()

			return
		default:
			siteDirectives = append(siteDirectives, m.Directive{Op: m.OpReplace, Span: site.Declarator.Value, Value: ctor})
			if len(mocks) > 0 {
				siteDirectives = append(siteDirectives, m.Directive{
					Op:    m.OpAppend,
					Span:  site.Declarator.Enclosing,
					Stubs: []m.Stub{{Name: target.Name, Members: mocks}},
				})
			}
		}
	}

	ret.Findings = a.allFindings()
	ret.Directives = append(siteDirectives, a.directives...)
	ret.Directives = append(ret.Directives, a.tracer.directives(siteDirectives)...)
	ret.Secondaries = a.tracer.results()
}

// planLogger handles `const d = require("m")("ns")`, where the site binding
// is itself a logger.
func (p *planner) planLogger(index adapter.ScopeIndex, site m.ImportSite, ret *m.Retirement) {
	target, ok := index.Binding(site.Primary)
	if !ok || site.Declarator == nil {
		ret.Plan = m.RewritePlan{Kind: m.PartialKeep, Reasons: []string{"unresolved binding"}}
		return
	}

	a := newAnalysis(index, target, false)
	a.tracer.trace(target.ID, m.SecondaryLogger)
	a.tracer.run()

	ret.Binding = target.Name

	if a.untouched {
		ret.Plan = m.RewritePlan{Kind: m.PartialKeep, Reasons: a.reasons}
		ret.Findings = a.allFindings()
		ret.Secondaries = a.tracer.results()

		return
	}

	root := a.tracer.states[0]
	extra := a.tracer.directives(nil)

	if root.result.Outcome == m.SecondaryRemoved {
		ret.Plan = m.RewritePlan{Kind: m.FullRemoval, Reasons: a.reasons}
	} else {
		value := m.NoopDepth(root.depth)
		ret.Plan = m.RewritePlan{Kind: m.PartialKeep, Constructor: &value, Reasons: a.reasons}

		if root.result.Outcome != m.SecondaryRewritten {
			extra = append(extra, m.Directive{Op: m.OpReplace, Span: site.Declarator.Value, Value: value})
		}

		if len(ret.Plan.Reasons) == 0 {
			ret.Plan.Reasons = []string{fmt.Sprintf("logger %s escapes", target.Name)}
		}
	}

	ret.Findings = a.allFindings()
	ret.Directives = extra
	ret.Secondaries = a.tracer.results()
}

// allFindings returns the target's findings followed by those of every
// secondary in trace order.
func (a *analysis) allFindings() []m.Finding {
	out := append([]m.Finding(nil), a.findings...)
	for _, s := range a.tracer.states {
		out = append(out, s.findings...)
	}

	return out
}

func (t *tracer) results() []m.SecondaryResult {
	out := make([]m.SecondaryResult, 0, len(t.states))
	for _, s := range t.states {
		out = append(out, s.result)
	}

	if len(out) == 0 {
		return nil
	}

	return out
}

// directives collects the secondaries' directives. A declarator removal that
// partially overlaps an earlier removal in the same declaration is joined with
// it, or demoted to an initializer rewrite when they cannot be joined, so the
// declaration stays well formed.
func (t *tracer) directives(existing []m.Directive) []m.Directive {
	removals := make([]m.Span, 0, len(existing))
	for _, d := range existing {
		if d.Op == m.OpDelete {
			removals = append(removals, d.Span)
		}
	}

	var out []m.Directive

	for _, s := range t.states {
		if s.result.Outcome == m.SecondaryRemoved && s.binding.Declarator != nil {
			removal := s.binding.Declarator.Removal
			if joined, ok := joinRemoval(s.binding.Declarator, removals); ok {
				s.directives[len(s.directives)-1] = joined
				removals = append(removals, joined.Span)
			} else if overlapsAny(removal, removals) {
				s.result.Outcome = m.SecondaryRewritten
				s.result.Reason = "shares a declaration"
				s.directives[len(s.directives)-1] = m.Directive{
					Op:    m.OpReplace,
					Span:  s.binding.Declarator.Value,
					Value: m.NoopDepth(s.depth),
				}
			} else {
				removals = append(removals, removal)
			}
		}

		out = append(out, s.directives...)
	}

	return out
}

// joinRemoval widens the removal of the last declarator of a declaration when
// it collides with the removal of the declarator before it. The result drops
// both, or the whole statement once no declarator is left.
func joinRemoval(decl *m.Declarator, removals []m.Span) (m.Directive, bool) {
	n := len(decl.Siblings)
	if n < 2 || decl.Exported || decl.Span != decl.Siblings[n-1] || !overlapsAny(decl.Removal, removals) {
		return m.Directive{}, false
	}

	first := n - 1
	for first > 0 && removedBy(decl.Siblings[first-1], removals) {
		first--
	}

	if first == n-1 {
		return m.Directive{}, false
	}

	if first == 0 {
		return m.Directive{Op: m.OpDelete, Span: decl.Enclosing, Statement: true, InList: decl.InList}, true
	}

	return m.Directive{Op: m.OpDelete, Span: m.Span{Start: decl.Siblings[first-1].End, End: decl.Span.End}}, true
}

func removedBy(span m.Span, removals []m.Span) bool {
	for _, r := range removals {
		if r.Contains(span) {
			return true
		}
	}

	return false
}

func overlapsAny(span m.Span, others []m.Span) bool {
	for _, o := range others {
		if span.Start < o.End && o.Start < span.End && !span.Contains(o) && !o.Contains(span) {
			return true
		}
	}

	return false
}

func namedStubs(index adapter.ScopeIndex, named []m.NamedImport) ([]m.Stub, []m.MockEntry) {
	var (
		stubs   []m.Stub
		entries []m.MockEntry
	)

	for _, n := range named {
		b, ok := index.Binding(n.Binding)
		if !ok {
			continue
		}

		if len(index.References(n.Binding)) == 0 && len(index.ConstantViolations(n.Binding)) == 0 {
			continue
		}

		v := memberMock(n.Imported)
		_, known := namespaceMembers[n.Imported]

		stubs = append(stubs, m.Stub{Name: b.Name, Value: &v})
		entries = append(entries, m.MockEntry{Name: b.Name, Value: v, Known: known})
	}

	return stubs, entries
}

func namedReasons(entries []m.MockEntry) []string {
	var reasons []string
	for _, e := range entries {
		reasons = append(reasons, fmt.Sprintf("named import %s is used", e.Name))
	}

	return reasons
}

func deleteStatement(span m.Span, inList bool) m.Directive {
	return m.Directive{Op: m.OpDelete, Span: span, Statement: true, InList: inList}
}

package domain

import (
	"fmt"

	m "nodebug.dev/pkg/nodebug/internal/model"
)

type secondary struct {
	id      m.BindingID
	kind    m.SecondaryKind
	lineage int
}

// secondaryState is the pending outcome of one traced binding. Its directives
// are only emitted when the lineage is not frozen.
type secondaryState struct {
	binding    m.Binding
	result     m.SecondaryResult
	lineage    int
	depth      int
	directives []m.Directive
	findings   []m.Finding
}

// lineage groups the secondaries that descend from one reference of the
// target. An alias cycle anywhere in it freezes all of them.
type lineage struct {
	members map[m.BindingID]bool
	frozen  bool
}

// tracer follows bindings derived from the target with an explicit work-list.
type tracer struct {
	a        *analysis
	queue    []secondary
	visited  map[m.BindingID]bool
	lineages []*lineage
	states   []*secondaryState
}

func newTracer(a *analysis) *tracer {
	return &tracer{a: a, visited: map[m.BindingID]bool{}}
}

// trace starts a lineage rooted at id.
func (t *tracer) trace(id m.BindingID, kind m.SecondaryKind) {
	t.lineages = append(t.lineages, &lineage{members: map[m.BindingID]bool{t.a.target.ID: true}})
	t.enqueue(id, kind, len(t.lineages)-1)
}

func (t *tracer) enqueue(id m.BindingID, kind m.SecondaryKind, lin int) bool {
	if t.visited[id] {
		return false
	}

	t.visited[id] = true
	t.lineages[lin].members[id] = true
	t.queue = append(t.queue, secondary{id: id, kind: kind, lineage: lin})

	return true
}

// cycle reports whether target was already visited in the lineage and freezes
// it if so.
func (t *tracer) cycle(lin int, target m.BindingID) bool {
	if target == m.NoBinding || !t.lineages[lin].members[target] {
		return false
	}

	t.lineages[lin].frozen = true

	return true
}

func (t *tracer) run() {
	for len(t.queue) > 0 {
		next := t.queue[0]
		t.queue = t.queue[1:]

		b, ok := t.a.index.Binding(next.id)
		if !ok {
			continue
		}

		state := &secondaryState{
			binding: b,
			result:  m.SecondaryResult{Name: b.Name, Kind: next.kind, Line: b.Line},
			lineage: next.lineage,
			depth:   1,
		}
		t.states = append(t.states, state)

		if next.kind == m.SecondaryConstructorAlias {
			t.constructorAlias(state)
		} else {
			t.logger(state)
		}
	}

	for _, state := range t.states {
		if !t.lineages[state.lineage].frozen {
			continue
		}

		state.result.Outcome = m.SecondaryFrozen
		state.result.Reason = "alias cycle"
		state.directives = nil

		for i := range state.findings {
			if state.findings[i].Action != m.ActionTraced {
				state.findings[i].Action = m.ActionKept
				state.findings[i].Reason = "alias cycle"
			}
		}

		t.a.forceKeep(fmt.Sprintf("alias cycle involving %s", state.binding.Name))
	}
}

// constructorAlias handles `let y = B`. The alias stays in place and refers to
// the stubbed constructor.
func (t *tracer) constructorAlias(s *secondaryState) {
	a := t.a
	name := s.binding.Name
	reassigned := len(a.index.ConstantViolations(s.binding.ID)) > 0

	s.result.Outcome = m.SecondaryKept
	s.result.Reason = "alias of the no-op constructor"

	for _, ref := range a.index.References(s.binding.ID) {
		ctx := ref.Context

		switch ctx.Kind {
		case m.ContextMember:
			switch known, ok := a.members[ctx.Member]; {
			case !ctx.Resolved:
				s.findings = append(s.findings, finding(name, ref, m.MemberDynamic, m.ActionKept))
			case ok:
				a.mocks.Register(ctx.Member, known.mock, true)
				s.findings = append(s.findings, finding(name, ref, m.MemberKnown, m.ActionMocked))
			default:
				a.mocks.Register(ctx.Member, m.Noop(), false)
				s.findings = append(s.findings, finding(name, ref, m.MemberUnknownName, m.ActionMocked))
			}
		case m.ContextCall:
			t.aliasCall(s, ref, reassigned)
		case m.ContextDeclarator:
			if t.cycle(s.lineage, ctx.Declared) || ctx.Declared == m.NoBinding {
				s.findings = append(s.findings, finding(name, ref, m.AliasEscape, m.ActionKept))
				continue
			}

			t.enqueue(ctx.Declared, m.SecondaryConstructorAlias, s.lineage)
			s.findings = append(s.findings, finding(name, ref, m.AliasEscape, m.ActionTraced))
		case m.ContextAssignment:
			t.cycle(s.lineage, ctx.Target)
			s.findings = append(s.findings, finding(name, ref, m.AliasEscape, m.ActionKept))
		default:
			s.findings = append(s.findings, finding(name, ref, m.MemberDynamic, m.ActionKept))
		}
	}
}

func (t *tracer) aliasCall(s *secondaryState, ref m.Reference, reassigned bool) {
	name := s.binding.Name
	c := ref.Context.Consumer

	if reassigned {
		s.findings = append(s.findings, withReason(finding(name, ref, m.MemberDynamic, m.ActionKept), "callee reassigned"))
		return
	}

	switch c.Use {
	case m.UseStatement, m.UseInvokedStatement:
		d, action, _ := eliminate(c, m.NoopFactory(), 1)
		s.directives = append(s.directives, d)
		s.findings = append(s.findings, finding(name, ref, m.DirectCallStatement, action))
	case m.UseDeclarator:
		if c.Declared == m.NoBinding {
			s.findings = append(s.findings, finding(name, ref, m.DirectCallBound, m.ActionKept))
			return
		}

		if t.a.redeclared(c) {
			t.a.forceKeep(fmt.Sprintf("logger at line %d redeclares a name", ref.Line))
			s.findings = append(s.findings, withReason(finding(name, ref, m.DirectCallBound, m.ActionKept), "redeclared"))

			return
		}

		t.enqueue(c.Declared, m.SecondaryLogger, s.lineage)
		s.findings = append(s.findings, finding(name, ref, m.DirectCallBound, m.ActionTraced))
	case m.UseMemberObject:
		t.a.abandon(fmt.Sprintf("logger from %s at line %d is used as an object", name, ref.Line))
		s.findings = append(s.findings, finding(name, ref, m.DirectCallValue, m.ActionKept))
	default:
		s.findings = append(s.findings, finding(name, ref, m.DirectCallValue, m.ActionKept))
	}
}

// logger handles the result of calling the constructor and aliases of it.
func (t *tracer) logger(s *secondaryState) {
	a := t.a
	name := s.binding.Name

	decl := s.binding.Declarator

	if violations := a.index.ConstantViolations(s.binding.ID); len(violations) > 0 {
		s.result.Outcome = m.SecondaryKept
		s.result.Reason = fmt.Sprintf("reassigned at line %d", violations[0].Line)

		if decl == nil || s.result.Kind == m.SecondaryLoggerAlias {
			return
		}

		for _, ref := range a.index.References(s.binding.ID) {
			if u := ref.Context.Consumer.Use; ref.Context.Kind == m.ContextCall && (u == m.UseInvokedStatement || u == m.UseInvokedValue) {
				s.depth = 2
			}
		}

		// References stay as they are; only the initial value is neutralized.
		s.result.Outcome = m.SecondaryRewritten
		s.directives = append(s.directives, m.Directive{Op: m.OpReplace, Span: decl.Value, Value: m.NoopDepth(s.depth)})

		return
	}

	escapes := 0

	if decl == nil || decl.Exported {
		escapes++
	}

	for _, ref := range a.index.References(s.binding.ID) {
		if !t.loggerRef(s, ref) {
			escapes++
		}
	}

	switch {
	case decl == nil:
		s.result.Outcome = m.SecondaryKept
		s.result.Reason = "no plain declarator"
		a.forceKeep(fmt.Sprintf("logger %s cannot be rewritten", name))
	case escapes == 0:
		s.result.Outcome = m.SecondaryRemoved
		s.directives = append(s.directives, removeDeclarator(decl))
	case s.result.Kind == m.SecondaryLoggerAlias:
		s.result.Outcome = m.SecondaryKept
		s.result.Reason = "alias of a no-op logger"
	default:
		s.result.Outcome = m.SecondaryRewritten
		s.result.Reason = "escapes"
		s.directives = append(s.directives, m.Directive{Op: m.OpReplace, Span: decl.Value, Value: m.NoopDepth(s.depth)})
	}
}

// loggerRef classifies one reference of a logger. It reports false when the
// reference lets the logger escape.
func (t *tracer) loggerRef(s *secondaryState, ref m.Reference) bool {
	name := s.binding.Name
	ctx := ref.Context
	c := ctx.Consumer

	switch ctx.Kind {
	case m.ContextCall:
		if c.Use == m.UseInvokedStatement || c.Use == m.UseInvokedValue {
			s.depth = max(s.depth, 2)
		}

		d, action, ok := eliminate(c, m.Noop(), 1)
		if !ok {
			s.findings = append(s.findings, finding(name, ref, m.DirectCallValue, m.ActionKept))
			return false
		}

		class := m.DirectCallValue
		if action == m.ActionRemoved {
			class = m.DirectCallStatement
		}

		s.directives = append(s.directives, d)
		s.findings = append(s.findings, finding(name, ref, class, action))

		return true
	case m.ContextMember:
		return t.loggerMember(s, ref)
	case m.ContextDeclarator:
		if ctx.Declared == m.NoBinding || t.cycle(s.lineage, ctx.Declared) {
			s.findings = append(s.findings, finding(name, ref, m.AliasEscape, m.ActionKept))
			return false
		}

		t.enqueue(ctx.Declared, m.SecondaryLoggerAlias, s.lineage)
		s.findings = append(s.findings, finding(name, ref, m.AliasEscape, m.ActionTraced))

		return false
	case m.ContextAssignment:
		t.cycle(s.lineage, ctx.Target)
		s.findings = append(s.findings, finding(name, ref, m.AliasEscape, m.ActionKept))

		return false
	default:
		s.findings = append(s.findings, finding(name, ref, m.MemberDynamic, m.ActionKept))
		return false
	}
}

func (t *tracer) loggerMember(s *secondaryState, ref m.Reference) bool {
	name := s.binding.Name
	ctx := ref.Context
	c := ctx.Consumer

	switch {
	case ctx.Resolved && ctx.Member == "enabled" && !ctx.Invoked && c.Use != m.UseAssignTarget:
		d, action, ok := eliminate(c, m.False(), 0)
		if ok {
			s.directives = append(s.directives, d)
			s.findings = append(s.findings, finding(name, ref, m.MemberKnown, action))

			return true
		}
	case ctx.Resolved && ctx.Member == "extend" && ctx.Invoked:
		if c.Use == m.UseDeclarator {
			if c.Declared == m.NoBinding || t.a.redeclared(c) {
				break
			}

			t.enqueue(c.Declared, m.SecondaryLogger, s.lineage)
			s.findings = append(s.findings, finding(name, ref, m.DirectCallBound, m.ActionTraced))

			return true
		}

		d, action, ok := eliminate(c, m.NoopFactory(), 1)
		if ok {
			s.directives = append(s.directives, d)
			s.findings = append(s.findings, finding(name, ref, m.MemberKnown, action))

			return true
		}
	}

	// A no-op logger has neither member, so rewriting it would break this use.
	if ctx.Resolved && (ctx.Member == "extend" || ctx.Member == "enabled" && c.Use == m.UseMemberObject) {
		t.a.abandon(fmt.Sprintf("%s.%s at line %d needs a real logger", name, ctx.Member, ref.Line))
		s.findings = append(s.findings, finding(name, ref, m.MemberKnown, m.ActionKept))

		return false
	}

	class := m.MemberUnknownName
	if !ctx.Resolved {
		class = m.MemberDynamic
	}

	s.findings = append(s.findings, finding(name, ref, class, m.ActionKept))

	return false
}

// removeDeclarator deletes a declarator, or its whole statement when it is
// the only one.
func removeDeclarator(decl *m.Declarator) m.Directive {
	return m.Directive{
		Op:        m.OpDelete,
		Span:      decl.Removal,
		Statement: decl.RemovesStatement,
		InList:    decl.InList,
	}
}

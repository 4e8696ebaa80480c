package domain

import (
	"fmt"

	"nodebug.dev/pkg/nodebug/internal/adapter"
	m "nodebug.dev/pkg/nodebug/internal/model"
)

// knownMember is a constructor member with a side-effect-free stand-in.
type knownMember struct {
	mock m.Value
	// eliminable members may be dropped from the source instead of stubbed.
	eliminable bool
}

var constructorMembers = map[string]knownMember{
	"enable":  {mock: m.Noop(), eliminable: true},
	"enabled": {mock: m.Callable(m.False()), eliminable: true},
	"disable": {mock: m.Callable(m.EmptyString()), eliminable: true},
}

var namespaceMembers = map[string]knownMember{
	"default": {mock: m.NoopFactory()},
	"enable":  constructorMembers["enable"],
	"enabled": constructorMembers["enabled"],
	"disable": constructorMembers["disable"],
}

// memberMock returns the stand-in for a named import of the given member.
func memberMock(imported string) m.Value {
	if known, ok := namespaceMembers[imported]; ok {
		return known.mock
	}

	return m.Noop()
}

// analysis accumulates the decision for one retired binding.
type analysis struct {
	index      adapter.ScopeIndex
	target     m.Binding
	members    map[string]knownMember
	namespace  bool
	reassigned bool

	mocks      *m.MockTable
	findings   []m.Finding
	directives []m.Directive
	reasons    []string
	keep       bool
	// untouched is set when no stand-in can replace the binding, so the
	// site and every use of it stay as written.
	untouched  bool
	tracer     *tracer
}

func newAnalysis(index adapter.ScopeIndex, target m.Binding, namespace bool) *analysis {
	a := &analysis{
		index:     index,
		target:    target,
		members:   constructorMembers,
		namespace: namespace,
		mocks:     m.NewMockTable(),
	}

	if namespace {
		a.members = namespaceMembers
	}

	a.tracer = newTracer(a)

	return a
}

// forceKeep moves the binding to PARTIAL_KEEP. The transition is irreversible.
func (a *analysis) forceKeep(reason string) {
	a.keep = true

	for _, r := range a.reasons {
		if r == reason {
			return
		}
	}

	a.reasons = append(a.reasons, reason)
}

// abandon leaves the whole site in place. It implies PARTIAL_KEEP.
func (a *analysis) abandon(reason string) {
	a.untouched = true
	a.forceKeep(reason)
}

// redeclared reports whether the declarator consuming c declares its binding a
// second time. Only the first declarator of a name is rewritten.
func (a *analysis) redeclared(c m.Consumer) bool {
	b, ok := a.index.Binding(c.Declared)
	if !ok {
		return false
	}

	return b.Declarator == nil || !b.Declarator.Value.Contains(c.Node)
}

func finding(name string, ref m.Reference, class m.Classification, action m.Action) m.Finding {
	return m.Finding{
		Binding: name,
		Line:    ref.Line,
		Column:  ref.Column,
		Class:   class,
		Action:  action,
		Member:  ref.Context.Member,
	}
}

// run classifies every reference of the target and traces what it spawns.
func (a *analysis) run() {
	if violations := a.index.ConstantViolations(a.target.ID); len(violations) > 0 {
		a.reassigned = true
		a.forceKeep(fmt.Sprintf("%s is reassigned at line %d", a.target.Name, violations[0].Line))
	}

	for _, ref := range a.index.References(a.target.ID) {
		a.classify(ref)
	}

	a.tracer.run()
}

func (a *analysis) classify(ref m.Reference) {
	ctx := ref.Context
	name := a.target.Name

	switch ctx.Kind {
	case m.ContextDeclarator:
		a.forceKeep(fmt.Sprintf("%s escapes at line %d", name, ref.Line))

		if ctx.Declared == m.NoBinding {
			a.findings = append(a.findings, withReason(finding(name, ref, m.AliasEscape, m.ActionKept), "destructured"))
			return
		}

		a.tracer.trace(ctx.Declared, m.SecondaryConstructorAlias)
		a.findings = append(a.findings, finding(name, ref, m.AliasEscape, m.ActionTraced))
	case m.ContextAssignment:
		a.forceKeep(fmt.Sprintf("%s escapes at line %d", name, ref.Line))
		a.findings = append(a.findings, finding(name, ref, m.AliasEscape, m.ActionKept))
	case m.ContextMember:
		a.member(ref)
	case m.ContextCall:
		a.call(ref)
	default:
		a.forceKeep(fmt.Sprintf("%s is used as a value at line %d", name, ref.Line))
		a.findings = append(a.findings, finding(name, ref, m.MemberDynamic, m.ActionKept))
	}
}

func (a *analysis) member(ref m.Reference) {
	ctx := ref.Context
	name := a.target.Name

	if !ctx.Resolved {
		a.forceKeep(fmt.Sprintf("dynamic member access on %s at line %d", name, ref.Line))
		a.findings = append(a.findings, finding(name, ref, m.MemberDynamic, m.ActionKept))

		return
	}

	known, ok := a.members[ctx.Member]
	if !ok {
		a.mocks.Register(ctx.Member, m.Noop(), false)
		a.forceKeep(fmt.Sprintf("unknown member %s.%s", name, ctx.Member))
		a.findings = append(a.findings, finding(name, ref, m.MemberUnknownName, m.ActionMocked))

		return
	}

	if known.eliminable && !a.reassigned && ctx.Consumer.Use != m.UseAssignTarget {
		calls := 0
		if ctx.Invoked {
			calls = 1
		}

		if d, action, ok := eliminate(ctx.Consumer, known.mock, calls); ok {
			a.directives = append(a.directives, d)
			a.findings = append(a.findings, finding(name, ref, m.MemberKnown, action))

			return
		}
	}

	a.mocks.Register(ctx.Member, known.mock, true)
	a.forceKeep(fmt.Sprintf("member %s.%s is kept", name, ctx.Member))
	a.findings = append(a.findings, finding(name, ref, m.MemberKnown, m.ActionMocked))
}

func (a *analysis) call(ref m.Reference) {
	name := a.target.Name
	c := ref.Context.Consumer

	if a.namespace || a.reassigned {
		reason := "callee reassigned"
		if a.namespace {
			reason = "namespace called"
		}

		a.forceKeep(fmt.Sprintf("call of %s at line %d is kept", name, ref.Line))
		a.findings = append(a.findings, withReason(finding(name, ref, m.MemberDynamic, m.ActionKept), reason))

		return
	}

	switch c.Use {
	case m.UseDeclarator:
		if c.Declared == m.NoBinding {
			a.forceKeep(fmt.Sprintf("logger at line %d is destructured", ref.Line))
			a.findings = append(a.findings, withReason(finding(name, ref, m.DirectCallBound, m.ActionKept), "destructured"))

			return
		}

		if a.redeclared(c) {
			a.forceKeep(fmt.Sprintf("logger at line %d redeclares a name", ref.Line))
			a.findings = append(a.findings, withReason(finding(name, ref, m.DirectCallBound, m.ActionKept), "redeclared"))

			return
		}

		a.tracer.trace(c.Declared, m.SecondaryLogger)
		a.findings = append(a.findings, finding(name, ref, m.DirectCallBound, m.ActionTraced))
	case m.UseStatement, m.UseInvokedStatement:
		d, action, _ := eliminate(c, m.NoopFactory(), 1)
		a.directives = append(a.directives, d)
		a.findings = append(a.findings, finding(name, ref, m.DirectCallStatement, action))
	case m.UseValue, m.UseInvokedValue:
		d, action, ok := eliminate(c, m.NoopFactory(), 1)
		if !ok {
			a.forceKeep(fmt.Sprintf("call of %s at line %d is kept", name, ref.Line))
			a.findings = append(a.findings, finding(name, ref, m.DirectCallValue, m.ActionKept))

			return
		}

		a.directives = append(a.directives, d)
		a.findings = append(a.findings, finding(name, ref, m.DirectCallValue, action))
	case m.UseMemberObject:
		a.abandon(fmt.Sprintf("logger from %s at line %d is used as an object", name, ref.Line))
		a.findings = append(a.findings, finding(name, ref, m.DirectCallValue, m.ActionKept))
	default:
		a.forceKeep(fmt.Sprintf("call of %s at line %d is kept", name, ref.Line))
		a.findings = append(a.findings, finding(name, ref, m.MemberDynamic, m.ActionKept))
	}
}

// eliminate returns the directive that drops or neutralizes the consumer of
// the value obtained by invoking v calls times. It fails when the consumer
// needs a value v cannot produce.
func eliminate(c m.Consumer, v m.Value, calls int) (m.Directive, m.Action, bool) {
	switch c.Use {
	case m.UseStatement, m.UseInvokedStatement:
		return m.Directive{Op: m.OpDelete, Span: c.Statement, Statement: true, InList: c.InList}, m.ActionRemoved, true
	case m.UseInvokedValue:
		calls++
	case m.UseValue, m.UseDeclarator:
	default:
		return m.Directive{}, m.ActionKept, false
	}

	for ; calls > 0; calls-- {
		if !v.IsCallable() || v.Returns == nil {
			return m.Directive{}, m.ActionKept, false
		}

		v = *v.Returns
	}

	return m.Directive{Op: m.OpReplace, Span: c.Node, Wrap: c.Wrap, Value: v}, m.ActionReplaced, true
}

func withReason(f m.Finding, reason string) m.Finding {
	f.Reason = reason
	return f
}

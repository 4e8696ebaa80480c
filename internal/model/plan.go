package model

// Classification is the category assigned to one reference of a retired binding.
type Classification string

const (
	// AliasEscape is a reference copied into another binding.
	AliasEscape Classification = "ALIAS_ESCAPE"
	// MemberKnown is a property access with a recognized name.
	MemberKnown Classification = "MEMBER_KNOWN"
	// MemberUnknownName is a property access with an unrecognized static name.
	MemberUnknownName Classification = "MEMBER_UNKNOWN_NAME"
	// MemberDynamic is a computed property access or an unrecognized shape.
	MemberDynamic Classification = "MEMBER_DYNAMIC"
	// DirectCallBound is a call whose result initializes a declarator.
	DirectCallBound Classification = "DIRECT_CALL_BOUND"
	// DirectCallStatement is a call whose result is discarded.
	DirectCallStatement Classification = "DIRECT_CALL_STATEMENT"
	// DirectCallValue is a call whose result is consumed by an expression.
	DirectCallValue Classification = "DIRECT_CALL_VALUE"
)

// Action is what the rewrite did with a reference.
type Action string

const (
	// ActionRemoved means the enclosing statement or declarator was deleted.
	ActionRemoved Action = "removed"
	// ActionReplaced means the expression was replaced by a no-op value.
	ActionReplaced Action = "replaced"
	// ActionMocked means the reference was kept and its member got a stub.
	ActionMocked Action = "mocked"
	// ActionKept means the reference was left untouched.
	ActionKept Action = "kept"
	// ActionTraced means the reference spawned a secondary binding to follow.
	ActionTraced Action = "traced"
)

// Finding records the decision made for one reference.
type Finding struct {
	Binding string         `yaml:"binding"`
	Line    int            `yaml:"line"`
	Column  int            `yaml:"column"`
	Class   Classification `yaml:"class"`
	Action  Action         `yaml:"action"`
	Member  string         `yaml:"member,omitempty"`
	Reason  string         `yaml:"reason,omitempty"`
}

// MockEntry is one stub member of a kept binding.
type MockEntry struct {
	Name  string `yaml:"name"`
	Value Value  `yaml:"value"`
	Known bool   `yaml:"known"`
}

// MockTable is an ordered set of stub members. Names keep their first
// insertion position.
type MockTable struct {
	entries []MockEntry
	index   map[string]int
}

// NewMockTable returns an empty table.
func NewMockTable() *MockTable {
	return &MockTable{index: map[string]int{}}
}

// Register adds name with value v if it is absent. A generic entry is
// upgraded in place when a known mock arrives for the same name. It reports
// whether the table changed.
func (t *MockTable) Register(name string, v Value, known bool) bool {
	if i, ok := t.index[name]; ok {
		if known && !t.entries[i].Known {
			t.entries[i] = MockEntry{Name: name, Value: v, Known: true}
			return true
		}

		return false
	}

	t.index[name] = len(t.entries)
	t.entries = append(t.entries, MockEntry{Name: name, Value: v, Known: known})

	return true
}

// Get returns the entry registered for name.
func (t *MockTable) Get(name string) (MockEntry, bool) {
	i, ok := t.index[name]
	if !ok {
		return MockEntry{}, false
	}

	return t.entries[i], true
}

// Len returns the number of entries.
func (t *MockTable) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the entries in insertion order.
func (t *MockTable) Entries() []MockEntry {
	out := make([]MockEntry, len(t.entries))
	copy(out, t.entries)

	return out
}

// PlanKind is the overall decision for a retired binding.
type PlanKind string

const (
	// FullRemoval deletes the import and every reference.
	FullRemoval PlanKind = "FULL_REMOVAL"
	// PartialKeep replaces the import with a local no-op declaration.
	PartialKeep PlanKind = "PARTIAL_KEEP"
)

// RewritePlan is the decision for one retired binding.
type RewritePlan struct {
	Kind        PlanKind    `yaml:"kind"`
	Constructor *Value      `yaml:"constructor,omitempty"`
	Mocks       []MockEntry `yaml:"mocks,omitempty"`
	Reasons     []string    `yaml:"reasons,omitempty"`
}

// DirectiveOp is a rewrite operation on a byte range.
type DirectiveOp string

const (
	// OpDelete removes Span. Statement spans also lose their line.
	OpDelete DirectiveOp = "delete"
	// OpReplace substitutes Span with Value.
	OpReplace DirectiveOp = "replace"
	// OpDeclare substitutes Span with the rendered Stubs.
	OpDeclare DirectiveOp = "declare"
	// OpAppend inserts the rendered Stubs after Span.
	OpAppend DirectiveOp = "append"
)

// Stub is a local declaration standing in for a retired binding.
type Stub struct {
	Name string
	// Value is the declared value. Nil emits only the member assignments.
	Value   *Value
	Members []MockEntry
}

// Directive is one instruction for the source emitter.
type Directive struct {
	Op        DirectiveOp
	Span      Span
	Statement bool
	InList    bool
	Wrap      bool
	Value     Value
	Stubs     []Stub
}

// SecondaryOutcome is what happened to a traced secondary binding.
type SecondaryOutcome string

const (
	// SecondaryRemoved means the declaration and all references were deleted.
	SecondaryRemoved SecondaryOutcome = "removed"
	// SecondaryRewritten means the initializer became a no-op.
	SecondaryRewritten SecondaryOutcome = "rewritten"
	// SecondaryKept means the secondary and its references were left alone.
	SecondaryKept SecondaryOutcome = "kept"
	// SecondaryFrozen means the secondary sits in a lineage with an alias cycle.
	SecondaryFrozen SecondaryOutcome = "frozen"
)

// SecondaryKind separates loggers from constructor aliases.
type SecondaryKind string

const (
	// SecondaryLogger holds the result of calling the constructor.
	SecondaryLogger SecondaryKind = "logger"
	// SecondaryLoggerAlias copies a logger.
	SecondaryLoggerAlias SecondaryKind = "logger-alias"
	// SecondaryConstructorAlias copies the constructor itself.
	SecondaryConstructorAlias SecondaryKind = "constructor-alias"
)

// SecondaryResult records the outcome for one traced binding.
type SecondaryResult struct {
	Name    string           `yaml:"name"`
	Kind    SecondaryKind    `yaml:"kind"`
	Line    int              `yaml:"line"`
	Outcome SecondaryOutcome `yaml:"outcome"`
	Reason  string           `yaml:"reason,omitempty"`
}

// Retirement is the result of processing one import site.
type Retirement struct {
	Module      string            `yaml:"module"`
	Form        SiteForm          `yaml:"form"`
	Binding     string            `yaml:"binding,omitempty"`
	Line        int               `yaml:"line"`
	Plan        RewritePlan       `yaml:"plan"`
	Findings    []Finding         `yaml:"findings,omitempty"`
	Secondaries []SecondaryResult `yaml:"secondaries,omitempty"`
	Directives  []Directive       `yaml:"-"`
}

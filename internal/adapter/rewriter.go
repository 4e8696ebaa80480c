package adapter

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	m "nodebug.dev/pkg/nodebug/internal/model"
)

// Rewriter applies rewrite directives to source text.
type Rewriter interface {
	Apply(src []byte, directives []m.Directive) ([]byte, error)
}

// LocalRewriter renders directives as byte-range edits on the original text.
type LocalRewriter struct{}

// NewLocalRewriter creates a new LocalRewriter.
func NewLocalRewriter() *LocalRewriter {
	return &LocalRewriter{}
}

type textEdit struct {
	start uint32
	end   uint32
	text  string
	// lines is set when the edit deletes whole lines.
	lines bool
}

// Apply renders every directive and splices the edits into src. An edit that
// lies inside an earlier, wider edit is dropped; partially overlapping edits
// are an error. Blank lines left adjacent by deleted lines are collapsed.
func (r *LocalRewriter) Apply(src []byte, directives []m.Directive) ([]byte, error) {
	if len(directives) == 0 {
		return src, nil
	}

	edits := make([]textEdit, 0, len(directives))

	for _, d := range directives {
		if d.Span.End < d.Span.Start || int(d.Span.End) > len(src) {
			return nil, fmt.Errorf("directive %s span %s out of range", d.Op, d.Span)
		}

		edit, err := render(src, d)
		if err != nil {
			return nil, err
		}

		edits = append(edits, edit)
	}

	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].start != edits[j].start {
			return edits[i].start < edits[j].start
		}

		return edits[i].end > edits[j].end
	})

	kept := edits[:0]

	var lastEnd uint32

	for i, e := range edits {
		if i > 0 && e.start < lastEnd {
			if e.end <= lastEnd {
				continue
			}

			return nil, fmt.Errorf("overlapping edits at [%d,%d) and ending %d", e.start, e.end, lastEnd)
		}

		kept = append(kept, e)
		if e.end > lastEnd {
			lastEnd = e.end
		}
	}

	var (
		out       bytes.Buffer
		pos       uint32
		junctions []int
	)

	out.Grow(len(src))

	for _, e := range kept {
		out.Write(src[pos:e.start])
		out.WriteString(e.text)

		if e.lines {
			junctions = append(junctions, out.Len())
		}

		pos = e.end
	}

	out.Write(src[pos:])

	return collapseBlankLines(out.Bytes(), junctions), nil
}

// collapseBlankLines drops the blank lines that follow a deletion point when
// it sits at the top of the file or right after another blank line.
// Junctions are ascending output offsets of deleted lines.
func collapseBlankLines(out []byte, junctions []int) []byte {
	for i := len(junctions) - 1; i >= 0; i-- {
		p := junctions[i]
		if p != 0 && !blankLineBefore(out, p) {
			continue
		}

		for n := blankLineAt(out, p); n > 0; n = blankLineAt(out, p) {
			out = append(out[:p], out[p+n:]...)
		}
	}

	return out
}

// blankLineAt returns the length of the blank line starting at p, or zero.
func blankLineAt(out []byte, p int) int {
	q := p
	for q < len(out) && (isBlank(out[q]) || out[q] == '\r') {
		q++
	}

	if q < len(out) && out[q] == '\n' {
		return q + 1 - p
	}

	return 0
}

// blankLineBefore reports whether the line ending right before p is blank.
func blankLineBefore(out []byte, p int) bool {
	if p == 0 || out[p-1] != '\n' {
		return false
	}

	q := p - 1
	for q > 0 && (isBlank(out[q-1]) || out[q-1] == '\r') {
		q--
	}

	return q == 0 || out[q-1] == '\n'
}

func render(src []byte, d m.Directive) (textEdit, error) {
	switch d.Op {
	case m.OpDelete:
		if !d.Statement {
			return textEdit{start: d.Span.Start, end: d.Span.End}, nil
		}

		if !d.InList {
			return textEdit{start: d.Span.Start, end: d.Span.End, text: ";"}, nil
		}

		start, end, whole := statementLine(src, d.Span)

		return textEdit{start: start, end: end, lines: whole}, nil
	case m.OpReplace:
		text := d.Value.Source()
		if d.Wrap && !d.Value.Primary() {
			text = "(" + text + ")"
		}

		return textEdit{start: d.Span.Start, end: d.Span.End, text: text}, nil
	case m.OpDeclare:
		indent := lineIndent(src, d.Span.Start)
		text := renderStubs(d.Stubs, indent)

		if !d.InList {
			text = "{ " + strings.ReplaceAll(text, "\n"+indent, " ") + " }"
		}

		return textEdit{start: d.Span.Start, end: d.Span.End, text: text}, nil
	case m.OpAppend:
		indent := lineIndent(src, d.Span.Start)
		text := renderStubs(d.Stubs, indent)

		if text == "" {
			return textEdit{start: d.Span.End, end: d.Span.End}, nil
		}

		return textEdit{start: d.Span.End, end: d.Span.End, text: "\n" + indent + text}, nil
	default:
		return textEdit{}, fmt.Errorf("unknown directive %q", d.Op)
	}
}

// statementLine widens a statement span to its whole line when nothing else
// shares the line, so deletions leave no blank line behind. Otherwise only
// trailing blanks are consumed. It reports whether the whole line is taken.
func statementLine(src []byte, span m.Span) (uint32, uint32, bool) {
	end := span.End
	for int(end) < len(src) && isBlank(src[end]) {
		end++
	}

	start := span.Start
	for start > 0 && isBlank(src[start-1]) {
		start--
	}

	atLineStart := start == 0 || src[start-1] == '\n'
	atLineEnd := int(end) == len(src) || src[end] == '\n' || src[end] == '\r'

	if !atLineStart || !atLineEnd {
		return span.Start, end, false
	}

	if int(end) < len(src) && src[end] == '\r' {
		end++
	}

	if int(end) < len(src) && src[end] == '\n' {
		end++
	}

	return start, end, true
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

func lineIndent(src []byte, pos uint32) string {
	start := pos
	for start > 0 && src[start-1] != '\n' {
		start--
	}

	end := start
	for end < pos && isBlank(src[end]) {
		end++
	}

	return string(src[start:end])
}

// renderStubs writes `var name = value;` followed by one member assignment
// per mock, each on its own line.
func renderStubs(stubs []m.Stub, indent string) string {
	var lines []string

	for _, stub := range stubs {
		if stub.Value != nil {
			lines = append(lines, fmt.Sprintf("var %s = %s;", stub.Name, stub.Value.Source()))
		}

		for _, mock := range stub.Members {
			lines = append(lines, fmt.Sprintf("%s%s = %s;", stub.Name, memberAccess(mock.Name), mock.Value.Source()))
		}
	}

	return strings.Join(lines, "\n"+indent)
}

func memberAccess(name string) string {
	if isIdentifierName(name) {
		return "." + name
	}

	return "[" + strconv.Quote(name) + "]"
}

func isIdentifierName(name string) bool {
	if name == "" {
		return false
	}

	for i, c := range name {
		switch {
		case c == '_' || c == '$':
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}

	return true
}

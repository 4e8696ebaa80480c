package adapter

import (
	"github.com/pmezard/go-difflib/difflib"
	m "nodebug.dev/pkg/nodebug/internal/model"
)

// Differ renders the change between two versions of a file.
type Differ interface {
	Diff(path m.Path, before, after []byte) (string, error)
}

// UnifiedDiffer produces unified diffs with three lines of context.
type UnifiedDiffer struct{}

// NewUnifiedDiffer creates a new UnifiedDiffer.
func NewUnifiedDiffer() *UnifiedDiffer {
	return &UnifiedDiffer{}
}

// Diff returns an empty string when before and after are identical.
func (d *UnifiedDiffer) Diff(path m.Path, before, after []byte) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: "a/" + string(path),
		ToFile:   "b/" + string(path),
		Context:  3,
	}

	return difflib.GetUnifiedDiffString(diff)
}

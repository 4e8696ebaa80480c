package domain

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
)

// DefaultLibrary is the module retired when no libraries are configured.
const DefaultLibrary = "debug"

// ErrInvalidPattern reports a library pattern that is not a valid regular expression.
var ErrInvalidPattern = errors.New("invalid library pattern")

// patternCache is shared by every matcher in the process. Entries are only
// ever inserted.
var patternCache sync.Map

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if cached, ok := patternCache.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidPattern, pattern, err)
	}

	actual, _ := patternCache.LoadOrStore(pattern, re)

	return actual.(*regexp.Regexp), nil
}

// Matcher decides whether a module name is a retirement target.
type Matcher struct {
	patterns []*regexp.Regexp
	sources  []string
}

// NewMatcher compiles libraries. With no libraries only DefaultLibrary matches,
// literally.
func NewMatcher(libraries ...string) (*Matcher, error) {
	mt := &Matcher{}

	for _, lib := range libraries {
		if lib == "" {
			continue
		}

		re, err := compilePattern(lib)
		if err != nil {
			return nil, err
		}

		mt.patterns = append(mt.patterns, re)
		mt.sources = append(mt.sources, lib)
	}

	return mt, nil
}

// Match reports whether module is targeted. Patterns are unanchored.
func (mt *Matcher) Match(module string) bool {
	if len(mt.patterns) == 0 {
		return module == DefaultLibrary
	}

	for _, re := range mt.patterns {
		if re.MatchString(module) {
			return true
		}
	}

	return false
}

// Patterns returns the configured patterns, or DefaultLibrary when none are.
func (mt *Matcher) Patterns() []string {
	if len(mt.sources) == 0 {
		return []string{DefaultLibrary}
	}

	return append([]string(nil), mt.sources...)
}

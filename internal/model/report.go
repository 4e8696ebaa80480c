package model

import "time"

// FileResult holds the retirement results for a single source file.
type FileResult struct {
	Path        Path         `yaml:"path"`
	Hash        string       `yaml:"hash"`
	Changed     bool         `yaml:"changed"`
	Retirements []Retirement `yaml:"retirements,omitempty"`
	Error       string       `yaml:"error,omitempty"`
	Original    []byte       `yaml:"-"`
	Output      []byte       `yaml:"-"`
}

// Failed reports whether the file could not be processed.
func (r FileResult) Failed() bool {
	return r.Error != ""
}

// RunReport is the persisted record of one strip or plan run.
type RunReport struct {
	ID        string       `yaml:"id"`
	CreatedAt time.Time    `yaml:"created_at"`
	Libraries []string     `yaml:"libraries"`
	Files     []FileResult `yaml:"files"`
}

// Summary aggregates a run report.
type Summary struct {
	Files       int
	Changed     int
	Failed      int
	Retirements int
	Removed     int
	Kept        int
}

// Summarize counts files and plan kinds across the report.
func (r RunReport) Summarize() Summary {
	s := Summary{Files: len(r.Files)}
	for _, f := range r.Files {
		if f.Changed {
			s.Changed++
		}

		if f.Failed() {
			s.Failed++
		}

		for _, ret := range f.Retirements {
			s.Retirements++

			if ret.Plan.Kind == PartialKeep {
				s.Kept++
			} else {
				s.Removed++
			}
		}
	}

	return s
}

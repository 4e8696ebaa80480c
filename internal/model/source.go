// Package model defines the data structures shared by the nodebug layers.
package model

// Path represents a file system path.
type Path string

// File represents a source code file.
type File struct {
	Path      Path
	ShortPath Path
	Hash      string
}

// Source is one JavaScript file selected for processing.
type Source struct {
	Origin *File
}

package model

import "fmt"

// Path represents a file system path.
type Path string

// File represents a tree dump on disk together with the path of the source
// file it was produced from.
type File struct {
	// FullPath is the location of the tree dump.
	FullPath Path
	// ShortPath is the project-relative, slash separated source path used
	// for classification and reporting (e.g. app/models/post.rb).
	ShortPath Path
	Hash      string
}

// Source is a discovered input of the analysis.
type Source struct {
	Origin *File
}

// SourceFile is a loaded input: a source path and its parsed tree.
type SourceFile struct {
	Path Path
	Tree *Node
}

// SetupError is a failure of an external collaborator (unreadable input,
// malformed tree dump). It aborts the run and is never reported as a finding.
type SetupError struct {
	Path Path
	Err  error
}

func (e *SetupError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("setup failed: %v", e.Err)
	}

	return fmt.Sprintf("setup failed for %s: %v", e.Path, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

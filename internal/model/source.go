package model

// Path represents a file system path.
type Path string

// File is a source file taking part in an edit.
type File struct {
	Path Path
	Hash string
}

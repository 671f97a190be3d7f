package model

// EditStatus is the outcome of an edit for one file.
type EditStatus int

const (
	// Changed indicates the file content differs after the edit.
	Changed EditStatus = iota
	// Unchanged indicates the edit produced identical content.
	Unchanged
	// Failed indicates the file could not be edited.
	Failed
)

func (s EditStatus) String() string {
	switch s {
	case Changed:
		return "changed"
	case Unchanged:
		return "unchanged"
	case Failed:
		return "failed"
	}

	return "unknown"
}

// Report is the result of editing one file.
type Report struct {
	File   File
	Status EditStatus
	Diff   string // unified diff, set when requested
	Output []byte // rewritten source
	Err    error
}

// Entry is one leaf of a flattened export object.
type Entry struct {
	Path  string
	Shape Shape
	Text  string
}

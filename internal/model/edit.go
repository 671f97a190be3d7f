package model

// EditOp names an edit operation.
type EditOp string

const (
	// OpSet stores a value at a path, creating missing objects on the way.
	OpSet EditOp = "set"
	// OpDelete removes the key or array element at a path.
	OpDelete EditOp = "delete"
	// OpAppend adds a value at the end of the array at a path.
	OpAppend EditOp = "append"
	// OpMerge copies the keys of an object value into the object at a path.
	OpMerge EditOp = "merge"
)

// Edit is one step of an EditScript.
type Edit struct {
	Op    EditOp
	Path  string
	Value Value
}

// EditScript is an ordered list of edits applied to every target file.
type EditScript struct {
	Edits []Edit
}

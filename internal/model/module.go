package model

// ExportTarget is the member path of the module's export slot.
const ExportTarget = "module.exports"

// Module is a parsed source file. Only top-level assignments are modelled;
// every other statement is kept as its span.
type Module struct {
	Source []byte
	Body   []*Statement
}

// Statement is one top-level statement.
type Statement struct {
	Span
	// Assignment is set for `<member> = <expr>` expression statements.
	Assignment *Assignment
}

// Assignment is a top-level assignment to a member expression.
type Assignment struct {
	// Target is the dotted member path, e.g. "module.exports".
	Target string
	Value  Node
}

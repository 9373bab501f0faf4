// Package expr implements the small expression language used by stage
// descriptors for dynamic predecessor lists, actual-timestamp extraction,
// and fallback instant computation (spec §4.2). It is a deliberately
// hand-rolled tagged-AST interpreter rather than an embedded host-language
// eval, so that unsupported constructs are rejected statically and the
// error surface stays predictable.
package expr

// Node is the common interface implemented by every AST node.
type Node interface {
	node()
}

// Literal is an integer, float, or string constant.
type Literal struct {
	// Kind is one of "int", "float", or "string".
	Kind  string
	Int   int64
	Float float64
	Str   string
}

func (*Literal) node() {}

// Name is a bare identifier, resolved either as a stage_<id> back-reference
// or as a PO row field.
type Name struct {
	Ident string
}

func (*Name) node() {}

// List is a bracketed list literal.
type List struct {
	Elements []Node
}

func (*List) node() {}

// BinOp is one of the four arithmetic operators.
type BinOp struct {
	Op    string // "+", "-", "*", "/"
	Left  Node
	Right Node
}

func (*BinOp) node() {}

// Compare is one of the six comparison operators.
type Compare struct {
	Op    string // "==", "!=", "<", "<=", ">", ">="
	Left  Node
	Right Node
}

func (*Compare) node() {}

// Call is a function call. The parser accepts any function name; only the
// fixed built-in allow-list (max, add_days, iff, cond) evaluates, and any
// other name fails at evaluation with UnknownFunction (§4.2 Security).
type Call struct {
	Func string
	Args []Node
}

func (*Call) node() {}

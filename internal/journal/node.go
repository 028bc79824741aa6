package journal

// Kind is the XML tag name that identifies a journal node.
type Kind string

// Recognized node kinds. Any other element inside a code block is a
// structural error.
const (
	KindCodeBlock           Kind = "CodeBlock"
	KindCommentEntry        Kind = "CommentEntry"
	KindFunctionEntry       Kind = "FunctionEntry"
	KindVariable            Kind = "Variable"
	KindAssignVariableEntry Kind = "AssignVariableEntry"
	KindTraceEntry          Kind = "TraceEntry"
	KindIfThenElseEntry     Kind = "IfThenElseEntry"
	KindRunJournalEntry     Kind = "RunJournalEntry"
)

// Node is one typed element of a journal code tree. The set of
// implementations is closed: only the types in this file satisfy it.
type Node interface {
	Kind() Kind
	node()
}

// CodeBlock is an ordered container of statements. A block whose Condition
// is "false" is the else branch of the preceding conditional.
type CodeBlock struct {
	Condition string
	Children  []Node
}

// IsElse reports whether the block renders as an else branch.
func (b *CodeBlock) IsElse() bool { return b.Condition == "false" }

// CommentEntry is a free-text comment. Text may be empty.
type CommentEntry struct {
	Text string
}

// FunctionEntry is a call whose arguments are its child nodes.
type FunctionEntry struct {
	FunctionName string
	Args         []Node
}

// Variable is a named value, usually a function argument.
// Name is already resolved: OverrideVariable when present, else Name.
type Variable struct {
	Name string
	Type string
	Text string
}

// AssignVariableEntry assigns an expression to a variable.
type AssignVariableEntry struct {
	VariableName string
	Expression   string
}

// TraceEntry prints an expression.
type TraceEntry struct {
	Expression string
}

// IfThenElseEntry is a conditional whose children are its branches.
type IfThenElseEntry struct {
	Expression string
	Children   []Node
}

// RunJournalEntry invokes another journal.
type RunJournalEntry struct {
	JournalName string
}

func (*CodeBlock) Kind() Kind           { return KindCodeBlock }
func (*CommentEntry) Kind() Kind        { return KindCommentEntry }
func (*FunctionEntry) Kind() Kind       { return KindFunctionEntry }
func (*Variable) Kind() Kind            { return KindVariable }
func (*AssignVariableEntry) Kind() Kind { return KindAssignVariableEntry }
func (*TraceEntry) Kind() Kind          { return KindTraceEntry }
func (*IfThenElseEntry) Kind() Kind     { return KindIfThenElseEntry }
func (*RunJournalEntry) Kind() Kind     { return KindRunJournalEntry }

func (*CodeBlock) node()           {}
func (*CommentEntry) node()        {}
func (*FunctionEntry) node()       {}
func (*Variable) node()            {}
func (*AssignVariableEntry) node() {}
func (*TraceEntry) node()          {}
func (*IfThenElseEntry) node()     {}
func (*RunJournalEntry) node()     {}

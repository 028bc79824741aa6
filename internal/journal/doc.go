// Package journal parses XML journal files and transpiles them into
// Python-flavoured pseudo-code.
//
// A journal is an XML document holding exactly one Description element and
// exactly one top-level CodeBlock. The code block is a tree of typed nodes:
//
//	CodeBlock            container, "else:" branch when Condition="false"
//	CommentEntry         "# " prefixed text wrapped at 76 columns
//	FunctionEntry        Name(arg,
//	                          arg)
//	Variable             name = value
//	AssignVariableEntry  VariableName = Expression
//	TraceEntry           Trace(Expression)
//	IfThenElseEntry      if Expression:, followed by indented branches
//	RunJournalEntry      Run_Journal(JournalName)
//
// # Parsing
//
// Parse decodes the whole file, converts the code tree into Node values and
// renders it, keeping only the resulting text:
//
//	doc, err := journal.Parse("acquire.jnl", f)
//	fmt.Println(doc.Description())
//	fmt.Println(doc.Code())
//
// Unknown element kinds inside the code tree are rejected while converting,
// so Render only ever sees the closed set of node types.
//
// # Errors
//
// Failures are reported as *StructuralError (malformed XML, unknown kind),
// *AttributeMissingError, or *MissingSectionError, each carrying the file
// name. IsJournalError distinguishes them from read failures.
package journal

package journal

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gorewood/jnldoc/internal/textwrap"
)

const (
	// indentUnit is the indentation added per nesting level.
	indentUnit = "    "

	// commentWidth is the wrap width for comment text, excluding the prefix.
	commentWidth  = 76
	commentPrefix = "# "
)

// Transpile renders the children of a document's top-level code block, one
// statement per line. The root block's own Condition is ignored.
func Transpile(root *CodeBlock) (string, error) {
	lines := make([]string, 0, len(root.Children))
	for _, child := range root.Children {
		fragment, err := Render(child)
		if err != nil {
			return "", err
		}
		lines = append(lines, fragment)
	}
	return strings.Join(lines, "\n"), nil
}

// Render renders one node, and recursively its children, as pseudo-code.
// The fragment is unindented; containers indent the fragments of their
// children.
func Render(n Node) (string, error) {
	switch n := n.(type) {
	case *CodeBlock:
		return renderCodeBlock(n)
	case *CommentEntry:
		return textwrap.Prefixed(n.Text, commentWidth, commentPrefix), nil
	case *FunctionEntry:
		return renderFunction(n)
	case *Variable:
		return renderVariable(n), nil
	case *AssignVariableEntry:
		return n.VariableName + " = " + n.Expression, nil
	case *TraceEntry:
		return "Trace(" + n.Expression + ")", nil
	case *IfThenElseEntry:
		return renderIfThenElse(n)
	case *RunJournalEntry:
		return "Run_Journal(" + n.JournalName + ")", nil
	default:
		return "", &StructuralError{Kind: fmt.Sprintf("%T", n)}
	}
}

func renderCodeBlock(b *CodeBlock) (string, error) {
	lines := make([]string, 0, len(b.Children)+1)
	if b.IsElse() {
		lines = append(lines, "else:")
	}
	for _, child := range b.Children {
		fragment, err := Render(child)
		if err != nil {
			return "", err
		}
		lines = append(lines, indentLines(fragment, indentUnit))
	}
	return strings.Join(lines, "\n"), nil
}

func renderFunction(f *FunctionEntry) (string, error) {
	name := strings.ReplaceAll(f.FunctionName, " ", "_")
	pad := strings.Repeat(" ", utf8.RuneCountInString(name)+1)

	var b strings.Builder
	b.WriteString(name)
	b.WriteString("(")
	for i, arg := range f.Args {
		fragment, err := Render(arg)
		if err != nil {
			return "", err
		}
		if i > 0 {
			b.WriteString(",\n")
			b.WriteString(pad)
		}
		b.WriteString(indentContinuation(fragment, pad))
	}
	b.WriteString(")")
	return b.String(), nil
}

func renderVariable(v *Variable) string {
	value := v.Text
	if v.Type == "String" {
		value = stripLengthPrefix(value)
	}
	if v.Name == "" {
		return value
	}
	return v.Name + " = " + value
}

func renderIfThenElse(c *IfThenElseEntry) (string, error) {
	var b strings.Builder
	b.WriteString("if ")
	b.WriteString(c.Expression)
	b.WriteString(":")
	for _, child := range c.Children {
		fragment, err := Render(child)
		if err != nil {
			return "", err
		}
		b.WriteString(",\n")
		b.WriteString(indentLines(fragment, indentUnit))
	}
	return b.String(), nil
}

// stripLengthPrefix drops the leading numeric length token and its
// separating space from a serialized string value ("5 hello" -> "hello").
// Values without a numeric token are returned as is.
func stripLengthPrefix(value string) string {
	token, payload, _ := strings.Cut(value, " ")
	if !isDigits(token) {
		return value
	}
	return payload
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// indentLines prefixes every non-empty line of s.
func indentLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// indentContinuation prefixes every non-empty line of s except the first.
func indentContinuation(s, prefix string) string {
	first, rest, found := strings.Cut(s, "\n")
	if !found {
		return s
	}
	return first + "\n" + indentLines(rest, prefix)
}

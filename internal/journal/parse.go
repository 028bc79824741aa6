package journal

import (
	"encoding/xml"
	"io"
	"strings"
)

const (
	descriptionTag = "Description"
	codeBlockTag   = string(KindCodeBlock)
)

// element is the untyped XML tree produced by the decoder. It is converted
// into typed nodes and then dropped.
type element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []element  `xml:",any"`
	Text     string     `xml:",chardata"`
}

// attr returns the value of the attribute with the given local name.
func (e *element) attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// leafText returns the element's character data when it has no child
// elements. Whitespace between child elements is not text.
func (e *element) leafText() string {
	if len(e.Children) > 0 {
		return ""
	}
	return e.Text
}

// decodeTree reads a whole journal file into an element tree.
func decodeTree(r io.Reader) (*element, error) {
	dec := xml.NewDecoder(newUTF8Reader(r))
	dec.CharsetReader = charsetReader
	var root element
	if err := dec.Decode(&root); err != nil {
		return nil, err
	}
	return &root, nil
}

// sections holds the elements a journal document is built from.
type sections struct {
	descriptions []*element
	codeBlocks   []*element
}

// findSections collects every Description element and every CodeBlock that
// is not nested inside another CodeBlock.
func findSections(el *element, found *sections) {
	switch el.XMLName.Local {
	case descriptionTag:
		found.descriptions = append(found.descriptions, el)
		return
	case codeBlockTag:
		found.codeBlocks = append(found.codeBlocks, el)
		return
	}
	for i := range el.Children {
		findSections(&el.Children[i], found)
	}
}

// parser converts elements to typed nodes, tagging errors with the file name.
type parser struct {
	file string
}

// codeBlock converts a CodeBlock element.
func (p *parser) codeBlock(el *element) (*CodeBlock, error) {
	children, err := p.children(el)
	if err != nil {
		return nil, err
	}
	condition, _ := el.attr("Condition")
	return &CodeBlock{Condition: condition, Children: children}, nil
}

// children converts every child element in document order.
func (p *parser) children(el *element) ([]Node, error) {
	nodes := make([]Node, 0, len(el.Children))
	for i := range el.Children {
		n, err := p.node(&el.Children[i])
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// node converts one element, rejecting unrecognized kinds.
func (p *parser) node(el *element) (Node, error) {
	kind := Kind(el.XMLName.Local)
	switch kind {
	case KindCodeBlock:
		return p.codeBlock(el)
	case KindCommentEntry:
		return &CommentEntry{Text: el.leafText()}, nil
	case KindFunctionEntry:
		return p.functionEntry(el)
	case KindVariable:
		return p.variable(el)
	case KindAssignVariableEntry:
		name, err := p.require(el, kind, "VariableName")
		if err != nil {
			return nil, err
		}
		expr, err := p.require(el, kind, "Expression")
		if err != nil {
			return nil, err
		}
		return &AssignVariableEntry{VariableName: name, Expression: expr}, nil
	case KindTraceEntry:
		expr, err := p.require(el, kind, "Expression")
		if err != nil {
			return nil, err
		}
		return &TraceEntry{Expression: expr}, nil
	case KindIfThenElseEntry:
		expr, err := p.require(el, kind, "Expression")
		if err != nil {
			return nil, err
		}
		children, err := p.children(el)
		if err != nil {
			return nil, err
		}
		return &IfThenElseEntry{Expression: expr, Children: children}, nil
	case KindRunJournalEntry:
		name, err := p.require(el, kind, "JournalName")
		if err != nil {
			return nil, err
		}
		return &RunJournalEntry{JournalName: name}, nil
	default:
		return nil, &StructuralError{File: p.file, Kind: el.XMLName.Local}
	}
}

func (p *parser) functionEntry(el *element) (*FunctionEntry, error) {
	name, err := p.require(el, KindFunctionEntry, "FunctionName")
	if err != nil {
		return nil, err
	}
	args, err := p.children(el)
	if err != nil {
		return nil, err
	}
	return &FunctionEntry{FunctionName: name, Args: args}, nil
}

func (p *parser) variable(el *element) (*Variable, error) {
	name, ok := el.attr("OverrideVariable")
	if !ok {
		var err error
		name, err = p.require(el, KindVariable, "Name")
		if err != nil {
			return nil, err
		}
	}
	typ, _ := el.attr("Type")
	return &Variable{Name: name, Type: typ, Text: el.leafText()}, nil
}

// require returns a mandatory attribute or an AttributeMissingError.
func (p *parser) require(el *element, kind Kind, name string) (string, error) {
	value, ok := el.attr(name)
	if !ok {
		return "", &AttributeMissingError{File: p.file, Kind: kind, Attribute: name}
	}
	return value, nil
}

// descriptionText returns the trimmed character data of a Description element.
func descriptionText(el *element) string {
	return strings.TrimSpace(el.Text)
}

package python

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/viant/conformer/model"
)

// Inspector builds structural source models from Python code. It extracts
// top-level classes, their base names as written, their methods and the
// receiver-qualified statements inside method bodies.
type Inspector struct {
	source []byte
}

// NewInspector creates a new Python Inspector
func NewInspector() *Inspector {
	return &Inspector{}
}

// ParseError reports a file that failed to produce a source model. The run
// is expected to continue over the remaining files.
type ParseError struct {
	Path     string
	Location model.Location
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s at %d:%d", e.Path, e.Location.Line, e.Location.Column)
}

// InspectSource parses Python source code from a byte slice and extracts classes
func (i *Inspector) InspectSource(src []byte) (*model.SourceFile, error) {
	return i.inspect(src, "source.py")
}

// InspectFile parses a Python source file and extracts classes
func (i *Inspector) InspectFile(filename string) (*model.SourceFile, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return i.inspect(src, filename)
}

func (i *Inspector) inspect(src []byte, filename string) (*model.SourceFile, error) {
	i.source = src

	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	rootNode := tree.RootNode()
	if rootNode.HasError() {
		return nil, &ParseError{Path: filename, Location: firstErrorLocation(rootNode)}
	}

	return i.processPythonFile(rootNode, src, filename)
}

// processPythonFile extracts top-level class definitions from a parsed file
func (i *Inspector) processPythonFile(rootNode *sitter.Node, src []byte, filename string) (*model.SourceFile, error) {
	fingerprint, err := model.Fingerprint(src)
	if err != nil {
		return nil, fmt.Errorf("failed to fingerprint %s: %w", filename, err)
	}
	aFile := &model.SourceFile{
		Name:        filepath.Base(filename),
		Path:        filename,
		Fingerprint: fingerprint,
	}

	for j := uint32(0); j < rootNode.NamedChildCount(); j++ {
		childNode := unwrapDecorated(rootNode.NamedChild(int(j)))
		if childNode == nil || childNode.Type() != "class_definition" {
			continue
		}
		if class := parseClassDefinition(childNode, src); class != nil {
			aFile.AddClass(class)
		}
	}

	return aFile, nil
}

// unwrapDecorated returns the wrapped definition for decorated_definition
// nodes and the node itself otherwise.
func unwrapDecorated(node *sitter.Node) *sitter.Node {
	if node != nil && node.Type() == "decorated_definition" {
		if definition := node.ChildByFieldName("definition"); definition != nil {
			return definition
		}
	}
	return node
}

// parseClassDefinition extracts name, base names and methods from a class_definition node
func parseClassDefinition(node *sitter.Node, src []byte) *model.ClassDefinition {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	class := &model.ClassDefinition{
		Name:     nameNode.Content(src),
		Location: nodeLocation(node),
	}

	if superclasses := node.ChildByFieldName("superclasses"); superclasses != nil {
		for j := uint32(0); j < superclasses.NamedChildCount(); j++ {
			baseNode := superclasses.NamedChild(int(j))
			// metaclass=... and other keyword arguments are not bases
			if baseNode.Type() == "keyword_argument" {
				continue
			}
			class.Bases = append(class.Bases, baseNode.Content(src))
		}
	}

	bodyNode := node.ChildByFieldName("body")
	if bodyNode == nil {
		return class
	}
	for j := uint32(0); j < bodyNode.NamedChildCount(); j++ {
		memberNode := unwrapDecorated(bodyNode.NamedChild(int(j)))
		if memberNode == nil || memberNode.Type() != "function_definition" {
			continue
		}
		if method := parseMethodDefinition(memberNode, src); method != nil {
			class.AddMethod(method)
		}
	}

	return class
}

// parseMethodDefinition extracts a method with its receiver name and the
// statements relevant for conformance rules
func parseMethodDefinition(node *sitter.Node, src []byte) *model.MethodDefinition {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	method := &model.MethodDefinition{
		Name:     nameNode.Content(src),
		SelfName: receiverName(node, src),
		Location: nodeLocation(node),
	}

	if bodyNode := node.ChildByFieldName("body"); bodyNode != nil {
		collectStatements(bodyNode, src, method)
	}

	return method
}

// receiverName returns the literal first parameter name of a method, the
// conventional instance-receiver token (usually "self"). Methods without
// parameters have no receiver and never match receiver-qualified rules.
func receiverName(node *sitter.Node, src []byte) string {
	parameters := node.ChildByFieldName("parameters")
	if parameters == nil || parameters.NamedChildCount() == 0 {
		return ""
	}
	first := parameters.NamedChild(0)
	switch first.Type() {
	case "identifier":
		return first.Content(src)
	case "typed_parameter":
		if first.NamedChildCount() > 0 && first.NamedChild(0).Type() == "identifier" {
			return first.NamedChild(0).Content(src)
		}
	case "default_parameter", "typed_default_parameter":
		if nameNode := first.ChildByFieldName("name"); nameNode != nil {
			return nameNode.Content(src)
		}
	}
	return ""
}

func nodeLocation(node *sitter.Node) model.Location {
	point := node.StartPoint()
	return model.Location{Line: int(point.Row) + 1, Column: int(point.Column) + 1}
}

// firstErrorLocation finds the anchor of the first syntax error in the tree
func firstErrorLocation(node *sitter.Node) model.Location {
	if node.Type() == "ERROR" || node.IsMissing() {
		return nodeLocation(node)
	}
	for j := uint32(0); j < node.ChildCount(); j++ {
		child := node.Child(int(j))
		if child.HasError() || child.IsMissing() {
			return firstErrorLocation(child)
		}
	}
	return nodeLocation(node)
}

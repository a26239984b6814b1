package python

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/conformer/model"
)

// nestedScopeTypes are nodes that bind their own receiver; statement
// discovery never descends into them.
var nestedScopeTypes = map[string]bool{
	"function_definition": true,
	"class_definition":    true,
	"lambda":              true,
}

// collectStatements walks a method body in source order and records
// receiver-qualified assignments and calls, at any nesting depth within
// conditionals, loops and try/with blocks, but never inside nested
// function or class definitions.
func collectStatements(node *sitter.Node, src []byte, method *model.MethodDefinition) {
	for j := uint32(0); j < node.NamedChildCount(); j++ {
		childNode := node.NamedChild(int(j))
		if nestedScopeTypes[childNode.Type()] {
			continue
		}
		switch childNode.Type() {
		case "assignment":
			if statement := assignmentStatement(childNode, src); statement != nil {
				method.AddStatement(statement)
			}
		case "call":
			if statement := callStatement(childNode, src); statement != nil {
				method.AddStatement(statement)
			}
		}
		collectStatements(childNode, src, method)
	}
}

// assignmentStatement models `<identifier>.<attribute> = <value>`; other
// assignment shapes are ignored. Chained assignments are followed to the
// final value so `self.a = self.b = None` is a null assignment for both
// targets (the inner assignment is recorded by the recursive walk).
func assignmentStatement(node *sitter.Node, src []byte) *model.Statement {
	left := node.ChildByFieldName("left")
	right := node.ChildByFieldName("right")
	if left == nil || right == nil || left.Type() != "attribute" {
		return nil
	}
	object := left.ChildByFieldName("object")
	attribute := left.ChildByFieldName("attribute")
	if object == nil || attribute == nil || object.Type() != "identifier" {
		return nil
	}
	value := right
	for value.Type() == "assignment" {
		next := value.ChildByFieldName("right")
		if next == nil {
			break
		}
		value = next
	}
	return &model.Statement{
		Kind:      model.KindAssignment,
		Receiver:  object.Content(src),
		Attribute: attribute.Content(src),
		IsNone:    value.Type() == "none",
		Location:  nodeLocation(node),
	}
}

// callStatement models `<expr>.<name>(...)` regardless of arguments; plain
// function calls have no receiver path and are ignored.
func callStatement(node *sitter.Node, src []byte) *model.Statement {
	function := node.ChildByFieldName("function")
	if function == nil || function.Type() != "attribute" {
		return nil
	}
	object := function.ChildByFieldName("object")
	attribute := function.ChildByFieldName("attribute")
	if object == nil || attribute == nil {
		return nil
	}
	return &model.Statement{
		Kind:         model.KindCall,
		ReceiverPath: object.Content(src),
		ReceiverRoot: receiverRoot(object, src),
		CallName:     attribute.Content(src),
		Location:     nodeLocation(node),
	}
}

// receiverRoot resolves the leftmost identifier of a receiver expression,
// e.g. "self" for self.app.create_workload().
func receiverRoot(node *sitter.Node, src []byte) string {
	for node != nil {
		switch node.Type() {
		case "identifier":
			return node.Content(src)
		case "attribute":
			node = node.ChildByFieldName("object")
		case "call":
			node = node.ChildByFieldName("function")
		case "subscript":
			node = node.ChildByFieldName("value")
		case "parenthesized_expression":
			if node.NamedChildCount() == 0 {
				return ""
			}
			node = node.NamedChild(0)
		default:
			return ""
		}
	}
	return ""
}

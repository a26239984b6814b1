package rule

import (
	"github.com/viant/conformer/model"
)

// OwnScope returns every statement found directly within any method of the
// class, in method-declaration order then in-method statement order.
// Nested function and class bodies are already excluded by the source
// model builder; all rule kinds share this single definition of scope.
func OwnScope(class *model.ClassDefinition) []*model.Statement {
	var statements []*model.Statement
	for _, method := range class.Methods {
		statements = append(statements, method.Statements...)
	}
	return statements
}

// selfAssignments returns the self-receiver assignments to the named
// attribute anywhere in the class's own scope.
func selfAssignments(class *model.ClassDefinition, attribute string) []*model.Statement {
	var result []*model.Statement
	for _, statement := range OwnScope(class) {
		if statement.SelfAssignment() && statement.Attribute == attribute {
			result = append(result, statement)
		}
	}
	return result
}

// hasSelfCall reports whether any self-rooted call with one of the given
// names appears in the class's own scope.
func hasSelfCall(class *model.ClassDefinition, names []string) bool {
	for _, statement := range OwnScope(class) {
		if !statement.SelfCall() {
			continue
		}
		for _, name := range names {
			if statement.CallName == name {
				return true
			}
		}
	}
	return false
}

// hasAnyMethod reports whether the class defines any method with one of
// the given names.
func hasAnyMethod(class *model.ClassDefinition, names []string) bool {
	for _, name := range names {
		if class.HasMethod(name) {
			return true
		}
	}
	return false
}

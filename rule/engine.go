package rule

import (
	"fmt"

	"github.com/viant/conformer/model"
)

// Evaluate applies every rule whose target bases resolve for the class and
// returns the resulting diagnostics. Rules are independent of each other;
// evaluation order only matters for output ordering. Internal invariant
// violations are surfaced as diagnostics with internal severity, never
// silently dropped.
func Evaluate(class *model.ClassDefinition, specs []Spec) []model.Diagnostic {
	diagnostics := integrityCheck(class)

	for _, spec := range specs {
		if !Resolves(class, spec.Bases) {
			continue
		}
		switch spec.Kind {
		case RequiredAttribute:
			diagnostics = append(diagnostics, evaluateRequiredAttribute(class, spec)...)
		case RequiredMethodPair:
			diagnostics = append(diagnostics, evaluateRequiredMethodPair(class, spec)...)
		case CallPairInvariant:
			diagnostics = append(diagnostics, evaluateCallPair(class, spec)...)
		default:
			diagnostics = append(diagnostics, newDiagnostic(class, spec.ID,
				fmt.Sprintf("unknown rule kind %q reached evaluation", spec.Kind),
				model.SeverityInternal))
		}
	}
	return diagnostics
}

// evaluateRequiredAttribute passes when any non-null self-assignment to
// the attribute exists anywhere in the class's own scope. When assignments
// exist but all are null literals it reports the "assigned to null"
// variant, and when none exist the "missing" variant.
func evaluateRequiredAttribute(class *model.ClassDefinition, spec Spec) []model.Diagnostic {
	assignments := selfAssignments(class, spec.Attribute)
	for _, assignment := range assignments {
		if !assignment.IsNone {
			return nil
		}
	}
	if len(assignments) > 0 {
		message := spec.Messages.AssignedNone
		if message == "" {
			message = fmt.Sprintf("self.%s assigned to None", spec.Attribute)
		}
		return []model.Diagnostic{newDiagnostic(class, spec.ID, message, spec.Severity)}
	}
	message := spec.Messages.Missing
	if message == "" {
		message = fmt.Sprintf("self.%s is never assigned", spec.Attribute)
	}
	return []model.Diagnostic{newDiagnostic(class, spec.ID, message, spec.Severity)}
}

// evaluateRequiredMethodPair checks each pair independently. A pair with
// no counterparts requires the method to be present; otherwise the pair
// only binds when the primary method is defined, and is satisfied by a
// counterpart method definition or a matching self-rooted call anywhere in
// the class's own scope.
func evaluateRequiredMethodPair(class *model.ClassDefinition, spec Spec) []model.Diagnostic {
	var diagnostics []model.Diagnostic
	for _, pair := range spec.Pairs {
		if len(pair.CounterpartMethods) == 0 && len(pair.CounterpartCalls) == 0 {
			if !class.HasMethod(pair.Method) {
				message := pair.Message
				if message == "" {
					message = fmt.Sprintf("missing required method %s()", pair.Method)
				}
				diagnostics = append(diagnostics, newDiagnostic(class, spec.ID, message, spec.Severity))
			}
			continue
		}
		if !class.HasMethod(pair.Method) {
			continue
		}
		if hasAnyMethod(class, pair.CounterpartMethods) || hasSelfCall(class, pair.CounterpartCalls) {
			continue
		}
		message := pair.Message
		if message == "" {
			message = fmt.Sprintf("defines %s() without a counterpart", pair.Method)
		}
		diagnostics = append(diagnostics, newDiagnostic(class, spec.ID, message, spec.Severity))
	}
	return diagnostics
}

// evaluateCallPair flags classes whose own scope opens a resource without
// any matching close call. Absence of the resource entirely is not a leak.
func evaluateCallPair(class *model.ClassDefinition, spec Spec) []model.Diagnostic {
	if !hasSelfCall(class, spec.OpenCalls) {
		return nil
	}
	if hasSelfCall(class, spec.CloseCalls) {
		return nil
	}
	message := spec.Message
	if message == "" {
		message = "resource opened but never released"
	}
	return []model.Diagnostic{newDiagnostic(class, spec.ID, message, spec.Severity)}
}

// integrityCheck verifies the statement ownership tree before rules run; a
// statement claiming a scope it does not own is a checker defect.
func integrityCheck(class *model.ClassDefinition) []model.Diagnostic {
	var diagnostics []model.Diagnostic
	for _, method := range class.Methods {
		if method.Class != class {
			diagnostics = append(diagnostics, newDiagnostic(class, "integrity",
				fmt.Sprintf("method %s is not owned by class %s", method.Name, class.Name),
				model.SeverityInternal))
			continue
		}
		for _, statement := range method.Statements {
			if statement.Method != method {
				diagnostics = append(diagnostics, newDiagnostic(class, "integrity",
					fmt.Sprintf("statement at line %d is not owned by method %s", statement.Location.Line, method.Name),
					model.SeverityInternal))
			}
		}
	}
	return diagnostics
}

func newDiagnostic(class *model.ClassDefinition, ruleID, message string, severity model.Severity) model.Diagnostic {
	diagnostic := model.Diagnostic{
		RuleID:   ruleID,
		Class:    class.Name,
		Message:  message,
		Severity: severity,
		Location: class.Location,
	}
	if class.File != nil {
		diagnostic.File = class.File.Path
	}
	return diagnostic
}

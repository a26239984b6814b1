package rule

import (
	"github.com/viant/conformer/model"
)

// BuiltinRules returns the default ruleset encoding the structural
// contract for benchmark problem and application definitions: problems
// must pin the service they break, applications must pair their lifecycle
// methods, and a started workload must have a release path.
func BuiltinRules() []Spec {
	return []Spec{
		{
			ID:        "faulty-service-null-check",
			Kind:      RequiredAttribute,
			Bases:     []string{"Problem"},
			Severity:  model.SeverityWarning,
			Attribute: "faulty_service",
			Messages: Messages{
				Missing:      "self.faulty_service is never assigned",
				AssignedNone: "self.faulty_service assigned to None",
			},
		},
		{
			ID:       "lifecycle-methods-check",
			Kind:     RequiredMethodPair,
			Bases:    []string{"Application"},
			Severity: model.SeverityError,
			Pairs: []MethodPair{
				{
					Method:             "deploy",
					CounterpartMethods: []string{"cleanup"},
					Message:            "defines deploy() but no cleanup()",
				},
				{
					Method:             "deploy",
					CounterpartMethods: []string{"delete"},
					Message:            "defines deploy() but no delete()",
				},
				{
					Method:             "start_workload",
					CounterpartMethods: []string{"stop", "stop_workload"},
					CounterpartCalls:   []string{"stop", "stop_workload"},
					Message:            "defines start_workload() but no stop mechanism",
				},
			},
		},
		{
			ID:         "workload-release-check",
			Kind:       CallPairInvariant,
			Bases:      []string{"Problem", "Application"},
			Severity:   model.SeverityWarning,
			OpenCalls:  []string{"create_workload", "start_workload"},
			CloseCalls: []string{"stop_workload", "cleanup_workload", "stop"},
			Message:    "workload started but never stopped or released",
		},
	}
}

package rule

import (
	"github.com/viant/conformer/model"
	"github.com/viant/conformer/suppress"
)

// Kind discriminates the supported rule kinds.
type Kind string

const (
	// RequiredAttribute requires a non-null self-assignment to an attribute
	// somewhere in the class's own scope.
	RequiredAttribute Kind = "required-attribute"
	// RequiredMethodPair requires counterpart methods or calls for each
	// method listed in the spec's pairs; a pair without counterparts is a
	// plain presence requirement.
	RequiredMethodPair Kind = "required-method-pair"
	// CallPairInvariant requires that an "open" call observed in the
	// class's own scope is matched by a "close" call in the same scope.
	CallPairInvariant Kind = "call-pair"
)

// Known reports whether the kind is one of the supported values.
func (k Kind) Known() bool {
	switch k {
	case RequiredAttribute, RequiredMethodPair, CallPairInvariant:
		return true
	}
	return false
}

// MethodPair describes one "method implies counterpart" requirement. With
// empty counterpart sets the pair degenerates to a presence check on
// Method. Otherwise the pair passes when Method is undefined, or when any
// counterpart method is defined or any counterpart call appears in the
// class's own scope.
type MethodPair struct {
	Method             string   `yaml:"method"`
	CounterpartMethods []string `yaml:"counterparts,omitempty"`
	CounterpartCalls   []string `yaml:"counterpartCalls,omitempty"`
	Message            string   `yaml:"message"`
}

// Messages holds the failure-variant templates of a RequiredAttribute rule.
type Messages struct {
	Missing      string `yaml:"missing"`
	AssignedNone string `yaml:"assignedNone"`
}

// Spec describes one structural conformance rule. Rules are evaluated
// independently; their order only affects output ordering.
type Spec struct {
	ID       string         `yaml:"id"`
	Kind     Kind           `yaml:"kind"`
	Bases    []string       `yaml:"bases"`
	Severity model.Severity `yaml:"severity"`

	// RequiredAttribute parameters
	Attribute string   `yaml:"attribute,omitempty"`
	Messages  Messages `yaml:"messages,omitempty"`

	// RequiredMethodPair parameters
	Pairs []MethodPair `yaml:"pairs,omitempty"`

	// CallPairInvariant parameters
	OpenCalls  []string `yaml:"open,omitempty"`
	CloseCalls []string `yaml:"close,omitempty"`
	Message    string   `yaml:"message,omitempty"`

	// Suppress carries suppressions declared alongside the rule; entries
	// inherit the rule id when theirs is empty.
	Suppress []suppress.Entry `yaml:"suppress,omitempty"`
}

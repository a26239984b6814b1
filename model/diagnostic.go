package model

// Severity classifies a diagnostic.
type Severity string

const (
	// SeverityError fails the run.
	SeverityError Severity = "error"
	// SeverityWarning is reported but does not fail the run by default.
	SeverityWarning Severity = "warning"
	// SeverityInternal marks a checker defect (violated internal
	// invariant) surfaced instead of being swallowed; treated as failing.
	SeverityInternal Severity = "internal"
)

// Known reports whether the severity is one of the supported values.
func (s Severity) Known() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInternal:
		return true
	}
	return false
}

// Failing reports whether the severity alone fails a run.
func (s Severity) Failing() bool {
	return s == SeverityError || s == SeverityInternal
}

// Diagnostic is an immutable record of one rule violation (or one parse
// failure). Once emitted it is only filtered or sorted, never mutated.
type Diagnostic struct {
	RuleID   string   `json:"rule"`
	File     string   `json:"file"`
	Class    string   `json:"class,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Location Location `json:"location"`
}

// ParseErrorRuleID identifies diagnostics reporting files that failed to
// produce a source model.
const ParseErrorRuleID = "parse-error"

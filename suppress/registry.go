// Package suppress holds the per-rule, per-file allowlist of classes whose
// diagnostics are dropped after evaluation. The registry is immutable once
// loaded and safe for concurrent lookups.
package suppress

import (
	"path"

	"github.com/viant/conformer/model"
)

// Entry suppresses one rule for a source file, optionally narrowed to a
// single class. An empty Class suppresses the rule for the whole file.
type Entry struct {
	Rule  string `yaml:"rule,omitempty"`
	File  string `yaml:"file"`
	Class string `yaml:"class,omitempty"`
}

// Registry answers suppression lookups against a fully loaded entry list.
type Registry struct {
	entries []Entry
}

// NewRegistry creates a registry over the given entries.
func NewRegistry(entries ...Entry) *Registry {
	return &Registry{entries: entries}
}

// Matches reports whether a diagnostic identified by rule id, file name
// and class name is suppressed. File entries match the full path or its
// base name, class entries match exactly.
func (r *Registry) Matches(ruleID, fileName, className string) bool {
	for _, entry := range r.entries {
		if entry.Rule != ruleID {
			continue
		}
		if entry.File != fileName && entry.File != path.Base(fileName) {
			continue
		}
		if entry.Class != "" && entry.Class != className {
			continue
		}
		return true
	}
	return false
}

// MatchesDiagnostic is a convenience lookup for a diagnostic record.
func (r *Registry) MatchesDiagnostic(diagnostic model.Diagnostic) bool {
	return r.Matches(diagnostic.RuleID, diagnostic.File, diagnostic.Class)
}

// Size returns the number of loaded entries.
func (r *Registry) Size() int {
	return len(r.entries)
}

// Package report aggregates diagnostics after the parallel parse and
// evaluation phases, sorts them for deterministic output and renders them
// for humans or CI.
package report

import (
	"sort"

	"github.com/viant/conformer/model"
)

// FileInfo identifies one inspected source file by path and content
// fingerprint, so CI can correlate runs against unchanged inputs.
type FileInfo struct {
	Path        string `json:"path"`
	Fingerprint uint64 `json:"fingerprint"`
}

// Report is the join point of a checker run: all diagnostics that
// survived suppression plus run statistics.
type Report struct {
	Diagnostics []model.Diagnostic `json:"diagnostics"`
	Suppressed  int                `json:"suppressed"`
	Files       []FileInfo         `json:"files,omitempty"`
}

// New creates an empty report.
func New() *Report {
	return &Report{}
}

// Add appends diagnostics to the report.
func (r *Report) Add(diagnostics ...model.Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, diagnostics...)
}

// AddFile records an inspected file.
func (r *Report) AddFile(path string, fingerprint uint64) {
	r.Files = append(r.Files, FileInfo{Path: path, Fingerprint: fingerprint})
}

// Sort orders diagnostics by (file, class, rule id, message) and files by
// path. Two runs over identical input render byte-identical output.
func (r *Report) Sort() {
	sort.SliceStable(r.Diagnostics, func(i, j int) bool {
		a, b := r.Diagnostics[i], r.Diagnostics[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Class != b.Class {
			return a.Class < b.Class
		}
		if a.RuleID != b.RuleID {
			return a.RuleID < b.RuleID
		}
		return a.Message < b.Message
	})
	sort.SliceStable(r.Files, func(i, j int) bool {
		return r.Files[i].Path < r.Files[j].Path
	})
}

// ExitCode computes the process exit status: 0 when no failing diagnostic
// remains, 1 otherwise. Warnings alone fail only when failOnWarning is
// set. Configuration errors exit 2 and never reach a report.
func (r *Report) ExitCode(failOnWarning bool) int {
	for _, diagnostic := range r.Diagnostics {
		if diagnostic.Severity.Failing() {
			return 1
		}
		if failOnWarning && diagnostic.Severity == model.SeverityWarning {
			return 1
		}
	}
	return 0
}

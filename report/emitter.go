package report

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Emitter defines an interface for rendering a report
type Emitter interface {
	// Emit renders the report to bytes
	Emit(report *Report) ([]byte, error)
}

// TextEmitter renders one line per diagnostic: file, class, rule id,
// message and severity.
type TextEmitter struct{}

func (e *TextEmitter) Emit(report *Report) ([]byte, error) {
	builder := &strings.Builder{}
	for _, diagnostic := range report.Diagnostics {
		class := diagnostic.Class
		if class == "" {
			class = "-"
		}
		fmt.Fprintf(builder, "%s: %s: %s: %s (%s)\n",
			diagnostic.File, class, diagnostic.RuleID, diagnostic.Message, diagnostic.Severity)
	}
	if report.Suppressed > 0 {
		fmt.Fprintf(builder, "%d violation(s) suppressed\n", report.Suppressed)
	}
	return []byte(builder.String()), nil
}

// JSONEmitter renders the full report as a machine-readable document for
// CI consumption.
type JSONEmitter struct{}

func (e *JSONEmitter) Emit(report *Report) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return append(data, '\n'), nil
}

// NewEmitter returns the emitter for the given format ("text" or "json").
func NewEmitter(format string) (Emitter, error) {
	switch format {
	case "", "text":
		return &TextEmitter{}, nil
	case "json":
		return &JSONEmitter{}, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

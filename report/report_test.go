package report_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/conformer/model"
	"github.com/viant/conformer/report"
)

func sampleReport() *report.Report {
	aReport := report.New()
	aReport.Add(
		model.Diagnostic{RuleID: "faulty-service-null-check", File: "foo.py", Class: "Foo", Message: "self.faulty_service assigned to None", Severity: model.SeverityWarning},
		model.Diagnostic{RuleID: "lifecycle-methods-check", File: "bar.py", Class: "Bar", Message: "defines deploy() but no delete()", Severity: model.SeverityError},
		model.Diagnostic{RuleID: "lifecycle-methods-check", File: "bar.py", Class: "Bar", Message: "defines deploy() but no cleanup()", Severity: model.SeverityError},
		model.Diagnostic{RuleID: "parse-error", File: "broken.py", Message: "syntax error at 2:1", Severity: model.SeverityError},
	)
	aReport.AddFile("foo.py", 42)
	aReport.AddFile("bar.py", 7)
	return aReport
}

func TestReport_Sort(t *testing.T) {
	aReport := sampleReport()
	aReport.Sort()

	var got []string
	for _, diagnostic := range aReport.Diagnostics {
		got = append(got, diagnostic.File+"|"+diagnostic.Class+"|"+diagnostic.Message)
	}
	assert.Equal(t, []string{
		"bar.py|Bar|defines deploy() but no cleanup()",
		"bar.py|Bar|defines deploy() but no delete()",
		"broken.py||syntax error at 2:1",
		"foo.py|Foo|self.faulty_service assigned to None",
	}, got)
	assert.Equal(t, "bar.py", aReport.Files[0].Path)
}

func TestReport_ExitCode(t *testing.T) {
	tests := []struct {
		description   string
		severities    []model.Severity
		failOnWarning bool
		expect        int
	}{
		{
			description: "no diagnostics passes",
			expect:      0,
		},
		{
			description: "warnings alone pass",
			severities:  []model.Severity{model.SeverityWarning},
			expect:      0,
		},
		{
			description:   "warnings fail when configured to",
			severities:    []model.Severity{model.SeverityWarning},
			failOnWarning: true,
			expect:        1,
		},
		{
			description: "any error fails",
			severities:  []model.Severity{model.SeverityWarning, model.SeverityError},
			expect:      1,
		},
		{
			description: "internal diagnostics fail",
			severities:  []model.Severity{model.SeverityInternal},
			expect:      1,
		},
	}

	for _, tc := range tests {
		aReport := report.New()
		for _, severity := range tc.severities {
			aReport.Add(model.Diagnostic{Severity: severity})
		}
		assert.Equal(t, tc.expect, aReport.ExitCode(tc.failOnWarning), tc.description)
	}
}

func TestTextEmitter(t *testing.T) {
	aReport := sampleReport()
	aReport.Suppressed = 2
	aReport.Sort()

	output, err := (&report.TextEmitter{}).Emit(aReport)
	require.NoError(t, err)
	assert.Equal(t, `bar.py: Bar: lifecycle-methods-check: defines deploy() but no cleanup() (error)
bar.py: Bar: lifecycle-methods-check: defines deploy() but no delete() (error)
broken.py: -: parse-error: syntax error at 2:1 (error)
foo.py: Foo: faulty-service-null-check: self.faulty_service assigned to None (warning)
2 violation(s) suppressed
`, string(output))
}

func TestJSONEmitter(t *testing.T) {
	aReport := sampleReport()
	aReport.Sort()

	output, err := (&report.JSONEmitter{}).Emit(aReport)
	require.NoError(t, err)

	decoded := &report.Report{}
	require.NoError(t, json.Unmarshal(output, decoded))
	assert.Equal(t, 4, len(decoded.Diagnostics))
	assert.Equal(t, aReport.Diagnostics, decoded.Diagnostics)
	assert.Equal(t, 2, len(decoded.Files))
}

func TestNewEmitter(t *testing.T) {
	for _, format := range []string{"", "text", "json"} {
		emitter, err := report.NewEmitter(format)
		assert.NoError(t, err, format)
		assert.NotNil(t, emitter, format)
	}
	_, err := report.NewEmitter("xml")
	assert.Error(t, err)
}

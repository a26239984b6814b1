package checker_test

import (
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/conformer/checker"
	"github.com/viant/conformer/model"
	"github.com/viant/conformer/report"
	"github.com/viant/conformer/suppress"
)

func TestService_Check(t *testing.T) {
	service := checker.New(checker.WithConcurrency(2))
	aReport, err := service.Check(context.Background(), "testdata/conductor")
	require.NoError(t, err)

	// Bar(Application) defines deploy() and start_workload() with no
	// counterparts; Foo(Problem) pins faulty_service to None. The clean
	// TrafficSpike and TrainTicket classes report nothing.
	require.Equal(t, 4, len(aReport.Diagnostics))

	for i, diagnostic := range aReport.Diagnostics[:3] {
		assert.Equal(t, "bar.py", diagnostic.File, i)
		assert.Equal(t, "Bar", diagnostic.Class, i)
		assert.Equal(t, "lifecycle-methods-check", diagnostic.RuleID, i)
		assert.Equal(t, model.SeverityError, diagnostic.Severity, i)
	}
	faulty := aReport.Diagnostics[3]
	assert.Equal(t, "foo.py", faulty.File)
	assert.Equal(t, "Foo", faulty.Class)
	assert.Equal(t, "faulty-service-null-check", faulty.RuleID)
	assert.Equal(t, "self.faulty_service assigned to None", faulty.Message)
	assert.Equal(t, model.SeverityWarning, faulty.Severity)

	assert.Equal(t, 0, aReport.Suppressed)
	assert.Equal(t, 4, len(aReport.Files))
	// exit status reflects the highest severity present
	assert.Equal(t, 1, aReport.ExitCode(false))
}

func TestService_Check_Suppression(t *testing.T) {
	// a file-wide entry removes every lifecycle diagnostic for bar.py
	service := checker.New(checker.WithSuppressions(
		suppress.Entry{Rule: "lifecycle-methods-check", File: "bar.py"},
	))
	aReport, err := service.Check(context.Background(), "testdata/conductor")
	require.NoError(t, err)

	require.Equal(t, 1, len(aReport.Diagnostics))
	assert.Equal(t, "faulty-service-null-check", aReport.Diagnostics[0].RuleID)
	assert.Equal(t, 3, aReport.Suppressed)
	// only a warning remains
	assert.Equal(t, 0, aReport.ExitCode(false))
	assert.Equal(t, 1, aReport.ExitCode(true))
}

func TestService_Check_SuppressionIdempotence(t *testing.T) {
	baseline, err := checker.New().Check(context.Background(), "testdata/conductor")
	require.NoError(t, err)

	// adding a class-scoped entry removes exactly that diagnostic
	suppressed, err := checker.New(checker.WithSuppressions(
		suppress.Entry{Rule: "faulty-service-null-check", File: "foo.py", Class: "Foo"},
	)).Check(context.Background(), "testdata/conductor")
	require.NoError(t, err)

	assert.Equal(t, len(baseline.Diagnostics)-1, len(suppressed.Diagnostics))
	assert.Equal(t, 1, suppressed.Suppressed)
	for _, diagnostic := range suppressed.Diagnostics {
		assert.NotEqual(t, "faulty-service-null-check", diagnostic.RuleID)
	}

	// removing the entry restores the original report
	restored, err := checker.New().Check(context.Background(), "testdata/conductor")
	require.NoError(t, err)
	assert.Equal(t, baseline.Diagnostics, restored.Diagnostics)
}

func TestService_Check_ParseError(t *testing.T) {
	service := checker.New()
	aReport, err := service.Check(context.Background(), "testdata/broken")
	require.NoError(t, err)

	require.Equal(t, 1, len(aReport.Diagnostics))
	diagnostic := aReport.Diagnostics[0]
	assert.Equal(t, model.ParseErrorRuleID, diagnostic.RuleID)
	assert.Equal(t, "invalid.py", diagnostic.File)
	assert.Equal(t, "", diagnostic.Class)
	assert.Equal(t, model.SeverityError, diagnostic.Severity)
	assert.Equal(t, 1, aReport.ExitCode(false))
}

func TestService_Check_SingleFile(t *testing.T) {
	service := checker.New()
	aReport, err := service.Check(context.Background(), "testdata/conductor/foo.py")
	require.NoError(t, err)

	require.Equal(t, 1, len(aReport.Diagnostics))
	assert.Equal(t, "foo.py", aReport.Diagnostics[0].File)
	assert.Equal(t, "faulty-service-null-check", aReport.Diagnostics[0].RuleID)
}

func TestService_Check_Determinism(t *testing.T) {
	emitter := &report.TextEmitter{}

	first, err := checker.New(checker.WithConcurrency(4)).Check(context.Background(), "testdata/conductor")
	require.NoError(t, err)
	second, err := checker.New(checker.WithConcurrency(1)).Check(context.Background(), "testdata/conductor")
	require.NoError(t, err)

	firstOutput, err := emitter.Emit(first)
	require.NoError(t, err)
	secondOutput, err := emitter.Emit(second)
	require.NoError(t, err)
	assert.Equal(t, firstOutput, secondOutput)

	g := goldie.New(t)
	g.Assert(t, "conductor_report", firstOutput)
}

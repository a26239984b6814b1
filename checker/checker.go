// Package checker orchestrates a conformance run: discover source files,
// build source models in parallel, evaluate the configured rules against
// every resolved class and join the results into a report.
package checker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"runtime"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"golang.org/x/sync/errgroup"

	"github.com/viant/conformer/inspector"
	"github.com/viant/conformer/inspector/python"
	"github.com/viant/conformer/model"
	"github.com/viant/conformer/report"
	"github.com/viant/conformer/rule"
	"github.com/viant/conformer/suppress"
)

// Service runs the conformance pipeline. Parsing and rule evaluation are
// embarrassingly parallel; the report is the sole join point.
type Service struct {
	fs          afs.Service
	factory     *inspector.Factory
	rules       []rule.Spec
	registry    *suppress.Registry
	match       MatcherFn
	concurrency int
}

// New creates a checker service with the built-in ruleset, an empty
// suppression registry and one parse/evaluate worker per CPU.
func New(options ...Option) *Service {
	service := &Service{
		fs:          afs.New(),
		factory:     inspector.NewFactory(),
		rules:       rule.BuiltinRules(),
		registry:    suppress.NewRegistry(),
		match:       PythonFiles,
		concurrency: runtime.NumCPU(),
	}
	for _, option := range options {
		option(service)
	}
	return service
}

type sourceAsset struct {
	name string // path relative to the walked root
	URL  string
}

type parseResult struct {
	file        *model.SourceFile
	diagnostics []model.Diagnostic
}

// Check analyzes every matching source file under location and returns
// the aggregated, suppression-filtered, sorted report. Individual file
// failures become diagnostics; only infrastructure failures abort the run.
func (s *Service) Check(ctx context.Context, location string) (*report.Report, error) {
	assets, err := s.collect(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", location, err)
	}

	parsed, err := s.parseAll(ctx, assets)
	if err != nil {
		return nil, err
	}

	aReport := report.New()
	var classes []*model.ClassDefinition
	for _, result := range parsed {
		aReport.Add(result.diagnostics...)
		if result.file == nil {
			continue
		}
		aReport.AddFile(result.file.Path, result.file.Fingerprint)
		classes = append(classes, result.file.Classes...)
	}

	evaluated, err := s.evaluateAll(ctx, classes)
	if err != nil {
		return nil, err
	}
	for _, diagnostics := range evaluated {
		for _, diagnostic := range diagnostics {
			if s.registry.MatchesDiagnostic(diagnostic) {
				aReport.Suppressed++
				continue
			}
			aReport.Add(diagnostic)
		}
	}

	aReport.Sort()
	return aReport, nil
}

// collect walks the location and gathers matching source files. A
// location pointing at a single file is accepted as-is.
func (s *Service) collect(ctx context.Context, location string) ([]sourceAsset, error) {
	object, err := s.fs.Object(ctx, location)
	if err != nil {
		return nil, err
	}
	if !object.IsDir() {
		return []sourceAsset{{name: path.Base(location), URL: location}}, nil
	}

	var assets []sourceAsset
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if !s.match(info) {
			return false, nil
		}
		if info.IsDir() {
			return true, nil
		}
		name := path.Join(parent, info.Name())
		assets = append(assets, sourceAsset{name: name, URL: url.Join(baseURL, name)})
		return true, nil
	}
	if err := s.fs.Walk(ctx, location, visitor); err != nil {
		return nil, err
	}
	return assets, nil
}

// parseAll builds source models with a fixed-size worker pool; each file
// is independent and workers share no mutable state.
func (s *Service) parseAll(ctx context.Context, assets []sourceAsset) ([]parseResult, error) {
	results := make([]parseResult, len(assets))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(s.concurrency)
	for i := range assets {
		i := i
		group.Go(func() error {
			results[i] = s.parseOne(ctx, assets[i])
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) parseOne(ctx context.Context, asset sourceAsset) parseResult {
	data, err := s.fs.DownloadWithURL(ctx, asset.URL)
	if err != nil {
		return parseResult{diagnostics: []model.Diagnostic{parseDiagnostic(asset.name,
			fmt.Sprintf("failed to read source: %v", err), model.Location{})}}
	}
	aFile, err := s.factory.InspectSource(asset.name, data)
	if err != nil {
		var parseErr *python.ParseError
		if errors.As(err, &parseErr) {
			return parseResult{diagnostics: []model.Diagnostic{parseDiagnostic(asset.name,
				fmt.Sprintf("syntax error at %d:%d", parseErr.Location.Line, parseErr.Location.Column),
				parseErr.Location)}}
		}
		return parseResult{diagnostics: []model.Diagnostic{parseDiagnostic(asset.name,
			fmt.Sprintf("failed to build source model: %v", err), model.Location{})}}
	}
	return parseResult{file: aFile}
}

func parseDiagnostic(file, message string, location model.Location) model.Diagnostic {
	return model.Diagnostic{
		RuleID:   model.ParseErrorRuleID,
		File:     file,
		Message:  message,
		Severity: model.SeverityError,
		Location: location,
	}
}

// evaluateAll applies the ruleset to every class with a fixed-size worker
// pool; classes are evaluated independently.
func (s *Service) evaluateAll(ctx context.Context, classes []*model.ClassDefinition) ([][]model.Diagnostic, error) {
	results := make([][]model.Diagnostic, len(classes))
	group, _ := errgroup.WithContext(ctx)
	group.SetLimit(s.concurrency)
	for i := range classes {
		i := i
		group.Go(func() error {
			results[i] = rule.Evaluate(classes[i], s.rules)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

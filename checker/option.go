package checker

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/conformer/rule"
	"github.com/viant/conformer/suppress"
)

// Option configures a checker service.
type Option func(*Service)

// MatcherFn decides which directories are descended into and which files
// are inspected.
type MatcherFn func(info os.FileInfo) bool

// WithRules replaces the built-in ruleset.
func WithRules(rules []rule.Spec) Option {
	return func(s *Service) {
		s.rules = rules
	}
}

// WithSuppressions loads the suppression registry.
func WithSuppressions(entries ...suppress.Entry) Option {
	return func(s *Service) {
		s.registry = suppress.NewRegistry(entries...)
	}
}

// WithConfig applies a validated configuration document: its rules and
// its flattened suppression table.
func WithConfig(config *rule.Config) Option {
	return func(s *Service) {
		s.rules = config.Rules
		s.registry = suppress.NewRegistry(config.Entries()...)
	}
}

// WithConcurrency sets the worker pool size for parsing and evaluation.
func WithConcurrency(concurrency int) Option {
	return func(s *Service) {
		if concurrency > 0 {
			s.concurrency = concurrency
		}
	}
}

// WithMatcher replaces the source file matcher.
func WithMatcher(matcher MatcherFn) Option {
	return func(s *Service) {
		s.match = matcher
	}
}

// WithFS replaces the file system service, e.g. with an in-memory one in tests.
func WithFS(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// PythonFiles matches Python source files and skips virtual environments,
// caches and hidden directories.
func PythonFiles(info os.FileInfo) bool {
	name := info.Name()
	if info.IsDir() {
		if name == "__pycache__" || name == ".venv" || name == "venv" || name == "node_modules" {
			return false
		}
		if strings.HasPrefix(name, ".") && name != "." {
			return false
		}
		return true
	}
	return filepath.Ext(name) == ".py"
}

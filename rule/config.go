package rule

import (
	"fmt"
	"os"

	"github.com/viant/conformer/model"
	"github.com/viant/conformer/suppress"
	"gopkg.in/yaml.v3"
)

// ConfigurationError marks a malformed rule or suppression specification.
// It is fatal: the checker aborts before any class is evaluated, since
// rule semantics cannot be guaranteed.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid configuration: " + e.Reason
}

func configErrorf(format string, args ...interface{}) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// Config is the declarative rule and suppression document. Suppressions
// may be embedded alongside each rule (inheriting its id) or listed in the
// combined top-level table; the loader flattens both into one registry.
type Config struct {
	Rules        []Spec           `yaml:"rules"`
	Suppressions []suppress.Entry `yaml:"suppressions,omitempty"`
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, configErrorf("failed to read %s: %v", filename, err)
	}
	return ParseConfig(data)
}

// ParseConfig parses and validates a YAML configuration document.
func ParseConfig(data []byte) (*Config, error) {
	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, configErrorf("failed to parse: %v", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultConfig returns the built-in ruleset with no suppressions.
func DefaultConfig() *Config {
	return &Config{Rules: BuiltinRules()}
}

// Entries returns all suppression entries, flattening per-rule suppress
// lists into the combined table.
func (c *Config) Entries() []suppress.Entry {
	var entries []suppress.Entry
	entries = append(entries, c.Suppressions...)
	for _, spec := range c.Rules {
		for _, entry := range spec.Suppress {
			if entry.Rule == "" {
				entry.Rule = spec.ID
			}
			entries = append(entries, entry)
		}
	}
	return entries
}

// Validate checks the configuration before any evaluation starts.
func (c *Config) Validate() error {
	if len(c.Rules) == 0 {
		return configErrorf("no rules defined")
	}
	seen := map[string]bool{}
	for i, spec := range c.Rules {
		if spec.ID == "" {
			return configErrorf("rule[%d] has no id", i)
		}
		if seen[spec.ID] {
			return configErrorf("duplicate rule id %q", spec.ID)
		}
		seen[spec.ID] = true
		if !spec.Kind.Known() {
			return configErrorf("rule %q has unknown kind %q", spec.ID, spec.Kind)
		}
		if len(spec.Bases) == 0 {
			return configErrorf("rule %q targets no base classes", spec.ID)
		}
		if spec.Severity == "" {
			return configErrorf("rule %q has no severity", spec.ID)
		}
		if !spec.Severity.Known() || spec.Severity == model.SeverityInternal {
			return configErrorf("rule %q has unsupported severity %q", spec.ID, spec.Severity)
		}
		switch spec.Kind {
		case RequiredAttribute:
			if spec.Attribute == "" {
				return configErrorf("rule %q requires an attribute name", spec.ID)
			}
		case RequiredMethodPair:
			if len(spec.Pairs) == 0 {
				return configErrorf("rule %q defines no method pairs", spec.ID)
			}
			for j, pair := range spec.Pairs {
				if pair.Method == "" {
					return configErrorf("rule %q pair[%d] has no method name", spec.ID, j)
				}
			}
		case CallPairInvariant:
			if len(spec.OpenCalls) == 0 || len(spec.CloseCalls) == 0 {
				return configErrorf("rule %q requires open and close call names", spec.ID)
			}
		}
		for j, entry := range spec.Suppress {
			if entry.File == "" {
				return configErrorf("rule %q suppress[%d] has no file", spec.ID, j)
			}
		}
	}
	for i, entry := range c.Suppressions {
		if entry.Rule == "" {
			return configErrorf("suppression[%d] has no rule id", i)
		}
		if entry.File == "" {
			return configErrorf("suppression[%d] has no file", i)
		}
	}
	return nil
}

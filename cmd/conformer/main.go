package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/viant/conformer/checker"
	"github.com/viant/conformer/inspector/repository"
	"github.com/viant/conformer/report"
	"github.com/viant/conformer/rule"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitConfig = 2
)

// exitError carries the process exit status for a completed run.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// options holds the command line flags.
type options struct {
	Config        string
	Format        string
	Concurrency   int
	FailOnWarning bool
	Verbose       bool
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "conformer <location>",
		Short: "Static contract conformance checker for benchmark problem and application definitions",
		Long: `Conformer statically verifies that benchmark problem and application
classes obey their structural contract: required attributes are initialized,
paired lifecycle methods both appear and started workloads are released.
Violations may be suppressed per rule, file and class.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "rule and suppression configuration (default: built-in ruleset)")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "output format (text|json)")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", 0, "worker pool size (default: number of CPUs)")
	cmd.Flags().BoolVar(&opts.FailOnWarning, "fail-on-warning", false, "treat warnings as failures")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output on stderr")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *options, location string) error {
	emitter, err := report.NewEmitter(opts.Format)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return &exitError{code: exitConfig}
	}

	config := rule.DefaultConfig()
	if opts.Config != "" {
		if config, err = rule.LoadConfig(opts.Config); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			return &exitError{code: exitConfig}
		}
	}

	if opts.Verbose {
		if project, err := repository.New().DetectProject(location); err == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "project: %s (%s) root: %s\n", project.Name, project.Type, project.RootPath)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "rules: %d, suppressions: %d\n", len(config.Rules), len(config.Entries()))
	}

	service := checker.New(
		checker.WithConfig(config),
		checker.WithConcurrency(opts.Concurrency),
	)
	aReport, err := service.Check(cmd.Context(), location)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return &exitError{code: exitConfig}
	}

	output, err := emitter.Emit(aReport)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return &exitError{code: exitConfig}
	}
	if _, err := cmd.OutOrStdout().Write(output); err != nil {
		return err
	}

	if code := aReport.ExitCode(opts.FailOnWarning); code != exitOK {
		return &exitError{code: code}
	}
	return nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitConfig)
	}
}

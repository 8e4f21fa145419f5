package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/specialistvlad/artifactsmith/internal/app"
	"github.com/specialistvlad/artifactsmith/internal/generator"
	"github.com/specialistvlad/artifactsmith/internal/hcl_adapter"
	"github.com/specialistvlad/artifactsmith/internal/watch"
	"github.com/spf13/cobra"
)

// options collects the flags shared by every command.
type options struct {
	blueprints     []string
	workspace      string
	projectDir     string
	logLevel       string
	logFormat      string
	override       []string
	only           string
	keepUnreadable bool
	reportFormat   string
	debounce       time.Duration
}

// Execute runs the command line in args. Logs go to errW and reports to
// outW. Every returned error is an *ExitError.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	root := NewRootCommand(outW, errW)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	// Anything cobra rejects before a command runs is a usage problem.
	return usageError(err)
}

// NewRootCommand builds the artifactsmith command tree.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "artifactsmith",
		Short: "Scaffold and regenerate build artifacts from a blueprint",
		Long: `artifactsmith materializes a tree of generated build and configuration
files (ANT builds, property files, POM stand-ins) from an HCL blueprint and a
YAML workspace model.

Existing files are read back first so values edited by hand survive
regeneration. Newly scaffolded files are reported as hotspots.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := root.PersistentFlags()
	flags.StringSliceVarP(&opts.blueprints, "blueprint", "b", []string{"blueprint"}, "Blueprint .hcl file or directory (repeatable).")
	flags.StringVarP(&opts.workspace, "workspace", "w", "workspace.yaml", "Workspace model file.")
	flags.StringVar(&opts.projectDir, "project-dir", "", "Project directory; overrides project_dir from the workspace.")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Logging level: debug, info, warn or error.")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log output format: text or json.")
	flags.StringSliceVar(&opts.override, "override", nil, "Artifact kinds to regenerate from defaults, ignoring existing values.")
	flags.StringVar(&opts.only, "only", "", "Only materialize artifacts matching this glob, plus what they include.")
	flags.BoolVar(&opts.keepUnreadable, "keep-unreadable", false, "Leave existing files that cannot be parsed untouched.")
	flags.StringVar(&opts.reportFormat, "report-format", "text", "Report format: text or json.")

	root.AddCommand(
		newConfigureCommand(opts, outW, errW),
		newPlanCommand(opts, outW, errW),
		newWatchCommand(opts, outW, errW),
	)
	return root
}

func newConfigureCommand(opts *options, outW, errW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Run one configure pass and write the artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOnce(cmd.Context(), opts, false, outW, errW)
		},
	}
}

func newPlanCommand(opts *options, outW, errW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Resolve every artifact and report what configure would do, without writing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOnce(cmd.Context(), opts, true, outW, errW)
		},
	}
}

func newWatchCommand(opts *options, outW, errW io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Configure, then re-run whenever the blueprint, templates or workspace change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config(false)
			if err != nil {
				return err
			}
			a := app.NewApp(errW, cfg, hcl_adapter.NewLoader())
			err = a.Watch(cmd.Context(), watch.Options{Debounce: opts.debounce}, func(r *generator.Report) {
				if err := app.WriteReport(outW, r, cfg.ReportFormat); err != nil {
					fmt.Fprintln(errW, err)
				}
			})
			if err != nil {
				return &ExitError{Code: ExitFailure, Message: err.Error()}
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&opts.debounce, "debounce", watch.DefaultDebounce, "Quiet period before re-running after a change.")
	return cmd
}

// config turns flags into a validated app.Config.
func (o *options) config(dryRun bool) (*app.Config, error) {
	cfg, err := app.NewConfig(app.Config{
		BlueprintPaths: o.blueprints,
		WorkspacePath:  o.workspace,
		ProjectDir:     o.projectDir,
		LogLevel:       o.logLevel,
		LogFormat:      o.logFormat,
		OverrideKinds:  o.override,
		Only:           o.only,
		DryRun:         dryRun,
		KeepUnreadable: o.keepUnreadable,
		ReportFormat:   o.reportFormat,
	})
	if err != nil {
		return nil, usageError(err)
	}
	return cfg, nil
}

func runOnce(ctx context.Context, opts *options, dryRun bool, outW, errW io.Writer) error {
	cfg, err := opts.config(dryRun)
	if err != nil {
		return err
	}

	report, err := app.NewApp(errW, cfg, hcl_adapter.NewLoader()).Run(ctx)
	if err != nil {
		return &ExitError{Code: ExitFailure, Message: err.Error()}
	}
	if err := app.WriteReport(outW, report, cfg.ReportFormat); err != nil {
		return &ExitError{Code: ExitFailure, Message: err.Error()}
	}
	if report.HasFailures() {
		return &ExitError{
			Code:    ExitArtifactsFailed,
			Message: fmt.Sprintf("%d of %d artifacts failed", len(report.Failed()), len(report.Entries)),
		}
	}
	return nil
}

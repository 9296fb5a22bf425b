package cli

import (
	"context"
	"errors"
	"io"

	"github.com/specialistvlad/psetgo/internal/app"
	"github.com/spf13/cobra"
)

// Exit codes returned by the psetgo binary.
const (
	ExitOK     = 0
	ExitFailed = 1 // a document failed to load or validate
	ExitUsage  = 2 // bad flags or arguments
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

type options struct {
	modulesPaths []string
	noBuiltins   bool
	logLevel     string
	logFormat    string
	output       string
}

// Execute runs the command line given by args. Results are written to outW
// and logs to errW. Every failure is returned as an *ExitError; help output
// returns nil.
func Execute(ctx context.Context, outW, errW io.Writer, args []string) error {
	if args == nil {
		// cobra falls back to os.Args for nil.
		args = []string{}
	}
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
	return &ExitError{Code: ExitUsage, Message: err.Error()}
}

// NewRootCommand builds the psetgo command tree.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	opts := &options{}
	var application *app.App

	root := &cobra.Command{
		Use:   "psetgo",
		Short: "Validate and resolve parameter-set configurations",
		Long: `psetgo loads parameter-set configuration documents (HCL or YAML),
validates them against a registry of module types and prints the
resolved execution plan.

A document is a single file or a directory whose files are merged.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.NewConfig(app.Config{
				ModulesPaths: opts.modulesPaths,
				NoBuiltins:   opts.noBuiltins,
				LogLevel:     opts.logLevel,
				LogFormat:    opts.logFormat,
				Output:       opts.output,
			})
			if err != nil {
				return &ExitError{Code: ExitUsage, Message: err.Error()}
			}
			application, err = app.NewApp(cmd.Context(), outW, errW, cfg)
			if err != nil {
				return &ExitError{Code: ExitFailed, Message: err.Error()}
			}
			return nil
		},
	}
	root.SetOut(outW)
	root.SetErr(errW)

	flags := root.PersistentFlags()
	flags.StringSliceVar(&opts.modulesPaths, "modules-path", nil, "Directory of extra module type manifests (repeatable).")
	flags.BoolVar(&opts.noBuiltins, "no-builtins", false, "Do not load the built-in module types.")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Logging level: debug, info, warn or error.")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log output format: text or json.")
	flags.StringVarP(&opts.output, "output", "o", app.OutputText, "Plan output format: text or json.")

	appFn := func() *app.App { return application }
	root.AddCommand(
		newValidateCommand(appFn),
		newPlanCommand(appFn),
		newDumpCommand(appFn),
		newModulesCommand(appFn),
		newWatchCommand(appFn),
	)
	return root
}

// failed converts an application error into an exit error.
func failed(err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: ExitFailed, Message: err.Error()}
}

package cli

import (
	"github.com/specialistvlad/psetgo/internal/app"
	"github.com/spf13/cobra"
)

func newValidateCommand(appFn func() *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate PATH...",
		Short: "Validate one or more documents",
		Long:  `Validates every document concurrently and prints a summary or the diagnostics for each. Exits 1 if any document fails.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return failed(appFn().RunValidate(cmd.Context(), args))
		},
	}
}

func newPlanCommand(appFn func() *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "plan PATH",
		Short: "Print the resolved plan of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return failed(appFn().RunPlan(cmd.Context(), args[0]))
		},
	}
}

func newDumpCommand(appFn func() *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "dump PATH",
		Short: "Print a document as fully expanded HCL",
		Long:  `Prints the resolved document as HCL with every default written out. The dump loads back to a plan with the same ID.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return failed(appFn().RunDump(cmd.Context(), args[0]))
		},
	}
}

func newModulesCommand(appFn func() *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "modules [TYPE...]",
		Short: "List module types, or describe the named ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			return failed(appFn().RunModules(cmd.Context(), args...))
		},
	}
}

func newWatchCommand(appFn func() *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch PATH",
		Short: "Re-validate a document whenever its files change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return failed(appFn().RunWatch(cmd.Context(), args[0]))
		},
	}
}

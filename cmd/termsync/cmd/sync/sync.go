// Package sync implements the sync and compare commands.
package sync

import (
	stdctx "context"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/termsync"
	"github.com/agentstation/termsync/cmd/termsync/context"
	"github.com/agentstation/termsync/internal/cmd/output"
	"github.com/agentstation/termsync/pkg/errors"
	"github.com/agentstation/termsync/pkg/logging"
	"github.com/agentstation/termsync/pkg/sheet"
)

// Options holds the per-run settings of sync and compare.
type Options struct {
	Path   string
	Sheet  string
	DryRun bool
}

// NewCommand creates the sync command.
func NewCommand(appCtx context.Context) *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:     "sync <file.xlsx>",
		GroupID: "core",
		Short:   "Create payment terms missing from QuickBooks",
		Long: `Sync reads payment terms from a spreadsheet, compares them by id with the
standard terms in QuickBooks and creates every term QuickBooks lacks.

The worksheet must have a header row, the term name in column A and its id
in column B. The id is stored in the StdDiscountDays field of the term.
Terms that exist under a different name are reported, never renamed.`,
		Example: `  termsync sync terms.xlsx                 # Create missing terms
  termsync sync terms.xlsx --dry-run       # Report without creating
  termsync sync terms.xlsx --sheet Terms   # Read another worksheet
  termsync sync terms.xlsx -o json         # Machine-readable report`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Path = args[0]
			return Execute(cmd.Context(), appCtx, *opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "compare only, do not create terms")
	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "worksheet to read (default from config, else payment_terms)")

	return cmd
}

// NewCompareCommand creates the compare command, a sync that never writes.
func NewCompareCommand(appCtx context.Context) *cobra.Command {
	opts := &Options{DryRun: true}

	cmd := &cobra.Command{
		Use:     "compare <file.xlsx>",
		GroupID: "core",
		Short:   "Compare spreadsheet terms with QuickBooks",
		Long: `Compare reports which spreadsheet terms match QuickBooks, which differ only
by name and which exist on one side only. Nothing is created.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Path = args[0]
			return Execute(cmd.Context(), appCtx, *opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "worksheet to read (default from config, else payment_terms)")

	return cmd
}

// Execute reads the spreadsheet, runs one sync pass and writes the report to w.
func Execute(ctx stdctx.Context, appCtx context.Context, opts Options, w io.Writer) error {
	if ctx == nil {
		ctx = stdctx.Background()
	}
	if opts.Sheet == "" {
		opts.Sheet = appCtx.Sheet()
	}

	format, err := output.ParseFormat(appCtx.OutputFormat())
	if err != nil {
		return err
	}
	if format == "" {
		format = output.DetectFormat("")
	}

	logger := appCtx.Logger()
	ctx = logging.WithSheet(logging.WithLogger(ctx, logger), opts.Path, opts.Sheet)

	source, err := sheet.Read(opts.Path, sheet.WithSheet(opts.Sheet), sheet.WithLogger(logging.Ctx(ctx)))
	if err != nil {
		return err
	}
	logging.Ctx(ctx).Info().Int("terms", len(source)).Msg("Read spreadsheet")

	synchronizer, err := appCtx.Synchronizer(termsync.WithDryRun(opts.DryRun), termsync.WithLogger(logging.Ctx(ctx)))
	if err != nil {
		return err
	}

	result, err := synchronizer.Synchronize(ctx, source)
	if err != nil {
		if errors.IsEmptySource(err) {
			return errors.NewEmptySourceError(opts.Path)
		}
		return err
	}

	return output.Report(w, format, result)
}

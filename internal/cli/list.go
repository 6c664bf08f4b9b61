package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/thesavant42/platewatch/internal/api"
	"github.com/thesavant42/platewatch/internal/auth"
	"github.com/thesavant42/platewatch/internal/listview"
	"github.com/thesavant42/platewatch/internal/models"
	"github.com/thesavant42/platewatch/internal/ui"
)

// Output formats of the list command
const (
	FormatTable    = "table"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
)

type listOptions struct {
	region    string
	startDate string
	endDate   string
	page      int
	format    string
	all       bool
}

func (r *RootCommand) newListCommand() *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list [url]",
		Short: "Print one page of sightings",
		Long: `Fetch the session's sightings and print the page selected by the list URL
and flags. Flags are applied on top of the state carried by the URL, in the
same way the interactive browser applies them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runList(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.region, "region", "", "Region substring, case-insensitive")
	flags.StringVar(&opts.startDate, "start-date", "", "Earliest sighting date (YYYY-MM-DD)")
	flags.StringVar(&opts.endDate, "end-date", "", "Latest sighting date (YYYY-MM-DD)")
	flags.IntVar(&opts.page, "page", 0, "Page to print")
	flags.StringVar(&opts.format, "format", FormatTable, "Output format: table, csv or markdown")
	flags.BoolVar(&opts.all, "all", false, "Print every matching sighting instead of one page (csv and markdown)")

	return cmd
}

func (r *RootCommand) runList(cmd *cobra.Command, args []string, opts listOptions) error {
	switch opts.format {
	case FormatTable, FormatCSV, FormatMarkdown:
	default:
		return fmt.Errorf("unknown format %q: use table, csv or markdown", opts.format)
	}

	logger, closer := r.logger("")
	defer closer.Close()
	logger.SetOutput(r.stderr)

	addr, err := r.address(args)
	if err != nil {
		return err
	}
	ctrl := r.controller(addr, logger)

	// Flags act through the same actions as the browser
	flags := cmd.Flags()
	if flags.Changed("region") {
		ctrl.SetFilterField(listview.FilterRegion, opts.region)
	}
	if flags.Changed("start-date") && !ctrl.SetFilterField(listview.FilterStartDate, opts.startDate) {
		return fmt.Errorf("invalid --start-date %q: use YYYY-MM-DD", opts.startDate)
	}
	if flags.Changed("end-date") && !ctrl.SetFilterField(listview.FilterEndDate, opts.endDate) {
		return fmt.Errorf("invalid --end-date %q: use YYYY-MM-DD", opts.endDate)
	}
	if flags.Changed("page") {
		ctrl.GoToPage(opts.page)
	}

	client, err := r.client(logger, auth.Resolve(r.config.SessionToken))
	if err != nil {
		return err
	}

	ticket := ctrl.BeginFetch()
	var records []models.Sighting
	var fetchErr error
	err = r.spin("Fetching sightings...", func() {
		records, fetchErr = client.FetchSightings(cmd.Context())
	})
	if err != nil {
		return err
	}
	ctrl.CompleteFetch(ticket, records, fetchErr)
	if fetchErr != nil {
		return errors.New(api.UserMessage(fetchErr))
	}

	return r.printList(r.stdout, ctrl, opts)
}

func (r *RootCommand) printList(w io.Writer, ctrl *listview.Controller, opts listOptions) error {
	view := ctrl.View()
	zone := ctrl.Zone()

	records, offset := view.Records, view.Offset
	if opts.all {
		records, offset = ctrl.Filtered(), 0
	}

	switch opts.format {
	case FormatCSV:
		return ui.WriteSightingsCSV(w, records, offset, zone)
	case FormatMarkdown:
		_, err := io.WriteString(w, ui.GenerateMarkdownTable(records, offset, zone))
		return err
	default:
		ui.PrintSightingsTable(w, view, zone, ctrl.Link())
		return nil
	}
}

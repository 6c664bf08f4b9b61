package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/thesavant42/platewatch/internal/api"
	"github.com/thesavant42/platewatch/internal/auth"
	"github.com/thesavant42/platewatch/internal/config"
	"github.com/thesavant42/platewatch/internal/listview"
	"github.com/thesavant42/platewatch/internal/logging"
	"github.com/thesavant42/platewatch/internal/ui"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	config *config.Config

	stdout io.Writer
	stderr io.Writer

	// spin runs a blocking action with progress feedback
	spin func(title string, action func()) error
	// promptSession asks for a token when none is configured
	promptSession func() (string, error)
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(cfg *config.Config) *RootCommand {
	root := &RootCommand{
		config:        cfg,
		stdout:        os.Stdout,
		stderr:        os.Stderr,
		spin:          ui.RunWithSpinner,
		promptSession: ui.PromptForSessionToken,
	}

	root.cmd = &cobra.Command{
		Use:   "platewatch",
		Short: "Browse vehicle plate sightings",
		Long: `platewatch lists the plate sightings recorded for your session.

Filter by region and date range, page through the results, and share the
current view as a link. The same link opened with "platewatch view <url>"
restores the exact filters and page.

EXAMPLES:
  platewatch view                                        # Interactive browser
  platewatch view "http://localhost:3000/list?region=jakarta&page=2"
  platewatch list --region bandung --start-date 2021-11-01
  platewatch list --format csv --all > sightings.csv
  platewatch serve --seed 200 --token dev-token          # Local development backend

CONFIGURATION:
  Command-line flags > environment variables > .env file > defaults

    PLATEWATCH_BACKEND_URL      Backend base URL (default: http://localhost:8080)
    PLATEWATCH_VIEW_URL         Base of shareable list links (default: http://localhost:3000/list)
    PLATEWATCH_SESSION_TOKEN    Session token
    PLATEWATCH_PAGE_SIZE        Records per page (default: 50)
    PLATEWATCH_TIMEZONE         Zone date filters resolve in (default: UTC)
    PLATEWATCH_LOG_FILE         Log file used by the browser (default: platewatch.log)
    PLATEWATCH_DEBUG            Debug logging (default: false)
    PLATEWATCH_HTTP_TIMEOUT     Request timeout (default: 30s)
    PLATEWATCH_LISTEN_ADDR      serve: listen address (default: :8080)
    PLATEWATCH_DATABASE_URL     serve: sqlite path or postgres:// URL
    PLATEWATCH_SEED_COUNT       serve: sample sightings to provision (default: 200)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Apply configuration overrides from flags before any command runs
			return root.applyFlags(cmd)
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// ExecuteContext runs the root command; ctx is cancelled on shutdown signals
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// SetArgs replaces os.Args for the next Execute
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// SetOutput redirects command output
func (r *RootCommand) SetOutput(stdout, stderr io.Writer) {
	r.stdout = stdout
	r.stderr = stderr
	r.cmd.SetOut(stdout)
	r.cmd.SetErr(stderr)
}

func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()
	flags.Bool("debug", false, "Enable debug logging (overrides PLATEWATCH_DEBUG)")
	flags.String("backend", "", "Backend base URL (overrides PLATEWATCH_BACKEND_URL)")
	flags.String("session", "", "Session token (overrides PLATEWATCH_SESSION_TOKEN)")
	flags.Int("page-size", 0, "Records per page (overrides PLATEWATCH_PAGE_SIZE)")
}

func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.newViewCommand(),
		r.newListCommand(),
		r.newServeCommand(),
	)
}

// applyFlags overlays every flag the user actually set onto the config
func (r *RootCommand) applyFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	var o config.Overrides

	if flags.Changed("debug") {
		v, _ := flags.GetBool("debug")
		o.Debug = &v
	}
	if flags.Changed("backend") {
		v, _ := flags.GetString("backend")
		o.BackendURL = &v
	}
	if flags.Changed("session") {
		v, _ := flags.GetString("session")
		o.SessionToken = &v
	}
	if flags.Changed("page-size") {
		v, _ := flags.GetInt("page-size")
		o.PageSize = &v
	}
	if flags.Changed("listen") {
		v, _ := flags.GetString("listen")
		o.ListenAddr = &v
	}
	if flags.Changed("db") {
		v, _ := flags.GetString("db")
		o.DatabaseURL = &v
	}
	if flags.Changed("seed") {
		v, _ := flags.GetInt("seed")
		o.SeedCount = &v
	}

	r.config.Apply(o)
	if err := r.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// address resolves the list link the command starts from. A positional URL
// wins over the configured view URL and carries the initial view state.
func (r *RootCommand) address(args []string) (*listview.Address, error) {
	raw := r.config.ViewURL
	if len(args) > 0 {
		raw = args[0]
	}
	addr, err := listview.NewAddress(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid list URL %q: %w", raw, err)
	}
	return addr, nil
}

// client creates the backend client for the resolved session
func (r *RootCommand) client(logger *log.Logger, session auth.Session) (*api.Client, error) {
	client, err := api.NewClient(r.config.BackendURL, r.config.HTTPTimeout, logger)
	if err != nil {
		return nil, err
	}
	client.SetSession(session)
	return client, nil
}

// controller creates the list state controller over addr
func (r *RootCommand) controller(addr *listview.Address, logger *log.Logger, opts ...listview.Option) *listview.Controller {
	base := []listview.Option{
		listview.WithPageSize(r.config.PageSize),
		listview.WithTimeZone(r.config.Location()),
		listview.WithLocation(addr),
		listview.WithLogger(logger),
	}
	return listview.New(addr.Query(), append(base, opts...)...)
}

func (r *RootCommand) logger(file string) (*log.Logger, io.Closer) {
	return logging.New(logging.Options{
		File:   file,
		Debug:  r.config.Debug,
		Prefix: "platewatch",
	})
}

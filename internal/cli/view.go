package cli

import (
	"github.com/spf13/cobra"
	"github.com/thesavant42/platewatch/internal/auth"
	"github.com/thesavant42/platewatch/internal/listview"
	"github.com/thesavant42/platewatch/internal/ui"
)

func (r *RootCommand) newViewCommand() *cobra.Command {
	var anonymous bool

	cmd := &cobra.Command{
		Use:   "view [url]",
		Short: "Browse sightings interactively",
		Long: `Open the interactive sightings browser. When a list URL is given, its
region, startDate, endDate and page parameters become the initial view.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := r.address(args)
			if err != nil {
				return err
			}

			session := auth.Resolve(r.config.SessionToken)
			if session.IsAnonymous() && !anonymous {
				token, err := r.promptSession()
				if err != nil {
					return err
				}
				session = auth.New(token)
			}

			// The browser owns the terminal, so logs go to the log file
			logger, closer := r.logger(r.config.LogFile)
			defer closer.Close()

			client, err := r.client(logger, session)
			if err != nil {
				return err
			}
			ctrl := r.controller(addr, logger, listview.WithNavigator(ui.NewBrowserNavigator(addr, logger)))

			logger.Info("Starting browser", "backend", r.config.BackendURL, "session", session.Key(), "link", ctrl.Link())
			return ui.RunSightingsBrowser(cmd.Context(), client, ctrl, logger)
		},
	}

	cmd.Flags().BoolVar(&anonymous, "anonymous", false, "Skip the session prompt when no token is configured")
	return cmd
}

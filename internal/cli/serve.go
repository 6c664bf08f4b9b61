package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thesavant42/platewatch/internal/db"
	"github.com/thesavant42/platewatch/internal/server"
)

// Defaults for the session provisioned by serve
const (
	DefaultDevToken = "dev-token"
	DefaultDevUID   = "dev-user"
)

func (r *RootCommand) newServeCommand() *cobra.Command {
	var token, uid string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the development backend",
		Long: `Serve GET /get-list, /get-list/{id} and /whoami from a local sqlite file or
a PostgreSQL database. On start the given session is provisioned and, when
the store is empty for it, filled with sample sightings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			logger, closer := r.logger("")
			defer closer.Close()
			logger.SetOutput(r.stderr)

			store, err := db.Open(ctx, r.config.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()

			if token == "" {
				token = r.config.SessionToken
			}
			if token == "" {
				token = DefaultDevToken
			}

			existing, err := store.ListSightings(ctx, uid)
			if err != nil {
				return err
			}
			seed := r.config.SeedCount
			if len(existing) > 0 {
				seed = 0
			}
			n, err := db.Seed(ctx, store, token, uid, seed)
			if err != nil {
				return fmt.Errorf("failed to seed database: %w", err)
			}
			logger.Info("Session provisioned", "uid", uid, "existing", len(existing), "seeded", n)

			return server.New(store, logger).ListenAndServe(ctx, r.config.ListenAddr)
		},
	}

	flags := cmd.Flags()
	flags.Int("seed", 0, "Sample sightings to insert for the session (overrides PLATEWATCH_SEED_COUNT)")
	flags.String("listen", "", "Listen address (overrides PLATEWATCH_LISTEN_ADDR)")
	flags.String("db", "", "sqlite path or postgres:// URL (overrides PLATEWATCH_DATABASE_URL)")
	flags.StringVar(&token, "token", "", "Session token to provision (default: --session or "+DefaultDevToken+")")
	flags.StringVar(&uid, "uid", DefaultDevUID, "User the provisioned session belongs to")

	return cmd
}

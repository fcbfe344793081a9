package command

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/coursedesk/coursedesk/internal/app"
	"github.com/coursedesk/coursedesk/internal/sec"
	"github.com/coursedesk/coursedesk/internal/server"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "serve the users and courses REST API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			cfg, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			grp, ctx := errgroup.WithContext(cmd.Context())

			listener, err := server.Listen(ctx, cfg.Address)
			if err != nil {
				return err
			}

			hasher := sec.NewHasher(0)
			api := app.New(cfg, logger, store, hasher)
			srv := &http.Server{Handler: api} //nolint:gosec // Serve() sets timeouts

			logger.InfoContext(ctx,
				"starting API server...",
				slog.String("address", listener.Addr().String()),
			)
			server.Serve(ctx, grp, srv, listener, server.ShutdownTimeout)
			return grp.Wait()
		},
	}
}

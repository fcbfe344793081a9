package command

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/coursedesk/coursedesk/internal/app/devdata"
	"github.com/coursedesk/coursedesk/internal/sec"
)

func seedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with sample users and courses",
		Long: "Generates sample users and courses for local development. Every generated\n" +
			"user's password is \"" + devdata.Password + "\". Set COURSEDESK_SEED for a\n" +
			"deterministic corpus. Seeding an already-populated database is safe.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			_, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			seed := devdata.Seed()
			if err := devdata.Populate(cmd.Context(), store, sec.NewHasher(0), seed); err != nil {
				return err
			}
			logger.InfoContext(cmd.Context(), "seeded sample data", slog.Uint64("seed", seed))
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitrine/storefront/internal/core/domain"
	"github.com/vitrine/storefront/internal/core/ports"
	"github.com/vitrine/storefront/internal/core/service"
	"github.com/vitrine/storefront/internal/infrastructure/config"
	"github.com/vitrine/storefront/internal/infrastructure/db/postgres"
	"github.com/vitrine/storefront/pkg/logger"
)

var staffInput ports.RegisterInput

// createstaff goes through the normal registration rules. Staff accounts are
// not mirrored into the external users collection.
var createStaffCmd = &cobra.Command{
	Use:   "createstaff",
	Short: "Create a staff account with access to the admin console",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		pg, err := config.LoadPostgres(ctx)
		if err != nil {
			return err
		}
		pool, err := postgres.Connect(ctx, postgres.Config{URL: pg.URL})
		if err != nil {
			return err
		}
		defer pool.Close()

		log := logger.Init(logger.Options{Level: "warn", Pretty: true})
		auth := service.NewAuthService(postgres.NewAccountRepository(pool), nil, domain.RedirectTargets{}, log)

		in := staffInput
		in.PasswordConfirm = in.Password
		in.IsStaff = true
		account, err := auth.Register(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "staff account %q created (id %d)\n", account.Username, account.ID)
		return nil
	},
}

func init() {
	createStaffCmd.Flags().StringVar(&staffInput.Username, "username", "", "username")
	createStaffCmd.Flags().StringVar(&staffInput.Email, "email", "", "email address")
	createStaffCmd.Flags().StringVar(&staffInput.Password, "password", "", "password")
	for _, name := range []string{"username", "email", "password"} {
		_ = createStaffCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(createStaffCmd)
}

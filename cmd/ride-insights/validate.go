package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"ride-insights/internal/auth"
	"ride-insights/internal/catalog"
	"ride-insights/internal/model"
	"ride-insights/internal/repository"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the store schema and print row counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB()
		if err != nil {
			return err
		}
		repo := repository.NewSnapshotRepository(database)
		if err := repo.Verify(cmd.Context(), catalog.Sources(catalog.Entries()...)...); err != nil {
			return err
		}
		counts, err := repo.Counts(cmd.Context())
		if err != nil {
			return err
		}
		for _, source := range []model.Source{model.SourceRides, model.SourceCustomers, model.SourceDaily} {
			fmt.Fprintf(cmd.OutOrStdout(), "%-18s %d rows\n", source, counts[source])
		}
		fmt.Fprintln(cmd.OutOrStdout(), "schema ok")
		return nil
	},
}

var tokenFlags struct {
	role string
	ttl  time.Duration
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an access token signed with JWT_ACCESS_SECRET",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !current.cfg.AuthEnabled() {
			return fmt.Errorf("JWT_ACCESS_SECRET is not set")
		}
		role := model.Role(tokenFlags.role)
		if !(model.Principal{Role: role}).CanReadReports() {
			return fmt.Errorf("unknown role %q", tokenFlags.role)
		}
		token, err := auth.NewParser(current.cfg.Auth.AccessSecret).Issue(uuid.New(), role, tokenFlags.ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenFlags.role, "role", string(model.RoleAnalyst), "admin, analyst or viewer")
	tokenCmd.Flags().DurationVar(&tokenFlags.ttl, "ttl", 24*time.Hour, "Token lifetime")

	rootCmd.AddCommand(validateCmd, tokenCmd)
}

package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"ride-insights/internal/config"
	"ride-insights/internal/db"
	"ride-insights/internal/logger"
	"ride-insights/internal/repository"
	"ride-insights/internal/service"
)

// app holds what every subcommand needs. It is filled in PersistentPreRunE.
type app struct {
	cfg *config.Config
	log zerolog.Logger
	db  *gorm.DB
}

var current app

var rootCmd = &cobra.Command{
	Use:           "ride-insights",
	Short:         "Ride bookings ingestion and reporting",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dsn, _ := cmd.Flags().GetString("db"); dsn != "" {
			cfg.DB.DSN = dsn
		}
		current.cfg = cfg
		current.log = logger.New(cfg.Environment, cfg.LogLevel)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if current.db == nil {
			return nil
		}
		sqlDB, err := current.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Override DB_DSN")
}

func openDB() (*gorm.DB, error) {
	if current.db != nil {
		return current.db, nil
	}
	database, err := db.New(current.cfg, current.log)
	if err != nil {
		return nil, err
	}
	current.db = database
	return database, nil
}

func reportService() (*service.ReportService, error) {
	database, err := openDB()
	if err != nil {
		return nil, err
	}
	return service.NewReportService(repository.NewSnapshotRepository(database), current.log), nil
}

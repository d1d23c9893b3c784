package cmd

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vibast-solutions/ms-go-payment-notifier/app/repository"
	"github.com/vibast-solutions/ms-go-payment-notifier/config"
)

const migrateTimeout = time.Minute

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the MySQL tables used by the service",
	Run:   runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(_ *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}
	if cfg.Store.Driver != config.StoreDriverMySQL {
		logrus.WithField("driver", cfg.Store.Driver).Fatal("migrate requires STORE_DRIVER=mysql")
	}

	db := mustOpenMySQL(cfg)
	defer func() {
		if err := db.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close database")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	if !runJob("migrate", func() error { return repository.Migrate(ctx, db) }) {
		logrus.Fatal("Migration failed")
	}
}

func runJob(name string, fn func() error) bool {
	start := time.Now()
	err := fn()
	latency := time.Since(start)
	if err != nil {
		logrus.WithError(err).WithField("job", name).WithField("latency", latency.String()).Error("job_failed")
		return false
	}
	logrus.WithField("job", name).WithField("latency", latency.String()).Info("job_completed")
	return true
}

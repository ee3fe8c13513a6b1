package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"techscreen-backend/initializers"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		initializers.InitLogger(conf.App.LogLevel)
		conn, err := initializers.InitDBForMigration(conf)
		if err != nil {
			return err
		}
		if sqlDB, err := conn.DB(); err == nil {
			defer sqlDB.Close()
		}
		log.Info("database schema is up to date")
		return nil
	},
}

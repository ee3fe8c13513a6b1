package initializers

import (
	"gorm.io/gorm"
	"techscreen-backend/config"
	"techscreen-backend/db"
)

func dbSettings(conf *config.Configuration, migrate bool) db.Settings {
	return db.Settings{
		Driver:     conf.Database.Driver,
		Host:       conf.Database.Host,
		Port:       conf.Database.Port,
		Name:       conf.Database.Name,
		User:       conf.Database.User,
		Password:   conf.Database.Password,
		SqlitePath: conf.Database.SqlitePath,
		DebugMode:  boolValue(conf.Database.DebugMode),
		Migrate:    migrate,
	}
}

func InitDBConnection(conf *config.Configuration) (*gorm.DB, error) {
	return db.Connect(dbSettings(conf, boolValue(conf.Database.MigrateOnStart)))
}

// InitDBForMigration connects and always runs the migrations.
func InitDBForMigration(conf *config.Configuration) (*gorm.DB, error) {
	return db.Connect(dbSettings(conf, true))
}

func boolValue(v *bool) bool {
	return v != nil && *v
}

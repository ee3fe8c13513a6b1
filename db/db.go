package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	gorm_logrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSqlite   = "sqlite"
)

type Settings struct {
	Driver     string
	Host       string
	Port       string
	Name       string
	User       string
	Password   string
	SqlitePath string
	DebugMode  bool
	Migrate    bool
}

func dialector(s Settings) (gorm.Dialector, error) {
	switch s.Driver {
	case DriverPostgres, "":
		dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable password=%s", s.Host, s.Port, s.User, s.Name, s.Password)
		return postgres.Open(dsn), nil
	case DriverMySQL:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC", s.User, s.Password, s.Host, s.Port, s.Name)
		return mysql.Open(dsn), nil
	case DriverSqlite:
		return sqlite.Open(s.SqlitePath), nil
	}
	return nil, errors.Errorf("unsupported database driver %q", s.Driver)
}

func Connect(s Settings) (*gorm.DB, error) {
	dial, err := dialector(s)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dial, &gorm.Config{
		Logger: gorm_logrus.New(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "database connection failed")
	}
	if s.DebugMode {
		db.Logger = logger.Default.LogMode(logger.Info)
		db = db.Debug()
	}
	if s.Migrate {
		if err = AutoMigrateDB(db); err != nil {
			return nil, err
		}
	}
	log.WithField("driver", s.Driver).Info("connected to database")
	return db, nil
}

func PingDB(DB *gorm.DB) error {
	db, err := DB.DB()
	if err != nil {
		return err
	}
	if err = db.Ping(); err != nil {
		return err
	}
	return nil
}

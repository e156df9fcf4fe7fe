package gormstore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	// DriverNameSQLite identifies the pure-Go SQLite driver.
	DriverNameSQLite = "sqlite"
	// DriverNamePostgres identifies the PostgreSQL driver.
	DriverNamePostgres = "postgres"
)

var (
	// ErrMissingDriverName indicates the driver name configuration was omitted.
	ErrMissingDriverName = errors.New("gormstore: missing database driver name")
	// ErrUnsupportedDriver indicates the provided driver is not supported.
	ErrUnsupportedDriver = errors.New("gormstore: unsupported database driver")
	// ErrMissingDataSourceName indicates the data source name configuration was omitted.
	ErrMissingDataSourceName = errors.New("gormstore: missing database data source name")
)

type databaseOpener func(dsn string) gorm.Dialector

var databaseOpeners = map[string]databaseOpener{
	DriverNameSQLite:   sqlite.Open,
	DriverNamePostgres: postgres.Open,
}

// Config captures database connection configuration.
type Config struct {
	DriverName     string
	DataSourceName string
	// Verbose keeps gorm's default SQL logger; otherwise it is silenced.
	Verbose bool
}

// OpenDatabase opens a database connection using the configured driver.
func OpenDatabase(cfg Config) (*gorm.DB, error) {
	driver := strings.TrimSpace(cfg.DriverName)
	if driver == "" {
		return nil, ErrMissingDriverName
	}
	opener, ok := databaseOpeners[driver]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, driver)
	}
	dsn := strings.TrimSpace(cfg.DataSourceName)
	if dsn == "" {
		return nil, ErrMissingDataSourceName
	}
	gormConfig := &gorm.Config{}
	if !cfg.Verbose {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}
	db, err := gorm.Open(opener(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("gormstore: open %s database: %w", driver, err)
	}
	return db, nil
}

// AutoMigrate creates or updates the dashboard tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&DashboardRecord{}, &TabRecord{}, &TileRecord{})
}

package database

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"blackLedger/models"

	"github.com/xo/dburl"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const mysqlParams = "charset=utf8mb4&parseTime=True&loc=Local"

var ErrUnsupportedDatabase = errors.New("unsupported database url")

// Target is a parsed DATABASE_URL.
type Target struct {
	Driver string
	DSN    string
}

// Resolve maps a database url onto one of the supported gorm drivers.
//
//	sqlite:instance/users.db            → sqlite3
//	mysql://u:p@host/db                 → mysql
//	sqlserver://u:p@host?database=db    → sqlserver
func Resolve(raw string) (Target, error) {
	u, err := dburl.Parse(raw)
	if err != nil {
		return Target{}, fmt.Errorf("%w: %v", ErrUnsupportedDatabase, err)
	}

	switch u.UnaliasedDriver {
	case "mysql":
		dsn := u.DSN
		if strings.Contains(dsn, "?") {
			dsn += "&" + mysqlParams
		} else {
			dsn += "?" + mysqlParams
		}
		return Target{Driver: "mysql", DSN: dsn}, nil
	case "sqlite3":
		return Target{Driver: "sqlite3", DSN: u.DSN}, nil
	case "sqlserver":
		return Target{Driver: "sqlserver", DSN: u.DSN}, nil
	default:
		return Target{}, fmt.Errorf("%w: driver %q", ErrUnsupportedDatabase, u.UnaliasedDriver)
	}
}

func (t Target) dialector() gorm.Dialector {
	switch t.Driver {
	case "mysql":
		return mysql.Open(t.DSN)
	case "sqlserver":
		return sqlserver.Open(t.DSN)
	default:
		return sqlite.Open(t.DSN)
	}
}

// Open connects, sizes the pool for the driver and migrates every model.
func Open(raw string) (*gorm.DB, error) {
	target, err := Resolve(raw)
	if err != nil {
		return nil, err
	}

	if target.Driver == "sqlite3" && !strings.HasPrefix(target.DSN, ":memory:") {
		dir := filepath.Dir(strings.SplitN(target.DSN, "?", 2)[0])
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating sqlite directory: %w", err)
		}
	}

	db, err := gorm.Open(target.dialector(), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	if target.Driver == "sqlite3" {
		// sqlite allows one writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Printf("Connected to %s database", target.Driver)
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Pick{},
		&models.BlackLedgerPick{},
		&models.LockedPick{},
		&models.ErrorLog{},
	)
	if err != nil {
		return fmt.Errorf("error migrating database: %w", err)
	}
	return nil
}

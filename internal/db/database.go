package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"farmgate/internal/types"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// ReadDB is a separate read-only connection pool for SQLite so storefront
// reads do not contend with admin saves on the single write connection.
// For MySQL and PostgreSQL this is the same as DB.
var ReadDB *gorm.DB

// NewDB opens the settings database. The driver is detected from the DSN:
// postgres:// or key=value DSNs select PostgreSQL, @tcp( selects MySQL,
// anything else is treated as a SQLite path.
func NewDB(configManager types.ConfigManager) (*gorm.DB, error) {
	dbConfig := configManager.GetDatabaseConfig()
	dsn := dbConfig.DSN
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN is not configured")
	}

	var newLogger logger.Interface
	if configManager.GetLogConfig().Level == "debug" {
		// Route GORM logs through logrus so they reach the same sinks
		newLogger = logger.New(
			log.New(logrus.StandardLogger().Out, "\r\n", log.LstdFlags),
			logger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  logger.Info,
				IgnoreRecordNotFoundError: true,
				Colorful:                  true,
			},
		)
	}

	isPostgres := strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		(strings.Contains(dsn, "host=") && strings.Contains(dsn, "dbname="))
	isMySQL := strings.Contains(dsn, "@tcp(") || strings.Contains(dsn, "@unix(")

	var dialector gorm.Dialector
	if isPostgres {
		dialector = postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		})
	} else if isMySQL {
		if !strings.Contains(dsn, "parseTime") {
			if strings.Contains(dsn, "?") {
				dsn += "&parseTime=true"
			} else {
				dsn += "?parseTime=true"
			}
		}
		dialector = mysql.Open(dsn)
	} else {
		// file: URIs carry their own path semantics; only create parent
		// directories for plain filesystem paths.
		if !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		// WAL mode lets the read pool serve storefront traffic while an
		// admin save holds the write connection.
		params := "_pragma=foreign_keys(1)&_busy_timeout=10000&_journal_mode=WAL&_synchronous=NORMAL&cache=shared"
		delimiter := "?"
		if strings.Contains(dsn, "?") {
			delimiter = "&"
		}
		dialector = sqlite.Open(dsn + delimiter + params)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger:      newLogger,
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if isPostgres || isMySQL {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
		// MySQL and PostgreSQL handle concurrent readers natively
		ReadDB = DB
	} else {
		// A single write connection avoids SQLite lock churn
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetConnMaxLifetime(time.Hour)

		ReadDB, err = createSQLiteReadDB(dsn, newLogger)
		if err != nil {
			logrus.WithError(err).Warn("Failed to create SQLite read connection pool, using main DB for reads")
			ReadDB = DB
		}
	}

	return DB, nil
}

// createSQLiteReadDB creates a separate read-only connection pool for SQLite.
// In WAL mode readers do not block the writer, but only on separate
// connections.
func createSQLiteReadDB(dsn string, newLogger logger.Interface) (*gorm.DB, error) {
	// Short busy timeout so reads fail fast on contention instead of queuing
	params := "_pragma=foreign_keys(1)&_busy_timeout=1000&_journal_mode=WAL&_synchronous=NORMAL"
	delimiter := "?"
	if strings.Contains(dsn, "?") {
		delimiter = "&"
	}
	dialector := sqlite.Open(dsn + delimiter + params)

	readDB, err := gorm.Open(dialector, &gorm.Config{
		Logger:      newLogger,
		PrepareStmt: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite read connection: %w", err)
	}

	sqlDB, err := readDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB for read connection: %w", err)
	}

	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	logrus.Info("SQLite read-only connection pool created for concurrent reads")
	return readDB, nil
}

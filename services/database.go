package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/glebarez/sqlite"
	"github.com/reinaldotineo/portfolio_api/model"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	StoreDriverFile     = "file"
	StoreDriverSqlite   = "sqlite"
	StoreDriverPostgres = "postgres"
)

// DatabaseService owns the gorm connection used when submissions are kept
// in SQL instead of the JSON files. It stays idle for the file driver.
type DatabaseService struct {
	context.DefaultService
	db *gorm.DB

	driver string
	dsn    string
}

const DATABASE_SVC = "database_svc"

func (ds DatabaseService) Id() string {
	return DATABASE_SVC
}

// Db returns nil when the file driver is selected.
func (ds DatabaseService) Db() *gorm.DB {
	return ds.db
}

func (ds *DatabaseService) Configure(ctx *context.Context) error {
	settings := ctx.Service(CONFIG_SVC).(*ConfigService).Settings()

	ds.driver = strings.ToLower(settings.StoreDriver)
	switch ds.driver {
	case StoreDriverSqlite:
		ds.dsn = settings.DBDatabase
		if !filepath.IsAbs(ds.dsn) && filepath.Dir(ds.dsn) == "." {
			ds.dsn = filepath.Join(settings.DataDir, ds.dsn)
		}
	case StoreDriverPostgres:
		ds.dsn = settings.DatabaseURL
		if ds.dsn == "" {
			return errors.New("DATABASE_URL is required for the postgres store driver")
		}
	case StoreDriverFile, "":
		ds.driver = StoreDriverFile
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", settings.StoreDriver)
	}

	return ds.DefaultService.Configure(ctx)
}

func (ds *DatabaseService) Start() (err error) {
	if ds.driver == StoreDriverFile {
		return nil
	}

	if ds.driver == StoreDriverSqlite {
		if err := os.MkdirAll(filepath.Dir(ds.dsn), 0o755); err != nil {
			return err
		}
	}

	ds.db, err = OpenDatabase(ds.driver, ds.dsn)
	if err != nil {
		return err
	}

	log.WithField("driver", ds.driver).Info("Database connected and migrated successfully")
	return nil
}

func (ds *DatabaseService) Shutdown() {
	if ds.db == nil {
		return
	}
	sqlDB, err := ds.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

// OpenDatabase connects with retry and migrates the submission tables.
func OpenDatabase(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case StoreDriverSqlite:
		dialector = sqlite.Open(dsn)
	case StoreDriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	maxRetries := 10
	retryDelay := time.Second

	var db *gorm.DB
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		db, err = gorm.Open(dialector, &gorm.Config{
			Logger: logger.Default.LogMode(logger.Error),
		})
		if err == nil {
			sqlDB, dbErr := db.DB()
			if dbErr == nil {
				if err = sqlDB.Ping(); err == nil {
					break
				}
			} else {
				err = dbErr
			}
		}

		if attempt == maxRetries || driver == StoreDriverSqlite {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		log.Printf("Database connection failed: %v. Retrying in %v...", err, retryDelay)
		time.Sleep(retryDelay)

		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}

	if err := db.AutoMigrate(&model.ContactMessage{}, &model.ConsultationRequest{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

// HandleDBError classifies and logs a gorm error, returning it wrapped with its class.
func HandleDBError(err error) error {
	if err == nil {
		return nil
	}

	var statusCode int
	var errorType string

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		statusCode = http.StatusNotFound
		errorType = "NOT_FOUND"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = http.StatusConflict
		errorType = "CONFLICT"
	case errors.Is(err, gorm.ErrInvalidTransaction):
		statusCode = http.StatusInternalServerError
		errorType = "TRANSACTION_ERROR"
	default:
		msg := err.Error()
		switch {
		case strings.Contains(msg, "UNIQUE constraint failed"),
			strings.Contains(msg, "duplicate key value violates unique constraint"):
			statusCode = http.StatusConflict
			errorType = "UNIQUE_CONSTRAINT"
		case strings.Contains(msg, "no such table"),
			strings.Contains(msg, "relation") && strings.Contains(msg, "does not exist"):
			statusCode = http.StatusInternalServerError
			errorType = "SCHEMA_ERROR"
		case strings.Contains(msg, "connection refused"):
			statusCode = http.StatusServiceUnavailable
			errorType = "DATABASE_CONNECTION_ERROR"
		default:
			statusCode = http.StatusInternalServerError
			errorType = "INTERNAL_ERROR"
		}
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
		"error":       err.Error(),
	})

	if statusCode >= 500 {
		logEntry.Error("Database error occurred")
	} else {
		logEntry.Warn("Database operation failed")
	}

	return fmt.Errorf("%s: %w", errorType, err)
}

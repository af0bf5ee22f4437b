package db

import (
	"fmt"
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"liyu1981.xyz/minute-policy-service/pkg/common"
	"liyu1981.xyz/minute-policy-service/pkg/models"
)

type DB struct {
	Conn *gorm.DB
}

var (
	instance *DB
	once     sync.Once
)

// Migration order matters: children first so the foreign keys of the
// dependent tables have something to point at.
var migratedModels = []any{
	&models.Child{},
	&models.Privilege{},
	&models.TrustSample{},
	&models.TimeBlock{},
	&models.AppControl{},
	&models.WebsiteRule{},
	&models.Alert{},
}

func GetInstance(dialector gorm.Dialector) *DB {
	var logger = common.GetLogger()
	once.Do(func() {
		conn, err := gorm.Open(dialector, &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Warn),
		})
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}

		logger.Info("Connected to database with dialector:", zap.String("dialector", dialector.Name()))

		instance = &DB{Conn: conn}

		err = instance.Conn.AutoMigrate(migratedModels...)
		if err != nil {
			log.Fatal("Failed to migrate database:", err)
		}

		logger.Info("Database migration completed")

		if dialector.Name() == "sqlite" {
			if err := instance.Conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
				log.Fatal("Failed to enable sqlite foreign key support", err)
			}

			if err := instance.Conn.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
				log.Fatal("Failed to set sqlite journal mode", err)
			}
		}
	})
	return instance
}

// UseDialector maps MINUTE_DB_TYPE onto a dialector.
func UseDialector(dbType string) (gorm.Dialector, error) {
	switch dbType {
	case "file":
		return UseSqliteDialector(), nil
	case "memory":
		return UseMemorySqliteDialector(), nil
	case "postgres":
		return UsePostgresDialector()
	default:
		return nil, fmt.Errorf("unknown %s: %q", common.EnvKeyMinuteDBType, dbType)
	}
}

func UseSqliteDialector() gorm.Dialector {
	var dbPath string
	var found bool
	if dbPath, found = os.LookupEnv(common.EnvKeyMinuteDbPath); !found {
		dbPath = "minute.db"
	}
	return sqlite.Open(dbPath)
}

func UseMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open("file::memory:?cache=shared")
}

func UsePostgresDialector() (gorm.Dialector, error) {
	dsn, found := os.LookupEnv(common.EnvKeyMinuteDbDSN)
	if !found || dsn == "" {
		return nil, fmt.Errorf("%s must be set when using postgres", common.EnvKeyMinuteDbDSN)
	}
	return postgres.Open(dsn), nil
}

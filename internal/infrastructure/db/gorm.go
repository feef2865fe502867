package db

import (
	"log"
	"time"

	docDomain "investorhub/internal/domain/document"
	invDomain "investorhub/internal/domain/investment"
	mifosDomain "investorhub/internal/domain/mifos"
	poolDomain "investorhub/internal/domain/pool"
	userDomain "investorhub/internal/domain/user"
	waterfallDomain "investorhub/internal/domain/waterfall"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func OpenGorm(dsn string) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn))
}

// OpenGormWithDialector exists so tests can swap in a mocked connection.
func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	log.Println("gorm: connected")
	return db, nil
}

// Migrate creates/updates every table the app owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userDomain.User{},
		&invDomain.Investment{},
		&invDomain.Payout{},
		&invDomain.Agreement{},
		&docDomain.Document{},
		&waterfallDomain.Config{},
		&waterfallDomain.Distribution{},
		&poolDomain.Pool{},
		&poolDomain.PoolLoan{},
		&mifosDomain.Loan{},
	)
}

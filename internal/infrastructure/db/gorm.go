package db

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"landbank-backend/internal/domain/interest"
	"landbank-backend/internal/domain/loan"
	"landbank-backend/internal/domain/party"
	"landbank-backend/internal/domain/reference"
	"landbank-backend/internal/domain/site"
)

type Options struct {
	LogLevel     string
	MaxOpenConns int
	Logger       *zap.Logger
}

func OpenGorm(dsn string, opts Options) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn), opts)
}

// OpenGormWithDialector opens, tunes the pool and pings.
func OpenGormWithDialector(dial gorm.Dialector, opts ...Options) (*gorm.DB, error) {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.MaxOpenConns <= 0 {
		o.MaxOpenConns = 30
	}

	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel(o.LogLevel)),
		TranslateError: true,
		// pinged below, after the pool is tuned
		DisableAutomaticPing: true,
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(o.MaxOpenConns)
	sqlDB.SetMaxIdleConns(o.MaxOpenConns / 3)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	o.Logger.Info("gorm: connected", zap.Int("max_open_conns", o.MaxOpenConns))
	return db, nil
}

func logLevel(s string) logger.LogLevel {
	switch strings.ToLower(s) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// Models lists every table owned by the service, leaves first.
func Models() []any {
	out := reference.Models()
	return append(out,
		&party.LandOwner{},
		&party.Investor{},
		&site.Site{},
		&site.Coordinate{},
		&site.Approval{},
		&interest.SiteInvestor{},
		&loan.Loan{},
		&loan.Approval{},
	)
}

func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(Models()...)
}

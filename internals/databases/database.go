package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"internship_backend/internals/configs"
	feedbackModel "internship_backend/internals/features/internships/feedback/model"
	versionModel "internship_backend/internals/features/internships/feedback_versions/model"
	selectionModel "internship_backend/internals/features/internships/intern_selections/model"
	roundModel "internship_backend/internals/features/internships/rounds/model"
	"internship_backend/internals/helpers/applog"
)

var DB *gorm.DB

// ConnectDB opens postgres. TranslateError turns unique violations into gorm.ErrDuplicatedKey.
func ConnectDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // PgBouncer transaction pooling
	}), &gorm.Config{
		Logger:         configs.NewGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	DB = db
	applog.Info().Add(applog.Component("database")).Msg("database connected")
	return db, nil
}

func TunePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		applog.Warn().Add(applog.Component("database")).Add(applog.Err(err)).Msg("pool tune failed")
		return
	}
	sqlDB.SetMaxOpenConns(configs.GetEnvInt("DB_MAX_OPEN_CONNS", 20))
	sqlDB.SetMaxIdleConns(configs.GetEnvInt("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Models lists every table in creation order.
func Models() []any {
	models := []any{
		&roundModel.RoundModel{},
		&selectionModel.InternSelectionModel{},
		&selectionModel.InternSelectionMentorModel{},
		&versionModel.FeedbackVersionModel{},
	}
	return append(models, feedbackModel.AllModels()...)
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	applog.Info().Add(applog.Component("database")).Add(applog.Int("tables", len(Models()))).Msg("migrations applied")
	return nil
}

func Close(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

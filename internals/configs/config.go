package configs

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"

	"internship_backend/internals/helpers/applog"
)

var (
	JWTSecret   string
	DatabaseURL string
	Port        string

	// Calendar used for feedback windows ("today" is evaluated here).
	ProgramTimezone = "UTC"

	// When true, a reopened feedback record can only be resubmitted once its window is open.
	FeedbackReopenRequiresOpenWindow bool

	// Where successful feedback submissions redirect to.
	DashboardPath = "/api/u/dashboard"

	RedisURL             string
	FeedbackSubmitMax    = 10
	FeedbackSubmitWindow = time.Minute

	LogLevel  = "info"
	LogFormat = "console"
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ .env not found, using system environment")
		} else {
			log.Println("✅ .env loaded")
		}
	}

	JWTSecret = GetEnv("JWT_SECRET")
	DatabaseURL = GetEnv("DATABASE_URL")
	Port = GetEnv("PORT", "3000")

	ProgramTimezone = GetEnv("PROGRAM_TIMEZONE", "UTC")
	FeedbackReopenRequiresOpenWindow = GetEnvBool("FEEDBACK_REOPEN_REQUIRES_OPEN_WINDOW", false)
	DashboardPath = GetEnv("DASHBOARD_PATH", "/api/u/dashboard")

	RedisURL = GetEnv("REDIS_URL")
	FeedbackSubmitMax = GetEnvInt("FEEDBACK_SUBMIT_MAX", 10)
	FeedbackSubmitWindow = GetEnvDuration("FEEDBACK_SUBMIT_WINDOW", time.Minute)

	LogLevel = GetEnv("LOG_LEVEL", "info")
	LogFormat = GetEnv("LOG_FORMAT", "console")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return fallback
}

func GetEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

func GetEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return fallback
}

// ProgramLocation resolves ProgramTimezone, falling back to UTC.
func ProgramLocation() *time.Location {
	if tz := strings.TrimSpace(ProgramTimezone); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.UTC
}

// PostgresDSN prefers DATABASE_URL and otherwise builds one from the DB_* variables.
func PostgresDSN() string {
	if DatabaseURL != "" {
		return DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=internships",
		GetEnv("DB_USER"),
		GetEnv("DB_PASSWORD"),
		GetEnv("DB_HOST", "localhost"),
		GetEnv("DB_PORT", "5432"),
		GetEnv("DB_NAME"),
		GetEnv("DB_SSLMODE", "disable"),
	)
}

// =======================
// DATABASE CONNECTOR
// =======================
func InitSeederDB() (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  PostgresDSN(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:         NewGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect seeder database: %w", err)
	}
	return db, nil
}

// =======================
// GORM LOGGER
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	cp := *l
	cp.LogLevel = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		applog.Info().Add(applog.Component("gorm")).Msg(fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		applog.Warn().Add(applog.Component("gorm")).Msg(fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		applog.Error().Add(applog.Component("gorm")).Msg(fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && err != gorm.ErrRecordNotFound && l.LogLevel >= gormLogger.Error:
		applog.Error().
			Add(applog.Component("gorm")).
			Add(applog.Str("file", file)).
			Add(applog.Err(err)).
			Add(applog.Duration(elapsed)).
			Add(applog.Int("rows", int(rows))).
			Msg(sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		applog.Warn().
			Add(applog.Component("gorm")).
			Add(applog.Str("file", file)).
			Add(applog.Duration(elapsed)).
			Add(applog.Int("rows", int(rows))).
			Msg("slow sql: " + sql)
	case l.LogLevel >= gormLogger.Info:
		applog.Debug().
			Add(applog.Component("gorm")).
			Add(applog.Str("file", file)).
			Add(applog.Duration(elapsed)).
			Add(applog.Int("rows", int(rows))).
			Msg(sql)
	}
}

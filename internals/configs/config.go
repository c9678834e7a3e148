package configs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// =======================
// ENV LOADER
// =======================

// LoadEnv memuat .env kalau tidak sedang jalan di platform yang sudah menyuntik ENV.
func LoadEnv(log *zap.Logger) {
	if os.Getenv("RAILWAY_ENVIRONMENT") != "" {
		log.Info("running on railway, using system env")
		return
	}
	if err := godotenv.Load(); err != nil {
		log.Warn(".env file not found, using system env")
		return
	}
	log.Info(".env file loaded")
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func GetEnvFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func GetEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// =======================
// APP LOGGER
// =======================

// NewLogger: production JSON logger, atau development kalau APP_ENV=development.
func NewLogger() *zap.Logger {
	var (
		log *zap.Logger
		err error
	)
	if strings.EqualFold(os.Getenv("APP_ENV"), "development") {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// =======================
// DATABASE SETTINGS
// =======================

type DBConfig struct {
	User        string
	Password    string
	Host        string
	Port        string
	Name        string
	SSLMode     string
	AutoMigrate bool
}

func LoadDBConfig() DBConfig {
	return DBConfig{
		User:        GetEnv("DB_USER"),
		Password:    GetEnv("DB_PASSWORD"),
		Host:        GetEnv("DB_HOST", "localhost"),
		Port:        GetEnv("DB_PORT", "5432"),
		Name:        GetEnv("DB_NAME"),
		SSLMode:     GetEnv("DB_SSLMODE", "require"),
		AutoMigrate: GetEnvBool("DB_AUTO_MIGRATE", false),
	}
}

// DSN dengan statement_timeout supaya query laporan tidak menggantung.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=schoolbus&options=-c statement_timeout=3000",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

func (c DBConfig) Validate() error {
	if c.User == "" || c.Name == "" {
		return errors.New("DB_USER and DB_NAME must be set")
	}
	return nil
}

// =======================
// BUS FEE POLICY SETTINGS
// =======================

type FeePolicyConfig struct {
	Version     string
	SchoolFirst float64
	BusCap      float64
	StandardFee float64
	BusPortion  float64
	ReportCron  string
}

func LoadFeePolicyConfig() FeePolicyConfig {
	return FeePolicyConfig{
		Version:     GetEnv("BUS_FEE_POLICY", "schoolFirst_v2"),
		SchoolFirst: GetEnvFloat("BUS_FEE_SCHOOL_FIRST", 17),
		BusCap:      GetEnvFloat("BUS_FEE_BUS_CAP", 10),
		StandardFee: GetEnvFloat("BUS_FEE_STANDARD", 28),
		BusPortion:  GetEnvFloat("BUS_FEE_BUS_PORTION", 10),
		ReportCron:  GetEnv("BUS_FEE_REPORT_CRON"),
	}
}

// =======================
// GORM LOGGER (via zap)
// =======================

type GormLogger struct {
	Log           *zap.Logger
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger(log *zap.Logger) gormLogger.Interface {
	return &GormLogger{
		Log:           log.Named("gorm"),
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
		l.Log.Sugar().Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		l.Log.Sugar().Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		l.Log.Sugar().Errorf(msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []zap.Field{
		zap.String("file", utils.FileWithLineNum()),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.LogLevel >= gormLogger.Error:
		l.Log.Error("query failed", append(fields, zap.Error(err))...)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		l.Log.Warn("slow query", fields...)
	case l.LogLevel >= gormLogger.Info:
		l.Log.Info("query", fields...)
	}
}

package config

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"room-booking/models"

	"github.com/glebarez/sqlite"
	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func orDefault(value, def string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return def
}

// MySQLDSN builds a go-sql-driver DSN. MYSQL_URL / DATABASE_URL win over the
// discrete settings and may be either a mysql:// URL or a raw DSN. Times are
// exchanged in UTC so DATE columns keep the calendar day that was validated.
func (d DatabaseConfig) MySQLDSN() (string, error) {
	raw := orDefault(d.MySQLURL, d.URL)
	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		cfg, err := mysql.ParseDSN(raw)
		if err != nil {
			return "", fmt.Errorf("parse mysql dsn: %w", err)
		}
		normalizeMySQL(cfg)
		return cfg.FormatDSN(), nil
	}

	cfg := mysql.NewConfig()
	cfg.User = d.User
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(orDefault(d.Host, "127.0.0.1"), orDefault(d.Port, "3306"))
	cfg.DBName = d.Name
	normalizeMySQL(cfg)
	defaultCharset(cfg)
	return cfg.FormatDSN(), nil
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	cfg := mysql.NewConfig()
	cfg.User = u.User.Username()
	cfg.Passwd, _ = u.User.Password()
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(u.Hostname(), orDefault(u.Port(), "3306"))
	cfg.DBName = strings.TrimPrefix(u.Path, "/")
	if cfg.DBName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	for key, values := range u.Query() {
		if len(values) == 0 || key == "parseTime" || key == "loc" {
			continue
		}
		if cfg.Params == nil {
			cfg.Params = map[string]string{}
		}
		cfg.Params[key] = values[0]
	}
	normalizeMySQL(cfg)
	defaultCharset(cfg)
	return cfg.FormatDSN(), nil
}

func normalizeMySQL(cfg *mysql.Config) {
	cfg.ParseTime = true
	cfg.Loc = time.UTC
}

// defaultCharset only applies to configs assembled here; a parsed DSN keeps
// whatever charset it named.
func defaultCharset(cfg *mysql.Config) {
	if cfg.Params == nil {
		cfg.Params = map[string]string{}
	}
	if cfg.Params["charset"] == "" {
		cfg.Params["charset"] = "utf8mb4"
	}
}

// PostgresDSN returns DATABASE_URL as is, or a keyword/value DSN for pgx.
func (d DatabaseConfig) PostgresDSN() string {
	if raw := strings.TrimSpace(d.URL); raw != "" {
		return raw
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		orDefault(d.Host, "127.0.0.1"), orDefault(d.Port, "5432"), d.User, d.Password, d.Name, orDefault(d.SSLMode, "disable"))
}

// SQLiteDSN enables foreign keys, which SQLite leaves off by default; the
// bookings cascade depends on them.
func (d DatabaseConfig) SQLiteDSN() string {
	path := orDefault(d.SQLitePath, "room_booking.db")
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)"
}

func (d DatabaseConfig) Dialector() (gorm.Dialector, error) {
	switch d.Driver {
	case DriverMySQL, "":
		dsn, err := d.MySQLDSN()
		if err != nil {
			return nil, err
		}
		return gormmysql.Open(dsn), nil
	case DriverPostgres:
		return postgres.Open(d.PostgresDSN()), nil
	case DriverSQLite:
		return sqlite.Open(d.SQLiteDSN()), nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", d.Driver)
}

// ConnectDatabase opens the store, migrates the schema and seeds it when
// configured to.
func ConnectDatabase(d DatabaseConfig, zlog *zap.Logger, verbose bool) (*gorm.DB, error) {
	dialector, err := d.Dialector()
	if err != nil {
		return nil, err
	}

	level := logger.Warn
	if verbose {
		level = logger.Info
	}
	gormLogger := logger.New(
		zap.NewStdLog(zlog.Named("gorm")),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger, TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", orDefault(d.Driver, DriverMySQL), err)
	}

	if d.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	if d.Seed {
		if err := SeedDatabase(db); err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
	}
	return db, nil
}

// Migrate creates rooms before bookings; the bookings table carries the
// ON DELETE CASCADE foreign key.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Room{}, &models.Booking{})
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

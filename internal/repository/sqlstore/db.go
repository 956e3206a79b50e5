package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"smart_parking_booking/internal/config"
	"time"

	_ "github.com/lib/pq"           // postgres driver
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/rs/zerolog"
)

// DB is the process-wide database handle together with the SQL dialect of its driver.
type DB struct {
	*sql.DB
	dialect dialect
}

// NewDB opens the store selected by cfg.DBDriver and creates the schema if it is absent.
func NewDB(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*DB, error) {
	var (
		db  *DB
		err error
	)
	switch cfg.DBDriver {
	case driverSQLite:
		db, err = OpenSQLite(cfg.DBPath)
	case driverPostgres:
		db, err = openPostgres(cfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if err != nil {
		return nil, err
	}

	if err := db.CreateTables(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	logger.Info().Str("driver", cfg.DBDriver).Msg("database initialized")
	return db, nil
}

// OpenSQLite opens a file-backed sqlite database at path. WAL mode and immediate
// transactions let concurrent writers queue on the busy timeout instead of failing.
func OpenSQLite(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := path + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000&_txlock=immediate&_foreign_keys=on"
	sqlDB, err := sql.Open(driverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &DB{DB: sqlDB, dialect: sqliteDialect}, nil
}

func openPostgres(cfg *config.Config) (*DB, error) {
	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSslMode)

	sqlDB, err := sql.Open(driverPostgres, psqlInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &DB{DB: sqlDB, dialect: postgresDialect}, nil
}

// CreateTables creates lots, slots, bookings and users if they do not exist.
func (db *DB) CreateTables(ctx context.Context) error {
	d := db.dialect
	queries := []string{
		`CREATE TABLE IF NOT EXISTS lots (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS slots (
			id TEXT PRIMARY KEY,
			lot_id TEXT NOT NULL REFERENCES lots(id),
			lot_name TEXT NOT NULL,
			type TEXT NOT NULL,
			rate %s NOT NULL,
			status TEXT NOT NULL,
			vehicle TEXT NOT NULL DEFAULT ''
		)`, d.floatType),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS bookings (
			booking_id TEXT PRIMARY KEY,
			slot_id TEXT NOT NULL REFERENCES slots(id),
			lot_id TEXT NOT NULL,
			lot_name TEXT NOT NULL,
			slot_type TEXT NOT NULL,
			vehicle_number TEXT NOT NULL,
			hours INTEGER NOT NULL,
			rate %[1]s NOT NULL,
			total_cost %[1]s NOT NULL,
			status TEXT NOT NULL,
			booking_time %[2]s NOT NULL,
			expiry_time %[2]s NOT NULL,
			released_at %[2]s
		)`, d.floatType, d.timeType),
		`CREATE INDEX IF NOT EXISTS idx_bookings_slot_time ON bookings(slot_id, booking_time)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_time ON bookings(booking_time)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS users (
			id %s,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL,
			created_at %[2]s NOT NULL,
			updated_at %[2]s NOT NULL
		)`, d.serialPK, d.timeType),
	}

	for _, query := range queries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("error executing query %s: %w", trimSQL(query), err)
		}
	}
	return nil
}

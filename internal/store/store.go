package store

import (
	"context"
	"database/sql"
	"errors"
	"runtime"
	"time"

	// Registers the "pgx" database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/leighmacdonald/craft/internal/config"
	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"
)

var (
	ErrDBConnect = errors.New("db connect error")
	ErrDBClose   = errors.New("db close error")
)

const (
	postgresMaxConns    = 10
	postgresIdleTimeout = 10 * time.Second
	pingTimeout         = 10 * time.Second
)

func driverName(driver config.Driver) string {
	if driver == config.SQLite {
		return "sqlite"
	}

	return "pgx"
}

func configureConnection(ctx context.Context, driver config.Driver, connection *sql.DB) error {
	if driver != config.SQLite {
		connection.SetMaxOpenConns(postgresMaxConns)
		connection.SetMaxIdleConns(postgresMaxConns)
		connection.SetConnMaxIdleTime(postgresIdleTimeout)
		connection.SetConnMaxLifetime(0)

		return nil
	}

	parallelism := min(8, max(2, runtime.GOMAXPROCS(0)))
	connection.SetMaxOpenConns(parallelism)
	connection.SetMaxIdleConns(parallelism)
	connection.SetConnMaxLifetime(0)
	connection.SetConnMaxIdleTime(0)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA main.synchronous = NORMAL",
		"PRAGMA main.cache_size = -32768",
	}
	for _, pragma := range pragmas {
		if _, errPragma := connection.ExecContext(ctx, pragma); errPragma != nil {
			return errors.Join(errPragma, ErrDBConnect)
		}
	}

	return nil
}

// Open creates the connection pool. Postgres pools connect lazily on first use; pass verify to make
// sure the database is reachable before returning.
func Open(ctx context.Context, conf config.Database, verify bool) (*sql.DB, error) {
	dsn, errDSN := conf.DSN()
	if errDSN != nil {
		return nil, errors.Join(errDSN, ErrDBConnect)
	}

	if conf.Driver == config.SQLite {
		dsn += "?cache=private"
	}

	connection, err := sql.Open(driverName(conf.Driver), dsn)
	if err != nil {
		return nil, errors.Join(err, ErrDBConnect)
	}

	if errConfig := configureConnection(ctx, conf.Driver, connection); errConfig != nil {
		_ = connection.Close()

		return nil, errConfig
	}

	if verify {
		if errPing := Ping(ctx, connection); errPing != nil {
			_ = connection.Close()

			return nil, errPing
		}
	}

	return connection, nil
}

func Ping(ctx context.Context, connection *sql.DB) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := connection.PingContext(pingCtx); err != nil {
		return errors.Join(err, ErrDBConnect)
	}

	return nil
}

func Close(connection *sql.DB) error {
	if err := connection.Close(); err != nil {
		return errors.Join(err, ErrDBClose)
	}

	return nil
}

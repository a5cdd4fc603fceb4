package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

var (
	errConfigWrite = errors.New("failed to write config file")
	errConfigRead  = errors.New("failed to read config file")
	errLoggerInit  = errors.New("failed to initialize logger")
	errMissingPort = errors.New("PORT is not set")
	errDBDriver    = errors.New("unsupported database driver")
)

const (
	ConfigDirName       = "craft"
	DefaultConfigName   = "craft"
	DefaultLogName      = "craft.log"
	DefaultRoute        = "/backend-page"
	DefaultDBPort       = 5432
	DefaultReadTimeout  = 15 * time.Second
	DefaultWriteTimeout = 15 * time.Second
	DefaultShutdown     = 10 * time.Second
)

type Driver string

const (
	Postgres Driver = "postgres"
	SQLite   Driver = "sqlite"
)

type Config struct {
	// Port has no default. Serving without it is an error rather than binding a random port.
	Port        string   `mapstructure:"port"`
	Debug       bool     `mapstructure:"debug"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	Database    Database `mapstructure:",squash"`
	Editor      Editor   `mapstructure:"editor"`
	UI          UI       `mapstructure:"ui"`
}

// Database holds the connection settings for the pool. The keys match the DB_* environment variables.
type Database struct {
	Driver   Driver `mapstructure:"db_driver"`
	User     string `mapstructure:"db_user"`
	Password string `mapstructure:"db_password"`
	Host     string `mapstructure:"db_host"`
	Port     int    `mapstructure:"db_port"`
	Name     string `mapstructure:"db_name"`
}

type Editor struct {
	// CharWidth is the horizontal size of one input character, in cells.
	CharWidth int `mapstructure:"char_width"`
	// ClampDrag keeps the widget inside the terminal while dragging.
	ClampDrag bool `mapstructure:"clamp_drag"`
}

type UI struct {
	Route string `mapstructure:"route"`
}

// ListenAddr returns the address the backend binds to.
func (c Config) ListenAddr() (string, error) {
	if strings.TrimSpace(c.Port) == "" {
		return "", errMissingPort
	}

	return ":" + strings.TrimSpace(c.Port), nil
}

// DSN builds the data source name handed to database/sql for the configured driver.
func (d Database) DSN() (string, error) {
	switch d.Driver {
	case SQLite:
		if d.Name == "" {
			return ":memory:", nil
		}

		return d.Name, nil
	case Postgres, "":
		var parts []string
		add := func(key string, value string) {
			if value == "" {
				return
			}
			parts = append(parts, key+"="+quoteDSNValue(value))
		}
		add("host", d.Host)
		if d.Port > 0 {
			add("port", fmt.Sprintf("%d", d.Port))
		}
		add("user", d.User)
		add("password", d.Password)
		add("dbname", d.Name)

		return strings.Join(parts, " "), nil
	default:
		return "", fmt.Errorf("%w: %s", errDBDriver, d.Driver)
	}
}

// quoteDSNValue quotes keyword/value connection string values that libpq would otherwise split.
func quoteDSNValue(value string) string {
	if value != "" && !strings.ContainsAny(value, ` '\`) {
		return value
	}

	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(value)

	return "'" + escaped + "'"
}

// Path generates a path pointing to the filename under this apps defined $XDG_CONFIG_HOME.
func Path(name string) string {
	fullPath, errFullPath := xdg.ConfigFile(path.Join(ConfigDirName, name))
	if errFullPath != nil {
		panic(errFullPath)
	}

	return fullPath
}

// NewLogger builds the text logger used by every subcommand.
func NewLogger(writer io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{
		AddSource: false,
		Level:     level,
	}))
}

// LoggerInit sets up the slog global handler to use a log file as we cant print to the console
// while the ui owns it.
func LoggerInit(logName string, level slog.Level) (io.Closer, error) {
	logFile, errLogFile := os.Create(Path(logName))
	if errLogFile != nil {
		return nil, errors.Join(errLogFile, errLoggerInit)
	}

	slog.SetDefault(NewLogger(logFile, level))

	return logFile, nil
}

func LogLevel(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}

	return slog.LevelInfo
}

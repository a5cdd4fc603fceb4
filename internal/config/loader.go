package config

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envBindings maps config keys onto the environment variables the backend has always read.
var envBindings = map[string]string{
	"port":              "PORT",
	"debug":             "CRAFT_DEBUG",
	"cors_origins":      "CORS_ORIGINS",
	"db_driver":         "DB_DRIVER",
	"db_user":           "DB_USER",
	"db_password":       "DB_PASSWORD",
	"db_host":           "DB_HOST",
	"db_port":           "DB_PORT",
	"db_name":           "DB_NAME",
	"editor.char_width": "CRAFT_EDITOR_CHAR_WIDTH",
	"editor.clamp_drag": "CRAFT_EDITOR_CLAMP_DRAG",
	"ui.route":          "CRAFT_UI_ROUTE",
}

// Loader handles setting up viper, loading configuration from files and the environment, and broadcasting
// configuration changes.
type Loader struct {
	*viper.Viper
	changes chan<- Config
	ctx     context.Context
}

// NewLoader creates a loader. When configFile is empty the default search paths are used. A nil changes
// channel disables reload broadcasts.
func NewLoader(changes chan<- Config, configFile string) *Loader {
	return newLoader(changes, configFile, Path(""), ".")
}

func newLoader(changes chan<- Config, configFile string, searchPaths ...string) *Loader {
	loader := Loader{changes: changes, Viper: viper.New(), ctx: context.Background()}
	loader.SetDefault("port", "")
	loader.SetDefault("debug", false)
	loader.SetDefault("cors_origins", []string{"http://localhost:3000"})
	loader.SetDefault("db_driver", string(Postgres))
	loader.SetDefault("db_user", "")
	loader.SetDefault("db_password", "")
	loader.SetDefault("db_host", "")
	loader.SetDefault("db_port", DefaultDBPort)
	loader.SetDefault("db_name", "")
	loader.SetDefault("editor.char_width", 1)
	loader.SetDefault("editor.clamp_drag", false)
	loader.SetDefault("ui.route", DefaultRoute)

	for key, env := range envBindings {
		if err := loader.BindEnv(key, env); err != nil {
			// Only fails when no key is given.
			panic(err)
		}
	}

	if configFile != "" {
		loader.SetConfigFile(configFile)
	} else {
		// Leave the config type unset so an extension-less "craft" file, such as the binary, never matches.
		loader.SetConfigName(DefaultConfigName)
		for _, searchPath := range searchPaths {
			loader.AddConfigPath(searchPath)
		}
	}

	return &loader
}

func (cl *Loader) Path() string {
	return cl.ConfigFileUsed()
}

// Watch starts watching the config file that was read, if any, and sends reloaded configs to the
// changes channel until ctx is done. Reloads after that are dropped.
func (cl *Loader) Watch(ctx context.Context) {
	if cl.changes == nil || cl.ConfigFileUsed() == "" {
		return
	}

	cl.ctx = ctx

	cl.OnConfigChange(cl.onConfigChange)
	cl.WatchConfig()
}

func (cl *Loader) onConfigChange(in fsnotify.Event) {
	if !in.Has(fsnotify.Write) && !in.Has(fsnotify.Rename) && !in.Has(fsnotify.Create) {
		return
	}

	slog.Debug("External config reload triggered", slog.String("file", in.Name))
	config, err := cl.Read()
	if err != nil {
		slog.Error("Error reading config", slog.String("error", err.Error()))

		return
	}

	select {
	case cl.changes <- config:
	case <-cl.ctx.Done():
		slog.Debug("Dropped config reload, nobody is listening", slog.String("file", in.Name))
	}
}

// Write persists the editor and ui preferences. Only the file's own keys are rewritten so values that came
// from the environment, like DB_PASSWORD, never end up on disk.
func (cl *Loader) Write(config Config) error {
	target := cl.ConfigFileUsed()
	if target == "" {
		target = Path(DefaultConfigName + ".yaml")
	}

	out := viper.New()
	out.SetConfigFile(target)
	if err := out.ReadInConfig(); err != nil {
		slog.Debug("Writing new config file", slog.String("path", target))
	}

	out.Set("editor.char_width", config.Editor.CharWidth)
	out.Set("editor.clamp_drag", config.Editor.ClampDrag)
	out.Set("ui.route", config.UI.Route)

	if err := out.WriteConfigAs(target); err != nil {
		return errors.Join(err, errConfigWrite)
	}

	return nil
}

// Read loads the config file, when present, and decodes the merged settings. A missing file is not an error.
func (cl *Loader) Read() (Config, error) {
	if err := cl.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return Config{}, errors.Join(err, errConfigRead)
		}
	}

	var config Config
	if err := cl.Unmarshal(&config); err != nil {
		return Config{}, errors.Join(err, errConfigRead)
	}

	if config.Editor.CharWidth < 1 {
		config.Editor.CharWidth = 1
	}

	if config.UI.Route == "" {
		config.UI.Route = DefaultRoute
	}

	return config, nil
}

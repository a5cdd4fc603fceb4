package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"runtime"
	"syscall"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/fang"
	"github.com/dustin/go-humanize"
	_ "github.com/joho/godotenv/autoload"
	"github.com/leighmacdonald/craft/internal/config"
	"github.com/leighmacdonald/craft/internal/store"
	"github.com/leighmacdonald/craft/internal/web"
	"github.com/spf13/cobra"
)

var (
	BuildVersion   = "master"
	BuildCommit    = "00000000"
	BuildDate      = time.Now().Format("2006-01-02T15:04:05Z")
	BuildGoVersion = runtime.Version()
	cfgFile        string
	checkDB        bool
	route          string
	rootCmd        = &cobra.Command{
		Use:   "craft",
		Short: "Form builder scaffold",
		Long:  `craft - A slash command form editor and its placeholder backend`,
	}

	serveCmd = &cobra.Command{
		Use:               "serve",
		Short:             "Run the backend HTTP service",
		Long:              "Run the backend HTTP service. PORT must be set.",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE:              serve,
	}

	uiCmd = &cobra.Command{
		Use:               "ui",
		Short:             "Run the terminal frontend",
		Long:              "Run the terminal frontend, rendering the page mounted at --route",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE:              runUI,
	}

	configCmd = &cobra.Command{
		Use:               "config",
		Short:             "Write the editor settings to the config file",
		Long:              "Write the current editor and ui settings to the config file so they can be edited",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE:              writeConfig,
	}

	versionCmd = &cobra.Command{
		Use:               "version",
		Short:             "Print version information",
		Long:              "Print detailed version information about craft",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		Run:               version,
	}
)

var errApp = errors.New("application error")

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file path")
	serveCmd.Flags().BoolVar(&checkDB, "check-db", false, "Fail startup when the database is unreachable")
	uiCmd.Flags().StringVar(&route, "route", "", "Route to open, defaults to ui.route")
	rootCmd.AddCommand(serveCmd, uiCmd, configCmd, versionCmd)

	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		slog.Error("Exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func version(_ *cobra.Command, _ []string) {
	built := BuildDate
	if when, err := time.Parse("2006-01-02T15:04:05Z", BuildDate); err == nil {
		built = fmt.Sprintf("%s (%s)", BuildDate, humanize.Time(when))
	}

	fmt.Printf("craft - Slash menu editor\n\n")     //nolint:forbidigo
	fmt.Printf("  Version: %s\n", BuildVersion)     //nolint:forbidigo
	fmt.Printf("  Commit:  %s\n", BuildCommit)      //nolint:forbidigo
	fmt.Printf("  Built:   %s\n", built)            //nolint:forbidigo
	fmt.Printf("  Runtime: %s\n\n", BuildGoVersion) //nolint:forbidigo
}

func readConfig(changes chan<- config.Config) (*config.Loader, config.Config, error) {
	loader := config.NewLoader(changes, cfgFile)
	userConfig, errConfig := loader.Read()
	if errConfig != nil {
		return nil, config.Config{}, errors.Join(errConfig, errApp)
	}

	return loader, userConfig, nil
}

// serve runs the backend until interrupted.
func serve(cmd *cobra.Command, _ []string) error {
	_, userConfig, errConfig := readConfig(nil)
	if errConfig != nil {
		return errConfig
	}

	slog.SetDefault(config.NewLogger(os.Stderr, config.LogLevel(userConfig.Debug)))
	slog.Info("Starting craft backend", slog.String("version", BuildVersion),
		slog.String("commit", BuildCommit), slog.String("go", BuildGoVersion))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, errDB := store.Open(ctx, userConfig.Database, checkDB)
	if errDB != nil {
		return errors.Join(errDB, errApp)
	}

	if err := web.NewServer(userConfig, database).Start(ctx); err != nil {
		if errClose := store.Close(database); errClose != nil {
			slog.Error("Error closing database", slog.String("error", errClose.Error()))
		}

		return errors.Join(err, errApp)
	}

	return nil
}

// runUI runs the terminal frontend.
func runUI(cmd *cobra.Command, _ []string) error {
	// Make sure our config & log home exists.
	if err := os.MkdirAll(path.Join(xdg.ConfigHome, config.ConfigDirName), 0o750); err != nil {
		return errors.Join(err, errApp)
	}

	configUpdates := make(chan config.Config)
	loader, userConfig, errConfig := readConfig(configUpdates)
	if errConfig != nil {
		return errConfig
	}

	// Setup file based logger. This is very useful for us as our console is taken over by the ui.
	logFile, errLogger := config.LoggerInit(config.DefaultLogName, config.LogLevel(userConfig.Debug))
	if errLogger != nil {
		return errors.Join(errLogger, errApp)
	}

	defer func(closer io.Closer) {
		if err := closer.Close(); err != nil {
			slog.Error("Failed to close log file", slog.String("error", err.Error()))
		}
	}(logFile)

	slog.Info("Starting craft ui", slog.String("version", BuildVersion),
		slog.String("commit", BuildCommit), slog.String("config", loader.Path()))

	if route == "" {
		route = userConfig.UI.Route
	}

	watchCtx, cancelWatch := context.WithCancel(cmd.Context())
	defer cancelWatch()

	loader.Watch(watchCtx)

	app := NewApp(userConfig, configUpdates)
	done := make(chan any)

	program := app.createUI(cmd.Context(), route)

	go func() {
		if err := program.Run(); err != nil {
			slog.Error("Failed to run UI", slog.String("error", err.Error()))
		}

		close(done)
	}()

	app.Start(cmd.Context(), done)

	return nil
}

func writeConfig(_ *cobra.Command, _ []string) error {
	loader, userConfig, errConfig := readConfig(nil)
	if errConfig != nil {
		return errConfig
	}

	if err := loader.Write(userConfig); err != nil {
		return errors.Join(err, errApp)
	}

	target := loader.Path()
	if target == "" {
		target = config.Path(config.DefaultConfigName + ".yaml")
	}

	fmt.Printf("Wrote %s\n", target) //nolint:forbidigo

	return nil
}

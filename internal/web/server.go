// Package web provides the backend HTTP service.
package web

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/leighmacdonald/craft/internal/config"
	"github.com/leighmacdonald/craft/internal/store"
	"golang.org/x/sync/errgroup"
)

var (
	ErrServerStart    = errors.New("failed to start http server")
	ErrServerShutdown = errors.New("failed to shutdown http server")
)

const helloResponse = "Hello world!"

// Server owns the router and the database pool. No route queries the pool; it is closed with the server.
type Server struct {
	Router   *gin.Engine
	config   config.Config
	database *sql.DB
	started  time.Time
}

func NewServer(conf config.Config, database *sql.DB) *Server {
	if conf.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestID(), requestLogger())
	router.Use(secure.New(secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		IsDevelopment:      conf.Debug,
	}))

	if len(conf.CORSOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = conf.CORSOrigins
		corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, requestIDHeader)
		corsConfig.ExposeHeaders = []string{requestIDHeader}
		router.Use(cors.New(corsConfig))
	}

	server := &Server{
		Router:   router,
		config:   conf,
		database: database,
	}

	server.setupRoutes()

	return server
}

func (s *Server) setupRoutes() {
	s.Router.GET("/test", onTest)
}

func onTest(ctx *gin.Context) {
	ctx.String(http.StatusOK, helloResponse)
}

// Start listens on the configured port and serves until the context is cancelled, then shuts down
// gracefully and closes the database pool.
func (s *Server) Start(ctx context.Context) error {
	addr, errAddr := s.config.ListenAddr()
	if errAddr != nil {
		return errors.Join(errAddr, ErrServerStart)
	}

	listener, errListen := (&net.ListenConfig{}).Listen(ctx, "tcp", addr)
	if errListen != nil {
		return errors.Join(errListen, ErrServerStart)
	}

	return s.Serve(ctx, listener)
}

// Serve runs the http server on an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:      s.Router,
		ReadTimeout:  config.DefaultReadTimeout,
		WriteTimeout: config.DefaultWriteTimeout,
	}

	s.started = time.Now()
	slog.Info("Server is Running at Port "+portOf(listener.Addr()), slog.String("addr", listener.Addr().String()))

	tasks, taskCtx := errgroup.WithContext(ctx)
	tasks.Go(func() error {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Join(err, ErrServerStart)
		}

		return nil
	})
	tasks.Go(func() error {
		<-taskCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), config.DefaultShutdown)
		defer cancel()

		slog.Info("Shutting down http server", slog.String("uptime", strings.TrimSpace(humanize.RelTime(s.started, time.Now(), "", ""))))
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return errors.Join(err, ErrServerShutdown)
		}

		return nil
	})

	errServe := tasks.Wait()

	if s.database != nil {
		if err := store.Close(s.database); err != nil {
			slog.Error("Error closing database", slog.String("error", err.Error()))
		}
	}

	return errServe
}

func portOf(addr net.Addr) string {
	value := addr.String()
	if idx := strings.LastIndex(value, ":"); idx >= 0 {
		return value[idx+1:]
	}

	return value
}

package web

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// requestID tags every request with an id, reusing one supplied by an upstream proxy.
func requestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		ctx.Set(requestIDHeader, id)
		ctx.Header(requestIDHeader, id)
		ctx.Next()
	}
}

// requestLogger replaces gin's default stdout logger with slog.
func requestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		level := slog.LevelDebug
		if ctx.Writer.Status() >= 500 {
			level = slog.LevelError
		}

		slog.Log(ctx.Request.Context(), level, "http request",
			slog.String("method", ctx.Request.Method),
			slog.String("path", ctx.Request.URL.Path),
			slog.Int("status", ctx.Writer.Status()),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("request_id", ctx.GetString(requestIDHeader)))
	}
}

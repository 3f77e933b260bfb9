package server

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the notes API and the static pages into one gin engine.
func NewRouter(api *API, static *Static, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	router.Use(secure.New(secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	notes := router.Group("/api/notes")
	{
		notes.GET("", api.ListNotes)
		notes.POST("", api.CreateNote)
		notes.DELETE("/:id", api.DeleteNote)
	}

	router.GET("/notes", static.NotesPage)
	router.HEAD("/notes", static.NotesPage)

	// assets, then index.html for everything outside /api
	router.NoRoute(static.Fallback)

	return router
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client", c.ClientIP(),
		)
	}
}

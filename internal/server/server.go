package server

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"tunedrop/internal/extract"
	"tunedrop/internal/workspace"
)

// Extractor resolves media URLs into metadata and transcoded audio files.
// It matches internal/extract.Service; tests substitute a stub.
type Extractor interface {
	FetchInfo(ctx context.Context, url string) (*extract.Info, error)
	FetchAudio(ctx context.Context, url string, ws *workspace.Workspace) (*extract.Result, error)
}

// Authenticator is the injected session capability. The server only needs
// the middleware hooks and a place to mount the auth routes; the
// implementation lives in internal/auth.
type Authenticator interface {
	SessionLayer() gin.HandlerFunc
	RequireAuth() gin.HandlerFunc
	Register(api gin.IRouter)
}

// Options configures a Server.
type Options struct {
	AllowedOrigins []string
	Extractor      Extractor
	Auth           Authenticator
	Workspaces     *workspace.Manager
}

// Server owns the HTTP surface: routing, CORS, auth wiring and the info
// and download request handlers.
type Server struct {
	extractor  Extractor
	auth       Authenticator
	workspaces *workspace.Manager
	origins    []string
}

// New creates a server from its collaborators.
func New(opts Options) *Server {
	return &Server{
		extractor:  opts.Extractor,
		auth:       opts.Auth,
		workspaces: opts.Workspaces,
		origins:    opts.AllowedOrigins,
	}
}

// Router builds the gin engine with all middleware and routes attached.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger())

	if len(s.origins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     s.origins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Disposition"},
			AllowCredentials: true,
		}))
	}

	router.Use(s.auth.SessionLayer())

	router.GET("/", s.handleHome)

	api := router.Group("/api")
	s.auth.Register(api)

	protected := api.Group("", s.auth.RequireAuth())
	protected.POST("/info", s.handleInfo)
	protected.POST("/descargar", s.handleDownload)

	return router
}

// requestLogger logs one line per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}

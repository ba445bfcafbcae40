package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/syncwatch/server/internal/auth"
	"github.com/syncwatch/server/internal/config"
	"github.com/syncwatch/server/internal/core"
	"github.com/syncwatch/server/internal/proxy"
	"github.com/syncwatch/server/internal/search"
)

// NewServer builds the HTTP server: REST API, page proxy and the websocket
// endpoint that feeds the room hub.
func NewServer(
	hub *core.Hub,
	registry *core.Registry,
	authService *auth.Service,
	searchService *search.Service,
	proxyService *proxy.Service,
	cfg config.Config,
	logger *zerolog.Logger,
) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(LoggerMiddleware(logger), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.String(stdhttp.StatusOK, "ok")
	})

	accessHandlers := NewAccessHandlers(authService, logger)
	router.POST("/api/access", accessHandlers.Access)

	api := router.Group("/api", AccessMiddleware(authService, logger))
	{
		roomHandlers := NewRoomHandlers(registry, logger)
		api.GET("/create-room", roomHandlers.CreateRoom)
		api.GET("/check-room/:roomId", roomHandlers.CheckRoom)

		searchHandlers := NewSearchHandlers(searchService, proxyService, logger)
		api.GET("/youtube-search", searchHandlers.YouTubeSearch)
		api.GET("/web-search", searchHandlers.WebSearch)
		api.GET("/proxy", searchHandlers.Proxy)
	}

	router.GET("/ws", AccessMiddleware(authService, logger), gin.WrapH(NewWSHandler(hub, logger)))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

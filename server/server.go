package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/wfunc/spaceshooter/live"
	"github.com/wfunc/spaceshooter/logger"
	"github.com/wfunc/spaceshooter/monitor"
	"github.com/wfunc/spaceshooter/services"
)

// APIServer serves the game persistence API: saved games, the
// leaderboard, the level catalog, and the live score feed.
type APIServer struct {
	addr        string
	gameService *services.GameService
	feed        *live.Feed
	monitor     *monitor.Monitor
	upgrader    websocket.Upgrader
	httpServer  *http.Server
}

// NewAPIServer wires routes and middleware. monitor may be nil, which
// disables metrics recording (used by tests).
func NewAPIServer(addr string, gs *services.GameService, feed *live.Feed, mon *monitor.Monitor, corsOrigins []string) *APIServer {
	s := &APIServer{
		addr:        addr,
		gameService: gs,
		feed:        feed,
		monitor:     mon,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 允许所有跨域请求
			},
		},
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger())
	engine.Use(corsMiddleware(corsOrigins))
	if mon != nil {
		engine.Use(latencyRecorder(mon))
	}

	api := engine.Group("/api")
	api.GET("/", s.handleRoot)
	api.POST("/game/save", s.handleSaveGame)
	api.GET("/game/saves", s.handleListSavedGames)
	api.GET("/game/load/:id", s.handleLoadGame)
	api.DELETE("/game/delete/:id", s.handleDeleteGame)
	api.POST("/leaderboard", s.handleSubmitScore)
	api.GET("/leaderboard", s.handleLeaderboard)
	api.GET("/levels", s.handleLevels)
	api.GET("/health", s.handleHealth)

	engine.GET("/ws/leaderboard", s.handleLeaderboardFeed)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the routed engine for tests.
func (s *APIServer) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until Shutdown is called.
func (s *APIServer) Start() error {
	logger.Log.Infof("API server listening on %s", s.addr)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and drops live subscribers.
func (s *APIServer) Shutdown(ctx context.Context) error {
	if s.feed != nil {
		s.feed.Close()
	}
	return s.httpServer.Shutdown(ctx)
}

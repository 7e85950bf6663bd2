package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wfunc/spaceshooter/catalog"
	"github.com/wfunc/spaceshooter/logger"
	"github.com/wfunc/spaceshooter/models"
	"github.com/wfunc/spaceshooter/persistence"
	"github.com/wfunc/spaceshooter/services"
)

func (s *APIServer) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Space Shooter API"})
}

func (s *APIServer) handleSaveGame(c *gin.Context) {
	var req models.SaveGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	game, err := s.gameService.SaveGame(c.Request.Context(), *req.GameName, req.GameState.GameState())
	if err != nil {
		s.storeError(c, "save game", err)
		return
	}

	if s.monitor != nil {
		s.monitor.IncGamesSaved()
	}
	c.JSON(http.StatusOK, game)
}

func (s *APIServer) handleListSavedGames(c *gin.Context) {
	games, err := s.gameService.ListSavedGames(c.Request.Context())
	if err != nil {
		s.storeError(c, "list saved games", err)
		return
	}
	c.JSON(http.StatusOK, games)
}

func (s *APIServer) handleLoadGame(c *gin.Context) {
	game, err := s.gameService.LoadGame(c.Request.Context(), c.Param("id"))
	if errors.Is(err, persistence.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Game not found"})
		return
	}
	if err != nil {
		s.storeError(c, "load game", err)
		return
	}
	c.JSON(http.StatusOK, game)
}

func (s *APIServer) handleDeleteGame(c *gin.Context) {
	err := s.gameService.DeleteGame(c.Request.Context(), c.Param("id"))
	if errors.Is(err, persistence.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Game not found"})
		return
	}
	if err != nil {
		s.storeError(c, "delete game", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Game deleted successfully"})
}

func (s *APIServer) handleSubmitScore(c *gin.Context) {
	var req models.HighScoreSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	// Scores are stored as submitted, negative values included. The
	// leaderboard trusts its callers.
	entry, err := s.gameService.SubmitScore(c.Request.Context(), *req.PlayerName, *req.Score, *req.LevelReached)
	if err != nil {
		s.storeError(c, "submit score", err)
		return
	}

	if s.monitor != nil {
		s.monitor.IncScoresSubmitted()
	}
	if s.feed != nil {
		s.feed.Publish(entry)
	}
	c.JSON(http.StatusOK, entry)
}

func (s *APIServer) handleLeaderboard(c *gin.Context) {
	limit := services.DefaultLeaderboardLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "limit must be an integer"})
			return
		}
		limit = parsed
	}

	scores, err := s.gameService.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		s.storeError(c, "list leaderboard", err)
		return
	}
	c.JSON(http.StatusOK, scores)
}

func (s *APIServer) handleLevels(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.Levels())
}

func (s *APIServer) handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.gameService.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// storeError surfaces a failed store call as a 500. Nothing is retried.
func (s *APIServer) storeError(c *gin.Context, op string, err error) {
	logger.Log.Errorf("Store call failed (%s): %v", op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "store unavailable"})
}

// services/game_service.go
package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wfunc/spaceshooter/models"
	"github.com/wfunc/spaceshooter/persistence"
)

// DefaultLeaderboardLimit applies when the caller gives no usable limit.
const DefaultLeaderboardLimit = 10

// GameService owns record construction (ids, timestamps) and talks to
// the store. Handlers stay thin on top of it.
type GameService struct {
	db persistence.Store
}

func NewGameService(db persistence.Store) *GameService {
	return &GameService{db: db}
}

// SaveGame builds a SavedGame with a fresh uuid and server time and
// writes it. The stored record is returned to the caller verbatim.
func (s *GameService) SaveGame(ctx context.Context, name string, state models.GameState) (models.SavedGame, error) {
	game := models.SavedGame{
		ID:        uuid.New().String(),
		GameName:  name,
		GameState: state,
		Timestamp: time.Now().UTC(),
	}
	if err := s.db.SaveGame(ctx, game); err != nil {
		return models.SavedGame{}, err
	}
	return game, nil
}

// ListSavedGames returns the newest saved games, at most 100.
func (s *GameService) ListSavedGames(ctx context.Context) ([]models.SavedGame, error) {
	return s.db.ListSavedGames(ctx)
}

// LoadGame fetches one saved game by id. Returns
// persistence.ErrNotFound for unknown ids.
func (s *GameService) LoadGame(ctx context.Context, id string) (models.SavedGame, error) {
	return s.db.GetSavedGame(ctx, id)
}

// DeleteGame removes one saved game by id. Returns
// persistence.ErrNotFound when nothing matched.
func (s *GameService) DeleteGame(ctx context.Context, id string) error {
	return s.db.DeleteSavedGame(ctx, id)
}

// SubmitScore records a leaderboard entry. Score and level_reached are
// stored as submitted; the leaderboard is trust-the-caller and negative
// or out-of-range values are not rejected here.
func (s *GameService) SubmitScore(ctx context.Context, playerName string, score, levelReached int) (models.HighScore, error) {
	entry := models.HighScore{
		ID:           uuid.New().String(),
		PlayerName:   playerName,
		Score:        score,
		LevelReached: levelReached,
		Timestamp:    time.Now().UTC(),
	}
	if err := s.db.SaveHighScore(ctx, entry); err != nil {
		return models.HighScore{}, err
	}
	return entry, nil
}

// Leaderboard returns the top entries by score. A non-positive limit
// falls back to DefaultLeaderboardLimit.
func (s *GameService) Leaderboard(ctx context.Context, limit int) ([]models.HighScore, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	return s.db.TopHighScores(ctx, limit)
}

// Counts reports both collection sizes, for metrics sampling and the
// admin RPC.
func (s *GameService) Counts(ctx context.Context) (savedGames, highScores int64, err error) {
	savedGames, err = s.db.CountSavedGames(ctx)
	if err != nil {
		return 0, 0, err
	}
	highScores, err = s.db.CountHighScores(ctx)
	if err != nil {
		return 0, 0, err
	}
	return savedGames, highScores, nil
}

// Ping reports store reachability.
func (s *GameService) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

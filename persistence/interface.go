// persistence/interface.go
package persistence

import (
	"context"
	"fmt"

	"github.com/wfunc/spaceshooter/models"
)

// Store is the document-store surface the rest of the server depends
// on. Every call maps to exactly one store round-trip; there are no
// multi-call transactions.
type Store interface {
	SaveGame(ctx context.Context, game models.SavedGame) error
	ListSavedGames(ctx context.Context) ([]models.SavedGame, error)
	GetSavedGame(ctx context.Context, id string) (models.SavedGame, error)
	DeleteSavedGame(ctx context.Context, id string) error

	SaveHighScore(ctx context.Context, score models.HighScore) error
	TopHighScores(ctx context.Context, limit int) ([]models.HighScore, error)

	CountSavedGames(ctx context.Context) (int64, error)
	CountHighScores(ctx context.Context) (int64, error)

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// 错误定义
var (
	ErrNotFound = fmt.Errorf("record not found")
)

package models

import (
	"time"
)

// GameState is a point-in-time capture of gameplay. Enemies and
// bullets are open-ended per-entity maps; their shape varies by entity
// type and is stored as received.
type GameState struct {
	PlayerX      float64                  `json:"player_x" bson:"player_x"`
	PlayerY      float64                  `json:"player_y" bson:"player_y"`
	PlayerHealth int                      `json:"player_health" bson:"player_health"`
	Score        int                      `json:"score" bson:"score"`
	CurrentLevel int                      `json:"current_level" bson:"current_level"`
	Enemies      []map[string]interface{} `json:"enemies" bson:"enemies"`
	Bullets      []map[string]interface{} `json:"bullets" bson:"bullets"`
}

// SavedGame wraps a GameState with a server-generated identity and
// creation time. Records are immutable once written; re-saving a game
// always creates a new record.
type SavedGame struct {
	ID        string    `json:"id"`
	GameName  string    `json:"game_name"`
	GameState GameState `json:"game_state"`
	Timestamp time.Time `json:"timestamp"`
}

// HighScore is a single leaderboard entry.
type HighScore struct {
	ID           string    `json:"id"`
	PlayerName   string    `json:"player_name"`
	Score        int       `json:"score"`
	LevelReached int       `json:"level_reached"`
	Timestamp    time.Time `json:"timestamp"`
}

// Level describes one entry of the static level catalog.
type Level struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Difficulty string  `json:"difficulty"`
	EnemyCount int     `json:"enemy_count"`
	EnemySpeed float64 `json:"enemy_speed"`
	Background string  `json:"background"`
}

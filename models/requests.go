package models

// Request payloads use pointer fields so that "required" means the
// field was present on the wire; zero values (x=0, score=0) stay
// legal. Unknown fields are dropped by the JSON decoder.

// GameStatePayload is the wire form of a GameState on save requests.
type GameStatePayload struct {
	PlayerX      *float64                 `json:"player_x" binding:"required"`
	PlayerY      *float64                 `json:"player_y" binding:"required"`
	PlayerHealth *int                     `json:"player_health" binding:"required"`
	Score        *int                     `json:"score" binding:"required"`
	CurrentLevel *int                     `json:"current_level" binding:"required"`
	Enemies      []map[string]interface{} `json:"enemies" binding:"required"`
	Bullets      []map[string]interface{} `json:"bullets" binding:"required"`
}

// GameState converts the validated payload into the persisted form.
func (p *GameStatePayload) GameState() GameState {
	return GameState{
		PlayerX:      *p.PlayerX,
		PlayerY:      *p.PlayerY,
		PlayerHealth: *p.PlayerHealth,
		Score:        *p.Score,
		CurrentLevel: *p.CurrentLevel,
		Enemies:      p.Enemies,
		Bullets:      p.Bullets,
	}
}

// SaveGameRequest is the body of POST /api/game/save.
type SaveGameRequest struct {
	GameName  *string           `json:"game_name" binding:"required"`
	GameState *GameStatePayload `json:"game_state" binding:"required"`
}

// HighScoreSubmission is the body of POST /api/leaderboard. Score and
// level are taken on trust; the leaderboard has no anti-cheat.
type HighScoreSubmission struct {
	PlayerName   *string `json:"player_name" binding:"required"`
	Score        *int    `json:"score" binding:"required"`
	LevelReached *int    `json:"level_reached" binding:"required"`
}

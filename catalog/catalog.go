// Package catalog holds the fixed level definitions served by the API.
// The catalog is defined in code and never changes at runtime.
package catalog

import (
	"github.com/wfunc/spaceshooter/models"
)

var levels = []models.Level{
	{ID: 1, Name: "Asteroid Belt", Difficulty: "Easy", EnemyCount: 5, EnemySpeed: 1.0, Background: "#050505"},
	{ID: 2, Name: "Nebula Storm", Difficulty: "Medium", EnemyCount: 8, EnemySpeed: 1.5, Background: "#0A0A0A"},
	{ID: 3, Name: "Black Hole", Difficulty: "Hard", EnemyCount: 12, EnemySpeed: 2.0, Background: "#000000"},
	{ID: 4, Name: "Supernova", Difficulty: "Expert", EnemyCount: 15, EnemySpeed: 2.5, Background: "#050505"},
	{ID: 5, Name: "The Void", Difficulty: "Impossible", EnemyCount: 20, EnemySpeed: 3.0, Background: "#000000"},
}

// Levels returns the catalog in id order. Callers get a copy so the
// backing array stays immutable.
func Levels() []models.Level {
	out := make([]models.Level, len(levels))
	copy(out, levels)
	return out
}

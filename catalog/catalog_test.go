package catalog

import (
	"reflect"
	"testing"
)

func TestLevels_FixedCatalog(t *testing.T) {
	levels := Levels()

	if len(levels) != 5 {
		t.Fatalf("Expected 5 levels, got %d", len(levels))
	}

	for i, lvl := range levels {
		if lvl.ID != i+1 {
			t.Errorf("Level at position %d has id %d", i, lvl.ID)
		}
		if lvl.Name == "" || lvl.Difficulty == "" || lvl.Background == "" {
			t.Errorf("Level %d has empty fields: %+v", lvl.ID, lvl)
		}
	}

	if levels[0].Difficulty != "Easy" || levels[4].Difficulty != "Impossible" {
		t.Errorf("Difficulty range should span Easy..Impossible, got %s..%s",
			levels[0].Difficulty, levels[4].Difficulty)
	}
}

func TestLevels_MonotonicDifficulty(t *testing.T) {
	levels := Levels()

	for i := 1; i < len(levels); i++ {
		if levels[i].EnemyCount < levels[i-1].EnemyCount {
			t.Errorf("Enemy count drops from level %d to %d", levels[i-1].ID, levels[i].ID)
		}
		if levels[i].EnemySpeed < levels[i-1].EnemySpeed {
			t.Errorf("Enemy speed drops from level %d to %d", levels[i-1].ID, levels[i].ID)
		}
	}
}

func TestLevels_CallersCannotMutate(t *testing.T) {
	first := Levels()
	first[0].Name = "scribbled"
	first[0].EnemyCount = 999

	second := Levels()
	if second[0].Name != "Asteroid Belt" || second[0].EnemyCount != 5 {
		t.Error("Mutating a returned slice must not affect the catalog")
	}
}

func TestLevels_Idempotent(t *testing.T) {
	if !reflect.DeepEqual(Levels(), Levels()) {
		t.Error("Repeated reads must return identical results")
	}
}

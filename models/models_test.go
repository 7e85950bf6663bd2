package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestGameStatePayload_LenientDecode(t *testing.T) {
	// Unknown fields are dropped, not rejected.
	raw := []byte(`{
		"player_x": 12.5,
		"player_y": 0,
		"player_health": 3,
		"score": 0,
		"current_level": 1,
		"enemies": [{"type": "drone", "hp": 2}],
		"bullets": [],
		"power_ups": ["shield"],
		"client_build": 42
	}`)

	var payload GameStatePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	state := payload.GameState()
	if state.PlayerX != 12.5 || state.PlayerY != 0 {
		t.Errorf("Positions wrong: %+v", state)
	}
	if state.Score != 0 || state.CurrentLevel != 1 {
		t.Errorf("Scalars wrong: %+v", state)
	}

	wantEnemies := []map[string]interface{}{{"type": "drone", "hp": 2.0}}
	if !reflect.DeepEqual(state.Enemies, wantEnemies) {
		t.Errorf("Enemies not passed through opaquely:\n got %#v\nwant %#v", state.Enemies, wantEnemies)
	}
	if state.Bullets == nil || len(state.Bullets) != 0 {
		t.Errorf("Empty bullets list should stay an empty list: %#v", state.Bullets)
	}
}

func TestGameStatePayload_MissingFieldsStayNil(t *testing.T) {
	raw := []byte(`{"player_x": 1.0, "score": 10}`)

	var payload GameStatePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	// Presence validation keys off nil pointers and nil slices.
	if payload.PlayerX == nil || payload.Score == nil {
		t.Error("Present fields should be non-nil")
	}
	if payload.PlayerY != nil || payload.PlayerHealth != nil || payload.CurrentLevel != nil {
		t.Error("Absent fields should stay nil")
	}
	if payload.Enemies != nil || payload.Bullets != nil {
		t.Error("Absent entity lists should stay nil")
	}
}

func TestSavedGame_JSONShape(t *testing.T) {
	game := SavedGame{
		ID:       "abc-123",
		GameName: "run",
		GameState: GameState{
			Enemies: []map[string]interface{}{},
			Bullets: []map[string]interface{}{},
		},
	}

	data, err := json.Marshal(game)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var wire map[string]interface{}
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	for _, key := range []string{"id", "game_name", "game_state", "timestamp"} {
		if _, ok := wire[key]; !ok {
			t.Errorf("Wire form missing %q: %s", key, data)
		}
	}
}

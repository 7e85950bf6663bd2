package services

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"
	"time"

	"github.com/wfunc/spaceshooter/models"
	"github.com/wfunc/spaceshooter/persistence"
)

// MockStore is an in-memory test double for the persistence.Store
// interface.
type MockStore struct {
	games   map[string]models.SavedGame
	scores  []models.HighScore
	failAll bool
}

func NewMockStore() *MockStore {
	return &MockStore{games: make(map[string]models.SavedGame)}
}

var errStoreDown = errors.New("store down")

func (m *MockStore) SaveGame(ctx context.Context, game models.SavedGame) error {
	if m.failAll {
		return errStoreDown
	}
	m.games[game.ID] = game
	return nil
}

func (m *MockStore) ListSavedGames(ctx context.Context) ([]models.SavedGame, error) {
	if m.failAll {
		return nil, errStoreDown
	}
	out := make([]models.SavedGame, 0, len(m.games))
	for _, g := range m.games {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if len(out) > 100 {
		out = out[:100]
	}
	return out, nil
}

func (m *MockStore) GetSavedGame(ctx context.Context, id string) (models.SavedGame, error) {
	if m.failAll {
		return models.SavedGame{}, errStoreDown
	}
	game, ok := m.games[id]
	if !ok {
		return models.SavedGame{}, persistence.ErrNotFound
	}
	return game, nil
}

func (m *MockStore) DeleteSavedGame(ctx context.Context, id string) error {
	if m.failAll {
		return errStoreDown
	}
	if _, ok := m.games[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(m.games, id)
	return nil
}

func (m *MockStore) SaveHighScore(ctx context.Context, score models.HighScore) error {
	if m.failAll {
		return errStoreDown
	}
	m.scores = append(m.scores, score)
	return nil
}

func (m *MockStore) TopHighScores(ctx context.Context, limit int) ([]models.HighScore, error) {
	if m.failAll {
		return nil, errStoreDown
	}
	out := make([]models.HighScore, len(m.scores))
	copy(out, m.scores)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockStore) CountSavedGames(ctx context.Context) (int64, error) {
	return int64(len(m.games)), nil
}

func (m *MockStore) CountHighScores(ctx context.Context) (int64, error) {
	return int64(len(m.scores)), nil
}

func (m *MockStore) Ping(ctx context.Context) error {
	if m.failAll {
		return errStoreDown
	}
	return nil
}

func (m *MockStore) Close(ctx context.Context) error { return nil }

func sampleState() models.GameState {
	return models.GameState{
		PlayerX:      400.5,
		PlayerY:      520,
		PlayerHealth: 3,
		Score:        1200,
		CurrentLevel: 2,
		Enemies: []map[string]interface{}{
			{"type": "drone", "x": 100.0, "hp": 2},
			{"type": "boss", "phase": "enrage"},
		},
		Bullets: []map[string]interface{}{
			{"x": 405.0, "y": 500.0, "vy": -8.0},
		},
	}
}

func TestGameService_SaveGame(t *testing.T) {
	store := NewMockStore()
	svc := NewGameService(store)

	before := time.Now().UTC()
	game, err := svc.SaveGame(context.Background(), "run one", sampleState())
	if err != nil {
		t.Fatalf("SaveGame failed: %v", err)
	}

	if game.ID == "" {
		t.Error("SaveGame should assign an id")
	}
	if game.GameName != "run one" {
		t.Errorf("Expected game name %q, got %q", "run one", game.GameName)
	}
	if game.Timestamp.Before(before) {
		t.Error("SaveGame should assign a current timestamp")
	}
	if game.Timestamp.Location() != time.UTC {
		t.Error("Timestamp should be UTC")
	}

	if _, ok := store.games[game.ID]; !ok {
		t.Error("SaveGame should persist the record")
	}
}

func TestGameService_SaveLoadRoundTrip(t *testing.T) {
	svc := NewGameService(NewMockStore())
	state := sampleState()

	saved, err := svc.SaveGame(context.Background(), "round trip", state)
	if err != nil {
		t.Fatalf("SaveGame failed: %v", err)
	}

	loaded, err := svc.LoadGame(context.Background(), saved.ID)
	if err != nil {
		t.Fatalf("LoadGame failed: %v", err)
	}

	if !reflect.DeepEqual(loaded.GameState, state) {
		t.Errorf("Round trip changed the game state:\n got %#v\nwant %#v", loaded.GameState, state)
	}
}

func TestGameService_SaveGame_DuplicateNames(t *testing.T) {
	svc := NewGameService(NewMockStore())

	first, err := svc.SaveGame(context.Background(), "same name", sampleState())
	if err != nil {
		t.Fatalf("First save failed: %v", err)
	}
	second, err := svc.SaveGame(context.Background(), "same name", sampleState())
	if err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	if first.ID == second.ID {
		t.Error("Re-saving must create a new record, not reuse the id")
	}
}

func TestGameService_LoadGame_NotFound(t *testing.T) {
	svc := NewGameService(NewMockStore())

	_, err := svc.LoadGame(context.Background(), "invalid-id")
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestGameService_DeleteGame(t *testing.T) {
	svc := NewGameService(NewMockStore())

	saved, err := svc.SaveGame(context.Background(), "to delete", sampleState())
	if err != nil {
		t.Fatalf("SaveGame failed: %v", err)
	}

	if err := svc.DeleteGame(context.Background(), saved.ID); err != nil {
		t.Fatalf("DeleteGame failed: %v", err)
	}

	if _, err := svc.LoadGame(context.Background(), saved.ID); !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("Load after delete should be ErrNotFound, got %v", err)
	}

	if err := svc.DeleteGame(context.Background(), saved.ID); !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("Second delete should be ErrNotFound, got %v", err)
	}
}

func TestGameService_SubmitScore_TrustsCaller(t *testing.T) {
	svc := NewGameService(NewMockStore())

	// Negative scores and out-of-range levels are stored as-is.
	entry, err := svc.SubmitScore(context.Background(), "Cheater", -500, 99)
	if err != nil {
		t.Fatalf("SubmitScore failed: %v", err)
	}
	if entry.Score != -500 || entry.LevelReached != 99 {
		t.Errorf("Submission was altered: %+v", entry)
	}
	if entry.ID == "" {
		t.Error("SubmitScore should assign an id")
	}
}

func TestGameService_Leaderboard(t *testing.T) {
	store := NewMockStore()
	svc := NewGameService(store)

	scores := []int{2500, 100, 900, 3200, 50}
	for _, sc := range scores {
		if _, err := svc.SubmitScore(context.Background(), "Ace", sc, 3); err != nil {
			t.Fatalf("SubmitScore failed: %v", err)
		}
	}

	top, err := svc.Leaderboard(context.Background(), 3)
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}

	if len(top) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(top))
	}
	want := []int{3200, 2500, 900}
	for i, entry := range top {
		if entry.Score != want[i] {
			t.Errorf("Position %d: expected score %d, got %d", i, want[i], entry.Score)
		}
	}
}

func TestGameService_Leaderboard_DefaultLimit(t *testing.T) {
	store := NewMockStore()
	svc := NewGameService(store)

	for i := 0; i < 15; i++ {
		if _, err := svc.SubmitScore(context.Background(), "Bot", i*10, 1); err != nil {
			t.Fatalf("SubmitScore failed: %v", err)
		}
	}

	for _, limit := range []int{0, -5} {
		top, err := svc.Leaderboard(context.Background(), limit)
		if err != nil {
			t.Fatalf("Leaderboard(%d) failed: %v", limit, err)
		}
		if len(top) != DefaultLeaderboardLimit {
			t.Errorf("Leaderboard(%d): expected default limit %d, got %d entries", limit, DefaultLeaderboardLimit, len(top))
		}
	}
}

func TestGameService_StoreFailurePropagates(t *testing.T) {
	store := NewMockStore()
	store.failAll = true
	svc := NewGameService(store)

	if _, err := svc.SaveGame(context.Background(), "x", sampleState()); err == nil {
		t.Error("SaveGame should propagate store failure")
	}
	if _, err := svc.ListSavedGames(context.Background()); err == nil {
		t.Error("ListSavedGames should propagate store failure")
	}
	if _, err := svc.Leaderboard(context.Background(), 10); err == nil {
		t.Error("Leaderboard should propagate store failure")
	}
}

// persistence/mongo.go
package persistence

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/wfunc/spaceshooter/models"
)

const (
	savedGamesCollection = "saved_games"
	highScoresCollection = "high_scores"

	// listLimit caps GET /api/game/saves results.
	listLimit = 100
)

// MongoStore 基于MongoDB的文档存储实现
type MongoStore struct {
	client *mongo.Client
	games  *mongo.Collection
	scores *mongo.Collection
}

// NewMongoStore connects, pings, and returns a store backed by a
// single long-lived client pool. The pool is released by Close.
func NewMongoStore(ctx context.Context, url, dbName string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(dbName)
	return &MongoStore{
		client: client,
		games:  db.Collection(savedGamesCollection),
		scores: db.Collection(highScoresCollection),
	}, nil
}

// Documents carry the timestamp as an RFC3339 string: the store has no
// native instant type in this contract, and fixed-width RFC3339
// strings in UTC sort lexicographically in chronological order, which
// the list queries rely on.

type savedGameDoc struct {
	ID        string           `bson:"id"`
	GameName  string           `bson:"game_name"`
	GameState models.GameState `bson:"game_state"`
	Timestamp string           `bson:"timestamp"`
}

type highScoreDoc struct {
	ID           string `bson:"id"`
	PlayerName   string `bson:"player_name"`
	Score        int    `bson:"score"`
	LevelReached int    `bson:"level_reached"`
	Timestamp    string `bson:"timestamp"`
}

// timestampFormat is RFC3339 with a fixed-width fraction:
// RFC3339Nano trims trailing zeros, which would break the
// lexicographic-equals-chronological property the sorts rely on.
const timestampFormat = "2006-01-02T15:04:05.000000000Z07:00"

func encodeTimestamp(t time.Time) string {
	return t.UTC().Format(timestampFormat)
}

func decodeTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// SaveGame inserts one saved-game document. There is no uniqueness
// constraint on game_name; duplicates are allowed.
func (s *MongoStore) SaveGame(ctx context.Context, game models.SavedGame) error {
	doc := savedGameDoc{
		ID:        game.ID,
		GameName:  game.GameName,
		GameState: game.GameState,
		Timestamp: encodeTimestamp(game.Timestamp),
	}
	if _, err := s.games.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert saved game: %w", err)
	}
	return nil
}

// ListSavedGames returns up to 100 saved games, newest first.
func (s *MongoStore) ListSavedGames(ctx context.Context) ([]models.SavedGame, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 0}).
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(listLimit)

	cursor, err := s.games.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find saved games: %w", err)
	}
	defer cursor.Close(ctx)

	games := make([]models.SavedGame, 0)
	for cursor.Next(ctx) {
		var doc savedGameDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode saved game: %w", err)
		}
		game, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved games: %w", err)
	}
	return games, nil
}

// GetSavedGame does a point lookup by id.
func (s *MongoStore) GetSavedGame(ctx context.Context, id string) (models.SavedGame, error) {
	opts := options.FindOne().SetProjection(bson.M{"_id": 0})

	var doc savedGameDoc
	err := s.games.FindOne(ctx, bson.M{"id": id}, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return models.SavedGame{}, ErrNotFound
	}
	if err != nil {
		return models.SavedGame{}, fmt.Errorf("find saved game: %w", err)
	}
	return doc.toModel()
}

// DeleteSavedGame removes the document matching id. ErrNotFound when
// nothing matched.
func (s *MongoStore) DeleteSavedGame(ctx context.Context, id string) error {
	result, err := s.games.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete saved game: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveHighScore inserts one leaderboard entry.
func (s *MongoStore) SaveHighScore(ctx context.Context, score models.HighScore) error {
	doc := highScoreDoc{
		ID:           score.ID,
		PlayerName:   score.PlayerName,
		Score:        score.Score,
		LevelReached: score.LevelReached,
		Timestamp:    encodeTimestamp(score.Timestamp),
	}
	if _, err := s.scores.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert high score: %w", err)
	}
	return nil
}

// TopHighScores returns up to limit entries ordered by score
// descending. Ties keep the store's native order.
func (s *MongoStore) TopHighScores(ctx context.Context, limit int) ([]models.HighScore, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 0}).
		SetSort(bson.D{{Key: "score", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.scores.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find high scores: %w", err)
	}
	defer cursor.Close(ctx)

	scores := make([]models.HighScore, 0)
	for cursor.Next(ctx) {
		var doc highScoreDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode high score: %w", err)
		}
		score, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate high scores: %w", err)
	}
	return scores, nil
}

// CountSavedGames reports the saved-games collection size.
func (s *MongoStore) CountSavedGames(ctx context.Context) (int64, error) {
	return s.games.CountDocuments(ctx, bson.M{})
}

// CountHighScores reports the high-scores collection size.
func (s *MongoStore) CountHighScores(ctx context.Context) (int64, error) {
	return s.scores.CountDocuments(ctx, bson.M{})
}

// Ping checks store reachability, used by the health endpoint.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close releases the client pool.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (d savedGameDoc) toModel() (models.SavedGame, error) {
	ts, err := decodeTimestamp(d.Timestamp)
	if err != nil {
		return models.SavedGame{}, err
	}
	return models.SavedGame{
		ID:        d.ID,
		GameName:  d.GameName,
		GameState: d.GameState,
		Timestamp: ts,
	}, nil
}

func (d highScoreDoc) toModel() (models.HighScore, error) {
	ts, err := decodeTimestamp(d.Timestamp)
	if err != nil {
		return models.HighScore{}, err
	}
	return models.HighScore{
		ID:           d.ID,
		PlayerName:   d.PlayerName,
		Score:        d.Score,
		LevelReached: d.LevelReached,
		Timestamp:    ts,
	}, nil
}

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"notekeeper/internal/model"
)

// NoteCache keeps a short-lived copy of each user's note list in redis.
// A dirty marker suppresses repopulation for a few seconds after a write,
// so the async pipeline has time to settle before the list is cached again.
type NoteCache struct {
	client         *redisv9.Client
	notesTTL       time.Duration
	dirtyMarkerTTL time.Duration
}

func NewNoteCache(client *redisv9.Client, notesTTL, dirtyMarkerTTL time.Duration) *NoteCache {
	if notesTTL <= 0 {
		notesTTL = 60 * time.Second
	}
	if dirtyMarkerTTL <= 0 {
		dirtyMarkerTTL = 5 * time.Second
	}
	return &NoteCache{
		client:         client,
		notesTTL:       notesTTL,
		dirtyMarkerTTL: dirtyMarkerTTL,
	}
}

func (c *NoteCache) GetNotes(ctx context.Context, userID uint) ([]model.Note, bool, error) {
	key := c.notesKey(userID)
	raw, err := c.client.Get(ctx, key).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get notes failed: %w", err)
	}

	var notes []model.Note
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached notes failed: %w", err)
	}
	return notes, true, nil
}

func (c *NoteCache) SetNotes(ctx context.Context, userID uint, notes []model.Note) error {
	key := c.notesKey(userID)
	payload, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("marshal notes cache failed: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, c.notesTTL).Err(); err != nil {
		return fmt.Errorf("redis set notes failed: %w", err)
	}
	return nil
}

func (c *NoteCache) DeleteNotes(ctx context.Context, userID uint) error {
	key := c.notesKey(userID)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete notes failed: %w", err)
	}
	return nil
}

func (c *NoteCache) MarkDirty(ctx context.Context, userID uint) error {
	key := c.dirtyKey(userID)
	if err := c.client.Set(ctx, key, "1", c.dirtyMarkerTTL).Err(); err != nil {
		return fmt.Errorf("redis set dirty marker failed: %w", err)
	}
	return nil
}

func (c *NoteCache) IsDirty(ctx context.Context, userID uint) (bool, error) {
	key := c.dirtyKey(userID)
	exists, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis check dirty marker failed: %w", err)
	}
	return exists > 0, nil
}

func (c *NoteCache) notesKey(userID uint) string {
	return fmt.Sprintf("notes:user:%d", userID)
}

func (c *NoteCache) dirtyKey(userID uint) string {
	return fmt.Sprintf("notes:user:dirty:%d", userID)
}

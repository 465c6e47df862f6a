package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	recentKey = "activity:recent"

	// MaxEntries bounds the activity feed; the oldest entries are evicted
	// once the list grows past it.
	MaxEntries = 20
)

type Entry struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

// Log is the append-only, capped activity history backed by a redis list.
type Log struct {
	redisClient *redis.Client
}

func NewLog(redisClient *redis.Client) *Log {
	return &Log{redisClient: redisClient}
}

func (l *Log) Append(ctx context.Context, entryType, description string) error {
	entry := Entry{
		Type:        entryType,
		Description: description,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal activity entry: %w", err)
	}

	pipe := l.redisClient.TxPipeline()
	pipe.LPush(ctx, recentKey, data)
	pipe.LTrim(ctx, recentKey, 0, MaxEntries-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append activity entry: %w", err)
	}
	return nil
}

func (l *Log) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > MaxEntries {
		limit = MaxEntries
	}

	raw, err := l.redisClient.LRange(ctx, recentKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read activity entries: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var entry Entry
		if err := json.Unmarshal([]byte(item), &entry); err == nil {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

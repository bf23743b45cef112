package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	model "grade-analytics/app/models/stats"
)

type DatasetCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDatasetCache(rdb *redis.Client, ttl time.Duration) *DatasetCache {
	return &DatasetCache{rdb: rdb, ttl: ttl}
}

func cacheKey(id uuid.UUID) string {
	return "dataset:" + id.String()
}

// Get: cache miss dan error Redis sama-sama dianggap miss, dataset akan diparse ulang.
func (c *DatasetCache) Get(ctx context.Context, id uuid.UUID) ([]model.GradeRecord, bool) {
	data, err := c.rdb.Get(ctx, cacheKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Error("Gagal membaca cache dataset", "dataset_id", id, "error", err)
		}
		return nil, false
	}

	var records []model.GradeRecord
	if err := json.Unmarshal(data, &records); err != nil {
		slog.Error("Cache dataset rusak", "dataset_id", id, "error", err)
		return nil, false
	}
	return records, true
}

func (c *DatasetCache) Set(ctx context.Context, id uuid.UUID, records []model.GradeRecord) {
	data, err := json.Marshal(records)
	if err != nil {
		slog.Error("Gagal serialisasi dataset", "dataset_id", id, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(id), data, c.ttl).Err(); err != nil {
		slog.Error("Gagal menyimpan cache dataset", "dataset_id", id, "error", err)
	}
}

func (c *DatasetCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.rdb.Del(ctx, cacheKey(id)).Err(); err != nil {
		slog.Error("Gagal menghapus cache dataset", "dataset_id", id, "error", err)
	}
}

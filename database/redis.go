package database

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

// ConnectRedis bersifat opsional: addr kosong atau Ping gagal berarti cache dataset dimatikan.
func ConnectRedis(addr string) {
	if addr == "" {
		slog.Warn("REDIS_ADDR tidak diset, cache dataset dimatikan")
		return
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		slog.Error("Tidak dapat terhubung ke Redis", "error", err)
		_ = client.Close()
		return
	}

	RDB = client
	slog.Info("Berhasil terhubung ke Redis", "addr", addr)
}

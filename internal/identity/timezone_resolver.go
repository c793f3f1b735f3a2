package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const timezoneCacheTTL = 10 * time.Minute

// TimezoneResolver adalah cache-aside lookup timezone satker: Redis dulu,
// kalau miss (atau Redis bermasalah) jatuh ke database lalu isi ulang cache.
type TimezoneResolver struct {
	repo   Repository
	rdb    *redis.Client
	logger *zap.Logger
}

func NewTimezoneResolver(repo Repository, rdb *redis.Client, logger ...*zap.Logger) *TimezoneResolver {
	l := zap.L().Named("identity.timezone")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("identity.timezone")
	}
	return &TimezoneResolver{repo: repo, rdb: rdb, logger: l}
}

func timezoneCacheKey(satkerID string) string {
	return fmt.Sprintf("satker:tz:%s", satkerID)
}

// Location mengembalikan *time.Location untuk satker. Cache yang tidak
// tersedia bukan alasan gagal; database tetap jadi sumber kebenaran.
func (t *TimezoneResolver) Location(ctx context.Context, satkerID string) (*time.Location, error) {
	key := timezoneCacheKey(satkerID)

	if t.rdb != nil {
		name, err := t.rdb.Get(ctx, key).Result()
		if err == nil && name != "" {
			if loc, locErr := time.LoadLocation(name); locErr == nil {
				return loc, nil
			}
		}
		if err != nil && err != redis.Nil {
			t.logger.Warn("timezone cache read failed, falling back to database",
				zap.String("satker_id", satkerID),
				zap.Error(err),
			)
		}
	}

	satker, err := t.repo.FindSatkerByID(ctx, satkerID)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(satker.Timezone)
	if err != nil {
		return nil, fmt.Errorf("satker %s has invalid timezone %q: %w", satkerID, satker.Timezone, err)
	}

	if t.rdb != nil {
		if err := t.rdb.Set(ctx, key, satker.Timezone, timezoneCacheTTL).Err(); err != nil {
			t.logger.Warn("timezone cache refill failed", zap.String("satker_id", satkerID), zap.Error(err))
		}
	}

	return loc, nil
}

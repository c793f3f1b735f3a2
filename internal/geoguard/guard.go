package geoguard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-presensi/internal/shared/apperror"
	"go-presensi/internal/shared/geo"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	lastLocationTTL = 24 * time.Hour

	// Perpindahan > 5 km dalam < 2 menit dianggap teleport
	teleportWindow   = 120 * time.Second
	teleportDistance = 5000.0

	// Kecepatan rata-rata > 45 m/s (~162 km/jam) dianggap tidak masuk akal
	maxSpeedMetersPerSec = 45.0
)

var (
	ErrTeleportDetected = apperror.New(
		apperror.CodeInvalidState,
		"Perpindahan lokasi terlalu jauh dalam waktu singkat",
		http.StatusConflict,
	)

	ErrImplausibleSpeed = apperror.New(
		apperror.CodeInvalidState,
		"Kecepatan perpindahan lokasi tidak masuk akal",
		http.StatusConflict,
	)
)

type lastLocation struct {
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Timestamp time.Time `json:"ts"`
}

type Guard interface {
	// Check menolak pergerakan yang mustahil secara fisik dan, jika lolos,
	// menimpa lokasi terakhir (user, device) dengan titik baru.
	Check(ctx context.Context, userID, deviceID string, lat, lon float64, now time.Time) error
}

type guard struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewGuard(rdb *redis.Client, logger ...*zap.Logger) Guard {
	l := zap.L().Named("geoguard")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("geoguard")
	}
	return &guard{rdb: rdb, logger: l}
}

func lastLocationKey(userID, deviceID string) string {
	return fmt.Sprintf("lastloc:%s:%s", userID, deviceID)
}

func (g *guard) Check(ctx context.Context, userID, deviceID string, lat, lon float64, now time.Time) error {
	key := lastLocationKey(userID, deviceID)

	raw, err := g.rdb.Get(ctx, key).Result()
	switch {
	case err == redis.Nil:
		// Belum ada lokasi sebelumnya, langsung lolos
	case err != nil:
		// Gerbang ini heuristik best-effort: kalau Redis mati kita fail-open
		// supaya gangguan cache tidak memblokir presensi seluruh satker.
		g.logger.Warn("last location read failed, admitting check-in",
			zap.String("user_id", userID),
			zap.String("device_id", deviceID),
			zap.Error(err),
		)
	default:
		var prev lastLocation
		if jsonErr := json.Unmarshal([]byte(raw), &prev); jsonErr == nil {
			if rejectErr := evaluateMovement(prev, lat, lon, now); rejectErr != nil {
				g.logger.Warn("implausible movement rejected",
					zap.String("user_id", userID),
					zap.String("device_id", deviceID),
					zap.Float64("lat", lat),
					zap.Float64("lon", lon),
				)
				return rejectErr
			}
		}
	}

	payload, err := json.Marshal(lastLocation{Lat: lat, Lon: lon, Timestamp: now})
	if err != nil {
		return err
	}
	if err := g.rdb.Set(ctx, key, payload, lastLocationTTL).Err(); err != nil {
		// Best-effort juga saat menulis
		g.logger.Warn("last location write failed",
			zap.String("user_id", userID),
			zap.String("device_id", deviceID),
			zap.Error(err),
		)
	}

	return nil
}

func evaluateMovement(prev lastLocation, lat, lon float64, now time.Time) error {
	dt := now.Sub(prev.Timestamp).Seconds()
	if dt < 1 {
		dt = 1
	}

	distance := geo.DistanceMeters(prev.Lat, prev.Lon, lat, lon)

	if dt < teleportWindow.Seconds() && distance > teleportDistance {
		return ErrTeleportDetected
	}
	if distance/dt > maxSpeedMetersPerSec {
		return ErrImplausibleSpeed
	}
	return nil
}

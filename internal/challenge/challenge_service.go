package challenge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	challengeerrors "go-presensi/internal/challenge/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	challengeTTL = 60 * time.Second

	// Fixed-window counter: burst di batas window bisa tembus 2x nominal,
	// diterima sebagai trade-off kesederhanaan.
	rateWindow      = 60 * time.Second
	userRateLimit   = 10
	deviceRateLimit = 6
)

// Challenge adalah payload yang disimpan di Redis, tidak pernah masuk database.
type Challenge struct {
	UserID    string    `json:"user_id"`
	SatkerID  string    `json:"satker_id"`
	DeviceID  string    `json:"device_id"`
	Nonce     string    `json:"nonce"`
	ExpiresAt time.Time `json:"expires_at"`
}

type IssuedChallenge struct {
	ChallengeID string    `json:"challenge_id"`
	Nonce       string    `json:"nonce"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type Service interface {
	Issue(ctx context.Context, userID, satkerID, deviceID string) (IssuedChallenge, error)
	// Consume menghapus challenge secara atomik; sebuah challenge hanya bisa
	// berhasil dikonsumsi tepat satu kali.
	Consume(ctx context.Context, challengeID, userID, satkerID, deviceID string) error
}

type service struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewService(rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("challenge.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("challenge.service")
	}
	return &service{rdb: rdb, logger: l}
}

func challengeKey(id string) string {
	return fmt.Sprintf("challenge:%s", id)
}

func userRateKey(userID string) string {
	return fmt.Sprintf("challenge:rate:user:%s", userID)
}

func deviceRateKey(deviceID string) string {
	return fmt.Sprintf("challenge:rate:device:%s", deviceID)
}

func (s *service) Issue(ctx context.Context, userID, satkerID, deviceID string) (IssuedChallenge, error) {
	if deviceID == "" {
		return IssuedChallenge{}, challengeerrors.ErrDeviceIDRequired
	}

	if err := s.bumpCounter(ctx, userRateKey(userID), userRateLimit, challengeerrors.ErrUserRateLimited); err != nil {
		return IssuedChallenge{}, err
	}
	if err := s.bumpCounter(ctx, deviceRateKey(deviceID), deviceRateLimit, challengeerrors.ErrDeviceRateLimited); err != nil {
		return IssuedChallenge{}, err
	}

	now := time.Now().UTC()
	ch := Challenge{
		UserID:    userID,
		SatkerID:  satkerID,
		DeviceID:  deviceID,
		Nonce:     uuid.New().String(),
		ExpiresAt: now.Add(challengeTTL),
	}

	payload, err := json.Marshal(ch)
	if err != nil {
		return IssuedChallenge{}, err
	}

	challengeID := uuid.New().String()
	if err := s.rdb.Set(ctx, challengeKey(challengeID), payload, challengeTTL).Err(); err != nil {
		s.logger.Error("store challenge failed", zap.String("user_id", userID), zap.Error(err))
		return IssuedChallenge{}, err
	}

	s.logger.Debug("challenge issued",
		zap.String("challenge_id", challengeID),
		zap.String("user_id", userID),
		zap.String("device_id", deviceID),
	)

	return IssuedChallenge{
		ChallengeID: challengeID,
		Nonce:       ch.Nonce,
		ExpiresAt:   ch.ExpiresAt,
	}, nil
}

func (s *service) Consume(ctx context.Context, challengeID, userID, satkerID, deviceID string) error {
	// GETDEL adalah satu perintah Redis, jadi dua Consume bersamaan untuk id
	// yang sama tidak mungkin dua-duanya dapat payload. GET lalu DEL terpisah
	// akan membuka race itu lagi.
	raw, err := s.rdb.GetDel(ctx, challengeKey(challengeID)).Result()
	if err == redis.Nil {
		return challengeerrors.ErrChallengeNotFound
	}
	if err != nil {
		s.logger.Error("consume challenge read failed", zap.String("challenge_id", challengeID), zap.Error(err))
		return err
	}

	var ch Challenge
	if err := json.Unmarshal([]byte(raw), &ch); err != nil {
		return challengeerrors.ErrChallengeNotFound
	}

	if ch.UserID != userID || ch.SatkerID != satkerID || ch.DeviceID != deviceID {
		s.logger.Warn("challenge consumed with mismatched identity",
			zap.String("challenge_id", challengeID),
			zap.String("user_id", userID),
			zap.String("device_id", deviceID),
		)
		return challengeerrors.ErrChallengeMismatch
	}

	if time.Now().UTC().After(ch.ExpiresAt) {
		return challengeerrors.ErrChallengeExpired
	}

	return nil
}

func (s *service) bumpCounter(ctx context.Context, key string, limit int64, limitErr error) error {
	count, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		s.logger.Error("rate counter incr failed", zap.String("key", key), zap.Error(err))
		return err
	}
	if count == 1 {
		if err := s.rdb.Expire(ctx, key, rateWindow).Err(); err != nil {
			s.logger.Warn("rate counter expire failed", zap.String("key", key), zap.Error(err))
		}
	}
	if count > limit {
		return limitErr
	}
	return nil
}

package challenge

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	challengeerrors "go-presensi/internal/challenge/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func expectRateCounters(mock redismock.ClientMock, userID, deviceID string, userCount, deviceCount int64) {
	mock.ExpectIncr(userRateKey(userID)).SetVal(userCount)
	if userCount == 1 {
		mock.ExpectExpire(userRateKey(userID), rateWindow).SetVal(true)
	}
	if userCount > userRateLimit {
		return
	}
	mock.ExpectIncr(deviceRateKey(deviceID)).SetVal(deviceCount)
	if deviceCount == 1 {
		mock.ExpectExpire(deviceRateKey(deviceID), rateWindow).SetVal(true)
	}
}

func TestService_Issue(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	svc := NewService(rdb)

	expectRateCounters(mock, "user-1", "device-1", 1, 1)
	mock.Regexp().ExpectSet(`challenge:.+`, `.+`, challengeTTL).SetVal("OK")

	issued, err := svc.Issue(context.Background(), "user-1", "satker-1", "device-1")
	assert.NoError(t, err)
	assert.NotEmpty(t, issued.ChallengeID)
	assert.NotEmpty(t, issued.Nonce)
	assert.True(t, issued.ExpiresAt.After(time.Now().UTC()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Issue_MissingDevice(t *testing.T) {
	rdb, _ := redismock.NewClientMock()
	svc := NewService(rdb)

	_, err := svc.Issue(context.Background(), "user-1", "satker-1", "")
	assert.ErrorIs(t, err, challengeerrors.ErrDeviceIDRequired)
}

func TestService_Issue_UserRateLimited(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	svc := NewService(rdb)

	expectRateCounters(mock, "user-1", "device-1", int64(userRateLimit)+1, 1)

	_, err := svc.Issue(context.Background(), "user-1", "satker-1", "device-1")
	assert.ErrorIs(t, err, challengeerrors.ErrUserRateLimited)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Issue_DeviceRateLimited(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	svc := NewService(rdb)

	expectRateCounters(mock, "user-1", "device-1", 2, int64(deviceRateLimit)+1)

	_, err := svc.Issue(context.Background(), "user-1", "satker-1", "device-1")
	assert.ErrorIs(t, err, challengeerrors.ErrDeviceRateLimited)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func storedChallenge(t *testing.T, userID, satkerID, deviceID string, expiresAt time.Time) string {
	t.Helper()
	payload, err := json.Marshal(Challenge{
		UserID:    userID,
		SatkerID:  satkerID,
		DeviceID:  deviceID,
		Nonce:     "nonce-1",
		ExpiresAt: expiresAt,
	})
	assert.NoError(t, err)
	return string(payload)
}

func TestService_Consume_ExactlyOnce(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	svc := NewService(rdb)

	payload := storedChallenge(t, "user-1", "satker-1", "device-1", time.Now().UTC().Add(30*time.Second))

	// Konsumsi pertama dapat payload, konsumsi kedua menemukan key sudah
	// terhapus: tepat satu sukses dan satu gagal.
	mock.ExpectGetDel(challengeKey("ch-1")).SetVal(payload)
	mock.ExpectGetDel(challengeKey("ch-1")).RedisNil()

	err := svc.Consume(context.Background(), "ch-1", "user-1", "satker-1", "device-1")
	assert.NoError(t, err)

	err = svc.Consume(context.Background(), "ch-1", "user-1", "satker-1", "device-1")
	assert.ErrorIs(t, err, challengeerrors.ErrChallengeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Consume_Mismatch(t *testing.T) {
	cases := []struct {
		name     string
		userID   string
		satkerID string
		deviceID string
	}{
		{"wrong user", "user-x", "satker-1", "device-1"},
		{"wrong satker", "user-1", "satker-x", "device-1"},
		{"wrong device", "user-1", "satker-1", "device-x"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rdb, mock := redismock.NewClientMock()
			svc := NewService(rdb)

			payload := storedChallenge(t, "user-1", "satker-1", "device-1", time.Now().UTC().Add(30*time.Second))
			mock.ExpectGetDel(challengeKey("ch-1")).SetVal(payload)

			err := svc.Consume(context.Background(), "ch-1", tc.userID, tc.satkerID, tc.deviceID)
			assert.ErrorIs(t, err, challengeerrors.ErrChallengeMismatch)
		})
	}
}

func TestService_Consume_Expired(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	svc := NewService(rdb)

	payload := storedChallenge(t, "user-1", "satker-1", "device-1", time.Now().UTC().Add(-time.Second))
	mock.ExpectGetDel(challengeKey("ch-1")).SetVal(payload)

	err := svc.Consume(context.Background(), "ch-1", "user-1", "satker-1", "device-1")
	assert.ErrorIs(t, err, challengeerrors.ErrChallengeExpired)
}

func TestService_Consume_StoreError(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	svc := NewService(rdb)

	mock.ExpectGetDel(challengeKey("ch-1")).SetErr(errors.New("connection refused"))

	err := svc.Consume(context.Background(), "ch-1", "user-1", "satker-1", "device-1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, challengeerrors.ErrChallengeNotFound)
}

package tukin_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-presensi/internal/tukin"
	tukinerrors "go-presensi/internal/tukin/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeTukinService struct {
	generateFn func(ctx context.Context, actorID string, req tukin.GenerateRequest) (tukin.GenerateResponse, error)
}

func (f *fakeTukinService) CreatePolicy(ctx context.Context, req tukin.CreatePolicyRequest) (tukin.PolicyResponse, error) {
	return tukin.PolicyResponse{}, nil
}

func (f *fakeTukinService) GetPolicies(ctx context.Context) ([]tukin.PolicyResponse, error) {
	return nil, nil
}

func (f *fakeTukinService) DeletePolicy(ctx context.Context, id string) error { return nil }

func (f *fakeTukinService) Preview(ctx context.Context, month string, satkerID, userID *string) ([]tukin.UserAccrual, error) {
	return nil, nil
}

func (f *fakeTukinService) Generate(ctx context.Context, actorID string, req tukin.GenerateRequest) (tukin.GenerateResponse, error) {
	if f.generateFn != nil {
		return f.generateFn(ctx, actorID, req)
	}
	return tukin.GenerateResponse{}, nil
}

func (f *fakeTukinService) GetCalculations(ctx context.Context, month string, satkerID *string) ([]tukin.CalculationResponse, error) {
	return nil, nil
}

func (f *fakeTukinService) GetCalculation(ctx context.Context, month, userID string) (tukin.CalculationResponse, error) {
	return tukin.CalculationResponse{}, nil
}

// Middleware idempotency menitipkan kunci lock + cache di context; handler
// Generate wajib melepas lock dan mengisi cache respons supaya retry dengan
// Idempotency-Key yang sama dijawab dari cache, bukan ditolak 409.
func TestTukinHandler_GenerateIdempotencyKeys(t *testing.T) {
	gin.SetMode(gin.TestMode)

	actorID := uuid.New().String()
	cacheKey := "idemp:/api/v1/tukin/generate:" + actorID + ":kunci-1"
	lockKey := cacheKey + ":lock"

	newGenerateContext := func(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
		t.Helper()
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/tukin/generate",
			strings.NewReader(`{"month":"2026-01"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", actorID)
		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)
		return c, w
	}

	t.Run("success mengisi cache lalu melepas lock", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()

		want := tukin.GenerateResponse{Month: "2026-01", UserCount: 2}
		payload, err := json.Marshal(want)
		assert.NoError(t, err)

		redisMock.ExpectSet(cacheKey, payload, 24*time.Hour).SetVal("OK")
		redisMock.ExpectDel(lockKey).SetVal(1)

		h := tukin.NewHandlerWithRedis(&fakeTukinService{
			generateFn: func(ctx context.Context, gotActor string, req tukin.GenerateRequest) (tukin.GenerateResponse, error) {
				assert.Equal(t, actorID, gotActor)
				return want, nil
			},
		}, rdb)

		c, w := newGenerateContext(t)
		h.Generate(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("negative error tetap melepas lock tanpa cache", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectDel(lockKey).SetVal(1)

		h := tukin.NewHandlerWithRedis(&fakeTukinService{
			generateFn: func(ctx context.Context, actorID string, req tukin.GenerateRequest) (tukin.GenerateResponse, error) {
				return tukin.GenerateResponse{}, tukinerrors.ErrNoActivePolicy
			},
		}, rdb)

		c, w := newGenerateContext(t)
		h.Generate(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}

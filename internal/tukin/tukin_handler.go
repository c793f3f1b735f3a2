package tukin

import (
	"encoding/json"
	"net/http"
	"time"

	"go-presensi/internal/shared/apperror"
	"go-presensi/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// NewHandlerWithRedis membawa klien Redis untuk kontrak idempotency pada
// Generate: middleware memasang lock + kunci cache, handler yang melepas lock
// dan mengisi cache respons.
func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) CreatePolicy(c *gin.Context) {
	var req CreatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.CreatePolicy(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetPolicies(c *gin.Context) {
	resp, err := h.service.GetPolicies(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeletePolicy(c *gin.Context) {
	if err := h.service.DeletePolicy(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

// Preview menghitung tanpa menyimpan; user biasa hanya boleh melihat akrual
// miliknya sendiri, jadi user_id diambil dari token.
func (h *Handler) Preview(c *gin.Context) {
	userID := c.GetString("user_id")
	resp, err := h.service.Preview(c.Request.Context(), c.Query("month"), nil, &userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp[0], nil)
}

// PreviewScope adalah varian admin: user_id tunggal atau seluruh anggota
// satker, dua-duanya lewat query string.
func (h *Handler) PreviewScope(c *gin.Context) {
	var satkerID, userID *string
	if v := c.Query("satker_id"); v != "" {
		satkerID = &v
	}
	if v := c.Query("user_id"); v != "" {
		userID = &v
	}

	resp, err := h.service.Preview(c.Request.Context(), c.Query("month"), satkerID, userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")
	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			// Lock hanya menahan request kembar selama proses berjalan
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	resp, err := h.service.Generate(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
			}
		}
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetCalculations(c *gin.Context) {
	var satkerID *string
	if v := c.Query("satker_id"); v != "" {
		satkerID = &v
	}

	resp, err := h.service.GetCalculations(c.Request.Context(), c.Query("month"), satkerID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetMyCalculation(c *gin.Context) {
	resp, err := h.service.GetCalculation(c.Request.Context(), c.Query("month"), c.GetString("user_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

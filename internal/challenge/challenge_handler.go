package challenge

import (
	"net/http"
	"time"

	"go-presensi/internal/shared/apperror"
	"go-presensi/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Issue(c *gin.Context) {
	userID := c.GetString("user_id")
	satkerID := c.GetString("satker_id")
	// device_id dibaca dari klaim token, bukan body: identitas perangkat yang
	// diikat challenge harus sama dengan yang dicek saat consume.
	deviceID := c.GetString("device_id")

	issued, err := h.service.Issue(c.Request.Context(), userID, satkerID, deviceID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, ChallengeResponse{
		ChallengeID: issued.ChallengeID,
		Nonce:       issued.Nonce,
		ExpiresAt:   issued.ExpiresAt.Format(time.RFC3339),
	}, nil)
}

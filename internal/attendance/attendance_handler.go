package attendance

import (
	"net/http"

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

func (h *Handler) CheckIn(c *gin.Context) {
	h.check(c, true)
}

func (h *Handler) CheckOut(c *gin.Context) {
	h.check(c, false)
}

func (h *Handler) check(c *gin.Context, in bool) {
	userID := c.GetString("user_id")
	satkerID := c.GetString("satker_id")
	deviceID := c.GetString("device_id")

	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	var (
		resp SessionResponse
		err  error
	)
	if in {
		resp, err = h.service.CheckIn(c.Request.Context(), userID, satkerID, deviceID, req)
	} else {
		resp, err = h.service.CheckOut(c.Request.Context(), userID, satkerID, deviceID, req)
	}
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetMySessions(c *gin.Context) {
	resp, err := h.service.GetMySessions(c.Request.Context(), c.GetString("user_id"), c.Query("from"), c.Query("to"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Correct(c *gin.Context) {
	var req CorrectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Correct(c.Request.Context(), c.GetString("satker_id"), c.GetString("user_id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

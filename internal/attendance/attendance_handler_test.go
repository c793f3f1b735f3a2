package attendance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-presensi/internal/attendance"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeAttendanceService struct {
	checkInFn func(ctx context.Context, userID, satkerID, deviceID string, req attendance.CheckRequest) (attendance.SessionResponse, error)
}

func (f *fakeAttendanceService) CheckIn(ctx context.Context, userID, satkerID, deviceID string, req attendance.CheckRequest) (attendance.SessionResponse, error) {
	if f.checkInFn != nil {
		return f.checkInFn(ctx, userID, satkerID, deviceID, req)
	}
	return attendance.SessionResponse{}, nil
}

func (f *fakeAttendanceService) CheckOut(ctx context.Context, userID, satkerID, deviceID string, req attendance.CheckRequest) (attendance.SessionResponse, error) {
	return attendance.SessionResponse{}, nil
}

func (f *fakeAttendanceService) GetMySessions(ctx context.Context, userID, from, to string) ([]attendance.SessionResponse, error) {
	return nil, nil
}

func (f *fakeAttendanceService) Correct(ctx context.Context, satkerID, actorID string, req attendance.CorrectionRequest) (attendance.SessionResponse, error) {
	return attendance.SessionResponse{}, nil
}

func newCheckInContext(t *testing.T, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/attendances/check-in",
		strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("user_id", uuid.New().String())
	c.Set("satker_id", uuid.New().String())
	c.Set("device_id", "device-1")
	return c, w
}

func TestAttendanceHandler_CheckInBinding(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success koordinat nol lolos validasi", func(t *testing.T) {
		var got attendance.CheckRequest
		h := attendance.NewHandler(&fakeAttendanceService{
			checkInFn: func(_ context.Context, _, _, _ string, req attendance.CheckRequest) (attendance.SessionResponse, error) {
				got = req
				return attendance.SessionResponse{}, nil
			},
		})

		// Titik (0,0) adalah koordinat yang sah
		body := `{"challenge_id":"` + uuid.New().String() + `","lat":0,"lon":0}`
		c, w := newCheckInContext(t, body)
		h.CheckIn(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotNil(t, got.Lat)
		assert.NotNil(t, got.Lon)
		assert.Equal(t, 0.0, *got.Lat)
		assert.Equal(t, 0.0, *got.Lon)
	})

	t.Run("negative tanpa koordinat", func(t *testing.T) {
		h := attendance.NewHandler(&fakeAttendanceService{
			checkInFn: func(_ context.Context, _, _, _ string, _ attendance.CheckRequest) (attendance.SessionResponse, error) {
				t.Fatal("service tidak boleh terpanggil saat binding gagal")
				return attendance.SessionResponse{}, nil
			},
		})

		body := `{"challenge_id":"` + uuid.New().String() + `"}`
		c, w := newCheckInContext(t, body)
		h.CheckIn(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

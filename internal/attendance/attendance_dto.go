package attendance

type CheckRequest struct {
	ChallengeID string `json:"challenge_id" binding:"required,uuid"`
	// Pointer supaya koordinat 0 yang sah tetap lolos required
	Lat       *float64 `json:"lat" binding:"required"`
	Lon       *float64 `json:"lon" binding:"required"`
	AccuracyM float64  `json:"accuracy_m"`

	// Wajib non-NORMAL plus catatan saat posisi di luar geofence; dipaksa
	// NORMAL saat di dalam.
	LeaveType string `json:"leave_type"`
	Notes     string `json:"notes"`

	SelfieKey     string   `json:"selfie_key"`
	LivenessScore *float64 `json:"liveness_score"`
	MatchScore    *float64 `json:"match_score"`
}

type CorrectionRequest struct {
	UserID     string  `json:"user_id" binding:"required,uuid"`
	WorkDate   string  `json:"work_date" binding:"required"`
	CheckInAt  *string `json:"check_in_at"`
	CheckOutAt *string `json:"check_out_at"`
	Note       string  `json:"note" binding:"required"`
}

type EventResponse struct {
	ID         string   `json:"id"`
	EventType  string   `json:"event_type"`
	OccurredAt string   `json:"occurred_at"`
	Lat        float64  `json:"lat"`
	Lon        float64  `json:"lon"`
	AccuracyM  float64  `json:"accuracy_m"`
	GeofenceID string   `json:"geofence_id"`
	DistanceM  float64  `json:"distance_m"`
	DeviceID   string   `json:"device_id"`
	LeaveType  string   `json:"leave_type"`
	Notes      string   `json:"notes,omitempty"`
	SelfieKey  string   `json:"selfie_key,omitempty"`
	Liveness   *float64 `json:"liveness_score,omitempty"`
	Match      *float64 `json:"match_score,omitempty"`
}

type SessionResponse struct {
	ID             string          `json:"id"`
	SatkerID       string          `json:"satker_id"`
	UserID         string          `json:"user_id"`
	WorkDate       string          `json:"work_date"`
	CheckInAt      *string         `json:"check_in_at,omitempty"`
	CheckOutAt     *string         `json:"check_out_at,omitempty"`
	Status         string          `json:"status"`
	Corrected      bool            `json:"corrected"`
	CorrectionNote *string         `json:"correction_note,omitempty"`
	Events         []EventResponse `json:"events,omitempty"`
}

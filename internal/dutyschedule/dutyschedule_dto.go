package dutyschedule

type CreateScheduleRequest struct {
	UserID  string `json:"user_id" binding:"required,uuid"`
	StartAt string `json:"start_at" binding:"required"`
	EndAt   string `json:"end_at" binding:"required"`
	Notes   string `json:"notes"`
}

type CreateRequestRequest struct {
	UserID  string `json:"user_id" binding:"required,uuid"`
	StartAt string `json:"start_at" binding:"required"`
	EndAt   string `json:"end_at" binding:"required"`
	Notes   string `json:"notes"`
}

type RejectRequestRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required"`
}

type ScheduleResponse struct {
	ID        string `json:"id"`
	SatkerID  string `json:"satker_id"`
	UserID    string `json:"user_id"`
	StartAt   string `json:"start_at"`
	EndAt     string `json:"end_at"`
	Notes     string `json:"notes,omitempty"`
	CreatedBy string `json:"created_by"`
}

type RequestResponse struct {
	ID              string  `json:"id"`
	SatkerID        string  `json:"satker_id"`
	UserID          string  `json:"user_id"`
	StartAt         string  `json:"start_at"`
	EndAt           string  `json:"end_at"`
	Notes           string  `json:"notes,omitempty"`
	Status          string  `json:"status"`
	CreatedBy       string  `json:"created_by"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	ScheduleID      *string `json:"schedule_id,omitempty"`
}

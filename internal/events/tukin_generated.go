package events

import "time"

const TukinLifecycleTopic = "presensi.tukin.lifecycle.v1"

const TukinCalculationGenerated = "tukin.calculation.generated.v1"

// TukinGeneratedEvent diterbitkan lewat outbox setiap kali snapshot tukin
// bulanan selesai di-generate (bukan preview).
type TukinGeneratedEvent struct {
	EventType   string    `json:"event_type"`
	Month       string    `json:"month"`
	SatkerID    string    `json:"satker_id,omitempty"`
	UserCount   int       `json:"user_count"`
	GeneratedBy string    `json:"generated_by"`
	Forced      bool      `json:"forced"`
	OccurredAt  time.Time `json:"occurred_at"`
}

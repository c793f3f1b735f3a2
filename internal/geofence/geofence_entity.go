package geofence

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Geofence struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SatkerID uuid.UUID `gorm:"type:uuid;not null;index:idx_geofences_satker_active"`
	Name     string    `gorm:"type:varchar(150);not null"`
	Lat      float64   `gorm:"type:double precision;not null"`
	Lon      float64   `gorm:"type:double precision;not null"`
	RadiusM  float64   `gorm:"type:double precision;not null"`
	IsActive bool      `gorm:"not null;default:true;index:idx_geofences_satker_active"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

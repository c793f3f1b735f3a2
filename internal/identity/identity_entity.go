package identity

import (
	"time"

	"github.com/google/uuid"
)

// Entitas di paket ini dimiliki oleh layanan kepegawaian; di sini hanya
// dibaca (lookup user, satker, dan base tukin per pangkat).

type Satker struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"type:varchar(150);not null"`
	Timezone string    `gorm:"type:varchar(50);not null;default:'Asia/Jakarta'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Rank struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(100);not null"`
	BaseTukin int64     `gorm:"type:bigint;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type User struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SatkerID uuid.UUID  `gorm:"type:uuid;not null;index"`
	FullName string     `gorm:"type:varchar(150);not null"`
	RankID   *uuid.UUID `gorm:"type:uuid"`

	Rank *Rank `gorm:"foreignKey:RankID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

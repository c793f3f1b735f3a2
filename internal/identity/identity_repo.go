package identity

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindUserByID(ctx context.Context, userID string) (*User, error)
	FindUsersBySatker(ctx context.Context, satkerID string) ([]User, error)
	FindSatkerByID(ctx context.Context, satkerID string) (*Satker, error)
	// BaseTukinForUser mengembalikan 0 jika user belum punya pangkat.
	BaseTukinForUser(ctx context.Context, userID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindUserByID(ctx context.Context, userID string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Preload("Rank").
		First(&u, "id = ?", userID).Error
	return &u, err
}

func (r *repository) FindUsersBySatker(ctx context.Context, satkerID string) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Where("satker_id = ?", satkerID).
		Order("full_name ASC").
		Find(&users).Error
	return users, err
}

func (r *repository) FindSatkerByID(ctx context.Context, satkerID string) (*Satker, error) {
	var s Satker
	err := r.db.WithContext(ctx).First(&s, "id = ?", satkerID).Error
	return &s, err
}

func (r *repository) BaseTukinForUser(ctx context.Context, userID string) (int64, error) {
	u, err := r.FindUserByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if u.Rank == nil {
		return 0, nil
	}
	return u.Rank.BaseTukin, nil
}

package geofence

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, g *Geofence) error
	FindAllBySatker(ctx context.Context, satkerID string) ([]Geofence, error)
	// FindActiveBySatker urut ascending by id supaya pemilihan fence terdekat
	// deterministik saat jarak seri.
	FindActiveBySatker(ctx context.Context, satkerID string) ([]Geofence, error)
	FindByIDAndSatker(ctx context.Context, satkerID, id string) (*Geofence, error)
	Update(ctx context.Context, g *Geofence) error
	Delete(ctx context.Context, satkerID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, g *Geofence) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *repository) FindAllBySatker(ctx context.Context, satkerID string) ([]Geofence, error) {
	var fences []Geofence
	err := r.db.WithContext(ctx).
		Where("satker_id = ?", satkerID).
		Order("created_at ASC").
		Find(&fences).Error
	return fences, err
}

func (r *repository) FindActiveBySatker(ctx context.Context, satkerID string) ([]Geofence, error) {
	var fences []Geofence
	err := r.db.WithContext(ctx).
		Where("satker_id = ?", satkerID).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&fences).Error
	return fences, err
}

func (r *repository) FindByIDAndSatker(ctx context.Context, satkerID, id string) (*Geofence, error) {
	var g Geofence
	err := r.db.WithContext(ctx).
		Where("satker_id = ?", satkerID).
		First(&g, "id = ?", id).Error
	return &g, err
}

func (r *repository) Update(ctx context.Context, g *Geofence) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *repository) Delete(ctx context.Context, satkerID, id string) error {
	return r.db.WithContext(ctx).
		Where("satker_id = ?", satkerID).
		Delete(&Geofence{}, "id = ?", id).Error
}

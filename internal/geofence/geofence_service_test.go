package geofence

import (
	"context"
	"testing"

	geofenceerrors "go-presensi/internal/geofence/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	createFn             func(ctx context.Context, g *Geofence) error
	findAllBySatkerFn    func(ctx context.Context, satkerID string) ([]Geofence, error)
	findActiveBySatkerFn func(ctx context.Context, satkerID string) ([]Geofence, error)
	findByIDAndSatkerFn  func(ctx context.Context, satkerID, id string) (*Geofence, error)
	updateFn             func(ctx context.Context, g *Geofence) error
	deleteFn             func(ctx context.Context, satkerID, id string) error
}

func (f *fakeRepo) Create(ctx context.Context, g *Geofence) error { return f.createFn(ctx, g) }
func (f *fakeRepo) FindAllBySatker(ctx context.Context, satkerID string) ([]Geofence, error) {
	return f.findAllBySatkerFn(ctx, satkerID)
}
func (f *fakeRepo) FindActiveBySatker(ctx context.Context, satkerID string) ([]Geofence, error) {
	return f.findActiveBySatkerFn(ctx, satkerID)
}
func (f *fakeRepo) FindByIDAndSatker(ctx context.Context, satkerID, id string) (*Geofence, error) {
	return f.findByIDAndSatkerFn(ctx, satkerID, id)
}
func (f *fakeRepo) Update(ctx context.Context, g *Geofence) error { return f.updateFn(ctx, g) }
func (f *fakeRepo) Delete(ctx context.Context, satkerID, id string) error {
	return f.deleteFn(ctx, satkerID, id)
}

// fenceAtNorth menaruh fence sekian meter di utara titik (0,0).
// 1 derajat lintang ~ 111195 m.
func fenceAtNorth(meters float64, radius float64) Geofence {
	return Geofence{
		ID:       uuid.New(),
		SatkerID: uuid.New(),
		Name:     "fence",
		Lat:      meters / 111195.0,
		Lon:      0,
		RadiusM:  radius,
		IsActive: true,
	}
}

func TestService_Nearest_PicksClosest(t *testing.T) {
	far := fenceAtNorth(120, 50)
	near := fenceAtNorth(45, 50)
	farther := fenceAtNorth(300, 50)

	repo := &fakeRepo{
		findActiveBySatkerFn: func(ctx context.Context, satkerID string) ([]Geofence, error) {
			return []Geofence{far, near, farther}, nil
		},
	}
	svc := NewService(repo)

	res, err := svc.Nearest(context.Background(), uuid.New().String(), 0, 0)
	assert.NoError(t, err)
	assert.Equal(t, near.ID, res.GeofenceID)
	assert.InDelta(t, 45, res.DistanceM, 1)
	assert.True(t, res.WithinRadius())
}

func TestService_Nearest_OutsideRadius(t *testing.T) {
	only := fenceAtNorth(120, 50)

	repo := &fakeRepo{
		findActiveBySatkerFn: func(ctx context.Context, satkerID string) ([]Geofence, error) {
			return []Geofence{only}, nil
		},
	}
	svc := NewService(repo)

	res, err := svc.Nearest(context.Background(), uuid.New().String(), 0, 0)
	assert.NoError(t, err)
	assert.Equal(t, only.ID, res.GeofenceID)
	assert.False(t, res.WithinRadius())
}

func TestService_Nearest_NoActiveFence(t *testing.T) {
	repo := &fakeRepo{
		findActiveBySatkerFn: func(ctx context.Context, satkerID string) ([]Geofence, error) {
			return nil, nil
		},
	}
	svc := NewService(repo)

	_, err := svc.Nearest(context.Background(), uuid.New().String(), 0, 0)
	assert.ErrorIs(t, err, geofenceerrors.ErrNoActiveGeofence)
}

func TestService_Nearest_TieBreaksOnListOrder(t *testing.T) {
	a := fenceAtNorth(100, 50)
	b := fenceAtNorth(100, 50)

	repo := &fakeRepo{
		findActiveBySatkerFn: func(ctx context.Context, satkerID string) ([]Geofence, error) {
			// Repo mengembalikan urut by id; fence pertama menang saat seri
			return []Geofence{a, b}, nil
		},
	}
	svc := NewService(repo)

	res, err := svc.Nearest(context.Background(), uuid.New().String(), 0, 0)
	assert.NoError(t, err)
	assert.Equal(t, a.ID, res.GeofenceID)
}

func TestService_Create_RejectsNonPositiveRadius(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), uuid.New().String(), CreateGeofenceRequest{
		Name:    "kantor",
		Lat:     -6.2,
		Lon:     106.8,
		RadiusM: 0,
	})
	assert.ErrorIs(t, err, geofenceerrors.ErrInvalidRadius)
}

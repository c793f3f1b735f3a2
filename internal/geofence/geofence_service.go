package geofence

import (
	"context"
	"errors"

	geofenceerrors "go-presensi/internal/geofence/errors"
	"go-presensi/internal/shared/geo"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NearestResult adalah fence aktif terdekat beserta jarak ke titik presensi.
type NearestResult struct {
	GeofenceID uuid.UUID
	Name       string
	DistanceM  float64
	RadiusM    float64
}

// WithinRadius true jika titik berada di dalam perimeter fence.
func (n NearestResult) WithinRadius() bool {
	return n.DistanceM <= n.RadiusM
}

type Service interface {
	Create(ctx context.Context, satkerID string, req CreateGeofenceRequest) (GeofenceResponse, error)
	GetAll(ctx context.Context, satkerID string) ([]GeofenceResponse, error)
	Update(ctx context.Context, satkerID, id string, req UpdateGeofenceRequest) (GeofenceResponse, error)
	Delete(ctx context.Context, satkerID, id string) error
	// Nearest mengembalikan ErrNoActiveGeofence jika satker tidak punya fence
	// aktif; caller memperlakukannya sebagai kegagalan keras.
	Nearest(ctx context.Context, satkerID string, lat, lon float64) (NearestResult, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("geofence.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("geofence.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, satkerID string, req CreateGeofenceRequest) (GeofenceResponse, error) {
	satkerUUID, err := uuid.Parse(satkerID)
	if err != nil {
		return GeofenceResponse{}, geofenceerrors.ErrInvalidSatkerID
	}
	if req.RadiusM <= 0 {
		return GeofenceResponse{}, geofenceerrors.ErrInvalidRadius
	}

	g := &Geofence{
		ID:       uuid.New(),
		SatkerID: satkerUUID,
		Name:     req.Name,
		Lat:      req.Lat,
		Lon:      req.Lon,
		RadiusM:  req.RadiusM,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, g); err != nil {
		s.logger.Error("create geofence failed", zap.Error(err))
		return GeofenceResponse{}, err
	}

	s.logger.Info("geofence created",
		zap.String("geofence_id", g.ID.String()),
		zap.String("satker_id", satkerID),
	)
	return mapToResponse(*g), nil
}

func (s *service) GetAll(ctx context.Context, satkerID string) ([]GeofenceResponse, error) {
	fences, err := s.repo.FindAllBySatker(ctx, satkerID)
	if err != nil {
		return nil, err
	}
	resp := make([]GeofenceResponse, len(fences))
	for i, g := range fences {
		resp[i] = mapToResponse(g)
	}
	return resp, nil
}

func (s *service) Update(ctx context.Context, satkerID, id string, req UpdateGeofenceRequest) (GeofenceResponse, error) {
	g, err := s.repo.FindByIDAndSatker(ctx, satkerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GeofenceResponse{}, geofenceerrors.ErrGeofenceNotFound
		}
		return GeofenceResponse{}, err
	}

	if req.RadiusM != nil {
		if *req.RadiusM <= 0 {
			return GeofenceResponse{}, geofenceerrors.ErrInvalidRadius
		}
		g.RadiusM = *req.RadiusM
	}
	if req.Name != nil {
		g.Name = *req.Name
	}
	if req.Lat != nil {
		g.Lat = *req.Lat
	}
	if req.Lon != nil {
		g.Lon = *req.Lon
	}
	if req.IsActive != nil {
		g.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, g); err != nil {
		s.logger.Error("update geofence failed", zap.String("geofence_id", id), zap.Error(err))
		return GeofenceResponse{}, err
	}
	return mapToResponse(*g), nil
}

func (s *service) Delete(ctx context.Context, satkerID, id string) error {
	return s.repo.Delete(ctx, satkerID, id)
}

func (s *service) Nearest(ctx context.Context, satkerID string, lat, lon float64) (NearestResult, error) {
	fences, err := s.repo.FindActiveBySatker(ctx, satkerID)
	if err != nil {
		return NearestResult{}, err
	}
	if len(fences) == 0 {
		return NearestResult{}, geofenceerrors.ErrNoActiveGeofence
	}

	// Repo sudah mengurutkan ascending by id; scan linear mempertahankan
	// urutan itu sebagai tie-break saat jarak sama.
	best := NearestResult{
		GeofenceID: fences[0].ID,
		Name:       fences[0].Name,
		DistanceM:  geo.DistanceMeters(lat, lon, fences[0].Lat, fences[0].Lon),
		RadiusM:    fences[0].RadiusM,
	}
	for _, f := range fences[1:] {
		d := geo.DistanceMeters(lat, lon, f.Lat, f.Lon)
		if d < best.DistanceM {
			best = NearestResult{
				GeofenceID: f.ID,
				Name:       f.Name,
				DistanceM:  d,
				RadiusM:    f.RadiusM,
			}
		}
	}

	return best, nil
}

func mapToResponse(g Geofence) GeofenceResponse {
	return GeofenceResponse{
		ID:       g.ID.String(),
		SatkerID: g.SatkerID.String(),
		Name:     g.Name,
		Lat:      g.Lat,
		Lon:      g.Lon,
		RadiusM:  g.RadiusM,
		IsActive: g.IsActive,
	}
}

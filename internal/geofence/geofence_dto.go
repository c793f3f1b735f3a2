package geofence

type CreateGeofenceRequest struct {
	Name    string  `json:"name" binding:"required"`
	Lat     float64 `json:"lat" binding:"required"`
	Lon     float64 `json:"lon" binding:"required"`
	RadiusM float64 `json:"radius_m" binding:"required"`
}

type UpdateGeofenceRequest struct {
	Name     *string  `json:"name"`
	Lat      *float64 `json:"lat"`
	Lon      *float64 `json:"lon"`
	RadiusM  *float64 `json:"radius_m"`
	IsActive *bool    `json:"is_active"`
}

type GeofenceResponse struct {
	ID       string  `json:"id"`
	SatkerID string  `json:"satker_id"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	RadiusM  float64 `json:"radius_m"`
	IsActive bool    `json:"is_active"`
}

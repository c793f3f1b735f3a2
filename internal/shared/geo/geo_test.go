package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMeters_SamePoint(t *testing.T) {
	assert.Equal(t, 0.0, DistanceMeters(-6.2, 106.8, -6.2, 106.8))
}

func TestDistanceMeters_OneDegreeLatitude(t *testing.T) {
	// 1 derajat lintang ~ 111.19 km
	d := DistanceMeters(0, 0, 1, 0)
	assert.InDelta(t, 111195, d, 100)
}

func TestDistanceMeters_TenKilometers(t *testing.T) {
	// ~0.0899 derajat lintang dari ekuator ~ 10 km
	d := DistanceMeters(0, 0, 0.0899, 0)
	assert.InDelta(t, 10000, d, 50)
}

func TestDistanceMeters_JakartaOffice(t *testing.T) {
	// Monas -> Bundaran HI, sekitar 2.3-2.5 km
	d := DistanceMeters(-6.17511, 106.82715, -6.19481, 106.82305)
	assert.Greater(t, d, 2000.0)
	assert.Less(t, d, 3000.0)
}

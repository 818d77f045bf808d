package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance_SamePoint(t *testing.T) {
	assert.Equal(t, 0.0, HaversineDistance(-33.8688, 151.2093, -33.8688, 151.2093))
}

func TestHaversineDistance_KnownPair(t *testing.T) {
	// Sydney Town Hall to Central Station, roughly 1.3 km
	d := HaversineDistance(-33.8732, 151.2070, -33.8832, 151.2059)
	assert.InDelta(t, 1115, d, 50)
}

func TestPointToSegmentDistance_Perpendicular(t *testing.T) {
	// Point 0.001 deg north of a west-east segment, about 111 m
	d := PointToSegmentDistance(-33.869, 151.210, -33.870, 151.200, -33.870, 151.220)
	assert.InDelta(t, 111, d, 5)
}

func TestPointToSegmentDistance_BeyondEndpoint(t *testing.T) {
	// Point past the segment end clamps to the nearest endpoint
	d := PointToSegmentDistance(-33.870, 151.230, -33.870, 151.200, -33.870, 151.220)
	want := HaversineDistance(-33.870, 151.230, -33.870, 151.220)
	assert.InDelta(t, want, d, 1)
}

func TestPointToSegmentDistance_DegenerateSegment(t *testing.T) {
	d := PointToSegmentDistance(-33.870, 151.210, -33.870, 151.200, -33.870, 151.200)
	want := HaversineDistance(-33.870, 151.210, -33.870, 151.200)
	assert.Equal(t, want, d)
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, ValidateCoordinates(-33.8688, 151.2093))
	assert.False(t, ValidateCoordinates(-91, 151))
	assert.False(t, ValidateCoordinates(-33, 181))
}

func TestValidateThreshold(t *testing.T) {
	assert.True(t, ValidateThreshold(16))
	assert.False(t, ValidateThreshold(0))
	assert.False(t, ValidateThreshold(5001))
}

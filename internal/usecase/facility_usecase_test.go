package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/saferoute-assistant/internal/domain"
	"github.com/saferoute-assistant/internal/usecase"
)

func TestFacilityUseCase_GetLamps(t *testing.T) {
	ctx := context.Background()
	box := domain.BoundingBox{MinLat: -37.9, MaxLat: -37.7, MinLon: 144.8, MaxLon: 145.0}
	lamps := []domain.StreetLamp{{ID: "l1"}, {ID: "l2"}}

	t.Run("cache hit skips the external source", func(t *testing.T) {
		mockCache := &MockCacheRepository{}
		mockFacility := &MockFacilityRepository{}
		mockCache.On("GetLamps", ctx, box).Return(lamps, nil)

		uc := usecase.NewFacilityUseCase(mockFacility, mockCache, &MockMapRepository{}, time.Hour, time.Hour, zap.NewNop())
		got, err := uc.GetLamps(ctx, box)

		assert.NoError(t, err)
		assert.Len(t, got, 2)
		mockFacility.AssertNotCalled(t, "SearchStreetLamps", mock.Anything, mock.Anything)
	})

	t.Run("cache miss queries and caches", func(t *testing.T) {
		mockCache := &MockCacheRepository{}
		mockFacility := &MockFacilityRepository{}
		mockCache.On("GetLamps", ctx, box).Return(nil, nil)
		mockFacility.On("SearchStreetLamps", ctx, box).Return(lamps, nil)
		mockCache.On("SetLamps", ctx, box, lamps, time.Hour).Return(nil)

		uc := usecase.NewFacilityUseCase(mockFacility, mockCache, &MockMapRepository{}, time.Hour, time.Hour, zap.NewNop())
		got, err := uc.GetLamps(ctx, box)

		assert.NoError(t, err)
		assert.Len(t, got, 2)
		mockCache.AssertCalled(t, "SetLamps", ctx, box, lamps, time.Hour)
	})

	t.Run("source failure surfaces", func(t *testing.T) {
		mockCache := &MockCacheRepository{}
		mockFacility := &MockFacilityRepository{}
		mockCache.On("GetLamps", ctx, box).Return(nil, nil)
		mockFacility.On("SearchStreetLamps", ctx, box).Return(nil, assert.AnError)

		uc := usecase.NewFacilityUseCase(mockFacility, mockCache, &MockMapRepository{}, time.Hour, time.Hour, zap.NewNop())
		_, err := uc.GetLamps(ctx, box)

		assert.Error(t, err)
	})
}

func TestFacilityUseCase_FindNearRoute(t *testing.T) {
	ctx := context.Background()
	session := routedSession("s1")
	base := domain.Point{Lat: -37.8000, Lon: 144.9050}

	facilities := []domain.Facility{
		{ID: "f1", Name: "St Vincent's", Kind: domain.FacilityHospital, Point: offsetPoint(base, 200)},
		{ID: "f2", Name: "Royal Melbourne", Kind: domain.FacilityHospital, Point: offsetPoint(base, 50)},
		{ID: "f3", Name: "Far Away Clinic", Kind: domain.FacilityHospital, Point: offsetPoint(base, 400)},
	}

	mockCache := &MockCacheRepository{}
	mockFacility := &MockFacilityRepository{}
	mockMap := &MockMapRepository{}
	mockCache.On("GetFacilities", ctx, domain.FacilityHospital, mock.Anything).Return(nil, nil)
	mockFacility.On("SearchFacilities", ctx, domain.FacilityHospital, mock.Anything).Return(facilities, nil)
	mockCache.On("SetFacilities", ctx, domain.FacilityHospital, mock.Anything, facilities, time.Hour).Return(nil)
	mockMap.On("SetFacilityMarkers", ctx, "s1", domain.FacilityHospital, mock.Anything).Return(nil)

	uc := usecase.NewFacilityUseCase(mockFacility, mockCache, mockMap, time.Hour, time.Hour, zap.NewNop())
	near, err := uc.FindNearRoute(ctx, session, domain.FacilityHospital, 250)

	assert.NoError(t, err)
	assert.Len(t, near, 2)
	// Sorted nearest first
	assert.Equal(t, "Royal Melbourne", near[0].Facility.Name)
	assert.Equal(t, "St Vincent's", near[1].Facility.Name)
	assert.Less(t, near[0].Distance, near[1].Distance)
	mockMap.AssertCalled(t, "SetFacilityMarkers", ctx, "s1", domain.FacilityHospital, mock.Anything)
}

func TestFacilityUseCase_FindNearRoute_NoRoute(t *testing.T) {
	uc := usecase.NewFacilityUseCase(&MockFacilityRepository{}, &MockCacheRepository{}, &MockMapRepository{}, time.Hour, time.Hour, zap.NewNop())

	near, err := uc.FindNearRoute(context.Background(), &domain.Session{ID: "s1"}, domain.FacilityPolice, 250)

	assert.NoError(t, err)
	assert.Empty(t, near)
}

package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/saferoute-assistant/internal/domain"
	apperrors "github.com/saferoute-assistant/internal/pkg/errors"
	"github.com/saferoute-assistant/internal/usecase"
)

type analysisFixture struct {
	sessionRepo  *MockSessionRepository
	crimeRepo    *MockCrimeRepository
	mapRepo      *MockMapRepository
	facilityRepo *MockFacilityRepository
	cacheRepo    *MockCacheRepository
	uc           *usecase.AnalysisUseCase
}

func newAnalysisFixture() *analysisFixture {
	logger := zap.NewNop()
	f := &analysisFixture{
		sessionRepo:  &MockSessionRepository{},
		crimeRepo:    &MockCrimeRepository{},
		mapRepo:      &MockMapRepository{},
		facilityRepo: &MockFacilityRepository{},
		cacheRepo:    &MockCacheRepository{},
	}

	thresholds := usecase.SafetyThresholds{
		CrimeThresholdMeters: 16,
		LampBufferMeters:     25,
		FacilityRadiusMeters: 250,
		WellLitPer100m:       1.5,
	}

	proximityUC := usecase.NewProximityUseCase(f.crimeRepo, f.mapRepo, logger)
	facilityUC := usecase.NewFacilityUseCase(f.facilityRepo, f.cacheRepo, f.mapRepo, time.Hour, time.Hour, logger)
	f.uc = usecase.NewAnalysisUseCase(f.sessionRepo, proximityUC, facilityUC, thresholds, logger)
	return f
}

func (f *analysisFixture) expectCrimeFilter(sessionID string, incidents []domain.CrimeIncident) {
	f.crimeRepo.On("ListIncidents", mock.Anything, mock.Anything).Return(incidents, nil)
	f.mapRepo.On("GetCrimeSource", mock.Anything, sessionID).Return(nil, nil)
	f.mapRepo.On("SetClustering", mock.Anything, sessionID, false).Return(nil)
	f.mapRepo.On("SetCrimeSource", mock.Anything, sessionID, mock.Anything).Return(nil)
}

func TestAnalysisUseCase_RequiresRoute(t *testing.T) {
	f := newAnalysisFixture()
	f.sessionRepo.On("Get", mock.Anything, "s1").Return(&domain.Session{ID: "s1"}, nil)

	_, err := f.uc.TimePatternsForSession(context.Background(), "s1")
	assert.ErrorIs(t, err, apperrors.ErrNoRoute)

	_, err = f.uc.CrimeForSession(context.Background(), "s1")
	assert.ErrorIs(t, err, apperrors.ErrNoRoute)

	_, err = f.uc.LightingForSession(context.Background(), "s1")
	assert.ErrorIs(t, err, apperrors.ErrNoRoute)
}

func TestAnalysisUseCase_CrimeForSession(t *testing.T) {
	f := newAnalysisFixture()
	session := routedSession("s1")
	base := domain.Point{Lat: -37.8000, Lon: 144.9050}

	f.sessionRepo.On("Get", mock.Anything, "s1").Return(session, nil)
	f.sessionRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.expectCrimeFilter("s1", []domain.CrimeIncident{
		{ID: "a", Category: "theft", Type: "pickpocket", Point: offsetPoint(base, 4)},
	})

	breakdown, err := f.uc.CrimeForSession(context.Background(), "s1")

	assert.NoError(t, err)
	assert.Equal(t, 1, breakdown.Total)
	assert.NotEmpty(t, breakdown.SafetyBand)
}

func TestAnalysisUseCase_LightingFailureMapsToFacilityError(t *testing.T) {
	f := newAnalysisFixture()
	session := routedSession("s1")

	f.sessionRepo.On("Get", mock.Anything, "s1").Return(session, nil)
	f.cacheRepo.On("GetLamps", mock.Anything, mock.Anything).Return(nil, nil)
	f.facilityRepo.On("SearchStreetLamps", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	_, err := f.uc.LightingForSession(context.Background(), "s1")

	assert.ErrorIs(t, err, apperrors.ErrFacilitySearchFailed)
}

func TestAnalysisUseCase_RefreshForSession(t *testing.T) {
	base := domain.Point{Lat: -37.8000, Lon: 144.9050}
	incidents := []domain.CrimeIncident{
		{ID: "a", Category: "theft", Type: "pickpocket", Point: offsetPoint(base, 4)},
	}
	lamps := []domain.StreetLamp{{ID: "l1", Point: offsetPoint(base, 10)}}

	t.Run("stale stamp is skipped before any work", func(t *testing.T) {
		f := newAnalysisFixture()
		f.sessionRepo.On("Get", mock.Anything, "s1").Return(&domain.Session{ID: "s1", TurnStamp: 10}, nil)

		err := f.uc.RefreshForSession(context.Background(), "s1", 4)

		assert.NoError(t, err)
		f.crimeRepo.AssertNotCalled(t, "ListIncidents", mock.Anything, mock.Anything)
		f.sessionRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("fresh stamp recomputes and saves", func(t *testing.T) {
		f := newAnalysisFixture()
		session := routedSession("s1")
		session.TurnStamp = 4

		f.sessionRepo.On("Get", mock.Anything, "s1").Return(session, nil)
		f.sessionRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.expectCrimeFilter("s1", incidents)
		f.cacheRepo.On("GetLamps", mock.Anything, mock.Anything).Return(lamps, nil)
		f.mapRepo.On("SetLampSource", mock.Anything, "s1", mock.Anything).Return(nil)

		err := f.uc.RefreshForSession(context.Background(), "s1", 4)

		assert.NoError(t, err)
		assert.Equal(t, 1, session.CrimeView.Count())
		assert.Equal(t, 1, session.LampView.Count())
		f.sessionRepo.AssertCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("result is discarded when route changed mid-flight", func(t *testing.T) {
		f := newAnalysisFixture()
		session := routedSession("s1")
		session.TurnStamp = 4
		fresh := routedSession("s1")
		fresh.TurnStamp = 9

		f.sessionRepo.On("Get", mock.Anything, "s1").Return(session, nil).Once()
		f.sessionRepo.On("Get", mock.Anything, "s1").Return(fresh, nil).Once()
		f.expectCrimeFilter("s1", incidents)
		f.cacheRepo.On("GetLamps", mock.Anything, mock.Anything).Return(lamps, nil)
		f.mapRepo.On("SetLampSource", mock.Anything, "s1", mock.Anything).Return(nil)

		err := f.uc.RefreshForSession(context.Background(), "s1", 4)

		assert.NoError(t, err)
		assert.Nil(t, fresh.CrimeView)
		f.sessionRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("lamp failure keeps the crime refresh", func(t *testing.T) {
		f := newAnalysisFixture()
		session := routedSession("s1")
		session.TurnStamp = 4

		f.sessionRepo.On("Get", mock.Anything, "s1").Return(session, nil)
		f.sessionRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.expectCrimeFilter("s1", incidents)
		f.cacheRepo.On("GetLamps", mock.Anything, mock.Anything).Return(nil, nil)
		f.facilityRepo.On("SearchStreetLamps", mock.Anything, mock.Anything).Return(nil, assert.AnError)

		err := f.uc.RefreshForSession(context.Background(), "s1", 4)

		assert.NoError(t, err)
		assert.Equal(t, 1, session.CrimeView.Count())
		assert.Nil(t, session.LampView)
	})
}

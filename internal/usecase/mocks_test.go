package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/saferoute-assistant/internal/domain"
)

// MockCrimeRepository is a mock of CrimeRepository
type MockCrimeRepository struct {
	mock.Mock
}

func (m *MockCrimeRepository) ListIncidents(ctx context.Context, box domain.BoundingBox) ([]domain.CrimeIncident, error) {
	args := m.Called(ctx, box)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CrimeIncident), args.Error(1)
}

func (m *MockCrimeRepository) CountAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockMapRepository is a mock of MapRepository
type MockMapRepository struct {
	mock.Mock
}

func (m *MockMapRepository) GetCrimeSource(ctx context.Context, sessionID string) ([]domain.CrimeIncident, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CrimeIncident), args.Error(1)
}

func (m *MockMapRepository) SetCrimeSource(ctx context.Context, sessionID string, incidents []domain.CrimeIncident) error {
	args := m.Called(ctx, sessionID, incidents)
	return args.Error(0)
}

func (m *MockMapRepository) GetLampSource(ctx context.Context, sessionID string) ([]domain.StreetLamp, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreetLamp), args.Error(1)
}

func (m *MockMapRepository) SetLampSource(ctx context.Context, sessionID string, lamps []domain.StreetLamp) error {
	args := m.Called(ctx, sessionID, lamps)
	return args.Error(0)
}

func (m *MockMapRepository) SetFacilityMarkers(ctx context.Context, sessionID string, kind domain.FacilityKind, facilities []domain.FacilityWithDistance) error {
	args := m.Called(ctx, sessionID, kind, facilities)
	return args.Error(0)
}

func (m *MockMapRepository) SetLayerVisibility(ctx context.Context, sessionID, layer string, visible bool) error {
	args := m.Called(ctx, sessionID, layer, visible)
	return args.Error(0)
}

func (m *MockMapRepository) SetClustering(ctx context.Context, sessionID string, enabled bool) error {
	args := m.Called(ctx, sessionID, enabled)
	return args.Error(0)
}

func (m *MockMapRepository) GetDisplayState(ctx context.Context, sessionID string) (map[string]interface{}, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]interface{}), args.Error(1)
}

// MockSessionRepository is a mock of SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) Save(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) GetLamps(ctx context.Context, box domain.BoundingBox) ([]domain.StreetLamp, error) {
	args := m.Called(ctx, box)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreetLamp), args.Error(1)
}

func (m *MockCacheRepository) SetLamps(ctx context.Context, box domain.BoundingBox, lamps []domain.StreetLamp, ttl time.Duration) error {
	args := m.Called(ctx, box, lamps, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetFacilities(ctx context.Context, kind domain.FacilityKind, box domain.BoundingBox) ([]domain.Facility, error) {
	args := m.Called(ctx, kind, box)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Facility), args.Error(1)
}

func (m *MockCacheRepository) SetFacilities(ctx context.Context, kind domain.FacilityKind, box domain.BoundingBox, facilities []domain.Facility, ttl time.Duration) error {
	args := m.Called(ctx, kind, box, facilities, ttl)
	return args.Error(0)
}

// MockFacilityRepository is a mock of FacilityRepository
type MockFacilityRepository struct {
	mock.Mock
}

func (m *MockFacilityRepository) SearchStreetLamps(ctx context.Context, box domain.BoundingBox) ([]domain.StreetLamp, error) {
	args := m.Called(ctx, box)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreetLamp), args.Error(1)
}

func (m *MockFacilityRepository) SearchFacilities(ctx context.Context, kind domain.FacilityKind, box domain.BoundingBox) ([]domain.Facility, error) {
	args := m.Called(ctx, kind, box)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Facility), args.Error(1)
}

// MockLGARepository is a mock of LGARepository
type MockLGARepository struct {
	mock.Mock
}

func (m *MockLGARepository) GetByNames(ctx context.Context, names []string) ([]domain.LGAStats, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LGAStats), args.Error(1)
}

func (m *MockLGARepository) GetByName(ctx context.Context, name string) (*domain.LGAStats, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LGAStats), args.Error(1)
}

func (m *MockLGARepository) ListNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLGARepository) ListOffenceTypes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLGARepository) GetOffenceAverages(ctx context.Context) ([]domain.OffenceAverage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OffenceAverage), args.Error(1)
}

func (m *MockLGARepository) GetRankings(ctx context.Context, limit int) ([]domain.LGARankingEntry, []domain.LGARankingEntry, error) {
	args := m.Called(ctx, limit)
	var safest, mostDangerous []domain.LGARankingEntry
	if args.Get(0) != nil {
		safest = args.Get(0).([]domain.LGARankingEntry)
	}
	if args.Get(1) != nil {
		mostDangerous = args.Get(1).([]domain.LGARankingEntry)
	}
	return safest, mostDangerous, args.Error(2)
}

// MockModelRepository is a mock of ModelRepository
type MockModelRepository struct {
	mock.Mock
}

func (m *MockModelRepository) Complete(ctx context.Context, messages []domain.Message) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}

// MockGeocodeRepository is a mock of GeocodeRepository
type MockGeocodeRepository struct {
	mock.Mock
}

func (m *MockGeocodeRepository) Forward(ctx context.Context, query string, box domain.BoundingBox, limit int) ([]domain.Place, error) {
	args := m.Called(ctx, query, box, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Place), args.Error(1)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.RouteEventMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.RouteEventMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishRouteEvent(ctx context.Context, stream string, event domain.RouteEvent) error {
	args := m.Called(ctx, stream, event)
	return args.Error(0)
}

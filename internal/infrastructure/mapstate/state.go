// Package mapstate хранит отображаемое состояние карты на стороне
// сервиса. Клиент карты опрашивает его и рисует источники и слои.
package mapstate

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/saferoute-assistant/internal/domain"
	"github.com/saferoute-assistant/internal/domain/repository"
)

type sessionState struct {
	crime      []domain.CrimeIncident
	lamps      []domain.StreetLamp
	facilities map[domain.FacilityKind][]domain.FacilityWithDistance
	layers     map[string]bool
	clustering bool
}

func newSessionState() *sessionState {
	return &sessionState{
		facilities: make(map[domain.FacilityKind][]domain.FacilityWithDistance),
		layers: map[string]bool{
			repository.LayerCrime: true,
			repository.LayerLamps: true,
		},
		clustering: true,
	}
}

// Store - потокобезопасная реализация MapRepository в памяти
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*sessionState
	logger   *zap.Logger
}

// NewStore создает новое хранилище состояния карты
func NewStore(logger *zap.Logger) *Store {
	return &Store{
		sessions: make(map[string]*sessionState),
		logger:   logger,
	}
}

func (s *Store) state(sessionID string) *sessionState {
	st, ok := s.sessions[sessionID]
	if !ok {
		st = newSessionState()
		s.sessions[sessionID] = st
	}
	return st
}

func (s *Store) GetCrimeSource(_ context.Context, sessionID string) ([]domain.CrimeIncident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	out := make([]domain.CrimeIncident, len(st.crime))
	copy(out, st.crime)
	return out, nil
}

func (s *Store) SetCrimeSource(_ context.Context, sessionID string, incidents []domain.CrimeIncident) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(sessionID)
	st.crime = make([]domain.CrimeIncident, len(incidents))
	copy(st.crime, incidents)
	return nil
}

func (s *Store) GetLampSource(_ context.Context, sessionID string) ([]domain.StreetLamp, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	out := make([]domain.StreetLamp, len(st.lamps))
	copy(out, st.lamps)
	return out, nil
}

func (s *Store) SetLampSource(_ context.Context, sessionID string, lamps []domain.StreetLamp) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(sessionID)
	st.lamps = make([]domain.StreetLamp, len(lamps))
	copy(st.lamps, lamps)
	return nil
}

func (s *Store) SetFacilityMarkers(_ context.Context, sessionID string, kind domain.FacilityKind, facilities []domain.FacilityWithDistance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(sessionID)
	out := make([]domain.FacilityWithDistance, len(facilities))
	copy(out, facilities)
	st.facilities[kind] = out
	return nil
}

func (s *Store) SetLayerVisibility(_ context.Context, sessionID, layer string, visible bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state(sessionID).layers[layer] = visible
	return nil
}

func (s *Store) SetClustering(_ context.Context, sessionID string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state(sessionID).clustering = enabled
	return nil
}

func (s *Store) GetDisplayState(_ context.Context, sessionID string) (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return map[string]interface{}{}, nil
	}

	return map[string]interface{}{
		"crime":      st.crime,
		"lamps":      st.lamps,
		"facilities": st.facilities,
		"layers":     st.layers,
		"clustering": st.clustering,
	}, nil
}

// DropSession удаляет состояние карты завершенной сессии
func (s *Store) DropSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

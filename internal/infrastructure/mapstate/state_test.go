package mapstate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/saferoute-assistant/internal/domain"
	"github.com/saferoute-assistant/internal/domain/repository"
	"github.com/saferoute-assistant/internal/infrastructure/mapstate"
)

func TestStore_CrimeSource(t *testing.T) {
	ctx := context.Background()
	store := mapstate.NewStore(zap.NewNop())

	got, err := store.GetCrimeSource(ctx, "s1")
	assert.NoError(t, err)
	assert.Nil(t, got)

	incidents := []domain.CrimeIncident{{ID: "a"}, {ID: "b"}}
	assert.NoError(t, store.SetCrimeSource(ctx, "s1", incidents))

	got, err = store.GetCrimeSource(ctx, "s1")
	assert.NoError(t, err)
	assert.Len(t, got, 2)

	// Возвращается копия, мутация снаружи не влияет на хранилище
	got[0].ID = "mutated"
	again, _ := store.GetCrimeSource(ctx, "s1")
	assert.Equal(t, "a", again[0].ID)
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := mapstate.NewStore(zap.NewNop())

	assert.NoError(t, store.SetLampSource(ctx, "s1", []domain.StreetLamp{{ID: "l1"}}))

	other, err := store.GetLampSource(ctx, "s2")
	assert.NoError(t, err)
	assert.Nil(t, other)
}

func TestStore_DisplayState(t *testing.T) {
	ctx := context.Background()
	store := mapstate.NewStore(zap.NewNop())

	empty, err := store.GetDisplayState(ctx, "unknown")
	assert.NoError(t, err)
	assert.Empty(t, empty)

	assert.NoError(t, store.SetCrimeSource(ctx, "s1", []domain.CrimeIncident{{ID: "a"}}))
	assert.NoError(t, store.SetClustering(ctx, "s1", false))
	assert.NoError(t, store.SetLayerVisibility(ctx, "s1", repository.LayerLamps, false))

	state, err := store.GetDisplayState(ctx, "s1")
	assert.NoError(t, err)
	assert.Equal(t, false, state["clustering"])

	layers := state["layers"].(map[string]bool)
	assert.True(t, layers[repository.LayerCrime])
	assert.False(t, layers[repository.LayerLamps])
}

func TestStore_DropSession(t *testing.T) {
	ctx := context.Background()
	store := mapstate.NewStore(zap.NewNop())

	assert.NoError(t, store.SetCrimeSource(ctx, "s1", []domain.CrimeIncident{{ID: "a"}}))
	store.DropSession("s1")

	got, err := store.GetCrimeSource(ctx, "s1")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

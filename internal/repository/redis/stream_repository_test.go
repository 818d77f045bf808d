package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRouteEvent(t *testing.T) {
	t.Run("full record", func(t *testing.T) {
		event, err := parseRouteEvent(map[string]interface{}{
			fieldSessionID:  "s1",
			fieldStamp:      "7",
			fieldCleared:    "false",
			fieldOccurredAt: "2026-08-31T10:00:00Z",
		})

		require.NoError(t, err)
		assert.Equal(t, "s1", event.SessionID)
		assert.Equal(t, int64(7), event.Stamp)
		assert.False(t, event.Cleared)
		assert.Equal(t, time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC), event.OccurredAt)
	})

	t.Run("cleared event", func(t *testing.T) {
		event, err := parseRouteEvent(map[string]interface{}{
			fieldSessionID: "s1",
			fieldStamp:     "8",
			fieldCleared:   "true",
		})

		require.NoError(t, err)
		assert.True(t, event.Cleared)
	})

	t.Run("missing session id", func(t *testing.T) {
		_, err := parseRouteEvent(map[string]interface{}{
			fieldStamp: "7",
		})

		assert.Error(t, err)
	})

	t.Run("missing stamp", func(t *testing.T) {
		_, err := parseRouteEvent(map[string]interface{}{
			fieldSessionID: "s1",
		})

		assert.Error(t, err)
	})

	t.Run("non-numeric stamp", func(t *testing.T) {
		_, err := parseRouteEvent(map[string]interface{}{
			fieldSessionID: "s1",
			fieldStamp:     "not-a-number",
		})

		assert.Error(t, err)
	})

	t.Run("unparseable timestamp is ignored", func(t *testing.T) {
		event, err := parseRouteEvent(map[string]interface{}{
			fieldSessionID:  "s1",
			fieldStamp:      "7",
			fieldOccurredAt: "yesterday",
		})

		require.NoError(t, err)
		assert.True(t, event.OccurredAt.IsZero())
	})
}

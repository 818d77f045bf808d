package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saferoute-assistant/internal/domain"
	"github.com/saferoute-assistant/internal/usecase"
)

func newTestClassifier() *usecase.Classifier {
	return usecase.NewClassifier([]string{"Bayside", "Melbourne", "Port Phillip"})
}

func TestClassifier_Classify(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		name     string
		message  string
		hasRoute bool
		want     domain.QueryKind
	}{
		{
			name:     "time safety question with route",
			message:  "What time is safest to walk this route?",
			hasRoute: true,
			want:     domain.QueryTimeSafety,
		},
		{
			name:     "crime type question with route",
			message:  "What crimes happen along this route?",
			hasRoute: true,
			want:     domain.QueryCrimeType,
		},
		{
			name:     "streetlight question with route",
			message:  "Are there street lamps on my walking path?",
			hasRoute: true,
			want:     domain.QueryStreetlight,
		},
		{
			name:     "general safety question with route",
			message:  "Is this route safe?",
			hasRoute: true,
			want:     domain.QueryRouteSafety,
		},
		{
			name:     "hospital question with route",
			message:  "Is there a hospital near my route?",
			hasRoute: true,
			want:     domain.QueryHospital,
		},
		{
			name:     "police question with route",
			message:  "Where is the nearest police station?",
			hasRoute: true,
			want:     domain.QueryPolice,
		},
		{
			name:     "lga stats question without route",
			message:  "How many robberies were there in Bayside?",
			hasRoute: false,
			want:     domain.QueryLGAStats,
		},
		{
			name:     "lga stats question with route",
			message:  "Show me crime statistics for the Melbourne area",
			hasRoute: true,
			want:     domain.QueryLGAStats,
		},
		{
			name:     "safety question without route asks for a route",
			message:  "Is it safe to walk here?",
			hasRoute: false,
			want:     domain.QueryRouteSafety,
		},
		{
			name:     "small talk falls through to general",
			message:  "Hello, what can you do?",
			hasRoute: true,
			want:     domain.QueryGeneral,
		},
		{
			name:     "route-bound predicate is inert without a route",
			message:  "Are there street lamps on my walking path?",
			hasRoute: false,
			want:     domain.QueryGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.message, tt.hasRoute)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifier_TimeBeatsCrimeType(t *testing.T) {
	c := newTestClassifier()

	// Mentions both time and crime types; the time predicate resolves first
	got := c.Classify("When do most crimes happen on this route?", true)
	assert.Equal(t, domain.QueryTimeSafety, got)
}

func TestClassifier_LGASuppressesGenericSafety(t *testing.T) {
	c := newTestClassifier()

	// Contains safety and area wording; the area statistics reading wins
	got := c.Classify("What is the safest suburb, give me the stats", true)
	assert.Equal(t, domain.QueryLGAStats, got)
}

func TestClassifier_MatchedLGANames(t *testing.T) {
	c := newTestClassifier()

	t.Run("exact mention", func(t *testing.T) {
		names := c.MatchedLGANames("how bad is crime in bayside")
		assert.Equal(t, []string{"bayside"}, names)
	})

	t.Run("misspelled mention", func(t *testing.T) {
		names := c.MatchedLGANames("tell me about port philip crime")
		assert.Contains(t, names, "port phillip")
	})

	t.Run("no mention", func(t *testing.T) {
		assert.Empty(t, c.MatchedLGANames("is my street safe at night"))
	})
}

func TestClassifier_MentionsCrime(t *testing.T) {
	c := newTestClassifier()

	assert.True(t, c.MentionsCrime("were there any robberies around"))
	assert.True(t, c.MentionsCrime("tell me about crime"))
	assert.False(t, c.MentionsCrime("what a lovely day"))
}

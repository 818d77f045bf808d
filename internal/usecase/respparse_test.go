package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/saferoute-assistant/internal/usecase"
)

func TestParseModelReply_FullReply(t *testing.T) {
	text := `<response>Your route looks mostly safe after dark.</response>
<places>[{"name":"Royal Melbourne Hospital","type":"hospital","lat":-37.799,"lng":144.955}]</places>
<crime>{"total":4,"level":"Relatively Safe"}</crime>
<lighting>{"count":12,"density":1.8}</lighting>`

	reply := usecase.ParseModelReply(text, zap.NewNop())

	assert.Equal(t, "Your route looks mostly safe after dark.", reply.Text)
	assert.Len(t, reply.Places, 1)
	assert.Equal(t, "Royal Melbourne Hospital", reply.Places[0].Name)
	assert.InDelta(t, -37.799, reply.Places[0].Lat, 0.0001)
	assert.JSONEq(t, `{"total":4,"level":"Relatively Safe"}`, string(reply.Crime))
	assert.JSONEq(t, `{"count":12,"density":1.8}`, string(reply.Lighting))
}

func TestParseModelReply_PlainText(t *testing.T) {
	reply := usecase.ParseModelReply("Just a plain answer with no markup.", zap.NewNop())

	assert.Equal(t, "Just a plain answer with no markup.", reply.Text)
	assert.Empty(t, reply.Places)
	assert.Nil(t, reply.Crime)
	assert.Nil(t, reply.Lighting)
}

func TestParseModelReply_TextBeforeFirstTag(t *testing.T) {
	text := `Here is what I found. <crime>{"total":2}</crime>`

	reply := usecase.ParseModelReply(text, zap.NewNop())

	assert.Equal(t, "Here is what I found.", reply.Text)
	assert.JSONEq(t, `{"total":2}`, string(reply.Crime))
}

func TestParseModelReply_BrokenBlockIsIsolated(t *testing.T) {
	// A broken places block must not prevent the crime block from parsing
	text := `<response>Answer text.</response>
<places>[{"name": broken</places>
<crime>{"total":1}</crime>`

	reply := usecase.ParseModelReply(text, zap.NewNop())

	assert.Equal(t, "Answer text.", reply.Text)
	assert.Empty(t, reply.Places)
	assert.JSONEq(t, `{"total":1}`, string(reply.Crime))
}

func TestParseModelReply_UnterminatedPlaces(t *testing.T) {
	text := `<response>Answer.</response><places>[{"name":"X"`

	assert.NotPanics(t, func() {
		reply := usecase.ParseModelReply(text, zap.NewNop())
		assert.Equal(t, "Answer.", reply.Text)
		assert.Empty(t, reply.Places)
	})
}

func TestParseModelReply_TagsOnlyFallsBack(t *testing.T) {
	reply := usecase.ParseModelReply(`<response></response><crime>{"total":0}</crime>`, zap.NewNop())

	assert.Equal(t, usecase.FallbackReply, reply.Text)
}

func TestCleanForDisplay(t *testing.T) {
	t.Run("strips tags and json fragments", func(t *testing.T) {
		s := usecase.CleanForDisplay(`Take care out there. <crime>{"total": 3, "level": "x"}</crime>`)
		assert.Equal(t, "Take care out there.", s)
	})

	t.Run("never returns empty", func(t *testing.T) {
		assert.Equal(t, usecase.FallbackReply, usecase.CleanForDisplay(""))
		assert.Equal(t, usecase.FallbackReply, usecase.CleanForDisplay("<response></response>"))
	})

	t.Run("collapses whitespace", func(t *testing.T) {
		s := usecase.CleanForDisplay("hello   \n  world")
		assert.Equal(t, "hello world", s)
	})
}

func TestIsDuplicateReply(t *testing.T) {
	recent := []string{
		"Your route is rated Relatively Safe.",
		"There are 12 street lamps nearby.",
	}

	t.Run("exact duplicate", func(t *testing.T) {
		assert.True(t, usecase.IsDuplicateReply("Your route is rated Relatively Safe.", recent))
	})

	t.Run("whitespace normalized", func(t *testing.T) {
		assert.True(t, usecase.IsDuplicateReply("Your  route is rated\nRelatively Safe.", recent))
	})

	t.Run("substring of previous", func(t *testing.T) {
		assert.True(t, usecase.IsDuplicateReply("12 street lamps", recent))
	})

	t.Run("superset of previous", func(t *testing.T) {
		assert.True(t, usecase.IsDuplicateReply("As I said: There are 12 street lamps nearby. Anything else?", recent))
	})

	t.Run("fresh reply", func(t *testing.T) {
		assert.False(t, usecase.IsDuplicateReply("Crime peaks in the evening on your route.", recent))
	})

	t.Run("empty candidate never counts", func(t *testing.T) {
		assert.False(t, usecase.IsDuplicateReply("  ", recent))
	})
}

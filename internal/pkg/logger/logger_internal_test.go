package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("should write JSON outside development", func(t *testing.T) {
		var buf bytes.Buffer
		log := newWithWriter("production", "debug", &buf)

		log.Debug().Str("order", "CO2604000001").Msg("loaded")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "debug", line["level"])
		assert.Equal(t, "orderflow", line["service"])
		assert.Equal(t, "CO2604000001", line["order"])
	})

	t.Run("should default to info", func(t *testing.T) {
		var buf bytes.Buffer
		log := newWithWriter("production", "verbose", &buf)

		log.Debug().Msg("hidden")
		assert.Zero(t, buf.Len())
	})

	t.Run("should write plain text in development", func(t *testing.T) {
		var buf bytes.Buffer
		log := newWithWriter("development", "", &buf)

		log.Info().Msg("started")
		assert.Contains(t, buf.String(), "started")
		assert.False(t, json.Valid(buf.Bytes()))
	})
}

package kernel_test

import (
	"testing"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortCode_RoundTrip(t *testing.T) {
	for range 500 {
		id := kernel.NewUUID()
		code := id.ShortCode()

		decoded, err := kernel.ParseShortCode(code)
		require.NoError(t, err)
		assert.True(t, decoded.IsEqual(id))
		assert.Equal(t, code, decoded.ShortCode())
		assert.LessOrEqual(t, len(code), 22)
	}
}

func TestShortCode_KnownValues(t *testing.T) {
	tests := []struct {
		uuid string
		code string
	}{
		{"00000000-0000-0000-0000-000000000001", "1"},
		{"00000000-0000-0000-0000-00000000003d", "z"},
		{"00000000-0000-0000-0000-00000000003e", "10"},
		{"ffffffff-ffff-ffff-ffff-ffffffffffff", "7n42DGM5Tflk9n8mt7Fhc7"},
	}

	for _, tt := range tests {
		t.Run("should encode "+tt.uuid, func(t *testing.T) {
			id := kernel.MustUUIDFromString(tt.uuid)
			assert.Equal(t, tt.code, id.ShortCode())

			back, err := kernel.ParseShortCode(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.uuid, back.String())
		})
	}
}

func TestParseShortCode_Rejects(t *testing.T) {
	tests := map[string]string{
		"empty":            "",
		"illegal rune":     "abc-def",
		"too long":         "00000000000000000000000",
		"overflows 128bit": "zzzzzzzzzzzzzzzzzzzzzz",
		"decodes to nil":   "0",
	}

	for name, code := range tests {
		t.Run("should reject "+name, func(t *testing.T) {
			_, err := kernel.ParseShortCode(code)
			require.Error(t, err)
			if name != "decodes to nil" {
				assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
			}
		})
	}
}

func TestParseOrderRef(t *testing.T) {
	id := kernel.NewUUID()

	fromUUID, err := kernel.ParseOrderRef(id.String())
	require.NoError(t, err)
	assert.True(t, fromUUID.IsEqual(id))

	fromCode, err := kernel.ParseOrderRef(" " + id.ShortCode() + " ")
	require.NoError(t, err)
	assert.True(t, fromCode.IsEqual(id))
}

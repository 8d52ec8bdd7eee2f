package delivery_test

import (
	"testing"
	"time"

	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)

func newItem(t *testing.T) *delivery.Item {
	t.Helper()
	it, err := delivery.NewItem(kernel.NewUUID(), "Final logo files", now)
	require.NoError(t, err)
	return it
}

func newFile(t *testing.T, key string) *delivery.File {
	t.Helper()
	ref, err := kernel.NewFileRef(key, key+".zip", "/files/"+key)
	require.NoError(t, err)
	f, err := delivery.NewFile(kernel.NewUUID(), ref, now)
	require.NoError(t, err)
	return f
}

func TestNewItem(t *testing.T) {
	it := newItem(t)
	assert.Equal(t, delivery.Pending, it.Status())
	assert.False(t, it.IsFinal())

	_, err := delivery.NewItem(kernel.NewUUID(), " ", now)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestItem_Transitions(t *testing.T) {
	t.Run("should loop through modification and back to delivered", func(t *testing.T) {
		it := newItem(t)

		require.NoError(t, it.MarkDelivered(now))
		require.NotNil(t, it.DeliveredAt())
		require.NoError(t, it.RequestModification("colors are off", now))
		assert.Equal(t, "colors are off", it.ModificationComment())
		require.NoError(t, it.MarkDelivered(now))
		require.NoError(t, it.Accept(true, now))

		assert.Equal(t, delivery.Accepted, it.Status())
		assert.True(t, it.IsFinal())
	})

	tests := []struct {
		name string
		run  func(it *delivery.Item) error
	}{
		{"accept from pending", func(it *delivery.Item) error { return it.Accept(false, now) }},
		{"modify from pending", func(it *delivery.Item) error { return it.RequestModification("x", now) }},
		{"deliver twice", func(it *delivery.Item) error {
			_ = it.MarkDelivered(now)
			return it.MarkDelivered(now)
		}},
		{"deliver after accept", func(it *delivery.Item) error {
			_ = it.MarkDelivered(now)
			_ = it.Accept(false, now)
			return it.MarkDelivered(now)
		}},
	}
	for _, tt := range tests {
		t.Run("should reject "+tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.run(newItem(t)), errs.ErrInvalidTransition)
		})
	}

	t.Run("should require modification comment", func(t *testing.T) {
		it := newItem(t)
		require.NoError(t, it.MarkDelivered(now))
		assert.ErrorIs(t, it.RequestModification("", now), errs.ErrValueIsRequired)
		assert.Equal(t, delivery.Delivered, it.Status())
	})
}

func TestItem_Files(t *testing.T) {
	t.Run("should attach without status change", func(t *testing.T) {
		it := newItem(t)
		f := newFile(t, "a")
		require.NoError(t, it.AttachFile(f, now))

		assert.Equal(t, delivery.Pending, it.Status())
		assert.True(t, it.HasFile(f.ID()))
	})

	t.Run("should return storage ref on removal", func(t *testing.T) {
		it := newItem(t)
		f := newFile(t, "b")
		require.NoError(t, it.AttachFile(f, now))

		ref, err := it.RemoveFile(f.ID(), now)
		require.NoError(t, err)
		assert.Equal(t, "b", ref.Key())
		assert.Empty(t, it.Files())
	})

	t.Run("should refuse to remove files from accepted item", func(t *testing.T) {
		it := newItem(t)
		f := newFile(t, "c")
		require.NoError(t, it.AttachFile(f, now))
		require.NoError(t, it.MarkDelivered(now))
		require.NoError(t, it.Accept(true, now))

		_, err := it.RemoveFile(f.ID(), now)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("should report unknown file", func(t *testing.T) {
		_, err := newItem(t).RemoveFile(kernel.NewUUID(), now)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestAllAccepted(t *testing.T) {
	accepted := func(final bool) *delivery.Item {
		it := newItem(t)
		require.NoError(t, it.MarkDelivered(now))
		require.NoError(t, it.Accept(final, now))
		return it
	}

	assert.False(t, delivery.AllAccepted(nil), "no items")
	assert.False(t, delivery.AllAccepted([]*delivery.Item{accepted(false)}), "no final item")
	assert.False(t, delivery.AllAccepted([]*delivery.Item{accepted(true), newItem(t)}), "one pending")
	assert.True(t, delivery.AllAccepted([]*delivery.Item{accepted(true), accepted(false)}))
}

package queries_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func client(t *testing.T) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleClient)
	require.NoError(t, err)
	return a
}

func TestNewListOrdersQuery(t *testing.T) {
	t.Run("should default the limit", func(t *testing.T) {
		q, err := queries.NewListOrdersQuery(client(t), queries.ListOrdersFilter{})
		require.NoError(t, err)
		require.NoError(t, q.Validate())
	})

	t.Run("should reject an out of range limit and offset together", func(t *testing.T) {
		_, err := queries.NewListOrdersQuery(client(t), queries.ListOrdersFilter{Limit: queries.MaxListLimit + 1, Offset: -1})
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject an unknown status", func(t *testing.T) {
		status := order.Status(99)
		_, err := queries.NewListOrdersQuery(client(t), queries.ListOrdersFilter{Status: &status})
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should require an actor", func(t *testing.T) {
		_, err := queries.NewListOrdersQuery(kernel.Actor{}, queries.ListOrdersFilter{})
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestQueries_NotConstructedViaConstructor(t *testing.T) {
	assert.ErrorIs(t, queries.GetOrderQuery{}.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
	assert.ErrorIs(t, queries.ListOrdersQuery{}.Validate(), queries.ErrListOrdersQueryIsNotConstructed)
	assert.ErrorIs(t, queries.CountCompletedOrdersQuery{}.Validate(), queries.ErrCountCompletedOrdersQueryIsNotConstructed)
	assert.ErrorIs(t, queries.RenderContractQuery{}.Validate(), queries.ErrRenderContractQueryIsNotConstructed)
	assert.ErrorIs(t, queries.ExportLedgerQuery{}.Validate(), queries.ErrExportLedgerQueryIsNotConstructed)
}

func TestNewGetOrderQuery_RejectsZeroID(t *testing.T) {
	_, err := queries.NewGetOrderQuery(client(t), kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCountCompletedOrdersQuery_RejectsZeroID(t *testing.T) {
	_, err := queries.NewCountCompletedOrdersQuery(kernel.UUID{})
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

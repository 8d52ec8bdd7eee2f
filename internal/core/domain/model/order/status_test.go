package order_test

import (
	"testing"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to order.Status
		want     bool
	}{
		{order.Inquiry, order.QuoteRequest, true},
		{order.Inquiry, order.QuoteAccept, false},
		{order.QuoteSent, order.QuoteRequest, true},
		{order.QuoteSent, order.QuoteAccept, true},
		{order.QuoteAccept, order.InProgress, false},
		{order.Delivered, order.InRevision, true},
		{order.InRevision, order.Delivered, true},
		{order.InRevision, order.Completed, true},
		{order.InProgress, order.Completed, false},
		{order.AwaitingPayment, order.Cancelled, true},
		{order.Completed, order.Cancelled, false},
		{order.Cancelled, order.Inquiry, false},
		{order.Unknown, order.Inquiry, false},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+" to "+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatus_Cancelled_FromEveryNonTerminal(t *testing.T) {
	for _, s := range order.Statuses() {
		assert.Equal(t, !s.IsTerminal(), s.CanTransitionTo(order.Cancelled), s.String())
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range order.Statuses() {
		parsed, err := order.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := order.ParseStatus("unknown")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	_, err = order.ParseStatus("QUOTE_SENT")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

package order_test

import (
	"testing"

	"orderflow/internal/core/domain/model/confirmation"
	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/payment"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amounts(cards []*payment.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Amount().String())
	}
	return out
}

func TestOrder_QuoteAccept_InitializesLedger(t *testing.T) {
	f := newFixture(t)

	t.Run("should create one card for full payment", func(t *testing.T) {
		o := f.newOrder(t)
		f.driveTo(t, o, order.QuoteAccept)

		assert.Equal(t, []string{"1000.00"}, amounts(o.PaymentCards()))
	})

	t.Run("should split 30/40/30 for three installments", func(t *testing.T) {
		o := f.newOrder(t, withMethod(payment.Installment3_1))
		f.driveTo(t, o, order.QuoteAccept)

		assert.Equal(t, []string{"300.00", "400.00", "300.00"}, amounts(o.PaymentCards()))
	})

	t.Run("should record proposed and locked prices in history", func(t *testing.T) {
		o := f.newOrder(t)
		f.driveTo(t, o, order.QuoteRequest)
		require.NoError(t, o.SendQuote(kernel.MustMoney("1250.5"), f.provider, now))
		require.NoError(t, o.AcceptQuote(f.requester, now))

		h := o.History()
		require.Len(t, h, 3)
		assert.Equal(t, order.QuoteSent, h[1].To)
		require.NotNil(t, h[1].Price)
		assert.Equal(t, "1250.50", h[1].Price.String())
		assert.Equal(t, order.QuoteAccept, h[2].To)
		assert.Equal(t, "1250.50", h[2].Price.String())
		assert.True(t, h[2].ActorID.IsEqual(f.requester.UserID()))
		assert.Equal(t, "1250.50", o.Contract().Price().String())
		assert.Equal(t, []string{"1250.50"}, amounts(o.PaymentCards()))
	})
}

func TestOrder_IllegalTransitions(t *testing.T) {
	f := newFixture(t)

	t.Run("should reject accept quote from inquiry and leave state unchanged", func(t *testing.T) {
		o := f.newOrder(t)
		o.PullEvents()

		err := o.AcceptQuote(f.requester, now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Contains(t, err.Error(), "inquiry")
		assert.Contains(t, err.Error(), "quote_accept")
		assert.Equal(t, order.Inquiry, o.Status())
		assert.Empty(t, o.PaymentCards())
		assert.Empty(t, o.History())
		assert.Empty(t, o.PullEvents())
	})

	t.Run("should reject send quote with non positive price", func(t *testing.T) {
		o := f.newOrder(t)
		f.driveTo(t, o, order.QuoteRequest)

		err := o.SendQuote(kernel.Zero(), f.provider, now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.QuoteRequest, o.Status())
	})

	t.Run("should reject a quote too small for the installment plan", func(t *testing.T) {
		o := f.newOrder(t, withMethod(payment.Installment3_1))
		f.driveTo(t, o, order.QuoteRequest)

		err := o.SendQuote(kernel.MustMoney("0.02"), f.provider, now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.QuoteRequest, o.Status())
		assert.Equal(t, "1000.00", o.Price().String())

		require.NoError(t, o.SendQuote(kernel.MustMoney("0.03"), f.provider, now))
		require.NoError(t, o.AcceptQuote(f.requester, now))
		assert.Equal(t, []string{"0.01", "0.01", "0.01"}, amounts(o.PaymentCards()))
	})

	t.Run("should not change price when send quote is illegal", func(t *testing.T) {
		o := f.newOrder(t)

		err := o.SendQuote(kernel.MustMoney("5"), f.provider, now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, "1000.00", o.Price().String())
	})

	t.Run("should reject any transition from a terminal status", func(t *testing.T) {
		o := f.newOrder(t)
		require.NoError(t, o.Cancel("", f.requester, now))

		assert.ErrorIs(t, o.RequestQuote(f.requester, now), errs.ErrInvalidTransition)
		assert.ErrorIs(t, o.Cancel("", f.requester, now), errs.ErrInvalidTransition)
		assert.ErrorIs(t, o.UpdateStatus(order.Inquiry, "", f.admin, now), errs.ErrInvalidTransition)
	})
}

func TestOrder_RequestQuote_RequiresConfirmations(t *testing.T) {
	f := newFixture(t)
	o := f.newOrder(t, withBlocks(
		confirmation.BlockTerms{Name: "Style", Kind: confirmation.KindList, Items: []confirmation.ItemTerms{
			{Name: "Flat", UnitPrice: kernel.MustMoney("0"), Quantity: 1},
			{Name: "3D", UnitPrice: kernel.MustMoney("150"), Quantity: 2},
		}},
		confirmation.BlockTerms{Name: "Brief", Kind: confirmation.KindText},
	))
	blocks := o.ConfirmationBlocks()

	err := o.RequestQuote(f.requester, now)
	require.ErrorIs(t, err, errs.ErrIncompleteConfirmation)
	assert.Contains(t, err.Error(), "2 confirmation blocks unanswered")

	require.NoError(t, o.SelectConfirmationItem(blocks[0].ID(), blocks[0].Items()[1].ID, now))
	assert.Equal(t, "1300.00", o.Price().String())
	assert.ErrorIs(t, o.RequestQuote(f.requester, now), errs.ErrIncompleteConfirmation)

	require.NoError(t, o.AnswerConfirmation(blocks[1].ID(), "Blue and white", now))
	require.NoError(t, o.RequestQuote(f.requester, now))
	assert.Equal(t, order.QuoteRequest, o.Status())

	assert.ErrorIs(t, o.AnswerConfirmation(blocks[1].ID(), "Red", now), errs.ErrInvalidState)
}

func TestOrder_RejectQuote(t *testing.T) {
	f := newFixture(t)
	o := f.newOrder(t)
	f.driveTo(t, o, order.QuoteSent)

	for range 3 {
		require.NoError(t, o.RejectQuote("too expensive", f.requester, now))
		assert.Equal(t, order.QuoteRequest, o.Status())
		require.NoError(t, o.SendQuote(kernel.MustMoney("900"), f.provider, now))
	}
	assert.Equal(t, order.QuoteSent, o.Status())
}

func TestOrder_PaymentsAdvanceToInProgress(t *testing.T) {
	f := newFixture(t)

	t.Run("should advance inline once every card is paid", func(t *testing.T) {
		o := f.newOrder(t, withMethod(payment.Installment2_5))
		f.driveTo(t, o, order.AwaitingPayment)
		cards := o.PaymentCards()
		require.Len(t, cards, 2)

		_, err := o.AttachPaymentReceipt(cards[0].ID(), receipt(t), now)
		require.NoError(t, err)
		require.NoError(t, o.UpdatePaymentStatus(cards[0].ID(), payment.Paid, f.requester, now))
		assert.Equal(t, order.AwaitingPayment, o.Status())

		_, err = o.AttachPaymentReceipt(cards[1].ID(), receipt(t), now)
		require.NoError(t, err)
		require.NoError(t, o.UpdatePaymentStatus(cards[1].ID(), payment.Paid, f.requester, now))
		assert.Equal(t, order.InProgress, o.Status())
	})

	t.Run("should advance on the next poll", func(t *testing.T) {
		o := f.newOrder(t)
		f.driveTo(t, o, order.InProgress)

		stale, err := order.Restore(order.Snapshot{
			ID:            o.ID(),
			Number:        o.Number(),
			RequesterID:   o.RequesterID(),
			ProviderID:    o.ProviderID(),
			Status:        order.AwaitingPayment,
			Price:         o.Price(),
			PaymentMethod: o.PaymentMethod(),
			Contract:      o.Contract(),
			Cards:         o.PaymentCards(),
			Items:         o.DeliveryItems(),
		})
		require.NoError(t, err)

		assert.True(t, stale.Advance(kernel.SystemActor(), now))
		assert.Equal(t, order.InProgress, stale.Status())
		assert.False(t, stale.Advance(kernel.SystemActor(), now))
		assert.Equal(t, kernel.RoleSystem, stale.History()[0].ActorRole)
	})

	t.Run("should reject in progress override while unpaid", func(t *testing.T) {
		o := f.newOrder(t)
		f.driveTo(t, o, order.AwaitingPayment)

		err := o.UpdateStatus(order.InProgress, "", f.admin, now)

		assert.ErrorIs(t, err, errs.ErrIncompletePayment)
		assert.Equal(t, order.AwaitingPayment, o.Status())
	})
}

func TestOrder_ContractExecution_SeedsDeliveryItems(t *testing.T) {
	f := newFixture(t)
	o := f.newOrder(t, withDeliverables("Concepts", "Final files"))
	f.driveTo(t, o, order.QuoteAccept)

	require.NoError(t, o.SignContract(kernel.PartyRequester, "r.png", f.requester, now))
	assert.Equal(t, order.QuoteAccept, o.Status())
	assert.ErrorIs(t, o.UpdateStatus(order.AwaitingPayment, "", f.admin, now), errs.ErrInvalidState)

	require.NoError(t, o.SignContract(kernel.PartyProvider, "p.png", f.provider, now))
	assert.Equal(t, order.AwaitingPayment, o.Status())
	items := o.DeliveryItems()
	require.Len(t, items, 2)
	assert.Equal(t, "Concepts", items[0].Description())
	assert.Equal(t, delivery.Pending, items[1].Status())
}

func TestOrder_CompleteRequiresAcceptedDeliveries(t *testing.T) {
	f := newFixture(t)
	o := f.newOrder(t, withDeliverables("Concepts", "Final files"))
	f.driveTo(t, o, order.Delivered)
	items := o.DeliveryItems()

	require.NoError(t, o.AcceptDelivery(items[0].ID(), true, f.requester, now))

	err := o.Complete(f.requester, now)
	require.ErrorIs(t, err, errs.ErrIncompleteDelivery)
	assert.Equal(t, order.Delivered, o.Status())

	require.NoError(t, o.MarkDelivered(items[1].ID(), f.provider, now))
	require.NoError(t, o.AcceptDelivery(items[1].ID(), false, f.requester, now))
	require.NoError(t, o.Complete(f.requester, now))
	assert.Equal(t, order.Completed, o.Status())
}

func TestOrder_RevisionCycle(t *testing.T) {
	f := newFixture(t)
	o := f.newOrder(t, withDeliverables("Concepts", "Final files"))
	f.driveTo(t, o, order.Delivered)
	items := o.DeliveryItems()

	require.NoError(t, o.RequestModification(items[0].ID(), "Use a darker blue", f.requester, now))
	assert.Equal(t, order.InRevision, o.Status())

	require.NoError(t, o.MarkDelivered(items[1].ID(), f.provider, now))
	assert.Equal(t, order.InRevision, o.Status(), "a modification is still outstanding")

	require.NoError(t, o.MarkDelivered(items[0].ID(), f.provider, now))
	assert.Equal(t, order.Delivered, o.Status())

	require.NoError(t, o.AcceptDelivery(items[0].ID(), false, f.requester, now))
	require.NoError(t, o.AcceptDelivery(items[1].ID(), true, f.requester, now))
	require.NoError(t, o.Complete(f.requester, now))
}

func TestOrder_Cancel(t *testing.T) {
	f := newFixture(t)
	o := f.newOrder(t)
	f.driveTo(t, o, order.InProgress)
	o.PullEvents()

	require.NoError(t, o.Cancel("client withdrew", f.requester, now))

	assert.Equal(t, order.Cancelled, o.Status())
	events := o.PullEvents()
	require.Len(t, events, 2)
	assert.Equal(t, order.EventStatusChanged, events[0].Kind)
	assert.Equal(t, order.EventOrderCancelled, events[1].Kind)
	assert.Equal(t, "client withdrew", events[1].Detail)
}

func TestOrder_UpdatePrice(t *testing.T) {
	f := newFixture(t)

	t.Run("should regenerate schedule and keep extra cards", func(t *testing.T) {
		o := f.newOrder(t, withMethod(payment.Installment3_1))
		f.driveTo(t, o, order.QuoteAccept)
		_, err := o.AddPaymentCard(kernel.MustMoney("50"), nil, now)
		require.NoError(t, err)

		require.NoError(t, o.UpdatePrice(kernel.MustMoney("2000"), now))

		cards := o.PaymentCards()
		assert.Equal(t, []string{"600.00", "800.00", "600.00", "50.00"}, amounts(cards))
		assert.True(t, cards[3].IsExtra())
		assert.Equal(t, 4, cards[3].Installment())
		assert.Equal(t, "2000.00", o.Contract().Price().String())
	})

	t.Run("should refuse once a card left pending", func(t *testing.T) {
		o := f.newOrder(t, withMethod(payment.Installment2_5))
		f.driveTo(t, o, order.AwaitingPayment)
		card := o.PaymentCards()[0]
		_, err := o.AttachPaymentReceipt(card.ID(), receipt(t), now)
		require.NoError(t, err)
		require.NoError(t, o.UpdatePaymentStatus(card.ID(), payment.Paid, f.requester, now))

		err = o.UpdatePrice(kernel.MustMoney("2000"), now)

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, "1000.00", o.Price().String())
	})

	t.Run("should refuse a price too small for the installment plan", func(t *testing.T) {
		o := f.newOrder(t, withMethod(payment.Installment5_1))
		f.driveTo(t, o, order.QuoteAccept)

		err := o.UpdatePrice(kernel.MustMoney("0.04"), now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, "1000.00", o.Price().String())
		assert.Len(t, o.PaymentCards(), 5)
	})

	t.Run("should only set price before a schedule exists", func(t *testing.T) {
		o := f.newOrder(t)

		require.NoError(t, o.UpdatePrice(kernel.MustMoney("10"), now))

		assert.Equal(t, "10.00", o.Price().String())
		assert.Empty(t, o.PaymentCards())
	})
}

func TestOrder_UpdateStatus(t *testing.T) {
	f := newFixture(t)

	t.Run("should run the same side effects as the dedicated operation", func(t *testing.T) {
		o := f.newOrder(t)
		f.driveTo(t, o, order.QuoteSent)

		require.NoError(t, o.UpdateStatus(order.QuoteAccept, "accepted by phone", f.admin, now))

		assert.Len(t, o.PaymentCards(), 1)
		h := o.History()
		assert.Equal(t, "accepted by phone", h[len(h)-1].Reason)
	})

	t.Run("should reject unknown target", func(t *testing.T) {
		o := f.newOrder(t)

		assert.ErrorIs(t, o.UpdateStatus(order.Unknown, "", f.admin, now), errs.ErrValueIsInvalid)
	})
}

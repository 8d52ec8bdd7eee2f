package order_test

import (
	"testing"
	"time"

	"orderflow/internal/core/domain/model/confirmation"
	"orderflow/internal/core/domain/model/contract"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/payment"
	"orderflow/internal/core/domain/model/template"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

type fixture struct {
	requester kernel.Actor
	provider  kernel.Actor
	admin     kernel.Actor
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	requester, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleClient)
	require.NoError(t, err)
	provider, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleProvider)
	require.NoError(t, err)
	admin, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleAdmin)
	require.NoError(t, err)
	return fixture{requester: requester, provider: provider, admin: admin}
}

type templateOption func(*template.Terms)

func withMethod(m payment.Method) templateOption {
	return func(terms *template.Terms) { terms.PaymentMethod = m }
}

func withBlocks(blocks ...confirmation.BlockTerms) templateOption {
	return func(terms *template.Terms) { terms.Blocks = blocks }
}

func withDeliverables(d ...string) templateOption {
	return func(terms *template.Terms) { terms.Deliverables = d }
}

func (f fixture) newOrder(t *testing.T, opts ...templateOption) *order.Order {
	t.Helper()
	terms := template.Terms{
		Name:                "Logo design",
		ProviderID:          f.provider.UserID(),
		StartingPrice:       kernel.MustMoney("1000"),
		PaymentMethod:       payment.FullPayment,
		ContractDescription: "Design of a company logo",
		Clauses: []contract.ClauseTerms{
			{Name: "Scope", Content: "Three concepts"},
			{Name: "Rights", Content: "Full transfer"},
		},
		Deliverables: []string{"Concepts"},
	}
	for _, opt := range opts {
		opt(&terms)
	}
	tmpl, err := template.NewTemplate(kernel.NewUUID(), terms)
	require.NoError(t, err)

	o, err := order.NewOrderFromTemplate(kernel.NewUUID(), order.GenerateNumber(now), f.requester.UserID(), tmpl, "", "design", now)
	require.NoError(t, err)
	return o
}

// driveTo walks o along the happy path until it reaches target.
func (f fixture) driveTo(t *testing.T, o *order.Order, target order.Status) {
	t.Helper()
	for o.Status() != target {
		var err error
		switch o.Status() {
		case order.Inquiry:
			err = o.RequestQuote(f.requester, now)
		case order.QuoteRequest:
			err = o.SendQuote(o.Price(), f.provider, now)
		case order.QuoteSent:
			err = o.AcceptQuote(f.requester, now)
		case order.QuoteAccept:
			require.NoError(t, o.SignContract(kernel.PartyRequester, "https://sig/requester.png", f.requester, now))
			err = o.SignContract(kernel.PartyProvider, "https://sig/provider.png", f.provider, now)
		case order.AwaitingPayment:
			for _, c := range o.PaymentCards() {
				_, err = o.AttachPaymentReceipt(c.ID(), receipt(t), now)
				require.NoError(t, err)
				err = o.UpdatePaymentStatus(c.ID(), payment.Paid, f.requester, now)
				require.NoError(t, err)
			}
		case order.InProgress:
			err = o.MarkDelivered(o.DeliveryItems()[0].ID(), f.provider, now)
		default:
			t.Fatalf("no happy path from %s to %s", o.Status(), target)
		}
		require.NoError(t, err, "from %s", o.Status())
	}
}

func receipt(t *testing.T) kernel.FileRef {
	t.Helper()
	ref, err := kernel.NewFileRef(kernel.NewUUID().String(), "receipt.pdf", "")
	require.NoError(t, err)
	return ref
}

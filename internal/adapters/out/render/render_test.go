package render_test

import (
	"bytes"
	"testing"
	"time"

	"orderflow/internal/adapters/out/render"
	"orderflow/internal/core/domain/model/contract"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/payment"
	"orderflow/internal/core/domain/model/template"
	"orderflow/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var now = time.Date(2026, 4, 20, 8, 0, 0, 0, time.UTC)

// acceptedOrder returns an order at quote_accept with the requester's signature.
func acceptedOrder(t *testing.T) (*order.Order, ports.Identity, ports.Identity) {
	t.Helper()
	requester, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleClient)
	require.NoError(t, err)
	provider, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleProvider)
	require.NoError(t, err)

	tmpl, err := template.NewTemplate(kernel.NewUUID(), template.Terms{
		Name:                "Café menu design",
		ProviderID:          provider.UserID(),
		StartingPrice:       kernel.MustMoney("800"),
		PaymentMethod:       payment.Installment3_1,
		ContractDescription: "Design of a two page menu",
		Clauses:             []contract.ClauseTerms{{Name: "Scope", Content: "Two pages, print ready"}},
	})
	require.NoError(t, err)

	o, err := order.NewOrderFromTemplate(kernel.NewUUID(), order.GenerateNumber(now), requester.UserID(), tmpl, "", "", now)
	require.NoError(t, err)
	require.NoError(t, o.RequestQuote(requester, now))
	require.NoError(t, o.SendQuote(kernel.MustMoney("1000"), provider, now))
	require.NoError(t, o.AcceptQuote(requester, now))
	require.NoError(t, o.SignContract(kernel.PartyRequester, "https://sig/r.png", requester, now))

	return o,
		ports.Identity{UserID: requester.UserID(), DisplayName: "Léa Martin", Email: "lea@example.com"},
		ports.Identity{UserID: provider.UserID(), DisplayName: "Studio Nord"}
}

func TestContractPDF_RenderContract(t *testing.T) {
	o, requester, provider := acceptedOrder(t)

	doc, err := render.NewContractPDF().RenderContract(o, requester, provider)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-")))
	assert.Greater(t, len(doc), 1000)
}

func TestLedgerXLSX_ExportLedger(t *testing.T) {
	o, _, _ := acceptedOrder(t)

	doc, err := render.NewLedgerXLSX().ExportLedger(o)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(doc))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	number, err := f.GetCellValue("Payments", "B1")
	require.NoError(t, err)
	assert.Equal(t, o.Number().String(), number)

	cells := map[string]string{
		"A8": "Installment",
		"A9": "1", "B9": "300", "C9": "Pending",
		"A10": "2", "B10": "400",
		"A11": "3", "B11": "300",
		"A12": "",
	}
	for cell, want := range cells {
		got, cellErr := f.GetCellValue("Payments", cell)
		require.NoError(t, cellErr)
		assert.Equal(t, want, got, cell)
	}
}

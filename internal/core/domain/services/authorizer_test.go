package services_test

import (
	"testing"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/payment"
	"orderflow/internal/core/domain/model/template"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func TestAuthorizer_Authorize(t *testing.T) {
	requester := actor(t, kernel.RoleClient)
	provider := actor(t, kernel.RoleProvider)
	admin := actor(t, kernel.RoleAdmin)
	stranger := actor(t, kernel.RoleClient)

	tmpl, err := template.NewTemplate(kernel.NewUUID(), template.Terms{
		Name:          "Logo",
		ProviderID:    provider.UserID(),
		StartingPrice: kernel.MustMoney("100"),
		PaymentMethod: payment.FullPayment,
	})
	require.NoError(t, err)
	o, err := order.NewOrderFromTemplate(kernel.NewUUID(), order.GenerateNumber(time.Now()), requester.UserID(), tmpl, "", "", time.Now())
	require.NoError(t, err)

	authorizer := services.NewAuthorizer()

	tests := []struct {
		name  string
		actor kernel.Actor
		op    services.Operation
		ok    bool
	}{
		{"requester requests quote", requester, services.OpRequestQuote, true},
		{"provider cannot request quote", provider, services.OpRequestQuote, false},
		{"provider sends quote", provider, services.OpSendQuote, true},
		{"requester cannot send quote", requester, services.OpSendQuote, false},
		{"stranger cannot view", stranger, services.OpViewOrder, false},
		{"both parties view", provider, services.OpViewOrder, true},
		{"admin overrides status", admin, services.OpUpdateStatus, true},
		{"party cannot override status", requester, services.OpUpdateStatus, false},
		{"admin cannot sign", admin, services.OpSignContract, false},
		{"system advances", kernel.SystemActor(), services.OpUpdatePaymentStatus, true},
		{"unknown operation", admin, services.Operation("fly"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := authorizer.Authorize(tt.actor, tt.op, o)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, errs.ErrForbidden)
		})
	}
}

func TestAuthorizer_PartyOf(t *testing.T) {
	requester := actor(t, kernel.RoleClient)
	provider := actor(t, kernel.RoleProvider)
	tmpl, err := template.NewTemplate(kernel.NewUUID(), template.Terms{
		Name:          "Logo",
		ProviderID:    provider.UserID(),
		StartingPrice: kernel.MustMoney("100"),
		PaymentMethod: payment.FullPayment,
	})
	require.NoError(t, err)
	o, err := order.NewOrderFromTemplate(kernel.NewUUID(), order.GenerateNumber(time.Now()), requester.UserID(), tmpl, "", "", time.Now())
	require.NoError(t, err)

	party, err := services.NewAuthorizer().PartyOf(provider, o)
	require.NoError(t, err)
	assert.Equal(t, kernel.PartyProvider, party)

	_, err = services.NewAuthorizer().PartyOf(actor(t, kernel.RoleAdmin), o)
	assert.ErrorIs(t, err, errs.ErrForbidden)
}

package services

import (
	"slices"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

// Operation names a capability checked before a command touches an order.
type Operation string

const (
	OpViewOrder           Operation = "view order"
	OpDeleteOrder         Operation = "delete order"
	OpRequestQuote        Operation = "request quote"
	OpSendQuote           Operation = "send quote"
	OpAcceptQuote         Operation = "accept quote"
	OpRejectQuote         Operation = "reject quote"
	OpUpdateStatus        Operation = "update status"
	OpUpdatePrice         Operation = "update price"
	OpCompleteOrder       Operation = "complete order"
	OpCancelOrder         Operation = "cancel order"
	OpSignContract        Operation = "sign contract"
	OpRequestChange       Operation = "request contract change"
	OpResolveChange       Operation = "resolve contract change"
	OpEditContract        Operation = "edit contract"
	OpUpdatePaymentStatus Operation = "update payment status"
	OpUploadReceipt       Operation = "upload receipt"
	OpUploadInvoice       Operation = "upload invoice"
	OpAddPaymentCard      Operation = "add payment card"
	OpAddDeliveryItem     Operation = "add delivery item"
	OpUploadDeliveryFile  Operation = "upload delivery file"
	OpDeleteDeliveryFile  Operation = "delete delivery file"
	OpMarkDelivered       Operation = "mark delivered"
	OpReviewDelivery      Operation = "review delivery"
	OpAnswerConfirmation  Operation = "answer confirmation"
)

func (op Operation) String() string { return string(op) }

var (
	requesterOnly = []kernel.Party{kernel.PartyRequester}
	providerOnly  = []kernel.Party{kernel.PartyProvider}
	bothParties   = []kernel.Party{kernel.PartyRequester, kernel.PartyProvider}
	adminOnly     = []kernel.Party{}
)

// getCapabilities lists which side of an order may perform each operation.
// Admins and the system actor may perform all of them except signing.
func getCapabilities() map[Operation][]kernel.Party {
	return map[Operation][]kernel.Party{
		OpViewOrder:           bothParties,
		OpDeleteOrder:         requesterOnly,
		OpRequestQuote:        requesterOnly,
		OpSendQuote:           providerOnly,
		OpAcceptQuote:         requesterOnly,
		OpRejectQuote:         requesterOnly,
		OpUpdateStatus:        adminOnly,
		OpUpdatePrice:         providerOnly,
		OpCompleteOrder:       requesterOnly,
		OpCancelOrder:         bothParties,
		OpSignContract:        bothParties,
		OpRequestChange:       bothParties,
		OpResolveChange:       bothParties,
		OpEditContract:        providerOnly,
		OpUpdatePaymentStatus: bothParties,
		OpUploadReceipt:       requesterOnly,
		OpUploadInvoice:       providerOnly,
		OpAddPaymentCard:      providerOnly,
		OpAddDeliveryItem:     providerOnly,
		OpUploadDeliveryFile:  providerOnly,
		OpDeleteDeliveryFile:  providerOnly,
		OpMarkDelivered:       providerOnly,
		OpReviewDelivery:      requesterOnly,
		OpAnswerConfirmation:  requesterOnly,
	}
}

// Authorizer is the explicit capability check that runs before a command
// dispatches to the order aggregate.
type Authorizer struct{}

func NewAuthorizer() Authorizer {
	return Authorizer{}
}

// Authorize returns a ForbiddenError unless actor may perform op on o.
func (Authorizer) Authorize(actor kernel.Actor, op Operation, o *order.Order) error {
	allowed, known := getCapabilities()[op]
	if !known || o == nil {
		return errs.NewForbiddenError(actor.String(), op.String())
	}
	if actor.IsPrivileged() && op != OpSignContract {
		return nil
	}
	if party := o.PartyOf(actor.UserID()); party != kernel.PartyNone && slices.Contains(allowed, party) {
		return nil
	}
	return errs.NewForbiddenError(actor.String(), op.String())
}

// PartyOf resolves the side actor signs or negotiates for. Admins have no side.
func (Authorizer) PartyOf(actor kernel.Actor, o *order.Order) (kernel.Party, error) {
	party := o.PartyOf(actor.UserID())
	if party == kernel.PartyNone {
		return kernel.PartyNone, errs.NewForbiddenError(actor.String(), "act as a party of order "+o.Number().String())
	}
	return party, nil
}

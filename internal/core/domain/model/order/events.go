package order

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
)

// EventKind names a notification-worthy change.
type EventKind string

const (
	EventOrderCreated            EventKind = "order.created"
	EventStatusChanged           EventKind = "order.status_changed"
	EventPriceChanged            EventKind = "order.price_changed"
	EventOrderCancelled          EventKind = "order.cancelled"
	EventOrderDeleted            EventKind = "order.deleted"
	EventContractSigned          EventKind = "contract.signed"
	EventContractExecuted        EventKind = "contract.executed"
	EventContractChangeRequested EventKind = "contract.change_requested"
	EventContractChangeResolved  EventKind = "contract.change_resolved"
	EventContractUpdated         EventKind = "contract.updated"
	EventPaymentCardAdded        EventKind = "payment.card_added"
	EventPaymentStatusChanged    EventKind = "payment.status_changed"
	EventPaymentDocumentAttached EventKind = "payment.document_attached"
	EventDeliveryItemAdded       EventKind = "delivery.item_added"
	EventDeliveryStatusChanged   EventKind = "delivery.status_changed"
	EventDeliveryFileAttached    EventKind = "delivery.file_attached"
	EventDeliveryFileRemoved     EventKind = "delivery.file_removed"
	EventConfirmationAnswered    EventKind = "confirmation.answered"
)

// Event is emitted to the notification port after the transaction that produced it commits.
// EventOrderCancelled doubles as the refund hook for the payment side.
type Event struct {
	Kind        EventKind
	OrderID     kernel.UUID
	Number      Number
	RequesterID kernel.UUID
	ProviderID  kernel.UUID
	Status      Status
	Detail      string
	OccurredAt  time.Time
}

func (o *Order) record(kind EventKind, detail string, now time.Time) {
	o.events = append(o.events, Event{
		Kind:        kind,
		OrderID:     o.id,
		Number:      o.number,
		RequesterID: o.requesterID,
		ProviderID:  o.providerID,
		Status:      o.status,
		Detail:      detail,
		OccurredAt:  now,
	})
}

// PullEvents returns the events recorded since the last call and clears them.
func (o *Order) PullEvents() []Event {
	events := o.events
	o.events = nil
	return events
}

// DeletedEvent builds the event for a hard delete, which has no aggregate method.
func (o *Order) DeletedEvent(now time.Time) Event {
	return Event{
		Kind:        EventOrderDeleted,
		OrderID:     o.id,
		Number:      o.number,
		RequesterID: o.requesterID,
		ProviderID:  o.providerID,
		Status:      o.status,
		OccurredAt:  now,
	}
}

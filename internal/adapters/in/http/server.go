// Package http exposes the order core over HTTP/JSON. Handlers translate
// requests into commands and queries, run them and map the results and typed
// errors back to HTTP.
package http

import (
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"

	"github.com/rs/zerolog"
)

// Handlers groups every use case the HTTP surface dispatches to.
type Handlers struct {
	// Orders
	CreateOrder  commands.CreateOrderCommandHandler
	RequestQuote commands.RequestQuoteCommandHandler
	SendQuote    commands.SendQuoteCommandHandler
	AcceptQuote  commands.AcceptQuoteCommandHandler
	RejectQuote  commands.RejectQuoteCommandHandler
	UpdateStatus commands.UpdateOrderStatusCommandHandler
	UpdatePrice  commands.UpdateOrderPriceCommandHandler
	Complete     commands.CompleteOrderCommandHandler
	Cancel       commands.CancelOrderCommandHandler
	DeleteOrder  commands.DeleteOrderCommandHandler

	// Contract
	SignContract          commands.SignContractCommandHandler
	RequestContractChange commands.RequestContractChangeCommandHandler
	ResolveContractChange commands.ResolveContractChangeCommandHandler
	AddClause             commands.AddContractClauseCommandHandler
	UpdateClause          commands.UpdateContractClauseCommandHandler
	DeleteClause          commands.DeleteContractClauseCommandHandler

	// Payments
	UpdatePaymentStatus   commands.UpdatePaymentStatusCommandHandler
	UploadPaymentDocument commands.UploadPaymentDocumentCommandHandler
	AddPaymentCard        commands.AddPaymentCardCommandHandler

	// Deliveries
	AddDeliveryItem      commands.AddDeliveryItemCommandHandler
	UploadDeliveryFile   commands.UploadDeliveryFileCommandHandler
	UpdateDeliveryStatus commands.UpdateDeliveryStatusCommandHandler
	DeleteDeliveryFile   commands.DeleteDeliveryFileCommandHandler

	// Confirmation
	SelectConfirmationItem commands.SelectConfirmationItemCommandHandler
	AnswerConfirmation     commands.AnswerConfirmationCommandHandler

	// Queries
	GetOrder             queries.GetOrderQueryHandler
	ListOrders           queries.ListOrdersQueryHandler
	CountCompletedOrders queries.CountCompletedOrdersQueryHandler
	RenderContract       queries.RenderContractQueryHandler
	ExportLedger         queries.ExportLedgerQueryHandler
	OpenStoredFile       queries.OpenStoredFileQueryHandler
}

// Server implements the HTTP handlers of the API.
type Server struct {
	h   Handlers
	log zerolog.Logger
}

// NewServer creates a server dispatching to h.
func NewServer(h Handlers, log zerolog.Logger) *Server {
	return &Server{
		h:   h,
		log: log.With().Str("component", "http").Logger(),
	}
}

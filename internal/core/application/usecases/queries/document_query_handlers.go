package queries

import (
	"context"
	"fmt"

	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// RenderContractQueryHandler resolves both parties and renders the contract.
type RenderContractQueryHandler struct {
	orders     OrderReader
	identities ports.IdentityProvider
	renderer   ports.ContractRenderer
	authorizer services.Authorizer
}

func NewRenderContractQueryHandler(
	orders OrderReader,
	identities ports.IdentityProvider,
	renderer ports.ContractRenderer,
) RenderContractQueryHandler {
	return RenderContractQueryHandler{
		orders:     orders,
		identities: identities,
		renderer:   renderer,
		authorizer: services.NewAuthorizer(),
	}
}

func (h RenderContractQueryHandler) Handle(ctx context.Context, query RenderContractQuery) (DocumentResponse, error) {
	if err := query.Validate(); err != nil {
		return DocumentResponse{}, err
	}

	o, err := h.orders.GetByContract(ctx, query.contractID)
	if err != nil {
		return DocumentResponse{}, err
	}
	if err = h.authorizer.Authorize(query.actor, services.OpViewOrder, o); err != nil {
		return DocumentResponse{}, err
	}

	requester, err := h.identities.Lookup(ctx, o.RequesterID())
	if err != nil {
		return DocumentResponse{}, fmt.Errorf("requester: %w", err)
	}
	provider, err := h.identities.Lookup(ctx, o.ProviderID())
	if err != nil {
		return DocumentResponse{}, fmt.Errorf("provider: %w", err)
	}

	content, err := h.renderer.RenderContract(o, requester, provider)
	if err != nil {
		return DocumentResponse{}, err
	}
	return DocumentResponse{
		FileName:    fmt.Sprintf("contract-%s.pdf", o.Number()),
		ContentType: ContentTypePDF,
		Content:     content,
	}, nil
}

// ExportLedgerQueryHandler exports the payment cards of an order.
type ExportLedgerQueryHandler struct {
	orders     OrderReader
	exporter   ports.LedgerExporter
	authorizer services.Authorizer
}

func NewExportLedgerQueryHandler(orders OrderReader, exporter ports.LedgerExporter) ExportLedgerQueryHandler {
	return ExportLedgerQueryHandler{orders: orders, exporter: exporter, authorizer: services.NewAuthorizer()}
}

func (h ExportLedgerQueryHandler) Handle(ctx context.Context, query ExportLedgerQuery) (DocumentResponse, error) {
	if err := query.Validate(); err != nil {
		return DocumentResponse{}, err
	}

	o, err := h.orders.Get(ctx, query.orderID)
	if err != nil {
		return DocumentResponse{}, err
	}
	if err = h.authorizer.Authorize(query.actor, services.OpViewOrder, o); err != nil {
		return DocumentResponse{}, err
	}

	content, err := h.exporter.ExportLedger(o)
	if err != nil {
		return DocumentResponse{}, err
	}
	return DocumentResponse{
		FileName:    fmt.Sprintf("payments-%s.xlsx", o.Number()),
		ContentType: ContentTypeXLSX,
		Content:     content,
	}, nil
}

package queries

import (
	"context"
	"io"

	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

// OpenStoredFileQueryHandler serves stored bytes only to callers allowed to view
// the owning order. Keys no order references are reported as not found.
type OpenStoredFileQueryHandler struct {
	orders     OrderReader
	storage    ports.FileStorage
	authorizer services.Authorizer
}

func NewOpenStoredFileQueryHandler(orders OrderReader, storage ports.FileStorage) OpenStoredFileQueryHandler {
	return OpenStoredFileQueryHandler{orders: orders, storage: storage, authorizer: services.NewAuthorizer()}
}

// Handle returns the stored content. The caller closes it.
func (h OpenStoredFileQueryHandler) Handle(ctx context.Context, query OpenStoredFileQuery) (io.ReadCloser, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, err := h.orders.GetByFileKey(ctx, query.key)
	if err != nil {
		return nil, err
	}
	if err = h.authorizer.Authorize(query.actor, services.OpViewOrder, o); err != nil {
		return nil, err
	}
	return h.storage.Open(ctx, query.key)
}

package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var (
	ErrRenderContractQueryIsNotConstructed = errors.New(
		"RenderContractQuery must be created via NewRenderContractQuery constructor",
	)
	ErrExportLedgerQueryIsNotConstructed = errors.New(
		"ExportLedgerQuery must be created via NewExportLedgerQuery constructor",
	)
)

// DocumentResponse is a generated file.
type DocumentResponse struct {
	FileName    string
	ContentType string
	Content     []byte
}

// RenderContractQuery produces the printable contract of an order.
type RenderContractQuery struct {
	actor      kernel.Actor
	contractID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRenderContractQuery(actor kernel.Actor, contractID kernel.UUID) (RenderContractQuery, error) {
	if err := errors.Join(validateActor(actor), contractID.Validate()); err != nil {
		return RenderContractQuery{}, err
	}
	return RenderContractQuery{actor: actor, contractID: contractID, guard: guard.NewConstructorGuard()}, nil
}

func (q RenderContractQuery) Validate() error {
	return q.guard.Validate(ErrRenderContractQueryIsNotConstructed)
}

// ExportLedgerQuery produces the payment ledger of an order as a spreadsheet.
type ExportLedgerQuery struct {
	actor   kernel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewExportLedgerQuery(actor kernel.Actor, orderID kernel.UUID) (ExportLedgerQuery, error) {
	if err := errors.Join(validateActor(actor), orderID.Validate()); err != nil {
		return ExportLedgerQuery{}, err
	}
	return ExportLedgerQuery{actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q ExportLedgerQuery) Validate() error {
	return q.guard.Validate(ErrExportLedgerQueryIsNotConstructed)
}

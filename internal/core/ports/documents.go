package ports

import (
	"orderflow/internal/core/domain/model/order"
)

// ContractRenderer renders the contract of an order as a printable document.
type ContractRenderer interface {
	RenderContract(o *order.Order, requester, provider Identity) ([]byte, error)
}

// LedgerExporter renders the payment ledger of an order as a spreadsheet.
type LedgerExporter interface {
	ExportLedger(o *order.Order) ([]byte, error)
}

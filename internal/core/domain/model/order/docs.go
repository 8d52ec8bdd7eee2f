// Package order provides the Order aggregate root of the marketplace lifecycle.
//
// An order is opened from a template in inquiry and moves through quoting,
// contracting, payment, delivery and completion:
//
//	inquiry -> quote_request -> quote_sent -> quote_accept -> awaiting_payment
//	        -> in_progress -> delivered <-> in_revision -> completed
//
// and may be cancelled from any non-terminal status.
//
// The package includes:
//   - Order: the aggregate that owns the contract, the payment cards, the delivery
//     items, the confirmation blocks and the status history
//   - Status: the lifecycle state machine and its transition table
//   - Number: the human-facing order number
//   - Event: changes reported to the notification port after commit
//
// Key business rules:
//   - every transition runs a gate (confirmations answered, contract executed,
//     payments settled, deliveries accepted) and fails without side effects
//   - automatic edges follow sub-record changes: contract execution, settled
//     ledger, delivery submission and modification requests move the order on
//   - sub-record operations are accepted only in the statuses where they apply
package order

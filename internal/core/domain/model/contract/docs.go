// Package contract models the dual-signature agreement owned by an order: the two
// signature slots, the change-request sub-flow and the ordered list of clauses.
//
// The contract does not know the order's status. The order aggregate decides when
// signing or editing is allowed and then delegates here.
package contract

// Package services provides domain services that span the order aggregate and
// the caller.
//
// The package includes:
//   - Authorizer: the capability table deciding which side of an order, or which
//     platform role, may run each operation
package services

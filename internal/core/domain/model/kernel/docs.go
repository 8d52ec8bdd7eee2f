// Package kernel provides the value objects shared by every part of the order aggregate.
//
// The package includes:
//   - UUID: identifiers, with a reversible base62 short code for orders
//   - Money: non-negative two-digit decimal amounts backed by shopspring/decimal
//   - Actor, Role and Party: who is calling and which side of an order they are on
//   - FileRef: weak references to attachments kept by file storage
//
// Values are immutable and safe for concurrent use.
package kernel

// Package confirmation models the pre-quote questions copied from a template:
// list blocks where the requester picks priced options, and free-text blocks.
// The selected options drive the order price before quoting.
package confirmation

// Package payment models the payment ledger of an order: the installment cards
// generated from a template's payment method, their forward-only status, and
// receipt and invoice attachments.
package payment

// Package delivery models the deliverables of an order: items with their file
// attachments and the deliver, request-modification and accept sub-flow.
package delivery

// Package order contains the Order aggregate and its fulfillment pipeline
// state machine.
//
// An order is created at intake and then driven forward through validation,
// inventory confirmation, allocation, picking, packing, staging and carrier
// hand-off. The Status type encodes the forward-only progression; the
// aggregate enforces it so no caller can move an order backwards or revive
// a terminal one.
package order

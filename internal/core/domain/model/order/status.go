package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order inside the fulfillment
// pipeline. It implements a forward-only state machine: an order advances
// toward Shipped (or to the terminal Cancelled state) and never re-enters
// an earlier stage.
//
// State progression:
//
//	Created -> Validated -> InventoryConfirmed -> Allocated
//	        -> Picking -> Packing -> Staging -> Shipped
//
//	any non-terminal state -> Cancelled
//
// The numeric ordering of the constants doubles as the stage marker used
// for idempotent pipeline re-entry: a stage whose rank the order has
// already reached is skipped on retry instead of being executed twice.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status assigned at order intake.
	Created

	// Validated indicates the order passed business validation.
	Validated

	// InventoryConfirmed indicates every line had sufficient available stock.
	InventoryConfirmed

	// Allocated indicates inventory has been reserved against the order.
	Allocated

	// Picking indicates warehouse pick tasks exist for the order.
	Picking

	// Packing indicates picked goods are being packed.
	Packing

	// Staging indicates the packed order occupies a staging-area slot.
	Staging

	// Shipped indicates the order was handed off to a carrier.
	// This is a terminal state.
	Shipped

	// Cancelled is the terminal state for orders withdrawn from fulfillment.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "UNKNOWN",
		Created:            "CREATED",
		Validated:          "VALIDATED",
		InventoryConfirmed: "INVENTORY_CONFIRMED",
		Allocated:          "ALLOCATED",
		Picking:            "PICKING",
		Packing:            "PACKING",
		Staging:            "STAGING",
		Shipped:            "SHIPPED",
		Cancelled:          "CANCELLED",
	}
}

// StatusFromString parses a persisted status name back into a Status value.
// Returns an error for names outside the fulfillment state machine.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid order status", s),
	)
}

// Validate checks that the Status value is one of the defined pipeline
// states. Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the persisted name of the status.
// Implements fmt.Stringer and is safe to call on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transition is allowed from s.
func (s Status) IsTerminal() bool {
	return s == Shipped || s == Cancelled
}

// Reached reports whether the order has already passed through stage other.
// Used by the pipeline to make stage re-entry idempotent: work belonging to
// a stage the order already reached must not run again.
func (s Status) Reached(other Status) bool {
	return s >= other
}

// Advance transitions the status forward to next.
//
// Valid transitions move strictly forward through the pipeline; skipping
// intermediate stages is allowed (the read-only validation and inventory
// checks do not persist their stages), but moving backwards or out of a
// terminal state is not.
func (s Status) Advance(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return 0, err
	}

	if s.IsTerminal() || next <= s || next == Cancelled {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("cannot advance from %s to %s", s, next),
		)
	}

	return next, nil
}

// Cancel transitions the status to Cancelled.
// Only non-terminal states can be cancelled.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s),
		)
	}

	return Cancelled, nil
}

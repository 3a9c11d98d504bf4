package staging

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrAssignmentIsNotConstructed is returned when an Assignment instance was
	// not created through the NewAssignment or RestoreAssignment factory methods.
	ErrAssignmentIsNotConstructed = errors.New(
		"Assignment must be created via NewAssignment or RestoreAssignment",
	)
)

// AssignmentStatus describes the progress of one order through a staging area.
type AssignmentStatus string

const (
	// AssignmentAssigned means the order has a slot but is not fully staged yet.
	AssignmentAssigned AssignmentStatus = "ASSIGNED"

	// AssignmentLoaded means the order is fully staged and ready for hand-off.
	AssignmentLoaded AssignmentStatus = "LOADED"

	// AssignmentCompleted means the order left the staging area.
	// This is a final state; assignments are never reopened.
	AssignmentCompleted AssignmentStatus = "COMPLETED"
)

// Validate checks that the assignment status is one of the supported values.
func (s AssignmentStatus) Validate() error {
	switch s {
	case AssignmentAssigned, AssignmentLoaded, AssignmentCompleted:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"assignment status is invalid",
			fmt.Errorf("%q is not a valid assignment status", string(s)),
		)
	}
}

// IsOpen reports whether the assignment still occupies a staging slot.
func (s AssignmentStatus) IsOpen() bool {
	return s == AssignmentAssigned || s == AssignmentLoaded
}

// Assignment records the occupancy of one order within one staging area.
//
// Invariants:
//   - exactly one open (non-completed) assignment per order at a time,
//     enforced at the store layer
//   - assignedAt is immutable once set
//   - completedAt is set exactly once, at completion
//
// Status advances ASSIGNED -> LOADED -> COMPLETED and never reopens.
type Assignment struct {
	id            kernel.UUID
	stagingAreaID kernel.UUID
	orderID       kernel.UUID
	status        AssignmentStatus
	assignedAt    time.Time
	completedAt   *time.Time

	isConstructed bool
}

// NewAssignment creates an open assignment for an order entering staging.
func NewAssignment(id, stagingAreaID, orderID kernel.UUID, assignedAt time.Time) (*Assignment, error) {
	if err := errors.Join(id.Validate(), stagingAreaID.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	if assignedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("assignedAt")
	}

	return &Assignment{
		id:            id,
		stagingAreaID: stagingAreaID,
		orderID:       orderID,
		status:        AssignmentAssigned,
		assignedAt:    assignedAt,
		isConstructed: true,
	}, nil
}

// RestoreAssignment reconstructs an Assignment from persistence.
func RestoreAssignment(
	id, stagingAreaID, orderID kernel.UUID,
	status AssignmentStatus,
	assignedAt time.Time,
	completedAt *time.Time,
) (*Assignment, error) {
	a, err := NewAssignment(id, stagingAreaID, orderID, assignedAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if status == AssignmentCompleted && completedAt == nil {
		return nil, errs.NewValueIsRequiredError("completedAt")
	}

	a.status = status
	a.completedAt = completedAt
	return a, nil
}

// Validate ensures the Assignment instance was properly constructed.
func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

// ID returns the assignment's unique identifier.
func (a *Assignment) ID() kernel.UUID {
	return a.id
}

// StagingAreaID returns the occupied staging area.
func (a *Assignment) StagingAreaID() kernel.UUID {
	return a.stagingAreaID
}

// OrderID returns the occupying order.
func (a *Assignment) OrderID() kernel.UUID {
	return a.orderID
}

// Status returns the assignment's progress state.
func (a *Assignment) Status() AssignmentStatus {
	return a.status
}

// AssignedAt returns the time the order entered the staging area.
func (a *Assignment) AssignedAt() time.Time {
	return a.assignedAt
}

// CompletedAt returns the hand-off completion time, nil while open.
func (a *Assignment) CompletedAt() *time.Time {
	return a.completedAt
}

// DwellTime returns how long the order has occupied its slot as of now.
func (a *Assignment) DwellTime(now time.Time) time.Duration {
	return now.Sub(a.assignedAt)
}

// MarkLoaded records that the order is fully staged.
// Only freshly assigned occupancies can be loaded.
func (a *Assignment) MarkLoaded() error {
	if a.status != AssignmentAssigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"assignment status is invalid",
			fmt.Errorf("%s is not a valid status to load", a.status),
		)
	}

	a.status = AssignmentLoaded
	return nil
}

// Complete closes the assignment after a successful hand-off.
// Only loaded assignments can complete, and completion happens once.
func (a *Assignment) Complete(at time.Time) error {
	if a.status != AssignmentLoaded {
		return errs.NewValueIsInvalidErrorWithCause(
			"assignment status is invalid",
			fmt.Errorf("%s is not a valid status to complete", a.status),
		)
	}

	a.status = AssignmentCompleted
	a.completedAt = &at
	return nil
}

package ports

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/staging"
)

var (
	// ErrNoStagingCapacity is returned when a staging area cannot accept
	// another order because its slots are exhausted.
	ErrNoStagingCapacity = errors.New("staging area has no remaining capacity")

	// ErrAssignmentAlreadyHandled is returned when a conditional assignment
	// transition finds the assignment no longer in the expected state; a
	// concurrent pipeline or monitor invocation won the race.
	ErrAssignmentAlreadyHandled = errors.New("staging assignment already handled")
)

// StagingAreaRepository defines the persistence contract for staging areas.
//
// Load-counter mutations are expressed as intent methods rather than a
// generic Update so the store can apply them as atomic read-modify-write
// operations: concurrent pipeline and monitor invocations must never
// overshoot capacity or drive the load negative.
type StagingAreaRepository interface {
	// Add persists a new staging area.
	Add(ctx context.Context, area *staging.Area) error

	// Get retrieves a staging area by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*staging.Area, error)

	// GetLeastLoadedAvailable retrieves the staging area with the lowest
	// current load among the organization's areas that are idle or filling
	// and still below capacity. Greedy load balancing, not first-available.
	GetLeastLoadedAvailable(ctx context.Context, organizationID string) (*staging.Area, error)

	// Reserve atomically occupies one slot and moves the area to FILLING.
	// Returns ErrNoStagingCapacity when the area is already full.
	Reserve(ctx context.Context, id kernel.UUID) error

	// MarkReady flags the area's load as staged and awaiting pickup.
	MarkReady(ctx context.Context, id kernel.UUID) error

	// Release atomically frees one slot after a successful hand-off,
	// returning the area to IDLE when it becomes empty.
	Release(ctx context.Context, id kernel.UUID) error
}

// StagingAssignmentRepository defines the persistence contract for the
// occupancy records linking orders to staging areas.
//
// Status transitions are conditional updates keyed on the expected current
// status, so a racing completion attempt surfaces as
// ErrAssignmentAlreadyHandled instead of silently double-completing.
type StagingAssignmentRepository interface {
	// Add persists a new open assignment.
	Add(ctx context.Context, assignment *staging.Assignment) error

	// GetOpenByOrder retrieves the single open (non-completed) assignment
	// for the given order.
	GetOpenByOrder(ctx context.Context, orderID kernel.UUID) (*staging.Assignment, error)

	// GetAllOpen retrieves every open assignment, oldest first.
	// Scanned by the staging monitor on each tick.
	GetAllOpen(ctx context.Context) ([]*staging.Assignment, error)

	// MarkLoaded transitions an ASSIGNED assignment to LOADED.
	// Returns ErrAssignmentAlreadyHandled when the assignment is not ASSIGNED.
	MarkLoaded(ctx context.Context, id kernel.UUID) error

	// Complete transitions a LOADED assignment to COMPLETED, recording the
	// completion time. Returns ErrAssignmentAlreadyHandled when the
	// assignment is not LOADED.
	Complete(ctx context.Context, id kernel.UUID, completedAt time.Time) error
}

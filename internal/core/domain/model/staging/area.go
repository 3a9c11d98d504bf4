package staging

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrAreaIsNotConstructed is returned when an Area instance was not created
	// through the NewArea or RestoreArea factory methods.
	ErrAreaIsNotConstructed = errors.New("Area must be created via NewArea or RestoreArea")
)

// AreaStatus describes the occupancy state of a staging area.
type AreaStatus string

const (
	// AreaIdle means the area holds no orders.
	AreaIdle AreaStatus = "IDLE"

	// AreaFilling means the area holds at least one order and can accept more.
	AreaFilling AreaStatus = "FILLING"

	// AreaReady means the area's orders are loaded and awaiting carrier pickup.
	AreaReady AreaStatus = "READY"
)

// Validate checks that the area status is one of the supported values.
func (s AreaStatus) Validate() error {
	switch s {
	case AreaIdle, AreaFilling, AreaReady:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"staging area status is invalid",
			fmt.Errorf("%q is not a valid staging area status", string(s)),
		)
	}
}

// Area is a physical holding zone where packed orders wait for carrier
// pickup. Capacity is counted in order slots.
//
// Invariants:
//   - 0 <= currentLoad <= capacity
//   - status is AreaIdle exactly when currentLoad == 0
//
// The load counter is also maintained with conditional updates at the
// store layer so concurrent pipeline and monitor invocations cannot
// overshoot capacity; the aggregate-level methods exist for in-memory
// reasoning and tests.
type Area struct {
	id             kernel.UUID
	organizationID string
	name           string
	capacity       int
	currentLoad    int
	status         AreaStatus

	isConstructed bool
}

// NewArea creates an empty staging area with the given slot capacity.
func NewArea(id kernel.UUID, organizationID, name string, capacity int) (*Area, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if organizationID == "" {
		return nil, errs.NewValueIsRequiredError("organizationID")
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if capacity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"capacity is invalid",
			fmt.Errorf("%d is not greater than 0", capacity),
		)
	}

	return &Area{
		id:             id,
		organizationID: organizationID,
		name:           name,
		capacity:       capacity,
		status:         AreaIdle,
		isConstructed:  true,
	}, nil
}

// RestoreArea reconstructs an Area from persistence.
func RestoreArea(
	id kernel.UUID,
	organizationID, name string,
	capacity, currentLoad int,
	status AreaStatus,
) (*Area, error) {
	a, err := NewArea(id, organizationID, name, capacity)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if currentLoad < 0 || currentLoad > capacity {
		return nil, errs.NewValueIsOutOfRangeError("currentLoad", currentLoad, 0, capacity)
	}

	a.currentLoad = currentLoad
	a.status = status
	return a, nil
}

// Validate ensures the Area instance was properly constructed.
func (a *Area) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAreaIsNotConstructed
	}
	return nil
}

// ID returns the area's unique identifier.
func (a *Area) ID() kernel.UUID {
	return a.id
}

// OrganizationID returns the owning organization.
func (a *Area) OrganizationID() string {
	return a.organizationID
}

// Name returns the area's display name.
func (a *Area) Name() string {
	return a.name
}

// Capacity returns the maximum number of concurrent order slots.
func (a *Area) Capacity() int {
	return a.capacity
}

// CurrentLoad returns the number of occupied order slots.
func (a *Area) CurrentLoad() int {
	return a.currentLoad
}

// Status returns the occupancy state of the area.
func (a *Area) Status() AreaStatus {
	return a.status
}

// HasCapacity reports whether the area can accept another order and is in
// a state that admits assignments.
func (a *Area) HasCapacity() bool {
	return a.currentLoad < a.capacity && (a.status == AreaIdle || a.status == AreaFilling)
}

// Assign occupies one slot for an incoming order and moves the area to
// AreaFilling. Fails when the area is full or already marked ready.
func (a *Area) Assign() error {
	if !a.HasCapacity() {
		return errs.NewValueIsOutOfRangeError("currentLoad", a.currentLoad+1, 0, a.capacity)
	}

	a.currentLoad++
	a.status = AreaFilling
	return nil
}

// MarkReady flags the area's load as fully staged and awaiting pickup.
func (a *Area) MarkReady() error {
	if a.currentLoad == 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"staging area status is invalid",
			fmt.Errorf("area %s is empty and cannot be marked ready", a.name),
		)
	}

	a.status = AreaReady
	return nil
}

// Release frees one slot after a successful hand-off. The area returns to
// AreaIdle when empty and AreaFilling otherwise, preserving the invariant
// that idle means zero load.
func (a *Area) Release() error {
	if a.currentLoad == 0 {
		return errs.NewValueIsOutOfRangeError("currentLoad", -1, 0, a.capacity)
	}

	a.currentLoad--
	if a.currentLoad == 0 {
		a.status = AreaIdle
	} else {
		a.status = AreaFilling
	}
	return nil
}

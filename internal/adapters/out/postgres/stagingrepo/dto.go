// Package stagingrepo provides data transfer objects and mapping functions
// for staging area and staging assignment persistence. Load counters and
// assignment status transitions are written as conditional updates so
// concurrent pipeline and monitor invocations cannot corrupt occupancy.
package stagingrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/staging"

	"github.com/google/uuid"
)

// AreaDTO represents the database structure for persisting staging areas.
type AreaDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID string    `gorm:"index"`
	Name           string
	Capacity       int
	CurrentLoad    int
	Status         string `gorm:"type:varchar(16);index"`
}

// TableName specifies the database table name for staging areas.
func (AreaDTO) TableName() string {
	return "staging_areas"
}

// AssignmentDTO represents the database structure for persisting staging
// assignments. The partial unique index enforces at most one open
// assignment per order.
type AssignmentDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	StagingAreaID uuid.UUID `gorm:"type:uuid;index"`
	OrderID       uuid.UUID `gorm:"type:uuid;index"`
	Status        string    `gorm:"type:varchar(16);index"`
	AssignedAt    time.Time `gorm:"index"`
	CompletedAt   *time.Time
}

// TableName specifies the database table name for staging assignments.
func (AssignmentDTO) TableName() string {
	return "staging_assignments"
}

// areaFromDomain converts a staging area aggregate to its database representation.
func areaFromDomain(area *staging.Area) AreaDTO {
	return AreaDTO{
		ID:             area.ID().Bytes(),
		OrganizationID: area.OrganizationID(),
		Name:           area.Name(),
		Capacity:       area.Capacity(),
		CurrentLoad:    area.CurrentLoad(),
		Status:         string(area.Status()),
	}
}

// areaToDomain converts a database DTO to a staging area aggregate.
func areaToDomain(dto AreaDTO) (*staging.Area, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return staging.RestoreArea(
		id,
		dto.OrganizationID,
		dto.Name,
		dto.Capacity,
		dto.CurrentLoad,
		staging.AreaStatus(dto.Status),
	)
}

// assignmentFromDomain converts an assignment aggregate to its database representation.
func assignmentFromDomain(assignment *staging.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:            assignment.ID().Bytes(),
		StagingAreaID: assignment.StagingAreaID().Bytes(),
		OrderID:       assignment.OrderID().Bytes(),
		Status:        string(assignment.Status()),
		AssignedAt:    assignment.AssignedAt(),
		CompletedAt:   assignment.CompletedAt(),
	}
}

// assignmentToDomain converts a database DTO to an assignment aggregate.
func assignmentToDomain(dto AssignmentDTO) (*staging.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	areaID, err := kernel.UUIDFromBytes(dto.StagingAreaID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return staging.RestoreAssignment(
		id,
		areaID,
		orderID,
		staging.AssignmentStatus(dto.Status),
		dto.AssignedAt,
		dto.CompletedAt,
	)
}

package stagingrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/staging"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStagingAssignmentRepository implements StagingAssignmentRepository
// using GORM. Status transitions are conditional updates keyed on the
// expected current status; losing a race surfaces as
// ports.ErrAssignmentAlreadyHandled.
type GormStagingAssignmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormStagingAssignmentRepository creates a new GORM staging assignment repository.
func NewGormStagingAssignmentRepository(db *gorm.DB, tracker aggregateTracker) *GormStagingAssignmentRepository {
	return &GormStagingAssignmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new open assignment to the database.
func (r *GormStagingAssignmentRepository) Add(ctx context.Context, assignment *staging.Assignment) error {
	if err := assignment.Validate(); err != nil {
		return err
	}

	dto := assignmentFromDomain(assignment)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(assignment.ID(), assignment)
	return nil
}

// GetOpenByOrder retrieves the single open assignment for the given order.
func (r *GormStagingAssignmentRepository) GetOpenByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (*staging.Assignment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Where("status != ?", staging.AssignmentCompleted).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("staging assignment", orderID.String())
		}
		return nil, err
	}

	return assignmentToDomain(dto)
}

// GetAllOpen retrieves every open assignment, oldest first.
func (r *GormStagingAssignmentRepository) GetAllOpen(ctx context.Context) ([]*staging.Assignment, error) {
	var dtos []AssignmentDTO
	err := r.db.WithContext(ctx).
		Where("status != ?", staging.AssignmentCompleted).
		Order("assigned_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	assignments := make([]*staging.Assignment, 0, len(dtos))
	for _, dto := range dtos {
		assignment, toErr := assignmentToDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		assignments = append(assignments, assignment)
	}

	return assignments, nil
}

// MarkLoaded transitions an ASSIGNED assignment to LOADED.
func (r *GormStagingAssignmentRepository) MarkLoaded(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&AssignmentDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), staging.AssignmentAssigned).
		Update("status", staging.AssignmentLoaded)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrAssignmentAlreadyHandled
	}

	return nil
}

// Complete transitions a LOADED assignment to COMPLETED, recording the
// completion time.
func (r *GormStagingAssignmentRepository) Complete(ctx context.Context, id kernel.UUID, completedAt time.Time) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&AssignmentDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), staging.AssignmentLoaded).
		Updates(map[string]any{
			"status":       staging.AssignmentCompleted,
			"completed_at": completedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrAssignmentAlreadyHandled
	}

	return nil
}

package stagingrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/staging"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStagingAreaRepository implements StagingAreaRepository using GORM.
//
// Load-counter mutations run as single conditional UPDATE statements so
// concurrent transactions serialize on the area row instead of racing a
// read-modify-write cycle in application code.
type GormStagingAreaRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormStagingAreaRepository creates a new GORM staging area repository.
func NewGormStagingAreaRepository(db *gorm.DB, tracker aggregateTracker) *GormStagingAreaRepository {
	return &GormStagingAreaRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new staging area to the database.
func (r *GormStagingAreaRepository) Add(ctx context.Context, area *staging.Area) error {
	if err := area.Validate(); err != nil {
		return err
	}

	dto := areaFromDomain(area)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(area.ID(), area)
	return nil
}

// Get retrieves a staging area by ID.
func (r *GormStagingAreaRepository) Get(ctx context.Context, id kernel.UUID) (*staging.Area, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AreaDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("staging area", id.String())
		}
		return nil, err
	}

	return areaToDomain(dto)
}

// GetLeastLoadedAvailable retrieves the organization's staging area with the
// lowest current load that still has a free slot.
func (r *GormStagingAreaRepository) GetLeastLoadedAvailable(
	ctx context.Context,
	organizationID string,
) (*staging.Area, error) {
	var dto AreaDTO
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Where("status IN ?", []string{string(staging.AreaIdle), string(staging.AreaFilling)}).
		Where("current_load < capacity").
		Order("current_load ASC, name ASC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("staging area", "least loaded available")
		}
		return nil, err
	}

	return areaToDomain(dto)
}

// Reserve atomically occupies one slot and moves the area to FILLING.
func (r *GormStagingAreaRepository) Reserve(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE staging_areas
		SET current_load = current_load + 1, status = ?
		WHERE id = ? AND current_load < capacity AND status IN ?
	`, staging.AreaFilling, id.Bytes(),
		[]string{string(staging.AreaIdle), string(staging.AreaFilling)})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrNoStagingCapacity
	}

	return nil
}

// MarkReady flags the area's load as staged and awaiting pickup.
func (r *GormStagingAreaRepository) MarkReady(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE staging_areas
		SET status = ?
		WHERE id = ? AND current_load > 0
	`, staging.AreaReady, id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("staging area", id.String())
	}

	return nil
}

// Release atomically frees one slot, returning the area to IDLE when it
// becomes empty and FILLING otherwise.
func (r *GormStagingAreaRepository) Release(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE staging_areas
		SET current_load = current_load - 1,
		    status = CASE WHEN current_load - 1 = 0 THEN ? ELSE ? END
		WHERE id = ? AND current_load > 0
	`, staging.AreaIdle, staging.AreaFilling, id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("staging area", id.String())
	}

	return nil
}

// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// StagingAreaRepoFactory provides access to the staging area repository
	// within a transaction.
	StagingAreaRepoFactory interface {
		StagingAreaRepository() ports.StagingAreaRepository
	}

	// StagingAssignmentRepoFactory provides access to the staging assignment
	// repository within a transaction.
	StagingAssignmentRepoFactory interface {
		StagingAssignmentRepository() ports.StagingAssignmentRepository
	}

	// ShipmentRepoFactory provides access to the shipment repository within
	// a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// PipelineUoW manages transactions for the fulfillment pipeline: order
	// status advances plus staging slot bookkeeping. Each pipeline stage
	// opens its own unit of work so a stage's mutation is durably committed
	// before the next stage begins.
	PipelineUoW interface {
		TxManager
		OrderRepoFactory
		StagingAreaRepoFactory
		StagingAssignmentRepoFactory
	}

	// PipelineUoWFactory creates pipeline unit of work instances.
	PipelineUoWFactory interface {
		Create() PipelineUoW
	}

	// HandoffUoW manages the carrier hand-off transaction, which finalizes
	// the order, its staging assignment and area, and the shipment record
	// atomically.
	HandoffUoW interface {
		TxManager
		OrderRepoFactory
		StagingAreaRepoFactory
		StagingAssignmentRepoFactory
		ShipmentRepoFactory
	}

	// HandoffUoWFactory creates hand-off unit of work instances.
	HandoffUoWFactory interface {
		Create() HandoffUoW
	}
)

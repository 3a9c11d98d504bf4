package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrHandoffToTMSCommandIsNotConstructed = errors.New(
	"HandoffToTMSCommand must be created via NewHandoffToTMSCommand constructor",
)

// HandoffToTMSCommand requests the carrier hand-off of one staged order:
// carrier selection, identifier generation, and shipment registration with
// the transportation system.
type HandoffToTMSCommand struct { //nolint:recvcheck //using for validation
	stagingAreaID kernel.UUID
	orderID       kernel.UUID

	guard guard.ConstructorGuard
}

// NewHandoffToTMSCommand creates a command to hand a staged order off to
// the transportation system. Both identifiers must be valid.
func NewHandoffToTMSCommand(stagingAreaID, orderID kernel.UUID) (HandoffToTMSCommand, error) {
	cmd := HandoffToTMSCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setStagingAreaID(stagingAreaID),
		cmd.setOrderID(orderID),
	); err != nil {
		return HandoffToTMSCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c HandoffToTMSCommand) Validate() error {
	return c.guard.Validate(ErrHandoffToTMSCommandIsNotConstructed)
}

// StagingAreaID returns the staging area the order occupies.
func (c HandoffToTMSCommand) StagingAreaID() kernel.UUID {
	return c.stagingAreaID
}

// OrderID returns the order to hand off.
func (c HandoffToTMSCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *HandoffToTMSCommand) setStagingAreaID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.stagingAreaID = id
	return nil
}

func (c *HandoffToTMSCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

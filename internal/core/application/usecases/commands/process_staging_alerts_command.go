package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrProcessStagingAlertsCommandIsNotConstructed = errors.New(
	"ProcessStagingAlertsCommand must be created via NewProcessStagingAlertsCommand constructor",
)

// ProcessStagingAlertsCommand requests one sweep over open staging
// assignments: dwell-time alerting plus auto-hand-off of stranded loaded
// orders. Issued by the background staging monitor on every tick.
type ProcessStagingAlertsCommand struct {
	guard guard.ConstructorGuard
}

// NewProcessStagingAlertsCommand creates a command to run one monitor sweep.
func NewProcessStagingAlertsCommand() ProcessStagingAlertsCommand {
	return ProcessStagingAlertsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ProcessStagingAlertsCommand) Validate() error {
	return c.guard.Validate(ErrProcessStagingAlertsCommandIsNotConstructed)
}

package commands

import (
	"errors"

	"mealroute/internal/pkg/guard"
)

var ErrPlanRoutesCommandIsNotConstructed = errors.New(
	"PlanRoutesCommand must be created via NewPlanRoutesCommand constructor",
)

// PlanRoutesCommand triggers a planning pass over all orders that are ready
// for delivery. Orders are grouped per branch and each group is turned into
// an approximate delivery route starting at the branch.
type PlanRoutesCommand struct {
	guard guard.ConstructorGuard
}

// NewPlanRoutesCommand creates a new command to trigger route planning.
// This is a parameterless command that initiates a full planning pass.
func NewPlanRoutesCommand() PlanRoutesCommand {
	return PlanRoutesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrPlanRoutesCommandIsNotConstructed if validation fails.
func (c *PlanRoutesCommand) Validate() error {
	return c.guard.Validate(
		ErrPlanRoutesCommandIsNotConstructed,
	)
}

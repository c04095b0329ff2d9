package usecase

import (
	"go.uber.org/fx"

	"github.com/palletworks/portal/internal/adapter/workflow"
	"github.com/palletworks/portal/internal/domain/repository"
	"github.com/palletworks/portal/internal/pricing"
)

// Module wires the application use cases.
var Module = fx.Provide(newIntakeUseCase, newOrderUseCase)

type intakeParams struct {
	fx.In

	Repos repository.Factory
	Relay workflow.Client
}

func newIntakeUseCase(p intakeParams) *IntakeUseCase {
	return NewIntakeUseCase(p.Repos.Submissions(), p.Relay)
}

type orderParams struct {
	fx.In

	Repos    repository.Factory
	Policy   pricing.Policy
	Notifier Notifier
}

func newOrderUseCase(p orderParams) *OrderUseCase {
	return NewOrderUseCase(p.Repos.Orders(), p.Policy, p.Notifier)
}

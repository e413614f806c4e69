package services

import (
	"github.com/ghuser/equipstore/pkg/app"
	"github.com/ghuser/equipstore/services/equipment/infrastructure/persistence/memory"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Registry *Registry
}

// New wires the equipment registry with infrastructure from the Application container.
// Each call owns a fresh, empty registry: call it once per process.
func New(a *app.Application) *Services {
	repo := memory.NewEquipmentRepository()

	var publisher EventPublisher
	if a.EventBus != nil {
		publisher = a.EventBus
	}

	return &Services{
		Registry: NewRegistry(repo, publisher, a.Logger),
	}
}

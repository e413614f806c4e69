package repositories

import (
	"github.com/ghuser/equipstore/services/equipment/domain/models"
)

// EquipmentRepository is the storage interface for Equipment records.
// The domain layer owns this interface; infrastructure implements it.
//
// Implementations need not be safe for concurrent use: the registry holds its
// exclusive lock around every call.
type EquipmentRepository interface {
	// NextID consumes and returns the next identity. Identities start at 0,
	// are strictly increasing and are never handed out twice.
	NextID() int

	// Save stores a new Equipment keyed by its id.
	Save(e *models.Equipment) error

	// GetByID returns the stored Equipment or ErrEquipmentNotFound.
	GetByID(id int) (*models.Equipment, error)

	// FindByName returns the Equipment whose name equals name ignoring case,
	// or ErrEquipmentNotFound.
	FindByName(name string) (*models.Equipment, error)

	// List returns every stored Equipment in ascending id order.
	List() []*models.Equipment

	// Count reports the number of stored records.
	Count() int
}

// Package memory implements the equipment repository on process memory.
// State lives for the lifetime of the process and is lost on restart.
package memory

import (
	"fmt"
	"sort"

	equipmentdomain "github.com/ghuser/equipstore/services/equipment/domain"
	"github.com/ghuser/equipstore/services/equipment/domain/models"
	domainsvcs "github.com/ghuser/equipstore/services/equipment/domain/services"
)

// EquipmentRepository implements repositories.EquipmentRepository with a map
// keyed by id and a monotonic id counter. It does no locking of its own.
type EquipmentRepository struct {
	byID   map[int]*models.Equipment
	nextID int
}

// NewEquipmentRepository returns an empty repository whose first id is 0.
func NewEquipmentRepository() *EquipmentRepository {
	return &EquipmentRepository{byID: make(map[int]*models.Equipment)}
}

// NextID consumes and returns the next identity.
func (r *EquipmentRepository) NextID() int {
	id := r.nextID
	r.nextID++
	return id
}

// Save stores e. Returns ErrEquipmentAlreadyExists if a stored record is the
// same equipment, by id or by name.
func (r *EquipmentRepository) Save(e *models.Equipment) error {
	if e == nil {
		return fmt.Errorf("save equipment: nil record")
	}
	for _, stored := range r.byID {
		if domainsvcs.SameEquipment(stored, e) {
			return fmt.Errorf("%w: collides with id %d", equipmentdomain.ErrEquipmentAlreadyExists, stored.ID())
		}
	}
	r.byID[e.ID()] = e
	return nil
}

// GetByID returns the Equipment stored under id.
func (r *EquipmentRepository) GetByID(id int) (*models.Equipment, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, equipmentdomain.ErrEquipmentNotFound
	}
	return e, nil
}

// FindByName scans for a case-insensitive name match.
func (r *EquipmentRepository) FindByName(name string) (*models.Equipment, error) {
	for _, e := range r.byID {
		if domainsvcs.NamesMatch(e.Name(), models.EquipmentName(name)) {
			return e, nil
		}
	}
	return nil, equipmentdomain.ErrEquipmentNotFound
}

// List returns all records sorted by id.
func (r *EquipmentRepository) List() []*models.Equipment {
	out := make([]*models.Equipment, 0, len(r.byID))
	for _, e := range r.byID {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Count reports the number of stored records.
func (r *EquipmentRepository) Count() int {
	return len(r.byID)
}

package models

import (
	"fmt"
	"math"

	equipmentdomain "github.com/ghuser/equipstore/services/equipment/domain"
)

// OrderFactor multiplies the lower bound to give the suggested reorder quantity.
const OrderFactor = 5

// MaxLowerBound is the largest lower bound whose order quantity fits in an int.
// Larger values are stored as MaxLowerBound.
const MaxLowerBound = math.MaxInt / OrderFactor

// Equipment is one stocked item. Instances are owned by the registry; the
// registry's lock guards every mutation, so Equipment itself is not safe for
// concurrent use.
type Equipment struct {
	id         int
	name       EquipmentName
	supplier   string
	amount     int
	lowerBound int
}

// NewEquipment constructs an Equipment. Negative amount and lowerBound are
// clamped to 0 and lowerBound is capped at MaxLowerBound; a negative id or an
// empty name is rejected.
func NewEquipment(id int, name EquipmentName, supplier string, amount, lowerBound int) (*Equipment, error) {
	if id < 0 {
		return nil, fmt.Errorf("%w: %d is negative", equipmentdomain.ErrInvalidEquipmentID, id)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: equipment must be named", equipmentdomain.ErrInvalidEquipmentName)
	}
	return &Equipment{
		id:         id,
		name:       name,
		supplier:   supplier,
		amount:     clamp(amount),
		lowerBound: clampLowerBound(lowerBound),
	}, nil
}

// ID returns the registry-assigned identity.
func (e *Equipment) ID() int { return e.id }

// Name returns the equipment name.
func (e *Equipment) Name() EquipmentName { return e.name }

// Supplier returns the supplier description.
func (e *Equipment) Supplier() string { return e.supplier }

// Amount returns the stored quantity.
func (e *Equipment) Amount() int { return e.amount }

// LowerBound returns the reorder threshold.
func (e *Equipment) LowerBound() int { return e.lowerBound }

// SetSupplier replaces the supplier description.
func (e *Equipment) SetSupplier(supplier string) {
	e.supplier = supplier
}

// SetLowerBound replaces the reorder threshold, clamped to [0, MaxLowerBound].
func (e *Equipment) SetLowerBound(lowerBound int) {
	e.lowerBound = clampLowerBound(lowerBound)
}

// ChangeAmount adds delta to the stored amount. A delta that would leave the
// amount negative is rejected and the amount is left untouched.
func (e *Equipment) ChangeAmount(delta int) bool {
	if e.amount+delta < 0 {
		return false
	}
	e.amount += delta
	return true
}

// OrderQuantity is lowerBound*OrderFactor while the amount is below the lower
// bound, otherwise 0.
func (e *Equipment) OrderQuantity() int {
	if e.amount < e.lowerBound {
		return e.lowerBound * OrderFactor
	}
	return 0
}

// Clone returns a detached copy safe to hand out of the registry.
func (e *Equipment) Clone() *Equipment {
	c := *e
	return &c
}

// String renders every field in the data report format.
func (e *Equipment) String() string {
	return fmt.Sprintf("Id: %d, Name: %s, Supplier: %s, Amount: %d, Lower bound: %d",
		e.id, e.name, e.supplier, e.amount, e.lowerBound)
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func clampLowerBound(n int) int {
	return min(clamp(n), MaxLowerBound)
}

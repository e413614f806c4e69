package services

import (
	"strings"

	"github.com/ghuser/equipstore/services/equipment/domain/models"
)

// SameEquipment reports whether a and b denote the same logical item: they
// share an id or their names are equal ignoring case.
func SameEquipment(a, b *models.Equipment) bool {
	if a == nil || b == nil {
		return false
	}
	return a.ID() == b.ID() || NamesMatch(a.Name(), b.Name())
}

// NamesMatch compares two names the way the registry enforces uniqueness.
func NamesMatch(a, b models.EquipmentName) bool {
	return strings.EqualFold(a.String(), b.String())
}

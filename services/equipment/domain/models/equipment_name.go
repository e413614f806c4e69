package models

import "fmt"

// EquipmentName is a value object representing a valid equipment name.
// Encapsulates validation rules: 1 <= len(name) <= 255.
type EquipmentName string

const (
	minEquipmentNameLength = 1
	maxEquipmentNameLength = 255
)

// NewEquipmentName constructs a valid EquipmentName or returns an error if constraints are violated.
func NewEquipmentName(s string) (EquipmentName, error) {
	if len(s) < minEquipmentNameLength {
		return "", fmt.Errorf("equipment name must be at least %d character", minEquipmentNameLength)
	}
	if len(s) > maxEquipmentNameLength {
		return "", fmt.Errorf("equipment name must not exceed %d characters", maxEquipmentNameLength)
	}
	return EquipmentName(s), nil
}

// String returns the underlying string value.
func (n EquipmentName) String() string {
	return string(n)
}

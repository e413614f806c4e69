// Package services contains stateless domain services for the equipment bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ghuser/equipstore/services/equipment/domain/models"
)

// ValidateName enforces business rules for EquipmentName beyond the structural
// constraints enforced by the EquipmentName constructor (length 1 to 255).
//
// Business rules:
//   - Must not be only whitespace characters. Such a name prints as an empty
//     field in the reports and is rejected by the HTTP layer's notblank rule.
//   - No control characters (Unicode category Cc). The text reports hold one
//     record per line, and workbook cells are XML, which cannot carry most C0
//     controls.
func ValidateName(name models.EquipmentName) error {
	s := name.String()

	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("equipment name must not be only whitespace")
	}

	for _, r := range s {
		if unicode.IsControl(r) {
			return fmt.Errorf("equipment name must not contain control characters")
		}
	}

	return nil
}

// ValidateEquipmentForRegistration checks a fully-constructed Equipment before
// it is stored. Construction already guarantees a non-negative id and clamped
// quantities; this re-checks them together with the name rules.
func ValidateEquipmentForRegistration(e *models.Equipment) error {
	if e == nil {
		return fmt.Errorf("equipment cannot be nil")
	}

	if err := ValidateName(e.Name()); err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	if e.ID() < 0 {
		return fmt.Errorf("id must not be negative")
	}

	if e.Amount() < 0 || e.LowerBound() < 0 {
		return fmt.Errorf("quantities must not be negative")
	}

	return nil
}

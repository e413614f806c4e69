package domain

import "errors"

// Sentinel errors for the equipment domain. Use errors.Is() to check these.
var (
	// ErrEquipmentNotFound indicates no equipment matches the requested id or name.
	ErrEquipmentNotFound = errors.New("equipment not found")

	// ErrEquipmentAlreadyExists indicates an equipment with a case-insensitively equal name is registered.
	ErrEquipmentAlreadyExists = errors.New("equipment already exists")

	// ErrInvalidEquipmentName indicates the equipment name violates domain constraints.
	ErrInvalidEquipmentName = errors.New("invalid equipment name")

	// ErrInvalidEquipmentID indicates a negative equipment id.
	ErrInvalidEquipmentID = errors.New("invalid equipment id")

	// ErrNotEnoughStored indicates a withdrawal larger than the stored amount.
	ErrNotEnoughStored = errors.New("not enough stored")
)

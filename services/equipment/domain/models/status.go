package models

import (
	"fmt"

	equipmentdomain "github.com/ghuser/equipstore/services/equipment/domain"
)

// Status is the result code of a supply alteration. The numeric values are
// part of the wire contract.
type Status int

const (
	StatusOK              Status = 0
	StatusNotFound        Status = -1
	StatusNotEnoughStored Status = -2
)

// String returns the wire name of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusNotFound:
		return "NOT_FOUND"
	case StatusNotEnoughStored:
		return "NOT_ENOUGH_STORED"
	default:
		return "UNKNOWN"
	}
}

// Err maps the status to the matching domain sentinel, or nil for StatusOK.
func (s Status) Err() error {
	switch s {
	case StatusOK:
		return nil
	case StatusNotFound:
		return equipmentdomain.ErrEquipmentNotFound
	case StatusNotEnoughStored:
		return equipmentdomain.ErrNotEnoughStored
	default:
		return fmt.Errorf("unknown supply status %d", int(s))
	}
}

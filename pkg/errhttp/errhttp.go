// Package errhttp maps equipment domain errors to HTTP status codes.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/equipstore/pkg/httpx"
	equipmentdomain "github.com/ghuser/equipstore/services/equipment/domain"
)

// statuses is matched in order with errors.Is, so wrapped errors resolve too.
var statuses = []struct {
	err    error
	status int
}{
	{equipmentdomain.ErrEquipmentNotFound, http.StatusNotFound},
	{equipmentdomain.ErrEquipmentAlreadyExists, http.StatusConflict},
	{equipmentdomain.ErrNotEnoughStored, http.StatusConflict},
	{equipmentdomain.ErrInvalidEquipmentName, http.StatusUnprocessableEntity},
	{equipmentdomain.ErrInvalidEquipmentID, http.StatusUnprocessableEntity},
}

// WriteError writes err as {"error": ...} with the status from StatusOf.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, StatusOf(err), err.Error())
}

// StatusOf returns the HTTP status for err; unknown errors are 500.
func StatusOf(err error) int {
	for _, s := range statuses {
		if errors.Is(err, s.err) {
			return s.status
		}
	}
	return http.StatusInternalServerError
}

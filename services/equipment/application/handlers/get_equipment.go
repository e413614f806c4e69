package handlers

import (
	"net/http"

	"github.com/ghuser/equipstore/pkg/errhttp"
	"github.com/ghuser/equipstore/pkg/httpx"
	appsvcs "github.com/ghuser/equipstore/services/equipment/application/services"
)

// GetEquipmentHandler handles GET /equipment/{id} and GET /equipment/name/{name}.
type GetEquipmentHandler struct {
	svc *appsvcs.Services
}

// NewGetEquipmentHandler returns a GetEquipmentHandler backed by the given services.
func NewGetEquipmentHandler(svc *appsvcs.Services) *GetEquipmentHandler {
	return &GetEquipmentHandler{svc: svc}
}

// Execute returns one equipment record.
//
//	@Summary		Get equipment
//	@Description	Returns equipment by id
//	@Tags			equipment
//	@Produce		json
//	@Param			id	path		int	true	"Equipment id"
//	@Success		200	{object}	EquipmentResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Router			/equipment/{id} [get]
func (h *GetEquipmentHandler) Execute(w http.ResponseWriter, r *http.Request) {
	lookup, err := lookupFromRequest(r)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	e, err := h.svc.Registry.Get(r.Context(), lookup)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(e))
}

// ExecuteByName is Execute for the name-keyed route.
//
//	@Summary		Get equipment by name
//	@Description	Returns equipment by name, ignoring case
//	@Tags			equipment
//	@Produce		json
//	@Param			name	path		string	true	"Equipment name"
//	@Success		200		{object}	EquipmentResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/equipment/name/{name} [get]
func (h *GetEquipmentHandler) ExecuteByName(w http.ResponseWriter, r *http.Request) {
	h.Execute(w, r)
}

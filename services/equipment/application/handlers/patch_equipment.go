package handlers

import (
	"net/http"

	"github.com/ghuser/equipstore/pkg/errhttp"
	"github.com/ghuser/equipstore/pkg/httpx"
	pkgvalidator "github.com/ghuser/equipstore/pkg/validator"
	appsvcs "github.com/ghuser/equipstore/services/equipment/application/services"
)

// UpdateEquipmentRequest is the request body for PATCH /equipment/{id}.
// Omitted fields keep their value; a negative lower_bound is stored as 0.
type UpdateEquipmentRequest struct {
	Supplier   *string `json:"supplier,omitempty"    validate:"omitempty,max=255" example:"Sawmaster"`
	LowerBound *int    `json:"lower_bound,omitempty"                              example:"20"`
} // @name UpdateEquipmentRequest

// PatchEquipmentHandler handles PATCH /equipment/{id} requests.
type PatchEquipmentHandler struct {
	svc *appsvcs.Services
}

// NewPatchEquipmentHandler returns a PatchEquipmentHandler backed by the given services.
func NewPatchEquipmentHandler(svc *appsvcs.Services) *PatchEquipmentHandler {
	return &PatchEquipmentHandler{svc: svc}
}

// Execute changes the supplier and/or lower bound.
//
//	@Summary		Update equipment
//	@Description	Changes supplier and/or lower bound of existing equipment
//	@Tags			equipment
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Equipment id"
//	@Param			request	body		UpdateEquipmentRequest	true	"Fields to change"
//	@Success		200		{object}	EquipmentResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/equipment/{id} [patch]
func (h *PatchEquipmentHandler) Execute(w http.ResponseWriter, r *http.Request) {
	lookup, err := lookupFromRequest(r)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateEquipmentRequest](w, r)
	if !ok {
		return
	}
	if req.Supplier == nil && req.LowerBound == nil {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "supplier or lower_bound is required")
		return
	}

	e, err := h.svc.Registry.Update(r.Context(), lookup, appsvcs.UpdateParams{
		Supplier:   req.Supplier,
		LowerBound: req.LowerBound,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(e))
}

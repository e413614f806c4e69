package handlers

import (
	"errors"
	"net/http"

	"github.com/ghuser/equipstore/pkg/errhttp"
	"github.com/ghuser/equipstore/pkg/httpx"
	pkgvalidator "github.com/ghuser/equipstore/pkg/validator"
	appsvcs "github.com/ghuser/equipstore/services/equipment/application/services"
	equipmentdomain "github.com/ghuser/equipstore/services/equipment/domain"
)

// RegisterEquipmentRequest is the request body for POST /equipment.
// Negative amount and lower_bound are stored as 0.
type RegisterEquipmentRequest struct {
	Name       string `json:"name"        validate:"required,notblank,max=255" example:"Hammer"`
	Supplier   string `json:"supplier"    validate:"max=255"                   example:"Hencock & Huffler"`
	Amount     int    `json:"amount"                                           example:"10"`
	LowerBound int    `json:"lower_bound"                                      example:"30"`
} // @name RegisterEquipmentRequest

// RegisterEquipmentResponse reports whether the registration took place.
type RegisterEquipmentResponse struct {
	Registered bool               `json:"registered"          example:"true"`
	Equipment  *EquipmentResponse `json:"equipment,omitempty"`
	Error      string             `json:"error,omitempty"     example:"equipment already exists"`
} // @name RegisterEquipmentResponse

// PostEquipmentHandler handles POST /equipment requests.
type PostEquipmentHandler struct {
	svc *appsvcs.Services
}

// NewPostEquipmentHandler returns a PostEquipmentHandler backed by the given services.
func NewPostEquipmentHandler(svc *appsvcs.Services) *PostEquipmentHandler {
	return &PostEquipmentHandler{svc: svc}
}

// Execute registers new equipment under the next sequential id.
//
//	@Summary		Register equipment
//	@Description	Registers new equipment. Names are unique ignoring case.
//	@Tags			equipment
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterEquipmentRequest	true	"Equipment registration request"
//	@Success		201		{object}	RegisterEquipmentResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	RegisterEquipmentResponse
//	@Failure		422		{object}	RegisterEquipmentResponse
//	@Router			/equipment [post]
func (h *PostEquipmentHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[RegisterEquipmentRequest](w, r)
	if !ok {
		return
	}

	e, err := h.svc.Registry.Register(r.Context(), req.Name, req.Supplier, req.Amount, req.LowerBound)
	if err != nil {
		if errors.Is(err, equipmentdomain.ErrEquipmentAlreadyExists) || errors.Is(err, equipmentdomain.ErrInvalidEquipmentName) {
			httpx.JSON(w, errhttp.StatusOf(err), RegisterEquipmentResponse{Registered: false, Error: err.Error()})
			return
		}
		errhttp.WriteError(w, err)
		return
	}

	resp := toResponse(e)
	httpx.JSON(w, http.StatusCreated, RegisterEquipmentResponse{Registered: true, Equipment: &resp})
}

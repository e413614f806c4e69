package handlers

import (
	"net/http"

	"github.com/ghuser/equipstore/pkg/errhttp"
	"github.com/ghuser/equipstore/pkg/httpx"
	pkgvalidator "github.com/ghuser/equipstore/pkg/validator"
	appsvcs "github.com/ghuser/equipstore/services/equipment/application/services"
)

// AlterSupplyRequest is the request body for the supply endpoints.
// A negative difference withdraws stock.
type AlterSupplyRequest struct {
	Difference *int `json:"difference" validate:"required" example:"-5"`
} // @name AlterSupplyRequest

// AlterSupplyResponse carries the registry status code and its name.
type AlterSupplyResponse struct {
	Status int    `json:"status" example:"0"`
	Result string `json:"result" example:"OK"`
} // @name AlterSupplyResponse

// PostSupplyHandler handles POST /equipment/{id}/supply and POST /equipment/name/{name}/supply.
type PostSupplyHandler struct {
	svc *appsvcs.Services
}

// NewPostSupplyHandler returns a PostSupplyHandler backed by the given services.
func NewPostSupplyHandler(svc *appsvcs.Services) *PostSupplyHandler {
	return &PostSupplyHandler{svc: svc}
}

// Execute deposits or withdraws stock.
//
//	@Summary		Alter supply
//	@Description	Adds difference to the stored amount. Withdrawals beyond the stored amount are rejected.
//	@Tags			equipment
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Equipment id"
//	@Param			request	body		AlterSupplyRequest	true	"Stock difference"
//	@Success		200		{object}	AlterSupplyResponse
//	@Failure		404		{object}	AlterSupplyResponse
//	@Failure		409		{object}	AlterSupplyResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/equipment/{id}/supply [post]
func (h *PostSupplyHandler) Execute(w http.ResponseWriter, r *http.Request) {
	lookup, err := lookupFromRequest(r)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[AlterSupplyRequest](w, r)
	if !ok {
		return
	}

	status := h.svc.Registry.AlterSupply(r.Context(), lookup, *req.Difference)

	code := http.StatusOK
	if err := status.Err(); err != nil {
		code = errhttp.StatusOf(err)
	}
	httpx.JSON(w, code, AlterSupplyResponse{Status: int(status), Result: status.String()})
}

// ExecuteByName is Execute for the name-keyed route.
//
//	@Summary		Alter supply by name
//	@Description	Adds difference to the stored amount of equipment looked up by name, ignoring case
//	@Tags			equipment
//	@Accept			json
//	@Produce		json
//	@Param			name	path		string				true	"Equipment name"
//	@Param			request	body		AlterSupplyRequest	true	"Stock difference"
//	@Success		200		{object}	AlterSupplyResponse
//	@Failure		404		{object}	AlterSupplyResponse
//	@Failure		409		{object}	AlterSupplyResponse
//	@Router			/equipment/name/{name}/supply [post]
func (h *PostSupplyHandler) ExecuteByName(w http.ResponseWriter, r *http.Request) {
	h.Execute(w, r)
}

package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	appsvcs "github.com/ghuser/equipstore/services/equipment/application/services"
	equipmentdomain "github.com/ghuser/equipstore/services/equipment/domain"
	"github.com/ghuser/equipstore/services/equipment/domain/models"
)

// EquipmentResponse is the JSON form of one equipment record.
type EquipmentResponse struct {
	ID            int    `json:"id"             example:"0"`
	Name          string `json:"name"           example:"Hammer"`
	Supplier      string `json:"supplier"       example:"Hencock & Huffler"`
	Amount        int    `json:"amount"         example:"10"`
	LowerBound    int    `json:"lower_bound"    example:"30"`
	OrderQuantity int    `json:"order_quantity" example:"150"`
} // @name EquipmentResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"equipment not found"`
} // @name ErrorResponse

func toResponse(e *models.Equipment) EquipmentResponse {
	return EquipmentResponse{
		ID:            e.ID(),
		Name:          e.Name().String(),
		Supplier:      e.Supplier(),
		Amount:        e.Amount(),
		LowerBound:    e.LowerBound(),
		OrderQuantity: e.OrderQuantity(),
	}
}

// lookupFromRequest builds the registry lookup from the {id} or {name} URL
// parameter, whichever the matched route declares.
func lookupFromRequest(r *http.Request) (appsvcs.Lookup, error) {
	if raw := chi.URLParam(r, "name"); raw != "" {
		name, err := nameParam(r, raw)
		if err != nil {
			return appsvcs.Lookup{}, fmt.Errorf("%w: %w", equipmentdomain.ErrInvalidEquipmentName, err)
		}
		return appsvcs.ByName(name), nil
	}

	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return appsvcs.Lookup{}, fmt.Errorf("%w: %q", equipmentdomain.ErrInvalidEquipmentID, raw)
	}
	return appsvcs.ByID(id), nil
}

// nameParam returns the decoded {name} segment. chi matches on r.URL.RawPath
// when it is set (the path held an escaped '/'), and on the already-decoded
// r.URL.Path otherwise, so only the first case is unescaped here.
func nameParam(r *http.Request, raw string) (string, error) {
	if r.URL.RawPath == "" {
		return raw, nil
	}
	return url.PathUnescape(raw)
}

// reportFormat returns the ?format= query value, defaulting to "text".
func reportFormat(r *http.Request, allowed ...string) (string, bool) {
	format := r.URL.Query().Get("format")
	if format == "" {
		return "text", true
	}
	for _, a := range allowed {
		if format == a {
			return format, true
		}
	}
	return format, false
}

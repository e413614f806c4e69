package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/ghuser/equipstore/pkg/errhttp"
	"github.com/ghuser/equipstore/pkg/httpx"
	appsvcs "github.com/ghuser/equipstore/services/equipment/application/services"
)

// OrdersResponse is the JSON form of the order report.
type OrdersResponse struct {
	Orders []appsvcs.OrderLine `json:"orders"`
} // @name OrdersResponse

// DataResponse is the JSON form of the data report.
type DataResponse struct {
	Equipment []EquipmentResponse `json:"equipment"`
} // @name DataResponse

// GetReportsHandler handles the report endpoints.
type GetReportsHandler struct {
	svc *appsvcs.Services
}

// NewGetReportsHandler returns a GetReportsHandler backed by the given services.
func NewGetReportsHandler(svc *appsvcs.Services) *GetReportsHandler {
	return &GetReportsHandler{svc: svc}
}

// Orders renders the order report.
//
//	@Summary		Order report
//	@Description	Lists the order quantity of every record, ascending by id
//	@Tags			reports
//	@Produce		plain
//	@Produce		json
//	@Param			format	query		string	false	"Report format"	Enums(text, json)	default(text)
//	@Success		200		{object}	OrdersResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/equipment/orders [get]
func (h *GetReportsHandler) Orders(w http.ResponseWriter, r *http.Request) {
	format, ok := reportFormat(r, "text", "json")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", format))
		return
	}

	lines := h.svc.Registry.OrderLines(r.Context())
	if format == "json" {
		httpx.JSON(w, http.StatusOK, OrdersResponse{Orders: lines})
		return
	}
	httpx.Text(w, http.StatusOK, appsvcs.FormatOrders(lines))
}

// Data renders the data report.
//
//	@Summary		Data report
//	@Description	Lists every record, ascending by id. The xlsx format is returned as a file download.
//	@Tags			reports
//	@Produce		plain
//	@Produce		json
//	@Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Param			format	query		string	false	"Report format"	Enums(text, json, xlsx)	default(text)
//	@Success		200		{object}	DataResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/equipment/data [get]
func (h *GetReportsHandler) Data(w http.ResponseWriter, r *http.Request) {
	format, ok := reportFormat(r, "text", "json", "xlsx")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", format))
		return
	}

	list := h.svc.Registry.Snapshot(r.Context())
	switch format {
	case "json":
		resp := DataResponse{Equipment: make([]EquipmentResponse, len(list))}
		for i, e := range list {
			resp.Equipment[i] = toResponse(e)
		}
		httpx.JSON(w, http.StatusOK, resp)
	case "xlsx":
		// Rendered fully before any header is written so a failure can still be a 500.
		var buf bytes.Buffer
		if err := appsvcs.WriteDataWorkbook(&buf, list); err != nil {
			errhttp.WriteError(w, err)
			return
		}
		httpx.Attachment(w, appsvcs.WorkbookContentType, "equipment.xlsx")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	default:
		httpx.Text(w, http.StatusOK, appsvcs.FormatData(list))
	}
}

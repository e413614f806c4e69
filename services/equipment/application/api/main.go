package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/equipstore/services/equipment/application/handlers"
	appsvcs "github.com/ghuser/equipstore/services/equipment/application/services"
)

// EquipmentRoutes registers equipment endpoints on the provided chi router.
// svcs is shared with the event subscribers, so it is built once by the caller.
func EquipmentRoutes(r chi.Router, svcs *appsvcs.Services) {
	get := handlers.NewGetEquipmentHandler(svcs)
	supply := handlers.NewPostSupplyHandler(svcs)
	reports := handlers.NewGetReportsHandler(svcs)

	r.Group(func(r chi.Router) {
		r.Route("/equipment", func(r chi.Router) {
			r.Post("/", handlers.NewPostEquipmentHandler(svcs).Execute)

			r.Get("/orders", reports.Orders)
			r.Get("/data", reports.Data)

			r.Get("/name/{name}", get.ExecuteByName)
			r.Post("/name/{name}/supply", supply.ExecuteByName)

			r.Get("/{id}", get.Execute)
			r.Patch("/{id}", handlers.NewPatchEquipmentHandler(svcs).Execute)
			r.Post("/{id}/supply", supply.Execute)
		})
	})
}

package routers

import (
	"carelog-service/internal/app/delivery/http/controllers"
	"carelog-service/internal/app/delivery/http/middlewares"
	"carelog-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachSelectionRoutes(router chi.Router, middlewares *middlewares.Middlewares, selectionController *controllers.SelectionController) {
	router.Use(middlewares.RequireRoles(constvars.RoleCareGiver))

	router.Get("/", selectionController.FindSelection)
	router.Put("/resident", selectionController.SelectResident)
	router.Put("/date", selectionController.SetDate)
	router.Put("/mode", selectionController.SetMode)
	router.Put("/status", selectionController.SetStatus)
	router.Post("/toggle", selectionController.ToggleSlot)
	router.Post("/range", selectionController.SelectTimeRange)
	router.Post("/submit", selectionController.SubmitSelection)
}

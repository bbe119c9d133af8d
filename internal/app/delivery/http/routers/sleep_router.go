package routers

import (
	"carelog-service/internal/app/delivery/http/controllers"
	"carelog-service/internal/app/delivery/http/middlewares"
	"carelog-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachSleepRoutes(router chi.Router, middlewares *middlewares.Middlewares, sleepController *controllers.SleepController, reportController *controllers.ReportController) {
	careGiverOnly := middlewares.RequireRoles(constvars.RoleCareGiver)
	managerial := middlewares.RequireRoles(constvars.RoleManager, constvars.RoleSuperuser)

	router.Get("/", sleepController.FindEntries)
	router.Get("/missing", sleepController.FindMissing)
	router.With(careGiverOnly).Post("/", sleepController.SubmitSingle)
	router.With(careGiverOnly).Post("/batch", sleepController.SubmitBatch)

	router.With(managerial).Get("/report", reportController.BuildReport)
	router.With(managerial).Get("/report/export", reportController.DownloadCSV)
	router.With(managerial).Post("/report/export", reportController.PublishExport)
	router.With(managerial).Get("/submissions", sleepController.FindSubmissionHistory)
}

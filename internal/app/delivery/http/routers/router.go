package routers

import (
	"fmt"

	"carelog-service/internal/app/config"
	"carelog-service/internal/app/delivery/http/controllers"
	"carelog-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type Controllers struct {
	Sleep     *controllers.SleepController
	Selection *controllers.SelectionController
	Report    *controllers.ReportController
	Notice    *controllers.NoticeController
}

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	controllers Controllers,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))
	router.Use(middlewares.RequestID)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Use(middlewares.Authenticate)
			r.Use(middlewares.RateLimit)

			r.Route("/residents/{residentID}/sleeps", func(r chi.Router) {
				attachSleepRoutes(r, middlewares, controllers.Sleep, controllers.Report)
			})

			r.Route("/sleeps/selection", func(r chi.Router) {
				attachSelectionRoutes(r, middlewares, controllers.Selection)
			})

			r.Route("/notices", func(r chi.Router) {
				attachNoticeRoutes(r, controllers.Notice)
			})
		})
	})
}

package routers

import (
	"fmt"
	"labcore-service/internal/app/config"
	"labcore-service/internal/app/delivery/http/middlewares"
	"labcore-service/internal/app/services/core/orders"
	"labcore-service/internal/app/services/core/results"
	"labcore-service/internal/app/services/core/specimens"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	orderController *orders.OrderController,
	specimenController *specimens.SpecimenController,
	resultController *results.ResultController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.ErrorHandler)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/orders", func(r chi.Router) {
				attachOrderRoutes(r, middlewares, orderController, specimenController)
			})

			r.Route("/specimens", func(r chi.Router) {
				attachSpecimenRoutes(r, middlewares, specimenController)
			})

			r.Route("/results", func(r chi.Router) {
				attachResultRoutes(r, middlewares, resultController)
			})
		})
	})
}

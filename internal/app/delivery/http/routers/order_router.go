package routers

import (
	"labcore-service/internal/app/delivery/http/middlewares"
	"labcore-service/internal/app/services/core/orders"
	"labcore-service/internal/app/services/core/specimens"

	"github.com/go-chi/chi/v5"
)

func attachOrderRoutes(router chi.Router, middlewares *middlewares.Middlewares, orderController *orders.OrderController, specimenController *specimens.SpecimenController) {
	router.With(middlewares.Actor).Post("/", orderController.CreateOrder)
	router.Get("/{orderID}", orderController.GetOrderByID)
	router.With(middlewares.Actor).Patch("/{orderID}/tests/{testID}/status", orderController.UpdateLineItemStatus)

	router.With(middlewares.Actor).Post("/{orderID}/accession", specimenController.AccessionSpecimen)
	router.With(middlewares.Actor).Post("/{orderID}/reject", specimenController.RejectSpecimen)
	router.With(middlewares.Actor).Post("/{orderID}/hold", specimenController.HoldSpecimen)
}

package routers

import (
	"labcore-service/internal/app/delivery/http/middlewares"
	"labcore-service/internal/app/services/core/specimens"

	"github.com/go-chi/chi/v5"
)

func attachSpecimenRoutes(router chi.Router, middlewares *middlewares.Middlewares, specimenController *specimens.SpecimenController) {
	router.With(middlewares.Actor).Post("/{orderID}/custody", specimenController.AppendCustodyEntry)
	router.With(middlewares.Actor).Post("/{orderID}/aliquots", specimenController.CreateAliquot)
	router.With(middlewares.Actor).Patch("/{orderID}/storage", specimenController.UpdateStorage)
}

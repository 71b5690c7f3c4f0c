package routers

import (
	"labcore-service/internal/app/delivery/http/middlewares"
	"labcore-service/internal/app/services/core/results"

	"github.com/go-chi/chi/v5"
)

func attachResultRoutes(router chi.Router, middlewares *middlewares.Middlewares, resultController *results.ResultController) {
	router.With(middlewares.Actor).Post("/", resultController.CreateResult)
	router.Get("/{resultID}", resultController.GetResultByID)
	router.With(middlewares.Actor).Post("/{resultID}/review", resultController.ReviewResult)
	router.With(middlewares.Actor).Post("/{resultID}/approve", resultController.ApproveResult)
	router.With(middlewares.Actor).Post("/{resultID}/finalize", resultController.FinalizeResult)
	router.With(middlewares.Actor).Post("/{resultID}/amend", resultController.AmendResult)
}

package results

import (
	"context"
	"labcore-service/internal/app/config"
	"labcore-service/internal/app/contracts"
	"labcore-service/internal/pkg/constvars"
	"labcore-service/internal/pkg/dto/requests"
	"labcore-service/internal/pkg/exceptions"
	"labcore-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type ResultController struct {
	Log            *zap.Logger
	ResultUsecase  contracts.ResultUsecase
	InternalConfig *config.InternalConfig
}

func NewResultController(logger *zap.Logger, resultUsecase contracts.ResultUsecase, internalConfig *config.InternalConfig) *ResultController {
	return &ResultController{
		Log:            logger,
		ResultUsecase:  resultUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *ResultController) CreateResult(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CreateResult)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	actorID := utils.ActorFromContext(r.Context())

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.ResultUsecase.CreateResult(ctx, request, actorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("result created",
		zap.String(constvars.LoggingResultNumberKey, result.ResultNumber),
		zap.String(constvars.LoggingOrderIDKey, result.OrderID),
		zap.String(constvars.LoggingTestIDKey, result.TestID),
		zap.String(constvars.LoggingActorIDKey, actorID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateResultSuccessMessage, result)
}

func (ctrl *ResultController) GetResultByID(w http.ResponseWriter, r *http.Request) {
	resultID := chi.URLParam(r, "resultID")

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.ResultUsecase.GetResultByID(ctx, resultID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetResultSuccessMessage, result)
}

func (ctrl *ResultController) ReviewResult(w http.ResponseWriter, r *http.Request) {
	resultID := chi.URLParam(r, "resultID")

	request := new(requests.ReviewResult)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	actorID := utils.ActorFromContext(r.Context())

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.ResultUsecase.ReviewResult(ctx, resultID, request, actorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReviewResultSuccessMessage, result)
}

func (ctrl *ResultController) ApproveResult(w http.ResponseWriter, r *http.Request) {
	resultID := chi.URLParam(r, "resultID")
	actorID := utils.ActorFromContext(r.Context())

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.ResultUsecase.ApproveResult(ctx, resultID, actorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ApproveResultSuccessMessage, result)
}

func (ctrl *ResultController) FinalizeResult(w http.ResponseWriter, r *http.Request) {
	resultID := chi.URLParam(r, "resultID")
	actorID := utils.ActorFromContext(r.Context())

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.ResultUsecase.FinalizeResult(ctx, resultID, actorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("result finalized",
		zap.String(constvars.LoggingResultNumberKey, result.ResultNumber),
		zap.String(constvars.LoggingActorIDKey, actorID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FinalizeResultSuccessMessage, result)
}

func (ctrl *ResultController) AmendResult(w http.ResponseWriter, r *http.Request) {
	resultID := chi.URLParam(r, "resultID")

	request := new(requests.AmendResult)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	actorID := utils.ActorFromContext(r.Context())

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	result, err := ctrl.ResultUsecase.AmendResult(ctx, resultID, request, actorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("result amended",
		zap.String(constvars.LoggingResultNumberKey, result.ResultNumber),
		zap.String(constvars.LoggingActorIDKey, actorID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AmendResultSuccessMessage, result)
}

func (ctrl *ResultController) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds)*time.Second)
}

package specimens

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

type SpecimenController struct {
	Log             *zap.Logger
	SpecimenUsecase contracts.SpecimenUsecase
	InternalConfig  *config.InternalConfig
}

func NewSpecimenController(logger *zap.Logger, specimenUsecase contracts.SpecimenUsecase, internalConfig *config.InternalConfig) *SpecimenController {
	return &SpecimenController{
		Log:             logger,
		SpecimenUsecase: specimenUsecase,
		InternalConfig:  internalConfig,
	}
}

func (ctrl *SpecimenController) AccessionSpecimen(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	request := new(requests.AccessionSpecimen)
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

	order, err := ctrl.SpecimenUsecase.AccessionSpecimen(ctx, orderID, request, actorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("specimen accessioned",
		zap.String(constvars.LoggingOrderIDKey, orderID),
		zap.String(constvars.LoggingAccessionNumberKey, order.AccessionNumber),
		zap.String(constvars.LoggingActorIDKey, actorID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AccessionSuccessMessage, order)
}

func (ctrl *SpecimenController) RejectSpecimen(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	request := new(requests.RejectSpecimen)
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

	order, err := ctrl.SpecimenUsecase.RejectSpecimen(ctx, orderID, request, actorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("specimen rejected",
		zap.String(constvars.LoggingOrderIDKey, orderID),
		zap.String(constvars.LoggingActorIDKey, actorID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RejectSpecimenSuccessMessage, order)
}

func (ctrl *SpecimenController) HoldSpecimen(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	request := new(requests.HoldSpecimen)
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

	order, err := ctrl.SpecimenUsecase.HoldSpecimen(ctx, orderID, request, actorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HoldSpecimenSuccessMessage, order)
}

func (ctrl *SpecimenController) AppendCustodyEntry(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	request := new(requests.CustodyEntry)
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

	specimen, err := ctrl.SpecimenUsecase.AppendCustodyEntry(ctx, orderID, request, actorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.AppendCustodySuccessMessage, specimen)
}

func (ctrl *SpecimenController) CreateAliquot(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	request := new(requests.CreateAliquot)
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

	specimen, err := ctrl.SpecimenUsecase.CreateAliquot(ctx, orderID, request, actorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateAliquotSuccessMessage, specimen)
}

func (ctrl *SpecimenController) UpdateStorage(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	request := new(requests.UpdateStorage)
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

	specimen, err := ctrl.SpecimenUsecase.UpdateStorage(ctx, orderID, request, actorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateStorageSuccessMessage, specimen)
}

func (ctrl *SpecimenController) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds)*time.Second)
}

package orders

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

type OrderController struct {
	Log            *zap.Logger
	OrderUsecase   contracts.OrderUsecase
	InternalConfig *config.InternalConfig
}

func NewOrderController(logger *zap.Logger, orderUsecase contracts.OrderUsecase, internalConfig *config.InternalConfig) *OrderController {
	return &OrderController{
		Log:            logger,
		OrderUsecase:   orderUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CreateOrder)
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

	order, err := ctrl.OrderUsecase.CreateOrder(ctx, request, actorID)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("order created",
		zap.String(constvars.LoggingOrderNumberKey, order.OrderNumber),
		zap.String(constvars.LoggingActorIDKey, actorID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateOrderSuccessMessage, order)
}

func (ctrl *OrderController) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	ctx, cancel := ctrl.requestContext()
	defer cancel()

	order, err := ctrl.OrderUsecase.GetOrderByID(ctx, orderID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetOrderSuccessMessage, order)
}

func (ctrl *OrderController) UpdateLineItemStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	testID := chi.URLParam(r, "testID")

	request := new(requests.UpdateLineItemStatus)
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

	order, err := ctrl.OrderUsecase.UpdateLineItemStatus(ctx, orderID, testID, request, actorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateLineItemSuccessMessage, order)
}

func (ctrl *OrderController) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds)*time.Second)
}

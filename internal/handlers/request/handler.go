package request

import (
	"net/http"
	"shareit/infras/otel"
	"shareit/internal/domains/request/model/dto"
	"shareit/internal/domains/request/service"
	"shareit/shared"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/logger"
	"shareit/shared/validator"
	"shareit/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.ItemRequest
	otel    otel.Otel
}

func New(service service.ItemRequest, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/requests", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRequest)
		routerGroup.Get("/", handler.GetOwnRequests)
		routerGroup.Get("/all", handler.GetOtherRequests)
		routerGroup.Get("/{id}", handler.GetRequest)
	})
}

// CreateRequest asks other users for an item.
// @Summary Create an item request
// @Tags Requests
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Requester id"
// @Param request body dto.CreateItemRequestRequest true "Request"
// @Success 201 {object} dto.ItemRequestResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /requests [post]
func (handler *Handler) CreateRequest(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRequest")
	defer scope.End()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(int64)
	req := dto.CreateItemRequestRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req, userID)
	if err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Warn().Err(err).Msg("failed to create item request")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetOwnRequests lists the caller's requests, newest first.
// @Summary List own item requests
// @Tags Requests
// @Produce json
// @Param X-Sharer-User-Id header int true "Requester id"
// @Success 200 {array} dto.ItemRequestResponse
// @Failure 404 {object} response.Error
// @Router /requests [get]
func (handler *Handler) GetOwnRequests(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOwnRequests")
	defer scope.End()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(int64)

	res, err := handler.service.GetByRequester(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetOtherRequests pages through requests made by other users.
// @Summary List other users' item requests
// @Tags Requests
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param from query int false "Offset"
// @Param size query int false "Page size"
// @Success 200 {array} dto.ItemRequestResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /requests/all [get]
func (handler *Handler) GetOtherRequests(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOtherRequests")
	defer scope.End()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(int64)

	params := gDto.QueryParams{}
	if err := params.FromRequest(request); err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.GetAll(ctx, userID, params)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetRequest returns one request with the items offered for it.
// @Summary Get an item request
// @Tags Requests
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param id path int true "Request id"
// @Success 200 {object} dto.ItemRequestResponse
// @Failure 404 {object} response.Error
// @Router /requests/{id} [get]
func (handler *Handler) GetRequest(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRequest")
	defer scope.End()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(int64)

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID), constant.RequestParamID)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Get(ctx, userID, id)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

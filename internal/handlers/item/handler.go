package item

import (
	"net/http"
	"shareit/infras/otel"
	commentDto "shareit/internal/domains/comment/model/dto"
	"shareit/internal/domains/item/model/dto"
	"shareit/internal/domains/item/service"
	"shareit/shared"
	"shareit/shared/constant"
	"shareit/shared/logger"
	"shareit/shared/validator"
	"shareit/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Item
	otel    otel.Otel
}

func New(service service.Item, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/items", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateItem)
		routerGroup.Get("/", handler.GetOwnerItems)
		routerGroup.Get("/search", handler.SearchItems)
		routerGroup.Get("/{id}", handler.GetItem)
		routerGroup.Patch("/{id}", handler.UpdateItem)
		routerGroup.Delete("/{id}", handler.DeleteItem)
		routerGroup.Post("/{id}/comment", handler.AddComment)
	})
}

// CreateItem lists a new item owned by the caller.
// @Summary Create an item
// @Tags Items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Owner id"
// @Param request body dto.CreateItemRequest true "Item"
// @Success 200 {object} dto.ItemResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /items [post]
func (handler *Handler) CreateItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateItem")
	defer scope.End()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(int64)
	req := dto.CreateItemRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req, userID)
	if err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Warn().Err(err).Msg("failed to create item")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetOwnerItems lists the caller's items with bookings and comments.
// @Summary List own items
// @Tags Items
// @Produce json
// @Param X-Sharer-User-Id header int true "Owner id"
// @Success 200 {array} dto.ItemDetailResponse
// @Failure 404 {object} response.Error
// @Router /items [get]
func (handler *Handler) GetOwnerItems(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOwnerItems")
	defer scope.End()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(int64)

	res, err := handler.service.GetByOwner(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// SearchItems finds available items by name or description.
// @Summary Search items
// @Tags Items
// @Produce json
// @Param text query string false "Text to look for"
// @Success 200 {array} dto.ItemResponse
// @Router /items/search [get]
func (handler *Handler) SearchItems(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchItems")
	defer scope.End()

	res, err := handler.service.Search(ctx, request.URL.Query().Get(constant.RequestParamText))
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetItem returns an item. Its owner also sees the last and next bookings.
// @Summary Get an item
// @Tags Items
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param id path int true "Item id"
// @Success 200 {object} dto.ItemDetailResponse
// @Failure 404 {object} response.Error
// @Router /items/{id} [get]
func (handler *Handler) GetItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetItem")
	defer scope.End()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(int64)

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID), constant.RequestParamID)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Get(ctx, id, userID)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateItem applies a partial update by the owner.
// @Summary Update an item
// @Tags Items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Owner id"
// @Param id path int true "Item id"
// @Param request body dto.UpdateItemRequest true "Fields to change"
// @Success 200 {object} dto.ItemResponse
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /items/{id} [patch]
func (handler *Handler) UpdateItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateItem")
	defer scope.End()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(int64)

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID), constant.RequestParamID)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.UpdateItemRequest{}

	if err = validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Update(ctx, req, id, userID)
	if err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Warn().Err(err).Int64("id", id).Msg("failed to update item")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// DeleteItem removes an item owned by the caller.
// @Summary Delete an item
// @Tags Items
// @Produce json
// @Param X-Sharer-User-Id header int true "Owner id"
// @Param id path int true "Item id"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /items/{id} [delete]
func (handler *Handler) DeleteItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteItem")
	defer scope.End()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(int64)

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID), constant.RequestParamID)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	if err = handler.service.Delete(ctx, id, userID); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Item deleted successfully")
}

// AddComment leaves feedback on an item the caller has rented.
// @Summary Comment on an item
// @Tags Items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Author id"
// @Param id path int true "Item id"
// @Param request body commentDto.CreateCommentRequest true "Comment"
// @Success 200 {object} commentDto.CommentResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /items/{id}/comment [post]
func (handler *Handler) AddComment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddComment")
	defer scope.End()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(int64)

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID), constant.RequestParamID)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := commentDto.CreateCommentRequest{}

	if err = validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.AddComment(ctx, req, id, userID)
	if err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Warn().Err(err).Int64("item_id", id).Msg("failed to add comment")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

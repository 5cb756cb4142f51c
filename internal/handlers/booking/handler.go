package booking

import (
	"net/http"
	"shareit/infras/otel"
	"shareit/internal/domains/booking/model/dto"
	"shareit/internal/domains/booking/service"
	"shareit/shared"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/logger"
	"shareit/shared/validator"
	"shareit/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookerBookings)
		routerGroup.Get("/owner", handler.GetOwnerBookings)
		routerGroup.Get("/{id}", handler.GetBooking)
		routerGroup.Patch("/{id}", handler.ApproveBooking)
		routerGroup.Patch("/{id}/cancel", handler.CancelBooking)
	})
}

// CreateBooking asks to rent an item for a period.
// @Summary Create a booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Booker id"
// @Param request body dto.CreateBookingRequest true "Booking"
// @Success 201 {object} dto.BookingResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /bookings [post]
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(int64)
	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req, userID)
	if err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Warn().Err(err).Int64("item_id", req.ItemID).Msg("failed to create booking")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// ApproveBooking lets the item owner approve or reject a waiting booking.
// @Summary Approve or reject a booking
// @Tags Bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Owner id"
// @Param id path int true "Booking id"
// @Param approved query bool true "Decision"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /bookings/{id} [patch]
func (handler *Handler) ApproveBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApproveBooking")
	defer scope.End()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(int64)

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID), constant.RequestParamID)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	approved, err := dto.ParseApprovedParam(request.URL.Query().Get(constant.RequestParamApproved))
	if err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Approve(ctx, id, userID, approved)
	if err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Warn().Err(err).Int64("id", id).Msg("failed to approve booking")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// CancelBooking lets the booker withdraw a booking.
// @Summary Cancel a booking
// @Tags Bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Booker id"
// @Param id path int true "Booking id"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /bookings/{id}/cancel [patch]
func (handler *Handler) CancelBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(int64)

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID), constant.RequestParamID)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Cancel(ctx, id, userID)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetBooking returns a booking to its booker or to the item owner.
// @Summary Get a booking
// @Tags Bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Caller id"
// @Param id path int true "Booking id"
// @Success 200 {object} dto.BookingResponse
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /bookings/{id} [get]
func (handler *Handler) GetBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBooking")
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

// GetBookerBookings lists the caller's bookings in a state.
// @Summary List own bookings
// @Tags Bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Booker id"
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED"
// @Param from query int false "Offset"
// @Param size query int false "Page size"
// @Success 200 {array} dto.BookingResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /bookings [get]
func (handler *Handler) GetBookerBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookerBookings")
	defer scope.End()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(int64)

	state, err := dto.ParseStateParam(request.URL.Query().Get(constant.RequestParamState))
	if err != nil {
		response.WithError(writer, err)

		return
	}

	params := gDto.QueryParams{}
	if err = params.FromRequest(request); err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.GetByBooker(ctx, userID, state, params)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetOwnerBookings lists bookings of the caller's items in a state.
// @Summary List bookings of own items
// @Tags Bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Owner id"
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED"
// @Param from query int false "Offset"
// @Param size query int false "Page size"
// @Success 200 {array} dto.BookingResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /bookings/owner [get]
func (handler *Handler) GetOwnerBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOwnerBookings")
	defer scope.End()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(int64)

	state, err := dto.ParseStateParam(request.URL.Query().Get(constant.RequestParamState))
	if err != nil {
		response.WithError(writer, err)

		return
	}

	params := gDto.QueryParams{}
	if err = params.FromRequest(request); err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.GetByOwner(ctx, userID, state, params)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

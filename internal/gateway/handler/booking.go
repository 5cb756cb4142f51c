package handler

import (
	"net/http"
	"shareit/internal/domains/booking/model/dto"
	"shareit/shared"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/timezone"
	"shareit/transport/http/response"

	"github.com/go-chi/chi/v5"
)

func (handler Handler) bookingRoutes(router chi.Router) {
	router.Post("/", handler.createBooking)
	router.Get("/", handler.listBookings)
	router.Get("/owner", handler.listBookings)
	router.Get("/{id}", handler.passWithID)
	router.Patch("/{id}", handler.approveBooking)
	router.Patch("/{id}/cancel", handler.passWithID)
}

func (handler Handler) createBooking(writer http.ResponseWriter, request *http.Request) {
	req := dto.CreateBookingRequest{}

	body, err := decode(request, &req)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	start, end, err := req.Period()
	if err != nil {
		response.WithError(writer, err)

		return
	}

	if err = dto.CheckPeriod(start, end, timezone.Now()); err != nil {
		response.WithError(writer, err)

		return
	}

	handler.forward(writer, request, body)
}

func (handler Handler) approveBooking(writer http.ResponseWriter, request *http.Request) {
	if _, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID), constant.RequestParamID); err != nil {
		response.WithError(writer, err)

		return
	}

	if _, err := dto.ParseApprovedParam(request.URL.Query().Get(constant.RequestParamApproved)); err != nil {
		response.WithError(writer, err)

		return
	}

	handler.forward(writer, request, nil)
}

// listBookings serves both the booker and the owner listings.
func (handler Handler) listBookings(writer http.ResponseWriter, request *http.Request) {
	if _, err := dto.ParseStateParam(request.URL.Query().Get(constant.RequestParamState)); err != nil {
		response.WithError(writer, err)

		return
	}

	if err := handler.checkPage(request); err != nil {
		response.WithError(writer, err)

		return
	}

	handler.forward(writer, request, nil)
}

func (handler Handler) checkPage(request *http.Request) error {
	params := gDto.QueryParams{}

	return params.FromRequest(request) //nolint:wrapcheck
}

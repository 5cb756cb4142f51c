package handler

import (
	"net/http"
	"shareit/internal/domains/request/model/dto"
	"shareit/transport/http/response"

	"github.com/go-chi/chi/v5"
)

func (handler Handler) requestRoutes(router chi.Router) {
	router.Post("/", handler.createRequest)
	router.Get("/", handler.pass)
	router.Get("/all", handler.listOtherRequests)
	router.Get("/{id}", handler.passWithID)
}

func (handler Handler) createRequest(writer http.ResponseWriter, request *http.Request) {
	body, err := decode(request, &dto.CreateItemRequestRequest{})
	if err != nil {
		response.WithError(writer, err)

		return
	}

	handler.forward(writer, request, body)
}

func (handler Handler) listOtherRequests(writer http.ResponseWriter, request *http.Request) {
	if err := handler.checkPage(request); err != nil {
		response.WithError(writer, err)

		return
	}

	handler.forward(writer, request, nil)
}

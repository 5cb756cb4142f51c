package handler

import (
	"net/http"
	"shareit/internal/domains/user/model/dto"
	"shareit/shared"
	"shareit/shared/constant"
	"shareit/transport/http/response"

	"github.com/go-chi/chi/v5"
)

func (handler Handler) userRoutes(router chi.Router) {
	router.Post("/", handler.createUser)
	router.Get("/", handler.pass)
	router.Get("/{id}", handler.passWithID)
	router.Patch("/{id}", handler.updateUser)
	router.Delete("/{id}", handler.passWithID)
}

func (handler Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	body, err := decode(request, &dto.CreateUserRequest{})
	if err != nil {
		response.WithError(writer, err)

		return
	}

	handler.forward(writer, request, body)
}

func (handler Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	if _, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID), constant.RequestParamID); err != nil {
		response.WithError(writer, err)

		return
	}

	body, err := decode(request, &dto.UpdateUserRequest{})
	if err != nil {
		response.WithError(writer, err)

		return
	}

	handler.forward(writer, request, body)
}

// pass forwards a request that carries nothing to check.
func (handler Handler) pass(writer http.ResponseWriter, request *http.Request) {
	handler.forward(writer, request, nil)
}

// passWithID forwards a bodiless request once its path id is valid.
func (handler Handler) passWithID(writer http.ResponseWriter, request *http.Request) {
	if _, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID), constant.RequestParamID); err != nil {
		response.WithError(writer, err)

		return
	}

	handler.forward(writer, request, nil)
}

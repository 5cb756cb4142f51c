package handler

import (
	"net/http"
	commentDto "shareit/internal/domains/comment/model/dto"
	"shareit/internal/domains/item/model/dto"
	"shareit/shared"
	"shareit/shared/constant"
	"shareit/transport/http/response"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (handler Handler) itemRoutes(router chi.Router) {
	router.Post("/", handler.createItem)
	router.Get("/", handler.pass)
	router.Get("/search", handler.searchItems)
	router.Get("/{id}", handler.passWithID)
	router.Patch("/{id}", handler.updateItem)
	router.Delete("/{id}", handler.passWithID)
	router.Post("/{id}/comment", handler.addComment)
}

func (handler Handler) createItem(writer http.ResponseWriter, request *http.Request) {
	body, err := decode(request, &dto.CreateItemRequest{})
	if err != nil {
		response.WithError(writer, err)

		return
	}

	handler.forward(writer, request, body)
}

func (handler Handler) updateItem(writer http.ResponseWriter, request *http.Request) {
	if _, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID), constant.RequestParamID); err != nil {
		response.WithError(writer, err)

		return
	}

	body, err := decode(request, &dto.UpdateItemRequest{})
	if err != nil {
		response.WithError(writer, err)

		return
	}

	handler.forward(writer, request, body)
}

// searchItems answers a blank search locally.
func (handler Handler) searchItems(writer http.ResponseWriter, request *http.Request) {
	if strings.TrimSpace(request.URL.Query().Get(constant.RequestParamText)) == "" {
		response.WithJSON(writer, http.StatusOK, []dto.ItemResponse{})

		return
	}

	handler.forward(writer, request, nil)
}

func (handler Handler) addComment(writer http.ResponseWriter, request *http.Request) {
	if _, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID), constant.RequestParamID); err != nil {
		response.WithError(writer, err)

		return
	}

	body, err := decode(request, &commentDto.CreateCommentRequest{})
	if err != nil {
		response.WithError(writer, err)

		return
	}

	handler.forward(writer, request, body)
}

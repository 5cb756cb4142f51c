package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"shareit/infras/otel"
	"shareit/internal/gateway/client"
	"shareit/shared/constant"
	"shareit/shared/failure"
	"shareit/shared/validator"
	"shareit/transport/http/response"

	"github.com/go-chi/chi/v5"
)

// Handler checks requests at the edge and relays them to the ShareIt server.
type Handler struct {
	server client.Server
	otel   otel.Otel
}

func New(server client.Server, otel otel.Otel) Handler {
	return Handler{
		server: server,
		otel:   otel,
	}
}

func (handler Handler) SetupRoutes(router chi.Router) {
	router.Route("/users", handler.userRoutes)
	router.Route("/items", handler.itemRoutes)
	router.Route("/bookings", handler.bookingRoutes)
	router.Route("/requests", handler.requestRoutes)
}

// forward relays the request with the given body and writes back whatever the server answered.
func (handler Handler) forward(writer http.ResponseWriter, request *http.Request, body []byte) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".forward")
	defer scope.End()

	requestID, _ := ctx.Value(constant.ContextKeyRequestID).(string)

	res, err := handler.server.Forward(ctx, client.Request{
		Method:    request.Method,
		Path:      request.URL.Path,
		RawQuery:  request.URL.RawQuery,
		Body:      body,
		UserID:    request.Header.Get(constant.RequestHeaderSharerUserID),
		RequestID: requestID,
	})
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithRaw(writer, res.Status, res.ContentType, res.Body)
}

// decode validates the JSON body into data and returns the raw bytes for forwarding.
func decode[T any](request *http.Request, data *T) ([]byte, error) {
	raw, err := io.ReadAll(request.Body)
	if err != nil {
		return nil, failure.BadRequest(fmt.Errorf("failed to read request body: %w", err)) //nolint:wrapcheck
	}

	if err = validator.Validate(bytes.NewReader(raw), data); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return raw, nil
}

package response

import (
	"encoding/json"
	"net/http"
	"shareit/shared/constant"
	"shareit/shared/failure"
	"shareit/shared/logger"
)

// Error is the body of every non-2xx answer.
type Error struct {
	Error string `json:"error"`
}

type Message struct {
	Message string `json:"message"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: message})
}

func WithJSON(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, payload)
}

// WithRaw writes an already encoded body, as relayed from an upstream server.
func WithRaw(writer http.ResponseWriter, code int, contentType string, body []byte) {
	if contentType != "" {
		writer.Header().Set(constant.RequestHeaderContentType, contentType)
	}

	writer.WriteHeader(code)
	send(writer, body)
}

// WithError answers with the status carried by err. Anything that is not a
// failure.Failure is logged with its stack and hidden behind a generic message.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	if code != http.StatusInternalServerError {
		write(writer, code, Error{Error: err.Error()})

		return
	}

	logger.ErrorWithStack(err)
	write(writer, code, Error{Error: constant.ResponseErrorInternal})
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	write(writer, http.StatusTooManyRequests, Error{Error: constant.ResponseErrorRequestLimitExceeded})
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	write(writer, http.StatusServiceUnavailable, Error{Error: constant.ResponseErrorPrepareShutdown})
}

func WithUnhealthy(writer http.ResponseWriter) {
	write(writer, http.StatusServiceUnavailable, Error{Error: constant.ResponseErrorUnhealthy})
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	send(writer, body)
}

func send(writer http.ResponseWriter, body []byte) {
	if _, err := writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}

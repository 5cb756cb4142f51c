package failure

import (
	"errors"
	"net/http"
	"shareit/shared/constant"

	"github.com/lib/pq"
)

// Failure is an error that knows which HTTP status it should be answered with.
// Message is shown to the client as is.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var (
	InvalidFromParam  = &Failure{Code: http.StatusBadRequest, Message: "from must be greater than or equal to 0"}
	InvalidSizeParam  = &Failure{Code: http.StatusBadRequest, Message: "size must be greater than 0"}
	MissingUserHeader = &Failure{Code: http.StatusBadRequest, Message: "header " + constant.RequestHeaderSharerUserID + " is required"}
	InvalidUserHeader = &Failure{Code: http.StatusBadRequest, Message: "header " + constant.RequestHeaderSharerUserID + " must be a number"}
)

func (e *Failure) Error() string {
	return e.Message
}

func withCode(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

// BadRequest turns err into a 400. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return withCode(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return withCode(http.StatusBadRequest, msg)
}

// NotFound reports a missing user, item, booking or request.
func NotFound(msg string) error {
	return withCode(http.StatusNotFound, msg)
}

func Conflict(msg string) error {
	return withCode(http.StatusConflict, msg)
}

// Forbidden is used when the caller exists but may not act on the entity.
func Forbidden(msg string) error {
	return withCode(http.StatusForbidden, msg)
}

// FromUniqueViolation maps a postgres unique violation to a Conflict carrying msg.
// Any other error is returned unchanged.
func FromUniqueViolation(err error, msg string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
		return Conflict(msg)
	}

	return err
}

// GetCode returns the status carried by err, or 500 when err is not a Failure.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

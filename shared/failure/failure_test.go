package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/shared/failure"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("end must be after start")), wantCode: http.StatusBadRequest, wantMsg: "end must be after start"},
		{name: "bad request from string", err: failure.BadRequestFromString("item is not available"), wantCode: http.StatusBadRequest, wantMsg: "item is not available"},
		{name: "not found", err: failure.NotFound("booking not found"), wantCode: http.StatusNotFound, wantMsg: "booking not found"},
		{name: "conflict", err: failure.Conflict("email already exists"), wantCode: http.StatusConflict, wantMsg: "email already exists"},
		{name: "forbidden", err: failure.Forbidden("only the owner can edit the item"), wantCode: http.StatusForbidden, wantMsg: "only the owner can edit the item"},
		{name: "missing header", err: failure.MissingUserHeader, wantCode: http.StatusBadRequest, wantMsg: "header X-Sharer-User-Id is required"},
		{name: "invalid header", err: failure.InvalidUserHeader, wantCode: http.StatusBadRequest, wantMsg: "header X-Sharer-User-Id must be a number"},
		{name: "negative from", err: failure.InvalidFromParam, wantCode: http.StatusBadRequest, wantMsg: "from must be greater than or equal to 0"},
		{name: "non positive size", err: failure.InvalidSizeParam, wantCode: http.StatusBadRequest, wantMsg: "size must be greater than 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fail *failure.Failure

			require.ErrorAs(t, tt.err, &fail)
			assert.Equal(t, tt.wantCode, fail.Code)
			assert.EqualError(t, tt.err, tt.wantMsg)
		})
	}
}

func TestBadRequest_Nil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}

func TestFromUniqueViolation(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		wantCode int
		wantMsg  string
	}{
		{name: "unique violation", input: &pq.Error{Code: "23505", Message: "duplicate key value"}, wantCode: http.StatusConflict, wantMsg: "email already exists"},
		{name: "wrapped unique violation", input: fmt.Errorf("failed to insert user: %w", &pq.Error{Code: "23505"}), wantCode: http.StatusConflict, wantMsg: "email already exists"},
		{name: "foreign key violation untouched", input: &pq.Error{Code: "23503", Message: "fk"}, wantCode: http.StatusInternalServerError, wantMsg: "pq: fk"},
		{name: "plain error untouched", input: errors.New("boom"), wantCode: http.StatusInternalServerError, wantMsg: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := failure.FromUniqueViolation(tt.input, "email already exists")

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, failure.GetCode(failure.NotFound("user not found")))
	assert.Equal(t, http.StatusForbidden, failure.GetCode(fmt.Errorf("approve: %w", failure.Forbidden("not the owner"))))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("connection reset")))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(nil))
}

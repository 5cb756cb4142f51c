package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/shared/failure"
	"shareit/shared/validator"
)

type newUser struct {
	Name  string `json:"name"  validate:"required,notblank,max=10"`
	Email string `json:"email" validate:"required,notblank,emailaddr"`
}

type patchItem struct {
	Name      *string `json:"name"      validate:"omitempty,notblank"`
	RequestID *int64  `json:"requestId" validate:"omitempty,gt=0"`
	Available *bool   `json:"available" validate:"required"`
	Internal  string  `json:"-"`
}

func TestIsEmail(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{value: "ann@mail.com", want: true},
		{value: "a@b.c", want: true},
		{value: "first.last@mail.org", want: true},
		{value: "ann.mail.com", want: false},
		{value: "ann@mailcom", want: false},
		{value: "ann.com@mail", want: false},
		{value: "   ", want: false},
		{value: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, validator.IsEmail(tt.value))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid", body: `{"name":"Ann","email":"ann@mail.com"}`},
		{name: "missing name", body: `{"email":"ann@mail.com"}`, wantErr: "name is required"},
		{name: "blank name", body: `{"name":"   ","email":"ann@mail.com"}`, wantErr: "name must not be blank"},
		{name: "name too long", body: `{"name":"Annabel Lee!","email":"ann@mail.com"}`, wantErr: "name must be at most 10 characters"},
		{name: "bad email", body: `{"name":"Ann","email":"ann.mail.com"}`, wantErr: "email must be a valid email address"},
		{name: "malformed json", body: `{"name":`, wantErr: "failed to decode request body"},
		{name: "wrong type", body: `{"name":7,"email":"ann@mail.com"}`, wantErr: "failed to decode request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got newUser

			err := validator.Validate(strings.NewReader(tt.body), &got)

			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, newUser{Name: "Ann", Email: "ann@mail.com"}, got)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateStruct_OptionalFields(t *testing.T) {
	name := "Drill"
	blank := " "
	zero := int64(0)
	yes := true

	tests := []struct {
		name    string
		data    patchItem
		wantErr string
	}{
		{name: "only required field", data: patchItem{Available: &yes}},
		{name: "optional name set", data: patchItem{Name: &name, Available: &yes}},
		{name: "blank optional name", data: patchItem{Name: &blank, Available: &yes}, wantErr: "name must not be blank"},
		{name: "zero request id", data: patchItem{RequestID: &zero, Available: &yes}, wantErr: "requestId must be greater than 0"},
		{name: "missing flag", data: patchItem{}, wantErr: "available is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

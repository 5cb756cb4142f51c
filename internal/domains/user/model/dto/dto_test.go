package dto_test

import (
	"testing"

	"shareit/internal/domains/user/model"
	"shareit/internal/domains/user/model/dto"
	"shareit/shared/validator"

	"github.com/stretchr/testify/assert"
)

func TestCreateUserRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreateUserRequest
		wantErr bool
	}{
		{name: "valid", req: dto.CreateUserRequest{Name: "Ann", Email: "ann@mail.com"}},
		{name: "blank name", req: dto.CreateUserRequest{Name: " ", Email: "ann@mail.com"}, wantErr: true},
		{name: "missing email", req: dto.CreateUserRequest{Name: "Ann"}, wantErr: true},
		{name: "malformed email", req: dto.CreateUserRequest{Name: "Ann", Email: "ann.mail.com"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateUserRequest_Validation(t *testing.T) {
	bad := "nope"
	good := "ann@mail.com"

	assert.Error(t, validator.ValidateStruct(&dto.UpdateUserRequest{Email: &bad}))
	assert.NoError(t, validator.ValidateStruct(&dto.UpdateUserRequest{Email: &good}))
	assert.NoError(t, validator.ValidateStruct(&dto.UpdateUserRequest{}))
	assert.True(t, (&dto.UpdateUserRequest{}).IsEmpty())
}

func TestCreateUserRequest_ToModel(t *testing.T) {
	req := dto.CreateUserRequest{Name: " Ann ", Email: " ann@mail.com "}

	user := req.ToModel()

	assert.Equal(t, "Ann", user.Name)
	assert.Equal(t, "ann@mail.com", user.Email)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestUserResponse_FromModels(t *testing.T) {
	res := dto.FromModels([]model.User{{ID: 1, Name: "Ann", Email: "ann@mail.com"}})

	assert.Equal(t, []dto.UserResponse{{ID: 1, Name: "Ann", Email: "ann@mail.com"}}, res)
}

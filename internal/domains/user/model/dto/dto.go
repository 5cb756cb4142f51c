package dto

import (
	"shareit/internal/domains/user/model"
	gModel "shareit/shared/model"
	"shareit/shared/timezone"
	"strings"
)

type CreateUserRequest struct {
	Name  string `json:"name"  validate:"required,notblank,max=255"`
	Email string `json:"email" validate:"required,notblank,emailaddr,max=512"`
}

func (r *CreateUserRequest) ToModel() model.User {
	now := timezone.Now()

	return model.User{
		Name:  strings.TrimSpace(r.Name),
		Email: strings.TrimSpace(r.Email),
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}
}

// UpdateUserRequest is a partial update: nil fields are left untouched.
type UpdateUserRequest struct {
	Name  *string `db:"name"  json:"name,omitempty"  validate:"omitempty,notblank,max=255"`
	Email *string `db:"email" json:"email,omitempty" validate:"omitempty,notblank,emailaddr,max=512"`
}

func (r *UpdateUserRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil
}

type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
}

func FromModels(models []model.User) []UserResponse {
	res := make([]UserResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

package dto

import (
	bookingDto "shareit/internal/domains/booking/model/dto"
	commentDto "shareit/internal/domains/comment/model/dto"
	"shareit/internal/domains/item/model"
	gModel "shareit/shared/model"
	"shareit/shared/timezone"
	"strings"
)

type CreateItemRequest struct {
	Name        string `json:"name"                validate:"required,notblank,max=255"`
	Description string `json:"description"         validate:"required,notblank,max=1000"`
	Available   *bool  `json:"available"           validate:"required"`
	RequestID   *int64 `json:"requestId,omitempty" validate:"omitempty,gt=0"`
}

func (r *CreateItemRequest) ToModel(ownerID int64) model.Item {
	now := timezone.Now()

	return model.Item{
		Name:        strings.TrimSpace(r.Name),
		Description: strings.TrimSpace(r.Description),
		Available:   r.Available != nil && *r.Available,
		OwnerID:     ownerID,
		RequestID:   r.RequestID,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}
}

// UpdateItemRequest is a partial update: nil fields are left untouched.
type UpdateItemRequest struct {
	Name        *string `db:"name"        json:"name,omitempty"        validate:"omitempty,notblank,max=255"`
	Description *string `db:"description" json:"description,omitempty" validate:"omitempty,notblank,max=1000"`
	Available   *bool   `db:"available"   json:"available,omitempty"`
}

func (r *UpdateItemRequest) IsEmpty() bool {
	return r.Name == nil && r.Description == nil && r.Available == nil
}

// Apply copies the present fields onto item.
func (r *UpdateItemRequest) Apply(item *model.Item) {
	if r.Name != nil {
		item.Name = strings.TrimSpace(*r.Name)
		r.Name = &item.Name
	}

	if r.Description != nil {
		item.Description = strings.TrimSpace(*r.Description)
		r.Description = &item.Description
	}

	if r.Available != nil {
		item.Available = *r.Available
	}
}

type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

func (r *ItemResponse) FromModel(model model.Item) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Available = model.Available
	r.RequestID = model.RequestID
}

func FromModels(models []model.Item) []ItemResponse {
	res := make([]ItemResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

// ItemDetailResponse is an item with its comments and, for the owner only, the neighbouring bookings.
type ItemDetailResponse struct {
	ItemResponse
	LastBooking *bookingDto.ShortResponse    `json:"lastBooking"`
	NextBooking *bookingDto.ShortResponse    `json:"nextBooking"`
	Comments    []commentDto.CommentResponse `json:"comments"`
}

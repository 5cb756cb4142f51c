package dto

import (
	itemDto "shareit/internal/domains/item/model/dto"
	"shareit/internal/domains/request/model"
	gModel "shareit/shared/model"
	"shareit/shared/timezone"
	"strings"
)

type CreateItemRequestRequest struct {
	Description string `json:"description" validate:"required,notblank,max=1000"`
}

func (r *CreateItemRequestRequest) ToModel(requesterID int64) model.ItemRequest {
	now := timezone.Now()

	return model.ItemRequest{
		Description: strings.TrimSpace(r.Description),
		RequesterID: requesterID,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}
}

type ItemRequestResponse struct {
	ID          int64                  `json:"id"`
	Description string                 `json:"description"`
	Created     string                 `json:"created"`
	Items       []itemDto.ItemResponse `json:"items"`
}

func (r *ItemRequestResponse) FromModel(model model.ItemRequest, items []itemDto.ItemResponse) {
	r.ID = model.ID
	r.Description = model.Description
	r.Created = timezone.FormatDefault(model.CreatedAt)

	r.Items = items
	if r.Items == nil {
		r.Items = []itemDto.ItemResponse{}
	}
}

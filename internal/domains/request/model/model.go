package model

import "shareit/shared/model"

const (
	TableName  = "item_requests"
	EntityName = "item_request"

	FieldID          = "id"
	FieldDescription = "description"
	FieldRequesterID = "requester_id"
	FieldCreatedAt   = "created_at"
)

type ItemRequest struct {
	ID          int64  `db:"id"`
	Description string `db:"description"`
	RequesterID int64  `db:"requester_id"`
	model.Metadata
}

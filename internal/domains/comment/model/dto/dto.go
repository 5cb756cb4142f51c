package dto

import (
	"shareit/internal/domains/comment/model"
	gModel "shareit/shared/model"
	"shareit/shared/timezone"
	"strings"
)

type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,notblank,max=2000"`
}

func (r *CreateCommentRequest) ToModel(itemID, authorID int64) model.Comment {
	now := timezone.Now()

	return model.Comment{
		Text:     strings.TrimSpace(r.Text),
		ItemID:   itemID,
		AuthorID: authorID,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}
}

type CommentResponse struct {
	ID         int64  `json:"id"`
	Text       string `json:"text"`
	AuthorName string `json:"authorName"`
	Created    string `json:"created"`
}

func (r *CommentResponse) FromModel(model model.Comment) {
	r.ID = model.ID
	r.Text = model.Text
	r.AuthorName = model.AuthorName
	r.Created = timezone.FormatDefault(model.CreatedAt)
}

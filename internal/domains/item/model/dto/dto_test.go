package dto_test

import (
	"testing"

	"shareit/internal/domains/item/model"
	"shareit/internal/domains/item/model/dto"
	"shareit/shared/validator"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}

func TestCreateItemRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreateItemRequest
		wantErr bool
	}{
		{name: "valid", req: dto.CreateItemRequest{Name: "Drill", Description: "Cordless", Available: boolPtr(false)}},
		{name: "missing available", req: dto.CreateItemRequest{Name: "Drill", Description: "Cordless"}, wantErr: true},
		{name: "blank name", req: dto.CreateItemRequest{Name: "  ", Description: "Cordless", Available: boolPtr(true)}, wantErr: true},
		{name: "missing description", req: dto.CreateItemRequest{Name: "Drill", Available: boolPtr(true)}, wantErr: true},
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

func TestCreateItemRequest_ToModel(t *testing.T) {
	requestID := int64(4)
	req := dto.CreateItemRequest{Name: " Drill ", Description: " Cordless ", Available: boolPtr(true), RequestID: &requestID}

	item := req.ToModel(9)

	assert.Equal(t, "Drill", item.Name)
	assert.Equal(t, "Cordless", item.Description)
	assert.True(t, item.Available)
	assert.Equal(t, int64(9), item.OwnerID)
	assert.Equal(t, &requestID, item.RequestID)
}

func TestUpdateItemRequest_Apply(t *testing.T) {
	item := model.Item{ID: 1, Name: "Drill", Description: "Cordless", Available: true}

	req := dto.UpdateItemRequest{Description: strPtr(" Corded "), Available: boolPtr(false)}
	assert.False(t, req.IsEmpty())

	req.Apply(&item)

	assert.Equal(t, "Drill", item.Name)
	assert.Equal(t, "Corded", item.Description)
	assert.False(t, item.Available)
	assert.Equal(t, "Corded", *req.Description)
	assert.True(t, (&dto.UpdateItemRequest{}).IsEmpty())
}

func TestFromModels(t *testing.T) {
	res := dto.FromModels(nil)

	assert.NotNil(t, res)
	assert.Empty(t, res)
}

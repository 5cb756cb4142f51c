package item_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shareit/infras/otel/mocks"
	commentDto "shareit/internal/domains/comment/model/dto"
	"shareit/internal/domains/item/model/dto"
	"shareit/internal/handlers/item"
	"shareit/shared/constant"
	"shareit/shared/failure"
	"shareit/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeItems records what reached the service and answers with canned values.
type fakeItems struct {
	callerID   int64
	itemID     int64
	searchText string
	created    dto.CreateItemRequest
	updated    dto.UpdateItemRequest
	comment    commentDto.CreateCommentRequest
	err        error
}

func (f *fakeItems) Create(_ context.Context, req dto.CreateItemRequest, ownerID int64) (dto.ItemResponse, error) {
	f.created, f.callerID = req, ownerID

	return dto.ItemResponse{ID: 3, Name: req.Name, Description: req.Description, Available: *req.Available}, f.err
}

func (f *fakeItems) Update(_ context.Context, req dto.UpdateItemRequest, id, ownerID int64) (dto.ItemResponse, error) {
	f.updated, f.itemID, f.callerID = req, id, ownerID

	return dto.ItemResponse{ID: id, Name: "Drill", Available: false}, f.err
}

func (f *fakeItems) Get(_ context.Context, id, userID int64) (dto.ItemDetailResponse, error) {
	f.itemID, f.callerID = id, userID

	return dto.ItemDetailResponse{ItemResponse: dto.ItemResponse{ID: id, Name: "Drill"}, Comments: []commentDto.CommentResponse{}}, f.err
}

func (f *fakeItems) GetByOwner(_ context.Context, ownerID int64) ([]dto.ItemDetailResponse, error) {
	f.callerID = ownerID

	return []dto.ItemDetailResponse{}, f.err
}

func (f *fakeItems) Search(_ context.Context, text string) ([]dto.ItemResponse, error) {
	f.searchText = text

	return []dto.ItemResponse{{ID: 3, Name: "Drill", Available: true}}, f.err
}

func (f *fakeItems) Delete(_ context.Context, id, ownerID int64) error {
	f.itemID, f.callerID = id, ownerID

	return f.err
}

func (f *fakeItems) AddComment(_ context.Context, req commentDto.CreateCommentRequest, id, authorID int64) (commentDto.CommentResponse, error) {
	f.comment, f.itemID, f.callerID = req, id, authorID

	return commentDto.CommentResponse{ID: 1, Text: req.Text, AuthorName: "Bob", Created: "2026-10-01T10:00:00"}, f.err
}

func serve(t *testing.T, svc *fakeItems, method, target, body, caller string) *httptest.ResponseRecorder {
	t.Helper()

	router := chi.NewRouter()
	router.Use(middleware.NewIdentityMiddleware(mocks.NewOtel(), nil).Identify)

	handler := item.New(svc, mocks.NewOtel())
	handler.Router(router)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if caller != "" {
		req.Header.Set(constant.RequestHeaderSharerUserID, caller)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_CreateItem(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &fakeItems{}

		rec := serve(t, svc, http.MethodPost, "/items", `{"name":"Drill","description":"Cordless","available":true}`, "4")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(4), svc.callerID)
		assert.Equal(t, "Drill", svc.created.Name)
		assert.JSONEq(t, `{"id":3,"name":"Drill","description":"Cordless","available":true,"requestId":null}`, rec.Body.String())
	})

	t.Run("available is required", func(t *testing.T) {
		rec := serve(t, &fakeItems{}, http.MethodPost, "/items", `{"name":"Drill","description":"Cordless"}`, "4")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"available is required"}`, rec.Body.String())
	})

	t.Run("unknown owner", func(t *testing.T) {
		svc := &fakeItems{err: failure.NotFound("user not found")}

		rec := serve(t, svc, http.MethodPost, "/items", `{"name":"Drill","description":"Cordless","available":true}`, "4")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandler_UpdateItem(t *testing.T) {
	t.Run("partial patch", func(t *testing.T) {
		svc := &fakeItems{}

		rec := serve(t, svc, http.MethodPatch, "/items/9", `{"available":false}`, "4")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(9), svc.itemID)
		require.NotNil(t, svc.updated.Available)
		assert.False(t, *svc.updated.Available)
		assert.Nil(t, svc.updated.Name)
	})

	t.Run("not the owner", func(t *testing.T) {
		svc := &fakeItems{err: failure.Forbidden("only the owner can edit the item")}

		rec := serve(t, svc, http.MethodPatch, "/items/9", `{"name":"Saw"}`, "5")

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		rec := serve(t, &fakeItems{}, http.MethodPatch, "/items/nine", `{"name":"Saw"}`, "4")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_SearchItems(t *testing.T) {
	svc := &fakeItems{}

	rec := serve(t, svc, http.MethodGet, "/items/search?text=dRiLl", "", "1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dRiLl", svc.searchText)
	assert.JSONEq(t, `[{"id":3,"name":"Drill","description":"","available":true,"requestId":null}]`, rec.Body.String())
}

func TestHandler_GetItem(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &fakeItems{}

		rec := serve(t, svc, http.MethodGet, "/items/7", "", "2")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(7), svc.itemID)
		assert.Equal(t, int64(2), svc.callerID)
		assert.Contains(t, rec.Body.String(), `"lastBooking":null`)
		assert.Contains(t, rec.Body.String(), `"comments":[]`)
	})

	t.Run("missing caller", func(t *testing.T) {
		rec := serve(t, &fakeItems{}, http.MethodGet, "/items/7", "", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_GetOwnerItems(t *testing.T) {
	svc := &fakeItems{}

	rec := serve(t, svc, http.MethodGet, "/items", "", "6")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(6), svc.callerID)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandler_DeleteItem(t *testing.T) {
	svc := &fakeItems{}

	rec := serve(t, svc, http.MethodDelete, "/items/7", "", "2")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), svc.itemID)
	assert.JSONEq(t, `{"message":"Item deleted successfully"}`, rec.Body.String())
}

func TestHandler_AddComment(t *testing.T) {
	t.Run("added", func(t *testing.T) {
		svc := &fakeItems{}

		rec := serve(t, svc, http.MethodPost, "/items/7/comment", `{"text":"Works great"}`, "2")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(7), svc.itemID)
		assert.Equal(t, int64(2), svc.callerID)
		assert.JSONEq(t, `{"id":1,"text":"Works great","authorName":"Bob","created":"2026-10-01T10:00:00"}`, rec.Body.String())
	})

	t.Run("blank text", func(t *testing.T) {
		rec := serve(t, &fakeItems{}, http.MethodPost, "/items/7/comment", `{"text":"  "}`, "2")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("never rented", func(t *testing.T) {
		svc := &fakeItems{err: failure.BadRequestFromString("user has not rented this item")}

		rec := serve(t, svc, http.MethodPost, "/items/7/comment", `{"text":"Works great"}`, "2")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

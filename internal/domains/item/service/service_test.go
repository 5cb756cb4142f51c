package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"shareit/infras/otel/mocks"
	bookingMocks "shareit/internal/domains/booking/mocks"
	bookingModel "shareit/internal/domains/booking/model"
	commentMocks "shareit/internal/domains/comment/mocks"
	commentModel "shareit/internal/domains/comment/model"
	commentDto "shareit/internal/domains/comment/model/dto"
	itemMocks "shareit/internal/domains/item/mocks"
	"shareit/internal/domains/item/model"
	"shareit/internal/domains/item/model/dto"
	"shareit/internal/domains/item/service"
	requestMocks "shareit/internal/domains/request/mocks"
	userMocks "shareit/internal/domains/user/mocks"
	userModel "shareit/internal/domains/user/model"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"
	"shareit/shared/timezone"
)

const (
	ownerID  = int64(1)
	renterID = int64(2)
	itemID   = int64(10)
)

type fixture struct {
	repo        *itemMocks.MockItem
	userRepo    *userMocks.MockUser
	requestRepo *requestMocks.MockItemRequest
	bookingRepo *bookingMocks.MockBooking
	commentRepo *commentMocks.MockComment
	svc         service.Item
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:        itemMocks.NewMockItem(ctrl),
		userRepo:    userMocks.NewMockUser(ctrl),
		requestRepo: requestMocks.NewMockItemRequest(ctrl),
		bookingRepo: bookingMocks.NewMockBooking(ctrl),
		commentRepo: commentMocks.NewMockComment(ctrl),
	}
	f.svc = service.New(f.repo, f.userRepo, f.requestRepo, f.bookingRepo, f.commentRepo, mocks.NewOtel())

	return f
}

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}

func drill() model.Item {
	return model.Item{ID: itemID, Name: "Drill", Description: "Cordless drill", Available: true, OwnerID: ownerID}
}

func TestItemService_Create(t *testing.T) {
	requestID := int64(7)

	tests := []struct {
		name      string
		req       dto.CreateItemRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "successful creation",
			req:  dto.CreateItemRequest{Name: "Drill", Description: "Cordless drill", Available: boolPtr(true)},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(itemID, nil)
			},
		},
		{
			name: "answers a request",
			req:  dto.CreateItemRequest{Name: "Drill", Description: "Cordless drill", Available: boolPtr(true), RequestID: &requestID},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.requestRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, item model.Item) (int64, error) {
						require.NotNil(t, item.RequestID)
						assert.Equal(t, requestID, *item.RequestID)

						return itemID, nil
					})
			},
		},
		{
			name: "unknown request",
			req:  dto.CreateItemRequest{Name: "Drill", Description: "Cordless drill", Available: boolPtr(true), RequestID: &requestID},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.requestRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "unknown owner",
			req:  dto.CreateItemRequest{Name: "Drill", Description: "Cordless drill", Available: boolPtr(true)},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(context.Background(), tt.req, ownerID)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, itemID, res.ID)
			assert.True(t, res.Available)
		})
	}
}

func TestItemService_Update(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.UpdateItemRequest
		callerID  int64
		setupMock func(f fixture)
		wantCode  int
		want      dto.ItemResponse
	}{
		{
			name:      "empty patch",
			req:       dto.UpdateItemRequest{},
			callerID:  ownerID,
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:     "not the owner",
			req:      dto.UpdateItemRequest{Name: strPtr("Hammer")},
			callerID: renterID,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(drill(), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "availability only",
			req:      dto.UpdateItemRequest{Available: boolPtr(false)},
			callerID: ownerID,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(drill(), nil)
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req map[string]any, _ gDto.FilterGroup) error {
						assert.NotContains(t, req, "name")

						return nil
					})
			},
			want: dto.ItemResponse{ID: itemID, Name: "Drill", Description: "Cordless drill", Available: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Update(context.Background(), tt.req, itemID, tt.callerID)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, res)
		})
	}
}

func TestItemService_Get(t *testing.T) {
	now := timezone.Now()
	comment := commentModel.Comment{ID: 3, Text: "Great", ItemID: itemID, AuthorID: renterID, AuthorName: "Bob"}

	t.Run("owner sees bookings", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(drill(), nil)
		f.commentRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]commentModel.Comment{comment}, nil)
		f.bookingRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]bookingModel.Booking{
				{ID: 1, ItemID: itemID, BookerID: renterID, Start: now.Add(-48 * time.Hour), End: now.Add(-24 * time.Hour)},
				{ID: 2, ItemID: itemID, BookerID: renterID, Start: now.Add(24 * time.Hour), End: now.Add(48 * time.Hour)},
			}, nil)

		res, err := f.svc.Get(context.Background(), itemID, ownerID)

		require.NoError(t, err)
		require.NotNil(t, res.LastBooking)
		require.NotNil(t, res.NextBooking)
		assert.Equal(t, int64(1), res.LastBooking.ID)
		assert.Equal(t, int64(2), res.NextBooking.ID)
		assert.Len(t, res.Comments, 1)
		assert.Equal(t, "Bob", res.Comments[0].AuthorName)
	})

	t.Run("others see no bookings", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(drill(), nil)
		f.commentRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := f.svc.Get(context.Background(), itemID, renterID)

		require.NoError(t, err)
		assert.Nil(t, res.LastBooking)
		assert.Nil(t, res.NextBooking)
		assert.NotNil(t, res.Comments)
		assert.Empty(t, res.Comments)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Item{}, nil)

		_, err := f.svc.Get(context.Background(), itemID, ownerID)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestItemService_GetByOwner(t *testing.T) {
	f := newFixture(t)

	second := drill()
	second.ID = 11

	f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Item{drill(), second}, nil)
	f.commentRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]commentModel.Comment, error) {
			in, ok := filter.Filters[0].(gDto.Filter)
			require.True(t, ok)
			assert.Equal(t, []int64{itemID, 11}, in.Value)

			return nil, nil
		})
	f.bookingRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	res, err := f.svc.GetByOwner(context.Background(), ownerID)

	require.NoError(t, err)
	assert.Len(t, res, 2)
}

func TestItemService_Search(t *testing.T) {
	t.Run("blank text queries nothing", func(t *testing.T) {
		f := newFixture(t)

		res, err := f.svc.Search(context.Background(), "   ")

		require.NoError(t, err)
		assert.NotNil(t, res)
		assert.Empty(t, res)
	})

	t.Run("matches available items", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Item, error) {
				assert.Equal(t, gDto.FilterGroupOperatorAnd, filter.Operator)
				assert.Len(t, filter.Filters, 2)

				return []model.Item{drill()}, nil
			})

		res, err := f.svc.Search(context.Background(), "dRiLl")

		require.NoError(t, err)
		assert.Len(t, res, 1)
	})
}

func TestItemService_Delete(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(drill(), nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.Delete(context.Background(), itemID, ownerID))
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(drill(), nil)

		assert.Equal(t, http.StatusForbidden, failure.GetCode(f.svc.Delete(context.Background(), itemID, renterID)))
	})
}

func TestItemService_AddComment(t *testing.T) {
	req := commentDto.CreateCommentRequest{Text: "Worked well"}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "after a finished rent",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(drill(), nil)
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: renterID, Name: "Bob"}, nil)
				f.bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.commentRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(3), nil)
			},
		},
		{
			name: "without a finished rent",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(drill(), nil)
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: renterID, Name: "Bob"}, nil)
				f.bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown author",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(drill(), nil)
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "unknown item",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Item{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "insert error",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(drill(), nil)
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: renterID, Name: "Bob"}, nil)
				f.bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.commentRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.AddComment(context.Background(), req, itemID, renterID)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(3), res.ID)
			assert.Equal(t, "Bob", res.AuthorName)
			assert.Equal(t, "Worked well", res.Text)
			assert.NotEmpty(t, res.Created)
		})
	}
}

func TestFinishedRentFilter(t *testing.T) {
	now := timezone.Now()

	filter := service.FinishedRentFilter(itemID, renterID, now)

	require.Len(t, filter.Filters, 4)

	status, ok := filter.Filters[2].(gDto.Filter)
	require.True(t, ok)
	assert.Equal(t, string(bookingModel.StatusApproved), status.Value)

	end, ok := filter.Filters[3].(gDto.Filter)
	require.True(t, ok)
	assert.Equal(t, gDto.FilterOperatorLess, end.Operator)
	assert.Equal(t, now, end.Value)
}

func TestLastAndNext(t *testing.T) {
	now := timezone.Now()

	bookings := []bookingModel.Booking{
		{ID: 1, Start: now.Add(-72 * time.Hour), End: now.Add(-48 * time.Hour)},
		{ID: 2, Start: now.Add(-time.Hour), End: now.Add(time.Hour)},
		{ID: 3, Start: now.Add(72 * time.Hour), End: now.Add(96 * time.Hour)},
		{ID: 4, Start: now.Add(24 * time.Hour), End: now.Add(48 * time.Hour)},
	}

	last, next := service.LastAndNext(bookings, now)

	require.NotNil(t, last)
	require.NotNil(t, next)
	assert.Equal(t, int64(1), last.ID, "an in-progress booking is not the last one")
	assert.Equal(t, int64(4), next.ID)

	t.Run("latest end wins", func(t *testing.T) {
		last, next := service.LastAndNext([]bookingModel.Booking{
			{ID: 5, Start: now.Add(-100 * time.Hour), End: now.Add(-time.Hour)},
			{ID: 6, Start: now.Add(-50 * time.Hour), End: now.Add(-10 * time.Hour)},
		}, now)

		require.NotNil(t, last)
		assert.Equal(t, int64(5), last.ID)
		assert.Nil(t, next)
	})

	t.Run("only in progress", func(t *testing.T) {
		last, next := service.LastAndNext([]bookingModel.Booking{
			{ID: 7, Start: now.Add(-time.Hour), End: now.Add(time.Hour)},
		}, now)

		assert.Nil(t, last)
		assert.Nil(t, next)
	})

	last, next = service.LastAndNext(nil, now)
	assert.Nil(t, last)
	assert.Nil(t, next)
}

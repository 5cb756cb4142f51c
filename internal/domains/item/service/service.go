package service

import (
	"context"
	"fmt"
	"shareit/infras/otel"
	bookingModel "shareit/internal/domains/booking/model"
	bookingDto "shareit/internal/domains/booking/model/dto"
	bookingRepo "shareit/internal/domains/booking/repository"
	commentModel "shareit/internal/domains/comment/model"
	commentDto "shareit/internal/domains/comment/model/dto"
	commentRepo "shareit/internal/domains/comment/repository"
	"shareit/internal/domains/item/model"
	"shareit/internal/domains/item/model/dto"
	"shareit/internal/domains/item/repository"
	requestModel "shareit/internal/domains/request/model"
	requestRepo "shareit/internal/domains/request/repository"
	userModel "shareit/internal/domains/user/model"
	userRepo "shareit/internal/domains/user/repository"
	"shareit/shared"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"
	"shareit/shared/logger"
	"shareit/shared/timezone"
	"strings"
	"time"
)

const (
	msgItemNotFound    = "item with id %d not found"
	msgUserNotFound    = "user with id %d not found"
	msgRequestNotFound = "item request with id %d not found"
	msgNotOwner        = "only the item owner can modify it"
	msgNoFinishedRent  = "user %d has no finished booking of item %d"
)

type Item interface {
	Create(ctx context.Context, req dto.CreateItemRequest, ownerID int64) (dto.ItemResponse, error)
	Update(ctx context.Context, req dto.UpdateItemRequest, id, ownerID int64) (dto.ItemResponse, error)
	Get(ctx context.Context, id, userID int64) (dto.ItemDetailResponse, error)
	GetByOwner(ctx context.Context, ownerID int64) ([]dto.ItemDetailResponse, error)
	Search(ctx context.Context, text string) ([]dto.ItemResponse, error)
	Delete(ctx context.Context, id, ownerID int64) error
	AddComment(ctx context.Context, req commentDto.CreateCommentRequest, id, authorID int64) (commentDto.CommentResponse, error)
}

type serviceImpl struct {
	repo        repository.Item
	userRepo    userRepo.User
	requestRepo requestRepo.ItemRequest
	bookingRepo bookingRepo.Booking
	commentRepo commentRepo.Comment
	otel        otel.Otel
}

func New(
	repo repository.Item,
	userRepo userRepo.User,
	requestRepo requestRepo.ItemRequest,
	bookingRepo bookingRepo.Booking,
	commentRepo commentRepo.Comment,
	otel otel.Otel,
) Item {
	return &serviceImpl{
		repo:        repo,
		userRepo:    userRepo,
		requestRepo: requestRepo,
		bookingRepo: bookingRepo,
		commentRepo: commentRepo,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateItemRequest, ownerID int64) (res dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".item.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	log := logger.FromContext(ctx)

	if err = s.checkUser(ctx, ownerID); err != nil {
		return res, err
	}

	if req.RequestID != nil {
		var exist bool

		exist, err = s.requestRepo.Exist(ctx, shared.FilterByID(*req.RequestID, requestModel.FieldID, requestModel.TableName))
		if err != nil {
			return res, fmt.Errorf("failed to check if item request exists: %w", err)
		}

		if !exist {
			return res, failure.NotFound(fmt.Sprintf(msgRequestNotFound, *req.RequestID)) //nolint:wrapcheck
		}
	}

	item := req.ToModel(ownerID)

	item.ID, err = s.repo.Insert(ctx, item)
	if err != nil {
		log.Error().Err(err).Msg("failed to create item")

		return res, fmt.Errorf("failed to create item: %w", err)
	}

	log.Info().Int64("id", item.ID).Msg("item created")

	res.FromModel(item)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateItemRequest, id, ownerID int64) (res dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".item.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return res, failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	item, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return res, err
	}

	req.Apply(&item)

	if err = s.repo.Update(ctx, shared.TransformFields(req), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg("failed to update item")

		return res, fmt.Errorf("failed to update item: %w", err)
	}

	res.FromModel(item)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id, userID int64) (res dto.ItemDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".item.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	item, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	details, err := s.details(ctx, []model.Item{item}, item.OwnerID == userID)
	if err != nil {
		return res, err
	}

	return details[0], nil
}

func (s *serviceImpl) GetByOwner(ctx context.Context, ownerID int64) (res []dto.ItemDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".item.GetByOwner")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.checkUser(ctx, ownerID); err != nil {
		return nil, err
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldOwnerID, Operator: gDto.FilterOperatorEq, Value: ownerID, Table: model.TableName},
		},
	}

	items, err := s.repo.GetAll(ctx, gDto.QueryParams{}.OrderBy(model.FieldID, gDto.SortDirAsc), filter)
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg("failed to get owner items")

		return nil, fmt.Errorf("failed to get items: %w", err)
	}

	return s.details(ctx, items, true)
}

// Search matches text against name or description of available items. Blank text matches nothing.
func (s *serviceImpl) Search(ctx context.Context, text string) (res []dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".item.Search")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	text = strings.TrimSpace(text)
	if text == "" {
		return []dto.ItemResponse{}, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldAvailable, Operator: gDto.FilterOperatorEq, Value: true, Table: model.TableName},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorOr,
				Filters: []any{
					gDto.Filter{Field: model.FieldName, Operator: gDto.FilterOperatorLike, Value: text, Table: model.TableName},
					gDto.Filter{Field: model.FieldDescription, Operator: gDto.FilterOperatorLike, Value: text, Table: model.TableName},
				},
			},
		},
	}

	items, err := s.repo.GetAll(ctx, gDto.QueryParams{}.OrderBy(model.FieldID, gDto.SortDirAsc), filter)
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Str("text", text).Msg("failed to search items")

		return nil, fmt.Errorf("failed to search items: %w", err)
	}

	return dto.FromModels(items), nil
}

func (s *serviceImpl) Delete(ctx context.Context, id, ownerID int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".item.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.getOwned(ctx, id, ownerID); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg("failed to delete item")

		return fmt.Errorf("failed to delete item: %w", err)
	}

	return nil
}

func (s *serviceImpl) AddComment(ctx context.Context, req commentDto.CreateCommentRequest, id, authorID int64) (res commentDto.CommentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".item.AddComment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	log := logger.FromContext(ctx)

	if _, err = s.get(ctx, id); err != nil {
		return res, err
	}

	author, err := s.userRepo.Get(ctx, shared.FilterByID(authorID, userModel.FieldID, userModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get author: %w", err)
	}

	if author.ID == 0 {
		return res, failure.NotFound(fmt.Sprintf(msgUserNotFound, authorID)) //nolint:wrapcheck
	}

	rented, err := s.bookingRepo.Exist(ctx, FinishedRentFilter(id, authorID, timezone.Now()))
	if err != nil {
		return res, fmt.Errorf("failed to check finished bookings: %w", err)
	}

	if !rented {
		return res, failure.BadRequestFromString(fmt.Sprintf(msgNoFinishedRent, authorID, id)) //nolint:wrapcheck
	}

	comment := req.ToModel(id, authorID)

	comment.ID, err = s.commentRepo.Insert(ctx, comment)
	if err != nil {
		log.Error().Err(err).Msg("failed to create comment")

		return res, fmt.Errorf("failed to create comment: %w", err)
	}

	comment.AuthorName = author.Name

	res.FromModel(comment)

	return res, nil
}

// FinishedRentFilter matches approved bookings of item by booker that ended before now.
func FinishedRentFilter(itemID, bookerID int64, now time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldItemID, Operator: gDto.FilterOperatorEq, Value: itemID, Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldBookerID, Operator: gDto.FilterOperatorEq, Value: bookerID, Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldStatus, Operator: gDto.FilterOperatorEq, Value: string(bookingModel.StatusApproved), Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldEnd, Operator: gDto.FilterOperatorLess, Value: now, Table: bookingModel.TableName},
		},
	}
}

// details decorates items with their comments and, when withBookings is set, the last and next bookings.
func (s *serviceImpl) details(ctx context.Context, items []model.Item, withBookings bool) ([]dto.ItemDetailResponse, error) {
	res := make([]dto.ItemDetailResponse, len(items))
	if len(items) == 0 {
		return res, nil
	}

	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ID
		res[i].FromModel(item)
		res[i].Comments = []commentDto.CommentResponse{}
	}

	comments, err := s.commentRepo.GetAll(ctx, gDto.QueryParams{}.OrderBy(commentModel.TableName+"."+constant.FieldCreatedAt, gDto.SortDirAsc), gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: commentModel.FieldItemID, Operator: gDto.FilterOperatorIn, Value: ids, Table: commentModel.TableName},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	byItem := make(map[int64][]commentDto.CommentResponse, len(items))

	for _, comment := range comments {
		var c commentDto.CommentResponse
		c.FromModel(comment)
		byItem[comment.ItemID] = append(byItem[comment.ItemID], c)
	}

	for i := range res {
		if c, ok := byItem[res[i].ID]; ok {
			res[i].Comments = c
		}
	}

	if !withBookings {
		return res, nil
	}

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}.OrderBy(bookingModel.TableName+"."+bookingModel.FieldStart, gDto.SortDirAsc), gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldItemID, Operator: gDto.FilterOperatorIn, Value: ids, Table: bookingModel.TableName},
			gDto.Filter{
				ArgName:  "status_rejected",
				Field:    bookingModel.FieldStatus,
				Operator: gDto.FilterOperatorNotEq,
				Value:    string(bookingModel.StatusRejected),
				Table:    bookingModel.TableName,
			},
			gDto.Filter{
				ArgName:  "status_canceled",
				Field:    bookingModel.FieldStatus,
				Operator: gDto.FilterOperatorNotEq,
				Value:    string(bookingModel.StatusCanceled),
				Table:    bookingModel.TableName,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get item bookings: %w", err)
	}

	now := timezone.Now()
	byItemBookings := make(map[int64][]bookingModel.Booking, len(items))

	for _, booking := range bookings {
		byItemBookings[booking.ItemID] = append(byItemBookings[booking.ItemID], booking)
	}

	for i := range res {
		res[i].LastBooking, res[i].NextBooking = LastAndNext(byItemBookings[res[i].ID], now)
	}

	return res, nil
}

// LastAndNext picks the booking that ended most recently and the earliest one starting after now.
// A booking in progress is neither.
func LastAndNext(bookings []bookingModel.Booking, now time.Time) (last, next *bookingDto.ShortResponse) {
	var lastBooking, nextBooking *bookingModel.Booking

	for i := range bookings {
		booking := &bookings[i]

		switch {
		case booking.Start.After(now):
			if nextBooking == nil || booking.Start.Before(nextBooking.Start) {
				nextBooking = booking
			}
		case booking.End.Before(now):
			if lastBooking == nil || booking.End.After(lastBooking.End) {
				lastBooking = booking
			}
		}
	}

	if lastBooking != nil {
		last = &bookingDto.ShortResponse{}
		last.FromModel(*lastBooking)
	}

	if nextBooking != nil {
		next = &bookingDto.ShortResponse{}
		next.FromModel(*nextBooking)
	}

	return last, next
}

func (s *serviceImpl) checkUser(ctx context.Context, id int64) error {
	exist, err := s.userRepo.Exist(ctx, shared.FilterByID(id, userModel.FieldID, userModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		return failure.NotFound(fmt.Sprintf(msgUserNotFound, id)) //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) get(ctx context.Context, id int64) (model.Item, error) {
	item, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return item, fmt.Errorf("failed to get item: %w", err)
	}

	if item.ID == 0 {
		return item, failure.NotFound(fmt.Sprintf(msgItemNotFound, id)) //nolint:wrapcheck
	}

	return item, nil
}

func (s *serviceImpl) getOwned(ctx context.Context, id, ownerID int64) (model.Item, error) {
	item, err := s.get(ctx, id)
	if err != nil {
		return item, err
	}

	if item.OwnerID != ownerID {
		return item, failure.Forbidden(msgNotOwner) //nolint:wrapcheck
	}

	return item, nil
}

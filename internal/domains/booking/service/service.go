package service

import (
	"context"
	"fmt"
	"shareit/infras/otel"
	"shareit/internal/domains/booking/model"
	"shareit/internal/domains/booking/model/dto"
	"shareit/internal/domains/booking/repository"
	itemModel "shareit/internal/domains/item/model"
	itemRepo "shareit/internal/domains/item/repository"
	userModel "shareit/internal/domains/user/model"
	userRepo "shareit/internal/domains/user/repository"
	"shareit/shared"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"
	"shareit/shared/logger"
	"shareit/shared/timezone"
	"time"
)

const (
	msgBookingNotFound  = "booking with id %d not found"
	msgItemNotFound     = "item with id %d not found"
	msgUserNotFound     = "user with id %d not found"
	msgItemUnavailable  = "item is not available for booking"
	msgOwnItem          = "owner cannot book own item"
	msgAlreadyProcessed = "booking already processed"
	msgNotOwner         = "only the item owner can approve or reject a booking"
	msgNotBooker        = "only the booker can cancel a booking"
	msgAccessDenied     = "booking is visible only to its booker and the item owner"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest, bookerID int64) (dto.BookingResponse, error)
	Approve(ctx context.Context, id, ownerID int64, approved bool) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id, bookerID int64) (dto.BookingResponse, error)
	Get(ctx context.Context, id, userID int64) (dto.BookingResponse, error)
	GetByBooker(ctx context.Context, bookerID int64, state model.State, params gDto.QueryParams) ([]dto.BookingResponse, error)
	GetByOwner(ctx context.Context, ownerID int64, state model.State, params gDto.QueryParams) ([]dto.BookingResponse, error)
}

type serviceImpl struct {
	repo     repository.Booking
	itemRepo itemRepo.Item
	userRepo userRepo.User
	otel     otel.Otel
}

func New(repo repository.Booking, itemRepo itemRepo.Item, userRepo userRepo.User, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:     repo,
		itemRepo: itemRepo,
		userRepo: userRepo,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest, bookerID int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	log := logger.FromContext(ctx)

	start, end, err := req.Period()
	if err != nil {
		return res, err
	}

	booker, err := s.userRepo.Get(ctx, shared.FilterByID(bookerID, userModel.FieldID, userModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get booker: %w", err)
	}

	if booker.ID == 0 {
		return res, failure.NotFound(fmt.Sprintf(msgUserNotFound, bookerID)) //nolint:wrapcheck
	}

	item, err := s.itemRepo.Get(ctx, shared.FilterByID(req.ItemID, itemModel.FieldID, itemModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get item: %w", err)
	}

	if item.ID == 0 {
		return res, failure.NotFound(fmt.Sprintf(msgItemNotFound, req.ItemID)) //nolint:wrapcheck
	}

	if !item.Available {
		return res, failure.BadRequestFromString(msgItemUnavailable) //nolint:wrapcheck
	}

	if item.OwnerID == bookerID {
		return res, failure.BadRequestFromString(msgOwnItem) //nolint:wrapcheck
	}

	if err = dto.CheckPeriod(start, end, timezone.Now()); err != nil {
		return res, err //nolint:wrapcheck
	}

	booking := req.ToModel(bookerID, start, end)

	booking.ID, err = s.repo.Insert(ctx, booking)
	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	booking.ItemName = item.Name
	booking.ItemOwnerID = item.OwnerID
	booking.BookerName = booker.Name

	log.Info().Int64("id", booking.ID).Int64("item_id", item.ID).Msg("booking created")

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Approve(ctx context.Context, id, ownerID int64, approved bool) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Approve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if booking.Status != model.StatusWaiting {
		return res, failure.BadRequestFromString(msgAlreadyProcessed) //nolint:wrapcheck
	}

	if booking.ItemOwnerID != ownerID {
		return res, failure.Forbidden(msgNotOwner) //nolint:wrapcheck
	}

	status := model.StatusRejected
	if approved {
		status = model.StatusApproved
	}

	if err = s.transition(ctx, id, status); err != nil {
		return res, err
	}

	booking.Status = status

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id, bookerID int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if booking.Status != model.StatusWaiting {
		return res, failure.BadRequestFromString(msgAlreadyProcessed) //nolint:wrapcheck
	}

	if booking.BookerID != bookerID {
		return res, failure.Forbidden(msgNotBooker) //nolint:wrapcheck
	}

	if err = s.transition(ctx, id, model.StatusCanceled); err != nil {
		return res, err
	}

	booking.Status = model.StatusCanceled

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id, userID int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if booking.BookerID != userID && booking.ItemOwnerID != userID {
		return res, failure.Forbidden(msgAccessDenied) //nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetByBooker(ctx context.Context, bookerID int64, state model.State, params gDto.QueryParams) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetByBooker")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, bookerID, gDto.Filter{
		Field:    model.FieldBookerID,
		Operator: gDto.FilterOperatorEq,
		Value:    bookerID,
		Table:    model.TableName,
	}, state, params)
}

func (s *serviceImpl) GetByOwner(ctx context.Context, ownerID int64, state model.State, params gDto.QueryParams) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetByOwner")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, ownerID, gDto.Filter{
		Field:    model.FieldItemOwner,
		Operator: gDto.FilterOperatorEq,
		Value:    ownerID,
		Table:    model.ItemTableName,
	}, state, params)
}

func (s *serviceImpl) list(ctx context.Context, userID int64, userFilter gDto.Filter, state model.State, params gDto.QueryParams) ([]dto.BookingResponse, error) {
	exist, err := s.userRepo.Exist(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		return nil, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		return nil, failure.NotFound(fmt.Sprintf(msgUserNotFound, userID)) //nolint:wrapcheck
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  append([]any{userFilter}, StateFilters(state, timezone.Now())...),
	}

	bookings, err := s.repo.GetAll(ctx, params.OrderBy(model.TableName+"."+model.FieldStart, gDto.SortDirDesc), filter)
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Str("state", string(state)).Msg("failed to get bookings")

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	return dto.FromModels(bookings), nil
}

// StateFilters translates state into booking filters evaluated against now.
func StateFilters(state model.State, now time.Time) []any {
	switch state {
	case model.StateCurrent:
		return []any{
			gDto.Filter{Field: model.FieldStart, Operator: gDto.FilterOperatorLessEq, Value: now, Table: model.TableName},
			gDto.Filter{Field: model.FieldEnd, Operator: gDto.FilterOperatorGreaterEq, Value: now, Table: model.TableName},
		}
	case model.StatePast:
		return []any{
			gDto.Filter{Field: model.FieldEnd, Operator: gDto.FilterOperatorLess, Value: now, Table: model.TableName},
		}
	case model.StateFuture:
		return []any{
			gDto.Filter{Field: model.FieldStart, Operator: gDto.FilterOperatorGreater, Value: now, Table: model.TableName},
		}
	case model.StateWaiting:
		return []any{
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: string(model.StatusWaiting), Table: model.TableName},
		}
	case model.StateRejected:
		return []any{
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: string(model.StatusRejected), Table: model.TableName},
		}
	default:
		return nil
	}
}

func (s *serviceImpl) get(ctx context.Context, id int64) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == 0 {
		return booking, failure.NotFound(fmt.Sprintf(msgBookingNotFound, id)) //nolint:wrapcheck
	}

	return booking, nil
}

// transition moves a WAITING booking to status. The update only matches while the row is still
// WAITING, so a concurrent decision committed first turns this call into "already processed".
func (s *serviceImpl) transition(ctx context.Context, id int64, status model.Status) error {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: id, Table: model.TableName},
			gDto.Filter{
				ArgName:  "current_status",
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    string(model.StatusWaiting),
				Table:    model.TableName,
			},
		},
	}

	affected, err := s.repo.UpdateAffected(ctx, map[string]any{
		model.FieldStatus:        string(status),
		constant.FieldModifiedAt: timezone.Now(),
	}, filter)
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Int64("id", id).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	if affected == 0 {
		return failure.BadRequestFromString(msgAlreadyProcessed) //nolint:wrapcheck
	}

	logger.FromContext(ctx).Info().Int64("id", id).Str("status", string(status)).Msg("booking status changed")

	return nil
}

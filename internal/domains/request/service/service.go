package service

import (
	"context"
	"fmt"
	"shareit/infras/otel"
	itemModel "shareit/internal/domains/item/model"
	itemDto "shareit/internal/domains/item/model/dto"
	itemRepo "shareit/internal/domains/item/repository"
	"shareit/internal/domains/request/model"
	"shareit/internal/domains/request/model/dto"
	"shareit/internal/domains/request/repository"
	userModel "shareit/internal/domains/user/model"
	userRepo "shareit/internal/domains/user/repository"
	"shareit/shared"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"
	"shareit/shared/logger"
)

const (
	msgUserNotFound    = "user with id %d not found"
	msgRequestNotFound = "item request with id %d not found"
)

type ItemRequest interface {
	Create(ctx context.Context, req dto.CreateItemRequestRequest, userID int64) (dto.ItemRequestResponse, error)
	GetByRequester(ctx context.Context, userID int64) ([]dto.ItemRequestResponse, error)
	GetAll(ctx context.Context, userID int64, params gDto.QueryParams) ([]dto.ItemRequestResponse, error)
	Get(ctx context.Context, userID, id int64) (dto.ItemRequestResponse, error)
}

type serviceImpl struct {
	repo     repository.ItemRequest
	itemRepo itemRepo.Item
	userRepo userRepo.User
	otel     otel.Otel
}

func New(repo repository.ItemRequest, itemRepo itemRepo.Item, userRepo userRepo.User, otel otel.Otel) ItemRequest {
	return &serviceImpl{
		repo:     repo,
		itemRepo: itemRepo,
		userRepo: userRepo,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateItemRequestRequest, userID int64) (res dto.ItemRequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".request.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	log := logger.FromContext(ctx)

	if err = s.checkUser(ctx, userID); err != nil {
		return res, err
	}

	request := req.ToModel(userID)

	request.ID, err = s.repo.Insert(ctx, request)
	if err != nil {
		log.Error().Err(err).Msg("failed to create item request")

		return res, fmt.Errorf("failed to create item request: %w", err)
	}

	log.Info().Int64("id", request.ID).Msg("item request created")

	res.FromModel(request, nil)

	return res, nil
}

func (s *serviceImpl) GetByRequester(ctx context.Context, userID int64) (res []dto.ItemRequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".request.GetByRequester")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	return s.list(ctx, gDto.QueryParams{}, gDto.Filter{
		Field:    model.FieldRequesterID,
		Operator: gDto.FilterOperatorEq,
		Value:    userID,
		Table:    model.TableName,
	})
}

func (s *serviceImpl) GetAll(ctx context.Context, userID int64, params gDto.QueryParams) (res []dto.ItemRequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".request.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	return s.list(ctx, params, gDto.Filter{
		Field:    model.FieldRequesterID,
		Operator: gDto.FilterOperatorNotEq,
		Value:    userID,
		Table:    model.TableName,
	})
}

func (s *serviceImpl) Get(ctx context.Context, userID, id int64) (res dto.ItemRequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".request.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.checkUser(ctx, userID); err != nil {
		return res, err
	}

	request, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get item request: %w", err)
	}

	if request.ID == 0 {
		return res, failure.NotFound(fmt.Sprintf(msgRequestNotFound, id)) //nolint:wrapcheck
	}

	items, err := s.itemsByRequest(ctx, []int64{id})
	if err != nil {
		return res, err
	}

	res.FromModel(request, items[id])

	return res, nil
}

// list returns requests matching filter, newest first, each with the items created against it.
func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.Filter) ([]dto.ItemRequestResponse, error) {
	requests, err := s.repo.GetAll(ctx, params.OrderBy(model.FieldCreatedAt, gDto.SortDirDesc), gDto.FilterGroup{Filters: []any{filter}})
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg("failed to get item requests")

		return nil, fmt.Errorf("failed to get item requests: %w", err)
	}

	res := make([]dto.ItemRequestResponse, len(requests))
	if len(requests) == 0 {
		return res, nil
	}

	ids := make([]int64, len(requests))
	for i, request := range requests {
		ids[i] = request.ID
	}

	items, err := s.itemsByRequest(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i, request := range requests {
		res[i].FromModel(request, items[request.ID])
	}

	return res, nil
}

func (s *serviceImpl) itemsByRequest(ctx context.Context, ids []int64) (map[int64][]itemDto.ItemResponse, error) {
	items, err := s.itemRepo.GetAll(ctx, gDto.QueryParams{}.OrderBy(itemModel.FieldID, gDto.SortDirAsc), gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: itemModel.FieldRequestID, Operator: gDto.FilterOperatorIn, Value: ids, Table: itemModel.TableName},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get items of requests: %w", err)
	}

	res := make(map[int64][]itemDto.ItemResponse, len(ids))

	for _, item := range items {
		if item.RequestID == nil {
			continue
		}

		var i itemDto.ItemResponse
		i.FromModel(item)
		res[*item.RequestID] = append(res[*item.RequestID], i)
	}

	return res, nil
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

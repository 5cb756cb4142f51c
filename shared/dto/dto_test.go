package dto_test

import (
	"errors"
	"net/http"
	"net/url"
	"shareit/shared/constant"
	"shareit/shared/dto"
	"shareit/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name        string
		queryParams map[string]string
		expected    dto.QueryParams
		expectedErr error
	}{
		{
			name:        "defaults when absent",
			queryParams: map[string]string{},
			expected:    dto.QueryParams{From: constant.DefaultValueFrom, Size: constant.DefaultValueSize},
		},
		{
			name:        "explicit values",
			queryParams: map[string]string{"from": "20", "size": "5"},
			expected:    dto.QueryParams{From: 20, Size: 5},
		},
		{
			name:        "zero from is allowed",
			queryParams: map[string]string{"from": "0", "size": "1"},
			expected:    dto.QueryParams{From: 0, Size: 1},
		},
		{
			name:        "negative from",
			queryParams: map[string]string{"from": "-1"},
			expectedErr: failure.InvalidFromParam,
		},
		{
			name:        "non numeric from",
			queryParams: map[string]string{"from": "abc"},
			expectedErr: failure.InvalidFromParam,
		},
		{
			name:        "zero size",
			queryParams: map[string]string{"size": "0"},
			expectedErr: failure.InvalidSizeParam,
		},
		{
			name:        "negative size",
			queryParams: map[string]string{"size": "-10"},
			expectedErr: failure.InvalidSizeParam,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			for k, v := range tt.queryParams {
				values.Set(k, v)
			}

			req := &http.Request{URL: &url.URL{RawQuery: values.Encode()}}

			var params dto.QueryParams
			err := params.FromRequest(req)

			if tt.expectedErr != nil {
				assert.True(t, errors.Is(err, tt.expectedErr))
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_OrderBy(t *testing.T) {
	params := dto.QueryParams{From: 10, Size: 5}

	desc := params.OrderBy("start_date", "desc")
	assert.Equal(t, "start_date", desc.SortBy)
	assert.Equal(t, dto.SortDirDesc, desc.SortDir)
	assert.Equal(t, 10, desc.From)

	asc := params.OrderBy("id", "asc")
	assert.Equal(t, dto.SortDirAsc, asc.SortDir)

	assert.Empty(t, params.SortBy, "receiver must not be modified")
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "eq with table",
			filter:    dto.Filter{Field: "id", Value: int64(1), Operator: dto.FilterOperatorEq, Table: "items"},
			wantWhere: "items.id = :id",
			wantArgs:  map[string]any{"id": int64(1)},
		},
		{
			name:      "less with arg name",
			filter:    dto.Filter{Field: "end_date", ArgName: "now_end", Value: "t", Operator: dto.FilterOperatorLess},
			wantWhere: "end_date < :now_end",
			wantArgs:  map[string]any{"now_end": "t"},
		},
		{
			name:      "greater",
			filter:    dto.Filter{Field: "start_date", Value: 5, Operator: dto.FilterOperatorGreater},
			wantWhere: "start_date > :start_date",
			wantArgs:  map[string]any{"start_date": 5},
		},
		{
			name:      "like lowercases both sides",
			filter:    dto.Filter{Field: "name", Value: "Drill", Operator: dto.FilterOperatorLike},
			wantWhere: "LOWER(name) LIKE LOWER(:name)",
			wantArgs:  map[string]any{"name": "%Drill%"},
		},
		{
			name:      "like escapes wildcards",
			filter:    dto.Filter{Field: "name", Value: `50%_off\`, Operator: dto.FilterOperatorLike},
			wantWhere: "LOWER(name) LIKE LOWER(:name)",
			wantArgs:  map[string]any{"name": `%50\%\_off\\%`},
		},
		{
			name:      "in expands slice",
			filter:    dto.Filter{Field: "item_id", Value: []int64{3, 4}, Operator: dto.FilterOperatorIn},
			wantWhere: "item_id IN (:item_id_0, :item_id_1)",
			wantArgs:  map[string]any{"item_id_0": int64(3), "item_id_1": int64(4)},
		},
		{
			name:      "in with empty slice matches nothing",
			filter:    dto.Filter{Field: "item_id", Value: []int64{}, Operator: dto.FilterOperatorIn},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "in with scalar",
			filter:    dto.Filter{Field: "item_id", Value: int64(3), Operator: dto.FilterOperatorIn},
			wantWhere: "item_id = :item_id",
			wantArgs:  map[string]any{"item_id": int64(3)},
		},
		{
			name:      "greater or equal",
			filter:    dto.Filter{Field: "end_date", Value: 1, Operator: dto.FilterOperatorGreaterEq, Table: "bookings"},
			wantWhere: "bookings.end_date >= :end_date",
			wantArgs:  map[string]any{"end_date": 1},
		},
		{
			name:      "unknown operator",
			filter:    dto.Filter{Field: "id", Value: 1, Operator: "between"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
		{
			name:      "not eq",
			filter:    dto.Filter{Field: "requester_id", Value: int64(2), Operator: dto.FilterOperatorNotEq},
			wantWhere: "requester_id != :requester_id",
			wantArgs:  map[string]any{"requester_id": int64(2)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "available", Value: true, Operator: dto.FilterOperatorEq},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "name", ArgName: "search_name", Value: "x", Operator: dto.FilterOperatorLike},
					dto.Filter{Field: "description", ArgName: "search_description", Value: "x", Operator: dto.FilterOperatorLike},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(available = :available AND (LOWER(name) LIKE LOWER(:search_name) OR LOWER(description) LIKE LOWER(:search_description)))", where)
	assert.Len(t, args, 3)

	empty := dto.FilterGroup{}
	where, args = empty.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestSortDirectionConstants(t *testing.T) {
	assert.Equal(t, "ASC", dto.SortDirAsc)
	assert.Equal(t, "DESC", dto.SortDirDesc)
}

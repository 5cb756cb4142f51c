package dto

import (
	"net/http"
	"shareit/shared/constant"
	"shareit/shared/failure"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams is an offset page plus ordering. A zero Size means no LIMIT.
type QueryParams struct {
	From    int    `json:"from"     validate:"gte=0"`
	Size    int    `json:"size"     validate:"gte=0"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads `from` and `size` from the query string, defaulting to 0 and 10.
// A negative from, a non-positive size or a non-numeric value is rejected.
func (q *QueryParams) FromRequest(r *http.Request) error {
	queryParams := r.URL.Query()

	q.From = constant.DefaultValueFrom
	q.Size = constant.DefaultValueSize

	if from := queryParams.Get(constant.RequestParamFrom); from != "" {
		fromInt, err := strconv.Atoi(from)
		if err != nil || fromInt < 0 {
			return failure.InvalidFromParam
		}

		q.From = fromInt
	}

	if size := queryParams.Get(constant.RequestParamSize); size != "" {
		sizeInt, err := strconv.Atoi(size)
		if err != nil || sizeInt <= 0 {
			return failure.InvalidSizeParam
		}

		q.Size = sizeInt
	}

	return nil
}

// OrderBy sets the ordering column and direction.
func (q QueryParams) OrderBy(column, dir string) QueryParams {
	q.SortBy = column

	if strings.ToUpper(dir) == SortDirAsc {
		q.SortDir = SortDirAsc
	} else {
		q.SortDir = SortDirDesc
	}

	return q
}

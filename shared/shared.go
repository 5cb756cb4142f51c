package shared

import (
	"fmt"
	"reflect"
	"shareit/shared/constant"
	"shareit/shared/dto"
	"shareit/shared/failure"
	"shareit/shared/timezone"
	"strconv"
	"strings"
)

// TransformFields turns a patch struct into the column map consumed by Repository.Update.
// Only fields with a db tag and a non-zero value are kept, pointers are dereferenced,
// and modified_at is always stamped.
func TransformFields(patch any) map[string]any {
	value := reflect.ValueOf(patch)
	typ := value.Type()
	fields := map[string]any{constant.FieldModifiedAt: timezone.Now()}

	for index := range typ.NumField() {
		column := typ.Field(index).Tag.Get("db")
		if column == "" || column == "-" {
			continue
		}

		current := value.Field(index)
		if current.IsZero() {
			continue
		}

		fields[column] = reflect.Indirect(current).Interface()
	}

	return fields
}

// FilterByID matches a single row on fieldID.
func FilterByID(id int64, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: fieldID, Value: id, Operator: dto.FilterOperatorEq, Table: table},
		},
	}
}

func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), constant.CacheKeySeparator)
}

// ParseID parses a positive numeric identifier. name is used in the error message.
func ParseID(value, name string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, failure.BadRequestFromString(fmt.Sprintf("%s must be a positive number", name)) //nolint:wrapcheck
	}

	return id, nil
}

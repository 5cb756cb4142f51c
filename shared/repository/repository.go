package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"shareit/infras/otel"
	"shareit/infras/postgres"
	"shareit/shared/constant"
	"shareit/shared/dto"
	"shareit/shared/logger"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
)

var (
	errRequiredFilter = errors.New("required filter")
)

// column is one selected column. Joined columns carry their own table and the alias they are
// scanned into.
type column struct {
	name  string
	table string
	alias string
}

// Repository is the sqlx persistence shared by every ShareIt entity. T is scanned by its db tags.
// Fields tagged with table and column come from the join returned by T's GetJoinQuery and are
// never written.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entity        string
	primaryColumn string
	columns       []column
	join          string
	InsertColumns []string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns, insertColumns := getColumns(tableName, reflect.TypeOf(zero))
	insertColumns = slices.DeleteFunc(insertColumns, func(col string) bool { return col == primaryColumn })

	join := ""
	if joiner, ok := any(zero).(interface{ GetJoinQuery() string }); ok {
		join = joiner.GetJoinQuery()
	}

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entity:        entityName,
		primaryColumn: primaryColumn,
		columns:       columns,
		join:          join,
		InsertColumns: insertColumns,
	}
}

func (repo *Repository[T]) scope(ctx context.Context, operation string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName,
		constant.OtelRepositoryScopeName+"."+repo.entity+"."+operation)
}

// run prepares query on db and hands the statement to exec. Failures are logged with their stack
// and wrapped with the action and entity name.
func (repo *Repository[T]) run(ctx context.Context, db *sqlx.DB, action, query string, exec func(*sqlx.NamedStmt) error) error {
	ctx, scope := repo.scope(ctx, action)
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	stmt, err := db.PrepareNamedContext(ctx, query)
	if err == nil {
		defer stmt.Close()

		err = exec(stmt)
	}

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to %s %s: %w", action, repo.entity, err)
	}

	return err
}

// Insert stores model and returns the generated primary key.
func (repo *Repository[T]) Insert(ctx context.Context, model T) (int64, error) {
	placeholders := make([]string, len(repo.InsertColumns))
	for i, col := range repo.InsertColumns {
		placeholders[i] = ":" + col
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		repo.table, strings.Join(repo.InsertColumns, ", "), strings.Join(placeholders, ", "), repo.primaryColumn)

	var id int64

	err := repo.run(ctx, repo.db.Write, "insert", query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &id, model)
	})

	return id, err
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	where, args := whereClause(filter)
	if where == "" {
		return false, errRequiredFilter
	}

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where)

	exist := false

	err := repo.run(ctx, repo.db.Read, "check", query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &exist, args)
	})

	return exist, err
}

// Get returns the first matching row, or the zero value when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	where, args := whereClause(filter)
	query := joinParts("SELECT", repo.selectList(columns), "FROM", repo.table, repo.join, where)

	var model T

	err := repo.run(ctx, repo.db.Read, "get", query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &model, args)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	return model, err
}

// GetAll returns every matching row, ordered and paged by params. A zero Size means no paging.
// The result is never nil.
func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	where, args := whereClause(filter)

	var ordering, pagination string

	if params.SortBy != "" && params.SortDir != "" {
		ordering = "ORDER BY " + params.SortBy + " " + params.SortDir
	}

	if params.Size > 0 {
		args["limit"] = params.Size
		args["offset"] = params.From

		pagination = "LIMIT :limit OFFSET :offset"
	}

	query := joinParts("SELECT", repo.selectList(columns), "FROM", repo.table, repo.join, where, ordering, pagination)

	models := []T{}

	err := repo.run(ctx, repo.db.Read, "list", query, func(stmt *sqlx.NamedStmt) error {
		return stmt.SelectContext(ctx, &models, args)
	})

	return models, err
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	where, args := whereClause(filter)
	if where == "" {
		return errRequiredFilter
	}

	query := fmt.Sprintf("DELETE FROM %s %s", repo.table, where)

	return repo.run(ctx, repo.db.Write, "delete", query, func(stmt *sqlx.NamedStmt) error {
		_, err := stmt.ExecContext(ctx, args)

		return err //nolint:wrapcheck
	})
}

func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	_, err := repo.UpdateAffected(ctx, mod, filter)

	return err
}

// UpdateAffected sets the columns in mod on every row matching filter and reports how many rows
// changed. Filters on a column that is also being set need their own ArgName.
func (repo *Repository[T]) UpdateAffected(ctx context.Context, mod map[string]any, filter dto.FilterGroup) (int64, error) {
	where, args := whereClause(filter)
	if where == "" {
		return 0, errRequiredFilter
	}

	assignments := make([]string, 0, len(mod))
	for _, col := range slices.Sorted(maps.Keys(mod)) {
		assignments = append(assignments, col+" = :"+col)
	}

	query := fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(assignments, ", "), where)
	maps.Copy(args, mod)

	var affected int64

	err := repo.run(ctx, repo.db.Write, "update", query, func(stmt *sqlx.NamedStmt) error {
		result, err := stmt.ExecContext(ctx, args)
		if err != nil {
			return err //nolint:wrapcheck
		}

		affected, err = result.RowsAffected()

		return err //nolint:wrapcheck
	})

	return affected, err
}

// selectList renders the select list, limited to the named columns when any are given.
func (repo *Repository[T]) selectList(only []string) string {
	selected := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col.name) {
			continue
		}

		switch {
		case col.alias != "":
			selected = append(selected, col.table+"."+col.name+" AS "+col.alias)
		default:
			selected = append(selected, col.table+"."+col.name)
		}
	}

	return strings.Join(selected, ", ")
}

func whereClause(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return "WHERE " + where, args
}

func joinParts(parts ...string) string {
	return strings.Join(slices.DeleteFunc(parts, func(part string) bool { return part == "" }), " ")
}

// getColumns reads db tags from t, descending into embedded structs such as model.Metadata.
// Only columns of table are insertable.
func getColumns(table string, t reflect.Type) (columns []column, insertColumns []string) {
	for i := range t.NumField() {
		field := t.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			col, insertCol := getColumns(table, field.Type)
			columns = append(columns, col...)
			insertColumns = append(insertColumns, insertCol...)

			continue
		}

		dbTag := field.Tag.Get("db")
		if dbTag == "" || dbTag == "-" {
			continue
		}

		source := field.Tag.Get("table")
		if source == "" {
			source = table
		}

		if source == table {
			insertColumns = append(insertColumns, dbTag)
		}

		if name := field.Tag.Get("column"); name != "" {
			columns = append(columns, column{name: name, table: source, alias: dbTag})
		} else {
			columns = append(columns, column{name: dbTag, table: source})
		}
	}

	return columns, insertColumns
}

// Package entity_repo provides PostgreSQL implementations for the
// soft-deletable entity repositories.
//
// Every read goes through an explicit scope; BaseRepo never emits a query on
// a soft-deletable table without the caller naming the view it wants.
package entity_repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"bakehouse/internal/core/apperror"
	"bakehouse/internal/core/entity"
	"bakehouse/internal/core/id"
	"bakehouse/internal/domain"
	"bakehouse/internal/domain/scope"
	"bakehouse/internal/infrastructure/storage/postgres"
)

// fkViolation is the PostgreSQL error code for foreign key violations,
// raised by ON DELETE RESTRICT references during a physical delete.
const fkViolation = "23503"

// BaseRepoConfig configures a BaseRepo.
type BaseRepoConfig[T entity.SoftDeletable] struct {
	TableName string

	// SelectCols lists the table columns; derive with postgres.ExtractDBColumns.
	SelectCols []string

	// SearchCols are the columns targeted by ListFilter.Search (optional).
	SearchCols []string

	// DefaultOrderBy is used when ListFilter.OrderBy is empty.
	// Defaults to "created_at DESC".
	DefaultOrderBy string

	New func() T
}

// BaseRepo provides scoped CRUD operations for a soft-deletable entity.
// Embed this in specific repositories.
type BaseRepo[T entity.SoftDeletable] struct {
	txm            *postgres.TxManager
	tableName      string
	selectCols     []string
	searchCols     []string
	defaultOrderBy string
	newFn          func() T
}

// NewBaseRepo creates a new base repository.
func NewBaseRepo[T entity.SoftDeletable](txm *postgres.TxManager, cfg BaseRepoConfig[T]) *BaseRepo[T] {
	orderBy := cfg.DefaultOrderBy
	if orderBy == "" {
		orderBy = "created_at DESC"
	}
	return &BaseRepo[T]{
		txm:            txm,
		tableName:      cfg.TableName,
		selectCols:     cfg.SelectCols,
		searchCols:     cfg.SearchCols,
		defaultOrderBy: orderBy,
		newFn:          cfg.New,
	}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *BaseRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Querier returns the transaction from context, or the pool.
func (r *BaseRepo[T]) Querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

// Create inserts a new entity using its "db" tags.
func (r *BaseRepo[T]) Create(ctx context.Context, e T) error {
	data := postgres.StructToMap(e)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	// Filter to only include columns that exist in DB
	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Insert(r.tableName).
		SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", r.tableName, err)
	}

	return nil
}

// baseSelect creates a SELECT builder over the table.
func (r *BaseRepo[T]) baseSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(r.selectCols...).
		From(r.tableName)
}

// scopedSelect creates a SELECT builder with the scope predicate applied.
func (r *BaseRepo[T]) scopedSelect(sc scope.Scope) (squirrel.SelectBuilder, error) {
	return sc.Apply(r.baseSelect())
}

// FindByID retrieves an entity by ID under the given scope.
func (r *BaseRepo[T]) FindByID(ctx context.Context, sc scope.Scope, entityID id.ID) (T, error) {
	e := r.newFn()

	q, err := r.scopedSelect(sc)
	if err != nil {
		return e, err
	}
	q = q.Where(squirrel.Eq{"id": entityID}).Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return e, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.Querier(ctx), e, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return e, apperror.NewNotFound(r.tableName, entityID.String())
		}
		return e, fmt.Errorf("get by id: %w", err)
	}

	return e, nil
}

// FindOne executes a scoped SELECT with extra predicates and returns a single
// entity. Missing rows surface as NOT_FOUND keyed by the table name.
func (r *BaseRepo[T]) FindOne(ctx context.Context, sc scope.Scope, preds ...squirrel.Sqlizer) (T, error) {
	e := r.newFn()

	q, err := r.scopedSelect(sc)
	if err != nil {
		return e, err
	}
	for _, p := range preds {
		q = q.Where(p)
	}
	q = q.Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return e, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.Querier(ctx), e, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return e, apperror.NewNotFound(r.tableName, "matching query")
		}
		return e, fmt.Errorf("find one: %w", err)
	}

	return e, nil
}

// SelectWhere executes a scoped SELECT with extra predicates, ordered by the
// repo default.
func (r *BaseRepo[T]) SelectWhere(ctx context.Context, sc scope.Scope, preds ...squirrel.Sqlizer) ([]T, error) {
	q, err := r.scopedSelect(sc)
	if err != nil {
		return nil, err
	}
	for _, p := range preds {
		q = q.Where(p)
	}
	q = q.OrderBy(r.defaultOrderBy)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []T
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select %s: %w", r.tableName, err)
	}

	return items, nil
}

// List retrieves entities with scope filtering and pagination.
func (r *BaseRepo[T]) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[T], error) {
	result := domain.ListResult[T]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	sc, err := scope.Parse(string(filter.Scope))
	if err != nil {
		return result, err
	}

	q, err := sc.Apply(r.baseSelect())
	if err != nil {
		return result, err
	}

	if filter.Search != "" && len(r.searchCols) > 0 {
		pattern := "%" + filter.Search + "%"
		or := make(squirrel.Or, 0, len(r.searchCols))
		for _, col := range r.searchCols {
			or = append(or, squirrel.ILike{col: pattern})
		}
		q = q.Where(or)
	}

	if len(filter.IDs) > 0 {
		q = q.Where(squirrel.Eq{"id": filter.IDs})
	}

	// Count total (before pagination)
	countQ := r.Builder().
		Select("COUNT(*)").
		FromSelect(q, "sub")

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.Querier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list: %w", err)
	}

	return result, nil
}

// Update modifies an existing entity with optimistic locking.
func (r *BaseRepo[T]) Update(ctx context.Context, e T) error {
	data := postgres.StructToMap(e)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	entityID, ok := data["id"]
	if !ok {
		return fmt.Errorf("entity has no 'id' field with db tag")
	}

	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("entity has no 'version' field or it is not an int")
	}

	// Exclude immutable fields from SET
	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" {
			continue // never update ID
		}
		if col == "version" {
			continue // version is managed by repo (optimistic locking)
		}
		if col == scope.Column {
			continue // deleted_at changes only through SoftDestroy/Restore
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Update(r.tableName).
		SetMap(filteredData).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"version": version}) // optimistic lock: expect current version

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.tableName, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(r.tableName, entityID)
	}

	return nil
}

// SoftDestroy sets deleted_at to the given timestamp via UPDATE. The write is
// unconditional on the current deleted_at value: re-deleting an
// already-deleted row overwrites the timestamp (last write wins).
func (r *BaseRepo[T]) SoftDestroy(ctx context.Context, entityID id.ID, at time.Time) error {
	q := r.Builder().
		Update(r.tableName).
		Set(scope.Column, at).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": entityID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build soft destroy: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("execute soft destroy %s: %w", r.tableName, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, entityID.String())
	}

	return nil
}

// SoftDestroyWhere soft-destroys every active row matching the predicate and
// returns their IDs. Already-deleted rows are skipped so an independently
// deleted dependent keeps its own timestamp through a parent cascade.
func (r *BaseRepo[T]) SoftDestroyWhere(ctx context.Context, pred squirrel.Sqlizer, at time.Time) ([]id.ID, error) {
	q := r.Builder().
		Update(r.tableName).
		Set(scope.Column, at).
		Set("version", squirrel.Expr("version + 1")).
		Where(pred).
		Where(squirrel.Eq{scope.Column: nil}).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build soft destroy where: %w", err)
	}

	rows, err := r.Querier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("execute soft destroy where %s: %w", r.tableName, err)
	}
	defer rows.Close()

	var ids []id.ID
	for rows.Next() {
		var entityID id.ID
		if err := rows.Scan(&entityID); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, entityID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("soft destroy where %s: %w", r.tableName, err)
	}

	return ids, nil
}

// Restore clears deleted_at via UPDATE.
func (r *BaseRepo[T]) Restore(ctx context.Context, entityID id.ID) error {
	q := r.Builder().
		Update(r.tableName).
		Set(scope.Column, nil).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": entityID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build restore: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("execute restore %s: %w", r.tableName, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, entityID.String())
	}

	return nil
}

// ForceDestroy performs physical removal from the database. Referencing rows
// are handled by the schema's ON DELETE rules; a RESTRICT hit surfaces as a
// conflict instead of a raw driver error.
func (r *BaseRepo[T]) ForceDestroy(ctx context.Context, entityID id.ID) error {
	q := r.Builder().
		Delete(r.tableName).
		Where(squirrel.Eq{"id": entityID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == fkViolation {
			return apperror.NewConflict("cannot delete: the record is referenced by other records").
				WithDetail("entity", r.tableName).
				WithDetail("id", entityID.String()).
				WithCause(err)
		}
		return fmt.Errorf("execute delete %s: %w", r.tableName, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, entityID.String())
	}

	return nil
}

// ExistsActive reports whether an active (non-deleted) row matching the
// predicate exists, excluding the given ID. Backs the unique-among-active
// checks that run inside create/update transactions.
func (r *BaseRepo[T]) ExistsActive(ctx context.Context, pred squirrel.Sqlizer, excludeID id.ID) (bool, error) {
	q := r.Builder().
		Select("1").
		From(r.tableName).
		Where(pred).
		Where(squirrel.Eq{scope.Column: nil}).
		Limit(1)

	if !id.IsNil(excludeID) {
		q = q.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists int
	err = r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists active: %w", err)
	}

	return true, nil
}

func (r *BaseRepo[T]) parseOrderBy(orderBy string) (string, error) {
	if orderBy == "" {
		return r.defaultOrderBy, nil
	}

	allowed := make(map[string]struct{}, len(r.selectCols))
	for _, col := range r.selectCols {
		allowed[col] = struct{}{}
	}

	// Support "-field" for DESC.
	direction := "ASC"
	field := orderBy
	if strings.HasPrefix(orderBy, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(orderBy, "-")
	} else if strings.HasPrefix(orderBy, "+") {
		field = strings.TrimPrefix(orderBy, "+")
	}

	field = strings.TrimSpace(field)
	if field == "" {
		return "", apperror.NewValidation("invalid orderBy").WithDetail("orderBy", orderBy)
	}

	if _, ok := allowed[field]; !ok {
		return "", apperror.NewValidation("invalid orderBy").WithDetail("orderBy", orderBy).WithDetail("field", field)
	}

	return field + " " + direction, nil
}

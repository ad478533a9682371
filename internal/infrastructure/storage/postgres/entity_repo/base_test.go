package entity_repo

import (
	"testing"
	"time"

	"github.com/Masterminds/squirrel"

	"bakehouse/internal/core/entity"
	"bakehouse/internal/core/id"
	"bakehouse/internal/domain/scope"
)

type testEntity struct {
	entity.BaseEntity
	Name string `db:"name"`
}

func newTestRepo() *BaseRepo[*testEntity] {
	return NewBaseRepo(nil, BaseRepoConfig[*testEntity]{
		TableName:  "test_table",
		SelectCols: []string{"id", "deleted_at", "version", "name"},
		New:        func() *testEntity { return &testEntity{} },
	})
}

func TestBaseRepo_ScopedSelect_SQL(t *testing.T) {
	repo := newTestRepo()

	cases := []struct {
		name    string
		scope   scope.Scope
		wantSQL string
	}{
		{
			name:    "default excludes deleted rows",
			scope:   scope.Default,
			wantSQL: "SELECT id, deleted_at, version, name FROM test_table WHERE deleted_at IS NULL",
		},
		{
			name:    "onlyDeleted selects deleted rows",
			scope:   scope.OnlyDeleted,
			wantSQL: "SELECT id, deleted_at, version, name FROM test_table WHERE deleted_at IS NOT NULL",
		},
		{
			name:    "withDeleted adds no predicate",
			scope:   scope.WithDeleted,
			wantSQL: "SELECT id, deleted_at, version, name FROM test_table",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := repo.scopedSelect(tc.scope)
			if err != nil {
				t.Fatalf("scopedSelect failed: %v", err)
			}
			sql, _, err := q.ToSql()
			if err != nil {
				t.Fatalf("ToSql failed: %v", err)
			}
			if sql != tc.wantSQL {
				t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", tc.wantSQL, sql)
			}
		})
	}
}

func TestBaseRepo_SoftDestroy_SQL(t *testing.T) {
	repo := newTestRepo()
	entityID := id.New()
	at := time.Now().UTC()

	// SoftDestroy carries no deleted_at predicate: re-deleting an
	// already-deleted row overwrites the timestamp.
	q := repo.Builder().
		Update(repo.tableName).
		Set(scope.Column, at).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": entityID})

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "UPDATE test_table SET deleted_at = $1, version = version + 1 WHERE id = $2"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	// squirrel resolves driver.Valuer args, so the id arrives as its string form.
	if len(args) != 2 || args[0] != at || args[1] != entityID.String() {
		t.Errorf("Args mismatch\nwant: [%v %v]\ngot:  %v", at, entityID, args)
	}
}

func TestBaseRepo_SoftDestroyWhere_SQL(t *testing.T) {
	repo := newTestRepo()
	orderID := id.New()
	at := time.Now().UTC()

	// The bulk variant only touches active rows and reports what it touched.
	q := repo.Builder().
		Update(repo.tableName).
		Set(scope.Column, at).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"order_id": orderID}).
		Where(squirrel.Eq{scope.Column: nil}).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "UPDATE test_table SET deleted_at = $1, version = version + 1 WHERE order_id = $2 AND deleted_at IS NULL RETURNING id"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 2 {
		t.Errorf("Args mismatch\ngot: %v", args)
	}
}

func TestBaseRepo_Restore_SQL(t *testing.T) {
	repo := newTestRepo()
	entityID := id.New()

	q := repo.Builder().
		Update(repo.tableName).
		Set(scope.Column, nil).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": entityID})

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "UPDATE test_table SET deleted_at = $1, version = version + 1 WHERE id = $2"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if args[0] != nil {
		t.Errorf("restore must write NULL, got %v", args[0])
	}
}

func TestBaseRepo_ForceDestroy_SQL(t *testing.T) {
	repo := newTestRepo()
	entityID := id.New()

	q := repo.Builder().
		Delete(repo.tableName).
		Where(squirrel.Eq{"id": entityID})

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "DELETE FROM test_table WHERE id = $1"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 1 || args[0] != entityID.String() {
		t.Errorf("Args mismatch\nwant: [%v]\ngot:  %v", entityID, args)
	}
}

func TestBaseRepo_ExistsActive_SQL(t *testing.T) {
	repo := newTestRepo()
	excludeID := id.New()

	q := repo.Builder().
		Select("1").
		From(repo.tableName).
		Where(squirrel.Eq{"sku": "BRD-001"}).
		Where(squirrel.Eq{scope.Column: nil}).
		Limit(1).
		Where(squirrel.NotEq{"id": excludeID})

	sql, _, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "SELECT 1 FROM test_table WHERE sku = $1 AND deleted_at IS NULL AND id <> $2 LIMIT 1"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
}

func TestBaseRepo_ParseOrderBy(t *testing.T) {
	repo := newTestRepo()

	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: "created_at DESC"},
		{in: "name", want: "name ASC"},
		{in: "-name", want: "name DESC"},
		{in: "+name", want: "name ASC"},
		{in: "deleted_at", want: "deleted_at ASC"},
		{in: "nope", wantErr: true},
		{in: "-", wantErr: true},
		{in: "name; DROP TABLE test_table", wantErr: true},
	}

	for _, tc := range cases {
		got, err := repo.parseOrderBy(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseOrderBy(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseOrderBy(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseOrderBy(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

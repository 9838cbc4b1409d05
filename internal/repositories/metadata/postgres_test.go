package metadata

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/metakv/internal/common"
	"github.com/dmitrijs2005/metakv/internal/logging"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db, logging.NewTextLogger(io.Discard, "error")), mock, db
}

func TestPostgresSet_AtomicUpsertStatement(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+metadata\s*\(key,\s*value\)\s*VALUES\s*\(\$1,\s*\$2\)\s*ON\s+CONFLICT\s*\(key\)\s*DO\s+UPDATE\s+SET\s+value\s*=\s*EXCLUDED\.value;\s*$`

	mock.ExpectExec(q).
		WithArgs("app.name", "inventory").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Set(context.Background(), "app.name", "inventory"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresSet_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+metadata\s*\(key,\s*value\)\s*VALUES\s*\(\$1,\s*\$2\)\s*ON\s+CONFLICT\s*\(key\)\s*DO\s+UPDATE\s+SET\s+value\s*=\s*EXCLUDED\.value;\s*$`

	mock.ExpectExec(q).
		WithArgs("app.name", "inventory").
		WillReturnError(errors.New("db is down"))

	err := repo.Set(context.Background(), "app.name", "inventory")
	if err == nil || !regexp.MustCompile(`db error: .*db is down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestPostgresSet_ValidationShortCircuits(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	// никаких ожиданий не задано: любое обращение к базе провалило бы тест
	err := repo.Set(context.Background(), strings.Repeat("k", MaxKeyLen+1), "v")
	if !errors.Is(err, common.ErrorKeyTooLong) {
		t.Fatalf("want common.ErrorKeyTooLong, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresGet_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+value\s+FROM\s+metadata\s+WHERE\s+key\s*=\s*\$1\s*$`

	rows := sqlmock.NewRows([]string{"value"}).AddRow("inventory")
	mock.ExpectQuery(q).
		WithArgs("app.name").
		WillReturnRows(rows)

	got, err := repo.Get(context.Background(), "app.name")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got != "inventory" {
		t.Fatalf("unexpected value: %q", got)
	}
}

func TestPostgresGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+value\s+FROM\s+metadata\s+WHERE\s+key\s*=\s*\$1\s*$`

	mock.ExpectQuery(q).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, err := repo.Get(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestPostgresGet_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+value\s+FROM\s+metadata\s+WHERE\s+key\s*=\s*\$1\s*$`

	mock.ExpectQuery(q).
		WithArgs("app.name").
		WillReturnError(errors.New("db err"))

	_, err := repo.Get(context.Background(), "app.name")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestPostgresDelete_IgnoresAffectedCount(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+metadata\s+WHERE\s+key\s*=\s*\$1\s*$`

	// нулевое число затронутых строк тоже успех
	mock.ExpectExec(q).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "ghost"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresDelete_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+metadata\s+WHERE\s+key\s*=\s*\$1\s*$`

	mock.ExpectExec(q).
		WithArgs("app.name").
		WillReturnError(errors.New("db is down"))

	err := repo.Delete(context.Background(), "app.name")
	if err == nil || !regexp.MustCompile(`db error: .*db is down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestPostgresList_OrdersWithCCollation(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+key,\s*value\s+FROM\s+metadata\s+ORDER\s+BY\s+key\s+COLLATE\s+"C"\s*$`

	rows := sqlmock.NewRows([]string{"key", "value"}).
		AddRow("apple", "1").
		AddRow("banana", "2")
	mock.ExpectQuery(q).WillReturnRows(rows)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].Key != "apple" || got[1].Key != "banana" {
		t.Fatalf("unexpected records: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresList_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+key,\s*value\s+FROM\s+metadata\s+ORDER\s+BY\s+key\s+COLLATE\s+"C"\s*$`

	mock.ExpectQuery(q).WillReturnError(errors.New("db is down"))

	_, err := repo.List(context.Background())
	if err == nil || !regexp.MustCompile(`db error: .*db is down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestPostgresList_RowIterationError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+key,\s*value\s+FROM\s+metadata\s+ORDER\s+BY\s+key\s+COLLATE\s+"C"\s*$`

	rows := sqlmock.NewRows([]string{"key", "value"}).
		AddRow("apple", "1").
		AddRow("banana", "2").
		RowError(1, errors.New("row gone"))
	mock.ExpectQuery(q).WillReturnRows(rows)

	_, err := repo.List(context.Background())
	if err == nil || !strings.Contains(err.Error(), "row gone") {
		t.Fatalf("expected row iteration error, got %v", err)
	}
}

func TestPostgresFind_PatternQuery(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+key,\s*value\s+FROM\s+metadata\s+WHERE\s+key\s+LIKE\s+\$1\s+ORDER\s+BY\s+key\s+COLLATE\s+"C"\s*$`

	rows := sqlmock.NewRows([]string{"key", "value"}).
		AddRow("app.name", "inventory").
		AddRow("app.version", "2.1")
	mock.ExpectQuery(q).
		WithArgs("app.%").
		WillReturnRows(rows)

	got, err := repo.Find(context.Background(), "app.%")
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if len(got) != 2 || got[0].Key != "app.name" || got[1].Value != "2.1" {
		t.Fatalf("unexpected records: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresFind_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+key,\s*value\s+FROM\s+metadata\s+WHERE\s+key\s+LIKE\s+\$1\s+ORDER\s+BY\s+key\s+COLLATE\s+"C"\s*$`

	mock.ExpectQuery(q).
		WithArgs("app.%").
		WillReturnError(errors.New("db err"))

	_, err := repo.Find(context.Background(), "app.%")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

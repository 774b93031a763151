package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/rajasatyajit/ReliefOps/internal/models"
)

type mockDB struct {
	ExecFn     func(ctx context.Context, sql string, args ...any) error
	QueryFn    func(ctx context.Context, sql string, args ...any) (interface{}, error)
	QueryRowFn func(ctx context.Context, sql string, args ...any) interface{}
}

func (m *mockDB) Exec(ctx context.Context, sql string, args ...any) error {
	if m.ExecFn != nil {
		return m.ExecFn(ctx, sql, args...)
	}
	return nil
}
func (m *mockDB) Query(ctx context.Context, sql string, args ...any) (interface{}, error) {
	if m.QueryFn != nil {
		return m.QueryFn(ctx, sql, args...)
	}
	return nil, nil
}
func (m *mockDB) QueryRow(ctx context.Context, sql string, args ...any) interface{} {
	if m.QueryRowFn != nil {
		return m.QueryRowFn(ctx, sql, args...)
	}
	return nil
}
func (m *mockDB) Health(ctx context.Context) error { return nil }
func (m *mockDB) IsConfigured() bool               { return true }

func TestPostgresStore_Migrate(t *testing.T) {
	var gotSQL string
	db := &mockDB{ExecFn: func(ctx context.Context, sql string, args ...any) error {
		gotSQL = sql
		return nil
	}}
	if err := NewPostgresStore(db).Migrate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gotSQL, "CREATE TABLE IF NOT EXISTS events") {
		t.Errorf("unexpected migrate SQL: %s", gotSQL)
	}
}

func TestPostgresStore_UpsertEvents_Empty(t *testing.T) {
	s := NewPostgresStore(&mockDB{})
	if err := s.UpsertEvents(context.Background(), []models.Event{}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestPostgresStore_UpsertEvents_BuildsQueryAndPropagatesError(t *testing.T) {
	var gotSQL string
	db := &mockDB{ExecFn: func(ctx context.Context, sql string, args ...any) error {
		gotSQL = sql
		return errors.New("exec failure")
	}}
	s := NewPostgresStore(db)

	err := s.UpsertEvents(context.Background(), []models.Event{{ID: "ev-1", DisasterType: "flood"}})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "upsert event ev-1") {
		t.Errorf("wrap missing: %v", err)
	}
	if !strings.Contains(gotSQL, "INSERT INTO events") || !strings.Contains(gotSQL, "ON CONFLICT (id)") {
		t.Errorf("unexpected SQL: %s", gotSQL)
	}
}

func TestPostgresStore_QueryEvents_FiltersAppearInSQL(t *testing.T) {
	var gotSQL string
	var gotArgs []any
	db := &mockDB{QueryFn: func(ctx context.Context, sql string, args ...any) (interface{}, error) {
		gotSQL = sql
		gotArgs = args
		return nil, errors.New("stop here")
	}}
	s := NewPostgresStore(db)

	q := models.EventQuery{
		Types:      []string{"earthquake"},
		Severities: []string{"high"},
		Locations:  []string{"tokyo"},
		Since:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Limit:      10,
		Offset:     5,
	}
	_, _ = s.QueryEvents(context.Background(), q)

	for _, fragment := range []string{
		"disaster_type = ANY",
		"severity = ANY",
		"location = ANY",
		"published_at >=",
		"ORDER BY published_at DESC",
		"LIMIT",
		"OFFSET",
	} {
		if !strings.Contains(gotSQL, fragment) {
			t.Errorf("expected SQL to contain %q:\n%s", fragment, gotSQL)
		}
	}
	if len(gotArgs) != 6 {
		t.Errorf("expected 6 bound args, got %d", len(gotArgs))
	}
}

func TestPostgresStore_QueryEvents_ErrorFromDB(t *testing.T) {
	db := &mockDB{QueryFn: func(ctx context.Context, sql string, args ...any) (interface{}, error) {
		return nil, errors.New("db error")
	}}
	s := NewPostgresStore(db)

	_, err := s.QueryEvents(context.Background(), models.EventQuery{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "query events") {
		t.Errorf("wrap missing: %v", err)
	}
}

func TestPostgresStore_QueryEvents_InvalidRowsType(t *testing.T) {
	db := &mockDB{QueryFn: func(ctx context.Context, sql string, args ...any) (interface{}, error) {
		return 123, nil
	}}
	s := NewPostgresStore(db)

	_, err := s.QueryEvents(context.Background(), models.EventQuery{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "invalid rows type") {
		t.Errorf("got %v", err)
	}
}

type fakeRow struct{ err error }

func (r fakeRow) Scan(dest ...any) error { return r.err }

func TestPostgresStore_GetEvent_InvalidRowType(t *testing.T) {
	db := &mockDB{QueryRowFn: func(ctx context.Context, sql string, args ...any) interface{} {
		return 123
	}}
	s := NewPostgresStore(db)

	_, err := s.GetEvent(context.Background(), "x")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "invalid row type") {
		t.Errorf("got %v", err)
	}
}

func TestPostgresStore_GetEvent_NoRows(t *testing.T) {
	db := &mockDB{QueryRowFn: func(ctx context.Context, sql string, args ...any) interface{} {
		return fakeRow{err: pgx.ErrNoRows}
	}}
	s := NewPostgresStore(db)

	res, err := s.GetEvent(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res != nil {
		t.Fatalf("expected nil, got %+v", res)
	}
}

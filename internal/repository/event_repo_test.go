package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"solartap/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func testCtx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

func TestEventAppend_Success_WithDefaults(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func(db *sql.DB) { _ = db.Close() }(db)

	repo := NewEventSQLite(db)

	// Generated id and timestamp are unknown; match the statement and the
	// normalized type/message.
	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO session_events (id, occurred_at, type, message, meta)
		VALUES (?, ?, ?, ?, ?)
	`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(),
			"MODE_CHANGE", "entered command mode",
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Append(testCtx(t), models.SessionEvent{
		// EventID empty -> repo generates
		// OccurredAt zero -> repo sets UTC now
		Type:        "  mode_change ",
		Description: "entered command mode",
		Metadata:    map[string]any{"from": "MONITORING"},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestEventAppend_DBError(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func(db *sql.DB) { _ = db.Close() }(db)

	repo := NewEventSQLite(db)

	mock.ExpectExec("INSERT INTO session_events").
		WillReturnError(errors.New("down"))

	err = repo.Append(testCtx(t), models.SessionEvent{
		Type:        "error",
		Description: "x",
	})
	if err == nil || !strings.Contains(err.Error(), "down") {
		t.Fatalf("expected error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestEventList_NoFilters_And_MetadataParsing(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func(db *sql.DB) { _ = db.Close() }(db)

	repo := NewEventSQLite(db)

	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	js, _ := json.Marshal(map[string]any{"id": 3})

	rows := sqlmock.NewRows([]string{"id", "occurred_at", "type", "message", "meta"}).
		AddRow("1", now, "EXPERIMENT_START", "experiment 3 recording", string(js)).
		AddRow("2", now.Add(time.Hour), "EXPERIMENT_STOP", "experiment 3 stopped", nil)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, occurred_at, type, message, meta FROM session_events ORDER BY occurred_at ASC`)).
		WillReturnRows(rows)

	got, err := repo.List(testCtx(t), time.Time{}, time.Time{}, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2, got %d", len(got))
	}
	if got[0].EventID != "1" || got[1].EventID != "2" {
		t.Fatalf("unexpected ids: %v, %v", got[0].EventID, got[1].EventID)
	}
	b1, _ := json.Marshal(got[0].Metadata)
	if string(b1) != string(js) {
		t.Fatalf("metadata mismatch: %s vs %s", string(b1), string(js))
	}
	if got[1].Metadata != nil {
		t.Fatalf("expected nil meta, got %#v", got[1].Metadata)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestEventList_WithFilters_OrderAndArgs(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func(db *sql.DB) { _ = db.Close() }(db)

	repo := NewEventSQLite(db)

	from := time.Date(2026, 8, 1, 11, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	typ := " command " // normalized to COMMAND

	query := `SELECT id, occurred_at, type, message, meta FROM session_events WHERE occurred_at >= ? AND occurred_at <= ? AND type = ? ORDER BY occurred_at ASC`

	rows := sqlmock.NewRows([]string{"id", "occurred_at", "type", "message", "meta"}).
		AddRow("2", from, "COMMAND", "sent to device: shader open", nil).
		AddRow("3", to, "COMMAND", "sent to device: shader close", nil)

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(from.UTC(), to.UTC(), "COMMAND").
		WillReturnRows(rows)

	got, err := repo.List(testCtx(t), from, to, typ)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2, got %d", len(got))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

package store

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"attendsheet/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "data", "attendsheet.db"), nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestUploadLogLifecycle(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateUploadLog("u-1", "sess-a", "roster.xlsx", 2048, "abc")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	logs, err := s.ListUploadLogs("sess-a", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(logs) != 1 || logs[0].Status != UploadProcessing || logs[0].CompletedAt != nil {
		t.Fatalf("unexpected logs: %+v", logs)
	}

	err = s.FinishUploadLog(id, UploadOutcome{
		Status:         UploadOK,
		InputSheet:     "Sheet1",
		WeekColumns:    3,
		ProcessedWeeks: 2,
		LatestWeek:     "2025年3月第二週",
	})
	if err != nil {
		t.Fatalf("finish: %v", err)
	}

	if _, err := s.CreateUploadLog("u-2", "sess-a", "empty.xlsx", 10, "def"); err != nil {
		t.Fatalf("create second: %v", err)
	}
	logs, err = s.ListUploadLogs("sess-a", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(logs) != 2 || logs[0].UploadID != "u-2" {
		t.Fatalf("expected newest first: %+v", logs)
	}
	done := logs[1]
	if done.Status != UploadOK || done.ProcessedWeeks != 2 || done.LatestWeek != "2025年3月第二週" || done.CompletedAt == nil {
		t.Fatalf("finish not persisted: %+v", done)
	}

	if _, err := s.CreateUploadLog("u-1", "sess-a", "dup.xlsx", 1, "x"); err == nil {
		t.Fatalf("upload id must be unique")
	}

	if _, err := s.CreateUploadLog("u-3", "sess-b", "other.xlsx", 1, "y"); err != nil {
		t.Fatalf("create other session: %v", err)
	}
	logs, err = s.ListUploadLogs("sess-a", 10)
	if err != nil || len(logs) != 2 {
		t.Fatalf("other session leaked into history: %+v err=%v", logs, err)
	}
	logs, err = s.ListUploadLogs("sess-b", 10)
	if err != nil || len(logs) != 1 || logs[0].UploadID != "u-3" || logs[0].SessionID != "sess-b" {
		t.Fatalf("sess-b logs=%+v err=%v", logs, err)
	}
}

func TestWeekSummaries(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.CreateUploadLog("u-1", "sess-a", "roster.xlsx", 1, "h"); err != nil {
		t.Fatalf("create: %v", err)
	}
	weeks := []*model.WeekResult{
		{
			Label:        "2025年3月第一週",
			Date:         time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC),
			SheetName:    "2025年3月第一週 主日",
			MainDistrict: "二大區",
			Snapshot: model.Snapshot{
				Attended:    map[string][]string{"二大區一": {"A", "C"}},
				NotAttended: map[string][]string{"二大區一": {"B"}},
			},
		},
		{
			Label:     "2025年3月第二週",
			Date:      time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
			SheetName: "2025年3月第二週 主日",
			Snapshot: model.Snapshot{
				Attended:    map[string][]string{"二大區一": {"B", "C"}},
				NotAttended: map[string][]string{"二大區一": {"A"}},
			},
		},
	}
	if err := s.SaveWeekSummaries("u-1", weeks); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.ListWeekSummaries("sess-a", "u-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("rows=%d", len(got))
	}
	if got[0].WeekDate != "2025-03-07" || got[0].Attended != 2 || got[0].Absent != 1 || got[0].MainDistrict != "二大區" {
		t.Fatalf("unexpected first row: %+v", got[0])
	}
	if got[1].WeekLabel != "2025年3月第二週" {
		t.Fatalf("unexpected order: %+v", got)
	}

	if rows, err := s.ListWeekSummaries("sess-b", "u-1"); err != nil || len(rows) != 0 {
		t.Fatalf("summaries visible to another session: %+v err=%v", rows, err)
	}

	if err := s.SaveWeekSummaries("missing", weeks); err == nil {
		t.Fatalf("expected foreign key violation for unknown upload")
	}
	if rows, _ := s.ListWeekSummaries("sess-a", "missing"); len(rows) != 0 {
		t.Fatalf("failed save must not leave rows: %+v", rows)
	}
}

func TestNew_AddsSessionColumnToOldDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attendsheet.db")
	old, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := old.Exec(`
		CREATE TABLE upload_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			upload_id TEXT NOT NULL UNIQUE,
			filename TEXT NOT NULL,
			file_size INTEGER NOT NULL DEFAULT 0,
			file_hash TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'processing',
			input_sheet TEXT NOT NULL DEFAULT '',
			week_columns INTEGER NOT NULL DEFAULT 0,
			processed_weeks INTEGER NOT NULL DEFAULT 0,
			latest_week TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			completed_at DATETIME
		);
		INSERT INTO upload_logs (upload_id, filename) VALUES ('old-1', 'old.xlsx');
	`); err != nil {
		t.Fatalf("seed old schema: %v", err)
	}
	_ = old.Close()

	s, err := New(path, nil)
	if err != nil {
		t.Fatalf("new store on old db: %v", err)
	}
	defer s.Close()

	if logs, err := s.ListUploadLogs("", 10); err != nil || len(logs) != 1 || logs[0].UploadID != "old-1" {
		t.Fatalf("old rows should keep an empty session: %+v err=%v", logs, err)
	}
	if _, err := s.CreateUploadLog("u-1", "sess-a", "new.xlsx", 1, "h"); err != nil {
		t.Fatalf("create after migration: %v", err)
	}
}

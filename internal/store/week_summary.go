package store

import (
	"fmt"

	"attendsheet/internal/model"
)

// WeekSummary 单周汇总记录
type WeekSummary struct {
	UploadID     string `json:"uploadId"`
	WeekLabel    string `json:"weekLabel"`
	WeekDate     string `json:"weekDate"`
	SheetName    string `json:"sheetName"`
	MainDistrict string `json:"mainDistrict"`
	Attended     int    `json:"attended"`
	Absent       int    `json:"absent"`
}

const weekDateLayout = "2006-01-02"

// SaveWeekSummaries 在一个事务中写入一次上传的全部周汇总
func (s *Store) SaveWeekSummaries(uploadID string, weeks []*model.WeekResult) error {
	tx, err := s.BeginTx()
	if err != nil {
		return fmt.Errorf("begin tx failed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT INTO week_summaries (upload_id, week_label, week_date, sheet_name, main_district, attended, absent)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare week summary insert failed: %w", err)
	}
	defer stmt.Close()

	for _, w := range weeks {
		if _, err := stmt.Exec(uploadID, w.Label, w.Date.Format(weekDateLayout), w.SheetName,
			w.MainDistrict, w.Snapshot.AttendedTotal(), w.Snapshot.AbsentTotal()); err != nil {
			return fmt.Errorf("insert week summary %s failed: %w", w.Label, err)
		}
	}
	return tx.Commit()
}

// ListWeekSummaries 某会话某次上传的周汇总（按日期升序），其他会话的上传查不到
func (s *Store) ListWeekSummaries(sessionID, uploadID string) ([]WeekSummary, error) {
	rows, err := s.db.Query(`
		SELECT w.upload_id, w.week_label, w.week_date, w.sheet_name, w.main_district, w.attended, w.absent
		FROM week_summaries w
		JOIN upload_logs u ON u.upload_id = w.upload_id
		WHERE w.upload_id = ? AND u.session_id = ?
		ORDER BY w.week_date ASC, w.id ASC
	`, uploadID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query week summaries failed: %w", err)
	}
	defer rows.Close()

	var out []WeekSummary
	for rows.Next() {
		var it WeekSummary
		if err := rows.Scan(&it.UploadID, &it.WeekLabel, &it.WeekDate, &it.SheetName,
			&it.MainDistrict, &it.Attended, &it.Absent); err != nil {
			return nil, fmt.Errorf("scan week summary failed: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate week summaries failed: %w", err)
	}
	return out, nil
}

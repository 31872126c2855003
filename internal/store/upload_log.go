package store

import (
	"database/sql"
	"fmt"
	"time"
)

// 上传状态
const (
	UploadProcessing = "processing"
	UploadOK         = "ok"
	UploadNoData     = "no_data"
	UploadFailed     = "failed"
)

// UploadLog 上传记录
type UploadLog struct {
	ID             int64      `json:"id"`
	UploadID       string     `json:"uploadId"`
	SessionID      string     `json:"-"`
	Filename       string     `json:"filename"`
	FileSize       int64      `json:"fileSize"`
	FileHash       string     `json:"fileHash"`
	Status         string     `json:"status"`
	InputSheet     string     `json:"inputSheet"`
	WeekColumns    int        `json:"weekColumns"`
	ProcessedWeeks int        `json:"processedWeeks"`
	LatestWeek     string     `json:"latestWeek"`
	Message        string     `json:"message"`
	CreatedAt      time.Time  `json:"createdAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
}

// UploadOutcome 上传处理结果摘要
type UploadOutcome struct {
	Status         string
	InputSheet     string
	WeekColumns    int
	ProcessedWeeks int
	LatestWeek     string
	Message        string
}

// CreateUploadLog 创建上传记录，返回自增 id
func (s *Store) CreateUploadLog(uploadID, sessionID, filename string, fileSize int64, fileHash string) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO upload_logs (upload_id, session_id, filename, file_size, file_hash, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`, uploadID, sessionID, filename, fileSize, fileHash, UploadProcessing)
	if err != nil {
		return 0, fmt.Errorf("failed to create upload log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get upload log id: %w", err)
	}
	return id, nil
}

// FinishUploadLog 完成上传记录
func (s *Store) FinishUploadLog(id int64, out UploadOutcome) error {
	_, err := s.db.Exec(`
		UPDATE upload_logs SET
			status = ?,
			input_sheet = ?,
			week_columns = ?,
			processed_weeks = ?,
			latest_week = ?,
			message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, out.Status, out.InputSheet, out.WeekColumns, out.ProcessedWeeks, out.LatestWeek, out.Message, id)
	if err != nil {
		return fmt.Errorf("failed to finish upload log: %w", err)
	}
	return nil
}

// ListUploadLogs 某个会话最近的上传记录（新到旧）
func (s *Store) ListUploadLogs(sessionID string, limit int) ([]UploadLog, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, upload_id, session_id, filename, file_size, file_hash, status, input_sheet,
			week_columns, processed_weeks, latest_week, message, created_at, completed_at
		FROM upload_logs
		WHERE session_id = ?
		ORDER BY id DESC
		LIMIT ?
	`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("query upload logs failed: %w", err)
	}
	defer rows.Close()

	var out []UploadLog
	for rows.Next() {
		var it UploadLog
		var completed sql.NullTime
		if err := rows.Scan(&it.ID, &it.UploadID, &it.SessionID, &it.Filename, &it.FileSize, &it.FileHash, &it.Status,
			&it.InputSheet, &it.WeekColumns, &it.ProcessedWeeks, &it.LatestWeek, &it.Message,
			&it.CreatedAt, &completed); err != nil {
			return nil, fmt.Errorf("scan upload log failed: %w", err)
		}
		if completed.Valid {
			t := completed.Time
			it.CompletedAt = &t
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate upload logs failed: %w", err)
	}
	return out, nil
}

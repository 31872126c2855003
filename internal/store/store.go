package store

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

//go:embed schema.sql
var schemaFS embed.FS

// Store SQLite 存储层：上传记录与周汇总
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// New 创建新的 Store 实例
func New(dbPath string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// 确保 data 目录存在
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// 打开数据库连接；外键约束需按连接开启
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// 测试连接
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// 设置连接池参数
	db.SetMaxOpenConns(1) // SQLite 建议单连接
	db.SetMaxIdleConns(1)

	store := &Store{db: db, logger: logger}

	// 初始化数据库结构
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info("database ready", zap.String("path", dbPath))
	return store, nil
}

// initSchema 初始化数据库结构
func (s *Store) initSchema() error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema.sql: %w", err)
	}

	// 旧库先补列，再执行建表与建索引
	if err := s.addUploadSessionColumn(); err != nil {
		return err
	}

	// 执行建表语句
	if _, err := s.db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// addUploadSessionColumn 为缺少 session_id 的旧 upload_logs 表补列
func (s *Store) addUploadSessionColumn() error {
	rows, err := s.db.Query(`SELECT name FROM pragma_table_info('upload_logs')`)
	if err != nil {
		return fmt.Errorf("failed to inspect upload_logs: %w", err)
	}
	exists, hasSession := false, false
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return fmt.Errorf("failed to inspect upload_logs: %w", err)
		}
		exists = true
		if name == "session_id" {
			hasSession = true
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to inspect upload_logs: %w", err)
	}
	if !exists || hasSession {
		return nil
	}

	if _, err := s.db.Exec(`ALTER TABLE upload_logs ADD COLUMN session_id TEXT NOT NULL DEFAULT ''`); err != nil {
		return fmt.Errorf("failed to add upload_logs.session_id: %w", err)
	}
	s.logger.Info("upload_logs migrated", zap.String("column", "session_id"))
	return nil
}

// Close 关闭数据库连接
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// BeginTx 开始事务
func (s *Store) BeginTx() (*sql.Tx, error) {
	return s.db.Begin()
}

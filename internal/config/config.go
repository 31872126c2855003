package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Server     ServerConfig     `toml:"server"`
	Data       DataConfig       `toml:"data"`
	Attendance AttendanceConfig `toml:"attendance"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port              int  `toml:"port"`
	DevMode           bool `toml:"dev_mode"`
	MaxUploadMB       int  `toml:"max_upload_mb"`
	SessionTTLMinutes int  `toml:"session_ttl_minutes"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// AttendanceConfig 点名表布局配置；列索引均为 0 基
type AttendanceConfig struct {
	StartColumn        int      `toml:"start_column"`
	HeaderRows         int      `toml:"header_rows"`
	DefaultMonth       string   `toml:"default_month"`
	MainDistrictColumn int      `toml:"main_district_column"`
	SubDistrictColumn  int      `toml:"sub_district_column"`
	NameColumn         int      `toml:"name_column"`
	AgeColumn          int      `toml:"age_column"`
	DistrictPrefix     string   `toml:"district_prefix"` // 非空时只统计以此开头的区
	AgeCategories      []string `toml:"age_categories"`
	DefaultAgeCategory string   `toml:"default_age_category"`
	YouthAboveLabels   []string `toml:"youth_above_labels"`
	DistrictDelimiter  string   `toml:"district_delimiter"`
	WeekMarker         string   `toml:"week_marker"`
	NameDisplayWidth   int      `toml:"name_display_width"`
	SheetSuffix        string   `toml:"sheet_suffix"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	PortSpecified bool
	Path          string
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:              5000,
			DevMode:           false,
			MaxUploadMB:       10,
			SessionTTLMinutes: 120,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Attendance: DefaultAttendanceConfig(),
	}
}

// DefaultAttendanceConfig 默认点名表布局
func DefaultAttendanceConfig() AttendanceConfig {
	return AttendanceConfig{
		StartColumn:        8,
		HeaderRows:         2,
		DefaultMonth:       "2025年1月",
		MainDistrictColumn: 0,
		SubDistrictColumn:  1,
		NameColumn:         3,
		AgeColumn:          5,
		AgeCategories:      []string{"青職以上", "大專", "中學", "大學", "小學", "學齡前"},
		DefaultAgeCategory: "青職以上",
		YouthAboveLabels:   []string{"年長", "中壯", "青壯", "青職"},
		DistrictDelimiter:  "區",
		WeekMarker:         "週",
		NameDisplayWidth:   4,
		SheetSuffix:        "主日",
	}
}

// Validate 校验点名表布局
func (c AttendanceConfig) Validate() error {
	if c.StartColumn < 0 || c.MainDistrictColumn < 0 || c.SubDistrictColumn < 0 ||
		c.NameColumn < 0 || c.AgeColumn < 0 || c.HeaderRows < 0 {
		return errors.New("attendance columns must not be negative")
	}
	if len(c.AgeCategories) == 0 {
		return errors.New("age_categories must not be empty")
	}
	found := false
	for _, cat := range c.AgeCategories {
		if cat == c.DefaultAgeCategory {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("default_age_category %q is not in age_categories", c.DefaultAgeCategory)
	}
	if c.DistrictDelimiter == "" {
		return errors.New("district_delimiter must not be empty")
	}
	if c.WeekMarker == "" {
		return errors.New("week_marker must not be empty")
	}
	return nil
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo 从可执行文件同目录的 config.toml 加载配置并返回元信息
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	return LoadConfigFrom(filepath.Join(exeDir, "config.toml"))
}

// LoadConfigFrom 从指定路径加载配置；文件不存在时使用默认配置
func LoadConfigFrom(configPath string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Path: configPath}
	config := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, info, err
	}
	if err == nil {
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, fmt.Errorf("parse %s: %w", configPath, err)
		}
	}

	// 环境变量覆盖
	if v := os.Getenv("ATTENDSHEET_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			config.Server.Port = p
			info.PortSpecified = true
		}
	}
	if v := os.Getenv("ATTENDSHEET_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
	if v := os.Getenv("ATTENDSHEET_START_COLUMN"); v != "" {
		if c, err := strconv.Atoi(v); err == nil {
			config.Attendance.StartColumn = c
		}
	}

	if err := config.Attendance.Validate(); err != nil {
		return nil, info, fmt.Errorf("invalid attendance config: %w", err)
	}

	return config, info, nil
}

// SaveConfig 保存配置到指定路径，目录不存在时创建
func SaveConfig(config *AppConfig, configPath string) error {
	if err := config.Attendance.Validate(); err != nil {
		return fmt.Errorf("invalid attendance config: %w", err)
	}
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(configPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(configPath, data, 0644)
}

// EnsureDataDir 确保数据目录存在
// 相对路径基于可执行文件所在目录
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		dataDir = filepath.Join(exeDir, dataDir)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

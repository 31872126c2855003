package attendance

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"attendsheet/internal/config"
	"attendsheet/internal/exporter"
	"attendsheet/internal/model"
	"attendsheet/internal/parser"
)

// Processor 一次上传的完整处理流程：扫描周列 -> 逐周分类 -> 写入汇总表
// 不持有跨调用的状态，结果由调用方保存
type Processor struct {
	cfg        config.AttendanceConfig
	classifier *Classifier
	logger     *zap.Logger
	progress   ProgressFunc
}

// NewProcessor 创建处理器
func NewProcessor(cfg config.AttendanceConfig, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		cfg:        cfg,
		classifier: NewClassifier(cfg, logger),
		logger:     logger,
	}
}

// OnProgress 设置逐周进度回调
func (p *Processor) OnProgress(fn ProgressFunc) *Processor {
	p.progress = fn
	return p
}

// Process 处理工作簿，并在 f 中追加每个有出席周的汇总表
// 无周列或无出席周时返回 StatusNoData 的结果而不是错误；
// 汇总表重名时返回 *model.DuplicateSheetError，此时 f 已被部分修改，调用方不应保存
func (p *Processor) Process(f *excelize.File) (*model.Result, error) {
	sheet, err := parser.InputSheetName(f)
	if err != nil {
		return nil, err
	}
	table, err := parser.ReadTable(f, sheet)
	if err != nil {
		return nil, err
	}

	result := &model.Result{InputSheet: sheet}
	result.WeekColumns = parser.ScanWeekColumns(table, parser.ScanOptions{
		StartColumn:  p.cfg.StartColumn,
		DefaultMonth: p.cfg.DefaultMonth,
		WeekMarker:   p.cfg.WeekMarker,
	})
	if len(result.WeekColumns) == 0 {
		p.logger.Warn("no week columns detected",
			zap.String("sheet", sheet),
			zap.Int("startColumn", p.cfg.StartColumn),
		)
		return noData(result, model.ErrNoWeekColumns), nil
	}

	weeks := make([]*model.WeekResult, 0, len(result.WeekColumns))
	total := len(result.WeekColumns)
	for i, wc := range result.WeekColumns {
		cls := p.classifier.Classify(table, wc.Column)
		if cls.Counts.GrandTotal == 0 {
			p.logger.Info("skip week without attendees", zap.String("week", wc.Display()))
			p.progress.report(i+1, total, wc.Display(), true)
			continue
		}

		date, err := parser.WeekDate(wc, p.cfg.WeekMarker)
		if err != nil {
			return nil, err
		}
		sheetName, err := parser.SheetName(wc, p.cfg.SheetSuffix)
		if err != nil {
			return nil, err
		}

		districts := parser.SortDistricts(cls.Snapshot.Districts(), p.cfg.DistrictDelimiter)
		if err := exporter.WriteSummarySheet(f, sheetName, districts, cls.Snapshot); err != nil {
			var dup *model.DuplicateSheetError
			if errors.As(err, &dup) {
				p.logger.Error("duplicate summary sheet", zap.String("sheet", sheetName))
			}
			return nil, fmt.Errorf("write summary for %s: %w", wc.Display(), err)
		}

		week := &model.WeekResult{
			Week:         wc,
			Label:        wc.Display(),
			Date:         date,
			SheetName:    sheetName,
			Snapshot:     cls.Snapshot,
			Counts:       cls.Counts,
			MainCounts:   cls.MainCounts,
			MainDistrict: cls.MainDistrict,
		}
		weeks = append(weeks, week)
		if result.Latest == nil || week.Date.After(result.Latest.Date) {
			result.Latest = week
		}
		if result.MainDistrict == "" {
			result.MainDistrict = cls.MainDistrict
		}

		p.logger.Info("week processed",
			zap.String("week", week.Label),
			zap.String("sheet", sheetName),
			zap.Int("attended", cls.Snapshot.AttendedTotal()),
			zap.Int("absent", cls.Snapshot.AbsentTotal()),
		)
		p.progress.report(i+1, total, week.Label, false)
	}

	if _, err := exporter.DropEvaluationSheet(f); err != nil {
		return nil, err
	}

	if len(weeks) == 0 {
		p.logger.Warn("no weeks with attendees", zap.Int("weekColumns", len(result.WeekColumns)))
		return noData(result, model.ErrNoAttendance), nil
	}

	result.Status = model.StatusOK
	result.Weeks = model.SortWeeksByDate(weeks)
	return result, nil
}

func noData(r *model.Result, reason error) *model.Result {
	r.Status = model.StatusNoData
	r.Warning = reason.Error()
	r.Weeks = nil
	r.Latest = nil
	return r
}

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"attendsheet/internal/attendance"
	"attendsheet/internal/config"
	"attendsheet/internal/model"
	"attendsheet/internal/parser"
	"attendsheet/internal/report"
)

type cliOptions struct {
	In   string
	Out  string
	HTML string
}

// runCLI 离线处理一个文件：写出带汇总表的工作簿，可选写出最新周报表
func runCLI(cfg *config.AppConfig, logger *zap.Logger, opts cliOptions, stdout io.Writer) error {
	in, err := os.Open(opts.In)
	if err != nil {
		return err
	}
	defer in.Close()

	wb, err := parser.OpenWorkbook(in)
	if err != nil {
		return err
	}
	defer wb.Close()

	processor := attendance.NewProcessor(cfg.Attendance, logger).OnProgress(func(e attendance.ProgressEvent) {
		state := "ok"
		if e.Skipped {
			state = "skipped"
		}
		fmt.Fprintf(stdout, "[%3d%%] %s %s\n", e.Percent(), e.Week, state)
	})
	result, err := processor.Process(wb)
	if err != nil {
		return err
	}

	if !result.HasData() {
		fmt.Fprintf(stdout, "没有出席数据: %s\n", result.Warning)
		return nil
	}

	fmt.Fprintf(stdout, "最新周: %s (%s)\n", result.Latest.Label, result.AnalyticDate())
	if opts.Out != "" {
		if err := wb.SaveAs(opts.Out); err != nil {
			return fmt.Errorf("save %s: %w", opts.Out, err)
		}
		fmt.Fprintf(stdout, "已写出工作簿: %s\n", opts.Out)
	}

	if opts.HTML != "" {
		if err := writeReport(cfg, result, opts.HTML); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "已写出报表: %s\n", opts.HTML)
	}
	return nil
}

func writeReport(cfg *config.AppConfig, result *model.Result, path string) error {
	renderer, err := report.NewRenderer(cfg.Attendance)
	if err != nil {
		return err
	}
	cmp, _ := attendance.CompareLatest(result, cfg.Attendance.DistrictDelimiter)
	html, err := renderer.Combined(cmp)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	err = renderer.Page(&buf, report.PageData{
		AnalyticDate: result.AnalyticDate(),
		Selected:     result.Latest.Label,
		Weeks:        result.Labels(),
		Report:       html,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"attendsheet/internal/attendance"
	"attendsheet/internal/model"
)

// StatusResponse 当前会话状态
type StatusResponse struct {
	HasResult    bool   `json:"hasResult"`    // 本会话是否上传过
	Status       string `json:"status"`       // ok / no_data
	Warning      string `json:"warning"`      // 无数据原因
	FileName     string `json:"fileName"`     // 上传文件名
	UploadID     string `json:"uploadId"`     // 上传 ID
	UploadedAt   string `json:"uploadedAt"`   // 上传时间
	AnalyticDate string `json:"analyticDate"` // 最新周日期
	LatestWeek   string `json:"latestWeek"`   // 最新周
	WeekCount    int    `json:"weekCount"`    // 有出席的周数
	MainDistrict string `json:"mainDistrict"` // 大区
	CanDownload  bool   `json:"canDownload"`
}

// GetStatus 获取当前会话状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	entry, ok := h.currentEntry(c)
	if !ok || entry.Result == nil {
		success(c, StatusResponse{HasResult: false})
		return
	}
	res := entry.Result
	resp := StatusResponse{
		HasResult:    true,
		Status:       string(res.Status),
		Warning:      res.Warning,
		FileName:     entry.FileName,
		UploadID:     entry.UploadID,
		UploadedAt:   entry.CreatedAt.Format(time.RFC3339),
		AnalyticDate: res.AnalyticDate(),
		WeekCount:    len(res.Weeks),
		MainDistrict: res.MainDistrict,
		CanDownload:  len(entry.Workbook) > 0,
	}
	if res.Latest != nil {
		resp.LatestWeek = res.Latest.Label
	}
	success(c, resp)
}

// WeekItem 周列表项
type WeekItem struct {
	Label     string `json:"label"`
	Date      string `json:"date"`
	SheetName string `json:"sheetName"`
	Attended  int    `json:"attended"`
	Absent    int    `json:"absent"`
	Latest    bool   `json:"latest"`
}

// ListWeeks 有出席的周（日期升序）
// GET /api/weeks
func (h *Handler) ListWeeks(c *gin.Context) {
	entry, ok := h.currentEntry(c)
	if !ok || entry.Result == nil {
		errorResponse(c, http.StatusNotFound, codeNoResult, "No analysis available")
		return
	}
	res := entry.Result
	items := make([]WeekItem, 0, len(res.Weeks))
	for _, w := range res.Weeks {
		items = append(items, WeekItem{
			Label:     w.Label,
			Date:      w.Date.Format("2006-01-02"),
			SheetName: w.SheetName,
			Attended:  w.Snapshot.AttendedTotal(),
			Absent:    w.Snapshot.AbsentTotal(),
			Latest:    w == res.Latest,
		})
	}
	success(c, items)
}

// ReportResponse 单周报表
type ReportResponse struct {
	Week        string                        `json:"week"`
	Date        string                        `json:"date"`
	Previous    string                        `json:"previous,omitempty"`
	Districts   []string                      `json:"districts"`
	Attended    map[string][]model.MarkedName `json:"attended"`
	NotAttended map[string][]model.MarkedName `json:"notAttended"`
	Counts      model.Counts                  `json:"counts"`
	MainCounts  model.Counts                  `json:"mainCounts"`
	HTML        string                        `json:"html"`
}

// GetReport 单周对比报表；不指定 week 时为最新周
// GET /api/report?week=<label>
func (h *Handler) GetReport(c *gin.Context) {
	entry, ok := h.currentEntry(c)
	if !ok || entry.Result == nil || !entry.Result.HasData() {
		errorResponse(c, http.StatusNotFound, codeNoResult, "No attendance data available")
		return
	}
	res := entry.Result

	label := c.Query("week")
	if label == "" {
		label = res.Latest.Label
	}
	cmp, found := attendance.Compare(res.Weeks, label, h.cfg.Attendance.DistrictDelimiter)
	if !found {
		errorResponse(c, http.StatusNotFound, codeWeekNotFound, "Week not found: "+label)
		return
	}

	html, err := h.renderer.Combined(cmp)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, codeRenderFailed, err.Error())
		return
	}

	resp := ReportResponse{
		Week:        cmp.Week.Label,
		Date:        cmp.Week.Date.Format("2006-01-02"),
		Districts:   cmp.Districts,
		Attended:    cmp.Attended,
		NotAttended: cmp.NotAttended,
		Counts:      cmp.Week.Counts,
		MainCounts:  cmp.Week.MainCounts,
		HTML:        string(html),
	}
	if cmp.Previous != nil {
		resp.Previous = cmp.Previous.Label
	}
	success(c, resp)
}

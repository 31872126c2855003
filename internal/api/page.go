package api

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"attendsheet/internal/attendance"
	"attendsheet/internal/model"
	"attendsheet/internal/report"
)

// Index 首页：上传表单、最新（或所选）周的出席表与统计表
// GET /?week=<label>
func (h *Handler) Index(c *gin.Context) {
	data := report.PageData{}

	entry, ok := h.currentEntry(c)
	var cmp *model.Comparison
	if ok && entry.Result != nil {
		res := entry.Result
		data.AnalyticDate = res.AnalyticDate()
		data.Weeks = res.Labels()
		data.CanDownload = len(entry.Workbook) > 0
		if !res.HasData() {
			data.Message = "No attendance data found: " + res.Warning
		}

		label := c.Query("week")
		if label == "" && res.Latest != nil {
			label = res.Latest.Label
		}
		if label != "" {
			var found bool
			cmp, found = attendance.Compare(res.Weeks, label, h.cfg.Attendance.DistrictDelimiter)
			if found {
				data.Selected = label
			} else {
				data.Error = "Week not found: " + label
			}
		}
	}

	var err error
	data.Report, err = h.renderer.Combined(cmp)
	if err != nil {
		h.logger.Error("render report failed", zap.Error(err))
		data.Report = template.HTML("")
		data.Error = "Failed to render report"
	}

	var buf bytes.Buffer
	if err := h.renderer.Page(&buf, data); err != nil {
		h.logger.Error("render page failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to render page")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

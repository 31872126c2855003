package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"attendsheet/internal/store"
)

// ListHistory 当前会话最近的上传记录
// GET /api/history?limit=20
func (h *Handler) ListHistory(c *gin.Context) {
	if h.store == nil {
		errorResponse(c, http.StatusServiceUnavailable, codeHistoryFailed, "History is not available")
		return
	}
	sid := h.sessionID(c, false)
	if sid == "" {
		success(c, []store.UploadLog{})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	logs, err := h.store.ListUploadLogs(sid, limit)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, codeHistoryFailed, err.Error())
		return
	}
	if logs == nil {
		logs = []store.UploadLog{}
	}
	success(c, logs)
}

// GetHistoryWeeks 当前会话某次上传的周汇总
// GET /api/history/:uploadId
func (h *Handler) GetHistoryWeeks(c *gin.Context) {
	if h.store == nil {
		errorResponse(c, http.StatusServiceUnavailable, codeHistoryFailed, "History is not available")
		return
	}
	sid := h.sessionID(c, false)
	if sid == "" {
		success(c, []store.WeekSummary{})
		return
	}
	weeks, err := h.store.ListWeekSummaries(sid, c.Param("uploadId"))
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, codeHistoryFailed, err.Error())
		return
	}
	if weeks == nil {
		weeks = []store.WeekSummary{}
	}
	success(c, weeks)
}

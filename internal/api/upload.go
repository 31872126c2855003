package api

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"attendsheet/internal/exporter"
	"attendsheet/internal/model"
	"attendsheet/internal/parser"
	"attendsheet/internal/session"
	"attendsheet/internal/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Upload 上传并分析点名表
// POST /upload
func (h *Handler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.logger.Warn("no file uploaded", zap.Error(err))
		errorResponse(c, http.StatusBadRequest, codeNoFile, "No file uploaded")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		errorResponse(c, http.StatusBadRequest, codeNoFile, "No file selected")
		return
	}

	maxBytes := int64(h.cfg.Server.MaxUploadMB) * 1024 * 1024
	if maxBytes > 0 && header.Size > maxBytes {
		errorResponse(c, http.StatusRequestEntityTooLarge, codeFileTooLarge,
			fmt.Sprintf("File too large, max %dMB", h.cfg.Server.MaxUploadMB))
		return
	}

	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".xlsx":
	case ".xls":
		errorResponse(c, http.StatusBadRequest, codeInvalidFormat,
			"Legacy .xls files are not supported, please save the workbook as .xlsx and upload again")
		return
	default:
		errorResponse(c, http.StatusBadRequest, codeInvalidFormat, "Only .xlsx files are supported")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, codeInvalidFormat, "Failed to read file")
		return
	}

	sid := h.sessionID(c, true)
	uploadID := uuid.NewString()
	sum := sha256.Sum256(content)
	logID := h.startUploadLog(uploadID, sid, header.Filename, int64(len(content)), hex.EncodeToString(sum[:]))
	log := h.logger.With(zap.String("uploadId", uploadID), zap.String("file", header.Filename))

	// 处理失败：不保留本会话之前的结果
	fail := func(status, code int, stage string, err error) {
		log.Error(stage, zap.Error(err))
		h.sessions.Delete(sid)
		h.finishUploadLog(logID, store.UploadOutcome{Status: store.UploadFailed, Message: err.Error()})
		errorResponse(c, status, code, "Processing failed: "+err.Error())
	}

	wb, err := parser.OpenWorkbook(bytes.NewReader(content))
	if err != nil {
		fail(http.StatusBadRequest, codeProcessFailed, "open workbook failed", err)
		return
	}
	defer wb.Close()

	result, err := h.processor.Process(wb)
	if err != nil {
		code := codeProcessFailed
		if errors.Is(err, model.ErrDuplicateSheet) {
			code = codeDuplicateSheet
		}
		fail(http.StatusInternalServerError, code, "processing failed", err)
		return
	}

	entry := session.Entry{
		UploadID: uploadID,
		FileName: header.Filename,
		Result:   result,
	}
	// 无数据时不提供下载
	if result.HasData() {
		entry.Workbook, err = exporter.WorkbookBytes(wb)
		if err != nil {
			fail(http.StatusInternalServerError, codeProcessFailed, "serialize workbook failed", err)
			return
		}
	}
	h.sessions.Put(sid, entry)

	h.finishUploadLog(logID, outcomeOf(result))
	h.saveWeekSummaries(uploadID, result)

	log.Info("upload processed",
		zap.String("status", string(result.Status)),
		zap.Int("weeks", len(result.Weeks)),
	)
	c.Redirect(http.StatusSeeOther, "/")
}

// Download 下载处理后的工作簿
// GET /download
func (h *Handler) Download(c *gin.Context) {
	entry, ok := h.currentEntry(c)
	if !ok || len(entry.Workbook) == 0 {
		errorResponse(c, http.StatusNotFound, codeNoResult, "No processed file available")
		return
	}
	name := DownloadName()
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, xlsxContentType, entry.Workbook)
}

// DownloadName 下载文件名 analyzed_<32 位十六进制>.xlsx
func DownloadName() string {
	return "analyzed_" + strings.ReplaceAll(uuid.NewString(), "-", "") + ".xlsx"
}

func outcomeOf(r *model.Result) store.UploadOutcome {
	out := store.UploadOutcome{
		Status:         store.UploadOK,
		InputSheet:     r.InputSheet,
		WeekColumns:    len(r.WeekColumns),
		ProcessedWeeks: len(r.Weeks),
		Message:        r.Warning,
	}
	if !r.HasData() {
		out.Status = store.UploadNoData
	}
	if r.Latest != nil {
		out.LatestWeek = r.Latest.Label
	}
	return out
}

func (h *Handler) startUploadLog(uploadID, sessionID, filename string, size int64, hash string) int64 {
	if h.store == nil {
		return 0
	}
	id, err := h.store.CreateUploadLog(uploadID, sessionID, filename, size, hash)
	if err != nil {
		h.logger.Warn("create upload log failed", zap.Error(err))
		return 0
	}
	return id
}

func (h *Handler) finishUploadLog(id int64, out store.UploadOutcome) {
	if h.store == nil || id == 0 {
		return
	}
	if err := h.store.FinishUploadLog(id, out); err != nil {
		h.logger.Warn("finish upload log failed", zap.Int64("id", id), zap.Error(err))
	}
}

func (h *Handler) saveWeekSummaries(uploadID string, r *model.Result) {
	if h.store == nil || !r.HasData() {
		return
	}
	if err := h.store.SaveWeekSummaries(uploadID, r.Weeks); err != nil {
		h.logger.Warn("save week summaries failed", zap.String("uploadId", uploadID), zap.Error(err))
	}
}

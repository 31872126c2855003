package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"attendsheet/internal/attendance"
	"attendsheet/internal/config"
	"attendsheet/internal/report"
	"attendsheet/internal/session"
	"attendsheet/internal/store"
)

// SessionCookie 浏览器会话 cookie 名
const SessionCookie = "attendsheet_session"

// Handler 页面与 API 处理器
type Handler struct {
	cfg       *config.AppConfig
	processor *attendance.Processor
	renderer  *report.Renderer
	sessions  *session.Store
	store     *store.Store // 可为空：不记录上传历史
	logger    *zap.Logger
}

// NewHandler 创建处理器
func NewHandler(cfg *config.AppConfig, st *store.Store, logger *zap.Logger) (*Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	renderer, err := report.NewRenderer(cfg.Attendance)
	if err != nil {
		return nil, err
	}
	ttl := time.Duration(cfg.Server.SessionTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Handler{
		cfg:       cfg,
		processor: attendance.NewProcessor(cfg.Attendance, logger.Named("processor")),
		renderer:  renderer,
		sessions:  session.NewStore(ttl),
		store:     st,
		logger:    logger,
	}, nil
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	// 页面
	router.GET("/", h.Index)
	router.POST("/upload", h.Upload)
	router.GET("/download", h.Download)

	api := router.Group("/api")
	{
		api.GET("/status", h.GetStatus)
		api.GET("/weeks", h.ListWeeks)
		api.GET("/report", h.GetReport)
		api.GET("/history", h.ListHistory)
		api.GET("/history/:uploadId", h.GetHistoryWeeks)
	}
}

// sessionID 读取会话 cookie；create 为 true 时缺失则新建
func (h *Handler) sessionID(c *gin.Context, create bool) string {
	if id, err := c.Cookie(SessionCookie); err == nil && id != "" {
		return id
	}
	if !create {
		return ""
	}
	id := session.NewID()
	maxAge := h.cfg.Server.SessionTTLMinutes * 60
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, maxAge, "/", "", false, true)
	return id
}

// currentEntry 当前会话的最近一次上传
func (h *Handler) currentEntry(c *gin.Context) (session.Entry, bool) {
	id := h.sessionID(c, false)
	if id == "" {
		return session.Entry{}, false
	}
	return h.sessions.Get(id)
}

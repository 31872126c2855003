package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 错误码
const (
	codeNoFile         = 1001
	codeInvalidFormat  = 1002
	codeFileTooLarge   = 1003
	codeNoResult       = 2001
	codeWeekNotFound   = 2002
	codeProcessFailed  = 3001
	codeDuplicateSheet = 3002
	codeRenderFailed   = 3003
	codeHistoryFailed  = 5001
)

// Response 通用响应
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func errorResponse(c *gin.Context, status, code int, message string) {
	c.JSON(status, Response{
		Code:    code,
		Message: message,
	})
}

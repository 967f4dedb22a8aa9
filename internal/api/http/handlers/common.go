// Package handlers 提供证明服务的 HTTP 处理器
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/weisyn/hfproof/internal/api/http/middleware"
	apitypes "github.com/weisyn/hfproof/internal/api/http/types"
	"github.com/weisyn/hfproof/internal/core/pipeline"
)

// writeError 写入统一错误响应
func writeError(c *gin.Context, status int, code, message string, details interface{}) {
	c.AbortWithStatusJSON(status, apitypes.NewErrorResponse(code, message, details).
		WithRequestID(middleware.GetRequestID(c)).
		WithTimestamp(time.Now().UTC().Format(time.RFC3339)))
}

// writePipelineError 按流水线错误分类映射 HTTP 状态码
func writePipelineError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch pipeline.KindOf(err) {
	case pipeline.KindInput:
		writeError(c, http.StatusBadRequest, apitypes.ErrInvalidArgument, err.Error(), nil)
	case pipeline.KindArithmeticOverflow:
		writeError(c, http.StatusUnprocessableEntity, apitypes.ErrArithmeticOverflow, err.Error(), nil)
	case pipeline.KindVerification:
		writeError(c, http.StatusUnprocessableEntity, apitypes.ErrVerificationFailed, err.Error(), nil)
	case pipeline.KindSerialization:
		writeError(c, http.StatusBadRequest, apitypes.ErrSerialization, err.Error(), nil)
	default:
		if c.Request.Context().Err() != nil {
			writeError(c, http.StatusServiceUnavailable, apitypes.ErrServiceUnavailable, "request canceled", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, apitypes.ErrExecutionFailed, err.Error(), nil)
	}
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apitypes "github.com/weisyn/hfproof/internal/api/http/types"
)

// ConcurrencyLimit 并发限制中间件
//
// 证明是 CPU 和内存密集型操作，同时进行的证明数不超过 limit；
// 超出时立即返回 429，不排队。
type ConcurrencyLimit struct {
	slots chan struct{}
}

// NewConcurrencyLimit 创建并发限制中间件
func NewConcurrencyLimit(limit int) *ConcurrencyLimit {
	if limit <= 0 {
		limit = 1
	}
	return &ConcurrencyLimit{slots: make(chan struct{}, limit)}
}

// Middleware 返回Gin中间件
func (m *ConcurrencyLimit) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		select {
		case m.slots <- struct{}{}:
		default:
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apitypes.NewErrorResponse(
				apitypes.ErrRateLimitExceeded,
				"too many proofs in progress",
				gin.H{"limit": cap(m.slots)},
			).WithRequestID(GetRequestID(c)))
			return
		}
		defer func() { <-m.slots }()

		c.Next()
	}
}

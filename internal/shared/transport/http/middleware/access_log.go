package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"DiceWars/internal/shared/transport"
	"DiceWars/modules/kit/logx"
)

// AccessLog 统一写访问日志。业务码按响应状态归一：
// 2xx → OK，4xx → 状态码本身（业务拒绝），其余 → SystemError。
func AccessLog(log logx.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		action := c.Request.Method + " " + route

		ctx := transport.NewContextWithParent(c.Request.Context(), action)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		switch {
		case status < http.StatusBadRequest:
			transport.SetBizCode(ctx, transport.BizCode(transport.OK))
		case status < http.StatusInternalServerError:
			transport.SetBizCode(ctx, transport.BizCode(status))
		default:
			transport.SetBizCode(ctx, transport.BizCode(transport.SystemError))
		}

		transport.WriteAccessLog(ctx, log)
	}
}

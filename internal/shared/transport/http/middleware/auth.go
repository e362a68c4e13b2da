package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"DiceWars/internal/shared/security"
)

// CtxKeyUID 是认证后写入 gin 上下文的用户 id 键。
const CtxKeyUID = "uid"

// Auth 校验 JWT 并把 uid 写入上下文。
// 浏览器的 WebSocket/EventSource 无法自定义请求头，
// 因此除 `Authorization: Bearer xxx` 外也接受 `?token=xxx`。
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "缺少认证凭证"})
			return
		}

		claims, err := security.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "认证凭证无效"})
			return
		}

		c.Set(CtxKeyUID, claims.UID)
		c.Next()
	}
}

// UID 读取认证中间件写入的用户 id。
func UID(c *gin.Context) (string, bool) {
	v, ok := c.Get(CtxKeyUID)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimPrefix(header, prefix)
	}
	return ""
}

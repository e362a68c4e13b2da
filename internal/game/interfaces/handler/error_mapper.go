package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"DiceWars/modules/kit/errx"
)

// 对局内的规则拒绝走 WebSocket 的 error 事件，不经过 HTTP 状态码；
// 这里只服务 HTTP 入口的少数失败形态。
var (
	errGameNotFound = errx.NewBiz(errx.CodeNotFound, "对局不存在")
	errBadGameID    = errx.NewBiz(errx.CodeReqParamError, "非法对局 id")
	errNoIdentity   = errx.NewBiz(errx.CodeUnauthorized, "缺少有效身份")
)

func toHTTPError(err error) (int, gin.H) {
	body := gin.H{"message": errx.MsgOf(err)}
	code := errx.CodeOf(err)
	if code != "" {
		body["code"] = string(code)
	}

	switch code {
	case errx.CodeNotFound:
		return http.StatusNotFound, body
	case errx.CodeReqParamError:
		return http.StatusBadRequest, body
	case errx.CodeUnauthorized:
		return http.StatusUnauthorized, body
	default:
		return http.StatusInternalServerError, gin.H{"message": "系统繁忙，请稍后再试"}
	}
}

func fail(c *gin.Context, err error) {
	status, body := toHTTPError(err)
	c.JSON(status, body)
}

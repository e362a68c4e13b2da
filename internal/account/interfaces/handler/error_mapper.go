package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"DiceWars/internal/account/app"
	"DiceWars/modules/kit/errx"
)

func toHTTPError(err error) (int, gin.H) {
	body := gin.H{"message": errx.MsgOf(err)}
	code := errx.CodeOf(err)
	if code != "" {
		body["code"] = string(code)
	}

	switch code {
	case app.CodeInvalidCredentials:
		return http.StatusUnauthorized, body
	case app.CodeUserExist:
		return http.StatusConflict, body
	case app.CodeUserNotFound:
		return http.StatusNotFound, body
	case errx.CodeReqParamError:
		return http.StatusBadRequest, body
	default:
		return http.StatusInternalServerError, gin.H{"message": "系统繁忙，请稍后再试"}
	}
}

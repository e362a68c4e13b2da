package app

import "DiceWars/modules/kit/errx"

type Code = errx.Code

const (
	CodeInvalidCredentials Code = "AUTH_INVALID_CREDENTIAL"
	CodeUserExist          Code = "ACCOUNT_USER_EXIST"
	CodeUserNotFound       Code = "ACCOUNT_USER_NOT_FOUND"
)

// 常用错误定义（哨兵错误）：禁止直接修改其 data/cause，
// 通过 WithData/WithCause 派生新对象。
var (
	ErrInvalidCredentials = errx.NewBiz(CodeInvalidCredentials, "用户名或密码错误")
	ErrUserExist          = errx.NewBiz(CodeUserExist, "用户名已被占用")
	ErrUserNotFound       = errx.NewBiz(CodeUserNotFound, "用户不存在")
	ErrInternalServer     = errx.ErrInternal
	ErrUnavailable        = errx.ErrUnavailable
)

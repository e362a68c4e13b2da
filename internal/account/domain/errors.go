package domain

import "DiceWars/modules/kit/errx"

var (
	ErrUserNotFound = errx.NewBiz("ACCOUNT_USER_NOT_FOUND", "用户不存在")
	// ErrSystemUnavailable 是存储层无法转换的技术故障。
	ErrSystemUnavailable = errx.NewSys(errx.CodeUnavailable, "账号存储不可用")
)
